package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// ResumeAnalysis is the structured extraction of an uploaded resume plus the
// short summary used as question-generation context.
type ResumeAnalysis struct {
	Fields  map[string]any
	Summary string
}

// ResumeService analyzes resume text with the model. Like the orchestrators
// it never fails: on any model problem the analysis degrades to a truncated
// text summary.
type ResumeService interface {
	AnalyzeResume(ctx context.Context, resumeText string) ResumeAnalysis
}

type resumeService struct {
	gemini  GeminiService
	prompts *PromptBuilder
}

func NewResumeService(gemini GeminiService) ResumeService {
	return &resumeService{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
	}
}

// AnalyzeResume implements ResumeService.
func (s *resumeService) AnalyzeResume(ctx context.Context, resumeText string) ResumeAnalysis {
	if s.gemini == nil {
		return ResumeAnalysis{Summary: truncate(resumeText, 1000)}
	}

	prompt := s.prompts.BuildResumeAnalysisPrompt(resumeText)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		log.Printf("⚠️  Resume analysis failed: %v. Using truncated summary\n", err)
		return ResumeAnalysis{Summary: truncate(resumeText, 1000)}
	}

	fields, err := parseResumeAnalysis(response)
	if err != nil {
		log.Printf("⚠️  Failed to parse resume analysis: %v. Using truncated summary\n", err)
		return ResumeAnalysis{Summary: truncate(resumeText, 1000)}
	}

	summary, _ := fields["summary"].(string)
	if summary == "" {
		summary = truncate(resumeText, 1000)
	}

	return ResumeAnalysis{Fields: fields, Summary: summary}
}

func parseResumeAnalysis(response string) (map[string]any, error) {
	jsonText, ok := extractJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return fields, nil
}
