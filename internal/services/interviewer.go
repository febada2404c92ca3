package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"mockmate/interview-api/internal/models"
)

// InterviewerService turns interview settings into a question list. It never
// fails: any model, network or parsing problem degrades to the canned
// fallback questions so the endpoint always returns a usable set.
type InterviewerService interface {
	GenerateQuestions(ctx context.Context, settings models.InterviewSettings, resumeText string) []models.Question
}

type interviewerService struct {
	gemini    GeminiService
	guides    GuideRetriever
	prompts   *PromptBuilder
	fallbacks *FallbackStore
}

func NewInterviewerService(
	gemini GeminiService,
	guides GuideRetriever,
	fallbacks *FallbackStore,
) InterviewerService {
	return &interviewerService{
		gemini:    gemini,
		guides:    guides,
		prompts:   NewPromptBuilder(),
		fallbacks: fallbacks,
	}
}

// GenerateQuestions implements InterviewerService.
func (s *interviewerService) GenerateQuestions(ctx context.Context, settings models.InterviewSettings, resumeText string) []models.Question {
	if s.gemini == nil {
		log.Println("⚠️  Gemini unavailable, using fallback questions")
		return s.fallbackQuestions(settings)
	}

	contextBlock := s.buildContext(settings, resumeText)
	guidance := s.retrieveGuidance(ctx, contextBlock, settings.InterviewType)

	prompt := s.prompts.BuildQuestionGenerationPrompt(
		settings.NumberOfQuestions,
		contextBlock,
		settings.InterviewType,
		settings.Difficulty,
		settings.JobLevel,
		guidance,
	)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		log.Printf("⚠️  Question generation failed: %v. Using fallback questions\n", err)
		return s.fallbackQuestions(settings)
	}

	questions, err := parseQuestions(response, settings)
	if err != nil {
		log.Printf("⚠️  Failed to parse question response: %v. Using fallback questions\n", err)
		return s.fallbackQuestions(settings)
	}

	return s.normalize(questions, settings)
}

// buildContext composes the natural-language block the model sees. Resume
// framing depends on the interview type so the model does not over-index on
// the resume when the interview is about the job.
func (s *interviewerService) buildContext(settings models.InterviewSettings, resumeText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Title: %s\n", settings.JobTitle)
	fmt.Fprintf(&b, "Company: %s\n", settings.CompanyName)
	fmt.Fprintf(&b, "Job Description: %s\n", settings.JobDescription)
	fmt.Fprintf(&b, "Job Level: %s\n", settings.JobLevel)
	fmt.Fprintf(&b, "Interview Type: %s\n", settings.InterviewType)
	fmt.Fprintf(&b, "Difficulty: %s\n", settings.Difficulty)
	fmt.Fprintf(&b, "Number of Questions: %d\n", settings.NumberOfQuestions)

	if resumeText == "" && settings.ResumeSummary == "" {
		return b.String()
	}

	resumeInfo := settings.ResumeSummary
	if resumeInfo == "" {
		resumeInfo = truncate(resumeText, 1000)
	}

	switch settings.InterviewType {
	case models.InterviewTypeResume:
		fmt.Fprintf(&b, "Candidate Resume (PRIMARY FOCUS): %s\n", resumeInfo)
	case models.InterviewTypeTechnical:
		fmt.Fprintf(&b, "Candidate Background (for context only, focus on job requirements): %s\n", resumeInfo)
	case models.InterviewTypeBehavioral:
		fmt.Fprintf(&b, "Candidate Background (for context only): %s\n", resumeInfo)
	default:
		fmt.Fprintf(&b, "Candidate Resume: %s\n", resumeInfo)
	}

	return b.String()
}

// retrieveGuidance pulls interviewer-guide chunks similar to the interview
// context. Retrieval is best-effort: any failure means no guidance.
func (s *interviewerService) retrieveGuidance(ctx context.Context, contextBlock, interviewType string) string {
	if s.guides == nil {
		return ""
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, contextBlock)
	if err != nil {
		log.Printf("⚠️  Failed to embed context for guide retrieval: %v\n", err)
		return ""
	}

	chunks, err := s.guides.SearchGuides(ctx, embedding, strings.ToLower(interviewType), 3)
	if err != nil {
		log.Printf("⚠️  Guide retrieval failed: %v\n", err)
		return ""
	}

	var parts []string
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// rawQuestion tolerates replies that omit id, type or difficulty.
type rawQuestion struct {
	ID           *int   `json:"id"`
	Question     string `json:"question"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
}

func parseQuestions(response string, settings models.InterviewSettings) ([]models.Question, error) {
	jsonText, ok := extractJSONArray(response)
	if !ok {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	var questions []models.Question
	for i, r := range raw {
		if strings.TrimSpace(r.Question) == "" {
			continue
		}

		q := models.Question{
			ID:           i + 1,
			Question:     r.Question,
			QuestionType: r.QuestionType,
			Difficulty:   r.Difficulty,
		}
		if r.ID != nil {
			q.ID = *r.ID
		}
		if q.QuestionType == "" {
			q.QuestionType = settings.InterviewType
		}
		if q.Difficulty == "" {
			q.Difficulty = settings.Difficulty
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("response contained no questions")
	}
	return questions, nil
}

// normalize forces the result to exactly the requested count: surplus is
// truncated, shortfall topped up from the fallback list.
func (s *interviewerService) normalize(questions []models.Question, settings models.InterviewSettings) []models.Question {
	n := settings.NumberOfQuestions
	if len(questions) >= n {
		return questions[:n]
	}

	canned := s.fallbacks.QuestionsFor(settings.InterviewType)
	for i := 0; len(questions) < n; i++ {
		questions = append(questions, models.Question{
			ID:           len(questions) + 1,
			Question:     canned[i%len(canned)],
			QuestionType: settings.InterviewType,
			Difficulty:   settings.Difficulty,
		})
	}
	return questions
}

func (s *interviewerService) fallbackQuestions(settings models.InterviewSettings) []models.Question {
	canned := s.fallbacks.QuestionsFor(settings.InterviewType)

	questions := make([]models.Question, 0, settings.NumberOfQuestions)
	for i := 0; i < settings.NumberOfQuestions; i++ {
		questions = append(questions, models.Question{
			ID:           i + 1,
			Question:     canned[i%len(canned)],
			QuestionType: settings.InterviewType,
			Difficulty:   settings.Difficulty,
		})
	}
	return questions
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
