package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
)

// stubGemini is a canned GeminiService for orchestrator tests.
type stubGemini struct {
	textResponse string
	textErr      error
	embedding    []float32
	embedErr     error
	prompts      []string
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.textResponse, s.textErr
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return s.embedding, s.embedErr
}

// stubGuides returns fixed guide chunks.
type stubGuides struct {
	chunks    []GuideChunk
	searchErr error
}

func (s *stubGuides) InitCollection() error { return nil }

func (s *stubGuides) UpsertGuideChunk(_ context.Context, _, _, _ string, _ []float32) error {
	return nil
}

func (s *stubGuides) SearchGuides(_ context.Context, _ []float32, _ string, _ int) ([]GuideChunk, error) {
	return s.chunks, s.searchErr
}

func mustFallbacks(t *testing.T) *FallbackStore {
	t.Helper()
	store, err := NewFallbackStore("")
	require.NoError(t, err)
	return store
}

func interviewSettings(n int) models.InterviewSettings {
	return models.InterviewSettings{
		JobTitle:          "Backend Engineer",
		CompanyName:       "Acme",
		JobLevel:          "Mid",
		InterviewType:     models.InterviewTypeTechnical,
		Difficulty:        "Moderate",
		NumberOfQuestions: n,
	}
}

func TestInterviewer_ParsesModelResponse(t *testing.T) {
	gemini := &stubGemini{
		textResponse: "Here are your questions:\n```json\n" + `[
  {"id": 1, "question": "Explain how a hash map works.", "question_type": "Technical", "difficulty": "Moderate"},
  {"id": 2, "question": "What is a race condition?", "question_type": "Technical", "difficulty": "Moderate"}
]` + "\n```",
	}
	svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(2), "")

	require.Len(t, questions, 2)
	assert.Equal(t, "Explain how a hash map works.", questions[0].Question)
	assert.Equal(t, 2, questions[1].ID)
}

func TestInterviewer_FillsMissingFields(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `[{"question": "What is a goroutine?"}]`,
	}
	svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(1), "")

	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, models.InterviewTypeTechnical, questions[0].QuestionType)
	assert.Equal(t, "Moderate", questions[0].Difficulty)
}

func TestInterviewer_NilGeminiUsesFallbacks(t *testing.T) {
	svc := NewInterviewerService(nil, nil, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(3), "")

	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.Equal(t, models.InterviewTypeTechnical, q.QuestionType)
	}
}

func TestInterviewer_ModelErrorUsesFallbacks(t *testing.T) {
	gemini := &stubGemini{textErr: fmt.Errorf("quota exceeded")}
	svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(5), "")

	assert.Len(t, questions, 5)
}

func TestInterviewer_UnparseableResponseUsesFallbacks(t *testing.T) {
	gemini := &stubGemini{textResponse: "I cannot produce questions right now."}
	svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(4), "")

	assert.Len(t, questions, 4)
}

func TestInterviewer_NormalizesToRequestedCount(t *testing.T) {
	t.Run("surplus is truncated", func(t *testing.T) {
		gemini := &stubGemini{
			textResponse: `[
  {"question": "Q1?"}, {"question": "Q2?"}, {"question": "Q3?"}, {"question": "Q4?"}
]`,
		}
		svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

		questions := svc.GenerateQuestions(context.Background(), interviewSettings(2), "")
		assert.Len(t, questions, 2)
	})

	t.Run("shortfall is topped up", func(t *testing.T) {
		gemini := &stubGemini{
			textResponse: `[{"question": "Only one question?"}]`,
		}
		svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

		questions := svc.GenerateQuestions(context.Background(), interviewSettings(4), "")
		require.Len(t, questions, 4)
		assert.Equal(t, "Only one question?", questions[0].Question)
		for _, q := range questions[1:] {
			assert.NotEmpty(t, q.Question)
		}
	})
}

func TestInterviewer_MoreQuestionsThanCannedList(t *testing.T) {
	svc := NewInterviewerService(nil, nil, mustFallbacks(t))

	// The canned technical list has 5 entries; asking for more cycles it.
	questions := svc.GenerateQuestions(context.Background(), interviewSettings(8), "")

	require.Len(t, questions, 8)
	assert.Equal(t, questions[0].Question, questions[5].Question)
	assert.Equal(t, 6, questions[5].ID)
}

func TestInterviewer_GuidanceLandsInPrompt(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `[{"question": "Q1?"}]`,
		embedding:    []float32{0.1, 0.2},
	}
	guides := &stubGuides{chunks: []GuideChunk{{Text: "Probe for concrete tradeoffs."}}}
	svc := NewInterviewerService(gemini, guides, mustFallbacks(t))

	svc.GenerateQuestions(context.Background(), interviewSettings(1), "")

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Probe for concrete tradeoffs.")
}

func TestInterviewer_GuideRetrievalFailureIsSoft(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `[{"question": "Q1?"}]`,
		embedErr:     fmt.Errorf("embedding backend down"),
	}
	guides := &stubGuides{searchErr: fmt.Errorf("unreachable")}
	svc := NewInterviewerService(gemini, guides, mustFallbacks(t))

	questions := svc.GenerateQuestions(context.Background(), interviewSettings(1), "")

	require.Len(t, questions, 1)
	assert.Equal(t, "Q1?", questions[0].Question)
}

func TestInterviewer_ResumeFramingByType(t *testing.T) {
	resume := "Five years of Go services at Acme."

	tests := []struct {
		interviewType string
		wantFragment  string
	}{
		{models.InterviewTypeResume, "PRIMARY FOCUS"},
		{models.InterviewTypeTechnical, "for context only, focus on job requirements"},
		{models.InterviewTypeBehavioral, "for context only"},
		{models.InterviewTypeMixed, "Candidate Resume:"},
	}

	for _, tt := range tests {
		t.Run(tt.interviewType, func(t *testing.T) {
			gemini := &stubGemini{textResponse: `[{"question": "Q1?"}]`}
			settings := interviewSettings(1)
			settings.InterviewType = tt.interviewType
			svc := NewInterviewerService(gemini, nil, mustFallbacks(t))

			svc.GenerateQuestions(context.Background(), settings, resume)

			require.Len(t, gemini.prompts, 1)
			assert.Contains(t, gemini.prompts[0], tt.wantFragment)
		})
	}
}
