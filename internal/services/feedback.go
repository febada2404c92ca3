package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"mockmate/interview-api/internal/models"
)

// FeedbackService scores a finished interview. Degenerate input is routed to
// fixed scorecards without spending a model call; model failures fall back to
// a static scorecard. It never returns an error.
type FeedbackService interface {
	GenerateFeedback(ctx context.Context, session *models.Session) models.InterviewFeedback
}

type feedbackService struct {
	gemini    GeminiService
	gate      *QualityGate
	prompts   *PromptBuilder
	fallbacks *FallbackStore
}

func NewFeedbackService(
	gemini GeminiService,
	gate *QualityGate,
	fallbacks *FallbackStore,
) FeedbackService {
	return &feedbackService{
		gemini:    gemini,
		gate:      gate,
		prompts:   NewPromptBuilder(),
		fallbacks: fallbacks,
	}
}

// GenerateFeedback implements FeedbackService.
func (s *feedbackService) GenerateFeedback(ctx context.Context, session *models.Session) models.InterviewFeedback {
	if len(session.Answers) == 0 {
		return s.fallbacks.Scorecard(ScorecardNoResponses)
	}

	pairs := pairAnswers(session)

	switch s.gate.Classify(pairs) {
	case QualityNonsensical:
		log.Println("🚫 Nonsensical answers detected, skipping model call")
		return trimQuestionScores(s.fallbacks.Scorecard(ScorecardNonsensical), len(session.Questions))
	case QualityPoor:
		log.Println("🚫 Poor-quality answers detected, skipping model call")
		return trimQuestionScores(s.fallbacks.Scorecard(ScorecardPoorQuality), len(session.Questions))
	}

	if s.gemini == nil {
		log.Println("⚠️  Gemini unavailable, using fallback feedback")
		return trimQuestionScores(s.fallbacks.Scorecard(ScorecardUnavailable), len(session.Questions))
	}

	prompt := s.prompts.BuildFeedbackPrompt(buildFeedbackContext(session.Settings, pairs))

	response, err := s.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		log.Printf("⚠️  Feedback generation failed: %v. Using fallback feedback\n", err)
		return trimQuestionScores(s.fallbacks.Scorecard(ScorecardUnavailable), len(session.Questions))
	}

	feedback, err := parseFeedback(response, len(session.Questions))
	if err != nil {
		log.Printf("⚠️  Failed to parse feedback response: %v. Using fallback feedback\n", err)
		return trimQuestionScores(s.fallbacks.Scorecard(ScorecardUnavailable), len(session.Questions))
	}

	return feedback
}

// pairAnswers aligns answers with their questions by list index.
func pairAnswers(session *models.Session) []QAPair {
	pairs := make([]QAPair, 0, len(session.Answers))
	for i, answer := range session.Answers {
		if i >= len(session.Questions) {
			break
		}
		pairs = append(pairs, QAPair{
			Question: session.Questions[i].Question,
			Answer:   answer.Answer,
		})
	}
	return pairs
}

func buildFeedbackContext(settings models.InterviewSettings, pairs []QAPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Position: %s at %s\n", settings.JobTitle, settings.CompanyName)
	fmt.Fprintf(&b, "Job Level: %s\n", settings.JobLevel)
	fmt.Fprintf(&b, "Interview Type: %s\n", settings.InterviewType)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", settings.Difficulty)
	b.WriteString("Interview Responses:\n")

	for i, pair := range pairs {
		fmt.Fprintf(&b, "\nQuestion %d: %s\nAnswer: %s\n", i+1, pair.Question, pair.Answer)
	}

	return b.String()
}

// feedbackPayload tolerates replies with missing fields so partial JSON still
// produces a well-formed scorecard.
type feedbackPayload struct {
	OverallScore   *int                   `json:"overall_score"`
	QuestionScores []models.QuestionScore `json:"question_scores"`
	CategoryScores struct {
		Communication  *int `json:"communication"`
		Technical      *int `json:"technical"`
		ProblemSolving *int `json:"problem_solving"`
		Behavioral     *int `json:"behavioral"`
	} `json:"category_scores"`
	Strengths    []models.FeedbackItem `json:"strengths"`
	Weaknesses   []models.FeedbackItem `json:"weaknesses"`
	Improvements []models.FeedbackItem `json:"improvements"`
	Summary      string                `json:"summary"`
}

// categoryMidpoint fills in category sub-scores the model left out.
const categoryMidpoint = 5

func parseFeedback(response string, questionCount int) (models.InterviewFeedback, error) {
	jsonText, ok := extractJSONObject(response)
	if !ok {
		return models.InterviewFeedback{}, fmt.Errorf("no JSON object found in response")
	}

	var payload feedbackPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return models.InterviewFeedback{}, fmt.Errorf("failed to unmarshal feedback: %w", err)
	}

	feedback := models.InterviewFeedback{
		OverallScore: 7,
		CategoryScores: models.CategoryScores{
			Communication:  categoryMidpoint,
			Technical:      categoryMidpoint,
			ProblemSolving: categoryMidpoint,
			Behavioral:     categoryMidpoint,
		},
		Strengths:    payload.Strengths,
		Weaknesses:   payload.Weaknesses,
		Improvements: payload.Improvements,
		Summary:      "Good overall performance.",
	}

	if payload.OverallScore != nil {
		feedback.OverallScore = *payload.OverallScore
	}
	if payload.Summary != "" {
		feedback.Summary = payload.Summary
	}
	if payload.CategoryScores.Communication != nil {
		feedback.CategoryScores.Communication = *payload.CategoryScores.Communication
	}
	if payload.CategoryScores.Technical != nil {
		feedback.CategoryScores.Technical = *payload.CategoryScores.Technical
	}
	if payload.CategoryScores.ProblemSolving != nil {
		feedback.CategoryScores.ProblemSolving = *payload.CategoryScores.ProblemSolving
	}
	if payload.CategoryScores.Behavioral != nil {
		feedback.CategoryScores.Behavioral = *payload.CategoryScores.Behavioral
	}

	// Keep only per-question scores that reference questions the session
	// actually has.
	for _, qs := range payload.QuestionScores {
		if qs.QuestionIndex >= 0 && qs.QuestionIndex < questionCount {
			feedback.QuestionScores = append(feedback.QuestionScores, qs)
		}
	}

	return feedback, nil
}

// trimQuestionScores drops fixed-scorecard entries for questions the session
// does not have.
func trimQuestionScores(card models.InterviewFeedback, questionCount int) models.InterviewFeedback {
	trimmed := card.QuestionScores[:0:0]
	for _, qs := range card.QuestionScores {
		if qs.QuestionIndex >= 0 && qs.QuestionIndex < questionCount {
			trimmed = append(trimmed, qs)
		}
	}
	card.QuestionScores = trimmed
	return card
}
