package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-api/internal/auth"
	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
)

type HistoryHandler struct {
	interviewRepo repositories.InterviewRepository
	validate      *validator.Validate
}

func NewHistoryHandler(
	interviewRepo repositories.InterviewRepository,
	validate *validator.Validate,
) *HistoryHandler {
	return &HistoryHandler{
		interviewRepo: interviewRepo,
		validate:      validate,
	}
}

// HandleSaveInterview handles POST /history/interviews
func (h *HistoryHandler) HandleSaveInterview(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req models.SaveInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(req.Answers) > len(req.Questions) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "More answers than questions",
		})
	}

	// Pad answers so the stored lists stay parallel
	answers := req.Answers
	for len(answers) < len(req.Questions) {
		answers = append(answers, "")
	}

	now := time.Now()
	record := &models.InterviewRecord{
		ID:                  uuid.New(),
		UserID:              userID,
		JobTitle:            req.JobTitle,
		CompanyName:         req.CompanyName,
		JobLevel:            req.JobLevel,
		InterviewType:       req.InterviewType,
		Difficulty:          req.Difficulty,
		Questions:           req.Questions,
		Answers:             answers,
		OverallScore:        req.OverallScore,
		CommunicationScore:  req.CommunicationScore,
		TechnicalScore:      req.TechnicalScore,
		ProblemSolvingScore: req.ProblemSolvingScore,
		BehavioralScore:     req.BehavioralScore,
		FeedbackSummary:     req.FeedbackSummary,
		Strengths:           req.Strengths,
		Improvements:        req.Improvements,
		CompletedAt:         &now,
	}

	if err := h.interviewRepo.Create(record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save interview",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      record.ID.String(),
		"message": "Interview saved",
	})
}

// HandleListInterviews handles GET /history/interviews
func (h *HistoryHandler) HandleListInterviews(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.interviewRepo.ListByUser(userID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list interviews",
		})
	}

	summaries := make([]models.InterviewSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, models.InterviewSummary{
			ID:            r.ID.String(),
			JobTitle:      r.JobTitle,
			CompanyName:   r.CompanyName,
			InterviewType: r.InterviewType,
			Difficulty:    r.Difficulty,
			OverallScore:  r.OverallScore,
			QuestionCount: len(r.Questions),
			CreatedAt:     r.CreatedAt,
			CompletedAt:   r.CompletedAt,
		})
	}

	return c.JSON(fiber.Map{
		"interviews": summaries,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

// HandleGetInterview handles GET /history/interviews/:id
func (h *HistoryHandler) HandleGetInterview(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	record, err := h.interviewRepo.FindByIDForUser(recordID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview",
		})
	}

	return c.JSON(record)
}

// HandleDeleteInterview handles DELETE /history/interviews/:id
func (h *HistoryHandler) HandleDeleteInterview(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	if err := h.interviewRepo.DeleteByIDForUser(recordID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete interview",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Interview deleted",
	})
}

// HandleGetStats handles GET /history/stats
func (h *HistoryHandler) HandleGetStats(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	records, err := h.interviewRepo.AllByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interviews",
		})
	}

	return c.JSON(computeStats(records))
}

// computeStats aggregates a user's interview history, oldest first. Records
// without an overall score count toward totals but not toward averages or
// the trend.
func computeStats(records []models.InterviewRecord) models.UserStats {
	stats := models.UserStats{
		TotalInterviews:  len(records),
		RecentTrend:      "not_enough_data",
		InterviewsByType: make(map[string]int),
		ScoreProgression: []models.ScoreProgress{},
	}

	var scores []float64
	for _, r := range records {
		stats.InterviewsByType[r.InterviewType]++

		if r.OverallScore == nil {
			continue
		}
		score := *r.OverallScore
		scores = append(scores, score)
		if score > stats.BestScore {
			stats.BestScore = score
		}
		stats.ScoreProgression = append(stats.ScoreProgression, models.ScoreProgress{
			Date:          r.CreatedAt,
			Score:         score,
			InterviewType: r.InterviewType,
		})
	}

	if len(scores) == 0 {
		return stats
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	stats.AverageScore = sum / float64(len(scores))

	if len(scores) >= 2 {
		stats.RecentTrend = scoreTrend(scores)
	}
	return stats
}

// scoreTrend compares the average of the most recent three scores against
// the average of everything before them.
func scoreTrend(scores []float64) string {
	recent := scores
	if len(scores) > 3 {
		recent = scores[len(scores)-3:]
	}
	earlier := scores[:len(scores)-len(recent)]
	if len(earlier) == 0 {
		earlier = scores[:1]
		recent = scores[1:]
	}

	avg := func(vals []float64) float64 {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals))
	}

	diff := avg(recent) - avg(earlier)
	switch {
	case diff > 0.5:
		return "improving"
	case diff < -0.5:
		return "declining"
	default:
		return "stable"
	}
}
