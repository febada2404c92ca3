package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type InterviewHandler struct {
	sessions    *services.SessionManager
	interviewer services.InterviewerService
	feedback    services.FeedbackService
	validate    *validator.Validate
}

func NewInterviewHandler(
	sessions *services.SessionManager,
	interviewer services.InterviewerService,
	feedback services.FeedbackService,
	validate *validator.Validate,
) *InterviewHandler {
	return &InterviewHandler{
		sessions:    sessions,
		interviewer: interviewer,
		feedback:    feedback,
		validate:    validate,
	}
}

// HandleGenerateQuestions handles POST /interview/questions. It opens a new
// session and returns its ID with the generated questions. Question
// generation cannot fail: model problems degrade to canned questions.
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest

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

	sessionID := h.sessions.Start(req.Settings)
	questions := h.interviewer.GenerateQuestions(c.Context(), req.Settings, req.ResumeText)

	if err := h.sessions.RecordQuestions(sessionID, questions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store questions",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.GenerateQuestionsResponse{
		SessionID: sessionID.String(),
		Questions: questions,
	})
}

// HandleSubmitAnswer handles POST /interview/:sessionId/answers
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	var req models.SubmitAnswerRequest
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

	count, err := h.sessions.AppendAnswer(sessionID, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		case errors.Is(err, services.ErrAllQuestionsAnswered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "All questions already answered",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record answer",
			})
		}
	}

	return c.JSON(models.SubmitAnswerResponse{
		Message:      "Answer recorded",
		TotalAnswers: count,
	})
}

// HandleGetAnswers handles GET /interview/:sessionId/answers
func (h *InterviewHandler) HandleGetAnswers(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"session_id": session.ID.String(),
		"questions":  session.Questions,
		"answers":    session.Answers,
	})
}

// HandleGetFeedback handles GET /interview/:sessionId/feedback. The
// scorecard is generated once and reused on later calls.
func (h *InterviewHandler) HandleGetFeedback(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	if session.Feedback != nil {
		return c.JSON(session.Feedback)
	}

	feedback := h.feedback.GenerateFeedback(c.Context(), session)
	if err := h.sessions.AttachFeedback(sessionID, feedback); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return c.JSON(feedback)
}

// HandleEndSession handles DELETE /interview/:sessionId
func (h *InterviewHandler) HandleEndSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	if !h.sessions.Delete(sessionID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session ended",
	})
}
