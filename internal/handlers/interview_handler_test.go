package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

func newInterviewTestApp(t *testing.T) *fiber.App {
	t.Helper()

	fallbacks, err := services.NewFallbackStore("")
	require.NoError(t, err)

	sessions := services.NewSessionManager()
	interviewer := services.NewInterviewerService(nil, nil, fallbacks)
	feedback := services.NewFeedbackService(nil, services.NewQualityGate(0.6), fallbacks)

	handler := NewInterviewHandler(sessions, interviewer, feedback, validator.New())

	app := fiber.New()
	app.Post("/interview/questions", handler.HandleGenerateQuestions)
	app.Post("/interview/:sessionId/answers", handler.HandleSubmitAnswer)
	app.Get("/interview/:sessionId/answers", handler.HandleGetAnswers)
	app.Get("/interview/:sessionId/feedback", handler.HandleGetFeedback)
	app.Delete("/interview/:sessionId", handler.HandleEndSession)
	return app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func validGenerateRequest(n int) models.GenerateQuestionsRequest {
	return models.GenerateQuestionsRequest{
		Settings: models.InterviewSettings{
			JobTitle:          "Backend Engineer",
			CompanyName:       "Acme",
			JobLevel:          "Mid",
			InterviewType:     models.InterviewTypeTechnical,
			Difficulty:        "Moderate",
			NumberOfQuestions: n,
		},
	}
}

func startInterview(t *testing.T, app *fiber.App, n int) models.GenerateQuestionsResponse {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/interview/questions", validGenerateRequest(n)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out models.GenerateQuestionsResponse
	decodeBody(t, resp, &out)
	return out
}

func TestInterviewFlow_GenerateSubmitFeedback(t *testing.T) {
	app := newInterviewTestApp(t)

	started := startInterview(t, app, 2)
	require.NotEmpty(t, started.SessionID)
	require.Len(t, started.Questions, 2)

	// Answer both questions.
	for i := 1; i <= 2; i++ {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/interview/%s/answers", started.SessionID),
			models.SubmitAnswerRequest{
				QuestionID: i,
				Answer:     "I led the migration of our billing pipeline and solved the reprocessing problem with idempotency keys.",
			}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out models.SubmitAnswerResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, i, out.TotalAnswers)
	}

	// A third answer is rejected.
	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/interview/%s/answers", started.SessionID),
		models.SubmitAnswerRequest{QuestionID: 3, Answer: "one too many"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Feedback comes from the unavailable scorecard since there is no model.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/interview/%s/feedback", started.SessionID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var feedback models.InterviewFeedback
	decodeBody(t, resp, &feedback)
	assert.Equal(t, 4, feedback.OverallScore)
}

func TestInterviewFlow_FeedbackIsGeneratedOnce(t *testing.T) {
	app := newInterviewTestApp(t)

	started := startInterview(t, app, 1)
	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/interview/%s/answers", started.SessionID),
		models.SubmitAnswerRequest{
			QuestionID: 1,
			Answer:     "I rebuilt our ingestion service around a queue and cut the error rate in half.",
		}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var first, second models.InterviewFeedback
	for _, out := range []*models.InterviewFeedback{&first, &second} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/interview/%s/feedback", started.SessionID), nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		decodeBody(t, resp, out)
	}

	assert.Equal(t, first, second)
}

func TestInterviewHandler_Validation(t *testing.T) {
	app := newInterviewTestApp(t)

	// Unknown interview type.
	req := validGenerateRequest(2)
	req.Settings.InterviewType = "Casual"
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/interview/questions", req))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Too many questions.
	req = validGenerateRequest(50)
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/interview/questions", req))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_UnknownSession(t *testing.T) {
	app := newInterviewTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/interview/6a6f6b65-0000-0000-0000-000000000000/answers",
		models.SubmitAnswerRequest{QuestionID: 1, Answer: "hello there"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/interview/6a6f6b65-0000-0000-0000-000000000000/feedback", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInterviewHandler_MalformedSessionID(t *testing.T) {
	app := newInterviewTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/interview/not-a-uuid/answers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_EndSession(t *testing.T) {
	app := newInterviewTestApp(t)

	started := startInterview(t, app, 1)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/interview/%s", started.SessionID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The session is gone afterwards.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/interview/%s/answers", started.SessionID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
