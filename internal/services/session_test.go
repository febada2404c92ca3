package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
)

func testSettings() models.InterviewSettings {
	return models.InterviewSettings{
		JobTitle:          "Backend Engineer",
		CompanyName:       "Acme",
		JobLevel:          "Mid",
		InterviewType:     models.InterviewTypeTechnical,
		Difficulty:        "Moderate",
		NumberOfQuestions: 2,
	}
}

func testQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Question: "Q1?", QuestionType: models.InterviewTypeTechnical, Difficulty: "Moderate"},
		{ID: 2, Question: "Q2?", QuestionType: models.InterviewTypeTechnical, Difficulty: "Moderate"},
	}
}

func TestSessionManager_StartAndGet(t *testing.T) {
	m := NewSessionManager()

	id := m.Start(testSettings())
	require.NoError(t, m.RecordQuestions(id, testQuestions()))

	session, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, session.ID)
	assert.Len(t, session.Questions, 2)
	assert.Empty(t, session.Answers)
}

func TestSessionManager_UnknownSession(t *testing.T) {
	m := NewSessionManager()

	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.AppendAnswer(uuid.New(), 1, "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, m.RecordQuestions(uuid.New(), testQuestions()), ErrSessionNotFound)
	assert.ErrorIs(t, m.AttachFeedback(uuid.New(), models.InterviewFeedback{}), ErrSessionNotFound)
}

func TestSessionManager_AnswersNeverOutnumberQuestions(t *testing.T) {
	m := NewSessionManager()

	id := m.Start(testSettings())
	require.NoError(t, m.RecordQuestions(id, testQuestions()))

	count, err := m.AppendAnswer(id, 1, "first answer")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = m.AppendAnswer(id, 2, "second answer")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = m.AppendAnswer(id, 3, "one too many")
	assert.ErrorIs(t, err, ErrAllQuestionsAnswered)

	session, err := m.Get(id)
	require.NoError(t, err)
	assert.Len(t, session.Answers, 2)
}

func TestSessionManager_ConcurrentSessionsAreIsolated(t *testing.T) {
	m := NewSessionManager()

	first := m.Start(testSettings())
	second := m.Start(testSettings())
	require.NoError(t, m.RecordQuestions(first, testQuestions()))
	require.NoError(t, m.RecordQuestions(second, testQuestions()))

	_, err := m.AppendAnswer(first, 1, "answer for the first session")
	require.NoError(t, err)

	one, err := m.Get(first)
	require.NoError(t, err)
	other, err := m.Get(second)
	require.NoError(t, err)

	assert.Len(t, one.Answers, 1)
	assert.Empty(t, other.Answers)
}

func TestSessionManager_GetReturnsSnapshot(t *testing.T) {
	m := NewSessionManager()

	id := m.Start(testSettings())
	require.NoError(t, m.RecordQuestions(id, testQuestions()))

	snapshot, err := m.Get(id)
	require.NoError(t, err)
	snapshot.Questions[0].Question = "mutated"

	fresh, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Q1?", fresh.Questions[0].Question)
}

func TestSessionManager_AttachFeedbackOnce(t *testing.T) {
	m := NewSessionManager()

	id := m.Start(testSettings())
	require.NoError(t, m.RecordQuestions(id, testQuestions()))
	require.NoError(t, m.AttachFeedback(id, models.InterviewFeedback{OverallScore: 8}))

	session, err := m.Get(id)
	require.NoError(t, err)
	require.NotNil(t, session.Feedback)
	assert.Equal(t, 8, session.Feedback.OverallScore)
}

func TestSessionManager_Delete(t *testing.T) {
	m := NewSessionManager()

	id := m.Start(testSettings())
	assert.True(t, m.Delete(id))
	assert.False(t, m.Delete(id))

	_, err := m.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_SweepOlderThan(t *testing.T) {
	m := NewSessionManager()

	stale := m.Start(testSettings())
	fresh := m.Start(testSettings())

	// Age the first session past the cutoff.
	m.mu.Lock()
	m.sessions[stale].LastActive = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	removed := m.SweepOlderThan(time.Hour)
	assert.Equal(t, 1, removed)

	_, err := m.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh)
	assert.NoError(t, err)
}

func TestSessionManager_Stats(t *testing.T) {
	m := NewSessionManager()

	first := m.Start(testSettings())
	m.Start(testSettings())
	m.Delete(first)

	stats := m.Stats()
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Deleted)
}
