package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockmate/interview-api/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrAllQuestionsAnswered guards the invariant that a session never holds
	// more answers than questions.
	ErrAllQuestionsAnswered = errors.New("all questions already answered")
)

// SessionManager owns the in-process interview sessions, keyed by token so
// concurrent interviews do not clobber each other. Sessions are not persisted;
// a completed interview is only durable once saved to the history store.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session

	stopChan chan struct{}
	wg       sync.WaitGroup

	created int
	deleted int
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*models.Session),
		stopChan: make(chan struct{}),
	}
}

// Start creates a fresh session for the given settings and returns its ID.
func (m *SessionManager) Start(settings models.InterviewSettings) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	now := time.Now()
	m.sessions[id] = &models.Session{
		ID:         id,
		Settings:   settings,
		CreatedAt:  now,
		LastActive: now,
	}
	m.created++
	return id
}

// RecordQuestions stores the generated question list on the session.
func (m *SessionManager) RecordQuestions(id uuid.UUID, questions []models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	session.Questions = questions
	session.LastActive = time.Now()
	return nil
}

// AppendAnswer records one answer, timestamped at submission, and returns
// the new answer count. Answers never outnumber questions.
func (m *SessionManager) AppendAnswer(id uuid.UUID, questionID int, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if len(session.Answers) >= len(session.Questions) {
		return 0, ErrAllQuestionsAnswered
	}

	session.Answers = append(session.Answers, models.Answer{
		QuestionID: questionID,
		Answer:     text,
		Timestamp:  time.Now(),
	})
	session.LastActive = time.Now()
	return len(session.Answers), nil
}

// Get returns a snapshot of the session. Mutating the copy does not affect
// the stored session.
func (m *SessionManager) Get(id uuid.UUID) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.LastActive = time.Now()

	snapshot := *session
	snapshot.Questions = append([]models.Question(nil), session.Questions...)
	snapshot.Answers = append([]models.Answer(nil), session.Answers...)
	return &snapshot, nil
}

// AttachFeedback stores the generated scorecard on the session.
func (m *SessionManager) AttachFeedback(id uuid.UUID, feedback models.InterviewFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	session.Feedback = &feedback
	session.LastActive = time.Now()
	return nil
}

// Delete removes a session.
func (m *SessionManager) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.deleted++
	return true
}

// SweepOlderThan evicts sessions idle for longer than maxAge and returns how
// many were removed.
func (m *SessionManager) SweepOlderThan(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		if session.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			m.deleted++
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic eviction loop until StopSweeper is called.
func (m *SessionManager) StartSweeper(interval, maxAge time.Duration) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("🔄 Session sweeper started (interval %s, max age %s)\n", interval, maxAge)
		for {
			select {
			case <-m.stopChan:
				log.Println("🔄 Session sweeper stopped")
				return
			case <-ticker.C:
				if removed := m.SweepOlderThan(maxAge); removed > 0 {
					log.Printf("🧹 Swept %d stale sessions\n", removed)
				}
			}
		}
	}()
}

// StopSweeper stops the eviction loop and waits for it to exit.
func (m *SessionManager) StopSweeper() {
	close(m.stopChan)
	m.wg.Wait()
}

// SessionStats reports counters for the health endpoint.
type SessionStats struct {
	Active  int `json:"active_sessions"`
	Created int `json:"total_created"`
	Deleted int `json:"total_deleted"`
}

func (m *SessionManager) Stats() SessionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return SessionStats{
		Active:  len(m.sessions),
		Created: m.created,
		Deleted: m.deleted,
	}
}
