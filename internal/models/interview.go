package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InterviewTypeTechnical  = "Technical"
	InterviewTypeBehavioral = "Behavioral"
	InterviewTypeResume     = "Resume"
	InterviewTypeMixed      = "Mixed"
)

// InterviewSettings describes one interview as configured by the client.
// Immutable once the session starts.
type InterviewSettings struct {
	JobTitle          string `json:"job_title" validate:"required"`
	CompanyName       string `json:"company_name" validate:"required"`
	JobDescription    string `json:"job_description"`
	JobLevel          string `json:"job_level" validate:"required,oneof=Intern Entry Mid Senior Lead Executive"`
	InterviewType     string `json:"interview_type" validate:"required,oneof=Technical Behavioral Resume Mixed"`
	Difficulty        string `json:"difficulty" validate:"required,oneof=Easy Moderate Hard"`
	NumberOfQuestions int    `json:"number_of_questions" validate:"required,min=1,max=20"`
	AnswerLength      string `json:"answer_length" validate:"omitempty,oneof=Short Medium Long"`
	PrepTime          int    `json:"prep_time" validate:"min=0"`
	ResumeSummary     string `json:"resume_summary,omitempty"`
}

type Question struct {
	ID           int    `json:"id"`
	Question     string `json:"question"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
}

type Answer struct {
	QuestionID int       `json:"question_id"`
	Answer     string    `json:"answer"`
	Timestamp  time.Time `json:"timestamp"`
}

type FeedbackItem struct {
	Category    string  `json:"category" yaml:"category"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Suggestion  *string `json:"suggestion" yaml:"suggestion"`
}

type QuestionScore struct {
	QuestionIndex int      `json:"question_index" yaml:"question_index"`
	Score         int      `json:"score" yaml:"score"`
	Feedback      string   `json:"feedback" yaml:"feedback"`
	Suggestions   []string `json:"suggestions" yaml:"suggestions"`
}

type CategoryScores struct {
	Communication  int `json:"communication" yaml:"communication"`
	Technical      int `json:"technical" yaml:"technical"`
	ProblemSolving int `json:"problem_solving" yaml:"problem_solving"`
	Behavioral     int `json:"behavioral" yaml:"behavioral"`
}

type InterviewFeedback struct {
	OverallScore   int             `json:"overall_score" yaml:"overall_score"`
	QuestionScores []QuestionScore `json:"question_scores" yaml:"question_scores"`
	CategoryScores CategoryScores  `json:"category_scores" yaml:"category_scores"`
	Strengths      []FeedbackItem  `json:"strengths" yaml:"strengths"`
	Weaknesses     []FeedbackItem  `json:"weaknesses" yaml:"weaknesses"`
	Improvements   []FeedbackItem  `json:"improvements" yaml:"improvements"`
	Summary        string          `json:"summary" yaml:"summary"`
}

// Session holds the in-process state of one active interview, keyed by its
// ID. Answers are index-aligned with questions and never exceed them.
type Session struct {
	ID         uuid.UUID          `json:"id"`
	Settings   InterviewSettings  `json:"settings"`
	Questions  []Question         `json:"questions"`
	Answers    []Answer           `json:"answers"`
	Feedback   *InterviewFeedback `json:"feedback,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	LastActive time.Time          `json:"last_active"`
}
