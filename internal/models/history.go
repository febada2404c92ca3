package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewRecord is the durable copy of one completed interview. It is
// written once when the user saves an interview and never updated; the
// questions and answers columns are parallel lists of equal length.
type InterviewRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	JobTitle      string `gorm:"type:text" json:"job_title"`
	CompanyName   string `gorm:"type:text" json:"company_name"`
	JobLevel      string `gorm:"type:text" json:"job_level"`
	InterviewType string `gorm:"type:text;not null" json:"interview_type"`
	Difficulty    string `gorm:"type:text;not null" json:"difficulty"`

	Questions []string `gorm:"serializer:json;not null" json:"questions"`
	Answers   []string `gorm:"serializer:json;not null" json:"answers"`

	OverallScore        *float64 `json:"overall_score,omitempty"`
	CommunicationScore  *float64 `json:"communication_score,omitempty"`
	TechnicalScore      *float64 `json:"technical_score,omitempty"`
	ProblemSolvingScore *float64 `json:"problem_solving_score,omitempty"`
	BehavioralScore     *float64 `json:"behavioral_score,omitempty"`

	FeedbackSummary string   `gorm:"type:text" json:"feedback_summary"`
	Strengths       []string `gorm:"serializer:json" json:"strengths"`
	Improvements    []string `gorm:"serializer:json" json:"improvements"`

	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (InterviewRecord) TableName() string {
	return "interview_records"
}

// SavedResume stores a resume text plus its model analysis. At most one row
// per user is active; saving a new resume deactivates the others.
type SavedResume struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeText string         `gorm:"type:text;not null" json:"resume_text"`
	AIAnalysis map[string]any `gorm:"serializer:json" json:"ai_analysis,omitempty"`
	AISummary  string         `gorm:"type:text" json:"ai_summary,omitempty"`
	Filename   string         `gorm:"type:text" json:"filename,omitempty"`
	IsActive   bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SavedResume) TableName() string {
	return "saved_resumes"
}
