package models

import "time"

type GenerateQuestionsRequest struct {
	Settings   InterviewSettings `json:"settings" validate:"required"`
	ResumeText string            `json:"resume_text,omitempty"`
}

type GenerateQuestionsResponse struct {
	SessionID string     `json:"session_id"`
	Questions []Question `json:"questions"`
}

type SubmitAnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"required,min=1"`
	Answer     string `json:"answer" validate:"required"`
}

type SubmitAnswerResponse struct {
	Message      string `json:"message"`
	TotalAnswers int    `json:"total_answers"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type SaveInterviewRequest struct {
	JobTitle            string   `json:"job_title"`
	CompanyName         string   `json:"company_name"`
	JobLevel            string   `json:"job_level"`
	InterviewType       string   `json:"interview_type" validate:"required,oneof=Technical Behavioral Resume Mixed"`
	Difficulty          string   `json:"difficulty" validate:"required,oneof=Easy Moderate Hard"`
	Questions           []string `json:"questions" validate:"required,min=1"`
	Answers             []string `json:"answers" validate:"required"`
	OverallScore        *float64 `json:"overall_score"`
	CommunicationScore  *float64 `json:"communication_score"`
	TechnicalScore      *float64 `json:"technical_score"`
	ProblemSolvingScore *float64 `json:"problem_solving_score"`
	BehavioralScore     *float64 `json:"behavioral_score"`
	FeedbackSummary     string   `json:"feedback_summary"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
}

type InterviewSummary struct {
	ID            string     `json:"id"`
	JobTitle      string     `json:"job_title"`
	CompanyName   string     `json:"company_name"`
	InterviewType string     `json:"interview_type"`
	Difficulty    string     `json:"difficulty"`
	OverallScore  *float64   `json:"overall_score"`
	QuestionCount int        `json:"question_count"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type SaveResumeRequest struct {
	ResumeText string         `json:"resume_text" validate:"required"`
	AIAnalysis map[string]any `json:"ai_analysis"`
	AISummary  string         `json:"ai_summary"`
	Filename   string         `json:"filename"`
}

type ResumeUploadResponse struct {
	Filename   string         `json:"filename"`
	ResumeText string         `json:"resume_text"`
	AIAnalysis map[string]any `json:"ai_analysis,omitempty"`
	AISummary  string         `json:"ai_summary,omitempty"`
}

type UserStats struct {
	TotalInterviews  int             `json:"total_interviews"`
	AverageScore     float64         `json:"average_score"`
	BestScore        float64         `json:"best_score"`
	RecentTrend      string          `json:"recent_trend"`
	InterviewsByType map[string]int  `json:"interviews_by_type"`
	ScoreProgression []ScoreProgress `json:"score_progression"`
}

type ScoreProgress struct {
	Date          time.Time `json:"date"`
	Score         float64   `json:"score"`
	InterviewType string    `json:"interview_type"`
}
