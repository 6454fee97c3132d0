package dto

import (
	"time"

	"github.com/google/uuid"
)

// TopicSignalInput lets the caller override the raw planning signals for
// one topic. Absent values fall back to neutral defaults; note volume is
// always measured from the learner's indexed material.
type TopicSignalInput struct {
	PastPaperFrequency *float64 `json:"past_paper_frequency" validate:"omitempty,gte=0"`
	Difficulty         *float64 `json:"difficulty" validate:"omitempty,gte=0"`
}

type CreatePlanRequest struct {
	Subject       string                      `json:"subject" validate:"required"`
	Topics        []string                    `json:"topics" validate:"required,min=1,dive,required"`
	ExamDate      time.Time                   `json:"exam_date" validate:"required"`
	DailyMinutes  int                         `json:"daily_minutes" validate:"required,gt=0"`
	SessionLength int                         `json:"session_length" validate:"required,gt=0"`
	Signals       map[string]TopicSignalInput `json:"signals"`
}

type SessionResponse struct {
	Id              uuid.UUID  `json:"id"`
	Topic           string     `json:"topic"`
	ScheduledDate   time.Time  `json:"scheduled_date"`
	DurationMinutes int        `json:"duration_minutes"`
	Objective       string     `json:"objective"`
	Status          string     `json:"status"`
	CompletedAt     *time.Time `json:"completed_at"`
}

type PlanResponse struct {
	Id              uuid.UUID         `json:"id"`
	Subject         string            `json:"subject"`
	Topics          []string          `json:"topics"`
	ExamDate        time.Time         `json:"exam_date"`
	DaysUntilExam   int               `json:"days_until_exam"`
	TotalSessions   int               `json:"total_sessions"`
	TotalStudyHours float64           `json:"total_study_hours"`
	CreatedAt       time.Time         `json:"created_at"`
	Sessions        []SessionResponse `json:"sessions,omitempty"`
	NextSession     *SessionResponse  `json:"next_session,omitempty"`
}

type CompleteSessionResponse struct {
	Id          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}
