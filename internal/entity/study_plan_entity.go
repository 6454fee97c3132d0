package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCompleted SessionStatus = "completed"
)

// StudyPlan is a learner's study plan. Immutable after creation except
// for its sessions' completion status.
type StudyPlan struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId          uuid.UUID `gorm:"type:uuid;index"`
	Subject         string
	Topics          []string
	ExamDate        time.Time
	DailyMinutes    int
	SessionLength   int
	DaysUntilExam   int
	TotalSessions   int
	TotalStudyHours float64
	CreatedAt       time.Time
	DeletedAt       *time.Time
	IsDeleted       bool

	Sessions []*StudySession
}

// StudySession is one scheduled study block of a plan. Only its status
// ever changes after creation.
type StudySession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanId          uuid.UUID `gorm:"type:uuid;index"`
	Topic           string
	ScheduledDate   time.Time
	DurationMinutes int
	Objective       string
	Status          SessionStatus
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
