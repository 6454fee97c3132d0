package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudyPlan struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Subject         string                      `gorm:"type:varchar(255);not null"`
	Topics          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ExamDate        time.Time                   `gorm:"not null"`
	DailyMinutes    int                         `gorm:"default:60"`
	SessionLength   int                         `gorm:"default:45"`
	DaysUntilExam   int                         `gorm:"default:0"`
	TotalSessions   int                         `gorm:"default:0"`
	TotalStudyHours float64                     `gorm:"default:0"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime"`
	DeletedAt       gorm.DeletedAt              `gorm:"index"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

type StudySession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Topic           string    `gorm:"type:varchar(255);not null"`
	ScheduledDate   time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"default:0"`
	Objective       string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(32);default:'pending'"`
	CompletedAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
