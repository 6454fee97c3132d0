package model

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Front          string    `gorm:"type:text;not null"`
	Back           string    `gorm:"type:text"`
	Source         string    `gorm:"type:varchar(255)"`
	Easiness       float64   `gorm:"default:2.5"`
	IntervalDays   int       `gorm:"default:0"`
	Repetitions    int       `gorm:"default:0"`
	DueDate        time.Time `gorm:"not null;index"`
	LastQuality    *int
	LastReviewedAt *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Card) TableName() string {
	return "cards"
}
