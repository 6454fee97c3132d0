package entity

import (
	"time"

	"github.com/google/uuid"
)

// Card is a spaced-repetition flashcard. Created when a quiz answer is
// marked incorrect or a flashcard is explicitly added; mutated on every
// review; never deleted automatically.
type Card struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	Front          string
	Back           string
	Source         string
	Easiness       float64
	IntervalDays   int
	Repetitions    int
	DueDate        time.Time
	LastQuality    *int
	LastReviewedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
