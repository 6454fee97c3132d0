package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCardRequest struct {
	Front  string `json:"front" validate:"required"`
	Back   string `json:"back"`
	Source string `json:"source"`
}

type ReviewCardRequest struct {
	Quality int `json:"quality" validate:"min=0,max=5"`
}

// QuizResultRequest records one answered quiz question. Incorrect
// answers create or demote the card backing the question.
type QuizResultRequest struct {
	Front   string `json:"front" validate:"required"`
	Back    string `json:"back"`
	Correct bool   `json:"correct"`
}

type CardResponse struct {
	Id             uuid.UUID  `json:"id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Source         string     `json:"source"`
	Easiness       float64    `json:"easiness"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	DueDate        time.Time  `json:"due_date"`
	LastQuality    *int       `json:"last_quality"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}
