package specification

import (
	"time"

	"gorm.io/gorm"
)

// DueBefore surfaces cards whose due date has arrived as of the given
// instant.
type DueBefore struct {
	AsOf time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("due_date <= ?", s.AsOf)
}

// ByFront matches a card by its exact front text. Used to find the card
// backing a quiz question.
type ByFront struct {
	Front string
}

func (s ByFront) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("front = ?", s.Front)
}

// ReviewPriority orders due cards for review: never-reviewed cards first,
// then the hardest (lowest easiness), then the most overdue.
type ReviewPriority struct{}

func (s ReviewPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("(last_reviewed_at IS NULL) DESC, easiness ASC, due_date ASC")
}
