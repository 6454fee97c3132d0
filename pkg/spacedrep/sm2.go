package spacedrep

import (
	"errors"
	"math"
	"time"
)

// SuperMemo-2 scheduling. The engine is stateless: it maps a card's
// current scheduling state plus one recall-quality rating to the next
// state. Reviews themselves come from outside (typically quiz outcomes).

const (
	// InitialEasiness is the easiness factor assigned to new cards.
	InitialEasiness = 2.5
	// MinEasiness is the floor below which the easiness factor never drops.
	MinEasiness = 1.3
	// PassThreshold: ratings of 3 and above count as successful recall.
	PassThreshold = 3
)

// QualityResponse is the recall quality rating for a review.
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

var ErrInvalidQuality = errors.New("quality rating must be between 0 and 5")

// State is a card's scheduling state.
type State struct {
	Easiness     float64
	IntervalDays int
	Repetitions  int
	DueDate      time.Time
}

// NewState returns the scheduling state for a card that has never been
// reviewed: immediately due.
func NewState(createdAt time.Time) State {
	return State{
		Easiness:     InitialEasiness,
		IntervalDays: 0,
		Repetitions:  0,
		DueDate:      createdAt,
	}
}

// Review applies one review to the state.
//
// On failure (q < 3) the repetition chain restarts: repetitions reset to 0
// and the card comes back tomorrow. On success the interval follows the
// classic 1, 6, round(I*E) progression. The easiness factor is updated on
// every review, success or failure; the interval formula uses the easiness
// as of BEFORE this review's update.
func Review(s State, quality QualityResponse, now time.Time) (State, error) {
	if quality < QualityBlackout || quality > QualityPerfect {
		return s, ErrInvalidQuality
	}

	next := s

	if quality < PassThreshold {
		// Failed - reset to beginning
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.Easiness))
		}
	}

	// Update easiness factor
	q := float64(quality)
	easiness := s.Easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if easiness < MinEasiness {
		easiness = MinEasiness
	}
	next.Easiness = easiness

	next.DueDate = now.AddDate(0, 0, next.IntervalDays)

	return next, nil
}

// IsDue reports whether a card with the given state should be surfaced
// for review at asOf.
func IsDue(s State, asOf time.Time) bool {
	return !s.DueDate.After(asOf)
}

// QualityFromQuizResult maps a binary quiz outcome onto the 0-5 scale:
// a correct answer counts as a confident recall, an incorrect one as a
// familiar miss.
func QualityFromQuizResult(correct bool) QualityResponse {
	if correct {
		return QualityCorrectHesitation
	}
	return QualityIncorrectFamiliar
}
