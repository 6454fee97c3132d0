package spacedrep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsImmediatelyDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := NewState(now)

	assert.Equal(t, InitialEasiness, state.Easiness)
	assert.Equal(t, 0, state.IntervalDays)
	assert.Equal(t, 0, state.Repetitions)
	assert.True(t, IsDue(state, now))
}

func TestReviewSuccessProgression(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := NewState(now)

	// Three perfect reviews: 1 day, 6 days, then round(6 * 2.7) = 16.
	state, err := Review(state, QualityPerfect, now)
	require.NoError(t, err)
	assert.Equal(t, 1, state.IntervalDays)
	assert.Equal(t, 1, state.Repetitions)
	assert.InDelta(t, 2.6, state.Easiness, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 1), state.DueDate)

	state, err = Review(state, QualityPerfect, now)
	require.NoError(t, err)
	assert.Equal(t, 6, state.IntervalDays)
	assert.Equal(t, 2, state.Repetitions)
	assert.InDelta(t, 2.7, state.Easiness, 1e-9)

	state, err = Review(state, QualityPerfect, now)
	require.NoError(t, err)
	assert.Equal(t, 16, state.IntervalDays)
	assert.Equal(t, 3, state.Repetitions)
	assert.InDelta(t, 2.8, state.Easiness, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 16), state.DueDate)
}

func TestReviewIntervalUsesEasinessBeforeUpdate(t *testing.T) {
	now := time.Now()
	state := State{Easiness: 2.0, IntervalDays: 10, Repetitions: 2, DueDate: now}

	next, err := Review(state, QualityCorrectDifficult, now)
	require.NoError(t, err)

	// round(10 * 2.0) = 20, not 10 * the post-review easiness.
	assert.Equal(t, 20, next.IntervalDays)
	assert.InDelta(t, 2.0-0.14, next.Easiness, 1e-9)
}

func TestReviewFailureResets(t *testing.T) {
	now := time.Now()
	state := State{Easiness: 2.5, IntervalDays: 16, Repetitions: 3, DueDate: now}

	tests := []struct {
		name    string
		quality QualityResponse
	}{
		{"blackout", QualityBlackout},
		{"incorrect", QualityIncorrect},
		{"incorrect but familiar", QualityIncorrectFamiliar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Review(state, tt.quality, now)
			require.NoError(t, err)

			assert.Equal(t, 0, next.Repetitions)
			assert.Equal(t, 1, next.IntervalDays)
			assert.Equal(t, now.AddDate(0, 0, 1), next.DueDate)
			// Easiness still drops on failure.
			assert.Less(t, next.Easiness, state.Easiness)
		})
	}
}

func TestReviewEasinessFloor(t *testing.T) {
	now := time.Now()
	state := NewState(now)

	// Repeated blackouts push easiness toward the floor, never below.
	var err error
	for i := 0; i < 10; i++ {
		state, err = Review(state, QualityBlackout, now)
		require.NoError(t, err)
	}
	assert.Equal(t, MinEasiness, state.Easiness)
}

func TestReviewInvalidQuality(t *testing.T) {
	now := time.Now()
	state := NewState(now)

	for _, q := range []QualityResponse{-1, 6, 100} {
		next, err := Review(state, q, now)
		assert.ErrorIs(t, err, ErrInvalidQuality)
		// State is returned unchanged on error.
		assert.Equal(t, state, next)
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, IsDue(State{DueDate: now}, now))
	assert.True(t, IsDue(State{DueDate: now.Add(-time.Hour)}, now))
	assert.False(t, IsDue(State{DueDate: now.Add(time.Hour)}, now))
}

func TestQualityFromQuizResult(t *testing.T) {
	assert.Equal(t, QualityCorrectHesitation, QualityFromQuizResult(true))
	assert.Equal(t, QualityIncorrectFamiliar, QualityFromQuizResult(false))

	// Correct advances the chain, incorrect resets it.
	now := time.Now()
	state := NewState(now)

	passed, err := Review(state, QualityFromQuizResult(true), now)
	require.NoError(t, err)
	assert.Equal(t, 1, passed.Repetitions)

	failed, err := Review(passed, QualityFromQuizResult(false), now)
	require.NoError(t, err)
	assert.Equal(t, 0, failed.Repetitions)
}
