package studyplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func twoTopicRequest() Request {
	return Request{
		Subject: "Biology",
		Topics: []TopicSignals{
			{Topic: "Genetics", PastPaperFrequency: 0.5, NoteVolume: 0.5, Difficulty: 0.5},
			{Topic: "Ecology", PastPaperFrequency: 0.5, NoteVolume: 0.5, Difficulty: 0.5},
		},
		ExamDate:      testNow.AddDate(0, 0, 10),
		DailyMinutes:  60,
		SessionLength: 30,
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "no topics",
			mutate:  func(r *Request) { r.Topics = nil },
			wantErr: ErrNoTopics,
		},
		{
			name:    "exam in the past",
			mutate:  func(r *Request) { r.ExamDate = testNow.AddDate(0, 0, -1) },
			wantErr: ErrExamNotInFuture,
		},
		{
			name:    "exam exactly now",
			mutate:  func(r *Request) { r.ExamDate = testNow },
			wantErr: ErrExamNotInFuture,
		},
		{
			name:    "daily budget below session length",
			mutate:  func(r *Request) { r.DailyMinutes = 20 },
			wantErr: ErrBudgetTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := twoTopicRequest()
			tt.mutate(&req)

			_, err := Build(req, DefaultWeights(), testNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildTwoTopicsTenDays(t *testing.T) {
	calendar, err := Build(twoTopicRequest(), DefaultWeights(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 10, calendar.DaysUntilExam)
	assert.Equal(t, 600, calendar.TotalMinutes)
	assert.Equal(t, 10.0, calendar.TotalStudyHours)
	assert.Equal(t, len(calendar.Sessions), calendar.TotalSessions)

	// Uniform signals split the budget evenly: both topics get real work.
	perTopic := map[string]int{}
	for _, s := range calendar.Sessions {
		perTopic[s.Topic] += s.DurationMinutes
	}
	assert.Equal(t, 300, perTopic["Genetics"])
	assert.Equal(t, 300, perTopic["Ecology"])
}

func TestBuildHonorsDailyBudget(t *testing.T) {
	req := twoTopicRequest()
	calendar, err := Build(req, DefaultWeights(), testNow)
	require.NoError(t, err)

	perDay := map[time.Time]int{}
	for _, s := range calendar.Sessions {
		perDay[s.Date] += s.DurationMinutes
	}
	for date, minutes := range perDay {
		assert.LessOrEqualf(t, minutes, req.DailyMinutes, "day %s over budget", date)
	}
}

func TestBuildNoSessionOnOrAfterExam(t *testing.T) {
	req := twoTopicRequest()
	calendar, err := Build(req, DefaultWeights(), testNow)
	require.NoError(t, err)

	examDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	for _, s := range calendar.Sessions {
		assert.True(t, s.Date.Before(examDay), "session on %s is not before the exam", s.Date)
	}
}

func TestBuildWeightsShiftAllocation(t *testing.T) {
	req := twoTopicRequest()
	req.Topics[0].PastPaperFrequency = 1.0
	req.Topics[0].Difficulty = 1.0
	req.Topics[1].PastPaperFrequency = 0.0
	req.Topics[1].Difficulty = 0.0

	calendar, err := Build(req, DefaultWeights(), testNow)
	require.NoError(t, err)

	perTopic := map[string]int{}
	for _, s := range calendar.Sessions {
		perTopic[s.Topic] += s.DurationMinutes
	}

	assert.Greater(t, perTopic["Genetics"], perTopic["Ecology"])
	// The floor keeps the low-priority topic alive.
	assert.GreaterOrEqual(t, perTopic["Ecology"], req.SessionLength)
}

func TestBuildMoreTopicsThanSlots(t *testing.T) {
	req := Request{
		Subject: "Cram",
		Topics: []TopicSignals{
			{Topic: "A"}, {Topic: "B"}, {Topic: "C"}, {Topic: "D"}, {Topic: "E"},
		},
		ExamDate:      testNow.AddDate(0, 0, 1),
		DailyMinutes:  60,
		SessionLength: 30,
	}

	calendar, err := Build(req, DefaultWeights(), testNow)
	require.NoError(t, err)

	// One 60-minute day cannot hold five full sessions; the calendar
	// saturates instead of overflowing.
	assert.LessOrEqual(t, calendar.TotalMinutes, 60)
	assert.NotEmpty(t, calendar.Sessions)
}

func TestBuildDeterministic(t *testing.T) {
	first, err := Build(twoTopicRequest(), DefaultWeights(), testNow)
	require.NoError(t, err)
	second, err := Build(twoTopicRequest(), DefaultWeights(), testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildSessionsSortedAndLabelled(t *testing.T) {
	calendar, err := Build(twoTopicRequest(), DefaultWeights(), testNow)
	require.NoError(t, err)

	for i := 1; i < len(calendar.Sessions); i++ {
		assert.False(t, calendar.Sessions[i].Date.Before(calendar.Sessions[i-1].Date))
	}
	for _, s := range calendar.Sessions {
		assert.Contains(t, s.Objective, s.Topic)
	}
}

func TestComputeScoresUniformSignals(t *testing.T) {
	topics := []TopicSignals{
		{Topic: "A", PastPaperFrequency: 3, NoteVolume: 100, Difficulty: 0.5},
		{Topic: "B", PastPaperFrequency: 3, NoteVolume: 100, Difficulty: 0.5},
	}

	scores := ComputeScores(topics, DefaultWeights())
	assert.InDelta(t, scores[0].Score, scores[1].Score, 1e-9)
}

func TestComputeScoresNormalizesScales(t *testing.T) {
	// Note volume arrives as raw chunk counts; without normalization it
	// would drown the 0-1 signals.
	topics := []TopicSignals{
		{Topic: "A", PastPaperFrequency: 1.0, NoteVolume: 2, Difficulty: 1.0},
		{Topic: "B", PastPaperFrequency: 0.0, NoteVolume: 900, Difficulty: 0.0},
	}

	scores := ComputeScores(topics, DefaultWeights())
	assert.Greater(t, scores[0].Score, scores[1].Score)
}
