package studyplan

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	ErrNoTopics        = errors.New("at least one topic is required")
	ErrExamNotInFuture = errors.New("exam date must be strictly in the future")
	ErrBudgetTooSmall  = errors.New("daily minutes budget must fit at least one session")
)

// Request is the input to plan construction.
type Request struct {
	Subject       string
	Topics        []TopicSignals
	ExamDate      time.Time
	DailyMinutes  int
	SessionLength int
}

// Session is one scheduled study block.
type Session struct {
	Topic           string
	Date            time.Time
	DurationMinutes int
	Objective       string
}

// Calendar is the constructed schedule plus derived metadata.
type Calendar struct {
	Sessions        []Session
	DaysUntilExam   int
	TotalSessions   int
	TotalMinutes    int
	TotalStudyHours float64
}

// Build converts topics, an exam deadline and daily time budgets into a
// concrete session calendar.
//
// Total available minutes (dailyMinutes x days until exam) are split
// across topics proportionally to their weighted importance score, with a
// floor so no topic is starved to zero sessions. Each topic's allocation
// is partitioned into sessions of the configured length (the last one may
// be shorter) and sessions are interleaved round-robin across the
// available days. The exam date is a hard upper bound: total scheduled
// minutes never exceed dailyMinutes x daysUntilExam, and no session lands
// on or after the exam day when it can be avoided.
//
// The whole construction is deterministic for a fixed 'now'.
func Build(req Request, w Weights, now time.Time) (*Calendar, error) {
	if len(req.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if !req.ExamDate.After(now) {
		return nil, ErrExamNotInFuture
	}
	if req.SessionLength <= 0 {
		return nil, fmt.Errorf("session length must be positive")
	}
	if req.DailyMinutes < req.SessionLength {
		return nil, ErrBudgetTooSmall
	}

	today := truncateToDay(now)
	examDay := truncateToDay(req.ExamDate)

	days := int(examDay.Sub(today).Hours() / 24)
	if days < 1 {
		days = 1 // exam later today: one compressed study day
	}

	totalMinutes := days * req.DailyMinutes

	scores := ComputeScores(req.Topics, w)
	allocations := allocateMinutes(scores, totalMinutes, req.SessionLength)

	// Partition each topic's minutes into sessions, then interleave topics
	// so no topic is exhausted before the others begin.
	perTopic := make([][]Session, len(allocations))
	for i, alloc := range allocations {
		perTopic[i] = partitionSessions(scores[i].Topic, alloc, req.SessionLength)
	}

	interleaved := interleave(perTopic)

	// Assign sessions to days round-robin, honouring the per-day budget.
	dayRemaining := make([]int, days)
	for d := range dayRemaining {
		dayRemaining[d] = req.DailyMinutes
	}

	var sessions []Session
	scheduledMinutes := 0
	cursor := 0
	for _, s := range interleaved {
		d, ok := findDay(dayRemaining, cursor, s.DurationMinutes)
		if !ok {
			// No day fits the full session: shrink into the roomiest day,
			// or stop when the calendar is saturated.
			d = roomiestDay(dayRemaining)
			if d < 0 {
				break
			}
			s.DurationMinutes = dayRemaining[d]
		}

		s.Date = today.AddDate(0, 0, d)
		dayRemaining[d] -= s.DurationMinutes
		scheduledMinutes += s.DurationMinutes
		sessions = append(sessions, s)
		cursor = (d + 1) % days
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})

	return &Calendar{
		Sessions:        sessions,
		DaysUntilExam:   days,
		TotalSessions:   len(sessions),
		TotalMinutes:    scheduledMinutes,
		TotalStudyHours: math.Round(float64(scheduledMinutes)/60*10) / 10,
	}, nil
}

// allocateMinutes splits totalMinutes across topics proportionally to
// score, guaranteeing every topic a floor allocation so low-score topics
// still get at least one session. The result sums to exactly totalMinutes.
func allocateMinutes(scores []TopicScore, totalMinutes, sessionLength int) []int {
	n := len(scores)

	floor := sessionLength
	if perTopic := totalMinutes / n; perTopic < floor {
		// More topics than full-length slots: shorten the guaranteed
		// session rather than dropping topics.
		floor = perTopic
		if floor < 1 {
			floor = 1
		}
	}

	totalScore := 0.0
	for _, s := range scores {
		totalScore += s.Score
	}

	alloc := make([]int, n)
	remaining := totalMinutes - floor*n
	if remaining < 0 {
		remaining = 0
	}

	distributed := 0
	for i, s := range scores {
		share := 0
		if totalScore > 0 {
			share = int(float64(remaining) * s.Score / totalScore)
		} else {
			share = remaining / n
		}
		alloc[i] = floor + share
		distributed += share
	}

	// Hand out the rounding leftover one minute at a time, highest score
	// first (ties keep topic order) to stay deterministic.
	leftover := remaining - distributed
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Score > scores[order[b]].Score
	})
	for i := 0; leftover > 0; i = (i + 1) % n {
		alloc[order[i]]++
		leftover--
	}

	return alloc
}

// partitionSessions cuts an allocation into sessions of sessionLength
// minutes; the final session carries the remainder.
func partitionSessions(topic string, minutes, sessionLength int) []Session {
	if minutes <= 0 {
		return nil
	}

	count := (minutes + sessionLength - 1) / sessionLength
	sessions := make([]Session, 0, count)
	for i := 0; i < count; i++ {
		duration := sessionLength
		if i == count-1 {
			duration = minutes - sessionLength*(count-1)
		}
		sessions = append(sessions, Session{
			Topic:           topic,
			DurationMinutes: duration,
			Objective:       fmt.Sprintf("Master %s - Part %d/%d", topic, i+1, count),
		})
	}
	return sessions
}

// interleave merges per-topic session lists round-robin: first session of
// every topic, then second of every topic, and so on.
func interleave(perTopic [][]Session) []Session {
	var out []Session
	for round := 0; ; round++ {
		emitted := false
		for _, sessions := range perTopic {
			if round < len(sessions) {
				out = append(out, sessions[round])
				emitted = true
			}
		}
		if !emitted {
			return out
		}
	}
}

// findDay scans days starting at cursor (wrapping) for one with enough
// remaining budget.
func findDay(remaining []int, cursor, minutes int) (int, bool) {
	for i := 0; i < len(remaining); i++ {
		d := (cursor + i) % len(remaining)
		if remaining[d] >= minutes {
			return d, true
		}
	}
	return 0, false
}

// roomiestDay returns the day with the most remaining budget, or -1 when
// every day is full.
func roomiestDay(remaining []int) int {
	best, bestIdx := 0, -1
	for d, r := range remaining {
		if r > best {
			best = r
			bestIdx = d
		}
	}
	return bestIdx
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
