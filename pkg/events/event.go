package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RESOURCE_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Domain event codes.
const (
	TypeResourceIndexed = "RESOURCE_INDEXED"
	TypePlanCreated     = "PLAN_CREATED"
	TypeCardReviewed    = "CARD_REVIEWED"
)

// NewResourceIndexed fires when the embedding pipeline finishes a
// resource, fully or partially.
func NewResourceIndexed(resourceId, userId uuid.UUID, status string, embedded, failed int) Event {
	return BaseEvent{
		Type: TypeResourceIndexed,
		Data: map[string]interface{}{
			"resource_id": resourceId.String(),
			"user_id":     userId.String(),
			"status":      status,
			"embedded":    embedded,
			"failed":      failed,
		},
		OccurredAt: time.Now(),
	}
}

func NewPlanCreated(planId, userId uuid.UUID, subject string, totalSessions int) Event {
	return BaseEvent{
		Type: TypePlanCreated,
		Data: map[string]interface{}{
			"plan_id":        planId.String(),
			"user_id":        userId.String(),
			"subject":        subject,
			"total_sessions": totalSessions,
		},
		OccurredAt: time.Now(),
	}
}

func NewCardReviewed(cardId, userId uuid.UUID, quality, intervalDays int, dueDate time.Time) Event {
	return BaseEvent{
		Type: TypeCardReviewed,
		Data: map[string]interface{}{
			"card_id":       cardId.String(),
			"user_id":       userId.String(),
			"quality":       quality,
			"interval_days": intervalDays,
			"due_date":      dueDate.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}
