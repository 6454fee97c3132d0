package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResourceStatus string

const (
	// ResourceStatusPending: uploaded, chunks not yet embedded.
	ResourceStatusPending ResourceStatus = "pending"
	// ResourceStatusIndexed: every chunk has an embedding.
	ResourceStatusIndexed ResourceStatus = "indexed"
	// ResourceStatusPartiallyIndexed: some chunks failed to embed after
	// retries; retrieval proceeds over the chunks that succeeded.
	ResourceStatusPartiallyIndexed ResourceStatus = "partially_indexed"
)

// Resource is an uploaded document owned by exactly one learner.
// Immutable after creation except for the derived index status.
type Resource struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Filename  string
	CharCount int
	Status    ResourceStatus
	CreatedAt time.Time
	IndexedAt *time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
