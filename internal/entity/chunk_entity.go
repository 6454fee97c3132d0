package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChunkEmbedStatus string

const (
	ChunkEmbedPending ChunkEmbedStatus = "pending"
	ChunkEmbedDone    ChunkEmbedStatus = "embedded"
	ChunkEmbedFailed  ChunkEmbedStatus = "failed"
)

// Chunk is a contiguous text segment of a Resource. ChunkIndex defines
// document order and is the tie-breaker for equal similarity scores.
// Chunks are owned exclusively by their Resource and deleted with it.
type Chunk struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceId  uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex  int
	StartPos    int
	EndPos      int
	Content     string
	EmbedStatus ChunkEmbedStatus
	CreatedAt   time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// ChunkEmbedding is the fixed-dimension vector for one Chunk. A chunk
// either has no embedding row or a complete, valid one; the pair is
// written inside a single transaction.
type ChunkEmbedding struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChunkId        uuid.UUID `gorm:"type:uuid;index"`
	ResourceId     uuid.UUID `gorm:"type:uuid;index"`
	EmbeddingValue []float32
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
