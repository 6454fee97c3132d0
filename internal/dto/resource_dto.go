package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type CreateResourceResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	CharCount  int       `json:"char_count"`
	ChunkCount int       `json:"chunk_count"`
	Status     string    `json:"status"`
}

type ResourceResponse struct {
	Id        uuid.UUID  `json:"id"`
	Filename  string     `json:"filename"`
	CharCount int        `json:"char_count"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	IndexedAt *time.Time `json:"indexed_at"`
}

type ResourceDetailResponse struct {
	ResourceResponse
	ChunkCount    int `json:"chunk_count"`
	EmbeddedCount int `json:"embedded_count"`
	FailedCount   int `json:"failed_count"`
}

// PublishEmbedResourceMessage is the payload put on the embedding queue
// when a resource is created or its content replaced.
type PublishEmbedResourceMessage struct {
	ResourceId uuid.UUID `json:"resource_id"`
}
