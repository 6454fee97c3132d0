package contract

import (
	"context"

	"studybuddy-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunk pairs a chunk with its cosine similarity against a query vector.
type ScoredChunk struct {
	Chunk      *entity.Chunk
	Similarity float64
}

type ChunkEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error
	// SearchSimilarWithScore returns up to limit chunks owned by userId whose
	// embedding similarity against queryVector meets threshold, ordered by
	// similarity descending with chunk index as tie-break. Ownership is
	// applied before scoring so other users' material never enters ranking.
	SearchSimilarWithScore(ctx context.Context, queryVector []float32, limit int, userId uuid.UUID, threshold float64) ([]*ScoredChunk, error)
}
