package memory

import (
	"context"
	"sort"
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/contract"
	"studybuddy-be/pkg/embedding"

	"github.com/google/uuid"
)

type ChunkEmbeddingRepository struct {
	store *Store
}

func NewChunkEmbeddingRepository(store *Store) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepository{store: store}
}

func (r *ChunkEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range embeddings {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		copied := *e
		copied.EmbeddingValue = append([]float32(nil), e.EmbeddingValue...)
		r.store.embeddings[e.Id] = &copied
	}
	return nil
}

func (r *ChunkEmbeddingRepository) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for _, e := range r.store.embeddings {
		if e.ResourceId == resourceId && !e.IsDeleted {
			e.IsDeleted = true
			e.DeletedAt = &now
		}
	}
	return nil
}

// SearchSimilarWithScore scores candidates in process. Ownership is
// checked before any similarity is computed, the same order of
// operations as the postgres backend's JOIN pre-filter.
func (r *ChunkEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, queryVector []float32, limit int, userId uuid.UUID, threshold float64) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var scored []*contract.ScoredChunk
	for _, e := range r.store.embeddings {
		if e.IsDeleted {
			continue
		}
		chunk, ok := r.store.chunks[e.ChunkId]
		if !ok || chunk.IsDeleted {
			continue
		}
		res, ok := r.store.resources[chunk.ResourceId]
		if !ok || res.IsDeleted || res.UserId != userId {
			continue
		}
		sim := embedding.CosineSimilarity(queryVector, e.EmbeddingValue)
		if sim < threshold {
			continue
		}
		copied := *chunk
		scored = append(scored, &contract.ScoredChunk{
			Chunk:      &copied,
			Similarity: sim,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.ChunkIndex < scored[j].Chunk.ChunkIndex
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
