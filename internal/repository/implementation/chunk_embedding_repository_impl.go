package implementation

import (
	"context"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/mapper"
	"studybuddy-be/internal/model"
	"studybuddy-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db          *gorm.DB
	chunkMapper *mapper.ChunkMapper
	mapper      *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:          db,
		chunkMapper: mapper.NewChunkMapper(),
		mapper:      mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ChunkEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("resource_id = ?", resourceId).Delete(&model.ChunkEmbedding{}).Error
}

// SearchSimilarWithScore runs the similarity query in the database.
// Cosine distance in pgvector is 1 - cosine_similarity, so the score is
// computed as 1 - (embedding_value <=> query_vector). The JOIN against
// resources scopes candidates to the owner before any ranking happens.
func (r *ChunkEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, queryVector []float32, limit int, userId uuid.UUID, threshold float64) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Chunk
		Similarity float64
	}
	var results []result

	vec := pgvector.NewVector(queryVector)

	err := r.db.WithContext(ctx).
		Table("chunk_embeddings").
		Select("chunks.*, 1 - (chunk_embeddings.embedding_value <=> ?) as similarity", vec).
		Joins("JOIN chunks ON chunks.id = chunk_embeddings.chunk_id").
		Joins("JOIN resources ON resources.id = chunks.resource_id").
		Where("resources.user_id = ?", userId).
		Where("chunk_embeddings.deleted_at IS NULL").
		Where("chunks.deleted_at IS NULL").
		Where("resources.deleted_at IS NULL").
		Where("1 - (chunk_embeddings.embedding_value <=> ?) >= ?", vec, threshold).
		Order("similarity DESC, chunks.chunk_index ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.chunkMapper.ToEntity(&res.Chunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
