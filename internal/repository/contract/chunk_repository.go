package contract

import (
	"context"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	Update(ctx context.Context, chunk *entity.Chunk) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ChunkEmbedStatus) error
	DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountByContentMatch counts chunks owned by userId whose content contains
	// term, case-insensitively. Used as a proxy for how much material a user
	// has written about a topic.
	CountByContentMatch(ctx context.Context, userId uuid.UUID, term string) (int64, error)
}
