package contract

import (
	"context"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	Update(ctx context.Context, card *entity.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Card, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Card, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
