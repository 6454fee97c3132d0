package contract

import (
	"context"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StudyPlanRepository interface {
	Create(ctx context.Context, plan *entity.StudyPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type StudySessionRepository interface {
	CreateBulk(ctx context.Context, sessions []*entity.StudySession) error
	Update(ctx context.Context, session *entity.StudySession) error
	DeleteByPlanId(ctx context.Context, planId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudySession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudySession, error)
}
