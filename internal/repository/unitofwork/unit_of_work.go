package unitofwork

import (
	"context"

	"studybuddy-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ResourceRepository() contract.ResourceRepository
	ChunkRepository() contract.ChunkRepository
	ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository
	StudyPlanRepository() contract.StudyPlanRepository
	StudySessionRepository() contract.StudySessionRepository
	CardRepository() contract.CardRepository
}
