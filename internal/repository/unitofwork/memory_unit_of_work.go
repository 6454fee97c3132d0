package unitofwork

import (
	"context"

	"studybuddy-be/internal/repository/contract"
	"studybuddy-be/internal/repository/memory"
)

// MemoryUnitOfWorkImpl serves the in-process backend. There is no
// transaction layer; Begin/Commit/Rollback succeed as no-ops and writes
// apply immediately. Services keep the same call shape against both
// backends.
type MemoryUnitOfWorkImpl struct {
	store *memory.Store
	cards contract.CardRepository
}

func NewMemoryUnitOfWork(store *memory.Store, cards contract.CardRepository) UnitOfWork {
	return &MemoryUnitOfWorkImpl{
		store: store,
		cards: cards,
	}
}

func (u *MemoryUnitOfWorkImpl) Begin(ctx context.Context) error { return nil }
func (u *MemoryUnitOfWorkImpl) Commit() error                   { return nil }
func (u *MemoryUnitOfWorkImpl) Rollback() error                 { return nil }

func (u *MemoryUnitOfWorkImpl) ResourceRepository() contract.ResourceRepository {
	return memory.NewResourceRepository(u.store)
}

func (u *MemoryUnitOfWorkImpl) ChunkRepository() contract.ChunkRepository {
	return memory.NewChunkRepository(u.store)
}

func (u *MemoryUnitOfWorkImpl) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository {
	return memory.NewChunkEmbeddingRepository(u.store)
}

func (u *MemoryUnitOfWorkImpl) StudyPlanRepository() contract.StudyPlanRepository {
	return memory.NewStudyPlanRepository(u.store)
}

func (u *MemoryUnitOfWorkImpl) StudySessionRepository() contract.StudySessionRepository {
	return memory.NewStudySessionRepository(u.store)
}

func (u *MemoryUnitOfWorkImpl) CardRepository() contract.CardRepository {
	return u.cards
}

type MemoryRepositoryFactory struct {
	store *memory.Store
	cards contract.CardRepository
}

func NewMemoryRepositoryFactory() RepositoryFactory {
	return &MemoryRepositoryFactory{
		store: memory.NewStore(),
		cards: memory.NewCardRepository(),
	}
}

func (f *MemoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewMemoryUnitOfWork(f.store, f.cards)
}
