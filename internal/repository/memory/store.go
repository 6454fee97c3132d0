// Package memory is a process-local storage backend. It keeps the same
// repository contracts as the postgres implementation so services are
// wired identically against either. Used for single-user deployments
// and tests where a database is not available.
package memory

import (
	"sync"

	"studybuddy-be/internal/entity"

	"github.com/google/uuid"
)

// Store holds all in-memory tables behind one lock. Repositories created
// from the same Store share state; writes are visible immediately since
// there is no transaction layer.
type Store struct {
	mu sync.RWMutex

	resources  map[uuid.UUID]*entity.Resource
	chunks     map[uuid.UUID]*entity.Chunk
	embeddings map[uuid.UUID]*entity.ChunkEmbedding
	plans      map[uuid.UUID]*entity.StudyPlan
	sessions   map[uuid.UUID]*entity.StudySession
}

func NewStore() *Store {
	return &Store{
		resources:  make(map[uuid.UUID]*entity.Resource),
		chunks:     make(map[uuid.UUID]*entity.Chunk),
		embeddings: make(map[uuid.UUID]*entity.ChunkEmbedding),
		plans:      make(map[uuid.UUID]*entity.StudyPlan),
		sessions:   make(map[uuid.UUID]*entity.StudySession),
	}
}
