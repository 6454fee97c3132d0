package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/contract"
	"studybuddy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository struct {
	store *Store
}

func NewChunkRepository(store *Store) contract.ChunkRepository {
	return &ChunkRepository{store: store}
}

func chunkMatches(c *entity.Chunk, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return c.Id == s.ID, nil
	case specification.ByResourceID:
		return c.ResourceId == s.ResourceID, nil
	case specification.FilterBy:
		switch s.Field {
		case "resource_id":
			return c.ResourceId == s.Value, nil
		case "embed_status":
			return string(c.EmbedStatus) == fmt.Sprint(s.Value), nil
		}
		return false, fmt.Errorf("unsupported chunk filter field: %s", s.Field)
	default:
		return false, fmt.Errorf("unsupported chunk specification: %T", spec)
	}
}

func (r *ChunkRepository) collect(specs ...specification.Specification) ([]*entity.Chunk, error) {
	q := parseSpecs(specs)
	var out []*entity.Chunk
	for _, c := range r.store.chunks {
		if c.IsDeleted {
			continue
		}
		ok := true
		for _, f := range q.filters {
			match, err := chunkMatches(c, f)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceId != out[j].ResourceId {
			return out[i].ResourceId.String() < out[j].ResourceId.String()
		}
		return out[i].ChunkIndex < out[j].ChunkIndex
	})
	return paginate(out, q.page), nil
}

func (r *ChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		copied := *c
		r.store.chunks[c.Id] = &copied
	}
	return nil
}

func (r *ChunkRepository) Update(ctx context.Context, chunk *entity.Chunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *chunk
	r.store.chunks[chunk.Id] = &copied
	return nil
}

func (r *ChunkRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ChunkEmbedStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.chunks[id]; ok {
		c.EmbedStatus = status
	}
	return nil
}

func (r *ChunkRepository) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for _, c := range r.store.chunks {
		if c.ResourceId == resourceId && !c.IsDeleted {
			c.IsDeleted = true
			c.DeletedAt = &now
		}
	}
	return nil
}

func (r *ChunkRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matches, err := r.collect(specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *ChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(specs...)
}

func (r *ChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matches, err := r.collect(specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

func (r *ChunkRepository) CountByContentMatch(ctx context.Context, userId uuid.UUID, term string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	needle := strings.ToLower(term)
	var count int64
	for _, c := range r.store.chunks {
		if c.IsDeleted {
			continue
		}
		res, ok := r.store.resources[c.ResourceId]
		if !ok || res.IsDeleted || res.UserId != userId {
			continue
		}
		if strings.Contains(strings.ToLower(c.Content), needle) {
			count++
		}
	}
	return count, nil
}
