package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/contract"
	"studybuddy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	store *Store
}

func NewResourceRepository(store *Store) contract.ResourceRepository {
	return &ResourceRepository{store: store}
}

func resourceMatches(r *entity.Resource, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return r.Id == s.ID, nil
	case specification.ByIDs:
		for _, id := range s.IDs {
			if r.Id == id {
				return true, nil
			}
		}
		return false, nil
	case specification.OwnedBy:
		return r.UserId == s.UserID, nil
	case specification.FilterBy:
		switch s.Field {
		case "user_id":
			return r.UserId == s.Value, nil
		case "status":
			return string(r.Status) == fmt.Sprint(s.Value), nil
		case "filename":
			return r.Filename == fmt.Sprint(s.Value), nil
		}
		return false, fmt.Errorf("unsupported resource filter field: %s", s.Field)
	default:
		return false, fmt.Errorf("unsupported resource specification: %T", spec)
	}
}

func (r *ResourceRepository) collect(specs ...specification.Specification) ([]*entity.Resource, error) {
	q := parseSpecs(specs)
	var out []*entity.Resource
	for _, res := range r.store.resources {
		if res.IsDeleted {
			continue
		}
		ok := true
		for _, f := range q.filters {
			match, err := resourceMatches(res, f)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			copied := *res
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Id.String() < out[j].Id.String()
	})
	for _, o := range q.orders {
		if ob, isOrder := o.(specification.OrderBy); isOrder && ob.Field == "created_at" && ob.Desc {
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return paginate(out, q.page), nil
}

func (r *ResourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if resource.Id == uuid.Nil {
		resource.Id = uuid.New()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}
	copied := *resource
	r.store.resources[resource.Id] = &copied
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *resource
	r.store.resources[resource.Id] = &copied
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if res, ok := r.store.resources[id]; ok {
		now := time.Now()
		res.IsDeleted = true
		res.DeletedAt = &now
	}
	return nil
}

func (r *ResourceRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error) {
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

func (r *ResourceRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(specs...)
}

func (r *ResourceRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matches, err := r.collect(specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}
