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

type StudyPlanRepository struct {
	store *Store
}

func NewStudyPlanRepository(store *Store) contract.StudyPlanRepository {
	return &StudyPlanRepository{store: store}
}

func planMatches(p *entity.StudyPlan, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return p.Id == s.ID, nil
	case specification.OwnedBy:
		return p.UserId == s.UserID, nil
	case specification.FilterBy:
		switch s.Field {
		case "user_id":
			return p.UserId == s.Value, nil
		case "subject":
			return p.Subject == fmt.Sprint(s.Value), nil
		}
		return false, fmt.Errorf("unsupported plan filter field: %s", s.Field)
	default:
		return false, fmt.Errorf("unsupported plan specification: %T", spec)
	}
}

func copyPlan(p *entity.StudyPlan) *entity.StudyPlan {
	copied := *p
	copied.Topics = append([]string(nil), p.Topics...)
	copied.Sessions = nil
	return &copied
}

func (r *StudyPlanRepository) collect(specs ...specification.Specification) ([]*entity.StudyPlan, error) {
	q := parseSpecs(specs)
	var out []*entity.StudyPlan
	for _, p := range r.store.plans {
		if p.IsDeleted {
			continue
		}
		ok := true
		for _, f := range q.filters {
			match, err := planMatches(p, f)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, copyPlan(p))
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

func (r *StudyPlanRepository) Create(ctx context.Context, plan *entity.StudyPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	r.store.plans[plan.Id] = copyPlan(plan)
	return nil
}

func (r *StudyPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.plans[id]; ok {
		now := time.Now()
		p.IsDeleted = true
		p.DeletedAt = &now
	}
	return nil
}

func (r *StudyPlanRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyPlan, error) {
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

func (r *StudyPlanRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(specs...)
}

func (r *StudyPlanRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matches, err := r.collect(specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

type StudySessionRepository struct {
	store *Store
}

func NewStudySessionRepository(store *Store) contract.StudySessionRepository {
	return &StudySessionRepository{store: store}
}

func sessionMatches(s *entity.StudySession, spec specification.Specification) (bool, error) {
	switch v := spec.(type) {
	case specification.ByID:
		return s.Id == v.ID, nil
	case specification.ByPlanID:
		return s.PlanId == v.PlanID, nil
	case specification.FilterBy:
		switch v.Field {
		case "plan_id":
			return s.PlanId == v.Value, nil
		case "status":
			return string(s.Status) == fmt.Sprint(v.Value), nil
		}
		return false, fmt.Errorf("unsupported session filter field: %s", v.Field)
	default:
		return false, fmt.Errorf("unsupported session specification: %T", spec)
	}
}

func (r *StudySessionRepository) collect(specs ...specification.Specification) ([]*entity.StudySession, error) {
	q := parseSpecs(specs)
	var out []*entity.StudySession
	for _, s := range r.store.sessions {
		ok := true
		for _, f := range q.filters {
			match, err := sessionMatches(s, f)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.Before(out[j].ScheduledDate)
		}
		return out[i].Id.String() < out[j].Id.String()
	})
	return paginate(out, q.page), nil
}

func (r *StudySessionRepository) CreateBulk(ctx context.Context, sessions []*entity.StudySession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range sessions {
		if s.Id == uuid.Nil {
			s.Id = uuid.New()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now()
		}
		copied := *s
		r.store.sessions[s.Id] = &copied
	}
	return nil
}

func (r *StudySessionRepository) Update(ctx context.Context, session *entity.StudySession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *StudySessionRepository) DeleteByPlanId(ctx context.Context, planId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, s := range r.store.sessions {
		if s.PlanId == planId {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

func (r *StudySessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudySession, error) {
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

func (r *StudySessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudySession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.collect(specs...)
}
