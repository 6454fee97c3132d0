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
	"github.com/patrickmn/go-cache"
)

// CardRepository keeps flashcards in a go-cache store. Cards never
// expire; the cache is used for its concurrency-safe keyed access.
type CardRepository struct {
	cache *cache.Cache
}

func NewCardRepository() contract.CardRepository {
	return &CardRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func cardMatches(c *entity.Card, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return c.Id == s.ID, nil
	case specification.OwnedBy:
		return c.UserId == s.UserID, nil
	case specification.DueBefore:
		return !c.DueDate.After(s.AsOf), nil
	case specification.ByFront:
		return c.Front == s.Front, nil
	case specification.FilterBy:
		switch s.Field {
		case "user_id":
			return c.UserId == s.Value, nil
		case "source":
			return c.Source == fmt.Sprint(s.Value), nil
		}
		return false, fmt.Errorf("unsupported card filter field: %s", s.Field)
	default:
		return false, fmt.Errorf("unsupported card specification: %T", spec)
	}
}

func orderByReviewPriority(cards []*entity.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if (a.LastReviewedAt == nil) != (b.LastReviewedAt == nil) {
			return a.LastReviewedAt == nil
		}
		if a.Easiness != b.Easiness {
			return a.Easiness < b.Easiness
		}
		return a.DueDate.Before(b.DueDate)
	})
}

func (r *CardRepository) collect(specs ...specification.Specification) ([]*entity.Card, error) {
	q := parseSpecs(specs)
	var out []*entity.Card
	for _, item := range r.cache.Items() {
		c := item.Object.(*entity.Card)
		ok := true
		for _, f := range q.filters {
			match, err := cardMatches(c, f)
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
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Id.String() < out[j].Id.String()
	})
	for _, o := range q.orders {
		if _, isPriority := o.(specification.ReviewPriority); isPriority {
			orderByReviewPriority(out)
		}
	}
	return paginate(out, q.page), nil
}

func (r *CardRepository) Create(ctx context.Context, card *entity.Card) error {
	if card.Id == uuid.Nil {
		card.Id = uuid.New()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	copied := *card
	r.cache.Set(card.Id.String(), &copied, cache.NoExpiration)
	return nil
}

func (r *CardRepository) Update(ctx context.Context, card *entity.Card) error {
	copied := *card
	r.cache.Set(card.Id.String(), &copied, cache.NoExpiration)
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}

func (r *CardRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Card, error) {
	matches, err := r.collect(specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *CardRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Card, error) {
	return r.collect(specs...)
}

func (r *CardRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.collect(specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}
