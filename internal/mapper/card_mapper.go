package mapper

import (
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/model"
)

type CardMapper struct{}

func NewCardMapper() *CardMapper {
	return &CardMapper{}
}

func (m *CardMapper) ToEntity(c *model.Card) *entity.Card {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Card{
		Id:             c.Id,
		UserId:         c.UserId,
		Front:          c.Front,
		Back:           c.Back,
		Source:         c.Source,
		Easiness:       c.Easiness,
		IntervalDays:   c.IntervalDays,
		Repetitions:    c.Repetitions,
		DueDate:        c.DueDate,
		LastQuality:    c.LastQuality,
		LastReviewedAt: c.LastReviewedAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CardMapper) ToModel(c *entity.Card) *model.Card {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Card{
		Id:             c.Id,
		UserId:         c.UserId,
		Front:          c.Front,
		Back:           c.Back,
		Source:         c.Source,
		Easiness:       c.Easiness,
		IntervalDays:   c.IntervalDays,
		Repetitions:    c.Repetitions,
		DueDate:        c.DueDate,
		LastQuality:    c.LastQuality,
		LastReviewedAt: c.LastReviewedAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CardMapper) ToEntities(cards []*model.Card) []*entity.Card {
	entities := make([]*entity.Card, len(cards))
	for i, c := range cards {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
