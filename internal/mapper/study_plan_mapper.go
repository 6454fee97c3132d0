package mapper

import (
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudyPlanMapper struct{}

func NewStudyPlanMapper() *StudyPlanMapper {
	return &StudyPlanMapper{}
}

func (m *StudyPlanMapper) ToEntity(p *model.StudyPlan) *entity.StudyPlan {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.StudyPlan{
		Id:              p.Id,
		UserId:          p.UserId,
		Subject:         p.Subject,
		Topics:          []string(p.Topics),
		ExamDate:        p.ExamDate,
		DailyMinutes:    p.DailyMinutes,
		SessionLength:   p.SessionLength,
		DaysUntilExam:   p.DaysUntilExam,
		TotalSessions:   p.TotalSessions,
		TotalStudyHours: p.TotalStudyHours,
		CreatedAt:       p.CreatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       p.DeletedAt.Valid,
	}
}

func (m *StudyPlanMapper) ToModel(p *entity.StudyPlan) *model.StudyPlan {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.StudyPlan{
		Id:              p.Id,
		UserId:          p.UserId,
		Subject:         p.Subject,
		Topics:          datatypes.NewJSONSlice(p.Topics),
		ExamDate:        p.ExamDate,
		DailyMinutes:    p.DailyMinutes,
		SessionLength:   p.SessionLength,
		DaysUntilExam:   p.DaysUntilExam,
		TotalSessions:   p.TotalSessions,
		TotalStudyHours: p.TotalStudyHours,
		CreatedAt:       p.CreatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *StudyPlanMapper) ToEntities(plans []*model.StudyPlan) []*entity.StudyPlan {
	entities := make([]*entity.StudyPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

type StudySessionMapper struct{}

func NewStudySessionMapper() *StudySessionMapper {
	return &StudySessionMapper{}
}

func (m *StudySessionMapper) ToEntity(s *model.StudySession) *entity.StudySession {
	if s == nil {
		return nil
	}

	return &entity.StudySession{
		Id:              s.Id,
		PlanId:          s.PlanId,
		Topic:           s.Topic,
		ScheduledDate:   s.ScheduledDate,
		DurationMinutes: s.DurationMinutes,
		Objective:       s.Objective,
		Status:          entity.SessionStatus(s.Status),
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
	}
}

func (m *StudySessionMapper) ToModel(s *entity.StudySession) *model.StudySession {
	if s == nil {
		return nil
	}

	return &model.StudySession{
		Id:              s.Id,
		PlanId:          s.PlanId,
		Topic:           s.Topic,
		ScheduledDate:   s.ScheduledDate,
		DurationMinutes: s.DurationMinutes,
		Objective:       s.Objective,
		Status:          string(s.Status),
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
	}
}

func (m *StudySessionMapper) ToEntities(sessions []*model.StudySession) []*entity.StudySession {
	entities := make([]*entity.StudySession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *StudySessionMapper) ToModels(sessions []*entity.StudySession) []*model.StudySession {
	models := make([]*model.StudySession, len(sessions))
	for i, s := range sessions {
		models[i] = m.ToModel(s)
	}
	return models
}
