package service

import (
	"context"
	"errors"
	"time"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/config"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/specification"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/events"
	pktNats "studybuddy-be/pkg/nats"
	"studybuddy-be/pkg/studyplan"

	"github.com/google/uuid"
)

// neutralSignal is used when the caller provides no override and the
// learner has no material to measure.
const neutralSignal = 0.5

type IPlannerService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.PlanResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PlanResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	CompleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.CompleteSessionResponse, error)
}

type plannerService struct {
	uowFactory     unitofwork.RepositoryFactory
	plannerCfg     config.PlannerConfig
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewPlannerService(
	uowFactory unitofwork.RepositoryFactory,
	plannerCfg config.PlannerConfig,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPlannerService {
	return &plannerService{
		uowFactory:     uowFactory,
		plannerCfg:     plannerCfg,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *plannerService) weights() studyplan.Weights {
	return studyplan.Weights{
		Alpha: s.plannerCfg.Alpha,
		Beta:  s.plannerCfg.Beta,
		Gamma: s.plannerCfg.Gamma,
	}
}

// Create builds and persists a plan. Note volume per topic is measured
// from the learner's own indexed chunks; past-paper frequency and
// difficulty come from the request or fall back to a neutral value.
func (s *plannerService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	signals, err := s.collectSignals(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	calendar, err := studyplan.Build(studyplan.Request{
		Subject:       req.Subject,
		Topics:        signals,
		ExamDate:      req.ExamDate,
		DailyMinutes:  req.DailyMinutes,
		SessionLength: req.SessionLength,
	}, s.weights(), time.Now())
	if err != nil {
		if errors.Is(err, studyplan.ErrNoTopics) ||
			errors.Is(err, studyplan.ErrExamNotInFuture) ||
			errors.Is(err, studyplan.ErrBudgetTooSmall) {
			return nil, apperror.Validation("%s", err.Error())
		}
		return nil, err
	}

	plan := entity.StudyPlan{
		Id:              uuid.New(),
		UserId:          userId,
		Subject:         req.Subject,
		Topics:          req.Topics,
		ExamDate:        req.ExamDate,
		DailyMinutes:    req.DailyMinutes,
		SessionLength:   req.SessionLength,
		DaysUntilExam:   calendar.DaysUntilExam,
		TotalSessions:   calendar.TotalSessions,
		TotalStudyHours: calendar.TotalStudyHours,
		CreatedAt:       time.Now(),
	}

	sessions := make([]*entity.StudySession, len(calendar.Sessions))
	for i, cs := range calendar.Sessions {
		sessions[i] = &entity.StudySession{
			Id:              uuid.New(),
			PlanId:          plan.Id,
			Topic:           cs.Topic,
			ScheduledDate:   cs.Date,
			DurationMinutes: cs.DurationMinutes,
			Objective:       cs.Objective,
			Status:          entity.SessionStatusPending,
			CreatedAt:       time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.StudyPlanRepository().Create(ctx, &plan); err != nil {
		return nil, err
	}
	if err := uow.StudySessionRepository().CreateBulk(ctx, sessions); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("planner", "plan created", map[string]interface{}{
		"plan_id":        plan.Id.String(),
		"subject":        plan.Subject,
		"total_sessions": plan.TotalSessions,
	})

	if s.eventPublisher != nil {
		evt := events.NewPlanCreated(plan.Id, userId, plan.Subject, plan.TotalSessions)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("planner", "failed to publish PLAN_CREATED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.toPlanResponse(&plan, sessions), nil
}

// collectSignals assembles the raw per-topic planning signals. Raw note
// volume is a chunk count; normalization happens during scoring.
func (s *plannerService) collectSignals(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.CreatePlanRequest) ([]studyplan.TopicSignals, error) {
	signals := make([]studyplan.TopicSignals, len(req.Topics))
	for i, topic := range req.Topics {
		sig := studyplan.TopicSignals{
			Topic:              topic,
			PastPaperFrequency: neutralSignal,
			Difficulty:         neutralSignal,
		}
		if override, ok := req.Signals[topic]; ok {
			if override.PastPaperFrequency != nil {
				sig.PastPaperFrequency = *override.PastPaperFrequency
			}
			if override.Difficulty != nil {
				sig.Difficulty = *override.Difficulty
			}
		}

		count, err := uow.ChunkRepository().CountByContentMatch(ctx, userId, topic)
		if err != nil {
			return nil, err
		}
		sig.NoteVolume = float64(count)

		signals[i] = sig
	}
	return signals, nil
}

func (s *plannerService) List(ctx context.Context, userId uuid.UUID) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.StudyPlanRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		response[i] = s.toPlanResponse(p, nil)
	}
	return response, nil
}

func (s *plannerService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.StudyPlanRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("plan %s not found", id)
	}

	sessions, err := uow.StudySessionRepository().FindAll(ctx,
		specification.ByPlanID{PlanID: id},
	)
	if err != nil {
		return nil, err
	}

	return s.toPlanResponse(plan, sessions), nil
}

func (s *plannerService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.StudyPlanRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if plan == nil {
		return apperror.NotFound("plan %s not found", id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.StudySessionRepository().DeleteByPlanId(ctx, id); err != nil {
		return err
	}
	if err := uow.StudyPlanRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// CompleteSession flips one session to completed. Ownership is checked
// through the parent plan since sessions do not carry the owner.
func (s *plannerService) CompleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.CompleteSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.StudySessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session %s not found", sessionId)
	}

	plan, err := uow.StudyPlanRepository().FindOne(ctx,
		specification.ByID{ID: session.PlanId},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("plan %s not found", session.PlanId)
	}
	if plan.UserId != userId {
		return nil, apperror.Ownership("session belongs to another user")
	}

	now := time.Now()
	session.Status = entity.SessionStatusCompleted
	session.CompletedAt = &now

	if err := uow.StudySessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CompleteSessionResponse{
		Id:          session.Id,
		Status:      string(session.Status),
		CompletedAt: session.CompletedAt,
	}, nil
}

func (s *plannerService) toPlanResponse(plan *entity.StudyPlan, sessions []*entity.StudySession) *dto.PlanResponse {
	resp := &dto.PlanResponse{
		Id:              plan.Id,
		Subject:         plan.Subject,
		Topics:          plan.Topics,
		ExamDate:        plan.ExamDate,
		DaysUntilExam:   plan.DaysUntilExam,
		TotalSessions:   plan.TotalSessions,
		TotalStudyHours: plan.TotalStudyHours,
		CreatedAt:       plan.CreatedAt,
	}

	for _, sess := range sessions {
		sr := dto.SessionResponse{
			Id:              sess.Id,
			Topic:           sess.Topic,
			ScheduledDate:   sess.ScheduledDate,
			DurationMinutes: sess.DurationMinutes,
			Objective:       sess.Objective,
			Status:          string(sess.Status),
			CompletedAt:     sess.CompletedAt,
		}
		resp.Sessions = append(resp.Sessions, sr)
		if resp.NextSession == nil && sess.Status == entity.SessionStatusPending {
			next := sr
			resp.NextSession = &next
		}
	}

	return resp
}
