package service

import (
	"context"
	"errors"
	"time"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/specification"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/events"
	pktNats "studybuddy-be/pkg/nats"
	"studybuddy-be/pkg/spacedrep"

	"github.com/google/uuid"
)

type IReviewService interface {
	CreateCard(ctx context.Context, userId uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	Review(ctx context.Context, userId uuid.UUID, cardId uuid.UUID, req *dto.ReviewCardRequest) (*dto.CardResponse, error)
	DueCards(ctx context.Context, userId uuid.UUID, asOf time.Time) ([]*dto.CardResponse, error)
	RecordQuizResult(ctx context.Context, userId uuid.UUID, req *dto.QuizResultRequest) (*dto.CardResponse, error)
}

type reviewService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewReviewService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReviewService {
	return &reviewService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func newCard(id, userId uuid.UUID, front, back, source string, now time.Time) *entity.Card {
	state := spacedrep.NewState(now)
	return &entity.Card{
		Id:           id,
		UserId:       userId,
		Front:        front,
		Back:         back,
		Source:       source,
		Easiness:     state.Easiness,
		IntervalDays: state.IntervalDays,
		Repetitions:  state.Repetitions,
		DueDate:      state.DueDate,
		CreatedAt:    now,
	}
}

func (s *reviewService) CreateCard(ctx context.Context, userId uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	card := newCard(uuid.New(), userId, req.Front, req.Back, req.Source, time.Now())
	if err := uow.CardRepository().Create(ctx, card); err != nil {
		return nil, err
	}
	return toCardResponse(card), nil
}

// Review applies a quality rating to a card. Reviewing an unknown card
// id creates it with the default initial state first; the first look at
// an unseen item is a normal review, not an error.
func (s *reviewService) Review(ctx context.Context, userId uuid.UUID, cardId uuid.UUID, req *dto.ReviewCardRequest) (*dto.CardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	card, err := uow.CardRepository().FindOne(ctx, specification.ByID{ID: cardId})
	if err != nil {
		return nil, err
	}
	if card != nil && card.UserId != userId {
		return nil, apperror.Ownership("card belongs to another user")
	}
	if card == nil {
		card = newCard(cardId, userId, "", "", "", now)
		if err := uow.CardRepository().Create(ctx, card); err != nil {
			return nil, err
		}
	}

	return s.applyReview(ctx, uow, card, spacedrep.QualityResponse(req.Quality), now)
}

func (s *reviewService) applyReview(ctx context.Context, uow unitofwork.UnitOfWork, card *entity.Card, quality spacedrep.QualityResponse, now time.Time) (*dto.CardResponse, error) {
	state := spacedrep.State{
		Easiness:     card.Easiness,
		IntervalDays: card.IntervalDays,
		Repetitions:  card.Repetitions,
		DueDate:      card.DueDate,
	}

	next, err := spacedrep.Review(state, quality, now)
	if err != nil {
		if errors.Is(err, spacedrep.ErrInvalidQuality) {
			return nil, apperror.Validation("quality must be between 0 and 5")
		}
		return nil, err
	}

	q := int(quality)
	card.Easiness = next.Easiness
	card.IntervalDays = next.IntervalDays
	card.Repetitions = next.Repetitions
	card.DueDate = next.DueDate
	card.LastQuality = &q
	card.LastReviewedAt = &now
	card.UpdatedAt = &now

	if err := uow.CardRepository().Update(ctx, card); err != nil {
		return nil, err
	}

	s.log.Info("review", "card reviewed", map[string]interface{}{
		"card_id":       card.Id.String(),
		"quality":       q,
		"interval_days": card.IntervalDays,
	})

	if s.eventPublisher != nil {
		evt := events.NewCardReviewed(card.Id, card.UserId, q, card.IntervalDays, card.DueDate)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("review", "failed to publish CARD_REVIEWED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return toCardResponse(card), nil
}

// DueCards lists cards due as of the given instant, never-reviewed cards
// first, then the hardest, then the most overdue.
func (s *reviewService) DueCards(ctx context.Context, userId uuid.UUID, asOf time.Time) ([]*dto.CardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cards, err := uow.CardRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.DueBefore{AsOf: asOf},
		specification.ReviewPriority{},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CardResponse, len(cards))
	for i, c := range cards {
		response[i] = toCardResponse(c)
	}
	return response, nil
}

// RecordQuizResult maps a graded quiz answer onto the scheduling scale:
// a correct answer counts as a confident recall, an incorrect one as a
// failed recall that resets the card. The backing card is found by its
// front text or created on the spot.
func (s *reviewService) RecordQuizResult(ctx context.Context, userId uuid.UUID, req *dto.QuizResultRequest) (*dto.CardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	card, err := uow.CardRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByFront{Front: req.Front},
	)
	if err != nil {
		return nil, err
	}
	if card == nil {
		card = newCard(uuid.New(), userId, req.Front, req.Back, "quiz", now)
		if err := uow.CardRepository().Create(ctx, card); err != nil {
			return nil, err
		}
	}

	return s.applyReview(ctx, uow, card, spacedrep.QualityFromQuizResult(req.Correct), now)
}

func toCardResponse(card *entity.Card) *dto.CardResponse {
	return &dto.CardResponse{
		Id:             card.Id,
		Front:          card.Front,
		Back:           card.Back,
		Source:         card.Source,
		Easiness:       card.Easiness,
		IntervalDays:   card.IntervalDays,
		Repetitions:    card.Repetitions,
		DueDate:        card.DueDate,
		LastQuality:    card.LastQuality,
		LastReviewedAt: card.LastReviewedAt,
	}
}
