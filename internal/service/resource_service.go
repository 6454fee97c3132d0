package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/config"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/specification"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/textsplit"

	"github.com/google/uuid"
)

type IResourceService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResourceRequest) (*dto.CreateResourceResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ResourceResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResourceDetailResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type resourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	retrievalCfg     config.RetrievalConfig
	log              logger.ILogger
}

func NewResourceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	retrievalCfg config.RetrievalConfig,
	log logger.ILogger,
) IResourceService {
	return &resourceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		retrievalCfg:     retrievalCfg,
		log:              log,
	}
}

// Create persists one uploaded document with its chunks and queues the
// embedding work. The resource stays pending until the consumer reports
// back; retrieval simply finds no embedded chunks for it until then.
func (s *resourceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResourceRequest) (*dto.CreateResourceResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("resource content is empty")
	}

	segments := textsplit.Split(content, s.retrievalCfg.ChunkSize, s.retrievalCfg.ChunkOverlap)

	resource := entity.Resource{
		Id:        uuid.New(),
		UserId:    userId,
		Filename:  req.Filename,
		CharCount: len([]rune(content)),
		Status:    entity.ResourceStatusPending,
		CreatedAt: time.Now(),
	}

	chunks := make([]*entity.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = &entity.Chunk{
			Id:          uuid.New(),
			ResourceId:  resource.Id,
			ChunkIndex:  seg.Index,
			StartPos:    seg.Start,
			EndPos:      seg.End,
			Content:     seg.Text,
			EmbedStatus: entity.ChunkEmbedPending,
			CreatedAt:   time.Now(),
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ResourceRepository().Create(ctx, &resource); err != nil {
		return nil, err
	}
	if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedResourceMessage{
		ResourceId: resource.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	s.log.Info("resource", "resource created", map[string]interface{}{
		"resource_id": resource.Id.String(),
		"chunks":      len(chunks),
		"char_count":  resource.CharCount,
	})

	return &dto.CreateResourceResponse{
		Id:         resource.Id,
		Filename:   resource.Filename,
		CharCount:  resource.CharCount,
		ChunkCount: len(chunks),
		Status:     string(resource.Status),
	}, nil
}

func (s *resourceService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resources, err := uow.ResourceRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ResourceResponse, len(resources))
	for i, r := range resources {
		response[i] = &dto.ResourceResponse{
			Id:        r.Id,
			Filename:  r.Filename,
			CharCount: r.CharCount,
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt,
			IndexedAt: r.IndexedAt,
		}
	}
	return response, nil
}

func (s *resourceService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResourceDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperror.NotFound("resource %s not found", id)
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByResourceID{ResourceID: id},
	)
	if err != nil {
		return nil, err
	}

	var embedded, failed int
	for _, c := range chunks {
		switch c.EmbedStatus {
		case entity.ChunkEmbedDone:
			embedded++
		case entity.ChunkEmbedFailed:
			failed++
		}
	}

	return &dto.ResourceDetailResponse{
		ResourceResponse: dto.ResourceResponse{
			Id:        resource.Id,
			Filename:  resource.Filename,
			CharCount: resource.CharCount,
			Status:    string(resource.Status),
			CreatedAt: resource.CreatedAt,
			IndexedAt: resource.IndexedAt,
		},
		ChunkCount:    len(chunks),
		EmbeddedCount: embedded,
		FailedCount:   failed,
	}, nil
}

func (s *resourceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if resource == nil {
		return apperror.NotFound("resource %s not found", id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByResourceId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChunkRepository().DeleteByResourceId(ctx, id); err != nil {
		return err
	}
	if err := uow.ResourceRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
