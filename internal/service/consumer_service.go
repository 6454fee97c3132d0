package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"studybuddy-be/internal/config"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/specification"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/embedding"
	"studybuddy-be/pkg/events"
	pktNats "studybuddy-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	aiCfg             config.AIConfig
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	aiCfg config.AIConfig,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		aiCfg:             aiCfg,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

type embedResult struct {
	chunkId uuid.UUID
	vector  []float32
	err     error
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedResourceMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.log.Info("consumer", "indexing resource", map[string]interface{}{"resource_id": payload.ResourceId.String()})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: payload.ResourceId})
	if err != nil {
		cs.log.Error("consumer", "failed to load resource", map[string]interface{}{
			"resource_id": payload.ResourceId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if resource == nil {
		// Deleted before indexing ran. Nothing to do.
		msg.Ack()
		return
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx, specification.ByResourceID{ResourceID: resource.Id})
	if err != nil {
		cs.log.Error("consumer", "failed to load chunks", map[string]interface{}{
			"resource_id": resource.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	results := cs.embedChunks(ctx, chunks)

	var newEmbeddings []*entity.ChunkEmbedding
	var failedIds []uuid.UUID
	for _, res := range results {
		if res.err != nil {
			cs.log.Warn("consumer", "chunk embedding failed after retries", map[string]interface{}{
				"chunk_id": res.chunkId.String(),
				"error":    res.err.Error(),
			})
			failedIds = append(failedIds, res.chunkId)
			continue
		}
		newEmbeddings = append(newEmbeddings, &entity.ChunkEmbedding{
			Id:             uuid.New(),
			ChunkId:        res.chunkId,
			ResourceId:     resource.Id,
			EmbeddingValue: res.vector,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.log.Error("consumer", "failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-indexing replaces the whole embedding set for the resource.
	if err := uow.ChunkEmbeddingRepository().DeleteByResourceId(ctx, resource.Id); err != nil {
		cs.log.Error("consumer", "failed to delete old embeddings", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if len(newEmbeddings) > 0 {
		if err := uow.ChunkEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			cs.log.Error("consumer", "failed to create embeddings", map[string]interface{}{"error": err.Error()})
			msg.Nack()
			return
		}
	}

	embeddedSet := make(map[uuid.UUID]bool, len(newEmbeddings))
	for _, e := range newEmbeddings {
		embeddedSet[e.ChunkId] = true
	}
	for _, c := range chunks {
		status := entity.ChunkEmbedFailed
		if embeddedSet[c.Id] {
			status = entity.ChunkEmbedDone
		}
		if err := uow.ChunkRepository().UpdateStatus(ctx, c.Id, status); err != nil {
			cs.log.Error("consumer", "failed to update chunk status", map[string]interface{}{"error": err.Error()})
			msg.Nack()
			return
		}
	}

	now := time.Now()
	resource.IndexedAt = &now
	resource.UpdatedAt = &now
	if len(failedIds) == 0 {
		resource.Status = entity.ResourceStatusIndexed
	} else {
		resource.Status = entity.ResourceStatusPartiallyIndexed
	}
	if err := uow.ResourceRepository().Update(ctx, resource); err != nil {
		cs.log.Error("consumer", "failed to update resource status", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.log.Error("consumer", "failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "resource indexed", map[string]interface{}{
		"resource_id": resource.Id.String(),
		"status":      string(resource.Status),
		"embedded":    len(newEmbeddings),
		"failed":      len(failedIds),
	})

	if cs.eventPublisher != nil {
		evt := events.NewResourceIndexed(resource.Id, resource.UserId, string(resource.Status), len(newEmbeddings), len(failedIds))
		// Notification delivery is auxiliary; the index is already committed
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.log.Warn("consumer", "failed to publish RESOURCE_INDEXED event", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}

// embedChunks runs the provider calls with bounded concurrency. Each
// chunk is retried with exponential backoff; a chunk that still fails is
// reported in the result rather than aborting the whole resource.
func (cs *consumerService) embedChunks(ctx context.Context, chunks []*entity.Chunk) []embedResult {
	concurrency := cs.aiCfg.EmbedConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]embedResult, len(chunks))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk *entity.Chunk) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vector, err := cs.embedWithRetry(ctx, chunk.Content)
			results[i] = embedResult{chunkId: chunk.Id, vector: vector, err: err}
		}(i, chunk)
	}

	wg.Wait()
	return results
}

func (cs *consumerService) embedWithRetry(ctx context.Context, content string) ([]float32, error) {
	operation := func() ([]float32, error) {
		res, err := cs.embeddingProvider.Generate(ctx, content, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, err
		}
		return res.Embedding.Values, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(cs.aiCfg.MaxRetries)),
	)
}
