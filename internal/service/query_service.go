package service

import (
	"context"
	"strings"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/config"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/embedding"
	"studybuddy-be/pkg/llm"
	"studybuddy-be/pkg/rag"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

type IQueryService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
}

type queryService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	retrievalCfg      config.RetrievalConfig
	aiCfg             config.AIConfig
	log               logger.ILogger
}

func NewQueryService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	retrievalCfg config.RetrievalConfig,
	aiCfg config.AIConfig,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		retrievalCfg:      retrievalCfg,
		aiCfg:             aiCfg,
		log:               log,
	}
}

// Ask answers a question over the caller's own indexed material. When no
// chunk clears the relevance floor the insufficient-material answer goes
// back with zero citations instead of a fabricated one.
func (s *queryService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperror.Validation("question is empty")
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.retrievalCfg.TopK
	}

	queryVector, err := s.embedQueryWithRetry(ctx, question)
	if err != nil {
		return nil, apperror.ProviderUnavailable("embedding provider unavailable", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkEmbeddingRepository().SearchSimilarWithScore(
		ctx, queryVector, topK, userId, s.retrievalCfg.SimilarityThreshold,
	)
	if err != nil {
		return nil, err
	}

	if len(scored) == 0 {
		return &dto.AskResponse{
			Answer:     rag.InsufficientMaterialAnswer,
			Citations:  []rag.Citation{},
			UsedChunks: 0,
		}, nil
	}

	grounded := rag.Assemble(scored)
	messages := rag.BuildMessages(grounded, question)

	answer, err := s.llmProvider.Chat(ctx, messages, llm.WithMaxTokens(500))
	if err != nil {
		return nil, apperror.ProviderUnavailable("generation provider unavailable", err)
	}

	s.log.Info("query", "question answered", map[string]interface{}{
		"user_id":     userId.String(),
		"used_chunks": grounded.UsedChunks,
	})

	return &dto.AskResponse{
		Answer:     answer,
		Citations:  grounded.Citations,
		UsedChunks: grounded.UsedChunks,
	}, nil
}

func (s *queryService) embedQueryWithRetry(ctx context.Context, question string) ([]float32, error) {
	operation := func() ([]float32, error) {
		res, err := s.embeddingProvider.Generate(ctx, question, embedding.TaskRetrievalQuery)
		if err != nil {
			return nil, err
		}
		return res.Embedding.Values, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(s.aiCfg.MaxRetries)),
	)
}
