package service

import (
	"context"
	"testing"
	"time"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/config"
	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/pkg/embedding"
	llmmock "studybuddy-be/pkg/llm/mock"
	"studybuddy-be/pkg/rag"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopLogger keeps test output clean.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type testEnv struct {
	factory      unitofwork.RepositoryFactory
	resources    IResourceService
	queries      IQueryService
	planner      IPlannerService
	reviews      IReviewService
	consumer     IConsumerService
	retrievalCfg config.RetrievalConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	factory := unitofwork.NewMemoryRepositoryFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	retrievalCfg := config.RetrievalConfig{
		TopK:                5,
		SimilarityThreshold: 0.35,
		ChunkSize:           1000,
		ChunkOverlap:        200,
	}
	aiCfg := config.AIConfig{
		MaxRetries:       2,
		EmbedConcurrency: 2,
		EmbedTopic:       "EMBED_RESOURCE",
	}

	embedProvider := embedding.NewMockProvider(128)
	llmProvider := llmmock.NewMockProvider()
	log := noopLogger{}

	publisher := NewPublisherService(aiCfg.EmbedTopic, pubSub)

	return &testEnv{
		factory:      factory,
		resources:    NewResourceService(factory, publisher, retrievalCfg, log),
		queries:      NewQueryService(factory, embedProvider, llmProvider, retrievalCfg, aiCfg, log),
		planner:      NewPlannerService(factory, config.PlannerConfig{Alpha: 0.45, Beta: 0.25, Gamma: 0.30}, nil, log),
		reviews:      NewReviewService(factory, nil, log),
		consumer:     NewConsumerService(pubSub, aiCfg.EmbedTopic, factory, embedProvider, nil, aiCfg, log),
		retrievalCfg: retrievalCfg,
	}
}

// startConsumer must run before any resource is created so the embed
// subscription is live when the publish happens.
func (e *testEnv) startConsumer(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, e.consumer.Consume(ctx))
}

func (e *testEnv) uploadAndIndex(t *testing.T, ctx context.Context, userId uuid.UUID, filename, content string) uuid.UUID {
	t.Helper()

	created, err := e.resources.Create(ctx, userId, &dto.CreateResourceRequest{
		Filename: filename,
		Content:  content,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		detail, err := e.resources.Show(ctx, userId, created.Id)
		if err != nil {
			return false
		}
		return detail.Status == "indexed"
	}, 5*time.Second, 20*time.Millisecond, "resource never reached indexed status")

	return created.Id
}

func TestResourceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.resources.Create(ctx, uuid.New(), &dto.CreateResourceRequest{
		Filename: "empty.txt",
		Content:  "   \n\t ",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestResourceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	created, err := env.resources.Create(ctx, userId, &dto.CreateResourceRequest{
		Filename: "biology.txt",
		Content:  "Photosynthesis converts light energy into chemical energy.",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 1, created.ChunkCount)

	listed, err := env.resources.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Id, listed[0].Id)

	detail, err := env.resources.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ChunkCount)
	assert.Equal(t, 0, detail.EmbeddedCount)

	// Another user sees nothing.
	_, err = env.resources.Show(ctx, uuid.New(), created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, env.resources.Delete(ctx, userId, created.Id))
	_, err = env.resources.Show(ctx, userId, created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestResourceDeleteNotOwned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := env.resources.Create(ctx, owner, &dto.CreateResourceRequest{
		Filename: "secret.txt",
		Content:  "owner material",
	})
	require.NoError(t, err)

	err = env.resources.Delete(ctx, uuid.New(), created.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	// Still there for the real owner.
	_, err = env.resources.Show(ctx, owner, created.Id)
	require.NoError(t, err)
}

func TestIndexingPipeline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.startConsumer(t, ctx)
	userId := uuid.New()

	id := env.uploadAndIndex(t, ctx, userId, "notes.txt", "The mitochondria is the powerhouse of the cell.")

	detail, err := env.resources.Show(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, "indexed", detail.Status)
	assert.Equal(t, detail.ChunkCount, detail.EmbeddedCount)
	assert.Equal(t, 0, detail.FailedCount)
	assert.NotNil(t, detail.IndexedAt)
}

func TestAskAnswersFromOwnMaterial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.startConsumer(t, ctx)
	owner := uuid.New()

	content := "The mitochondria is the powerhouse of the cell."
	env.uploadAndIndex(t, ctx, owner, "bio.txt", content)

	// The mock embedder maps identical text to identical vectors, so
	// asking with the exact indexed text scores similarity 1.
	res, err := env.queries.Ask(ctx, owner, &dto.AskRequest{Question: content})
	require.NoError(t, err)

	assert.NotEqual(t, rag.InsufficientMaterialAnswer, res.Answer)
	require.NotEmpty(t, res.Citations)
	assert.Equal(t, 1, res.Citations[0].SourceId)
	assert.InDelta(t, 1.0, res.Citations[0].Similarity, 0.001)
	assert.Equal(t, len(res.Citations), res.UsedChunks)
}

func TestAskOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.startConsumer(t, ctx)
	owner := uuid.New()
	stranger := uuid.New()

	content := "Newton's second law relates force, mass and acceleration."
	env.uploadAndIndex(t, ctx, owner, "physics.txt", content)

	res, err := env.queries.Ask(ctx, stranger, &dto.AskRequest{Question: content})
	require.NoError(t, err)

	assert.Equal(t, rag.InsufficientMaterialAnswer, res.Answer)
	assert.Empty(t, res.Citations)
	assert.Equal(t, 0, res.UsedChunks)
}

func TestAskBelowThreshold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.startConsumer(t, ctx)
	owner := uuid.New()

	env.uploadAndIndex(t, ctx, owner, "history.txt", "The French Revolution began in 1789.")

	// Unrelated question: hash-derived vectors score near zero, below the
	// relevance floor.
	res, err := env.queries.Ask(ctx, owner, &dto.AskRequest{Question: "completely unrelated quantum field theory question"})
	require.NoError(t, err)

	assert.Equal(t, rag.InsufficientMaterialAnswer, res.Answer)
	assert.Empty(t, res.Citations)
}

func TestAskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.queries.Ask(ctx, uuid.New(), &dto.AskRequest{Question: "   "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReviewCreatesMissingCard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()
	cardId := uuid.New()

	res, err := env.reviews.Review(ctx, userId, cardId, &dto.ReviewCardRequest{Quality: 5})
	require.NoError(t, err)

	assert.Equal(t, cardId, res.Id)
	assert.Equal(t, 1, res.Repetitions)
	assert.Equal(t, 1, res.IntervalDays)
	require.NotNil(t, res.LastQuality)
	assert.Equal(t, 5, *res.LastQuality)
}

func TestReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	card, err := env.reviews.CreateCard(ctx, owner, &dto.CreateCardRequest{Front: "q", Back: "a"})
	require.NoError(t, err)

	_, err = env.reviews.Review(ctx, uuid.New(), card.Id, &dto.ReviewCardRequest{Quality: 4})
	assert.Equal(t, apperror.KindOwnership, apperror.KindOf(err))
}

func TestReviewInvalidQuality(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	card, err := env.reviews.CreateCard(ctx, userId, &dto.CreateCardRequest{Front: "q"})
	require.NoError(t, err)

	_, err = env.reviews.Review(ctx, userId, card.Id, &dto.ReviewCardRequest{Quality: 7})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReviewFailureResetsCard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	card, err := env.reviews.CreateCard(ctx, userId, &dto.CreateCardRequest{Front: "q"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = env.reviews.Review(ctx, userId, card.Id, &dto.ReviewCardRequest{Quality: 5})
		require.NoError(t, err)
	}

	res, err := env.reviews.Review(ctx, userId, card.Id, &dto.ReviewCardRequest{Quality: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Repetitions)
	assert.Equal(t, 1, res.IntervalDays)
	assert.Less(t, res.Easiness, 2.5)
}

func TestDueCardsOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	fresh, err := env.reviews.CreateCard(ctx, userId, &dto.CreateCardRequest{Front: "never reviewed"})
	require.NoError(t, err)

	hard, err := env.reviews.CreateCard(ctx, userId, &dto.CreateCardRequest{Front: "hard"})
	require.NoError(t, err)
	// Repeated failures drive easiness down and keep the card due tomorrow.
	for i := 0; i < 3; i++ {
		_, err = env.reviews.Review(ctx, userId, hard.Id, &dto.ReviewCardRequest{Quality: 0})
		require.NoError(t, err)
	}

	easy, err := env.reviews.CreateCard(ctx, userId, &dto.CreateCardRequest{Front: "easy"})
	require.NoError(t, err)
	_, err = env.reviews.Review(ctx, userId, easy.Id, &dto.ReviewCardRequest{Quality: 5})
	require.NoError(t, err)

	// Look far enough ahead that every card is due.
	due, err := env.reviews.DueCards(ctx, userId, time.Now().AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, due, 3)

	assert.Equal(t, fresh.Id, due[0].Id)
	assert.Equal(t, hard.Id, due[1].Id)
	assert.Equal(t, easy.Id, due[2].Id)
}

func TestQuizResultFindOrCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	first, err := env.reviews.RecordQuizResult(ctx, userId, &dto.QuizResultRequest{
		Front:   "What year did the French Revolution begin?",
		Back:    "1789",
		Correct: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "quiz", first.Source)
	assert.Equal(t, 0, first.Repetitions)

	// Same front maps to the same card, not a duplicate.
	second, err := env.reviews.RecordQuizResult(ctx, userId, &dto.QuizResultRequest{
		Front:   "What year did the French Revolution begin?",
		Correct: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 1, second.Repetitions)
}

func TestPlannerCreatePlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	plan, err := env.planner.Create(ctx, userId, &dto.CreatePlanRequest{
		Subject:       "Biology",
		Topics:        []string{"Genetics", "Ecology"},
		ExamDate:      time.Now().AddDate(0, 0, 10),
		DailyMinutes:  60,
		SessionLength: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, plan.DaysUntilExam)
	assert.NotEmpty(t, plan.Sessions)
	assert.Equal(t, len(plan.Sessions), plan.TotalSessions)
	require.NotNil(t, plan.NextSession)
	assert.Equal(t, "pending", plan.NextSession.Status)

	topics := map[string]bool{}
	total := 0
	for _, s := range plan.Sessions {
		topics[s.Topic] = true
		total += s.DurationMinutes
	}
	assert.True(t, topics["Genetics"])
	assert.True(t, topics["Ecology"])
	assert.LessOrEqual(t, total, 60*10)
}

func TestPlannerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.planner.Create(ctx, uuid.New(), &dto.CreatePlanRequest{
		Subject:       "Biology",
		Topics:        []string{"Genetics"},
		ExamDate:      time.Now().AddDate(0, 0, -1),
		DailyMinutes:  60,
		SessionLength: 30,
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestPlannerCompleteSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	plan, err := env.planner.Create(ctx, userId, &dto.CreatePlanRequest{
		Subject:       "Chemistry",
		Topics:        []string{"Stoichiometry"},
		ExamDate:      time.Now().AddDate(0, 0, 5),
		DailyMinutes:  60,
		SessionLength: 30,
	})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Sessions)

	sessionId := plan.Sessions[0].Id

	// Someone else's session is off limits even with a valid id.
	_, err = env.planner.CompleteSession(ctx, uuid.New(), sessionId)
	assert.Equal(t, apperror.KindOwnership, apperror.KindOf(err))

	done, err := env.planner.CompleteSession(ctx, userId, sessionId)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)

	// The completed session no longer surfaces as next.
	shown, err := env.planner.Show(ctx, userId, plan.Id)
	require.NoError(t, err)
	if shown.NextSession != nil {
		assert.NotEqual(t, sessionId, shown.NextSession.Id)
	}
}

func TestPlannerShowAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	plan, err := env.planner.Create(ctx, userId, &dto.CreatePlanRequest{
		Subject:       "Math",
		Topics:        []string{"Calculus"},
		ExamDate:      time.Now().AddDate(0, 0, 7),
		DailyMinutes:  90,
		SessionLength: 45,
	})
	require.NoError(t, err)

	_, err = env.planner.Show(ctx, uuid.New(), plan.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, env.planner.Delete(ctx, userId, plan.Id))
	_, err = env.planner.Show(ctx, userId, plan.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
