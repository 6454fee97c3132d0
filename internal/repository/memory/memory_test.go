package memory

import (
	"context"
	"testing"
	"time"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/specification"
	"studybuddy-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedResource(t *testing.T, store *Store, userId uuid.UUID, filename string) *entity.Resource {
	t.Helper()
	res := &entity.Resource{
		Id:       uuid.New(),
		UserId:   userId,
		Filename: filename,
		Status:   entity.ResourceStatusIndexed,
	}
	require.NoError(t, NewResourceRepository(store).Create(context.Background(), res))
	return res
}

func seedChunkWithEmbedding(t *testing.T, store *Store, resourceId uuid.UUID, index int, content string, vector []float32) *entity.Chunk {
	t.Helper()
	chunk := &entity.Chunk{
		Id:          uuid.New(),
		ResourceId:  resourceId,
		ChunkIndex:  index,
		Content:     content,
		EmbedStatus: entity.ChunkEmbedDone,
	}
	require.NoError(t, NewChunkRepository(store).CreateBulk(context.Background(), []*entity.Chunk{chunk}))
	require.NoError(t, NewChunkEmbeddingRepository(store).CreateBulk(context.Background(), []*entity.ChunkEmbedding{{
		ChunkId:        chunk.Id,
		ResourceId:     resourceId,
		EmbeddingValue: vector,
	}}))
	return chunk
}

func TestSearchSimilarOwnerIsolation(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	other := uuid.New()

	ownerRes := seedResource(t, store, owner, "mine.txt")
	otherRes := seedResource(t, store, other, "theirs.txt")

	query := []float32{1, 0, 0}
	seedChunkWithEmbedding(t, store, ownerRes.Id, 0, "owner chunk", []float32{1, 0, 0})
	seedChunkWithEmbedding(t, store, otherRes.Id, 0, "other chunk", []float32{1, 0, 0})

	scored, err := NewChunkEmbeddingRepository(store).SearchSimilarWithScore(context.Background(), query, 10, owner, 0)
	require.NoError(t, err)

	require.Len(t, scored, 1)
	assert.Equal(t, "owner chunk", scored[0].Chunk.Content)
	assert.InDelta(t, 1.0, scored[0].Similarity, 1e-9)
}

func TestSearchSimilarOrderingAndLimit(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	res := seedResource(t, store, owner, "notes.txt")

	seedChunkWithEmbedding(t, store, res.Id, 2, "far", []float32{0, 1, 0})
	seedChunkWithEmbedding(t, store, res.Id, 1, "close", []float32{0.9, 0.1, 0})
	seedChunkWithEmbedding(t, store, res.Id, 0, "exact", []float32{1, 0, 0})

	repo := NewChunkEmbeddingRepository(store)
	query := []float32{1, 0, 0}

	scored, err := repo.SearchSimilarWithScore(context.Background(), query, 10, owner, 0)
	require.NoError(t, err)
	require.Len(t, scored, 3)
	assert.Equal(t, "exact", scored[0].Chunk.Content)
	assert.Equal(t, "close", scored[1].Chunk.Content)
	assert.Equal(t, "far", scored[2].Chunk.Content)

	limited, err := repo.SearchSimilarWithScore(context.Background(), query, 2, owner, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSearchSimilarThreshold(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	res := seedResource(t, store, owner, "notes.txt")

	seedChunkWithEmbedding(t, store, res.Id, 0, "orthogonal", []float32{0, 1, 0})

	scored, err := NewChunkEmbeddingRepository(store).SearchSimilarWithScore(
		context.Background(), []float32{1, 0, 0}, 10, owner, 0.35,
	)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestSearchSimilarTieBreakOnChunkIndex(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	res := seedResource(t, store, owner, "notes.txt")

	// Identical vectors tie on similarity; document order decides.
	seedChunkWithEmbedding(t, store, res.Id, 5, "later", []float32{1, 0, 0})
	seedChunkWithEmbedding(t, store, res.Id, 1, "earlier", []float32{1, 0, 0})

	scored, err := NewChunkEmbeddingRepository(store).SearchSimilarWithScore(
		context.Background(), []float32{1, 0, 0}, 10, owner, 0,
	)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, "earlier", scored[0].Chunk.Content)
	assert.Equal(t, "later", scored[1].Chunk.Content)
}

func TestSearchSimilarExcludesDeletedResource(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	res := seedResource(t, store, owner, "notes.txt")
	seedChunkWithEmbedding(t, store, res.Id, 0, "content", []float32{1, 0, 0})

	require.NoError(t, NewResourceRepository(store).Delete(context.Background(), res.Id))

	scored, err := NewChunkEmbeddingRepository(store).SearchSimilarWithScore(
		context.Background(), []float32{1, 0, 0}, 10, owner, 0,
	)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestSearchSimilarMockEmbeddingRoundTrip(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	res := seedResource(t, store, owner, "bio.txt")

	provider := embedding.NewMockProvider(64)
	text := "the krebs cycle produces ATP"

	doc, err := provider.Generate(context.Background(), text, embedding.TaskRetrievalDocument)
	require.NoError(t, err)
	seedChunkWithEmbedding(t, store, res.Id, 0, text, doc.Embedding.Values)

	query, err := provider.Generate(context.Background(), text, embedding.TaskRetrievalQuery)
	require.NoError(t, err)

	scored, err := NewChunkEmbeddingRepository(store).SearchSimilarWithScore(
		context.Background(), query.Embedding.Values, 5, owner, 0.35,
	)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.InDelta(t, 1.0, scored[0].Similarity, 1e-6)
}

func TestResourceSoftDelete(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	repo := NewResourceRepository(store)
	res := seedResource(t, store, owner, "gone.txt")

	require.NoError(t, repo.Delete(context.Background(), res.Id))

	found, err := repo.FindOne(context.Background(), specification.ByID{ID: res.Id})
	require.NoError(t, err)
	assert.Nil(t, found)

	all, err := repo.FindAll(context.Background(), specification.OwnedBy{UserID: owner})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChunkCountByContentMatch(t *testing.T) {
	store := NewStore()
	owner := uuid.New()
	other := uuid.New()

	ownerRes := seedResource(t, store, owner, "mine.txt")
	otherRes := seedResource(t, store, other, "theirs.txt")

	chunks := []*entity.Chunk{
		{Id: uuid.New(), ResourceId: ownerRes.Id, ChunkIndex: 0, Content: "Genetics and inheritance"},
		{Id: uuid.New(), ResourceId: ownerRes.Id, ChunkIndex: 1, Content: "more GENETICS material"},
		{Id: uuid.New(), ResourceId: ownerRes.Id, ChunkIndex: 2, Content: "ecology field notes"},
		{Id: uuid.New(), ResourceId: otherRes.Id, ChunkIndex: 0, Content: "genetics from someone else"},
	}
	repo := NewChunkRepository(store)
	require.NoError(t, repo.CreateBulk(context.Background(), chunks))

	count, err := repo.CountByContentMatch(context.Background(), owner, "genetics")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByContentMatch(context.Background(), owner, "thermodynamics")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCardReviewPriorityOrdering(t *testing.T) {
	repo := NewCardRepository()
	owner := uuid.New()
	now := time.Now()
	reviewed := now.Add(-24 * time.Hour)

	overdue := &entity.Card{
		Id: uuid.New(), UserId: owner, Front: "overdue",
		Easiness: 2.5, DueDate: now.Add(-72 * time.Hour), LastReviewedAt: &reviewed,
	}
	hard := &entity.Card{
		Id: uuid.New(), UserId: owner, Front: "hard",
		Easiness: 1.3, DueDate: now.Add(-time.Hour), LastReviewedAt: &reviewed,
	}
	fresh := &entity.Card{
		Id: uuid.New(), UserId: owner, Front: "fresh",
		Easiness: 2.5, DueDate: now.Add(-time.Hour),
	}
	notDue := &entity.Card{
		Id: uuid.New(), UserId: owner, Front: "not due",
		Easiness: 2.5, DueDate: now.Add(48 * time.Hour), LastReviewedAt: &reviewed,
	}
	for _, c := range []*entity.Card{overdue, hard, fresh, notDue} {
		require.NoError(t, repo.Create(context.Background(), c))
	}

	due, err := repo.FindAll(context.Background(),
		specification.OwnedBy{UserID: owner},
		specification.DueBefore{AsOf: now},
		specification.ReviewPriority{},
	)
	require.NoError(t, err)

	// Never reviewed first, then lowest easiness, then most overdue.
	require.Len(t, due, 3)
	assert.Equal(t, "fresh", due[0].Front)
	assert.Equal(t, "hard", due[1].Front)
	assert.Equal(t, "overdue", due[2].Front)
}

func TestCardFindByFrontScopedToOwner(t *testing.T) {
	repo := NewCardRepository()
	owner := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.Create(context.Background(), &entity.Card{
		Id: uuid.New(), UserId: other, Front: "What is osmosis?",
	}))

	found, err := repo.FindOne(context.Background(),
		specification.OwnedBy{UserID: owner},
		specification.ByFront{Front: "What is osmosis?"},
	)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCardUpdateRoundTrip(t *testing.T) {
	repo := NewCardRepository()
	owner := uuid.New()
	card := &entity.Card{Id: uuid.New(), UserId: owner, Front: "f", Easiness: 2.5}
	require.NoError(t, repo.Create(context.Background(), card))

	card.Easiness = 1.7
	card.Repetitions = 2
	require.NoError(t, repo.Update(context.Background(), card))

	found, err := repo.FindOne(context.Background(), specification.ByID{ID: card.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1.7, found.Easiness)
	assert.Equal(t, 2, found.Repetitions)
}
