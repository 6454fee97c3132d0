package rag

import (
	"strings"
	"testing"

	"studybuddy-be/internal/entity"
	"studybuddy-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredChunk(content string, index int, similarity float64) *contract.ScoredChunk {
	return &contract.ScoredChunk{
		Chunk: &entity.Chunk{
			Id:         uuid.New(),
			ResourceId: uuid.New(),
			ChunkIndex: index,
			Content:    content,
		},
		Similarity: similarity,
	}
}

func TestAssembleNumbersSourcesInOrder(t *testing.T) {
	scored := []*contract.ScoredChunk{
		scoredChunk("first chunk", 0, 0.91),
		scoredChunk("second chunk", 3, 0.82),
		scoredChunk("third chunk", 1, 0.70),
	}

	grounded := Assemble(scored)

	assert.Equal(t, 3, grounded.UsedChunks)
	require.Len(t, grounded.Citations, 3)

	blocks := strings.Split(grounded.Context, "\n\n")
	require.Len(t, blocks, 3)
	assert.Equal(t, "[Source 1]: first chunk", blocks[0])
	assert.Equal(t, "[Source 2]: second chunk", blocks[1])
	assert.Equal(t, "[Source 3]: third chunk", blocks[2])

	for i, c := range grounded.Citations {
		assert.Equal(t, i+1, c.SourceId)
		assert.Equal(t, scored[i].Chunk.ResourceId, c.ResourceId)
		assert.Equal(t, scored[i].Chunk.ChunkIndex, c.ChunkIndex)
	}
}

func TestAssembleTruncation(t *testing.T) {
	long := strings.Repeat("x", 900)
	grounded := Assemble([]*contract.ScoredChunk{scoredChunk(long, 0, 0.9)})

	// Prompt context caps at 500 runes per chunk, citation snippet at 200.
	assert.Equal(t, "[Source 1]: "+strings.Repeat("x", ContextCharLimit), grounded.Context)
	assert.Len(t, grounded.Citations[0].Text, SnippetCharLimit)
}

func TestAssembleSimilarityRounding(t *testing.T) {
	grounded := Assemble([]*contract.ScoredChunk{
		scoredChunk("a", 0, 0.87654321),
		scoredChunk("b", 1, 0.1),
	})

	assert.Equal(t, 0.877, grounded.Citations[0].Similarity)
	assert.Equal(t, 0.1, grounded.Citations[1].Similarity)
}

func TestAssembleEmpty(t *testing.T) {
	grounded := Assemble(nil)

	assert.Equal(t, "", grounded.Context)
	assert.Empty(t, grounded.Citations)
	assert.Equal(t, 0, grounded.UsedChunks)
}

func TestBuildMessages(t *testing.T) {
	grounded := Assemble([]*contract.ScoredChunk{scoredChunk("cells divide by mitosis", 0, 0.9)})
	messages := BuildMessages(grounded, "How do cells divide?")

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "[Source N]")

	assert.Equal(t, "user", messages[1].Role)
	assert.Contains(t, messages[1].Content, "Context:\n[Source 1]: cells divide by mitosis")
	assert.Contains(t, messages[1].Content, "Question: How do cells divide?")
	assert.Contains(t, messages[1].Content, "Provide a clear answer with citations.")
}
