// Package rag assembles grounded context and citations from retrieved
// chunks. It is pure assembly; retrieval and generation live with the
// caller.
package rag

import (
	"fmt"
	"math"
	"strings"

	"studybuddy-be/internal/repository/contract"

	"github.com/google/uuid"
)

const (
	// ContextCharLimit caps how much of each chunk goes into the prompt.
	ContextCharLimit = 500
	// SnippetCharLimit caps citation snippets returned to the caller.
	SnippetCharLimit = 200
)

// Citation points an answer back at the retrieved chunk that grounds it.
// SourceId matches the [Source N] markers in the prompt context.
type Citation struct {
	SourceId   int       `json:"source_id"`
	Text       string    `json:"text"`
	Similarity float64   `json:"similarity"`
	ResourceId uuid.UUID `json:"resource_id"`
	ChunkIndex int       `json:"chunk_index"`
}

// GroundedContext is the assembled prompt material for one query.
type GroundedContext struct {
	Context    string
	Citations  []Citation
	UsedChunks int
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// Assemble builds the [Source N] context blocks and matching citations
// from scored chunks, preserving retrieval order.
func Assemble(scored []*contract.ScoredChunk) *GroundedContext {
	blocks := make([]string, len(scored))
	citations := make([]Citation, len(scored))
	for i, sc := range scored {
		blocks[i] = fmt.Sprintf("[Source %d]: %s", i+1, truncateRunes(sc.Chunk.Content, ContextCharLimit))
		citations[i] = Citation{
			SourceId:   i + 1,
			Text:       truncateRunes(sc.Chunk.Content, SnippetCharLimit),
			Similarity: round3(sc.Similarity),
			ResourceId: sc.Chunk.ResourceId,
			ChunkIndex: sc.Chunk.ChunkIndex,
		}
	}
	return &GroundedContext{
		Context:    strings.Join(blocks, "\n\n"),
		Citations:  citations,
		UsedChunks: len(scored),
	}
}
