package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockProvider is the deterministic fallback used when no live credentials
// are configured. The vector is a pure function of the input text: the same
// text always yields the same unit-length vector of the configured
// dimension, so retrieval is testable and reproducible offline.
//
// The vectors carry no semantic meaning, but cosine comparisons among them
// still behave as valid similarity scores (bounded, symmetric,
// self-similarity = 1).
type MockProvider struct {
	Dimension int
}

func NewMockProvider(dimension int) EmbeddingProvider {
	if dimension <= 0 {
		dimension = 768
	}
	return &MockProvider{Dimension: dimension}
}

func (p *MockProvider) Generate(_ context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	// taskType is deliberately excluded from the seed: a query for a text
	// must embed identically to the indexed document text.
	seed := sha256.Sum256([]byte(text))

	values := make([]float32, p.Dimension)
	var block [32]byte
	var counter [8]byte

	// Expand the seed into D values by hashing (seed || counter).
	// Each byte maps to [-1, 1).
	i := 0
	for n := uint64(0); i < p.Dimension; n++ {
		binary.BigEndian.PutUint64(counter[:], n)
		block = sha256.Sum256(append(seed[:], counter[:]...))
		for _, b := range block {
			if i >= p.Dimension {
				break
			}
			values[i] = float32(b)/128.0 - 1.0
			i++
		}
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: NormalizeVector(values),
		},
	}, nil
}
