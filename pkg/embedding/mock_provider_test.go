package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderDeterministic(t *testing.T) {
	provider := NewMockProvider(768)

	first, err := provider.Generate(context.Background(), "mitochondria are the powerhouse of the cell", TaskRetrievalDocument)
	require.NoError(t, err)

	second, err := provider.Generate(context.Background(), "mitochondria are the powerhouse of the cell", TaskRetrievalQuery)
	require.NoError(t, err)

	// Same text must embed identically regardless of task type, otherwise
	// a query could never match its own indexed document.
	assert.Equal(t, first.Embedding.Values, second.Embedding.Values)
}

func TestMockProviderDimension(t *testing.T) {
	for _, dim := range []int{8, 128, 768} {
		provider := NewMockProvider(dim)
		res, err := provider.Generate(context.Background(), "any text", TaskRetrievalDocument)
		require.NoError(t, err)
		assert.Len(t, res.Embedding.Values, dim)
	}
}

func TestMockProviderUnitLength(t *testing.T) {
	provider := NewMockProvider(768)
	res, err := provider.Generate(context.Background(), "photosynthesis", TaskRetrievalDocument)
	require.NoError(t, err)

	var magnitude float64
	for _, v := range res.Embedding.Values {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-5)
}

func TestMockProviderDistinguishesTexts(t *testing.T) {
	provider := NewMockProvider(768)

	a, err := provider.Generate(context.Background(), "calculus", TaskRetrievalDocument)
	require.NoError(t, err)
	b, err := provider.Generate(context.Background(), "organic chemistry", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.NotEqual(t, a.Embedding.Values, b.Embedding.Values)

	// Unrelated hash-derived vectors should be far from parallel.
	sim := CosineSimilarity(a.Embedding.Values, b.Embedding.Values)
	assert.Less(t, sim, 0.5)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "mismatched lengths",
			a:    []float32{1, 2},
			b:    []float32{1, 2, 3},
			want: 0,
		},
		{
			name: "zero vector",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0,
		},
		{
			name: "empty input",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilaritySelfIsOne(t *testing.T) {
	provider := NewMockProvider(768)
	res, err := provider.Generate(context.Background(), "self similarity", TaskRetrievalDocument)
	require.NoError(t, err)

	sim := CosineSimilarity(res.Embedding.Values, res.Embedding.Values)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestNormalizeVector(t *testing.T) {
	normalized := NormalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(normalized[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(normalized[1]), 1e-6)

	// Zero magnitude passes through untouched.
	zero := []float32{0, 0}
	assert.Equal(t, zero, NormalizeVector(zero))
}
