package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		wantCount int
	}{
		{
			name:      "empty text",
			text:      "",
			chunkSize: 1000,
			overlap:   200,
			wantCount: 0,
		},
		{
			name:      "text shorter than chunk size",
			text:      "short document",
			chunkSize: 1000,
			overlap:   200,
			wantCount: 1,
		},
		{
			name:      "text exactly chunk size",
			text:      strings.Repeat("a", 1000),
			chunkSize: 1000,
			overlap:   200,
			wantCount: 1,
		},
		{
			name:      "2500 runes at 1000/200",
			text:      strings.Repeat("a", 2500),
			chunkSize: 1000,
			overlap:   200,
			wantCount: 4,
		},
		{
			name:      "zero chunk size falls back to default",
			text:      strings.Repeat("a", 500),
			chunkSize: 0,
			overlap:   0,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Split(tt.text, tt.chunkSize, tt.overlap)
			assert.Len(t, segments, tt.wantCount)
		})
	}
}

func TestSplitOffsets(t *testing.T) {
	text := strings.Repeat("a", 2500)
	segments := Split(text, 1000, 200)

	assert.Len(t, segments, 4)

	// Starts advance by chunkSize - overlap, ends are clamped to the text.
	wantStarts := []int{0, 800, 1600, 2400}
	wantEnds := []int{1000, 1800, 2500, 2500}
	for i, seg := range segments {
		assert.Equal(t, i, seg.Index)
		assert.Equal(t, wantStarts[i], seg.Start)
		assert.Equal(t, wantEnds[i], seg.End)
		assert.Equal(t, seg.End-seg.Start, len([]rune(seg.Text)))
	}
}

func TestSplitCoversEveryRune(t *testing.T) {
	text := strings.Repeat("xyz ", 700) // 2800 runes
	segments := Split(text, 1000, 200)

	covered := make([]bool, len([]rune(text)))
	for _, seg := range segments {
		for i := seg.Start; i < seg.End; i++ {
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Fatalf("rune %d not covered by any segment", i)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)

	first := Split(text, 1000, 200)
	second := Split(text, 1000, 200)

	assert.Equal(t, first, second)
}

func TestSplitMultibyteRunes(t *testing.T) {
	// Offsets are rune offsets, so multibyte characters must not shift
	// boundaries or produce invalid UTF-8 at chunk edges.
	text := strings.Repeat("日本語テキスト", 100) // 600 runes
	segments := Split(text, 250, 50)

	runes := []rune(text)
	for _, seg := range segments {
		assert.Equal(t, string(runes[seg.Start:seg.End]), seg.Text)
	}
}

func TestSplitOverlapAtLeastChunkSize(t *testing.T) {
	// Degenerate overlap must not loop forever; the step falls back to a
	// full chunk.
	text := strings.Repeat("a", 300)
	segments := Split(text, 100, 100)

	assert.Len(t, segments, 3)
	for i, seg := range segments {
		assert.Equal(t, i*100, seg.Start)
	}
}
