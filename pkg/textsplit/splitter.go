package textsplit

// Segment is one chunk of a larger document. Start/End are rune offsets
// into the original text, Index is the 0-based document order.
type Segment struct {
	Index int
	Start int
	End   int
	Text  string
}

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Split cuts text into overlapping segments of approximately 'chunkSize'
// runes. The overlap preserves context at boundaries so a sentence cut at
// a chunk edge stays readable in at least one segment.
//
// The result is fully determined by (text, chunkSize, overlap): re-running
// the split yields byte-identical segments, which keeps re-indexing
// idempotent. Every rune of the input is covered by at least one segment;
// a trailing remainder shorter than the overlap is still emitted.
func Split(text string, chunkSize int, overlap int) []Segment {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []Segment{{Index: 0, Start: 0, End: totalLen, Text: text}}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var segments []Segment
	for start := 0; start < totalLen; start += step {
		end := start + chunkSize
		if end > totalLen {
			end = totalLen
		}
		segments = append(segments, Segment{
			Index: len(segments),
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
		})
	}

	return segments
}
