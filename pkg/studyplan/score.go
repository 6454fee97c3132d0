package studyplan

// TopicSignals are the raw per-topic inputs to the importance heuristic.
// All three are unit-less and may arrive on completely different scales
// (a count, a byte size, a 0-1 estimate); they are min-max normalized
// across topics before weighting so no single signal dominates.
type TopicSignals struct {
	Topic              string
	PastPaperFrequency float64
	NoteVolume         float64
	Difficulty         float64
}

// Weights are the non-negative mixing coefficients for the three signals.
type Weights struct {
	Alpha float64 // past-paper frequency
	Beta  float64 // note volume
	Gamma float64 // baseline difficulty
}

func DefaultWeights() Weights {
	return Weights{Alpha: 0.45, Beta: 0.25, Gamma: 0.30}
}

// TopicScore is the weighted importance of one topic. Higher score means
// more study time allocated. Ephemeral: only used during plan construction.
type TopicScore struct {
	Topic string
	Score float64
}

// ComputeScores normalizes each signal across topics and mixes them with
// the given weights. Topic order is preserved.
func ComputeScores(topics []TopicSignals, w Weights) []TopicScore {
	freq := make([]float64, len(topics))
	vol := make([]float64, len(topics))
	diff := make([]float64, len(topics))
	for i, t := range topics {
		freq[i] = t.PastPaperFrequency
		vol[i] = t.NoteVolume
		diff[i] = t.Difficulty
	}

	normalize(freq)
	normalize(vol)
	normalize(diff)

	scores := make([]TopicScore, len(topics))
	for i, t := range topics {
		scores[i] = TopicScore{
			Topic: t.Topic,
			Score: w.Alpha*freq[i] + w.Beta*vol[i] + w.Gamma*diff[i],
		}
	}
	return scores
}

// normalize rescales values to [0, 1] in place via min-max. When every
// topic shares the same raw value the signal carries no information, so
// all topics get 0.5 (uniform inputs must yield uniform scores).
func normalize(values []float64) {
	if len(values) == 0 {
		return
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		for i := range values {
			values[i] = 0.5
		}
		return
	}

	for i := range values {
		values[i] = (values[i] - min) / (max - min)
	}
}
