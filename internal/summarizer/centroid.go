package summarizer

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"

	"sentrepr/internal/domain"
)

// DefaultMaxSentences is used when a non-positive limit is requested.
const DefaultMaxSentences = 5

// CentroidSummarizer ranks kept sentences by cosine similarity to the mean
// of all sentence vectors.
type CentroidSummarizer struct{}

// NewCentroidSummarizer creates a centroid-based summarizer.
func NewCentroidSummarizer() *CentroidSummarizer {
	return &CentroidSummarizer{}
}

// Summarize returns the original indices of the selected sentences, in input order.
func (s *CentroidSummarizer) Summarize(rep domain.Representation, maxSentences int) ([]int, error) {
	if len(rep.Indices) != len(rep.Matrix) {
		return nil, errors.New("representation indices and rows differ in length")
	}
	if len(rep.Matrix) == 0 {
		return nil, nil
	}
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	centroid := make([]float64, rep.Dimension())
	for _, row := range rep.Matrix {
		floats.Add(centroid, row)
	}
	floats.Scale(1/float64(len(rep.Matrix)), centroid)

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(rep.Matrix))
	for i, row := range rep.Matrix {
		scores[i] = pair{rep.Indices[i], cosine(row, centroid)}
	}
	// Stable so ties keep input order
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	return selected, nil
}

func cosine(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
