package representation

import (
	"gonum.org/v1/gonum/floats"

	"sentrepr/internal/domain"
	"sentrepr/internal/logger"
	"sentrepr/internal/provenance"
)

// DefaultMinTokens is the minimum number of usable tokens a sentence needs
// to be kept.
const DefaultMinTokens = 1

// termFunc decides whether a normalized token contributes to its sentence
// and with which scale.
type termFunc func(token string) (vec []float64, scale float64, ok bool, err error)

// VectorSum sums the vectors of the in-vocabulary tokens of each sentence.
// Sentences with fewer than minTokens such tokens are dropped.
func VectorSum(sentences []string, wv domain.WordVectors, minTokens int) (domain.Representation, error) {
	if wv == nil {
		return domain.Representation{}, domain.Failf(NameSum, len(sentences), domain.ErrConfiguration, "no word vectors")
	}
	return aggregate(NameSum, sentences, wv.Dimension(), minTokens, false, plainTerm(wv))
}

// VectorMean is VectorSum followed by division by the number of tokens used.
// Both keep exactly the same sentences.
func VectorMean(sentences []string, wv domain.WordVectors, minTokens int) (domain.Representation, error) {
	if wv == nil {
		return domain.Representation{}, domain.Failf(NameMean, len(sentences), domain.ErrConfiguration, "no word vectors")
	}
	return aggregate(NameMean, sentences, wv.Dimension(), minTokens, true, plainTerm(wv))
}

// WeightedVectorSum scales each token vector by the token's weight before
// summing. Tokens missing from either wv or weights are skipped.
func WeightedVectorSum(sentences []string, wv domain.WordVectors, weights map[string]float64, minTokens int) (domain.Representation, error) {
	if wv == nil {
		return domain.Representation{}, domain.Failf(NameWeighted, len(sentences), domain.ErrConfiguration, "no word vectors")
	}
	if weights == nil {
		return domain.Representation{}, domain.Failf(NameWeighted, len(sentences), domain.ErrConfiguration, "no weight table")
	}
	return aggregate(NameWeighted, sentences, wv.Dimension(), minTokens, false, func(token string) ([]float64, float64, bool, error) {
		if !wv.Contains(token) {
			return nil, 0, false, nil
		}
		w, ok := weights[token]
		if !ok {
			return nil, 0, false, nil
		}
		return wv.Vector(token), w, true, nil
	})
}

func plainTerm(wv domain.WordVectors) termFunc {
	return func(token string) ([]float64, float64, bool, error) {
		if !wv.Contains(token) {
			return nil, 0, false, nil
		}
		return wv.Vector(token), 1, true, nil
	}
}

// aggregate is the shared collector of the word-vector strategies: it
// normalizes every sentence, accumulates the scaled vectors of contributing
// tokens and keeps the sentences with at least minTokens contributions.
func aggregate(strategy string, sentences []string, dim, minTokens int, mean bool, term termFunc) (domain.Representation, error) {
	n := len(sentences)
	if minTokens < 1 {
		return domain.Representation{}, domain.Failf(strategy, n, domain.ErrConfiguration, "minimum token count must be positive, got %d", minTokens)
	}
	if dim <= 0 {
		return domain.Representation{}, domain.Failf(strategy, n, domain.ErrConfiguration, "word vectors have dimension %d", dim)
	}

	rows := make([][]float64, n)
	counts := make([]int, n)
	for i, sentence := range sentences {
		row := make([]float64, dim)
		for _, token := range Normalize(sentence) {
			vec, scale, ok, err := term(token)
			if err != nil {
				return domain.Representation{}, domain.Fail(strategy, n, err)
			}
			if !ok {
				continue
			}
			if len(vec) != dim {
				return domain.Representation{}, domain.Failf(strategy, n, domain.ErrDataConsistency,
					"vector of %q has %d components, want %d", token, len(vec), dim)
			}
			floats.AddScaled(row, scale, vec)
			counts[i]++
		}
		if mean && counts[i] > 0 {
			floats.Scale(1/float64(counts[i]), row)
		}
		rows[i] = row
	}

	indices, matrix := provenance.Filter(rows, func(i int, _ []float64) bool { return counts[i] >= minTokens })
	if len(indices) == 0 {
		return domain.Representation{}, domain.Failf(strategy, n, domain.ErrEmptyInput,
			"no sentence has %d or more usable tokens", minTokens)
	}
	logger.Debug("%s: kept %d of %d sentences", strategy, len(indices), n)
	return domain.Representation{Strategy: strategy, Indices: indices, Matrix: matrix}, nil
}
