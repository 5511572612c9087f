package representation

import (
	"sentrepr/internal/domain"
	"sentrepr/internal/logger"
	"sentrepr/internal/provenance"
)

// BigramProjection builds a vector over the fixed bigram vocabulary for each
// sentence (the entry's weight where the sentence contains that bigram, 0
// elsewhere), drops all-zero vectors and projects the rest with reducer.
//
// Bigrams are taken over consecutive stems. Stems in stopwords are skipped
// first; input that was already filtered upstream is unaffected.
func BigramProjection(sentences [][]domain.TaggedToken, stopwords []string, reducer domain.Reducer, vocab []domain.BigramEntry) (domain.Representation, error) {
	n := len(sentences)
	if reducer == nil {
		return domain.Representation{}, domain.Failf(NameBigram, n, domain.ErrConfiguration, "no reduction operator")
	}
	if len(vocab) == 0 {
		return domain.Representation{}, domain.Failf(NameBigram, n, domain.ErrConfiguration, "empty bigram vocabulary")
	}
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[w] = struct{}{}
	}

	hot := make([][]float64, n)
	for i, tokens := range sentences {
		present := sentenceBigrams(tokens, stop)
		vec := make([]float64, len(vocab))
		for k, entry := range vocab {
			if _, ok := present[entry.Bigram]; ok {
				vec[k] = entry.Weight
			}
		}
		hot[i] = vec
	}

	indices, kept := provenance.Filter(hot, func(_ int, vec []float64) bool { return !isZero(vec) })
	if len(indices) == 0 {
		return domain.Representation{}, domain.Failf(NameBigram, n, domain.ErrEmptyInput, "no sentence contains a vocabulary bigram")
	}
	reduced, err := reducer.Transform(kept)
	if err != nil {
		return domain.Representation{}, domain.Fail(NameBigram, n, err)
	}
	if len(reduced) != len(kept) {
		return domain.Representation{}, domain.Failf(NameBigram, n, domain.ErrDataConsistency,
			"reducer returned %d rows for %d vectors", len(reduced), len(kept))
	}
	logger.Debug("%s: kept %d of %d sentences", NameBigram, len(indices), n)
	return domain.Representation{Strategy: NameBigram, Indices: indices, Matrix: reduced}, nil
}

func sentenceBigrams(tokens []domain.TaggedToken, stop map[string]struct{}) map[domain.Bigram]struct{} {
	stems := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, isStop := stop[t.Stem]; isStop {
			continue
		}
		stems = append(stems, t.Stem)
	}
	out := make(map[domain.Bigram]struct{})
	for i := 0; i+1 < len(stems); i++ {
		out[domain.Bigram{stems[i], stems[i+1]}] = struct{}{}
	}
	return out
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
