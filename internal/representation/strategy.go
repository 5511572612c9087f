// Package representation turns tokenized sentences into fixed-width vectors.
//
// Every strategy returns a domain.Representation whose Indices map each
// matrix row back to the sentence's position in the input. Resources are
// passed in explicitly and only read.
package representation

import (
	"sentrepr/internal/domain"
	"sentrepr/internal/embedding/tfidf"
)

// Strategy names.
const (
	NameLexical  = "tfidf"
	NameBigram   = "bigram"
	NameSum      = "sum"
	NameMean     = "mean"
	NameWeighted = "weighted"
	NameSmoothed = "sif"
)

// Names lists every known strategy.
func Names() []string {
	return []string{NameLexical, NameBigram, NameSum, NameMean, NameWeighted, NameSmoothed}
}

// Strategy is one way of representing a batch of sentences.
type Strategy interface {
	Name() string
	Represent(sentences []domain.Sentence) (domain.Representation, error)
}

// Resources holds the pretrained collaborators and options a strategy may
// need. Only the fields used by the selected strategy must be set.
type Resources struct {
	Lexical tfidf.Options

	Vectors   domain.WordVectors
	Smoothing domain.SmoothingResource
	// Weights is the term weight table, usually Representation.Weights of a
	// lexical run over the same sentences.
	Weights map[string]float64

	Reducer   domain.Reducer
	Bigrams   []domain.BigramEntry
	Stopwords []string

	MinTokens         int
	SmoothingConstant float64
}

// NeedsWeights reports whether the named strategy consumes a weight table.
func NeedsWeights(name string) bool { return name == NameWeighted }

type strategyFunc struct {
	name string
	fn   func([]domain.Sentence) (domain.Representation, error)
}

func (s strategyFunc) Name() string { return s.name }

func (s strategyFunc) Represent(sentences []domain.Sentence) (domain.Representation, error) {
	return s.fn(sentences)
}

// New builds the named strategy over res. A zero MinTokens or
// SmoothingConstant falls back to the defaults.
func New(name string, res Resources) (Strategy, error) {
	minTokens := res.MinTokens
	if minTokens == 0 {
		minTokens = DefaultMinTokens
	}
	a := res.SmoothingConstant
	if a == 0 {
		a = DefaultSmoothing
	}
	missing := func(what string) error {
		return domain.Failf(name, 0, domain.ErrConfiguration, "requires %s", what)
	}

	switch name {
	case NameLexical:
		if err := res.Lexical.Validate(); err != nil {
			return nil, domain.Fail(name, 0, err)
		}
		return strategyFunc{name, func(s []domain.Sentence) (domain.Representation, error) {
			return Lexical(texts(s), res.Lexical)
		}}, nil
	case NameBigram:
		if res.Reducer == nil {
			return nil, missing("a reduction operator")
		}
		if len(res.Bigrams) == 0 {
			return nil, missing("a bigram vocabulary")
		}
		return strategyFunc{name, func(s []domain.Sentence) (domain.Representation, error) {
			return BigramProjection(tokens(s), res.Stopwords, res.Reducer, res.Bigrams)
		}}, nil
	case NameSum, NameMean:
		if res.Vectors == nil {
			return nil, missing("word vectors")
		}
		agg := VectorSum
		if name == NameMean {
			agg = VectorMean
		}
		return strategyFunc{name, func(s []domain.Sentence) (domain.Representation, error) {
			return agg(texts(s), res.Vectors, minTokens)
		}}, nil
	case NameWeighted:
		if res.Vectors == nil {
			return nil, missing("word vectors")
		}
		if res.Weights == nil {
			return nil, missing("a weight table")
		}
		return strategyFunc{name, func(s []domain.Sentence) (domain.Representation, error) {
			return WeightedVectorSum(texts(s), res.Vectors, res.Weights, minTokens)
		}}, nil
	case NameSmoothed:
		if res.Smoothing == nil {
			return nil, missing("word vectors with frequencies and a dominant direction")
		}
		return strategyFunc{name, func(s []domain.Sentence) (domain.Representation, error) {
			return Smoothed(texts(s), res.Smoothing, a)
		}}, nil
	default:
		return nil, domain.Failf(name, 0, domain.ErrConfiguration, "unknown strategy")
	}
}

func texts(sentences []domain.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

func tokens(sentences []domain.Sentence) [][]domain.TaggedToken {
	out := make([][]domain.TaggedToken, len(sentences))
	for i, s := range sentences {
		out[i] = s.Tokens
	}
	return out
}
