// Package tfidf implements the sparse lexical weighting model used by the
// lexical strategy. Its output matches scikit-learn's TfidfVectorizer with
// default settings: smoothed IDF, raw term counts and L2-normalized rows.
package tfidf

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"sentrepr/internal/domain"
)

// Options configures stopword removal and n-gram extraction.
type Options struct {
	Stopwords []string
	NgramMin  int
	NgramMax  int
}

// DefaultOptions returns unigrams with the built-in English stopword list.
func DefaultOptions() Options {
	return Options{Stopwords: EnglishStopwords(), NgramMin: 1, NgramMax: 1}
}

// Validate checks the n-gram range.
func (o Options) Validate() error {
	if o.NgramMin < 1 {
		return fmt.Errorf("%w: ngram minimum must be at least 1, got %d", domain.ErrConfiguration, o.NgramMin)
	}
	if o.NgramMin > o.NgramMax {
		return fmt.Errorf("%w: invalid ngram range (%d, %d)", domain.ErrConfiguration, o.NgramMin, o.NgramMax)
	}
	return nil
}

// Vectorizer builds a vocabulary from a corpus and computes IDF values.
type Vectorizer struct {
	opts         Options
	vocabulary   map[string]int
	features     []string
	idf          []float64
	fitted       bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(opts Options) (*Vectorizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	stop := make(map[string]struct{}, len(opts.Stopwords))
	for _, w := range opts.Stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Vectorizer{
		opts:         opts,
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
		stopwords:    stop,
	}, nil
}

// Fit builds the vocabulary and IDF values from the provided corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("%w: empty corpus", domain.ErrEmptyInput)
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.analyze(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return fmt.Errorf("%w: empty vocabulary; sentences may only contain stopwords", domain.ErrEmptyInput)
	}
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.features = terms
	v.fitted = true
	return nil
}

// FitTransform fits the corpus and returns its dense matrix together with the
// feature names and their IDF values, aligned by column.
func (v *Vectorizer) FitTransform(corpus []string) ([][]float64, []string, []float64, error) {
	if err := v.Fit(corpus); err != nil {
		return nil, nil, nil, err
	}
	matrix := make([][]float64, len(corpus))
	for i, text := range corpus {
		row, err := v.Transform(text)
		if err != nil {
			return nil, nil, nil, err
		}
		matrix[i] = row
	}
	return matrix, v.FeatureNames(), v.IDF(), nil
}

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.features) }

// FeatureNames returns a copy of the sorted vocabulary.
func (v *Vectorizer) FeatureNames() []string {
	return append([]string(nil), v.features...)
}

// IDF returns a copy of the IDF values, aligned with FeatureNames.
func (v *Vectorizer) IDF() []float64 {
	return append([]float64(nil), v.idf...)
}

// Transform computes the TF-IDF vector of text against the fitted vocabulary.
// Text without known terms yields an all-zero vector.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.fitted {
		return nil, fmt.Errorf("%w: tfidf vectorizer not fitted", domain.ErrConfiguration)
	}
	vec := make([]float64, len(v.features))
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			vec[idx]++
		}
	}
	for idx := range vec {
		vec[idx] *= v.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// analyze tokenizes text, drops stopwords and expands the remaining tokens
// into n-grams joined by a single space.
func (v *Vectorizer) analyze(text string) []string {
	lower := strings.ToLower(text)
	raw := v.tokenPattern.FindAllString(lower, -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}
	if v.opts.NgramMin == 1 && v.opts.NgramMax == 1 {
		return tokens
	}
	var out []string
	for n := v.opts.NgramMin; n <= v.opts.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// EnglishStopwords returns the built-in English stopword list.
func EnglishStopwords() []string {
	return []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
}
