package representation

import (
	"sentrepr/internal/domain"
	"sentrepr/internal/embedding/tfidf"
	"sentrepr/internal/logger"
	"sentrepr/internal/provenance"
)

// Lexical builds the TF-IDF matrix of the whole batch. It never drops a
// sentence; one without matching terms gets an all-zero row. The returned
// Weights map every vocabulary term to its IDF.
//
// Rows depend on the whole batch because the vocabulary and IDF are fitted on it.
func Lexical(sentences []string, opts tfidf.Options) (domain.Representation, error) {
	v, err := tfidf.NewVectorizer(opts)
	if err != nil {
		return domain.Representation{}, domain.Fail(NameLexical, len(sentences), err)
	}
	matrix, features, idf, err := v.FitTransform(sentences)
	if err != nil {
		return domain.Representation{}, domain.Fail(NameLexical, len(sentences), err)
	}
	weights := make(map[string]float64, len(features))
	for i, term := range features {
		weights[term] = idf[i]
	}
	logger.Debug("%s: %d sentences, %d terms", NameLexical, len(sentences), len(features))
	return domain.Representation{
		Strategy: NameLexical,
		Indices:  provenance.Identity(len(sentences)),
		Matrix:   matrix,
		Weights:  weights,
	}, nil
}
