package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrepr/internal/domain"
	"sentrepr/internal/embedding/tfidf"
	"sentrepr/internal/representation"
	"sentrepr/internal/resource"
	"sentrepr/internal/summarizer"
	"sentrepr/internal/vectorstore/memory"
)

func vectors(t *testing.T) *resource.Vectors {
	t.Helper()
	v, err := resource.NewVectors(map[string][]float64{
		"cat":   {1, 0, 0},
		"dog":   {0.9, 0.1, 0},
		"stock": {0, 0, 1},
		"bond":  {0, 0.1, 0.9},
	})
	require.NoError(t, err)
	return v
}

func newPipeline(t *testing.T, strategy string) *Pipeline {
	t.Helper()
	res := representation.Resources{Lexical: tfidf.DefaultOptions(), Vectors: vectors(t)}
	return NewPipeline(strategy, res, memory.NewStorage(), summarizer.NewCentroidSummarizer(), 2)
}

func sentences(lines ...string) []domain.Sentence {
	out := make([]domain.Sentence, len(lines))
	for i, l := range lines {
		out[i] = ParseSentence(l)
	}
	return out
}

func TestParseSentence(t *testing.T) {
	s := ParseSentence("  Cats|cat  are running|run ")

	assert.Equal(t, "Cats are running", s.Text)
	assert.Equal(t, []domain.TaggedToken{
		{Word: "Cats", Stem: "cat"},
		{Word: "are", Stem: "are"},
		{Word: "running", Stem: "run"},
	}, s.Tokens)
}

func TestParseSentence_StripsPunctuationFromDefaultStems(t *testing.T) {
	s := ParseSentence("New York, city. --")

	assert.Equal(t, "New York, city. --", s.Text)
	assert.Equal(t, []domain.TaggedToken{
		{Word: "New", Stem: "new"},
		{Word: "York,", Stem: "york"},
		{Word: "city.", Stem: "city"},
	}, s.Tokens)
}

func TestRun_BigramKeepsPunctuatedSentence(t *testing.T) {
	proj, err := resource.NewProjection([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	res := representation.Resources{
		Reducer: proj,
		Bigrams: []domain.BigramEntry{
			{Bigram: domain.Bigram{"york", "city"}, Weight: 1},
			{Bigram: domain.Bigram{"stock", "bond"}, Weight: 2},
		},
	}
	p := NewPipeline(representation.NameBigram, res, memory.NewStorage(), summarizer.NewCentroidSummarizer(), 2)

	report, err := p.Run(sentences("New York, city.", "nothing here", "Stock, bond!"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, []int{1}, report.Dropped)
	row, ok := p.Representation().Row(0)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0}, row)
}

type flakyStore struct {
	*memory.Storage
	failUpsert bool
}

func (s *flakyStore) Upsert(records []domain.SentenceRecord, vectors [][]float64) error {
	if s.failUpsert {
		return errors.New("upsert failed")
	}
	return s.Storage.Upsert(records, vectors)
}

func TestRun_StoreFailureForgetsPreviousRun(t *testing.T) {
	store := &flakyStore{Storage: memory.NewStorage()}
	res := representation.Resources{Lexical: tfidf.DefaultOptions(), Vectors: vectors(t)}
	p := NewPipeline(representation.NameSum, res, store, summarizer.NewCentroidSummarizer(), 2)

	_, err := p.Run(sentences("the cat", "a dog"))
	require.NoError(t, err)
	_, err = p.Similar(0, 1)
	require.NoError(t, err)

	store.failUpsert = true
	_, err = p.Run(sentences("stock", "bond"))
	require.Error(t, err)

	assert.Empty(t, p.Sentences())
	assert.Zero(t, store.Len())
	_, err = p.Similar(0, 1)
	assert.Error(t, err)
}

func TestRun_ReportsProvenance(t *testing.T) {
	p := newPipeline(t, representation.NameSum)

	report, err := p.Run(sentences("the cat", "nothing here", "a dog", "stock and bond", "???"))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "sum", report.Strategy)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 3, report.Kept)
	assert.Equal(t, 3, report.Dimension)
	assert.Equal(t, []int{1, 4}, report.Dropped)
	assert.Len(t, report.Summary, 2)
	assert.Equal(t, []int{0, 2, 3}, p.Representation().Indices)
	assert.Len(t, p.Sentences(), 5)
}

func TestRun_WeightedBuildsWeightTable(t *testing.T) {
	p := newPipeline(t, representation.NameWeighted)

	report, err := p.Run(sentences("cat dog", "dog stock", "bond"))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Kept)
}

func TestRun_PropagatesStrategyErrors(t *testing.T) {
	p := newPipeline(t, representation.NameMean)

	_, err := p.Run(sentences("zzz", "yyy"))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	p = newPipeline(t, "unknown")
	_, err = p.Run(sentences("cat"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSimilarAndFind(t *testing.T) {
	p := newPipeline(t, representation.NameMean)
	_, err := p.Run(sentences("my cat", "zzz", "a dog", "stock prices", "bond yields"))
	require.NoError(t, err)

	res, err := p.Similar(0, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 2, res[0].Record.Index)
	assert.Equal(t, "a dog", res[0].Record.Text)
	for _, r := range res {
		assert.NotEqual(t, 0, r.Record.Index)
	}

	_, err = p.Similar(1, 2)
	assert.Error(t, err)

	idx, err := p.Find("STOCK")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	idx, err = p.Find("4")
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = p.Find("1")
	assert.Error(t, err)
	_, err = p.Find("zzz")
	assert.Error(t, err)
}

func TestIngestDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("the cat sat\n\nzzz\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("stock rose\n"), 0o644))

	p := newPipeline(t, representation.NameSum)
	report, err := p.IngestDocuments([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []int{1}, report.Dropped)
	assert.Equal(t, "stock rose", p.Sentences()[2].Text)
}

func TestIngestDocuments_Errors(t *testing.T) {
	p := newPipeline(t, representation.NameSum)

	_, err := p.IngestDocuments([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))
	_, err = p.IngestDocuments([]string{empty})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
