package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrepr/internal/config"
	"sentrepr/internal/domain"
	"sentrepr/internal/representation"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, strategy string) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Strategy = strategy
	return cfg
}

func TestLoadResources_Lexical(t *testing.T) {
	cfg := testConfig(t, representation.NameLexical)
	cfg.Lexical.NgramMax = 2

	res, err := loadResources(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Lexical.NgramMax)
	assert.Contains(t, res.Stopwords, "the")
	assert.Nil(t, res.Vectors)
	assert.Nil(t, res.Reducer)
}

func TestLoadResources_Smoothed(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, representation.NameSmoothed)
	cfg.WordVectors.VectorsPath = writeFile(t, dir, "vectors.txt", "cat 1 0\ndog 0 1\n")
	cfg.WordVectors.FrequenciesPath = writeFile(t, dir, "freq.txt", "cat 3\ndog 1\n")
	cfg.WordVectors.DirectionPath = writeFile(t, dir, "direction.txt", "0 2\n")

	res, err := loadResources(cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Vectors)
	require.NotNil(t, res.Smoothing)
	assert.Equal(t, 2, res.Vectors.Dimension())
	assert.InDeltaSlice(t, []float64{0, 1}, res.Smoothing.DominantDirection(), 1e-12)

	f, ok := res.Smoothing.Frequency("cat")
	require.True(t, ok)
	assert.InDelta(t, 0.75, f, 1e-12)
}

func TestLoadResources_Bigram(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, representation.NameBigram)
	cfg.Bigram.ModelPath = writeFile(t, dir, "model.json", `{
		"bigrams": [{"first": "cat", "second": "sat", "weight": 1}, {"first": "sat", "second": "mat", "weight": 2}],
		"components": [[1, 0], [0, 1], [1, 1]]
	}`)

	res, err := loadResources(cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Reducer)
	assert.Equal(t, 3, res.Reducer.Dimension())
	assert.Len(t, res.Bigrams, 2)
}

func TestLoadResources_MissingFiles(t *testing.T) {
	for _, name := range []string{representation.NameSum, representation.NameSmoothed, representation.NameBigram} {
		t.Run(name, func(t *testing.T) {
			_, err := loadResources(testConfig(t, name))
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}

	cfg := testConfig(t, representation.NameMean)
	cfg.WordVectors.VectorsPath = filepath.Join(t.TempDir(), "nope.txt")
	_, err := loadResources(cfg)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	vectorsPath := writeFile(t, dir, "vectors.txt", "cat 1 0\ndog 0.9 0.1\nstock 0 1\n")
	cfgFile := writeFile(t, dir, "sentrepr.yaml", "strategy: mean\nword_vectors:\n  vectors_path: "+vectorsPath+"\nsummarizer:\n  max_sentences: 1\n")
	input := writeFile(t, dir, "input.txt", "the cat\nzzz\nthe dog\nstock\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "-c", cfgFile, input})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		cfgPath = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "strategy:  mean")
	assert.Contains(t, out.String(), "kept:      3 of 4")
	assert.Contains(t, out.String(), "dimension: 2")
	assert.Contains(t, out.String(), "dropped:   1")
}
