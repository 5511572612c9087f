package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrepr/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tfidf", cfg.Strategy)
	assert.Equal(t, 1, cfg.WordVectors.MinTokens)
	assert.Equal(t, 1e-3, cfg.WordVectors.Smoothing)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "c.yaml", `
strategy: sif
lexical:
  ngram_min: 1
  ngram_max: 2
word_vectors:
  vectors_path: /data/vectors.txt
  smoothing: 0.01
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sif", cfg.Strategy)
	assert.Equal(t, 2, cfg.Lexical.NgramMax)
	assert.Equal(t, "/data/vectors.txt", cfg.WordVectors.VectorsPath)
	assert.Equal(t, 0.01, cfg.WordVectors.Smoothing)
	// defaults fill the rest
	assert.Equal(t, 1, cfg.WordVectors.MinTokens)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, "english", cfg.Lexical.Stopwords)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "c.toml", `
strategy = "weighted"

[word_vectors]
min_tokens = 2

[summarizer]
max_sentences = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "weighted", cfg.Strategy)
	assert.Equal(t, 2, cfg.WordVectors.MinTokens)
	assert.Equal(t, 3, cfg.Summarizer.MaxSentences)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeFile(t, "c.yaml", "strategy: [unclosed"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := defaultConfig()
			cfg.Strategy = "mean"

			require.NoError(t, Save(path, cfg))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadDefault_FromEnv(t *testing.T) {
	path := writeFile(t, "env.yaml", "strategy: bigram\n")
	t.Setenv(EnvConfigPath, path)

	cfg, used, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "bigram", cfg.Strategy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*AppConfig)
	}{
		{"unknown strategy", func(c *AppConfig) { c.Strategy = "bert" }},
		{"bad ngram range", func(c *AppConfig) { c.Lexical.NgramMin, c.Lexical.NgramMax = 3, 1 }},
		{"negative threshold", func(c *AppConfig) { c.WordVectors.MinTokens = -1 }},
		{"negative smoothing", func(c *AppConfig) { c.WordVectors.Smoothing = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrConfiguration)
		})
	}
}

func TestStopwords(t *testing.T) {
	cfg := defaultConfig()
	words, err := cfg.Stopwords()
	require.NoError(t, err)
	assert.Contains(t, words, "the")

	cfg.Lexical.Stopwords = "none"
	words, err = cfg.Stopwords()
	require.NoError(t, err)
	assert.Empty(t, words)

	cfg.Lexical.Stopwords = writeFile(t, "stop.txt", "foo\nbar\n")
	words, err = cfg.Stopwords()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, words)

	cfg.Lexical.Stopwords = filepath.Join(t.TempDir(), "missing.txt")
	_, err = cfg.Stopwords()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
