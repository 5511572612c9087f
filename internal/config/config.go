package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sentrepr/internal/domain"
	"sentrepr/internal/embedding/tfidf"
	"sentrepr/internal/representation"
)

// EnvConfigPath names the environment variable that selects the config file.
const EnvConfigPath = "SENTREPR_CONFIG"

// LexicalConfig configures the TF-IDF model.
type LexicalConfig struct {
	// Stopwords is "english", "none" or a path to a file with one word per line.
	Stopwords string `yaml:"stopwords" toml:"stopwords"`
	NgramMin  int    `yaml:"ngram_min" toml:"ngram_min"`
	NgramMax  int    `yaml:"ngram_max" toml:"ngram_max"`
}

// WordVectorsConfig points at the pretrained word-vector resource.
type WordVectorsConfig struct {
	VectorsPath     string  `yaml:"vectors_path" toml:"vectors_path"`
	FrequenciesPath string  `yaml:"frequencies_path" toml:"frequencies_path"`
	DirectionPath   string  `yaml:"direction_path" toml:"direction_path"`
	MinTokens       int     `yaml:"min_tokens" toml:"min_tokens"`
	Smoothing       float64 `yaml:"smoothing" toml:"smoothing"`
}

// BigramConfig points at the bigram vocabulary and projection.
type BigramConfig struct {
	ModelPath string `yaml:"model_path" toml:"model_path"`
}

// SummarizerConfig configures the summary built after a run.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences" toml:"max_sentences"`
}

// SearchConfig configures neighbour lookups.
type SearchConfig struct {
	TopK int `yaml:"top_k" toml:"top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Strategy    string            `yaml:"strategy" toml:"strategy"`
	Lexical     LexicalConfig     `yaml:"lexical" toml:"lexical"`
	WordVectors WordVectorsConfig `yaml:"word_vectors" toml:"word_vectors"`
	Bigram      BigramConfig      `yaml:"bigram" toml:"bigram"`
	Summarizer  SummarizerConfig  `yaml:"summarizer" toml:"summarizer"`
	Search      SearchConfig      `yaml:"search" toml:"search"`
	Verbose     bool              `yaml:"verbose" toml:"verbose"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries $SENTREPR_CONFIG, then ./sentrepr.yaml, then ~/.config/sentrepr/config.yaml.
// If none exists, it writes defaults to ~/.config/sentrepr/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	cwdPath := "sentrepr.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports configuration errors that do not depend on resource files.
func (c *AppConfig) Validate() error {
	known := false
	for _, name := range representation.Names() {
		if c.Strategy == name {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown strategy %q (want one of %s)", domain.ErrConfiguration,
			c.Strategy, strings.Join(representation.Names(), ", "))
	}
	if err := (tfidf.Options{NgramMin: c.Lexical.NgramMin, NgramMax: c.Lexical.NgramMax}).Validate(); err != nil {
		return err
	}
	if c.WordVectors.MinTokens < 1 {
		return fmt.Errorf("%w: min_tokens must be positive, got %d", domain.ErrConfiguration, c.WordVectors.MinTokens)
	}
	if !(c.WordVectors.Smoothing > 0) {
		return fmt.Errorf("%w: smoothing must be positive, got %g", domain.ErrConfiguration, c.WordVectors.Smoothing)
	}
	return nil
}

// Stopwords resolves the lexical stopword setting into a word list.
func (c *AppConfig) Stopwords() ([]string, error) {
	switch strings.ToLower(c.Lexical.Stopwords) {
	case "", "english":
		return tfidf.EnglishStopwords(), nil
	case "none":
		return nil, nil
	}
	data, err := os.ReadFile(c.Lexical.Stopwords)
	if err != nil {
		return nil, fmt.Errorf("%w: stopwords: %v", domain.ErrConfiguration, err)
	}
	return strings.Fields(string(data)), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sentrepr", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Strategy: representation.NameLexical,
		Lexical:  LexicalConfig{Stopwords: "english", NgramMin: 1, NgramMax: 1},
		WordVectors: WordVectorsConfig{
			MinTokens: representation.DefaultMinTokens,
			Smoothing: representation.DefaultSmoothing,
		},
		Summarizer: SummarizerConfig{MaxSentences: 5},
		Search:     SearchConfig{TopK: 10},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Strategy == "" {
		cfg.Strategy = representation.NameLexical
	}
	if cfg.Lexical.Stopwords == "" {
		cfg.Lexical.Stopwords = "english"
	}
	if cfg.Lexical.NgramMin == 0 && cfg.Lexical.NgramMax == 0 {
		cfg.Lexical.NgramMin, cfg.Lexical.NgramMax = 1, 1
	}
	if cfg.WordVectors.MinTokens == 0 {
		cfg.WordVectors.MinTokens = representation.DefaultMinTokens
	}
	if cfg.WordVectors.Smoothing == 0 {
		cfg.WordVectors.Smoothing = representation.DefaultSmoothing
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 10
	}
}
