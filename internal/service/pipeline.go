package service

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sentrepr/internal/domain"
	"sentrepr/internal/logger"
	"sentrepr/internal/representation"
	"sentrepr/internal/vectorstore"
)

// Report describes one pipeline run.
type Report struct {
	RunID     string
	Strategy  string
	Total     int
	Kept      int
	Dimension int
	Dropped   []int
	// Summary holds original indices of the summary sentences, in input order.
	Summary []int
}

// Pipeline represents sentences with one strategy, keeps the kept rows in a
// vector store and summarizes them.
type Pipeline struct {
	strategy            string
	resources           representation.Resources
	store               vectorstore.Storage
	summarizer          domain.Summarizer
	summaryMaxSentences int
	sentences           []domain.Sentence
	rep                 domain.Representation
}

func NewPipeline(strategy string, resources representation.Resources, store vectorstore.Storage, summarizer domain.Summarizer, summaryMaxSentences int) *Pipeline {
	return &Pipeline{
		strategy:            strategy,
		resources:           resources,
		store:               store,
		summarizer:          summarizer,
		summaryMaxSentences: summaryMaxSentences,
	}
}

// IngestDocuments reads every file (globs allowed), one sentence per
// non-blank line, and runs the pipeline over all of them in order.
func (p *Pipeline) IngestDocuments(paths []string) (Report, error) {
	var sentences []domain.Sentence
	for _, path := range paths {
		matches, _ := filepath.Glob(path)
		if matches == nil {
			matches = []string{path}
		}
		for _, m := range matches {
			read, err := readSentences(m)
			if err != nil {
				return Report{}, err
			}
			sentences = append(sentences, read...)
		}
	}
	if len(sentences) == 0 {
		return Report{}, fmt.Errorf("%w: no sentences found", domain.ErrEmptyInput)
	}
	return p.Run(sentences)
}

// Run represents sentences and replaces the stored vectors with the result.
func (p *Pipeline) Run(sentences []domain.Sentence) (Report, error) {
	runID := uuid.NewString()
	logger.Section("run " + runID)
	res := p.resources
	if representation.NeedsWeights(p.strategy) && res.Weights == nil {
		lexical, err := representation.Lexical(texts(sentences), res.Lexical)
		if err != nil {
			return Report{}, fmt.Errorf("weight table: %w", err)
		}
		res.Weights = lexical.Weights
		logger.Debug("weight table with %d terms", len(res.Weights))
	}
	strategy, err := representation.New(p.strategy, res)
	if err != nil {
		return Report{}, err
	}
	rep, err := strategy.Represent(sentences)
	if err != nil {
		return Report{}, err
	}

	// Init empties the store, so the previous run is gone from here on.
	p.sentences, p.rep = nil, domain.Representation{}
	if err := p.store.Init(rep.Dimension()); err != nil {
		return Report{}, err
	}
	records := make([]domain.SentenceRecord, len(rep.Indices))
	for i, idx := range rep.Indices {
		records[i] = domain.SentenceRecord{Index: idx, Text: sentences[idx].Text}
	}
	if err := p.store.Upsert(records, rep.Matrix); err != nil {
		_ = p.store.Clear()
		return Report{}, err
	}
	summary, err := p.summarizer.Summarize(rep, p.summaryMaxSentences)
	if err != nil {
		_ = p.store.Clear()
		return Report{}, err
	}

	p.sentences = sentences
	p.rep = rep
	report := Report{
		RunID:     runID,
		Strategy:  rep.Strategy,
		Total:     len(sentences),
		Kept:      rep.Len(),
		Dimension: rep.Dimension(),
		Dropped:   rep.Dropped(len(sentences)),
		Summary:   summary,
	}
	logger.Info("%s: kept %d of %d sentences, dimension %d", report.Strategy, report.Kept, report.Total, report.Dimension)
	if len(report.Dropped) > 0 {
		logger.Warn("dropped sentences %v", report.Dropped)
	}
	return report, nil
}

// Representation returns the result of the last run.
func (p *Pipeline) Representation() domain.Representation { return p.rep }

// Sentences returns the input of the last run.
func (p *Pipeline) Sentences() []domain.Sentence { return p.sentences }

// Similar returns up to topK kept sentences closest to the sentence at the
// given original index, excluding itself.
func (p *Pipeline) Similar(original, topK int) ([]domain.SearchResult, error) {
	vec, ok := p.rep.Row(original)
	if !ok {
		return nil, fmt.Errorf("sentence %d has no vector", original)
	}
	res, err := p.store.Search(vec, topK+1)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, 0, topK)
	for _, r := range res {
		if r.Record.Index == original || len(out) == topK {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Find resolves a query to a kept sentence: either its original index or
// the first kept sentence containing the query text.
func (p *Pipeline) Find(query string) (int, error) {
	query = strings.TrimSpace(query)
	if n, err := strconv.Atoi(query); err == nil {
		if _, ok := p.rep.Row(n); ok {
			return n, nil
		}
		return 0, fmt.Errorf("sentence %d was dropped or does not exist", n)
	}
	q := strings.ToLower(query)
	for _, idx := range p.rep.Indices {
		if strings.Contains(strings.ToLower(p.sentences[idx].Text), q) {
			return idx, nil
		}
	}
	return 0, errors.New("no kept sentence matches")
}

// ParseSentence turns a line into a sentence. Tokens may carry their
// normalized form as "word|stem"; otherwise the word is lowercased and
// stripped of punctuation. Words left with no stem stay in the text but get
// no token.
func ParseSentence(line string) domain.Sentence {
	fields := strings.Fields(line)
	tokens := make([]domain.TaggedToken, 0, len(fields))
	words := make([]string, len(fields))
	for i, f := range fields {
		word, stem, ok := strings.Cut(f, "|")
		if !ok || stem == "" {
			stem = representation.NormalizeToken(word)
		}
		words[i] = word
		if stem == "" {
			continue
		}
		tokens = append(tokens, domain.TaggedToken{Word: word, Stem: stem})
	}
	return domain.Sentence{Text: strings.Join(words, " "), Tokens: tokens}
}

func readSentences(path string) ([]domain.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []domain.Sentence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, ParseSentence(line))
	}
	return out, sc.Err()
}

func texts(sentences []domain.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
