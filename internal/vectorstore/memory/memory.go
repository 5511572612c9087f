package memory

import (
	"errors"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"

	"sentrepr/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	norms     []float64
	records   []domain.SentenceRecord
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.norms = nil
	s.records = nil
	return nil
}

func (s *Storage) Upsert(records []domain.SentenceRecord, vectors [][]float64) error {
	if len(records) != len(vectors) {
		return errors.New("records and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, v := range vectors {
		s.records = append(s.records, records[i])
		s.vectors = append(s.vectors, v)
		s.norms = append(s.norms, floats.Norm(v, 2))
	}
	return nil
}

// Search returns the topK most similar records. Zero vectors score 0.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, errors.New("vector dimension mismatch")
	}
	if topK <= 0 {
		topK = 5
	}
	qnorm := floats.Norm(vector, 2)
	results := make([]domain.SearchResult, len(s.vectors))
	for i := range s.vectors {
		score := 0.0
		if qnorm > 0 && s.norms[i] > 0 {
			score = floats.Dot(s.vectors[i], vector) / (qnorm * s.norms[i])
		}
		results[i] = domain.SearchResult{Record: s.records[i], Score: score}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.norms = nil
	s.records = nil
	return nil
}

// Len returns the number of stored vectors.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}
