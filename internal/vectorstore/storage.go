package vectorstore

import "sentrepr/internal/domain"

// Storage keeps sentence vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(records []domain.SentenceRecord, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
