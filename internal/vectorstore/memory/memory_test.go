package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrepr/internal/domain"
	"sentrepr/internal/vectorstore"
)

var _ vectorstore.Storage = (*Storage)(nil)

func records(indices ...int) []domain.SentenceRecord {
	out := make([]domain.SentenceRecord, len(indices))
	for i, idx := range indices {
		out[i] = domain.SentenceRecord{Index: idx}
	}
	return out
}

func TestStorage_Search(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(records(0, 3, 7), [][]float64{{1, 0}, {0, 5}, {1, 1}}))

	res, err := s.Search([]float64{2, 0}, 2)
	require.NoError(t, err)

	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Record.Index)
	assert.InDelta(t, 1.0, res[0].Score, 1e-12)
	assert.Equal(t, 7, res[1].Record.Index)
}

func TestStorage_ZeroQuery(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(records(0, 1), [][]float64{{1, 0}, {0, 0}}))

	res, err := s.Search([]float64{0, 0}, 0)
	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, r := range res {
		assert.Zero(t, r.Score)
	}
}

func TestStorage_Errors(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	require.NoError(t, s.Init(2))

	assert.Error(t, s.Upsert(records(0), nil))
	assert.Error(t, s.Upsert(records(0), [][]float64{{1}}))
	_, err := s.Search([]float64{1}, 1)
	assert.Error(t, err)
}

func TestStorage_Clear(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert(records(0), [][]float64{{1}}))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
}
