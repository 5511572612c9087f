package domain

import "sort"

// Representation is the output of every strategy: one matrix row per kept
// sentence, in the same order as Indices.
type Representation struct {
	Strategy string
	// Indices maps each row back to its position in the original input.
	Indices []int
	Matrix  [][]float64
	// Weights is the term -> inverse document weight table. Only the lexical
	// strategy fills it.
	Weights map[string]float64
}

// Len returns the number of kept sentences.
func (r Representation) Len() int { return len(r.Indices) }

// Dimension returns the width of the matrix, or 0 when it has no rows.
func (r Representation) Dimension() int {
	if len(r.Matrix) == 0 {
		return 0
	}
	return len(r.Matrix[0])
}

// Row returns the vector of the sentence at the given original index.
func (r Representation) Row(original int) ([]float64, bool) {
	pos := sort.SearchInts(r.Indices, original)
	if pos < len(r.Indices) && r.Indices[pos] == original {
		return r.Matrix[pos], true
	}
	return nil, false
}

// Dropped lists the original indices in [0, total) that have no row.
func (r Representation) Dropped(total int) []int {
	var out []int
	next := 0
	for i := 0; i < total; i++ {
		if next < len(r.Indices) && r.Indices[next] == i {
			next++
			continue
		}
		out = append(out, i)
	}
	return out
}
