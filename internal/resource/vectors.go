// Package resource reads pretrained resources from disk into the read-only
// collaborators consumed by the representation strategies.
package resource

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sentrepr/internal/domain"
)

// maxLineBytes bounds a single line of a vector file.
const maxLineBytes = 16 << 20

// Vectors is an in-memory word-vector table.
type Vectors struct {
	dim     int
	vectors map[string][]float64
}

// NewVectors builds a table from a term -> vector map. All vectors must
// have the same, non-zero width.
func NewVectors(vectors map[string][]float64) (*Vectors, error) {
	dim := -1
	for term, vec := range vectors {
		if dim == -1 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector of %q has %d components, want %d", domain.ErrDataConsistency, term, len(vec), dim)
		}
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: no word vectors", domain.ErrConfiguration)
	}
	return &Vectors{dim: dim, vectors: vectors}, nil
}

// Contains reports whether term has a vector.
func (v *Vectors) Contains(term string) bool {
	_, ok := v.vectors[term]
	return ok
}

// Vector returns the vector of term, or nil. The slice must not be modified.
func (v *Vectors) Vector(term string) []float64 { return v.vectors[term] }

// Dimension returns the width of every vector.
func (v *Vectors) Dimension() int { return v.dim }

// Len returns the vocabulary size.
func (v *Vectors) Len() int { return len(v.vectors) }

// LoadWordVectors reads the word2vec/GloVe text format: one "term v1 v2 ..."
// entry per line, optionally preceded by a "count dimension" header.
func LoadWordVectors(r io.Reader) (*Vectors, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	vectors := make(map[string][]float64)
	dim := -1
	line := 0
	// header holds a "count dimension" first line until the next entry
	// confirms its width.
	var header []string
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && isHeader(fields) {
			header = fields
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: term without vector", domain.ErrConfiguration, line)
		}
		vec, err := parseFloats(fields[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrConfiguration, line, err)
		}
		if header != nil {
			if want, _ := strconv.Atoi(header[1]); want == len(vec) {
				dim = want
			} else {
				// a one-dimensional entry whose term is a number
				first, _ := parseFloats(header[1:])
				vectors[header[0]] = first
				dim = len(first)
			}
			header = nil
		}
		if dim == -1 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: line %d: %d components, want %d", domain.ErrDataConsistency, line, len(vec), dim)
		}
		vectors[fields[0]] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewVectors(vectors)
}

func isHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	_, errCount := strconv.Atoi(fields[0])
	_, errDim := strconv.Atoi(fields[1])
	return errCount == nil && errDim == nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
