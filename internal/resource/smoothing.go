package resource

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"sentrepr/internal/domain"
)

// Frequencies maps terms to their relative frequency.
type Frequencies map[string]float64

// Frequency returns the relative frequency of term.
func (f Frequencies) Frequency(term string) (float64, bool) {
	v, ok := f[term]
	return v, ok
}

// LoadFrequencies reads "term count" lines and divides every count by the
// total, so raw counts and probabilities are both accepted.
func LoadFrequencies(r io.Reader) (Frequencies, error) {
	sc := bufio.NewScanner(r)
	counts := make(map[string]float64)
	total := 0.0
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"term count\"", domain.ErrConfiguration, line)
		}
		c, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || c < 0 {
			return nil, fmt.Errorf("%w: line %d: bad count %q", domain.ErrConfiguration, line, fields[1])
		}
		counts[fields[0]] += c
		total += c
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: frequency table is empty", domain.ErrConfiguration)
	}
	for term, c := range counts {
		counts[term] = c / total
	}
	return Frequencies(counts), nil
}

// LoadDirection reads a single whitespace-separated vector and scales it to
// unit length.
func LoadDirection(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	vec, err := parseFloats(strings.Fields(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: dominant direction: %v", domain.ErrConfiguration, err)
	}
	norm := floats.Norm(vec, 2)
	if norm == 0 {
		return nil, fmt.Errorf("%w: dominant direction is empty or zero", domain.ErrConfiguration)
	}
	floats.Scale(1/norm, vec)
	return vec, nil
}

// SmoothingModel bundles word vectors, their frequencies and the dominant
// direction removed from sentence vectors.
type SmoothingModel struct {
	*Vectors
	Frequencies
	direction []float64
}

// NewSmoothingModel checks that the direction matches the vectors' width.
// Vocabulary terms without a frequency are reported when a sentence uses
// them, not here.
func NewSmoothingModel(vectors *Vectors, freq Frequencies, direction []float64) (*SmoothingModel, error) {
	if vectors == nil {
		return nil, fmt.Errorf("%w: no word vectors", domain.ErrConfiguration)
	}
	if freq == nil {
		return nil, fmt.Errorf("%w: no frequency table", domain.ErrConfiguration)
	}
	if len(direction) != vectors.Dimension() {
		return nil, fmt.Errorf("%w: dominant direction has %d components, want %d",
			domain.ErrConfiguration, len(direction), vectors.Dimension())
	}
	return &SmoothingModel{Vectors: vectors, Frequencies: freq, direction: direction}, nil
}

// DominantDirection returns the unit direction. The slice must not be modified.
func (m *SmoothingModel) DominantDirection() []float64 { return m.direction }
