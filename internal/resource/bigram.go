package resource

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gonum.org/v1/gonum/mat"

	"sentrepr/internal/domain"
)

// bigramModelSchema describes the bigram model file:
//
//	{"bigrams": [{"first": "a", "second": "b", "weight": 1.5}, ...],
//	 "components": [[...], ...]}
//
// components holds one row per output dimension, each as wide as bigrams.
var bigramModelSchema = map[string]any{
	"type":     "object",
	"required": []string{"bigrams", "components"},
	"properties": map[string]any{
		"bigrams": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"first", "second", "weight"},
				"properties": map[string]any{
					"first":  map[string]any{"type": "string"},
					"second": map[string]any{"type": "string"},
					"weight": map[string]any{"type": "number"},
				},
			},
		},
		"components": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "number"},
			},
		},
	},
}

type bigramModelFile struct {
	Bigrams []struct {
		First  string  `json:"first"`
		Second string  `json:"second"`
		Weight float64 `json:"weight"`
	} `json:"bigrams"`
	Components [][]float64 `json:"components"`
}

// LoadBigramModel reads the bigram vocabulary and its pre-fitted projection.
func LoadBigramModel(r io.Reader) ([]domain.BigramEntry, *Projection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(bigramModelSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bigram model: %v", domain.ErrConfiguration, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, nil, fmt.Errorf("%w: bigram model: %s", domain.ErrConfiguration, strings.Join(errs, ", "))
	}

	var file bigramModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("%w: bigram model: %v", domain.ErrConfiguration, err)
	}
	vocab := make([]domain.BigramEntry, len(file.Bigrams))
	for i, b := range file.Bigrams {
		vocab[i] = domain.BigramEntry{Bigram: domain.Bigram{b.First, b.Second}, Weight: b.Weight}
	}
	proj, err := NewProjection(file.Components)
	if err != nil {
		return nil, nil, err
	}
	if proj.InputDimension() != len(vocab) {
		return nil, nil, fmt.Errorf("%w: bigram model: components are %d wide for %d bigrams",
			domain.ErrConfiguration, proj.InputDimension(), len(vocab))
	}
	return vocab, proj, nil
}

// Projection is a fixed linear map X -> X·Cᵀ, the transform of a fitted
// truncated SVD whose components are the rows of C.
type Projection struct {
	components *mat.Dense
}

// NewProjection builds a projection from its component rows.
func NewProjection(components [][]float64) (*Projection, error) {
	if len(components) == 0 || len(components[0]) == 0 {
		return nil, fmt.Errorf("%w: projection has no components", domain.ErrConfiguration)
	}
	width := len(components[0])
	flat := make([]float64, 0, len(components)*width)
	for i, row := range components {
		if len(row) != width {
			return nil, fmt.Errorf("%w: component %d has %d values, want %d", domain.ErrConfiguration, i, len(row), width)
		}
		flat = append(flat, row...)
	}
	return &Projection{components: mat.NewDense(len(components), width, flat)}, nil
}

// Dimension returns the output width.
func (p *Projection) Dimension() int {
	r, _ := p.components.Dims()
	return r
}

// InputDimension returns the expected input width.
func (p *Projection) InputDimension() int {
	_, c := p.components.Dims()
	return c
}

// Transform projects every row of batch.
func (p *Projection) Transform(batch [][]float64) ([][]float64, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	in := p.InputDimension()
	flat := make([]float64, 0, len(batch)*in)
	for i, row := range batch {
		if len(row) != in {
			return nil, fmt.Errorf("%w: row %d has %d values, projection expects %d", domain.ErrDataConsistency, i, len(row), in)
		}
		flat = append(flat, row...)
	}
	x := mat.NewDense(len(batch), in, flat)
	var out mat.Dense
	out.Mul(x, p.components.T())

	rows := make([][]float64, len(batch))
	for i := range rows {
		rows[i] = mat.Row(nil, i, &out)
	}
	return rows, nil
}
