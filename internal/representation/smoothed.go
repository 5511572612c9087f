package representation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"sentrepr/internal/domain"
)

// DefaultSmoothing is the smoothing constant a of the a/(a+p(w)) weight.
const DefaultSmoothing = 1e-3

// unitTolerance bounds how far the dominant direction's norm may be from 1.
const unitTolerance = 1e-6

// Smoothed weights each in-vocabulary token vector by a/(a+p(w)), averages
// them per sentence and removes the projection of every row onto the
// resource's dominant direction. Sentences without in-vocabulary tokens are
// dropped.
func Smoothed(sentences []string, res domain.SmoothingResource, a float64) (domain.Representation, error) {
	n := len(sentences)
	if res == nil {
		return domain.Representation{}, domain.Failf(NameSmoothed, n, domain.ErrConfiguration, "no smoothing resource")
	}
	if !(a > 0) {
		return domain.Representation{}, domain.Failf(NameSmoothed, n, domain.ErrConfiguration, "smoothing constant must be positive, got %g", a)
	}
	dim := res.Dimension()
	direction := res.DominantDirection()
	if len(direction) == 0 {
		return domain.Representation{}, domain.Failf(NameSmoothed, n, domain.ErrConfiguration, "resource has no dominant direction")
	}
	if len(direction) != dim {
		return domain.Representation{}, domain.Failf(NameSmoothed, n, domain.ErrConfiguration,
			"dominant direction has %d components, want %d", len(direction), dim)
	}
	if norm := floats.Norm(direction, 2); math.Abs(norm-1) > unitTolerance {
		return domain.Representation{}, domain.Failf(NameSmoothed, n, domain.ErrConfiguration,
			"dominant direction is not a unit vector (norm %g)", norm)
	}

	rep, err := aggregate(NameSmoothed, sentences, dim, 1, true, func(token string) ([]float64, float64, bool, error) {
		if !res.Contains(token) {
			return nil, 0, false, nil
		}
		freq, ok := res.Frequency(token)
		if !ok || !(freq > 0) {
			return nil, 0, false, fmt.Errorf("%w: vocabulary term %q has no positive frequency", domain.ErrDataConsistency, token)
		}
		return res.Vector(token), a / (a + freq), true, nil
	})
	if err != nil {
		return domain.Representation{}, err
	}
	for _, row := range rep.Matrix {
		RemoveComponent(row, direction)
	}
	return rep, nil
}

// RemoveComponent subtracts the projection of row onto the unit vector
// direction, in place.
func RemoveComponent(row, direction []float64) {
	floats.AddScaled(row, -floats.Dot(row, direction), direction)
}
