// Package window generates the Hann taper used for short-time spectral analysis.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Hann returns the symmetric Hann window, w[i] = 0.5*(1 - cos(2*pi*i/(N-1))).
// Both ends are zero. A single-point window is [1].
func Hann(size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	den := float64(size - 1)
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/den))
	}

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place. Zero-alloc.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
