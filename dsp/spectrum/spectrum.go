package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// InterpolateBins samples a one-sided spectrum at arbitrary frequencies by
// linear interpolation between neighbouring bins. binHz is the bin spacing.
// Frequencies below 0 or above the last bin clamp to the edge bins. A NaN
// frequency reads bin 0.
func InterpolateBins(dst, bins, freqs []float64, binHz float64) {
	n := min(len(dst), len(freqs))
	last := len(bins) - 1
	if last < 0 || binHz <= 0 {
		for i := range n {
			dst[i] = 0
		}
		return
	}

	for i := range n {
		pos := freqs[i] / binHz
		switch {
		case math.IsNaN(pos) || pos <= 0:
			dst[i] = bins[0]
		case pos >= float64(last):
			dst[i] = bins[last]
		default:
			base := int(pos)
			frac := pos - float64(base)
			dst[i] = bins[base] + frac*(bins[base+1]-bins[base])
		}
	}
}
