package spectrum

import "github.com/cwbudde/freeq/dsp/core"

// dcBlockPole sets the corner of the DC-removal filter, about 7 Hz at 44.1 kHz.
const dcBlockPole = 0.999

// DCBlocker is a one-pole DC-removal filter:
//
//	y[n] = 0.999 * (y[n-1] + x[n] - x[n-1])
type DCBlocker struct {
	x1, y1 float64
}

// Process filters one sample. Outputs below 1e-30 are flushed to zero.
func (d *DCBlocker) Process(x float64) float64 {
	y := core.FlushDenormals(dcBlockPole * (d.y1 + x - d.x1))
	d.x1 = x
	d.y1 = y

	return y
}

// State returns the previous input and previous output.
func (d *DCBlocker) State() (x1, y1 float64) {
	return d.x1, d.y1
}

// Reset clears the filter memory.
func (d *DCBlocker) Reset() {
	d.x1, d.y1 = 0, 0
}
