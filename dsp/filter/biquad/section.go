package biquad

import "github.com/cwbudde/freeq/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough returns unity coefficients (B0 = 1).
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// State is the Direct Form I memory of a section: the two previous inputs
// (Z1, Z2) and the two previous outputs (Y1, Y2).
type State struct {
	Z1, Z2 float64
	Y1, Y2 float64
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form I processing.
type Section struct {
	Coefficients

	mem State
}

// ProcessSample filters one input sample and returns the output.
//
//	y = B0*x + B1*z1 + B2*z2 - A1*y1 - A2*y2
//
// Outputs below 1e-30 are flushed to zero so the feedback path does not
// decay into denormals after the input falls silent.
func (s *Section) ProcessSample(x float64) float64 {
	m := &s.mem
	y := core.FlushDenormals(s.B0*x + s.B1*m.Z1 + s.B2*m.Z2 - s.A1*m.Y1 - s.A2*m.Y2)

	m.Z2 = m.Z1
	m.Z1 = x
	m.Y2 = m.Y1
	m.Y1 = y

	return y
}

// SetCoefficients replaces the coefficients and keeps the delay-line state,
// so a parameter change continues from the current filter memory.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.mem = State{}
}

// State returns the current delay-line state.
func (s *Section) State() State {
	return s.mem
}
