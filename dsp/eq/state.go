package eq

import (
	"math"

	"github.com/cwbudde/freeq/dsp/filter/biquad"
	"github.com/cwbudde/freeq/dsp/filter/design"
)

// maxDesignRatio caps the design frequency relative to the sample rate so
// that the 20 kHz upper band limit stays below Nyquist at 40 kHz and lower.
const maxDesignRatio = 0.49

// Design returns normalized biquad coefficients for one band.
func Design(kind Kind, freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	freq = math.Min(freq, maxDesignRatio*sampleRate)

	switch kind {
	case KindLowPass:
		return design.LowpassFirstOrder(freq, sampleRate)
	case KindLowPass2:
		return design.Lowpass(freq, q, sampleRate)
	case KindLowShelf:
		return design.LowShelf(freq, gainDB, q, sampleRate)
	case KindHighPass:
		return design.HighpassFirstOrder(freq, sampleRate)
	case KindHighPass2:
		return design.Highpass(freq, q, sampleRate)
	case KindHighShelf:
		return design.HighShelf(freq, gainDB, q, sampleRate)
	case KindNotch:
		return design.Notch(freq, q, sampleRate)
	default:
		return design.Peak(freq, gainDB, q, sampleRate)
	}
}

// FilterState is the runtime filter of one band on one channel.
type FilterState struct {
	section biquad.Section
}

// NewFilterState returns a state with passthrough coefficients.
func NewFilterState() FilterState {
	return FilterState{section: biquad.Section{Coefficients: biquad.Passthrough()}}
}

// SetParams redesigns the coefficients. The delay memory is kept.
func (s *FilterState) SetParams(p BandParams, sampleRate float64) {
	s.section.SetCoefficients(Design(p.Kind, p.Freq, p.GainDB, p.Q, sampleRate))
}

// Process runs one sample through the Direct Form I recurrence.
func (s *FilterState) Process(x float64) float64 {
	return s.section.ProcessSample(x)
}

// GainAt returns the response in dB at freq for the current coefficients.
func (s *FilterState) GainAt(freq, sampleRate float64) float64 {
	return s.section.MagnitudeDB(freq, sampleRate)
}

// Coefficients returns the current normalized coefficients.
func (s *FilterState) Coefficients() biquad.Coefficients {
	return s.section.Coefficients
}

// Memory returns the delay state {Z1, Z2, Y1, Y2}.
func (s *FilterState) Memory() biquad.State {
	return s.section.State()
}

// Reset clears the delay state.
func (s *FilterState) Reset() {
	s.section.Reset()
}
