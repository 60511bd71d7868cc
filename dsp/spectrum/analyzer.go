package spectrum

import (
	"fmt"
	"math"
	"sync/atomic"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/freeq/dsp/window"
)

const (
	// DefaultSize is the analysis window length used by the equalizer.
	DefaultSize = 4096

	// MagnitudeFloor keeps every published bin strictly positive so that a
	// renderer can take its logarithm.
	MagnitudeFloor = 1e-6

	// smoothingKeep is the weight of the previous smoothed value per frame.
	smoothingKeep = 0.6
)

// Analyzer is a 50%-overlap short-time spectrum analyzer.
//
// Push and PushBlock must be called from a single goroutine. Snapshot,
// CurveAt, SampleRate and Frames may be called from any goroutine.
type Analyzer struct {
	size int
	half int

	windowA []float64
	windowB []float64
	cursor  int

	hann []float64
	plan *algofft.PlanRealT[float64, complex128]

	fftOut []complex128
	re     []float64
	im     []float64
	mag    []float64

	spectrum []float64
	norm     float64

	dc DCBlocker

	sampleRate atomic.Uint64
	frames     atomic.Uint64
	pub        published
}

// NewAnalyzer allocates an analyzer with windows of size samples.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < 4 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	hann, err := window.Hann(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum init window: %w", err)
	}

	plan, err := algofft.NewPlanReal64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	bins := size/2 + 1
	a := &Analyzer{
		size:     size,
		half:     size / 2,
		windowA:  make([]float64, size),
		windowB:  make([]float64, size),
		hann:     hann,
		plan:     plan,
		fftOut:   make([]complex128, bins),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		mag:      make([]float64, bins),
		spectrum: make([]float64, bins),
		norm:     math.Pow(2, 2/float64(size)),
		pub:      newPublished(bins),
	}
	a.resetSpectrum()

	return a, nil
}

// Size returns the analysis window length N.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of one-sided spectrum bins, N/2+1.
func (a *Analyzer) Bins() int { return len(a.spectrum) }

// Cursor returns the write position inside window A.
func (a *Analyzer) Cursor() int { return a.cursor }

// Frames returns how many analysis frames have been computed.
func (a *Analyzer) Frames() uint64 { return a.frames.Load() }

// SetSampleRate records the rate used to map bins to frequencies.
func (a *Analyzer) SetSampleRate(sampleRate float64) {
	a.sampleRate.Store(math.Float64bits(sampleRate))
}

// SampleRate returns the last rate passed to SetSampleRate.
func (a *Analyzer) SampleRate() float64 {
	return math.Float64frombits(a.sampleRate.Load())
}

// BinFrequency returns the center frequency of bin i, i*sampleRate/N.
func (a *Analyzer) BinFrequency(i int) float64 {
	return float64(i) * a.SampleRate() / float64(a.size)
}

// Push feeds one sample through the DC blocker into both analysis windows.
// When a window completes it is transformed and folded into the spectrum.
func (a *Analyzer) Push(x float64) {
	y := a.dc.Process(x)

	a.windowA[a.cursor] = y
	a.windowB[(a.cursor+a.half)&(a.size-1)] = y

	a.cursor++
	if a.cursor == a.size {
		a.cursor = 0
	}

	switch a.cursor {
	case 0:
		a.computeFFT(a.windowA)
	case a.half:
		a.computeFFT(a.windowB)
	}
}

// PushBlock feeds every sample of buf. Zero-alloc.
func (a *Analyzer) PushBlock(buf []float64) {
	for _, x := range buf {
		a.Push(x)
	}
}

// Snapshot copies the most recently published spectrum into dst, up to
// Bins() values. It returns false when the writer kept publishing during
// every retry, in which case dst may mix two adjacent frames.
func (a *Analyzer) Snapshot(dst []float64) bool {
	return a.pub.load(dst)
}

// CurveAt samples the published spectrum at freqs into dst and reports
// whether the underlying snapshot was consistent.
func (a *Analyzer) CurveAt(freqs, dst []float64) bool {
	bins := make([]float64, a.Bins())
	ok := a.Snapshot(bins)
	InterpolateBins(dst, bins, freqs, a.SampleRate()/float64(a.size))

	return ok
}

// Reset clears windows, cursor, DC filter memory and the smoothed spectrum.
func (a *Analyzer) Reset() {
	clear(a.windowA)
	clear(a.windowB)
	a.cursor = 0
	a.dc.Reset()
	a.resetSpectrum()
}

func (a *Analyzer) resetSpectrum() {
	for i := range a.spectrum {
		a.spectrum[i] = MagnitudeFloor
	}
	a.pub.store(a.spectrum)
}

// computeFFT windows win in place, transforms it and smooths the bin
// magnitudes into the persistent spectrum. The window is fully rewritten
// before it completes again, so tapering it in place is safe. Zero-alloc.
func (a *Analyzer) computeFFT(win []float64) {
	if len(win) != a.size || len(a.fftOut) != len(a.spectrum) {
		panic("spectrum: analysis buffer size mismatch")
	}

	if err := window.ApplyCoefficientsInPlace(win, a.hann); err != nil {
		panic("spectrum: " + err.Error())
	}

	if err := a.plan.Forward(a.fftOut, win); err != nil {
		panic("spectrum: forward fft: " + err.Error())
	}

	for k := range a.re {
		a.re[k] = real(a.fftOut[k])
		a.im[k] = imag(a.fftOut[k])
	}

	MagnitudeFromParts(a.mag, a.re, a.im)

	for k, m := range a.mag {
		m /= a.norm
		if m < MagnitudeFloor {
			m = MagnitudeFloor
		}
		a.spectrum[k] = smoothingKeep*a.spectrum[k] + (1-smoothingKeep)*m
	}

	a.pub.store(a.spectrum)
	a.frames.Add(1)
}
