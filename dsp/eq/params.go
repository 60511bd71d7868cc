package eq

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/freeq/dsp/core"
)

// Parameter ranges shared by every band.
const (
	FreqMin = 20.0
	FreqMax = 20000.0
	GainMin = -18.0
	GainMax = 18.0
	QMin    = 0.1
	QMax    = 10.0
)

// BandParams is a plain value copy of one band's parameters.
type BandParams struct {
	Freq    float64
	GainDB  float64
	Q       float64
	Kind    Kind
	Enabled bool
}

// DefaultBandParams returns the defaults for band index of count bands.
// Frequencies are spread logarithmically over [FreqMin, FreqMax], the outer
// bands are wide shelves and the inner bands narrow peaks.
func DefaultBandParams(index, count int) BandParams {
	frac := (float64(index) + 0.5) / float64(count)
	p := BandParams{
		Freq:    core.LogInterp(frac, FreqMin, FreqMax),
		Q:       2.0,
		Kind:    KindPeak,
		Enabled: true,
	}

	switch index {
	case 0:
		p.Kind = KindLowShelf
		p.Q = 0.5
	case count - 1:
		p.Kind = KindHighShelf
		p.Q = 0.5
	}

	return p
}

// Band holds the live parameters of one equalizer band. Setters may run on
// any goroutine; the audio goroutine reads through Snapshot.
type Band struct {
	index, count int

	freq    atomic.Uint64
	gain    atomic.Uint64
	q       atomic.Uint64
	kind    atomic.Uint32
	enabled atomic.Bool
}

// NewBand returns band index of count with default parameters.
func NewBand(index, count int) *Band {
	b := &Band{index: index, count: count}
	b.Reset()
	return b
}

// Index returns the band's position in the cascade.
func (b *Band) Index() int { return b.index }

// Reset restores the defaults for the band's position.
func (b *Band) Reset() {
	b.Set(DefaultBandParams(b.index, b.count))
}

// Set stores all parameters, applying the same clamping as the individual setters.
func (b *Band) Set(p BandParams) {
	b.SetKind(p.Kind)
	b.SetFreq(p.Freq)
	b.SetQ(p.Q)
	b.SetGain(p.GainDB)
	b.SetEnabled(p.Enabled)
}

// Snapshot returns a value copy of the current parameters.
func (b *Band) Snapshot() BandParams {
	return BandParams{
		Freq:    b.Freq(),
		GainDB:  b.Gain(),
		Q:       b.Q(),
		Kind:    b.Kind(),
		Enabled: b.Enabled(),
	}
}

func (b *Band) Freq() float64 { return loadFloat(&b.freq) }
func (b *Band) Gain() float64 { return loadFloat(&b.gain) }
func (b *Band) Q() float64    { return loadFloat(&b.q) }
func (b *Band) Kind() Kind    { return Kind(b.kind.Load()) }
func (b *Band) Enabled() bool { return b.enabled.Load() }

// SetFreq clamps freq to [FreqMin, FreqMax]. NaN is ignored.
func (b *Band) SetFreq(freq float64) {
	if math.IsNaN(freq) {
		return
	}
	storeFloat(&b.freq, core.Clamp(freq, FreqMin, FreqMax))
}

// SetGain clamps gainDB to [GainMin, GainMax]. Gain stays 0 for kinds that
// ignore it, also when a concurrent SetKind lands between the check and the
// store. NaN is ignored.
func (b *Band) SetGain(gainDB float64) {
	if math.IsNaN(gainDB) {
		return
	}
	if !b.Kind().UsesGain() {
		gainDB = 0
	}
	storeFloat(&b.gain, core.Clamp(gainDB, GainMin, GainMax))

	if gainDB != 0 && !b.Kind().UsesGain() {
		storeFloat(&b.gain, 0)
	}
}

// SetQ clamps q to [QMin, QMax]. NaN is ignored.
func (b *Band) SetQ(q float64) {
	if math.IsNaN(q) {
		return
	}
	storeFloat(&b.q, core.Clamp(q, QMin, QMax))
}

// SetKind stores k, resolving invalid kinds to KindPeak. Switching to a kind
// that ignores gain resets gain to 0.
func (b *Band) SetKind(k Kind) {
	if !k.Valid() {
		k = KindPeak
	}
	b.kind.Store(uint32(k))
	if !k.UsesGain() {
		storeFloat(&b.gain, 0)
	}
}

func (b *Band) SetEnabled(enabled bool) { b.enabled.Store(enabled) }

func loadFloat(v *atomic.Uint64) float64 {
	return math.Float64frombits(v.Load())
}

func storeFloat(v *atomic.Uint64, f float64) {
	v.Store(math.Float64bits(f))
}
