package eq

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/freeq/dsp/core"
	"github.com/cwbudde/freeq/dsp/spectrum"
)

// displaySampleRate is used by the visualization helpers before Activate.
const displaySampleRate = 48000.0

// Layout describes the channel configuration negotiated at activation.
type Layout struct {
	Channels     int
	MaxBlockSize int
}

// Option configures a Processor.
type Option func(*options)

type options struct {
	log          logrus.FieldLogger
	analyzerSize int
}

// WithLogger sets the logger used for diagnostics. Nothing is logged from Process.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithAnalyzerSize overrides the spectrum window length.
func WithAnalyzerSize(n int) Option {
	return func(o *options) {
		o.analyzerSize = n
	}
}

// Processor is the equalizer engine. Activate and Process belong to the audio
// goroutine. Band setters, parameter access and the visualization helpers may
// be used concurrently from other goroutines.
type Processor struct {
	log logrus.FieldLogger

	bands    [BandCount]*Band
	params   [BandCount]BandParams
	bank     *Bank
	analyzer *spectrum.Analyzer

	sampleRate atomic.Uint64
	active     atomic.Bool
	layout     Layout
}

// NewProcessor returns a processor with default bands. It must be activated
// before Process.
func NewProcessor(opts ...Option) (*Processor, error) {
	o := options{
		log:          logrus.StandardLogger(),
		analyzerSize: spectrum.DefaultSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	analyzer, err := spectrum.NewAnalyzer(o.analyzerSize)
	if err != nil {
		return nil, fmt.Errorf("eq: %w", err)
	}

	p := &Processor{
		log:      o.log,
		bank:     NewBank(),
		analyzer: analyzer,
	}
	for i := range p.bands {
		p.bands[i] = NewBand(i, BandCount)
	}

	return p, nil
}

// Activate prepares the processor for a sample rate and channel layout.
// Filter memory is preserved across activations.
func (p *Processor) Activate(sampleRate float64, layout Layout) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if layout.Channels < 1 || layout.Channels > ChannelCount {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, layout.Channels)
	}
	if layout.MaxBlockSize < 0 {
		return fmt.Errorf("%w: max block size %d", ErrUnsupportedLayout, layout.MaxBlockSize)
	}

	p.layout = layout
	p.sampleRate.Store(math.Float64bits(sampleRate))
	p.analyzer.SetSampleRate(sampleRate)
	p.active.Store(true)

	p.log.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"channels":    layout.Channels,
		"max_block":   layout.MaxBlockSize,
	}).Debug("equalizer activated")

	return nil
}

// Process filters block in place. block holds one slice per channel, all of
// equal length. The channel mean of the filtered output feeds the analyzer.
// Zero-alloc.
func (p *Processor) Process(block [][]float64) error {
	if !p.active.Load() {
		return ErrNotActivated
	}
	if len(block) != p.layout.Channels {
		return ErrChannelMismatch
	}

	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != n {
			return ErrBlockLength
		}
	}
	if p.layout.MaxBlockSize > 0 && n > p.layout.MaxBlockSize {
		return ErrBlockLength
	}

	for i, b := range p.bands {
		p.params[i] = b.Snapshot()
	}
	p.bank.Update(&p.params, p.SampleRate())

	for i := range n {
		for ch, buf := range block {
			buf[i] = p.bank.ProcessSample(ch, buf[i])
		}
		p.analyzer.Push(core.ChannelMean(block, i))
	}

	return nil
}

// SampleRate returns the activated sample rate, or 0 before Activate.
func (p *Processor) SampleRate() float64 {
	return math.Float64frombits(p.sampleRate.Load())
}

// Active reports whether Activate has succeeded.
func (p *Processor) Active() bool { return p.active.Load() }

// Bands returns the number of bands.
func (p *Processor) Bands() int { return BandCount }

// Band returns band i, or nil when i is out of range.
func (p *Processor) Band(i int) *Band {
	if i < 0 || i >= BandCount {
		return nil
	}
	return p.bands[i]
}

// Bank exposes the filter cascade for inspection.
func (p *Processor) Bank() *Bank { return p.bank }

// GainAt returns band's response in dB at freq. It designs fresh coefficients
// from the band's current parameters and never reads filter memory.
func (p *Processor) GainAt(band int, freq float64) float64 {
	b := p.Band(band)
	if b == nil {
		return 0
	}

	params := b.Snapshot()
	coeffs := Design(params.Kind, params.Freq, params.GainDB, params.Q, p.displayRate())
	return coeffs.MagnitudeDB(freq, p.displayRate())
}

// ResponseDB returns the summed response of all enabled bands at freq.
func (p *Processor) ResponseDB(freq float64) float64 {
	sum := 0.0
	for i, b := range p.bands {
		if b.Enabled() {
			sum += p.GainAt(i, freq)
		}
	}
	return sum
}

// Spectrum copies the smoothed analyzer magnitudes into dst.
func (p *Processor) Spectrum(dst []float64) bool {
	return p.analyzer.Snapshot(dst)
}

// SpectrumCurve samples the smoothed spectrum at freqs into dst.
func (p *Processor) SpectrumCurve(freqs, dst []float64) bool {
	return p.analyzer.CurveAt(freqs, dst)
}

// SpectrumBins returns the number of bins Spectrum fills.
func (p *Processor) SpectrumBins() int { return p.analyzer.Bins() }

// SpectrumBinFrequency returns the center frequency of spectrum bin i.
func (p *Processor) SpectrumBinFrequency(i int) float64 {
	return p.analyzer.BinFrequency(i)
}

// SpectrumFrames returns how many analyzer frames have been computed.
func (p *Processor) SpectrumFrames() uint64 { return p.analyzer.Frames() }

// SetParam sets parameter id to a plain value.
func (p *Processor) SetParam(id int, plain float64) error {
	info, err := LookupParam(id)
	if err != nil {
		return err
	}
	p.setBandParam(p.bands[info.Band], info.Field, plain)
	return nil
}

// Param returns the plain value of parameter id.
func (p *Processor) Param(id int) (float64, error) {
	info, err := LookupParam(id)
	if err != nil {
		return 0, err
	}
	return bandParam(p.bands[info.Band], info.Field), nil
}

// SetParamNormalized sets parameter id from a value in [0, 1].
func (p *Processor) SetParamNormalized(id int, norm float64) error {
	info, err := LookupParam(id)
	if err != nil {
		return err
	}
	p.setBandParam(p.bands[info.Band], info.Field, info.Denormalize(norm))
	return nil
}

// ParamNormalized returns parameter id mapped into [0, 1].
func (p *Processor) ParamNormalized(id int) (float64, error) {
	info, err := LookupParam(id)
	if err != nil {
		return 0, err
	}
	return info.Normalize(bandParam(p.bands[info.Band], info.Field)), nil
}

func (p *Processor) displayRate() float64 {
	if sr := p.SampleRate(); sr > 0 {
		return sr
	}
	return displaySampleRate
}
