package eq

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/freeq/internal/testutil"
)

func newActiveProcessor(t *testing.T, sampleRate float64, opts ...Option) *Processor {
	t.Helper()
	p, err := NewProcessor(opts...)
	require.NoError(t, err)
	require.NoError(t, p.Activate(sampleRate, Layout{Channels: 2, MaxBlockSize: 4096}))
	return p
}

func TestNewProcessorDefaults(t *testing.T) {
	p, err := NewProcessor()
	require.NoError(t, err)

	assert.Equal(t, BandCount, p.Bands())
	assert.False(t, p.Active())
	assert.Zero(t, p.SampleRate())
	assert.Equal(t, 2049, p.SpectrumBins())
	assert.Nil(t, p.Band(-1))
	assert.Nil(t, p.Band(BandCount))

	for i := range BandCount {
		assert.Equal(t, DefaultBandParams(i, BandCount), p.Band(i).Snapshot())
	}
}

func TestNewProcessorRejectsAnalyzerSize(t *testing.T) {
	_, err := NewProcessor(WithAnalyzerSize(1000))
	assert.Error(t, err)
}

func TestActivateValidation(t *testing.T) {
	p, err := NewProcessor()
	require.NoError(t, err)

	for _, sr := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		err := p.Activate(sr, Layout{Channels: 2})
		assert.True(t, errors.Is(err, ErrInvalidSampleRate), "rate %v: %v", sr, err)
	}
	for _, ch := range []int{0, 3, 8} {
		err := p.Activate(48000, Layout{Channels: ch})
		assert.True(t, errors.Is(err, ErrUnsupportedLayout), "channels %d: %v", ch, err)
	}
	assert.False(t, p.Active())

	require.NoError(t, p.Activate(44100, Layout{Channels: 1}))
	assert.True(t, p.Active())
	assert.Equal(t, 44100.0, p.SampleRate())
}

func TestProcessValidation(t *testing.T) {
	p, err := NewProcessor()
	require.NoError(t, err)

	block := testutil.StereoSine(1000, 48000, 0.5, 64)
	assert.ErrorIs(t, p.Process(block), ErrNotActivated)

	require.NoError(t, p.Activate(48000, Layout{Channels: 2, MaxBlockSize: 128}))
	assert.ErrorIs(t, p.Process(block[:1]), ErrChannelMismatch)
	assert.ErrorIs(t, p.Process(nil), ErrChannelMismatch)
	assert.ErrorIs(t, p.Process([][]float64{make([]float64, 64), make([]float64, 63)}), ErrBlockLength)
	assert.ErrorIs(t, p.Process(testutil.StereoSine(1000, 48000, 0.5, 129)), ErrBlockLength)
	assert.NoError(t, p.Process(block))
	assert.NoError(t, p.Process([][]float64{{}, {}}))
}

func TestProcessDefaultBandsAreTransparent(t *testing.T) {
	p := newActiveProcessor(t, 48000)

	in := testutil.DeterministicNoise(21, 0.8, 1024)
	block := testutil.Block(in, in)
	require.NoError(t, p.Process(block))

	testutil.RequireSliceNearlyEqual(t, block[0], in, 1e-12)
	testutil.RequireSliceNearlyEqual(t, block[1], in, 1e-12)
}

func TestProcessAppliesBandChanges(t *testing.T) {
	p := newActiveProcessor(t, 48000)
	p.Band(3).Set(BandParams{Freq: 1000, GainDB: 12, Q: 1, Kind: KindPeak, Enabled: true})

	const n = 48000
	block := testutil.StereoSine(1000, 48000, 0.1, n)
	require.NoError(t, p.Process(block))

	peak := 0.0
	for _, v := range block[0][n/2:] {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.InDelta(t, 0.1*math.Pow(10, 12.0/20), peak, 2e-3)
}

func TestProcessPreservesMemoryAcrossActivate(t *testing.T) {
	p := newActiveProcessor(t, 48000)
	p.Band(0).SetGain(6)
	require.NoError(t, p.Process(testutil.StereoSine(200, 48000, 0.5, 256)))

	before := p.Bank().State(0, 0).Memory()
	require.NoError(t, p.Activate(96000, Layout{Channels: 2}))
	assert.Equal(t, before, p.Bank().State(0, 0).Memory())
}

func TestProcessMono(t *testing.T) {
	p, err := NewProcessor(WithAnalyzerSize(256))
	require.NoError(t, err)
	require.NoError(t, p.Activate(48000, Layout{Channels: 1}))

	block := [][]float64{testutil.DeterministicSine(3000, 48000, 0.5, 512)}
	require.NoError(t, p.Process(block))
	assert.Equal(t, uint64(4), p.SpectrumFrames())
}

func TestProcessZeroAlloc(t *testing.T) {
	p := newActiveProcessor(t, 48000)
	block := testutil.StereoSine(440, 48000, 0.5, 4096)

	allocs := testing.AllocsPerRun(10, func() {
		_ = p.Process(block)
	})
	assert.Zero(t, allocs)
}

func TestProcessorSpectrumPeak(t *testing.T) {
	const fs = 48000.0
	p := newActiveProcessor(t, fs)

	for range 4 {
		require.NoError(t, p.Process(testutil.StereoSine(1000, fs, 0.5, 4096)))
	}

	snap := make([]float64, p.SpectrumBins())
	require.True(t, p.Spectrum(snap))

	peak := testutil.ArgMax(snap, 1)
	assert.InDelta(t, 1000*4096/fs, float64(peak), 1)
	assert.InDelta(t, 1000, p.SpectrumBinFrequency(peak), fs/4096)

	curve := make([]float64, 2)
	require.True(t, p.SpectrumCurve([]float64{p.SpectrumBinFrequency(peak), 15000}, curve))
	assert.InDelta(t, snap[peak], curve[0], 1e-12)
	assert.Greater(t, curve[0], 100*curve[1])
}

func TestGainAtUsesCurrentParams(t *testing.T) {
	p := newActiveProcessor(t, 48000)
	p.Band(4).Set(BandParams{Freq: 1000, GainDB: 6, Q: 1, Kind: KindPeak, Enabled: true})

	assert.InDelta(t, 6, p.GainAt(4, 1000), 1e-9)
	assert.Zero(t, p.GainAt(-1, 1000))
	assert.Zero(t, p.GainAt(BandCount, 1000))

	before := p.Bank().State(4, 0).Memory()
	p.GainAt(4, 500)
	assert.Equal(t, before, p.Bank().State(4, 0).Memory())
}

func TestGainAtBeforeActivate(t *testing.T) {
	p, err := NewProcessor()
	require.NoError(t, err)
	p.Band(5).Set(BandParams{Freq: 2000, GainDB: -9, Q: 2, Kind: KindPeak, Enabled: true})
	assert.InDelta(t, -9, p.GainAt(5, 2000), 1e-9)
}

func TestResponseDBSumsEnabledBands(t *testing.T) {
	p := newActiveProcessor(t, 48000)
	p.Band(2).Set(BandParams{Freq: 500, GainDB: 3, Q: 1, Kind: KindPeak, Enabled: true})
	p.Band(6).Set(BandParams{Freq: 500, GainDB: 4, Q: 1, Kind: KindPeak, Enabled: true})

	assert.InDelta(t, 7, p.ResponseDB(500), 1e-9)

	p.Band(6).SetEnabled(false)
	assert.InDelta(t, 3, p.ResponseDB(500), 1e-9)
	assert.InDelta(t, 4, p.GainAt(6, 500), 1e-9)
}

func TestParamSurface(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	p, err := NewProcessor(WithLogger(log))
	require.NoError(t, err)

	gainID := ParamID(4, FieldGain)
	require.NoError(t, p.SetParam(gainID, 30))
	v, err := p.Param(gainID)
	require.NoError(t, err)
	assert.Equal(t, GainMax, v)

	require.NoError(t, p.SetParamNormalized(ParamID(4, FieldFrequency), 0))
	assert.Equal(t, FreqMin, p.Band(4).Freq())

	kindID := ParamID(4, FieldKind)
	require.NoError(t, p.SetParamNormalized(kindID, 1))
	assert.Equal(t, KindNotch, p.Band(4).Kind())
	assert.Zero(t, p.Band(4).Gain())

	norm, err := p.ParamNormalized(kindID)
	require.NoError(t, err)
	assert.InDelta(t, 1, norm, 1e-12)

	require.NoError(t, p.SetParam(kindID, 99))
	assert.Equal(t, KindPeak, p.Band(4).Kind())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 99.0, entry.Data["value"])

	assert.ErrorIs(t, p.SetParam(ParamCount, 1), ErrUnknownParam)
	assert.ErrorIs(t, p.SetParamNormalized(-1, 1), ErrUnknownParam)
	_, err = p.Param(ParamCount)
	assert.ErrorIs(t, err, ErrUnknownParam)
	_, err = p.ParamNormalized(ParamCount)
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestConcurrentParamWrites(t *testing.T) {
	p := newActiveProcessor(t, 48000, WithAnalyzerSize(512))
	block := testutil.StereoSine(440, 48000, 0.5, 256)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 500 {
			b := p.Band(i % BandCount)
			b.SetFreq(float64(100 + i))
			b.SetGain(float64(i%36) - 18)
			b.SetKind(Kind(i % KindCount))
			b.SetEnabled(i%3 != 0)
		}
	}()
	go func() {
		defer wg.Done()
		snap := make([]float64, p.SpectrumBins())
		for range 200 {
			p.Spectrum(snap)
			p.ResponseDB(1000)
		}
	}()

	for range 100 {
		require.NoError(t, p.Process(block))
	}
	wg.Wait()

	testutil.RequireFinite(t, block[0])
	testutil.RequireFinite(t, block[1])
}
