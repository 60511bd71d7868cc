package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/freeq/dsp/core"
	"github.com/cwbudde/freeq/dsp/eq"
)

// octaveCenters are the ISO 266 octave band centers in Hz.
var octaveCenters = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

type peak struct {
	bin  int
	freq float64
	mag  float64
}

// strongestBins returns the n largest bins of spectrum, strongest first,
// skipping the DC bin.
func strongestBins(p *eq.Processor, spectrum []float64, n int) []peak {
	peaks := make([]peak, 0, len(spectrum))
	for i := 1; i < len(spectrum); i++ {
		peaks = append(peaks, peak{bin: i, freq: p.SpectrumBinFrequency(i), mag: spectrum[i]})
	}
	sort.Slice(peaks, func(a, b int) bool { return peaks[a].mag > peaks[b].mag })
	if n < len(peaks) {
		peaks = peaks[:n]
	}
	return peaks
}

func printCurve(w io.Writer, p *eq.Processor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq (Hz)\tResponse (dB)\t\n")
	for _, f := range octaveCenters {
		fmt.Fprintf(tw, "%g\t%+.2f\t\n", f, p.ResponseDB(f))
	}
	return tw.Flush()
}

func printBands(w io.Writer, p *eq.Processor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tKind\tFreq (Hz)\tGain (dB)\tQ\tOn\n")
	for i := range p.Bands() {
		s := p.Band(i).Snapshot()
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%+.1f\t%.2f\t%v\n", i, s.Kind.Abbreviation(), s.Freq, s.GainDB, s.Q, s.Enabled)
	}
	return tw.Flush()
}

func printPeaks(w io.Writer, p *eq.Processor, n int) error {
	spectrum := make([]float64, p.SpectrumBins())
	p.Spectrum(spectrum)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Bin\tFreq (Hz)\tLevel (dB)\t\n")
	for _, pk := range strongestBins(p, spectrum, n) {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t\n", pk.bin, pk.freq, core.LinearToDB(pk.mag))
	}
	return tw.Flush()
}

// reportSpectrum logs the strongest spectrum bin every interval until ctx is
// done. It runs concurrently with the audio goroutine and only reads the
// published snapshot.
func reportSpectrum(ctx context.Context, p *eq.Processor, interval time.Duration, log logrus.FieldLogger) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	spectrum := make([]float64, p.SpectrumBins())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if p.SpectrumFrames() == 0 {
				continue
			}
			if !p.Spectrum(spectrum) {
				log.Debug("spectrum snapshot torn, skipping")
				continue
			}
			top := strongestBins(p, spectrum, 1)
			if len(top) == 0 {
				continue
			}
			log.WithFields(logrus.Fields{
				"frames":  p.SpectrumFrames(),
				"peak_hz": fmt.Sprintf("%.1f", top[0].freq),
				"peak_db": fmt.Sprintf("%.1f", core.LinearToDB(top[0].mag)),
			}).Info("spectrum")
		}
	}
}
