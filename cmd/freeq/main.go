// Command freeq runs audio through the ten-band parametric equalizer.
//
// Usage:
//
//	freeq [flags]
//
// The input is a WAV file or a generated sine. The equalized stream is
// written to a 16-bit WAV file, played on the default output, or simply
// drained. While audio runs, the strongest spectrum bin is logged.
//
// Examples:
//
//	freeq -tone 1000 -band 4:PK:1000:6:1 -curve
//	freeq -in mix.wav -band 0:LS:120:-4:0.7 -band 9:HS:9000:3:0.7 -out eq.wav
//	freeq -in mix.wav -play -midi
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/freeq/dsp/core"
	"github.com/cwbudde/freeq/dsp/eq"
	"github.com/cwbudde/freeq/internal/device"
	"github.com/cwbudde/freeq/internal/midictl"
	"github.com/cwbudde/freeq/internal/stream"
)

const toneAmplitude = 0.5

type config struct {
	in       string
	out      string
	tone     float64
	seconds  float64
	play     bool
	midi     bool
	midiPort string
	curve    bool
	peaks    int
	report   time.Duration
	bands    bandFlags
	disabled indexFlags
	proc     core.ProcessorConfig
}

func main() {
	var (
		cfg     config
		rate    int
		block   int
		verbose bool
	)
	flag.StringVar(&cfg.in, "in", "", "input WAV file (default: generated sine)")
	flag.StringVar(&cfg.out, "out", "", "write the equalized stream to this 16-bit WAV file")
	flag.Float64Var(&cfg.tone, "tone", 1000, "generated sine frequency in Hz when -in is absent")
	flag.Float64Var(&cfg.seconds, "seconds", 2, "generated signal duration in seconds")
	flag.IntVar(&rate, "rate", 48000, "generated signal sample rate")
	flag.IntVar(&block, "block", 512, "processing block size in frames")
	flag.BoolVar(&cfg.play, "play", false, "play through the default audio output")
	flag.BoolVar(&cfg.midi, "midi", false, "map MIDI CC 0..39 onto the 40 band parameters")
	flag.StringVar(&cfg.midiPort, "midi-port", "", "MIDI input name substring (default: first input)")
	flag.BoolVar(&cfg.curve, "curve", false, "print the summed EQ response at octave centers")
	flag.IntVar(&cfg.peaks, "peaks", 5, "print the N strongest spectrum bins at the end (0 disables)")
	flag.DurationVar(&cfg.report, "report", 250*time.Millisecond, "spectrum log interval")
	flag.Var(&cfg.bands, "band", "configure a band as index:kind:freq:gain:q (repeatable)")
	flag.Var(&cfg.disabled, "disable", "disable band index (repeatable)")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: freeq [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs audio through a ten-band parametric equalizer.\n")
		fmt.Fprintf(os.Stderr, "Kinds: LP LP2 LS HP HP2 HS PK NT or their display names.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  freeq -tone 1000 -band 4:PK:1000:6:1 -curve\n")
		fmt.Fprintf(os.Stderr, "  freeq -in mix.wav -band 0:LS:120:-4:0.7 -out eq.wav\n")
	}
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg.proc = core.ApplyProcessorOptions(
		core.WithSampleRate(float64(rate)),
		core.WithBlockSize(block),
		core.WithChannels(eq.ChannelCount),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		log.WithError(err).Error("freeq failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer, log logrus.FieldLogger) error {
	if cfg.play && cfg.out != "" {
		return errors.New("-play and -out are mutually exclusive")
	}

	src, format, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	proc, err := eq.NewProcessor(eq.WithLogger(log))
	if err != nil {
		return err
	}
	applyBands(proc, cfg.bands, cfg.disabled)

	layout := eq.Layout{Channels: cfg.proc.Channels, MaxBlockSize: cfg.proc.BlockSize}
	if err := proc.Activate(float64(format.SampleRate), layout); err != nil {
		return err
	}

	equalized, err := stream.New(src, proc, cfg.proc.BlockSize)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"sample_rate": int(format.SampleRate),
		"block":       cfg.proc.BlockSize,
		"bands":       len(cfg.bands),
	}).Info("processing")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return sink(ctx, cfg, equalized, format, log)
	})
	g.Go(func() error {
		return reportSpectrum(ctx, proc, cfg.report, log)
	})
	if cfg.midi {
		g.Go(func() error {
			c := midictl.NewController(proc, midictl.Mapping{Count: eq.ParamCount, Channel: -1}, log)
			err := midictl.Listen(ctx, c, cfg.midiPort)
			if errors.Is(err, midictl.ErrNoInput) {
				log.WithError(err).Warn("MIDI control disabled")
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.WithField("frames", proc.SpectrumFrames()).Info("done")
	return printSummary(stdout, cfg, proc)
}

func openSource(cfg config) (beep.Streamer, beep.Format, func(), error) {
	if cfg.in == "" {
		format := beep.Format{
			SampleRate:  beep.SampleRate(cfg.proc.SampleRate),
			NumChannels: 2,
			Precision:   2,
		}
		frames := format.SampleRate.N(time.Duration(cfg.seconds * float64(time.Second)))
		return stream.Tone(format.SampleRate, cfg.tone, toneAmplitude, frames), format, func() {}, nil
	}

	f, err := os.Open(cfg.in)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode %s: %w", cfg.in, err)
	}
	return s, format, func() { s.Close() }, nil
}

// sink drains s into the configured destination.
func sink(ctx context.Context, cfg config, s beep.Streamer, format beep.Format, log logrus.FieldLogger) error {
	switch {
	case cfg.out != "":
		f, err := os.Create(cfg.out)
		if err != nil {
			return err
		}
		out := beep.Format{SampleRate: format.SampleRate, NumChannels: 2, Precision: 2}
		if err := wav.Encode(f, cancellable(ctx, s), out); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", cfg.out, err)
		}
		log.WithField("file", cfg.out).Info("wrote output")
		return f.Close()

	case cfg.play:
		player, err := device.Open(format.SampleRate, cfg.proc.BlockSize*4, log)
		if err != nil {
			return err
		}
		defer player.Close()
		return player.Play(ctx, s)

	default:
		return drain(ctx, s, cfg.proc.BlockSize)
	}
}

// ctxStreamer ends a stream early once ctx is done.
type ctxStreamer struct {
	ctx context.Context
	s   beep.Streamer
}

func cancellable(ctx context.Context, s beep.Streamer) beep.Streamer {
	return &ctxStreamer{ctx: ctx, s: s}
}

func (c *ctxStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.ctx.Err() != nil {
		return 0, false
	}
	return c.s.Stream(samples)
}

func (c *ctxStreamer) Err() error { return c.s.Err() }

func drain(ctx context.Context, s beep.Streamer, blockSize int) error {
	buf := make([][2]float64, blockSize)
	for ctx.Err() == nil {
		if _, ok := s.Stream(buf); !ok {
			break
		}
	}
	return s.Err()
}

func printSummary(w io.Writer, cfg config, proc *eq.Processor) error {
	if err := printBands(w, proc); err != nil {
		return err
	}
	if cfg.curve {
		fmt.Fprintln(w)
		if err := printCurve(w, proc); err != nil {
			return err
		}
	}
	if cfg.peaks > 0 {
		fmt.Fprintln(w)
		return printPeaks(w, proc, cfg.peaks)
	}
	return nil
}
