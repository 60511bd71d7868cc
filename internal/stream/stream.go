// Package stream adapts the equalizer engine to beep streamers.
package stream

import (
	"fmt"

	"github.com/gopxl/beep"

	"github.com/cwbudde/freeq/dsp/eq"
)

// Equalizer is a beep.Streamer that runs a source through an eq.Processor in
// blocks of at most BlockSize frames. The processor must be activated with
// two channels and a MaxBlockSize of at least BlockSize (or 0).
type Equalizer struct {
	src   beep.Streamer
	proc  *eq.Processor
	size  int
	left  []float64
	right []float64
	view  [2][]float64
	err   error
}

// New wraps src. blockSize must be positive.
func New(src beep.Streamer, proc *eq.Processor, blockSize int) (*Equalizer, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("stream: block size must be > 0, got %d", blockSize)
	}
	return &Equalizer{
		src:   src,
		proc:  proc,
		size:  blockSize,
		left:  make([]float64, blockSize),
		right: make([]float64, blockSize),
	}, nil
}

// BlockSize returns the processing block length in frames.
func (e *Equalizer) BlockSize() int { return e.size }

// Stream pulls frames from the source and equalizes them in place.
func (e *Equalizer) Stream(samples [][2]float64) (n int, ok bool) {
	if e.err != nil {
		return 0, false
	}

	n, ok = e.src.Stream(samples)
	for off := 0; off < n; off += e.size {
		m := min(e.size, n-off)
		frames := samples[off : off+m]

		l, r := e.left[:m], e.right[:m]
		for i, f := range frames {
			l[i], r[i] = f[0], f[1]
		}

		e.view[0], e.view[1] = l, r
		if err := e.proc.Process(e.view[:]); err != nil {
			e.err = fmt.Errorf("stream: process: %w", err)
			return off, false
		}

		for i := range frames {
			frames[i] = [2]float64{l[i], r[i]}
		}
	}

	return n, ok
}

// Err returns the processing error, or the source error.
func (e *Equalizer) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.src.Err()
}
