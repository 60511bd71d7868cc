package device

import (
	"context"
	"io"
	"math"

	"github.com/gopxl/beep"
)

const (
	channelNum      = 2
	bitDepthInBytes = 2
	bytesPerFrame   = channelNum * bitDepthInBytes

	// int16Max scales [-1, 1] onto symmetric 16-bit PCM.
	int16Max = math.MaxInt16
)

// PCMReader encodes a stereo beep.Streamer as interleaved signed 16-bit
// little-endian frames. Samples outside [-1, 1] are clipped.
type PCMReader struct {
	ctx    context.Context
	src    beep.Streamer
	frames [][2]float64
}

var _ io.Reader = (*PCMReader)(nil)

// NewPCMReader reads from src until it is drained or ctx is cancelled.
func NewPCMReader(ctx context.Context, src beep.Streamer) *PCMReader {
	return &PCMReader{ctx: ctx, src: src}
}

func (r *PCMReader) Read(buf []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, io.EOF
	default:
	}

	want := len(buf) / bytesPerFrame
	if want == 0 {
		return 0, nil
	}
	if cap(r.frames) < want {
		r.frames = make([][2]float64, want)
	}
	frames := r.frames[:want]

	n, ok := r.src.Stream(frames)
	for i, f := range frames[:n] {
		writeFrame(buf[i*bytesPerFrame:], f)
	}

	if n == 0 && !ok {
		if err := r.src.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	return n * bytesPerFrame, nil
}

func writeFrame(buf []byte, f [2]float64) {
	for ch, v := range f {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		b := int16(v * int16Max)
		buf[2*ch] = byte(b)
		buf[2*ch+1] = byte(b >> 8)
	}
}
