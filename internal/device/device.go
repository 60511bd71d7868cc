// Package device plays beep streamers on the default audio output.
package device

import (
	"context"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/oto"
	"github.com/sirupsen/logrus"
)

// Player owns an oto context. Only one Player may exist per process.
type Player struct {
	ctx         *oto.Context
	log         logrus.FieldLogger
	bufferBytes int
}

// Open creates the output context for stereo 16-bit audio with a device
// buffer of bufferFrames frames.
func Open(sampleRate beep.SampleRate, bufferFrames int, log logrus.FieldLogger) (*Player, error) {
	bufferBytes := bufferFrames * bytesPerFrame
	ctx, err := oto.NewContext(int(sampleRate), channelNum, bitDepthInBytes, bufferBytes)
	if err != nil {
		return nil, fmt.Errorf("device: open output: %w", err)
	}

	log.WithFields(logrus.Fields{
		"sample_rate":   int(sampleRate),
		"buffer_frames": bufferFrames,
	}).Info("audio output opened")

	return &Player{ctx: ctx, log: log, bufferBytes: bufferBytes}, nil
}

// Play blocks until s is drained or ctx is cancelled.
func (p *Player) Play(ctx context.Context, s beep.Streamer) error {
	pl := p.ctx.NewPlayer()
	defer func() {
		if err := pl.Close(); err != nil {
			p.log.WithError(err).Warn("closing audio player")
		}
	}()

	if _, err := io.CopyBuffer(pl, NewPCMReader(ctx, s), make([]byte, p.bufferBytes)); err != nil {
		return fmt.Errorf("device: play: %w", err)
	}
	p.log.Debug("playback ended")
	return nil
}

// Close releases the output device.
func (p *Player) Close() error {
	return p.ctx.Close()
}
