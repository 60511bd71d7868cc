// Package midictl maps MIDI control change messages onto equalizer parameters.
package midictl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/rtmididrv"
)

const (
	statusMask    = 0xF0
	controlChange = 0xB0
	channelMask   = 0x0F
	maxCCValue    = 127
)

// ErrNoInput is returned by Listen when no MIDI input port is available.
var ErrNoInput = errors.New("midictl: no MIDI input found")

// ParamSetter receives normalized parameter values.
type ParamSetter interface {
	SetParamNormalized(id int, norm float64) error
}

// Mapping assigns controller numbers FirstCC..FirstCC+Count-1 to parameter
// ids 0..Count-1. A Channel of -1 accepts every MIDI channel.
type Mapping struct {
	FirstCC int
	Count   int
	Channel int
}

// Controller translates raw MIDI messages into parameter changes.
type Controller struct {
	params  ParamSetter
	mapping Mapping
	log     logrus.FieldLogger
}

// NewController returns a controller writing to params.
func NewController(params ParamSetter, mapping Mapping, log logrus.FieldLogger) *Controller {
	return &Controller{params: params, mapping: mapping, log: log}
}

// Handle applies one raw MIDI message. It reports whether the message
// changed a parameter.
func (c *Controller) Handle(data []byte) bool {
	if len(data) < 3 || data[0]&statusMask != controlChange {
		return false
	}
	if c.mapping.Channel >= 0 && int(data[0]&channelMask) != c.mapping.Channel {
		return false
	}

	id := int(data[1]) - c.mapping.FirstCC
	if id < 0 || id >= c.mapping.Count {
		return false
	}

	norm := float64(data[2]&maxCCValue) / maxCCValue
	if err := c.params.SetParamNormalized(id, norm); err != nil {
		c.log.WithError(err).WithField("cc", data[1]).Warn("midi parameter rejected")
		return false
	}

	c.log.WithFields(logrus.Fields{
		"cc":    data[1],
		"param": id,
		"value": norm,
	}).Debug("midi parameter")
	return true
}

// Listen opens the first MIDI input whose name contains port (any input when
// port is empty) and feeds its messages to c until ctx is cancelled.
func Listen(ctx context.Context, c *Controller, port string) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("midictl: init driver: %w", err)
	}
	defer func() {
		if err := drv.Close(); err != nil {
			c.log.WithError(err).Warn("closing MIDI driver")
		}
	}()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("midictl: list inputs: %w", err)
	}

	idx := -1
	for i, in := range ins {
		if port == "" || strings.Contains(in.String(), port) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w (port %q, %d inputs)", ErrNoInput, port, len(ins))
	}

	in := ins[idx]
	if err := in.Open(); err != nil {
		return fmt.Errorf("midictl: open %s: %w", in, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			c.log.WithError(err).Warn("closing MIDI input")
		}
	}()

	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		c.Handle(data)
	}); err != nil {
		return fmt.Errorf("midictl: listen %s: %w", in, err)
	}
	defer func() {
		if err := in.StopListening(); err != nil {
			c.log.WithError(err).Warn("stopping MIDI listener")
		}
	}()

	c.log.WithField("port", in.String()).Info("listening for MIDI control changes")
	<-ctx.Done()
	return nil
}
