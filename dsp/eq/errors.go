package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned by Activate for rates that are not
	// finite and positive.
	ErrInvalidSampleRate = errors.New("eq: sample rate must be finite and > 0")
	// ErrUnsupportedLayout is returned by Activate for channel counts outside 1..2.
	ErrUnsupportedLayout = errors.New("eq: unsupported channel layout")
	// ErrNotActivated is returned by Process before a successful Activate.
	ErrNotActivated = errors.New("eq: processor not activated")
	// ErrChannelMismatch is returned when a block does not carry the
	// activated channel count.
	ErrChannelMismatch = errors.New("eq: block channel count does not match layout")
	// ErrBlockLength is returned when channels differ in length or exceed
	// the activated maximum block size.
	ErrBlockLength = errors.New("eq: invalid block length")
	// ErrUnknownParam is returned for parameter ids outside 0..ParamCount-1.
	ErrUnknownParam = errors.New("eq: unknown parameter id")
	// ErrInvalidBand is returned for band indices outside 0..BandCount-1.
	ErrInvalidBand = errors.New("eq: invalid band index")
)
