package eq

const (
	// BandCount is the number of bands in the cascade.
	BandCount = 10
	// ChannelCount is the maximum number of channels a Bank filters.
	ChannelCount = 2
)

// Bank is the per-channel cascade of BandCount filters. Band parameters are
// shared across channels, delay memory is not.
type Bank struct {
	states  [ChannelCount][BandCount]FilterState
	enabled [BandCount]bool
}

// NewBank returns a bank of enabled passthrough filters.
func NewBank() *Bank {
	b := &Bank{}
	for ch := range b.states {
		for i := range b.states[ch] {
			b.states[ch][i] = NewFilterState()
		}
	}
	for i := range b.enabled {
		b.enabled[i] = true
	}
	return b
}

// Update redesigns every band for every channel.
func (b *Bank) Update(params *[BandCount]BandParams, sampleRate float64) {
	for i := range params {
		b.enabled[i] = params[i].Enabled
		for ch := range b.states {
			b.states[ch][i].SetParams(params[i], sampleRate)
		}
	}
}

// ProcessSample runs x through bands 0..9 of channel ch. Disabled bands pass
// the sample unchanged and their delay memory does not advance, so a band
// that is enabled again continues from the memory it had when disabled.
func (b *Bank) ProcessSample(ch int, x float64) float64 {
	states := &b.states[ch]
	for i := range states {
		if b.enabled[i] {
			x = states[i].Process(x)
		}
	}
	return x
}

// ProcessBlock filters buf in place. Zero-alloc.
func (b *Bank) ProcessBlock(ch int, buf []float64) {
	for i, x := range buf {
		buf[i] = b.ProcessSample(ch, x)
	}
}

// State returns the filter of band on channel ch.
func (b *Bank) State(band, ch int) *FilterState {
	return &b.states[ch][band]
}

// Reset clears the delay memory of every filter.
func (b *Bank) Reset() {
	for ch := range b.states {
		for i := range b.states[ch] {
			b.states[ch][i].Reset()
		}
	}
}
