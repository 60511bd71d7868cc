package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude) with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos. Out-of-range positions give silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Block builds a planar channel block from independent copies of channels.
func Block(channels ...[]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, src := range channels {
		out[ch] = append([]float64(nil), src...)
	}
	return out
}

// StereoSine returns a two-channel block carrying the same sine on both channels.
func StereoSine(freqHz, sampleRate, amplitude float64, length int) [][]float64 {
	s := DeterministicSine(freqHz, sampleRate, amplitude, length)
	return Block(s, s)
}
