package stream

import (
	"math"

	"github.com/gopxl/beep"
)

// Tone returns a stereo sine of freq Hz and the given peak amplitude lasting
// frames frames at sampleRate.
func Tone(sampleRate beep.SampleRate, freq, amplitude float64, frames int) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sampleRate)
	pos := 0

	return beep.Take(frames, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := amplitude * math.Sin(step*float64(pos))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	}))
}
