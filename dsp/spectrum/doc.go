// Package spectrum provides the real-time spectrum analyzer used for
// equalizer visualization.
//
// An [Analyzer] buffers a mono signal into two analysis windows whose fill
// phases are offset by half a window. Every half window one of them is
// complete and goes through Hann weighting, a forward FFT and exponential
// smoothing into a persistent magnitude array. All buffers and the FFT plan
// are allocated by [NewAnalyzer]; pushing samples never allocates.
//
// The smoothed spectrum is published through a lock-free sequence counter so
// a render goroutine can copy it with [Analyzer.Snapshot] while the audio
// goroutine keeps writing.
package spectrum
