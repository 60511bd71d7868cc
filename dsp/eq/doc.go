// Package eq implements a ten-band parametric equalizer engine.
//
// Each band is a [Band] of lock-free parameters (frequency, gain, Q, kind and
// an enabled flag) that user-interface or automation goroutines may write at
// any time. The audio goroutine drives a [Processor]: once per block it takes
// a value snapshot of all bands, redesigns the per-channel biquad sections of
// the [Bank], filters every channel through the ten-band cascade and feeds the
// channel mean into a spectrum analyzer for display.
//
// Visualization helpers ([Processor.GainAt], [Processor.ResponseDB],
// [Processor.Spectrum]) never touch filter memory and are safe to call from
// any goroutine.
package eq
