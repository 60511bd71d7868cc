// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]. Direct Form I keeps the last two inputs
// and the last two outputs as its memory, so replacing the coefficients
// between blocks never needs a state conversion.
//
// This package provides the processing runtime only. Coefficient design
// (cookbook lowpass, shelves, peaking EQ, etc.) lives in dsp/filter/design.
package biquad
