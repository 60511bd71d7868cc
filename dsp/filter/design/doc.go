// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing. They follow the RBJ audio EQ
// cookbook forms plus the first-order bilinear lowpass/highpass pair used by
// the equalizer's gentle slope types. Every designer computes the six raw
// coefficients and divides all of them by a0, so the returned
// [biquad.Coefficients] always describe a denominator with a0 = 1.
package design
