package biquad

import "math/cmplx"

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
//
// A first-order section (A2 = 0) reports its pole and a pole at the origin.
func (c *Coefficients) Poles() [2]complex128 {
	sqrtDiscriminant := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	return [2]complex128{
		(-complex(c.A1, 0) + sqrtDiscriminant) / 2,
		(-complex(c.A1, 0) - sqrtDiscriminant) / 2,
	}
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) IsStable() bool {
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}
