package types

import "github.com/chewxy/math32"

// Cubic hermite interpolation between edges a and b, clamped to [0, 1].
// When both edges coincide the result is a hard step at a.
func Smoothstep(a, b, x float32) float32 {
	if a == b {
		if x < a {
			return 0
		}
		return 1
	}
	t := Clamp((x-a)/(b-a), 0, 1)
	return t * t * (3 - 2*t)
}

// Clamp x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Linear interpolation from a to b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Linearly remap v from [inMin, inMax] to [outMin, outMax]. The result is not clamped.
func MapRange(v, inMin, inMax, outMin, outMax float32) float32 {
	if inMax == inMin {
		return outMin
	}
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Return true if a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
