package systems

import "math"

// lerp linearly interpolates between a and b.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sin is a float32 convenience wrapper.
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos is a float32 convenience wrapper.
func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}
