package rlad

import "github.com/tphakala/simd/f32"

// sampleScale is the normalization factor between the signed 16-bit short
// domain and the [-1, 1] float domain: float = short / sampleScale.
const sampleScale = 32767.0

// ConvertShortToFloat converts src (signed 16-bit LPCM) into dst (the
// equivalent normalized float32), processing min(len(src), len(dst))
// elements. It returns the number of elements written.
//
// The bulk multiply runs through a SIMD-accelerated path when the CPU
// supports it, and a scalar fallback otherwise; both produce results
// within 2 ULPs of each other for any input.
func ConvertShortToFloat(src []int16, dst []float32) int {
	n := min(len(src), len(dst))
	if n == 0 {
		return 0
	}

	widened := make([]float32, n)
	for i := 0; i < n; i++ {
		widened[i] = float32(src[i])
	}

	switch activePath() {
	case pathScalar:
		shortToFloatScalar(widened, dst[:n])
	default:
		f32.Scale(dst[:n], widened, 1.0/sampleScale)
	}
	return n
}

// ConvertFloatToShort converts src (normalized float32 in roughly [-1, 1])
// into dst (saturated, rounded signed 16-bit LPCM), processing
// min(len(src), len(dst)) elements. It returns the number of elements
// written.
func ConvertFloatToShort(src []float32, dst []int16) int {
	n := min(len(src), len(dst))
	if n == 0 {
		return 0
	}

	scaled := make([]float32, n)
	switch activePath() {
	case pathScalar:
		floatToShortScalar(src[:n], scaled)
	default:
		f32.Scale(scaled, src[:n], sampleScale)
	}

	for i := 0; i < n; i++ {
		dst[i] = saturateInt16(roundFloat32(scaled[i]))
	}
	return n
}

// shortToFloatScalar is the non-vectorized fallback for the widened-short
// to normalized-float scale. It must match the SIMD path bit-for-bit up to
// the documented tolerance.
func shortToFloatScalar(src []float32, dst []float32) {
	for i := range src {
		dst[i] = src[i] / sampleScale
	}
}

// floatToShortScalar is the non-vectorized fallback for the normalized-
// float to short-range scale (before rounding/saturation).
func floatToShortScalar(src []float32, dst []float32) {
	for i := range src {
		dst[i] = src[i] * sampleScale
	}
}

// roundFloat32 rounds to the nearest integer, ties away from zero, without
// pulling in the math package for a single round() call.
func roundFloat32(v float32) float32 {
	if v >= 0 {
		return float32(int64(v + 0.5))
	}
	return float32(int64(v - 0.5))
}

// saturateInt16 clamps a rounded float32 value into the signed 16-bit
// range before the final integer conversion.
func saturateInt16(v float32) int16 {
	switch {
	case v >= 32767:
		return 32767
	case v <= -32768:
		return -32768
	default:
		return int16(v)
	}
}
