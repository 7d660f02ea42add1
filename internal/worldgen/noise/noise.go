// Package noise implements the hash-seeded lattice noise the base-fields
// stage builds its elevation and domain-warp fields from. It deliberately
// does not use a Perlin/simplex library: every corner value is derived from
// rng.Hash2D so the result is bit-exact across platforms.
package noise

import (
	"math"

	"worldgen-engine/internal/rng"
)

// Smoothstep is the cubic Hermite ease used to interpolate lattice corners.
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Value returns bilinear-interpolated, smoothstep-eased value noise at
// (x,y) under seed.
func Value(seed uint64, x, y float64) float64 {
	xi := int32(math.Floor(x))
	yi := int32(math.Floor(y))
	tx := x - math.Floor(x)
	ty := y - math.Floor(y)

	v00 := rng.Hash2D(seed, xi, yi)
	v10 := rng.Hash2D(seed, xi+1, yi)
	v01 := rng.Hash2D(seed, xi, yi+1)
	v11 := rng.Hash2D(seed, xi+1, yi+1)

	sx := Smoothstep(tx)
	sy := Smoothstep(ty)

	a := Lerp(v00, v10, sx)
	b := Lerp(v01, v11, sx)
	return Lerp(a, b, sy)
}

// FBM sums octaves octaves of Value noise with halving amplitude and
// doubling frequency, normalized by total amplitude.
func FBM(seed uint64, x, y float64, octaves int, baseFreq float64) float64 {
	amp := 0.5
	freq := baseFreq
	sum := 0.0
	norm := 0.0
	for octave := 0; octave < octaves; octave++ {
		n := Value(rng.SeedOffset(seed, uint64(octave+1)), x*freq, y*freq)
		sum += n * amp
		norm += amp
		amp *= 0.5
		freq *= 2.0
	}
	if norm > 0 {
		return sum / norm
	}
	return 0
}

// RidgedFBM sums octaves of a ridged transform of Value noise (1-|2n-1|,
// squared), with a slower amplitude decay than FBM so high-frequency ridges
// stay prominent.
func RidgedFBM(seed uint64, x, y float64, octaves int, baseFreq float64) float64 {
	amp := 0.5
	freq := baseFreq
	sum := 0.0
	norm := 0.0
	for octave := 0; octave < octaves; octave++ {
		n := Value(rng.SeedOffset(seed, uint64(octave+1)), x*freq, y*freq)
		ridge := 1 - math.Abs(2*n-1)
		sum += ridge * ridge * amp
		norm += amp
		amp *= 0.55
		freq *= 2.0
	}
	if norm <= 0 {
		return 0
	}
	return clamp(sum/norm, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
