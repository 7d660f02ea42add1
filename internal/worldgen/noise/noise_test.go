package noise

import (
	"testing"

	"worldgen-engine/internal/rng"
)

func TestSmoothstepEndpoints(t *testing.T) {
	if Smoothstep(0) != 0 {
		t.Fatalf("Smoothstep(0) = %v, want 0", Smoothstep(0))
	}
	if Smoothstep(1) != 1 {
		t.Fatalf("Smoothstep(1) = %v, want 1", Smoothstep(1))
	}
}

func TestLerp(t *testing.T) {
	if v := Lerp(0, 10, 0.5); v != 5 {
		t.Fatalf("Lerp(0,10,0.5) = %v, want 5", v)
	}
}

func TestValueDeterministic(t *testing.T) {
	a := Value(7, 1.3, 4.2)
	b := Value(7, 1.3, 4.2)
	if a != b {
		t.Fatalf("Value noise not deterministic: %v != %v", a, b)
	}
	if a < 0 || a > 1 {
		t.Fatalf("Value noise out of [0,1]: %v", a)
	}
}

func TestValueLatticeCornersExact(t *testing.T) {
	// At an integer lattice point, value noise must equal the corner hash
	// exactly (interpolation weights collapse to the (0,0) corner).
	got := Value(11, 3, 5)
	want := rng.Hash2D(11, 3, 5)
	if got != want {
		t.Fatalf("Value at lattice point = %v, want corner hash %v", got, want)
	}
}

func TestFBMDeterministicAndBounded(t *testing.T) {
	a := FBM(99, 0.2, 0.7, 6, 2.1)
	b := FBM(99, 0.2, 0.7, 6, 2.1)
	if a != b {
		t.Fatalf("FBM not deterministic")
	}
	if a < 0 || a > 1 {
		t.Fatalf("FBM out of expected [0,1] range: %v", a)
	}
}

func TestFBMZeroOctavesIsZero(t *testing.T) {
	if v := FBM(1, 0.5, 0.5, 0, 1.0); v != 0 {
		t.Fatalf("FBM with zero octaves = %v, want 0", v)
	}
}

func TestRidgedFBMBounded(t *testing.T) {
	v := RidgedFBM(5, 0.33, 0.81, 5, 1.1)
	if v < 0 || v > 1 {
		t.Fatalf("RidgedFBM out of [0,1]: %v", v)
	}
}

func TestRidgedFBMDiffersFromFBM(t *testing.T) {
	a := FBM(5, 0.33, 0.81, 5, 1.1)
	b := RidgedFBM(5, 0.33, 0.81, 5, 1.1)
	if a == b {
		t.Fatalf("RidgedFBM and FBM produced identical output, expected distinct decay/transform")
	}
}
