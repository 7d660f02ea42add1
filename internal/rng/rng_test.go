package rng

import "testing"

func TestMix64Deterministic(t *testing.T) {
	a := Mix64(42)
	b := Mix64(42)
	if a != b {
		t.Fatalf("Mix64 not deterministic: %d != %d", a, b)
	}
	if Mix64(1) == Mix64(2) {
		t.Fatalf("Mix64 collided on distinct small inputs")
	}
}

func TestSeedOffsetDistinct(t *testing.T) {
	seed := uint64(123456789)
	if SeedOffset(seed, 1) == SeedOffset(seed, 2) {
		t.Fatalf("SeedOffset collided for distinct domain constants")
	}
}

func TestHash2DRangeAndDeterminism(t *testing.T) {
	for _, c := range []struct{ x, y int32 }{
		{0, 0}, {-1, -1}, {1000, -2000}, {255, 255},
	} {
		v1 := Hash2D(7, c.x, c.y)
		v2 := Hash2D(7, c.x, c.y)
		if v1 != v2 {
			t.Fatalf("Hash2D(%d,%d) not deterministic", c.x, c.y)
		}
		if v1 < 0 || v1 >= 1 {
			t.Fatalf("Hash2D(%d,%d) = %v out of [0,1)", c.x, c.y, v1)
		}
	}
}

func TestHash2DSeedSensitivity(t *testing.T) {
	if Hash2D(1, 10, 10) == Hash2D(2, 10, 10) {
		t.Fatalf("Hash2D insensitive to seed")
	}
}

func TestHash2DNegativeCoordinatesDiffer(t *testing.T) {
	// Negative and positive lattice coordinates must not collide trivially;
	// this guards the sign-extension behavior of the coordinate mix.
	if Hash2D(7, -1, 0) == Hash2D(7, 1, 0) {
		t.Fatalf("Hash2D(-1,0) collided with Hash2D(1,0)")
	}
}
