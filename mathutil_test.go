// mathutil_test.go - angle normalization, clamping and interpolation tests
//
// License: GPLv3 or later

package main

import (
	"math"
	"testing"
)

func TestNormalize360Range(t *testing.T) {
	for _, a := range []float64{-720, -361, -1, 0, 359, 360, 721, 1000.5} {
		got := Normalize360(a)
		if got < 0 || got >= 360 {
			t.Errorf("Normalize360(%v) = %v, out of [0,360)", a, got)
		}
		diff := math.Mod(got-a, 360)
		if diff < 0 {
			diff += 360
		}
		if diff > 1e-6 && diff < 360-1e-6 {
			t.Errorf("Normalize360(%v) = %v not congruent mod 360", a, got)
		}
	}
}

func TestNormalize180Range(t *testing.T) {
	for _, a := range []float64{-540, -181, -180, 0, 179, 180, 181, 720} {
		got := Normalize180(a)
		if got < -180 || got >= 180 {
			t.Errorf("Normalize180(%v) = %v, out of [-180,180)", a, got)
		}
	}
}

func TestAngleDifferenceSelf(t *testing.T) {
	for _, a := range []float64{0, 45, -90, 359, 720} {
		if got := AngleDifference(a, a); got != 0 {
			t.Errorf("AngleDifference(%v,%v) = %v, want 0", a, a, got)
		}
	}
}

func TestAngleDifferenceBounded(t *testing.T) {
	cases := [][2]float64{{10, 350}, {0, 180}, {-170, 170}, {359, 1}}
	for _, c := range cases {
		d := AngleDifference(c[0], c[1])
		if math.Abs(d) > 180 {
			t.Errorf("AngleDifference(%v,%v) = %v exceeds 180 in magnitude", c[0], c[1], d)
		}
	}
}

func TestAngleDifferenceWraparound(t *testing.T) {
	// From 359 to 1 the shortest path is +2, not -358.
	if got := AngleDifference(359, 1); got != 2 {
		t.Errorf("AngleDifference(359,1) = %v, want 2", got)
	}
}

func TestClampBounds(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp below range failed")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Error("Clamp above range failed")
	}
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp within range failed")
	}
}

func TestClampIdempotent(t *testing.T) {
	for _, v := range []float64{-100, 0, 50, 1e9} {
		once := Clamp(v, 0, 10)
		twice := Clamp(once, 0, 10)
		if once != twice {
			t.Errorf("Clamp not idempotent: once=%v twice=%v", once, twice)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	if Lerp(10, 20, 0) != 10 {
		t.Error("Lerp(a,b,0) should be a")
	}
	if Lerp(10, 20, 1) != 20 {
		t.Error("Lerp(a,b,1) should be b")
	}
}

func TestLerpClampedClampsT(t *testing.T) {
	if LerpClamped(10, 20, -5) != 10 {
		t.Error("LerpClamped should clamp t below 0")
	}
	if LerpClamped(10, 20, 5) != 20 {
		t.Error("LerpClamped should clamp t above 1")
	}
}

func TestInverseLerpDegenerate(t *testing.T) {
	if got := InverseLerp(5, 5, 5); got != 0 {
		t.Errorf("InverseLerp with a==b should return 0, got %v", got)
	}
}

func TestInverseLerpRoundTrip(t *testing.T) {
	t0 := InverseLerp(0, 100, 25)
	if math.Abs(t0-0.25) > 1e-9 {
		t.Errorf("InverseLerp(0,100,25) = %v, want 0.25", t0)
	}
}

func TestRemap(t *testing.T) {
	got := Remap(50, 0, 100, 0, 1)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Remap(50,0,100,0,1) = %v, want 0.5", got)
	}
}

func TestNDCToPixel(t *testing.T) {
	if got := NDCToPixel(-1, 1920); got != 0 {
		t.Errorf("NDCToPixel(-1,1920) = %v, want 0", got)
	}
	if got := NDCToPixel(1, 1920); got != 1920 {
		t.Errorf("NDCToPixel(1,1920) = %v, want 1920", got)
	}
	if got := NDCToPixel(0, 1920); got != 960 {
		t.Errorf("NDCToPixel(0,1920) = %v, want 960", got)
	}
}
