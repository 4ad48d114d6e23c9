// widget_navball_test.go - navball widget gating and celestial icon geometry
//
// License: GPLv3 or later

package main

import (
	"math"
	"testing"
)

func TestNavballDisabledIsNoop(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.Navball.Enabled = false
	ctx.Navball = &NavballResources{}
	if RenderNavballWidget(ctx) {
		t.Fatalf("a disabled navball should report no change")
	}
}

func TestNavballNilResourcesIsNoop(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.Navball.Enabled = true
	ctx.Navball = nil
	if RenderNavballWidget(ctx) {
		t.Fatalf("a nil navball resource set should keep the widget a no-op")
	}
}

func TestCelestialIndicatorsRequireBothGPSAndTime(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.CelestialIndicators.Enabled = true
	ctx.State.SpaceTime.Valid = true
	ctx.State.Time.Valid = false
	if renderCelestialIndicators(ctx, 100, 100, 80) {
		t.Fatalf("celestial indicators need both SpaceTime and Time validity")
	}
	ctx.State.Time.Valid = true
	ctx.State.SpaceTime.Valid = false
	if renderCelestialIndicators(ctx, 100, 100, 80) {
		t.Fatalf("celestial indicators need both SpaceTime and Time validity")
	}
}

func TestCelestialIndicatorsDisabledIsNoop(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.CelestialIndicators.Enabled = false
	ctx.State.SpaceTime.Valid = true
	ctx.State.Time.Valid = true
	if renderCelestialIndicators(ctx, 100, 100, 80) {
		t.Fatalf("a disabled celestial-indicators config should be a no-op")
	}
}

func TestRenderCelestialIconBehindNavballIsSkipped(t *testing.T) {
	ctx := newTestContext(200, 200)
	img := &VectorImage{}
	// azDeg=180, altDeg=0 points along the horizon directly away from the
	// viewer, which under zero compass rotation yields rz=-1 (behind the
	// ball from the viewer).
	if renderCelestialIcon(ctx, 100, 100, 80, 20, 180, 0, 0, img, img) {
		t.Fatalf("an icon behind the navball should not be drawn")
	}
}

func TestDirectionFromHorizonIsUnit(t *testing.T) {
	for _, c := range []struct{ az, alt float64 }{
		{0, 0}, {90, 45}, {270, -30}, {359, 89},
	} {
		x, y, z := directionFromHorizon(c.az, c.alt)
		mag := x*x + y*y + z*z
		if math.Abs(mag-1) > 1e-9 {
			t.Errorf("directionFromHorizon(%v,%v) magnitude^2 = %v, want 1", c.az, c.alt, mag)
		}
	}
}

func TestDrawLevelMarkerDraws(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	drawLevelMarker(fb, 50, 50, 60)
	drawn := false
	for _, b := range fb.Bytes() {
		if b != 0 {
			drawn = true
			break
		}
	}
	if !drawn {
		t.Fatalf("expected the level marker to draw something")
	}
}
