// widget_navball.go - rotated sphere, level marker, center and celestial icons
//
// License: GPLv3 or later

package main

import "math"

// RenderNavballWidget is widget order position 3.
func RenderNavballWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.Navball
	if !cfg.Enabled || ctx.Navball == nil {
		return false
	}

	az, el, bank := 0.0, 0.0, 0.0
	if ctx.State.Compass.Valid {
		az, el, bank = ctx.State.Compass.AzimuthDeg, ctx.State.Compass.ElevationDeg, ctx.State.Compass.BankDeg
	}

	cx := cfg.PositionX
	cy := cfg.PositionY

	RenderNavball(ctx.FB, ctx.Navball, cx, cy, az, el, bank)
	changed := true

	if cfg.CenterIndicator.Enabled && ctx.VectorCenterIndicator != nil {
		scale := cfg.CenterIndicator.Scale
		size := int(float64(cfg.Size) * 0.2 * scale)
		RenderVectorImage(ctx.FB, ctx.VectorCenterIndicator, cx-size/2, cy-size/2, size, size)
	}

	if renderCelestialIndicators(ctx, cx, cy, cfg.Size) {
		changed = true
	}

	if cfg.ShowLevelMarker {
		drawLevelMarker(ctx.FB, cx, cy, cfg.Size)
	}

	return changed
}

// drawLevelMarker renders the fixed overlay at navball center: two short
// horizontal bars flanking the center with a gap, at fixed scale relative
// to the ball diameter. Drawn last so it always sits above the rotated
// sphere and icons.
func drawLevelMarker(fb *Framebuffer, cx, cy, size int) {
	color := Opaque(255, 255, 0)
	halfWidth := size / 3
	gap := size / 10
	thickness := 2.0
	DrawLine(fb, Point{cx - halfWidth, cy}, Point{cx - gap, cy}, color, thickness)
	DrawLine(fb, Point{cx + gap, cy}, Point{cx + halfWidth, cy}, color, thickness)
}

func renderCelestialIndicators(ctx *RenderContext, cx, cy, navballSize int) bool {
	cfg := ctx.Config.CelestialIndicators
	if !cfg.Enabled || !ctx.State.SpaceTime.Valid || !ctx.State.Time.Valid {
		return false
	}

	changed := false
	iconSize := int(float64(navballSize) * cfg.Scale)

	if cfg.ShowSun {
		az, alt := SunHorizonPosition(ctx.State.Time.UnixSeconds, ctx.State.SpaceTime.LatitudeDeg, ctx.State.SpaceTime.LongitudeDeg)
		if renderCelestialIcon(ctx, cx, cy, navballSize, iconSize, az, alt, cfg.VisibilityThreshold, ctx.VectorSunFront, ctx.VectorSunBack) {
			changed = true
		}
	}
	if cfg.ShowMoon {
		az, alt := MoonHorizonPosition(ctx.State.Time.UnixSeconds, ctx.State.SpaceTime.LatitudeDeg, ctx.State.SpaceTime.LongitudeDeg)
		if renderCelestialIcon(ctx, cx, cy, navballSize, iconSize, az, alt, cfg.VisibilityThreshold, ctx.VectorMoonFront, ctx.VectorMoonBack) {
			changed = true
		}
	}
	return changed
}

// renderCelestialIcon places the sun/moon icon at the screen coordinate
// its horizon-frame position maps to under the current navball rotation,
// using the front icon above the visibility threshold and the back icon
// (reduced alpha) below it.
func renderCelestialIcon(ctx *RenderContext, cx, cy, navballSize, iconSize int, azDeg, altDeg, threshold float64, front, back *VectorImage) bool {
	compass := ctx.State.Compass
	rx, ry, rz := directionFromHorizon(azDeg, altDeg)
	if compass.Valid {
		rx, ry, rz = rotateYawPitchRoll(rx, ry, rz, -compass.AzimuthDeg, -compass.ElevationDeg, -compass.BankDeg)
	}
	if rz < 0 {
		return false // behind the navball from this viewpoint
	}

	r := float64(navballSize) / 2
	px := cx + int(rx*r)
	py := cy + int(ry*r)

	visible := altDeg > threshold
	img := back
	alpha := 0.5
	if visible {
		img = front
		alpha = 1.0
	}
	if img == nil {
		return false
	}
	RenderVectorImageWithAlpha(ctx.FB, img, px-iconSize/2, py-iconSize/2, iconSize, iconSize, alpha)
	return true
}

// directionFromHorizon converts horizon-frame azimuth/altitude to a unit
// direction in the same (x=east/right, y=down, z=toward viewer) frame the
// navball LUT uses.
func directionFromHorizon(azDeg, altDeg float64) (x, y, z float64) {
	az := deg2rad(azDeg)
	alt := deg2rad(altDeg)
	x = math.Sin(az) * math.Cos(alt)
	y = -math.Sin(alt)
	z = math.Cos(az) * math.Cos(alt)
	return
}
