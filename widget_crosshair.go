// widget_crosshair.go - crosshair, arms, center dot and speed indicators
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"math"
)

const diagonalScale = 0.7071067811865476 // cos(45 deg)

// RenderCrosshairWidget is widget order position 1.
func RenderCrosshairWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.Crosshair
	if !cfg.Enabled {
		return false
	}

	cx, cy := ctx.Width/2, ctx.Height/2
	if ctx.State.RecOSD.Valid {
		cx += ctx.State.RecOSD.OffsetX
		cy += ctx.State.RecOSD.OffsetY
	}

	changed := false

	if cfg.Circle.Enabled {
		DrawCircleOutline(ctx.FB, Point{cx, cy}, cfg.Circle.Radius, ParseHex(cfg.Circle.ColorHex), float64(cfg.Circle.Thickness))
		changed = true
	}

	if cfg.Cross.Enabled {
		drawCrosshairArms(ctx.FB, cx, cy, cfg)
		changed = true
	}

	if cfg.CenterDot.Enabled {
		DrawFilledCircle(ctx.FB, Point{cx, cy}, cfg.CenterDot.Radius, ParseHex(cfg.CenterDot.ColorHex))
		changed = true
	}

	if renderSpeedIndicators(ctx, cx, cy) {
		changed = true
	}

	return changed
}

func drawCrosshairArms(fb *Framebuffer, cx, cy int, cfg CrosshairConfig) {
	color := ParseHex(cfg.Cross.ColorHex)
	gap := float64(cfg.Cross.Gap)
	end := gap + float64(cfg.Cross.Length)
	thickness := float64(cfg.Cross.Thickness)

	var dirs [4][2]float64
	if cfg.Orientation == "diagonal" {
		dirs = [4][2]float64{
			{diagonalScale, -diagonalScale}, {diagonalScale, diagonalScale},
			{-diagonalScale, diagonalScale}, {-diagonalScale, -diagonalScale},
		}
	} else {
		dirs = [4][2]float64{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	for _, d := range dirs {
		p0 := Point{cx + int(math.Round(d[0]*gap)), cy + int(math.Round(d[1]*gap))}
		p1 := Point{cx + int(math.Round(d[0]*end)), cy + int(math.Round(d[1]*end))}
		DrawLine(fb, p0, p1, color, thickness)
	}
}

func renderSpeedIndicators(ctx *RenderContext, cx, cy int) bool {
	cfg := ctx.Config.SpeedIndicators
	if !cfg.Enabled || !ctx.State.Rotary.Valid || !ctx.State.Rotary.IsMoving {
		return false
	}
	if !ctx.FontSpeed.Valid() {
		return false
	}

	changed := false
	color := ParseHex(cfg.ColorHex)

	if math.Abs(ctx.State.Rotary.AzimuthSpeed) > cfg.Threshold {
		label := fmt.Sprintf("%.1f°/s", ctx.State.Rotary.AzimuthSpeed*cfg.MaxSpeedAzimuth)
		sign := 1.0
		if ctx.State.Rotary.AzimuthSpeed < 0 {
			sign = -1.0
		}
		x := cx + int(sign*60)
		Render(ctx.FB, ctx.FontSpeed, label, x, cy-6, color, cfg.FontSize)
		changed = true
	}
	if math.Abs(ctx.State.Rotary.ElevationSpeed) > cfg.Threshold {
		label := fmt.Sprintf("%.1f°/s", ctx.State.Rotary.ElevationSpeed*cfg.MaxSpeedElevation)
		sign := 1.0
		if ctx.State.Rotary.ElevationSpeed < 0 {
			sign = -1.0
		}
		y := cy - int(sign*60)
		Render(ctx.FB, ctx.FontSpeed, label, cx-10, y, color, cfg.FontSize)
		changed = true
	}
	return changed
}
