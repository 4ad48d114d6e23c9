// widget_heatmap.go - 8x8 min/max-normalized sharpness grid
//
// License: GPLv3 or later

package main

import "fmt"

const heatmapGridDim = 8
const heatmapAlpha = 0.78

// RenderHeatmapWidget is widget order position 5.
func RenderHeatmapWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.SharpnessHeatmap
	if !cfg.Enabled || !ctx.State.Sharpness.Valid {
		return false
	}

	grid := ctx.State.Sharpness.Grid8x8
	minV, maxV := grid[0], grid[0]
	for _, v := range grid {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	for row := 0; row < heatmapGridDim; row++ {
		for col := 0; col < heatmapGridDim; col++ {
			v := grid[row*heatmapGridDim+col]
			t := InverseLerp(minV, maxV, v)
			color := heatmapRamp(t).WithAlpha(uint8(255 * heatmapAlpha))
			x := cfg.PositionX + col*cfg.CellSize
			y := cfg.PositionY + row*cfg.CellSize
			DrawRectFilled(ctx.FB, x, y, cfg.CellSize, cfg.CellSize, color)
		}
	}

	if cfg.ShowLabel && ctx.FontHeatmap.Valid() {
		label := fmt.Sprintf("%.3f", ctx.State.Sharpness.GlobalScore)
		Render(ctx.FB, ctx.FontHeatmap, label, cfg.PositionX, cfg.PositionY-int(cfg.LabelFontSize)-2,
			Opaque(255, 255, 255), cfg.LabelFontSize)
	}

	return true
}

// heatmapRamp maps t in [0,1] to a blue->green->red piecewise-linear ramp.
func heatmapRamp(t float64) Color {
	t = Clamp(t, 0, 1)
	switch {
	case t < 0.5:
		localT := t / 0.5
		r := uint8(0)
		g := uint8(Lerp(0, 255, localT))
		b := uint8(Lerp(255, 0, localT))
		return Opaque(r, g, b)
	default:
		localT := (t - 0.5) / 0.5
		r := uint8(Lerp(0, 255, localT))
		g := uint8(Lerp(255, 0, localT))
		b := uint8(0)
		return Opaque(r, g, b)
	}
}
