// widget_autofocus.go - focus/zoom sliders, an independent sharpness
// heatmap instance, and a 30s sharpness history chart
//
// License: GPLv3 or later

package main

const autofocusSliderWidth = 20
const autofocusSliderGap = 30
const autofocusChartHeight = 60

// RenderAutofocusDebugWidget is widget order position 9.
func RenderAutofocusDebugWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.AutofocusDebug
	if !cfg.Enabled {
		return false
	}

	changed := false
	x, y := cfg.PositionX, cfg.PositionY

	if ctx.State.CameraDay.Valid {
		drawSlider(ctx.FB, x, y, cfg.BarHeight, ctx.State.CameraDay.FocusPos, Opaque(0, 200, 255))
		drawSlider(ctx.FB, x+autofocusSliderGap, y, cfg.BarHeight, ctx.State.CameraDay.ZoomPos, Opaque(255, 150, 0))
		changed = true
	}

	heatmapX := x + 2*autofocusSliderGap + 10
	if ctx.State.Sharpness.Valid {
		drawAutofocusHeatmap(ctx, ctx.State.Sharpness.Grid8x8, heatmapX, y, cfg.HeatmapCellSize)
		ctx.AutofocusHistory.Push(ctx.State.Sharpness.GlobalScore, ctx.State.MonotonicUs)
		changed = true
	}

	chartX := heatmapX + heatmapGridDim*cfg.HeatmapCellSize + 10
	if samples := ctx.AutofocusHistory.Samples(); len(samples) >= 2 {
		lineColor := Opaque(0, 255, 150)
		DrawHistoryChart(ctx.FB, samples, chartX, y, cfg.ChartWidth, autofocusChartHeight, 0, 1,
			lineColor.ScaleAlpha(70), lineColor, lineColor)
		changed = true
	}

	return changed
}

func drawSlider(fb *Framebuffer, x, y, height int, value float64, color Color) {
	DrawRectOutline(fb, x, y, autofocusSliderWidth, height, Opaque(120, 120, 120), 1)
	fillHeight := int(Clamp(value, 0, 1) * float64(height))
	DrawRectFilled(fb, x, y+height-fillHeight, autofocusSliderWidth, fillHeight, color)
}

// drawAutofocusHeatmap renders its own min/max-normalized 8x8 grid,
// independent of the sharpness-heatmap widget's own instance.
func drawAutofocusHeatmap(ctx *RenderContext, grid [64]float64, originX, originY, cellSize int) {
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
			DrawRectFilled(ctx.FB, originX+col*cellSize, originY+row*cellSize, cellSize, cellSize, color)
		}
	}
}
