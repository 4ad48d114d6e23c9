// widget_variantinfo.go - build/debug panel with live telemetry and a
// sliding sharpness history chart
//
// License: GPLv3 or later

package main

import "fmt"

const moduleBuildID = "osdcompositor-dev"

// enabledFlag renders a widget's enable flag the way the original
// variant_info panel does: "Enabled" or "Disabled", not a bare bool.
func enabledFlag(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

// RenderVariantInfoWidget is widget order position 4.
func RenderVariantInfoWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.VariantInfo
	if !cfg.Enabled || !ctx.FontVariantInfo.Valid() {
		return false
	}

	channelName := "day"
	if ctx.Channel == ChannelThermal {
		channelName = "thermal"
	}
	modeName := "live"
	if ctx.Mode == ModeRecording {
		modeName = "recording"
	}

	lines := []string{
		fmt.Sprintf("%s  %s/%s", moduleBuildID, channelName, modeName),
		fmt.Sprintf("res %dx%d  frame %d", ctx.Width, ctx.Height, ctx.FrameCount),
		fmt.Sprintf("crosshair %s  navball %s  detections %s  roi %s  sam %s  heatmap %s",
			enabledFlag(ctx.Config.Crosshair.Enabled), enabledFlag(ctx.Config.Navball.Enabled),
			enabledFlag(ctx.Config.Detections.Enabled), enabledFlag(ctx.Config.ROI.Enabled),
			enabledFlag(ctx.Config.SAMMask.Enabled), enabledFlag(ctx.Config.SharpnessHeatmap.Enabled)),
	}
	if ctx.State.Compass.Valid {
		lines = append(lines, fmt.Sprintf("az %.1f el %.1f bank %.1f",
			ctx.State.Compass.AzimuthDeg, ctx.State.Compass.ElevationDeg, ctx.State.Compass.BankDeg))
	}
	if ctx.State.CameraDay.Valid {
		lines = append(lines, fmt.Sprintf("focus %.2f zoom %.2f", ctx.State.CameraDay.FocusPos, ctx.State.CameraDay.ZoomPos))
	}
	if ctx.State.SpaceTime.Valid {
		lines = append(lines, fmt.Sprintf("gps %.4f,%.4f", ctx.State.SpaceTime.LatitudeDeg, ctx.State.SpaceTime.LongitudeDeg))
	}

	color := ParseHex(cfg.ColorHex)
	lineHeight := int(cfg.FontSize * 1.3)
	y := cfg.PositionY
	for _, line := range lines {
		Render(ctx.FB, ctx.FontVariantInfo, line, cfg.PositionX, y, color, cfg.FontSize)
		y += lineHeight
	}

	if ctx.State.Sharpness.Valid {
		ctx.VariantInfoHistory.Push(ctx.State.Sharpness.GlobalScore, ctx.State.MonotonicUs)
	}
	if samples := ctx.VariantInfoHistory.Samples(); len(samples) >= 2 {
		chartY := y + 4
		DrawHistoryChart(ctx.FB, samples, cfg.PositionX, chartY, 180, 48, 0, 1,
			color.ScaleAlpha(60), color, color)
	}

	return true
}
