// widget_roi.go - focus/track/zoom/fx region-of-interest boxes
//
// License: GPLv3 or later

package main

// RenderROIWidget is widget order position 7.
func RenderROIWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.ROI
	if !cfg.Enabled || !ctx.State.CV.Valid {
		return false
	}

	changed := false
	changed = drawROIRect(ctx, ctx.State.CV.Focus, "FOCUS", ParseHex(cfg.ColorFocusHex)) || changed
	changed = drawROIRect(ctx, ctx.State.CV.Track, "TRACK", ParseHex(cfg.ColorTrackHex)) || changed
	changed = drawROIRect(ctx, ctx.State.CV.Zoom, "ZOOM", ParseHex(cfg.ColorZoomHex)) || changed
	changed = drawROIRect(ctx, ctx.State.CV.FX, "FX", ParseHex(cfg.ColorFXHex)) || changed
	return changed
}

func drawROIRect(ctx *RenderContext, rect ROIRect, label string, color Color) bool {
	if !rect.Present || rect.Y1 >= rect.Y2 {
		return false
	}
	cfg := ctx.Config.ROI

	x1 := NDCToPixel(rect.X1, ctx.Width)
	y1 := NDCToPixel(rect.Y1, ctx.Height)
	x2 := NDCToPixel(rect.X2, ctx.Width)
	y2 := NDCToPixel(rect.Y2, ctx.Height)

	x, y := int(x1), int(y1)
	w, h := int(x2-x1), int(y2-y1)
	DrawRectOutline(ctx.FB, x, y, w, h, color, float64(cfg.BoxThickness))
	drawLabelPill(ctx, label, x, y, ctx.FontROI, cfg.LabelFontSize, color)
	return true
}
