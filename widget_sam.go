// widget_sam.go - SAM tracking box, mask overlay and centroid markers
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"math"
)

// RenderSAMWidget is widget order position 8.
func RenderSAMWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.SAMMask
	sam := ctx.State.SAM
	if !cfg.Enabled || !sam.Valid || sam.Status != DetectionStatusOK || sam.TrackState == SAMStateIdle {
		return false
	}

	color := ParseHex(cfg.ColorHex)
	if cfg.PerStateColor {
		color = samStateColor(sam.TrackState)
	}

	x1 := NDCToPixel(sam.BoxX1, ctx.Width)
	y1 := NDCToPixel(sam.BoxY1, ctx.Height)
	x2 := NDCToPixel(sam.BoxX2, ctx.Width)
	y2 := NDCToPixel(sam.BoxY2, ctx.Height)
	if y1 < y2 {
		DrawRectOutline(ctx.FB, int(x1), int(y1), int(x2-x1), int(y2-y1), color, float64(cfg.BoxThickness))
	}

	if cfg.MaskEnabled && sam.Mask != nil {
		renderSAMMask(ctx, sam.Mask, cfg.MaskAlpha, color)
	}

	cx := int(NDCToPixel(sam.CentroidX, ctx.Width))
	cy := int(NDCToPixel(sam.CentroidY, ctx.Height))
	DrawLine(ctx.FB, Point{cx - cfg.CentroidRadius, cy}, Point{cx + cfg.CentroidRadius, cy}, color, 1)
	DrawLine(ctx.FB, Point{cx, cy - cfg.CentroidRadius}, Point{cx, cy + cfg.CentroidRadius}, color, 1)

	if sam.HasPredicted && (sam.PredictedCentroidX != sam.CentroidX || sam.PredictedCentroidY != sam.CentroidY) {
		px := int(NDCToPixel(sam.PredictedCentroidX, ctx.Width))
		py := int(NDCToPixel(sam.PredictedCentroidY, ctx.Height))
		const markerR = 4
		DrawLine(ctx.FB, Point{px - markerR, py - markerR}, Point{px + markerR, py + markerR}, color, 1)
		DrawLine(ctx.FB, Point{px - markerR, py + markerR}, Point{px + markerR, py - markerR}, color, 1)
	}

	label := fmt.Sprintf("%s %.0f%%", samStateName(sam.TrackState), math.Round(sam.Confidence*100))
	drawLabelPill(ctx, label, int(x1), int(y1), ctx.FontSAM, cfg.LabelFontSize, color)

	if sam.TrackState == SAMStateLost || sam.TrackState == SAMStateOccluded {
		lostLabel := fmt.Sprintf("Lost: %d", sam.LostFrames)
		width := int(MeasureWidth(ctx.FontSAM, lostLabel, cfg.LabelFontSize)) + 8
		drawLabelPill(ctx, lostLabel, int(x2)-width, int(y1), ctx.FontSAM, cfg.LabelFontSize, color)
	}

	return true
}

func samStateColor(state SAMTrackState) Color {
	switch state {
	case SAMStateTracking:
		return Opaque(0, 255, 0)
	case SAMStateOccluded:
		return Opaque(255, 255, 0)
	case SAMStateStarting:
		return Opaque(0, 255, 255)
	case SAMStateLost:
		return Opaque(255, 0, 0)
	default:
		return Opaque(255, 255, 255)
	}
}

func samStateName(state SAMTrackState) string {
	switch state {
	case SAMStateStarting:
		return "STARTING"
	case SAMStateTracking:
		return "TRACKING"
	case SAMStateOccluded:
		return "OCCLUDED"
	case SAMStateLost:
		return "LOST"
	default:
		return "IDLE"
	}
}

// renderSAMMask blends the decoded 256x256 mask, scaled 2x, over a 512x512
// center-crop region of the frame.
func renderSAMMask(ctx *RenderContext, mask *RLEMask, alpha float64, color Color) {
	originX := (ctx.Width - 512) / 2
	originY := (ctx.Height - 512) / 2
	blended := color.ScaleAlpha(uint8(Clamp(alpha, 0, 1) * 255))

	for my := 0; my < rleMaskDim; my++ {
		if !rowHasAny(mask, my) {
			continue
		}
		for mx := 0; mx < rleMaskDim; mx++ {
			if !mask.At(mx, my) {
				continue
			}
			px := originX + mx*2
			py := originY + my*2
			DrawRectFilled(ctx.FB, px, py, 2, 2, blended)
		}
	}
}

func rowHasAny(mask *RLEMask, y int) bool {
	for x := 0; x < rleMaskDim; x++ {
		if mask.At(x, y) {
			return true
		}
	}
	return false
}
