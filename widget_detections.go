// widget_detections.go - YOLO detection boxes and labels
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"math"
)

// classPalette is the 8-color cycle indexed by classId mod 8.
var classPalette = [8]Color{
	Opaque(230, 25, 75), Opaque(60, 180, 75), Opaque(255, 225, 25), Opaque(0, 130, 200),
	Opaque(245, 130, 48), Opaque(145, 30, 180), Opaque(70, 240, 240), Opaque(240, 50, 230),
}

// cocoClassNames is a short lookup for the coco label text; classes beyond
// this table print their numeric id.
var cocoClassNames = map[int]string{
	0: "person", 1: "bicycle", 2: "car", 3: "motorcycle", 4: "airplane",
	5: "bus", 6: "train", 7: "truck", 8: "boat",
}

func cocoClassName(id int) string {
	if name, ok := cocoClassNames[id]; ok {
		return name
	}
	return fmt.Sprintf("class%d", id)
}

// RenderDetectionsWidget is widget order position 6.
func RenderDetectionsWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.Detections
	if !cfg.Enabled || !ctx.State.Detections.Valid || ctx.State.Detections.Status != DetectionStatusOK {
		return false
	}

	changed := false
	singleColor := ParseHex(cfg.ColorHex)

	for _, d := range ctx.State.Detections.Items {
		if d.Confidence < cfg.MinConfidence {
			continue
		}
		x1 := NDCToPixel(d.X1, ctx.Width)
		y1 := NDCToPixel(d.Y1, ctx.Height)
		x2 := NDCToPixel(d.X2, ctx.Width)
		y2 := NDCToPixel(d.Y2, ctx.Height)
		if y1 >= y2 {
			continue
		}

		color := singleColor
		if cfg.PerClassColor {
			color = classPalette[((d.ClassID%8)+8)%8]
		}

		x, y := int(x1), int(y1)
		w, h := int(x2-x1), int(y2-y1)
		DrawRectOutline(ctx.FB, x, y, w, h, color, float64(cfg.BoxThickness))

		label := fmt.Sprintf("%s %.0f%%", cocoClassName(d.ClassID), math.Round(d.Confidence*100))
		drawLabelPill(ctx, label, x, y, ctx.FontDetections, cfg.LabelFontSize, color)
		changed = true
	}
	return changed
}

// drawLabelPill draws a dark semi-transparent pill containing text, placed
// above (boxY, boxX) unless that would clip the top of the frame, in which
// case it's placed below.
func drawLabelPill(ctx *RenderContext, text string, boxX, boxY int, font *Font, fontSize float64, textColor Color) {
	if !font.Valid() {
		return
	}
	width := int(MeasureWidth(font, text, fontSize)) + 8
	height := int(fontSize) + 6

	pillY := boxY - height - 2
	if pillY < 0 {
		pillY = boxY + 2
	}

	DrawRectFilled(ctx.FB, boxX, pillY, width, height, Opaque(0, 0, 0).WithAlpha(180))
	Render(ctx.FB, font, text, boxX+4, pillY+3, textColor, fontSize)
}
