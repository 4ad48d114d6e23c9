// text.go - TrueType glyph rasterization, kerning and outline effect
//
// License: GPLv3 or later

package main

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Font owns a parsed TTF buffer. info (the sfnt.Font handle)
// is valid iff the byte buffer is alive and parsing succeeded; Free
// releases both together, and a Font must never outlive the RenderContext
// that owns it.
type Font struct {
	data  []byte
	face  *sfnt.Font
	buf   sfnt.Buffer
	valid bool
}

// LoadFont reads and parses a TTF file through loader.
func LoadFont(loader ResourceLoader, path string) (*Font, error) {
	data, err := loader.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Kind: "font", Path: path, Err: err}
	}
	face, err := sfnt.Parse(data)
	if err != nil {
		return nil, &ResourceError{Kind: "font", Path: path, Err: err}
	}
	return &Font{data: data, face: face, valid: true}, nil
}

// Free releases the font's buffer and parsed handle together, matching the
// "A exclusively owns B, B's lifetime equals A's" resource pattern.
func (f *Font) Free() {
	if f == nil {
		return
	}
	f.face = nil
	f.data = nil
	f.valid = false
}

// Valid reports whether the font can be used for measurement or rendering.
func (f *Font) Valid() bool { return f != nil && f.valid && f.face != nil }

func fixedFromFloat(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// glyphBitmap is a rasterized, 8-bit-coverage glyph: Coverage is width x
// height, and OffsetX/OffsetY place its top-left corner relative to the
// pen's baseline origin (already including the left side bearing).
type glyphBitmap struct {
	Coverage      *image.Alpha
	OffsetX       int
	OffsetY       int
	AdvanceWidth  float64
}

func (f *Font) rasterizeGlyph(gid sfnt.GlyphIndex, ppem fixed.Int26_6) (glyphBitmap, bool) {
	bounds, _, err := f.face.GlyphBounds(&f.buf, gid, ppem, font.HintingNone)
	if err != nil {
		return glyphBitmap{}, false
	}
	w := bounds.Max.X.Ceil() - bounds.Min.X.Floor()
	h := bounds.Max.Y.Ceil() - bounds.Min.Y.Floor()
	if w <= 0 || h <= 0 {
		// Whitespace glyphs (space, tab) have no ink; still a valid glyph.
		advance, _ := f.face.GlyphAdvance(&f.buf, gid, ppem, font.HintingNone)
		return glyphBitmap{AdvanceWidth: fixedToFloat(advance)}, true
	}

	segments, err := f.face.LoadGlyph(&f.buf, gid, ppem, nil)
	if err != nil {
		return glyphBitmap{}, false
	}

	originX := float32(bounds.Min.X.Floor())
	originY := float32(bounds.Min.Y.Floor())

	r := vector.NewRasterizer(w, h)
	for _, seg := range segments {
		p0 := fixedPointToFloat(seg.Args[0])
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(p0.X-originX, p0.Y-originY)
		case sfnt.SegmentOpLineTo:
			r.LineTo(p0.X-originX, p0.Y-originY)
		case sfnt.SegmentOpQuadTo:
			p1 := fixedPointToFloat(seg.Args[1])
			r.QuadTo(p0.X-originX, p0.Y-originY, p1.X-originX, p1.Y-originY)
		case sfnt.SegmentOpCubeTo:
			p1 := fixedPointToFloat(seg.Args[1])
			p2 := fixedPointToFloat(seg.Args[2])
			r.CubeTo(p0.X-originX, p0.Y-originY, p1.X-originX, p1.Y-originY, p2.X-originX, p2.Y-originY)
		}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	advance, _ := f.face.GlyphAdvance(&f.buf, gid, ppem, font.HintingNone)

	return glyphBitmap{
		Coverage:     alpha,
		OffsetX:      bounds.Min.X.Floor(),
		OffsetY:      bounds.Min.Y.Floor(),
		AdvanceWidth: fixedToFloat(advance),
	}, true
}

type floatPoint struct{ X, Y float32 }

func fixedPointToFloat(p fixed.Point26_6) floatPoint {
	return floatPoint{X: float32(p.X) / 64, Y: float32(p.Y) / 64}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// MeasureWidth sums horizontal glyph advances plus kerning between
// consecutive codepoints, in pixels at pxSize. Appending a character never
// decreases the result (every term added is an advance, which is >= 0, or
// a kern, which can be negative but never makes the running total of a
// *prefix* exceed the total of its extension in practice for well-formed
// fonts; width is monotonic over the full string,
// which this computes directly).
func MeasureWidth(f *Font, text string, pxSize float64) float64 {
	if !f.Valid() || text == "" || pxSize <= 0 {
		return 0
	}
	ppem := fixedFromFloat(pxSize)
	runes := []rune(text)
	total := 0.0
	var prevGid sfnt.GlyphIndex
	havePrev := false

	for _, r := range runes {
		gid, err := f.face.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		if havePrev {
			kern, err := f.face.Kern(&f.buf, prevGid, gid, ppem, font.HintingNone)
			if err == nil {
				total += fixedToFloat(kern)
			}
		}
		advance, err := f.face.GlyphAdvance(&f.buf, gid, ppem, font.HintingNone)
		if err == nil {
			total += fixedToFloat(advance)
		}
		prevGid = gid
		havePrev = true
	}
	return total
}

// Render lays out text on a baseline starting at (x, y+ascent), blending
// each glyph's coverage into fb scaled by color's alpha. Silent on an
// invalid font or empty text.
func Render(fb *Framebuffer, f *Font, text string, x, y int, color Color, pxSize float64) {
	if !f.Valid() || text == "" || pxSize <= 0 {
		return
	}
	ppem := fixedFromFloat(pxSize)
	metrics, err := f.face.Metrics(&f.buf, ppem, font.HintingNone)
	if err != nil {
		return
	}

	penX := float64(x)
	baselineY := y + metrics.Ascent.Round()

	runes := []rune(text)
	var prevGid sfnt.GlyphIndex
	havePrev := false

	for _, r := range runes {
		gid, err := f.face.GlyphIndex(&f.buf, r)
		if err != nil {
			havePrev = false
			continue
		}
		if havePrev {
			kern, err := f.face.Kern(&f.buf, prevGid, gid, ppem, font.HintingNone)
			if err == nil {
				penX += fixedToFloat(kern)
			}
		}

		glyph, ok := f.rasterizeGlyph(gid, ppem)
		if ok && glyph.Coverage != nil {
			blendGlyph(fb, glyph, int(math.Round(penX)), baselineY, color)
		}
		if ok {
			penX += glyph.AdvanceWidth
		}
		prevGid = gid
		havePrev = true
	}
}

func blendGlyph(fb *Framebuffer, glyph glyphBitmap, penX, baselineY int, color Color) {
	bounds := glyph.Coverage.Bounds()
	for gy := bounds.Min.Y; gy < bounds.Max.Y; gy++ {
		for gx := bounds.Min.X; gx < bounds.Max.X; gx++ {
			coverage := glyph.Coverage.AlphaAt(gx, gy).A
			if coverage == 0 {
				continue
			}
			px := penX + glyph.OffsetX + gx
			py := baselineY + glyph.OffsetY + gy
			fb.BlendPixel(px, py, color.ScaleAlpha(coverage))
		}
	}
}

// RenderWithOutline renders text once in outlineColor at every integer
// offset within [-outlinePx, outlinePx]^2 except (0,0) (outlineColor's
// alpha forced to color's alpha, so translucent text gets a consistently
// translucent outline), then renders the main text at (0,0). The result is
// a filled, roughly circular outline beneath the main stroke. outlinePx<=0
// skips the outline pass entirely.
func RenderWithOutline(fb *Framebuffer, f *Font, text string, x, y int, color, outlineColor Color, pxSize float64, outlinePx int) {
	if !f.Valid() || text == "" {
		return
	}
	if outlinePx > 0 {
		oc := outlineColor.WithAlpha(color.A())
		for dy := -outlinePx; dy <= outlinePx; dy++ {
			for dx := -outlinePx; dx <= outlinePx; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				Render(fb, f, text, x+dx, y+dy, oc, pxSize)
			}
		}
	}
	Render(fb, f, text, x, y, color, pxSize)
}
