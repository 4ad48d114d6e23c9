// vectorimage.go - minimal SVG rasterizer for navball/crosshair/celestial icons
//
// License: GPLv3 or later

package main

import (
	"encoding/xml"
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/vector"
)

// VectorImage owns a parsed flat-fill vector tree: a short list of shapes,
// each a closed path plus a fill color. Lifetime and invariants mirror
// Font: valid iff parsing succeeded, freed explicitly, never
// outliving its RenderContext.
type VectorImage struct {
	width, height float64
	shapes        []vectorShape
	valid         bool
}

type vectorShape struct {
	path []pathOp
	fill Color
}

type pathOpKind int

const (
	opMoveTo pathOpKind = iota
	opLineTo
	opQuadTo
	opCubeTo
	opClose
)

type pathOp struct {
	kind   pathOpKind
	points [3][2]float64 // user-space (x,y) pairs, meaning depends on kind
}

// ------------------------------------------------------------------------------
// XML shape tree (subset of SVG 1.1 covering flat-filled icon artwork: path,
// rect, circle, ellipse, polygon, nested groups with inherited fill/opacity)
// ------------------------------------------------------------------------------

type svgRoot struct {
	XMLName xml.Name   `xml:"svg"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	ViewBox string      `xml:"viewBox,attr"`
	Groups  []svgGroup  `xml:"g"`
	Paths   []svgPath   `xml:"path"`
	Rects   []svgRect   `xml:"rect"`
	Circles []svgCircle `xml:"circle"`
	Ellipse []svgEllipse `xml:"ellipse"`
	Polys   []svgPoly   `xml:"polygon"`
}

type svgGroup struct {
	Fill    string      `xml:"fill,attr"`
	Opacity string      `xml:"opacity,attr"`
	Groups  []svgGroup  `xml:"g"`
	Paths   []svgPath   `xml:"path"`
	Rects   []svgRect   `xml:"rect"`
	Circles []svgCircle `xml:"circle"`
	Ellipse []svgEllipse `xml:"ellipse"`
	Polys   []svgPoly   `xml:"polygon"`
}

type svgPath struct {
	D       string `xml:"d,attr"`
	Fill    string `xml:"fill,attr"`
	Opacity string `xml:"opacity,attr"`
}

type svgRect struct {
	X       string `xml:"x,attr"`
	Y       string `xml:"y,attr"`
	W       string `xml:"width,attr"`
	H       string `xml:"height,attr"`
	Fill    string `xml:"fill,attr"`
	Opacity string `xml:"opacity,attr"`
}

type svgCircle struct {
	CX      string `xml:"cx,attr"`
	CY      string `xml:"cy,attr"`
	R       string `xml:"r,attr"`
	Fill    string `xml:"fill,attr"`
	Opacity string `xml:"opacity,attr"`
}

type svgEllipse struct {
	CX      string `xml:"cx,attr"`
	CY      string `xml:"cy,attr"`
	RX      string `xml:"rx,attr"`
	RY      string `xml:"ry,attr"`
	Fill    string `xml:"fill,attr"`
	Opacity string `xml:"opacity,attr"`
}

type svgPoly struct {
	Points  string `xml:"points,attr"`
	Fill    string `xml:"fill,attr"`
	Opacity string `xml:"opacity,attr"`
}

// LoadVectorImage parses a vector file at 96 DPI with pixel units, per
// vector-image loading pipeline.
func LoadVectorImage(loader ResourceLoader, path string) (*VectorImage, error) {
	data, err := loader.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Kind: "vector-image", Path: path, Err: err}
	}
	var root svgRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ResourceError{Kind: "vector-image", Path: path, Err: err}
	}

	w, h := svgDimensions(root.Width, root.Height, root.ViewBox)
	if w <= 0 || h <= 0 {
		return nil, &ResourceError{Kind: "vector-image", Path: path, Err: fmt.Errorf("empty dimensions")}
	}

	img := &VectorImage{width: w, height: h, valid: true}
	collectGroupShapes(svgGroup{
		Fill: "#000000", Opacity: "1",
		Paths: root.Paths, Rects: root.Rects, Circles: root.Circles,
		Ellipse: root.Ellipse, Polys: root.Polys, Groups: root.Groups,
	}, Opaque(0, 0, 0), 1.0, &img.shapes)
	return img, nil
}

func svgDimensions(width, height, viewBox string) (float64, float64) {
	w := parseSVGLength(width)
	h := parseSVGLength(height)
	if w > 0 && h > 0 {
		return w, h
	}
	fields := strings.Fields(viewBox)
	if len(fields) == 4 {
		vw, _ := strconv.ParseFloat(fields[2], 64)
		vh, _ := strconv.ParseFloat(fields[3], 64)
		return vw, vh
	}
	return w, h
}

func parseSVGLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func resolveFill(attr string, inherited Color) Color {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return inherited
	}
	if attr == "none" {
		return Transparent
	}
	if strings.HasPrefix(attr, "#") {
		return ParseHex(attr)
	}
	return inherited
}

func resolveOpacity(attr string, inherited float64) float64 {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return inherited
	}
	v, err := strconv.ParseFloat(attr, 64)
	if err != nil {
		return inherited
	}
	return Clamp(v, 0, 1) * inherited
}

func collectGroupShapes(g svgGroup, inheritedFill Color, inheritedOpacity float64, out *[]vectorShape) {
	fill := resolveFill(g.Fill, inheritedFill)
	opacity := resolveOpacity(g.Opacity, inheritedOpacity)

	emit := func(ops []pathOp, localFill string, localOpacity string) {
		shapeFill := resolveFill(localFill, fill)
		shapeOpacity := resolveOpacity(localOpacity, opacity)
		if shapeFill == Transparent || shapeOpacity <= 0 || len(ops) == 0 {
			return
		}
		*out = append(*out, vectorShape{path: ops, fill: shapeFill.WithAlpha(uint8(255 * shapeOpacity))})
	}

	for _, p := range g.Paths {
		emit(parsePathData(p.D), p.Fill, p.Opacity)
	}
	for _, r := range g.Rects {
		emit(rectPath(r), r.Fill, r.Opacity)
	}
	for _, c := range g.Circles {
		emit(circlePath(c), c.Fill, c.Opacity)
	}
	for _, e := range g.Ellipse {
		emit(ellipsePath(e), e.Fill, e.Opacity)
	}
	for _, poly := range g.Polys {
		emit(polygonPath(poly.Points), poly.Fill, poly.Opacity)
	}
	for _, sub := range g.Groups {
		collectGroupShapes(sub, fill, opacity, out)
	}
}

func rectPath(r svgRect) []pathOp {
	x, _ := strconv.ParseFloat(r.X, 64)
	y, _ := strconv.ParseFloat(r.Y, 64)
	w, _ := strconv.ParseFloat(r.W, 64)
	h, _ := strconv.ParseFloat(r.H, 64)
	if w <= 0 || h <= 0 {
		return nil
	}
	return []pathOp{
		{kind: opMoveTo, points: [3][2]float64{{x, y}}},
		{kind: opLineTo, points: [3][2]float64{{x + w, y}}},
		{kind: opLineTo, points: [3][2]float64{{x + w, y + h}}},
		{kind: opLineTo, points: [3][2]float64{{x, y + h}}},
		{kind: opClose},
	}
}

const circleBezierK = 0.5522847498 // 4/3*(sqrt(2)-1), cubic approximation of a quarter circle

func circlePath(c svgCircle) []pathOp {
	cx, _ := strconv.ParseFloat(c.CX, 64)
	cy, _ := strconv.ParseFloat(c.CY, 64)
	r, _ := strconv.ParseFloat(c.R, 64)
	return ellipseOps(cx, cy, r, r)
}

func ellipsePath(e svgEllipse) []pathOp {
	cx, _ := strconv.ParseFloat(e.CX, 64)
	cy, _ := strconv.ParseFloat(e.CY, 64)
	rx, _ := strconv.ParseFloat(e.RX, 64)
	ry, _ := strconv.ParseFloat(e.RY, 64)
	return ellipseOps(cx, cy, rx, ry)
}

func ellipseOps(cx, cy, rx, ry float64) []pathOp {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	k := circleBezierK
	return []pathOp{
		{kind: opMoveTo, points: [3][2]float64{{cx + rx, cy}}},
		{kind: opCubeTo, points: [3][2]float64{{cx + rx, cy + ry*k}, {cx + rx*k, cy + ry}, {cx, cy + ry}}},
		{kind: opCubeTo, points: [3][2]float64{{cx - rx*k, cy + ry}, {cx - rx, cy + ry*k}, {cx - rx, cy}}},
		{kind: opCubeTo, points: [3][2]float64{{cx - rx, cy - ry*k}, {cx - rx*k, cy - ry}, {cx, cy - ry}}},
		{kind: opCubeTo, points: [3][2]float64{{cx + rx*k, cy - ry}, {cx + rx, cy - ry*k}, {cx + rx, cy}}},
		{kind: opClose},
	}
}

func polygonPath(points string) []pathOp {
	fields := strings.FieldsFunc(points, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' || r == '\t' })
	var coords []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		coords = append(coords, v)
	}
	if len(coords) < 6 || len(coords)%2 != 0 {
		return nil
	}
	ops := []pathOp{{kind: opMoveTo, points: [3][2]float64{{coords[0], coords[1]}}}}
	for i := 2; i+1 < len(coords); i += 2 {
		ops = append(ops, pathOp{kind: opLineTo, points: [3][2]float64{{coords[i], coords[i+1]}}})
	}
	ops = append(ops, pathOp{kind: opClose})
	return ops
}

// parsePathData is a minimal SVG path-data tokenizer covering M/m, L/l,
// H/h, V/v, C/c, Q/q and Z/z — enough for flat-icon artwork (arcs are not
// supported; icon sets that need a true circle use <circle>/<ellipse>
// instead, which this parser handles directly).
func parsePathData(d string) []pathOp {
	toks := tokenizePath(d)
	var ops []pathOp
	var cur, start [2]float64
	i := 0
	var cmd byte

	nextNum := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}

	for i < len(toks) {
		if isCommandToken(toks[i]) {
			cmd = toks[i][0]
			i++
		}
		switch cmd {
		case 'M', 'm':
			x, ok1 := nextNum()
			y, ok2 := nextNum()
			if !ok1 || !ok2 {
				return ops
			}
			if cmd == 'm' {
				x, y = cur[0]+x, cur[1]+y
			}
			cur = [2]float64{x, y}
			start = cur
			ops = append(ops, pathOp{kind: opMoveTo, points: [3][2]float64{cur}})
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			x, ok1 := nextNum()
			y, ok2 := nextNum()
			if !ok1 || !ok2 {
				return ops
			}
			if cmd == 'l' {
				x, y = cur[0]+x, cur[1]+y
			}
			cur = [2]float64{x, y}
			ops = append(ops, pathOp{kind: opLineTo, points: [3][2]float64{cur}})
		case 'H', 'h':
			x, ok := nextNum()
			if !ok {
				return ops
			}
			if cmd == 'h' {
				x = cur[0] + x
			}
			cur = [2]float64{x, cur[1]}
			ops = append(ops, pathOp{kind: opLineTo, points: [3][2]float64{cur}})
		case 'V', 'v':
			y, ok := nextNum()
			if !ok {
				return ops
			}
			if cmd == 'v' {
				y = cur[1] + y
			}
			cur = [2]float64{cur[0], y}
			ops = append(ops, pathOp{kind: opLineTo, points: [3][2]float64{cur}})
		case 'C', 'c':
			nums := make([]float64, 6)
			ok := true
			for k := range nums {
				nums[k], ok = nextNum()
				if !ok {
					return ops
				}
			}
			p1 := [2]float64{nums[0], nums[1]}
			p2 := [2]float64{nums[2], nums[3]}
			p3 := [2]float64{nums[4], nums[5]}
			if cmd == 'c' {
				p1 = [2]float64{cur[0] + p1[0], cur[1] + p1[1]}
				p2 = [2]float64{cur[0] + p2[0], cur[1] + p2[1]}
				p3 = [2]float64{cur[0] + p3[0], cur[1] + p3[1]}
			}
			ops = append(ops, pathOp{kind: opCubeTo, points: [3][2]float64{p1, p2, p3}})
			cur = p3
		case 'Q', 'q':
			nums := make([]float64, 4)
			ok := true
			for k := range nums {
				nums[k], ok = nextNum()
				if !ok {
					return ops
				}
			}
			p1 := [2]float64{nums[0], nums[1]}
			p2 := [2]float64{nums[2], nums[3]}
			if cmd == 'q' {
				p1 = [2]float64{cur[0] + p1[0], cur[1] + p1[1]}
				p2 = [2]float64{cur[0] + p2[0], cur[1] + p2[1]}
			}
			ops = append(ops, pathOp{kind: opQuadTo, points: [3][2]float64{p1, p2}})
			cur = p2
		case 'Z', 'z':
			ops = append(ops, pathOp{kind: opClose})
			cur = start
		default:
			return ops
		}
	}
	return ops
}

func isCommandToken(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return strings.ContainsRune("MmLlHhVvCcQqZz", rune(c))
}

func tokenizePath(d string) []string {
	var toks []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case strings.ContainsRune("MmLlHhVvCcQqZz", rune(c)):
			flush()
			toks = append(toks, string(c))
		case c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		case c == '-' && num.Len() > 0 && d[i-1] != 'e' && d[i-1] != 'E':
			flush()
			num.WriteByte(c)
		default:
			num.WriteByte(c)
		}
	}
	flush()
	return toks
}

// Dimensions returns the image's natural pixel size.
func Dimensions(img *VectorImage) (w, h float64) {
	if img == nil || !img.valid {
		return 0, 0
	}
	return img.width, img.height
}

// rasterizeToRGBA renders img into a fresh target_w x target_h RGBA buffer,
// letterboxed by scale = min(targetW/img.w, targetH/img.h), with an extra
// alphaScale multiplier applied to every shape (used by RenderWithAlpha).
func rasterizeToRGBA(img *VectorImage, targetW, targetH int, alphaScale float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	if img == nil || !img.valid || targetW <= 0 || targetH <= 0 {
		return out
	}

	scale := float64(targetW) / img.width
	if s := float64(targetH) / img.height; s < scale {
		scale = s
	}
	offsetX := (float64(targetW) - img.width*scale) / 2
	offsetY := (float64(targetH) - img.height*scale) / 2

	mask := image.NewAlpha(image.Rect(0, 0, targetW, targetH))
	r := vector.NewRasterizer(targetW, targetH)

	for _, shape := range img.shapes {
		r.Reset(targetW, targetH)
		for _, op := range shape.path {
			tx := func(p [2]float64) (float32, float32) {
				return float32(p[0]*scale + offsetX), float32(p[1]*scale + offsetY)
			}
			switch op.kind {
			case opMoveTo:
				x, y := tx(op.points[0])
				r.MoveTo(x, y)
			case opLineTo:
				x, y := tx(op.points[0])
				r.LineTo(x, y)
			case opQuadTo:
				cx, cy := tx(op.points[0])
				x, y := tx(op.points[1])
				r.QuadTo(cx, cy, x, y)
			case opCubeTo:
				cx1, cy1 := tx(op.points[0])
				cx2, cy2 := tx(op.points[1])
				x, y := tx(op.points[2])
				r.CubeTo(cx1, cy1, cx2, cy2, x, y)
			case opClose:
				r.ClosePath()
			}
		}
		clear(mask.Pix)
		r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

		fillColor := shape.fill
		if alphaScale != 1 {
			fillColor = fillColor.ScaleAlpha(uint8(Clamp(alphaScale, 0, 1) * 255))
		}
		for py := 0; py < targetH; py++ {
			for px := 0; px < targetW; px++ {
				coverage := mask.AlphaAt(px, py).A
				if coverage == 0 {
					continue
				}
				src := fillColor.ScaleAlpha(coverage)
				i := out.PixOffset(px, py)
				bg := NewColor(out.Pix[i+3], out.Pix[i], out.Pix[i+1], out.Pix[i+2])
				blended := BlendOver(bg, src)
				out.Pix[i+0] = blended.R()
				out.Pix[i+1] = blended.G()
				out.Pix[i+2] = blended.B()
				out.Pix[i+3] = blended.A()
			}
		}
	}
	return out
}

// RenderVectorImage rasterizes img to a temporary target_w x target_h RGBA
// buffer (letterboxed, scale = min(targetW/img.w, targetH/img.h)) and
// blends each pixel onto fb at (x+i, y+j).
func RenderVectorImage(fb *Framebuffer, img *VectorImage, x, y, targetW, targetH int) {
	if img == nil || !img.valid {
		return
	}
	rgba := rasterizeToRGBA(img, targetW, targetH, 1.0)
	blitRGBA(fb, rgba, x, y)
}

// RenderVectorImageWithAlpha is RenderVectorImage with every rasterized
// pixel's alpha multiplied by alpha before blending. alpha<=0 is a no-op.
func RenderVectorImageWithAlpha(fb *Framebuffer, img *VectorImage, x, y, w, h int, alpha float64) {
	if img == nil || !img.valid || alpha <= 0 {
		return
	}
	rgba := rasterizeToRGBA(img, w, h, alpha)
	blitRGBA(fb, rgba, x, y)
}

func blitRGBA(fb *Framebuffer, rgba *image.RGBA, x, y int) {
	bounds := rgba.Bounds()
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			idx := rgba.PixOffset(i, j)
			a := rgba.Pix[idx+3]
			if a == 0 {
				continue
			}
			c := NewColor(a, rgba.Pix[idx+0], rgba.Pix[idx+1], rgba.Pix[idx+2])
			fb.BlendPixel(x+i, y+j, c)
		}
	}
}

// Free releases the parsed shape tree.
func (img *VectorImage) Free() {
	if img == nil {
		return
	}
	img.shapes = nil
	img.valid = false
}
