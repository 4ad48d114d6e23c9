// vectorimage_test.go - minimal SVG parser and dimension/letterbox math
//
// License: GPLv3 or later

package main

import "testing"

func TestLoadVectorImageRectAndCircle(t *testing.T) {
	svg := `<svg width="100" height="50">
		<rect x="0" y="0" width="10" height="10" fill="#FF0000"/>
		<circle cx="5" cy="5" r="3" fill="#00FF00"/>
	</svg>`
	loader := mapLoader{"icon.svg": []byte(svg)}
	img, err := LoadVectorImage(loader, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := Dimensions(img)
	if w != 100 || h != 50 {
		t.Fatalf("Dimensions() = %v,%v want 100,50", w, h)
	}
	if len(img.shapes) != 2 {
		t.Fatalf("expected 2 shapes (rect+circle), got %d", len(img.shapes))
	}
}

func TestLoadVectorImageMissingDimensionsIsError(t *testing.T) {
	loader := mapLoader{"icon.svg": []byte(`<svg></svg>`)}
	if _, err := LoadVectorImage(loader, "icon.svg"); err == nil {
		t.Fatalf("expected an error for an svg with no usable width/height/viewBox")
	}
}

func TestLoadVectorImageViewBoxFallback(t *testing.T) {
	loader := mapLoader{"icon.svg": []byte(`<svg viewBox="0 0 64 32"></svg>`)}
	img, err := LoadVectorImage(loader, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := Dimensions(img)
	if w != 64 || h != 32 {
		t.Fatalf("Dimensions() = %v,%v want 64,32 from viewBox", w, h)
	}
}

func TestLoadVectorImageMissingFile(t *testing.T) {
	if _, err := LoadVectorImage(mapLoader{}, "nope.svg"); err == nil {
		t.Fatalf("expected an error for a missing vector image file")
	}
}

func TestGroupOpacityInheritance(t *testing.T) {
	svg := `<svg width="10" height="10">
		<g fill="#0000FF" opacity="0.5">
			<rect x="0" y="0" width="5" height="5"/>
		</g>
	</svg>`
	loader := mapLoader{"icon.svg": []byte(svg)}
	img, err := LoadVectorImage(loader, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img.shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(img.shapes))
	}
	if img.shapes[0].fill.A() != 127 {
		t.Fatalf("expected group opacity 0.5 to scale the inherited fill's alpha to ~127, got %d", img.shapes[0].fill.A())
	}
	if img.shapes[0].fill.B() != 255 {
		t.Fatalf("expected the rect to inherit the group's blue fill")
	}
}

func TestFillNoneIsSkipped(t *testing.T) {
	svg := `<svg width="10" height="10"><rect x="0" y="0" width="5" height="5" fill="none"/></svg>`
	loader := mapLoader{"icon.svg": []byte(svg)}
	img, err := LoadVectorImage(loader, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img.shapes) != 0 {
		t.Fatalf("fill=none shapes should not be emitted, got %d shapes", len(img.shapes))
	}
}

func TestPolygonPathRequiresThreePoints(t *testing.T) {
	if ops := polygonPath("0,0 1,1"); ops != nil {
		t.Fatalf("a 2-point polygon should be rejected, got %v", ops)
	}
	ops := polygonPath("0,0 10,0 5,10")
	if len(ops) != 4 { // move + 2 lines + close
		t.Fatalf("expected 4 path ops for a triangle, got %d", len(ops))
	}
}

func TestParsePathDataRelativeLineTo(t *testing.T) {
	ops := parsePathData("M0,0 l10,5 Z")
	if len(ops) != 3 {
		t.Fatalf("expected move+line+close, got %d ops", len(ops))
	}
	if ops[1].kind != opLineTo || ops[1].points[0] != [2]float64{10, 5} {
		t.Fatalf("relative lineto should be resolved against the current point: %+v", ops[1])
	}
}

func TestRectPathSkipsNonPositiveDims(t *testing.T) {
	r := svgRect{X: "0", Y: "0", W: "0", H: "5"}
	if ops := rectPath(r); ops != nil {
		t.Fatalf("a zero-width rect should produce no path ops")
	}
}

func TestDimensionsNilImage(t *testing.T) {
	w, h := Dimensions(nil)
	if w != 0 || h != 0 {
		t.Fatalf("Dimensions(nil) should be 0,0, got %v,%v", w, h)
	}
}

func TestRenderVectorImageInvalidIsNoop(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	RenderVectorImage(fb, nil, 0, 0, 10, 10)
	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("rendering a nil vector image should leave the framebuffer untouched")
		}
	}
}

func TestRenderVectorImageWithAlphaZeroIsNoop(t *testing.T) {
	svg := `<svg width="10" height="10"><rect x="0" y="0" width="10" height="10" fill="#FF0000"/></svg>`
	img, err := LoadVectorImage(mapLoader{"icon.svg": []byte(svg)}, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb := NewFramebuffer(20, 20)
	RenderVectorImageWithAlpha(fb, img, 0, 0, 10, 10, 0)
	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("alpha<=0 should be a no-op")
		}
	}
}

func TestRenderVectorImageBlitsIntoFramebuffer(t *testing.T) {
	svg := `<svg width="4" height="4"><rect x="0" y="0" width="4" height="4" fill="#FF0000"/></svg>`
	img, err := LoadVectorImage(mapLoader{"icon.svg": []byte(svg)}, "icon.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb := NewFramebuffer(20, 20)
	RenderVectorImage(fb, img, 2, 2, 4, 4)
	if fb.GetPixel(4, 4).A() == 0 {
		t.Fatalf("expected the filled rect's interior to be blended into the framebuffer")
	}
}
