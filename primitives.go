// primitives.go - 2D rasterization primitives: lines, circles, rectangles
//
// License: GPLv3 or later

package main

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// DrawLine draws a line from p0 to p1 using Bresenham traversal. At each
// traversed pixel a square stamp of side thickness (rounded, minimum 1) is
// blended, centered on that pixel. p0==p1 stamps once and returns: this is
// the documented degenerate case, not an error.
func DrawLine(fb *Framebuffer, p0, p1 Point, color Color, thickness float64) {
	side := int(math.Round(thickness))
	if side < 1 {
		side = 1
	}
	lo := -(side - 1) / 2
	hi := lo + side - 1

	stamp := func(cx, cy int) {
		for dy := lo; dy <= hi; dy++ {
			for dx := lo; dx <= hi; dx++ {
				fb.BlendPixel(cx+dx, cy+dy, color)
			}
		}
	}

	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx := sign(p1.X - p0.X)
	sy := sign(p1.Y - p0.Y)
	err := dx + dy

	x, y := p0.X, p0.Y
	for {
		stamp(x, y)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawFilledCircle fills the disc of radius r centered at c with color
// using a naive x^2+y^2<=r^2 sweep over the bounding box. r<=0 draws at
// most the center pixel (r==0 stamps it; r<0 draws nothing).
func DrawFilledCircle(fb *Framebuffer, c Point, r int, color Color) {
	if r < 0 {
		return
	}
	if r == 0 {
		fb.BlendPixel(c.X, c.Y, color)
		return
	}
	r2 := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r2 {
				fb.BlendPixel(c.X+x, c.Y+y, color)
			}
		}
	}
}

// DrawCircleOutline draws an annulus of the given thickness around radius r,
// sweeping rInner^2..rOuter^2 with rInner=max(0, r-thickness/2).
func DrawCircleOutline(fb *Framebuffer, c Point, r int, color Color, thickness float64) {
	if r <= 0 {
		return
	}
	rOuter := float64(r) + thickness/2
	rInner := float64(r) - thickness/2
	if rInner < 0 {
		rInner = 0
	}
	outer2 := rOuter * rOuter
	inner2 := rInner * rInner
	bound := int(math.Ceil(rOuter))

	for y := -bound; y <= bound; y++ {
		for x := -bound; x <= bound; x++ {
			d2 := float64(x*x + y*y)
			if d2 <= outer2 && d2 >= inner2 {
				fb.BlendPixel(c.X+x, c.Y+y, color)
			}
		}
	}
}

// DrawRectFilled fills the w x h rectangle with top-left (x,y). A
// non-positive w or h is skipped (spec boundary behaviour).
func DrawRectFilled(fb *Framebuffer, x, y, w, h int, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			fb.BlendPixel(xx, yy, color)
		}
	}
}

// DrawRectOutline draws a thickness-pixel border around the w x h
// rectangle with top-left (x,y), decomposed into four filled bars: top and
// bottom run the full width, left and right are inset so the four bars
// never blend the same corner pixel twice.
func DrawRectOutline(fb *Framebuffer, x, y, w, h int, color Color, thickness float64) {
	if w <= 0 || h <= 0 {
		return
	}
	t := int(math.Round(thickness))
	if t < 1 {
		t = 1
	}
	if t*2 > h {
		t = h / 2
		if t < 1 {
			t = 1
		}
	}

	DrawRectFilled(fb, x, y, w, t, color)          // top
	DrawRectFilled(fb, x, y+h-t, w, t, color)       // bottom
	DrawRectFilled(fb, x, y+t, t, h-2*t, color)      // left, corners excluded
	DrawRectFilled(fb, x+w-t, y+t, t, h-2*t, color) // right, corners excluded
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
