// spline.go - centripetal Catmull-Rom history chart rendering
//
// Shared by the variant-info and autofocus-debug widgets' sharpness
// history charts.
//
// License: GPLv3 or later

package main

import "math"

// DrawHistoryChart renders samples (time-ordered, x = time-ago, y = value)
// into the originX,originY..+width,+height box: a centripetal Catmull-Rom
// curve through the samples with 8 segments per span, a semi-transparent
// fill beneath it down to the box floor, and a small dot at each raw
// sample. valueMin/valueMax set the vertical scale.
func DrawHistoryChart(fb *Framebuffer, samples []sharpnessSample, originX, originY, width, height int, valueMin, valueMax float64, fillColor, lineColor, dotColor Color) {
	if len(samples) < 2 {
		return
	}

	newest := samples[len(samples)-1].MonotonicUs
	toPoint := func(s sharpnessSample) (float64, float64) {
		age := float64(newest-s.MonotonicUs) / float64(historyWindowUs)
		px := float64(originX) + float64(width)*(1-age)
		t := InverseLerp(valueMin, valueMax, s.Value)
		py := float64(originY+height) - t*float64(height)
		return px, py
	}

	points := make([][2]float64, len(samples))
	for i, s := range samples {
		x, y := toPoint(s)
		points[i] = [2]float64{x, y}
	}

	const segmentsPerSpan = 8
	var curve []Point
	for i := 0; i < len(points)-1; i++ {
		p0 := points[maxInt(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(i+2, len(points)-1)]
		for s := 0; s < segmentsPerSpan; s++ {
			t := float64(s) / segmentsPerSpan
			x, y := centripetalCatmullRom(p0, p1, p2, p3, t)
			curve = append(curve, Point{int(math.Round(x)), int(math.Round(y))})
		}
	}
	lastX, lastY := points[len(points)-1][0], points[len(points)-1][1]
	curve = append(curve, Point{int(math.Round(lastX)), int(math.Round(lastY))})

	floor := originY + height
	for _, p := range curve {
		if p.Y < floor {
			DrawLine(fb, Point{p.X, p.Y}, Point{p.X, floor}, fillColor, 1)
		}
	}
	for i := 0; i+1 < len(curve); i++ {
		DrawLine(fb, curve[i], curve[i+1], lineColor, 1.5)
	}
	for _, p := range points {
		DrawFilledCircle(fb, Point{int(math.Round(p[0])), int(math.Round(p[1]))}, 2, dotColor)
	}
}

func centripetalCatmullRom(p0, p1, p2, p3 [2]float64, t float64) (float64, float64) {
	const alpha = 0.5 // centripetal parametrization

	knotDelta := func(a, b [2]float64) float64 {
		dx, dy := b[0]-a[0], b[1]-a[1]
		return math.Pow(dx*dx+dy*dy, alpha/2)
	}

	t0 := 0.0
	t1 := t0 + knotDelta(p0, p1)
	t2 := t1 + knotDelta(p1, p2)
	t3 := t2 + knotDelta(p2, p3)
	if t1 == t0 {
		t1 = t0 + epsilon
	}
	if t2 == t1 {
		t2 = t1 + epsilon
	}
	if t3 == t2 {
		t3 = t2 + epsilon
	}

	tt := Lerp(t1, t2, t)

	lerpPt := func(a, b [2]float64, ta, tb, tv float64) [2]float64 {
		f := (tv - ta) / (tb - ta)
		return [2]float64{Lerp(a[0], b[0], f), Lerp(a[1], b[1], f)}
	}

	a1 := lerpPt(p0, p1, t0, t1, tt)
	a2 := lerpPt(p1, p2, t1, t2, tt)
	a3 := lerpPt(p2, p3, t2, t3, tt)

	b1 := lerpPt(a1, a2, t0, t2, tt)
	b2 := lerpPt(a2, a3, t1, t3, tt)

	c := lerpPt(b1, b2, t1, t2, tt)
	return c[0], c[1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
