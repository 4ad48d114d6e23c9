// navball.go - rotated textured sphere widget support: skin loading, the
// rotation LUT and 16.16 fixed-point texture sampling
//
// License: GPLv3 or later

package main

import (
	"bytes"
	"image"
	"image/png"
	"math"
)

// navballLUTEntry is one precomputed sample point on the navball disc: the
// unrotated 3D sphere direction at pixel (i,j), stored once at init so the
// hot render path only applies the current-frame rotation and a fixed-
// point texture lookup.
type navballLUTEntry struct {
	X, Y, Z float64 // unit sphere direction, unrotated
	Inside  bool
}

// NavballResources holds the navball's init-time-acquired, render-time-
// immutable resources: the decoded skin texture, kept at the PNG's own
// size, and the per-pixel direction LUT, sized to the configured disc
// diameter and rebuilt only if that size changes (it does not, in this
// module — size is read once at init from configuration).
type NavballResources struct {
	texture *image.RGBA
	texW    int
	texH    int
	lut     []navballLUTEntry
	size    int
}

// LoadNavballResources decodes the named skin PNG and precomputes the
// direction LUT for a disc of the given pixel size.
func LoadNavballResources(loader ResourceLoader, skinName string, size int) (*NavballResources, error) {
	path := resolveNavballSkin(skinName)
	data, err := loader.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Kind: "navball-skin", Path: path, Err: err}
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ResourceError{Kind: "navball-skin", Path: path, Err: err}
	}
	rgba := toRGBA(img)

	res := &NavballResources{
		texture: rgba,
		texW:    rgba.Bounds().Dx(),
		texH:    rgba.Bounds().Dy(),
		size:    size,
	}
	res.buildLUT()
	return res, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// buildLUT precomputes, for each pixel in the disc of radius size/2, the
// unrotated unit sphere direction it maps to under an orthographic
// sphere projection. Pixels outside the disc are marked !Inside.
func (res *NavballResources) buildLUT() {
	r := float64(res.size) / 2
	res.lut = make([]navballLUTEntry, res.size*res.size)
	for j := 0; j < res.size; j++ {
		for i := 0; i < res.size; i++ {
			x := float64(i) - r + 0.5
			y := float64(j) - r + 0.5
			d2 := x*x + y*y
			idx := j*res.size + i
			if d2 > r*r {
				res.lut[idx] = navballLUTEntry{Inside: false}
				continue
			}
			z := math.Sqrt(r*r - d2)
			res.lut[idx] = navballLUTEntry{X: x / r, Y: y / r, Z: z / r, Inside: true}
		}
	}
}

// Free releases the decoded texture and LUT.
func (res *NavballResources) Free() {
	if res == nil {
		return
	}
	res.texture = nil
	res.lut = nil
}

// rotateYawPitchRoll applies R_yaw(az) * R_pitch(el) * R_roll(bank) to a
// unit direction, matching the yaw-then-pitch-then-roll composition
// order.
func rotateYawPitchRoll(x, y, z, azDeg, elDeg, bankDeg float64) (float64, float64, float64) {
	az := azDeg * math.Pi / 180
	el := elDeg * math.Pi / 180
	bank := bankDeg * math.Pi / 180

	// Roll around Z (view axis).
	cb, sb := math.Cos(bank), math.Sin(bank)
	x1 := x*cb - y*sb
	y1 := x*sb + y*cb
	z1 := z

	// Pitch around X.
	ce, se := math.Cos(el), math.Sin(el)
	x2 := x1
	y2 := y1*ce - z1*se
	z2 := y1*se + z1*ce

	// Yaw around Y.
	ca, sa := math.Cos(az), math.Sin(az)
	x3 := x2*ca + z2*sa
	y3 := y2
	z3 := -x2*sa + z2*ca

	return x3, y3, z3
}

// directionToUV converts a rotated unit sphere direction to equirectangular
// texture UV: longitude from atan2(x,z), latitude from asin(y).
func directionToUV(x, y, z float64) (u, v float64) {
	lon := math.Atan2(x, z)
	lat := math.Asin(clampUnit(y))
	u = (lon/math.Pi + 1) / 2
	v = (lat/(math.Pi/2) + 1) / 2
	return u, v
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

const fixedShift16 = 16
const fixedOne16 = 1 << fixedShift16

// sampleTexture nearest-neighbor samples the texture at UV: each
// coordinate is converted once to 16.16 fixed point and the texel index is
// its integer part.
func (res *NavballResources) sampleTexture(u, v float64) Color {
	ufix := int64(u * float64(res.texW) * fixedOne16)
	vfix := int64(v * float64(res.texH) * fixedOne16)
	tx := int(ufix >> fixedShift16)
	ty := int(vfix >> fixedShift16)
	tx = wrapInt(tx, res.texW)
	ty = clampInt0(ty, res.texH-1)

	i := res.texture.PixOffset(tx, ty)
	p := res.texture.Pix
	return Opaque(p[i], p[i+1], p[i+2])
}

func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clampInt0(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// RenderNavball draws the rotated sphere for the current orientation into
// fb at the configured disc position.
func RenderNavball(fb *Framebuffer, res *NavballResources, cx, cy int, azDeg, elDeg, bankDeg float64) {
	if res == nil || res.texture == nil {
		return
	}
	r := res.size / 2
	for j := 0; j < res.size; j++ {
		for i := 0; i < res.size; i++ {
			entry := res.lut[j*res.size+i]
			if !entry.Inside {
				continue
			}
			rx, ry, rz := rotateYawPitchRoll(entry.X, entry.Y, entry.Z, azDeg, elDeg, bankDeg)
			u, v := directionToUV(rx, ry, rz)
			color := res.sampleTexture(u, v)
			fb.BlendPixel(cx-r+i, cy-r+j, color)
		}
	}
}
