// framebuffer.go - fixed-size ARGB pixel plane with bounds-checked access
//
// License: GPLv3 or later

package main

// ------------------------------------------------------------------------------
// Pixel Layout Constants
// ------------------------------------------------------------------------------
const (
	BYTES_PER_PIXEL = 4 // one framebuffer pixel: R,G,B,A in that memory order

	PIXEL_OFFSET_R = 0
	PIXEL_OFFSET_G = 1
	PIXEL_OFFSET_B = 2
	PIXEL_OFFSET_A = 3
)

// Framebuffer is a contiguous W*H plane of pixels addressed as idx = y*W + x,
// stored in [R,G,B,A] byte order. It never allocates its own
// backing array implicitly at access time: Init attaches a caller-provided
// region (or NewFramebuffer allocates one), and every public accessor is
// bounds-checked so a misbehaving widget cannot corrupt adjacent memory.
type Framebuffer struct {
	pixels []byte
	width  int
	height int
	stride int
}

// NewFramebuffer allocates an owned W*H pixel plane.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Init(make([]byte, width*height*BYTES_PER_PIXEL), width, height)
	return fb
}

// Init attaches buffer as the pixel storage for a W*H framebuffer. buffer
// must be at least width*height*BYTES_PER_PIXEL bytes; stride is always
// width*BYTES_PER_PIXEL (no row padding).
func (fb *Framebuffer) Init(buffer []byte, width, height int) {
	fb.pixels = buffer
	fb.width = width
	fb.height = height
	fb.stride = width * BYTES_PER_PIXEL
}

// Width returns the framebuffer's fixed pixel width.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer's fixed pixel height.
func (fb *Framebuffer) Height() int { return fb.height }

// Bytes exposes the raw pixel storage, e.g. for handing to a display
// backend or exporting across the module ABI. Callers must not resize it.
func (fb *Framebuffer) Bytes() []byte { return fb.pixels }

// InBounds reports whether (x,y) addresses a real pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

func (fb *Framebuffer) offset(x, y int) int {
	return y*fb.stride + x*BYTES_PER_PIXEL
}

// Clear fills the entire framebuffer with color. A fully transparent black
// clear takes the memset fast path instead of a per-pixel store loop.
func (fb *Framebuffer) Clear(color Color) {
	if color == Transparent {
		clear(fb.pixels)
		return
	}
	r, g, b, a := color.R(), color.G(), color.B(), color.A()
	for i := 0; i+BYTES_PER_PIXEL <= len(fb.pixels); i += BYTES_PER_PIXEL {
		fb.pixels[i+PIXEL_OFFSET_R] = r
		fb.pixels[i+PIXEL_OFFSET_G] = g
		fb.pixels[i+PIXEL_OFFSET_B] = b
		fb.pixels[i+PIXEL_OFFSET_A] = a
	}
}

// GetPixel reads the pixel at (x,y). Out-of-bounds reads return transparent
// black rather than panicking or wrapping.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return Transparent
	}
	i := fb.offset(x, y)
	return NewColor(fb.pixels[i+PIXEL_OFFSET_A], fb.pixels[i+PIXEL_OFFSET_R], fb.pixels[i+PIXEL_OFFSET_G], fb.pixels[i+PIXEL_OFFSET_B])
}

// SetPixel stamps color at (x,y) with no blending. Out-of-bounds writes are
// a silent no-op.
func (fb *Framebuffer) SetPixel(x, y int, color Color) {
	if !fb.InBounds(x, y) {
		return
	}
	i := fb.offset(x, y)
	fb.pixels[i+PIXEL_OFFSET_R] = color.R()
	fb.pixels[i+PIXEL_OFFSET_G] = color.G()
	fb.pixels[i+PIXEL_OFFSET_B] = color.B()
	fb.pixels[i+PIXEL_OFFSET_A] = color.A()
}

// BlendPixel composes color over the existing pixel at (x,y) using
// Porter-Duff "over" (color.go). Out-of-bounds writes are a silent no-op.
// This is the only write path primitives, text and vector-image rendering
// use, so every non-clear write goes through a blend by construction.
func (fb *Framebuffer) BlendPixel(x, y int, color Color) {
	if !fb.InBounds(x, y) {
		return
	}
	if color.A() == ALPHA_TRANSPARENT {
		return
	}
	fb.SetPixel(x, y, BlendOver(fb.GetPixel(x, y), color))
}
