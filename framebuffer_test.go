// framebuffer_test.go - bounds-checked pixel access and clear behaviour
//
// License: GPLv3 or later

package main

import "testing"

func TestFramebufferSetGetInBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	c := Opaque(10, 20, 30)
	fb.SetPixel(1, 1, c)
	if got := fb.GetPixel(1, 1); got != c {
		t.Fatalf("GetPixel after SetPixel = %08x, want %08x", uint32(got), uint32(c))
	}
}

func TestFramebufferOutOfBoundsReadIsTransparent(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	if got := fb.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-bounds read = %08x, want transparent", uint32(got))
	}
	if got := fb.GetPixel(4, 0); got != Transparent {
		t.Errorf("out-of-bounds read = %08x, want transparent", uint32(got))
	}
}

func TestFramebufferOutOfBoundsWriteIsNoop(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	before := make([]byte, len(fb.Bytes()))
	copy(before, fb.Bytes())
	fb.SetPixel(10, 10, Opaque(1, 2, 3))
	fb.BlendPixel(-5, -5, Opaque(1, 2, 3))
	if string(before) != string(fb.Bytes()) {
		t.Fatalf("out-of-bounds writes mutated the buffer")
	}
}

func TestFramebufferInBounds(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true}, {2, 2, true}, {3, 0, false}, {0, 3, false}, {-1, 0, false},
	}
	for _, tc := range cases {
		if got := fb.InBounds(tc.x, tc.y); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFramebufferClearTransparentFastPath(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(0, 0, Opaque(9, 9, 9))
	fb.Clear(Transparent)
	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("transparent clear left a non-zero byte")
		}
	}
}

func TestFramebufferClearIdempotent(t *testing.T) {
	fb1 := NewFramebuffer(3, 3)
	fb2 := NewFramebuffer(3, 3)
	color := Opaque(5, 6, 7)
	fb1.Clear(color)
	fb1.Clear(color)
	fb2.Clear(color)
	if string(fb1.Bytes()) != string(fb2.Bytes()) {
		t.Fatalf("two clears with the same color produced different buffers")
	}
}

func TestFramebufferBlendPixelOverBackground(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, Opaque(0, 0, 0))
	fb.BlendPixel(0, 0, Opaque(255, 255, 255))
	if got := fb.GetPixel(0, 0); got != Opaque(255, 255, 255) {
		t.Fatalf("opaque blend should replace background, got %08x", uint32(got))
	}
}

func TestFramebufferBlendPixelTransparentNoop(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, Opaque(1, 2, 3))
	fb.BlendPixel(0, 0, Transparent)
	if got := fb.GetPixel(0, 0); got != Opaque(1, 2, 3) {
		t.Fatalf("blending transparent should not alter background, got %08x", uint32(got))
	}
}

func TestFramebufferWidthHeightStride(t *testing.T) {
	fb := NewFramebuffer(10, 5)
	if fb.Width() != 10 || fb.Height() != 5 {
		t.Fatalf("got W=%d H=%d", fb.Width(), fb.Height())
	}
	if len(fb.Bytes()) != 10*5*BYTES_PER_PIXEL {
		t.Fatalf("buffer length = %d, want %d", len(fb.Bytes()), 10*5*BYTES_PER_PIXEL)
	}
}
