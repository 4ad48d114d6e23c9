// rle_mask_test.go - RLE mask decode boundary tests
//
// License: GPLv3 or later

package main

import (
	"encoding/binary"
	"testing"
)

func appendRLEPair(buf []byte, runLength uint16, value byte) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, runLength)
	buf = append(buf, b...)
	return append(buf, value)
}

func TestDecodeRLEMaskAllZero(t *testing.T) {
	var buf []byte
	buf = appendRLEPair(buf, rleMaskCellCount/2, 0) // a u16 run cannot hold all 65536 cells
	buf = appendRLEPair(buf, rleMaskCellCount/2, 0)
	mask, err := decodeRLEMask(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := 0; y < rleMaskDim; y++ {
		for x := 0; x < rleMaskDim; x++ {
			if mask.At(x, y) {
				t.Fatalf("expected all-zero mask, found set bit at (%d,%d)", x, y)
			}
		}
	}
}

func TestDecodeRLEMaskMixedRuns(t *testing.T) {
	var buf []byte
	buf = appendRLEPair(buf, 10, 1)                      // first 10 cells set
	buf = appendRLEPair(buf, rleMaskCellCount-10, 0)      // rest clear
	mask, err := decodeRLEMask(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		x, y := i%rleMaskDim, i/rleMaskDim
		if !mask.At(x, y) {
			t.Errorf("cell %d should be set", i)
		}
	}
	if mask.At(10%rleMaskDim, 10/rleMaskDim) {
		t.Errorf("cell 10 should be clear")
	}
}

func TestDecodeRLEMaskOverflowRejected(t *testing.T) {
	var buf []byte
	buf = appendRLEPair(buf, rleMaskCellCount/2, 1)
	buf = appendRLEPair(buf, rleMaskCellCount/2, 1) // grid now full
	buf = appendRLEPair(buf, 1, 1)                  // one more run, overflows the grid
	if _, err := decodeRLEMask(buf); err == nil {
		t.Fatalf("expected an error for a run overflowing the grid")
	}
}

func TestDecodeRLEMaskShortRejected(t *testing.T) {
	var buf []byte
	buf = appendRLEPair(buf, 100, 1) // far short of 65536 cells
	if _, err := decodeRLEMask(buf); err == nil {
		t.Fatalf("expected an error for a mask short of 256x256 cells")
	}
}

func TestDecodeRLEMaskTruncatedRejected(t *testing.T) {
	buf := []byte{0x01, 0x00} // two bytes: not a full 3-byte pair
	if _, err := decodeRLEMask(buf); err == nil {
		t.Fatalf("expected an error for a truncated pair")
	}
}

func TestDecodeRLEMaskOversizedRejected(t *testing.T) {
	buf := make([]byte, rleMaskMaxBytes+3)
	if _, err := decodeRLEMask(buf); err == nil {
		t.Fatalf("expected an error for an oversized payload")
	}
}

func TestRLEMaskAtOutOfRange(t *testing.T) {
	var mask *RLEMask
	if mask.At(0, 0) {
		t.Fatalf("nil mask should report false everywhere")
	}
	m := &RLEMask{}
	if m.At(-1, 0) || m.At(0, -1) || m.At(rleMaskDim, 0) || m.At(0, rleMaskDim) {
		t.Fatalf("out-of-range coordinates should report false")
	}
}
