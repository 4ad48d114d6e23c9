// wasm_bridge.go - raw linear-memory pointer/offset helpers for the wasm ABI
//
// These exist only to satisfy the pointer/offset calling convention the
// module ABI uses: on a real GOOS=wasip1 GOARCH=wasm build, ptr
// and size are offsets into this module's own linear memory, the same
// address space Go's own slices live in, so converting between them and
// a []byte is a local reinterpretation, not a foreign-memory access.
//
// License: GPLv3 or later

package main

import "unsafe"

func unsafeByteView(ptr uintptr, size int) []byte {
	if ptr == 0 || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
}

func unsafeSliceAddress(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}
