// shmem.go - anonymous mmap region standing in for the module's linear
// memory, split into a telemetry inbox and a framebuffer outbox.
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const telemetryRegionBytes = 16 * 1024 // matches the module's maxTelemetryBytes cap

type sharedRegion struct {
	mu sync.RWMutex

	raw         []byte
	telemetry   []byte
	framebuffer []byte
}

func newSharedRegion(width, height int) (*sharedRegion, error) {
	fbBytes := width * height * 4
	total := telemetryRegionBytes + fbBytes

	raw, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", total, err)
	}

	return &sharedRegion{
		raw:         raw,
		telemetry:   raw[:telemetryRegionBytes],
		framebuffer: raw[telemetryRegionBytes:],
	}, nil
}

func (r *sharedRegion) Close() error {
	return unix.Munmap(r.raw)
}

func (r *sharedRegion) baseAddr() uintptr {
	if len(r.raw) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.raw[0]))
}

func (r *sharedRegion) writeTelemetry(frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := copy(r.telemetry, frame)
	for i := n; i < len(r.telemetry); i++ {
		r.telemetry[i] = 0
	}
}

func (r *sharedRegion) withFramebufferLock(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func (r *sharedRegion) writeFramebufferPixel(x, y, width int, c [4]byte) {
	off := (y*width + x) * 4
	if off < 0 || off+4 > len(r.framebuffer) {
		return
	}
	copy(r.framebuffer[off:off+4], c[:])
}

func (r *sharedRegion) snapshotFramebuffer() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]byte, len(r.framebuffer))
	copy(out, r.framebuffer)
	return out
}
