// osdsim - a standalone host-side simulator for the OSD compositor module.
//
// It never imports the compositor package: a wasm module's host embeds it
// across a process (or process/sandbox) boundary and only ever talks to it
// through the five-function ABI and a shared memory region, so this harness
// plays the host's side of that boundary on its own. It mmaps an anonymous
// region to stand in for the linear memory a real wasip1 runtime would hand
// the module, writes synthetic telemetry frames into one slice of it on a
// timer, and displays the other slice (playing the compositor's framebuffer
// output) through an Ebiten window.
//
// License: GPLv3 or later

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	width := flag.Int("width", 1280, "simulated framebuffer width")
	height := flag.Int("height", 720, "simulated framebuffer height")
	fps := flag.Int("fps", 30, "telemetry generation rate")
	flag.Parse()

	region, err := newSharedRegion(*width, *height)
	if err != nil {
		log.Fatalf("osdsim: shared region: %v", err)
	}
	defer region.Close()

	fmt.Printf("osdsim: mmap'd %d bytes (telemetry %d, framebuffer %d) at host address %#x\n",
		len(region.raw), len(region.telemetry), len(region.framebuffer), region.baseAddr())

	gen := newTelemetryGenerator()
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			frame := gen.next()
			region.writeTelemetry(frame)
			// A real host would now call the module's update_state(ptr,
			// size) and render() exports with region's offsets, then read
			// get_framebuffer() back out. osdsim has no module loaded, so
			// it paints its own placeholder frame representing what the
			// compositor would have produced from this same telemetry.
			paintPlaceholderFrame(region, gen.tick, *width, *height)
		}
	}()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("osdsim - OSD compositor host simulator")
	game := newSimGame(region, *width, *height)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("osdsim: %v", err)
	}
}
