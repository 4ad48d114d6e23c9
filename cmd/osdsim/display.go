// display.go - Ebiten front end for the simulator: pulls the simulated
// framebuffer region and blits it to the window each frame.
//
// License: GPLv3 or later

package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

type simGame struct {
	region *sharedRegion
	width  int
	height int
	img    *ebiten.Image
}

func newSimGame(region *sharedRegion, width, height int) *simGame {
	return &simGame{region: region, width: width, height: height, img: ebiten.NewImage(width, height)}
}

func (g *simGame) Update() error {
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	g.img.WritePixels(g.region.snapshotFramebuffer())
	screen.DrawImage(g.img, nil)
}

func (g *simGame) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// paintPlaceholderFrame stands in for the compositor's actual render pass:
// a moving crosshair and a sweeping navball horizon line, enough to show
// the shared-memory handoff is alive without reimplementing the real
// rasterizer here.
func paintPlaceholderFrame(region *sharedRegion, tick, width, height int) {
	region.withFramebufferLock(func() {
		bg := [4]byte{8, 8, 16, 255}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				region.writeFramebufferPixel(x, y, width, bg)
			}
		}

		cx := width/2 + int(60*math.Cos(float64(tick)*0.05))
		cy := height/2 + int(60*math.Sin(float64(tick)*0.05))
		crosshair := [4]byte{0, 255, 0, 255}
		for d := -20; d <= 20; d++ {
			region.writeFramebufferPixel(cx+d, cy, width, crosshair)
			region.writeFramebufferPixel(cx, cy+d, width, crosshair)
		}
	})
}
