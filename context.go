// context.go - the shared record the orchestrator and widgets operate on
//
// License: GPLv3 or later

package main

// RenderContext is the single record shared by the orchestrator and every
// widget. Widgets receive it as a read-only view except for
// the framebuffer contents and FrameCount, which the orchestrator owns
// and widgets never touch directly.
type RenderContext struct {
	FB     *Framebuffer
	Width  int
	Height int
	Config Config

	FontTimestamp   *Font
	FontSpeed       *Font
	FontVariantInfo *Font
	FontHeatmap     *Font
	FontDetections  *Font
	FontROI         *Font
	FontAutofocus   *Font
	FontSAM         *Font

	VectorCross            *VectorImage
	VectorCircle           *VectorImage
	VectorCenterIndicator  *VectorImage
	VectorSunFront         *VectorImage
	VectorSunBack          *VectorImage
	VectorMoonFront        *VectorImage
	VectorMoonBack         *VectorImage

	Navball *NavballResources

	State DecodedState

	NeedsRender bool
	FrameCount  uint64

	Channel Channel
	Mode    BuildMode

	VariantInfoHistory sharpnessHistory
	AutofocusHistory   sharpnessHistory
}

// BuildMode selects between the LIVE and RECORDING compile-time variants
// LIVE builds never include the timestamp widget.
type BuildMode int

const (
	ModeLive BuildMode = iota
	ModeRecording
)

// freeResources releases every owned font, vector-image and navball
// handle, matching the "A exclusively owns B" lifecycle pattern used
// throughout: these never outlive the RenderContext.
func (ctx *RenderContext) freeResources() {
	for _, f := range []*Font{
		ctx.FontTimestamp, ctx.FontSpeed, ctx.FontVariantInfo, ctx.FontHeatmap,
		ctx.FontDetections, ctx.FontROI, ctx.FontAutofocus, ctx.FontSAM,
	} {
		f.Free()
	}
	for _, v := range []*VectorImage{
		ctx.VectorCross, ctx.VectorCircle, ctx.VectorCenterIndicator,
		ctx.VectorSunFront, ctx.VectorSunBack, ctx.VectorMoonFront, ctx.VectorMoonBack,
	} {
		v.Free()
	}
	if ctx.Navball != nil {
		ctx.Navball.Free()
	}
}
