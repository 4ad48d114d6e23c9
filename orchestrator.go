// orchestrator.go - frame orchestrator, lifecycle state machine and the
// module's external ABI.
//
// The five exported entry points below (wasmInit, wasmUpdateState,
// wasmRender, wasmGetFramebuffer, wasmDestroy) are the //go:wasmexport
// surface a GOOS=wasip1 GOARCH=wasm build hands to the host; they are
// thin wrappers over the real, independently testable Init/UpdateState/
// Render/GetFramebufferPtr/Destroy methods on *Module below.
//
// License: GPLv3 or later

package main

import "golang.org/x/sync/errgroup"

const (
	maxFramebufferWidth  = 1920
	maxFramebufferHeight = 1080
)

// LifecycleState is the module's three-state lifecycle.
type LifecycleState int

const (
	StateUninit LifecycleState = iota
	StateReady
	StateDestroyed
)

// Module is the module-global state the ABI operates on: exactly one
// instance exists per process, accessed single-threaded with one
// re-entrant boundary at the exported functions.
type Module struct {
	state LifecycleState

	ctx *RenderContext

	decoder      *TelemetryDecoder
	telemetryBuf []byte
	protoValid   bool

	activeWidgets []func(*RenderContext) bool

	configPath string
	loader     ResourceLoader
}

var module = &Module{loader: defaultResourceLoader}

// Init resolves the configuration path, parses it, loads every configured
// font and vector-image resource, initializes navball resources, and
// transitions UNINIT -> READY. Any failure here is fatal and the module
// stays UNINIT.
func (m *Module) Init(channel Channel, mode BuildMode, configPath string) error {
	if m.state != StateUninit {
		return &ConfigError{Path: configPath, Details: "init called outside UNINIT"}
	}

	cfg, err := LoadConfig(m.loader, configPath)
	if err != nil {
		return err
	}

	ctx := &RenderContext{
		FB:      NewFramebuffer(maxFramebufferWidth, maxFramebufferHeight),
		Width:   maxFramebufferWidth,
		Height:  maxFramebufferHeight,
		Config:  cfg,
		Channel: channel,
		Mode:    mode,
	}

	if err := loadContextResources(m.loader, ctx); err != nil {
		return err
	}

	m.ctx = ctx
	m.decoder = NewTelemetryDecoder(channel)
	m.configPath = configPath
	m.activeWidgets = buildWidgetOrder(mode)
	m.state = StateReady
	m.ctx.NeedsRender = true
	m.ctx.FrameCount = 0
	return nil
}

// buildWidgetOrder resolves the fixed widget order for mode, dropping the
// timestamp widget entirely in LIVE builds
// rather than checking the mode inside Render every frame.
func buildWidgetOrder(mode BuildMode) []func(*RenderContext) bool {
	if mode == ModeLive {
		return []func(*RenderContext) bool{
			RenderCrosshairWidget,
			RenderNavballWidget,
			RenderVariantInfoWidget,
			RenderHeatmapWidget,
			RenderDetectionsWidget,
			RenderROIWidget,
			RenderSAMWidget,
			RenderAutofocusDebugWidget,
		}
	}
	return widgetOrder
}

// loadContextResources acquires every font, vector-image and navball
// resource Init needs. Each resource lives in its own struct field, so
// the loads have no shared mutable state; they fan out under an
// errgroup.Group and Wait returns the first failure. The group has no
// context, so a failure does not cancel the other loads; they run to
// completion. This is the same "fan out, first error wins" shape the
// teacher's striped frame-blend loop uses for independent pixel stripes.
func loadContextResources(loader ResourceLoader, ctx *RenderContext) error {
	var g errgroup.Group

	fontSpecs := []struct {
		name string
		dst  **Font
	}{
		{ctx.Config.Timestamp.Font, &ctx.FontTimestamp},
		{ctx.Config.SpeedIndicators.Font, &ctx.FontSpeed},
		{ctx.Config.VariantInfo.Font, &ctx.FontVariantInfo},
		{"share_tech_mono", &ctx.FontHeatmap},
		{"share_tech_mono", &ctx.FontDetections},
		{"share_tech_mono", &ctx.FontROI},
		{"share_tech_mono", &ctx.FontAutofocus},
		{"share_tech_mono", &ctx.FontSAM},
	}
	for _, spec := range fontSpecs {
		spec := spec
		g.Go(func() error {
			path, ok := fontRegistry[spec.name]
			if !ok {
				return &ConfigError{Details: "unknown font name " + spec.name}
			}
			font, err := LoadFont(loader, path)
			if err != nil {
				return err
			}
			*spec.dst = font
			return nil
		})
	}

	vectorSpecs := []struct {
		path string
		dst  **VectorImage
	}{
		{"assets/vector/cross.svg", &ctx.VectorCross},
		{"assets/vector/circle.svg", &ctx.VectorCircle},
		{resolveCenterIndicator(ctx.Config.Navball.CenterIndicator.Indicator), &ctx.VectorCenterIndicator},
		{ctx.Config.CelestialIndicators.SunFrontSVG, &ctx.VectorSunFront},
		{ctx.Config.CelestialIndicators.SunBackSVG, &ctx.VectorSunBack},
		{ctx.Config.CelestialIndicators.MoonFrontSVG, &ctx.VectorMoonFront},
		{ctx.Config.CelestialIndicators.MoonBackSVG, &ctx.VectorMoonBack},
	}
	for _, spec := range vectorSpecs {
		spec := spec
		g.Go(func() error {
			img, err := LoadVectorImage(loader, spec.path)
			if err != nil {
				return err
			}
			*spec.dst = img
			return nil
		})
	}

	if ctx.Config.Navball.Enabled {
		g.Go(func() error {
			res, err := LoadNavballResources(loader, ctx.Config.Navball.Skin, ctx.Config.Navball.Size)
			if err != nil {
				return err
			}
			ctx.Navball = res
			return nil
		})
	}

	return g.Wait()
}

// UpdateState copies the host-supplied telemetry buffer, marks it valid
// for the next render, and advances the frame counter.
func (m *Module) UpdateState(data []byte) error {
	if m.state != StateReady {
		return &DecodeError{Stage: "outer-message", Details: "update_state called outside READY"}
	}
	if len(data) == 0 {
		return &DecodeError{Stage: "outer-message", Details: "telemetry buffer is empty"}
	}
	if len(data) > maxTelemetryBytes {
		return &DecodeError{Stage: "outer-message", Details: "telemetry buffer exceeds 16KiB"}
	}
	m.telemetryBuf = append(m.telemetryBuf[:0], data...)
	m.protoValid = true
	m.ctx.NeedsRender = true
	m.ctx.FrameCount++
	return nil
}

// widgetOrder is the fixed render order for non-LIVE builds.
var widgetOrder = []func(*RenderContext) bool{
	RenderCrosshairWidget,
	RenderTimestampWidget,
	RenderNavballWidget,
	RenderVariantInfoWidget,
	RenderHeatmapWidget,
	RenderDetectionsWidget,
	RenderROIWidget,
	RenderSAMWidget,
	RenderAutofocusDebugWidget,
}

// Render runs one frame: clear, decode (if telemetry is valid), run every
// widget in fixed order OR-ing their changed flags, clear NeedsRender.
// Returns false if nothing needed rendering this call.
func (m *Module) Render() (bool, error) {
	if m.state != StateReady {
		return false, &DecodeError{Stage: "outer-message", Details: "render called outside READY"}
	}
	if !m.ctx.NeedsRender {
		return false, nil
	}

	m.ctx.FB.Clear(Transparent)

	if m.protoValid {
		if err := m.decoder.Decode(m.telemetryBuf, &m.ctx.State); err != nil {
			logError("telemetry decode failed: %v", err)
		}
	} else {
		m.ctx.State.Reset()
	}

	changed := false
	for _, w := range m.activeWidgets {
		if w(m.ctx) {
			changed = true
		}
	}

	m.ctx.NeedsRender = false
	return changed, nil
}

// GetFramebufferPtr exposes the framebuffer's backing storage, matching
// the module ABI's get_framebuffer_ptr. A byte slice
// stands in for the host's linear-memory offset in this pure-Go module.
func (m *Module) GetFramebufferPtr() []byte {
	if m.ctx == nil {
		return nil
	}
	return m.ctx.FB.Bytes()
}

// Destroy releases every owned resource and transitions READY ->
// DESTROYED. Idempotent: a second call on an already-destroyed module is
// a silent no-op.
func (m *Module) Destroy() error {
	if m.state == StateDestroyed {
		return nil
	}
	if m.ctx != nil {
		m.ctx.freeResources()
		m.ctx = nil
	}
	m.telemetryBuf = nil
	m.state = StateDestroyed
	return nil
}

// ------------------------------------------------------------------------------
// Module ABI
// ------------------------------------------------------------------------------

// buildChannel and buildMode are this build's compile-time selectors
// A packaging pipeline targeting a
// different variant swaps these via a build-tagged file; the default
// build here is the day-channel recording variant.
const (
	buildChannel    = ChannelDay
	buildMode       = ModeRecording
	buildConfigPath = "config.json"
)

//go:wasmexport init
func wasmInit() int32 {
	if err := module.Init(buildChannel, buildMode, buildConfigPath); err != nil {
		logError("init failed: %v", err)
		return -1
	}
	return 0
}

//go:wasmexport update_state
func wasmUpdateState(ptr, size uint32) int32 {
	data := wasmLinearMemoryView(ptr, size)
	if err := module.UpdateState(data); err != nil {
		logError("update_state failed: %v", err)
		return -1
	}
	return 0
}

//go:wasmexport render
func wasmRender() int32 {
	changed, err := module.Render()
	if err != nil {
		logError("render failed: %v", err)
		return 0
	}
	if changed {
		return 1
	}
	return 0
}

//go:wasmexport get_framebuffer
func wasmGetFramebuffer() uint32 {
	buf := module.GetFramebufferPtr()
	return wasmLinearMemoryOffset(buf)
}

//go:wasmexport destroy
func wasmDestroy() int32 {
	if err := module.Destroy(); err != nil {
		logError("destroy failed: %v", err)
		return -1
	}
	return 0
}

// wasmLinearMemoryView and wasmLinearMemoryOffset bridge the ABI's
// pointer/offset integers to the host's actual linear memory; on
// GOARCH=wasm they resolve to the running module's own address space
// (the pointer the host already wrote into, or the slice's own address).
// cmd/osdsim never calls these: the simulator does not import or load
// this module at all.
func wasmLinearMemoryView(ptr, size uint32) []byte {
	return unsafeByteView(uintptr(ptr), int(size))
}

func wasmLinearMemoryOffset(buf []byte) uint32 {
	return uint32(unsafeSliceAddress(buf))
}

// main is required for package main even though this module is consumed
// as a wasm library: the host calls the exported functions above, never
// main itself.
func main() {}
