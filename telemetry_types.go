// telemetry_types.go - per-frame decoded-state cache records
//
// License: GPLv3 or later

package main

// DecodedState is the full set of per-frame caches the decoder populates
// Every record carries its own Valid flag; stale data from a previous frame
// requires the decoder to reset all of them to false at the top of each
// render before re-populating whatever submessages are actually present
// this frame. Widgets never fall back to a previous frame's values.
type DecodedState struct {
	Compass      CompassState
	Rotary       RotaryState
	Time         TimeState
	SpaceTime    SpaceTimeState
	CameraDay    CameraDayState
	CV           CVState
	RecOSD       RecOSDState
	ClientMeta   ClientMetadataState
	Sharpness    SharpnessState
	Detections   DetectionsState
	SAM          SAMState
	MonotonicUs  uint64
	FrameDayUs   uint64
	FrameHeatUs  uint64
	UnmatchedUUIDCount int
}

// Reset clears every cache's Valid flag. Scalar fields
// are left as-is; a stale scalar behind Valid=false is never read by a
// widget that checks Valid first.
func (d *DecodedState) Reset() {
	d.Compass.Valid = false
	d.Rotary.Valid = false
	d.Time.Valid = false
	d.SpaceTime.Valid = false
	d.CameraDay.Valid = false
	d.CV.Valid = false
	d.RecOSD.Valid = false
	d.ClientMeta.Valid = false
	d.Sharpness.Valid = false
	d.Detections.Valid = false
	d.SAM.Valid = false
}

// CompassState holds platform orientation, for the navball widget.
type CompassState struct {
	AzimuthDeg   float64
	ElevationDeg float64
	BankDeg      float64
	Valid        bool
}

// RotaryState holds normalized gimbal rotary speeds, for crosshair speed
// indicators.
type RotaryState struct {
	AzimuthSpeed   float64 // -1.0..1.0
	ElevationSpeed float64 // -1.0..1.0
	IsMoving       bool
	Valid          bool
}

// TimeState holds the UTC wall-clock timestamp, for the timestamp widget.
type TimeState struct {
	UnixSeconds int64
	Valid       bool
}

// SpaceTimeState holds GPS position plus its own timestamp, for celestial
// ephemeris calculations.
type SpaceTimeState struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64
	UnixSeconds  int64
	Valid        bool
}

// CameraDayState holds day-camera parameters, for the variant-info /
// autofocus-debug panels. Day-variant builds only.
type CameraDayState struct {
	SensorGain     float64 // 0..1, meaningful iff HasSensorGain
	IrisPos        float64
	FocusPos       float64
	ZoomPos        float64
	Exposure       float64 // 0..1, meaningful iff HasExposure
	AutoGain       bool
	AutoIris       bool
	HasSensorGain  bool
	HasExposure    bool
	Valid          bool
}

// ROIRect is one named region of interest in NDC coordinates.
type ROIRect struct {
	X1, Y1, X2, Y2 float64
	Present        bool
}

// CVState holds the four named ROI rectangles for the channel this build
// was compiled for (day or thermal).
type CVState struct {
	Focus ROIRect
	Track ROIRect
	Zoom  ROIRect
	FX    ROIRect
	Valid bool
}

// RecOSDState holds the crosshair pixel offset for the channel this build
// was compiled for.
type RecOSDState struct {
	OffsetX int
	OffsetY int
	Valid   bool
}

// ClientMetadataState holds frontend canvas geometry and theme info,
// decoded from an opaque payload and range-validated before use.
type ClientMetadataState struct {
	CanvasWidthPx    uint32
	CanvasHeightPx   uint32
	DevicePixelRatio float64
	OSDBufferWidth   uint32
	OSDBufferHeight  uint32
	VideoProxyNDCX   float64
	VideoProxyNDCY   float64
	VideoProxyNDCW   float64
	VideoProxyNDCH   float64
	ScaleFactor      float64
	IsSharpMode      bool
	ThemeHue         float64
	ThemeChroma      float64
	ThemeLightness   float64
	Valid            bool
}

// SharpnessState holds the autofocus sharpness score, decoded from an
// opaque payload.
type SharpnessState struct {
	GlobalScore float64
	Grid8x8     [64]float64
	Valid       bool
}

// DetectionStatus mirrors the decoded ser_DetectionStatus enum.
type DetectionStatus int

const (
	DetectionStatusUnknown DetectionStatus = iota
	DetectionStatusOK
	DetectionStatusError
)

const MaxDetections = 64

// Detection is one decoded YOLO bounding box in NDC coordinates.
type Detection struct {
	X1, Y1, X2, Y2 float64
	Confidence     float64
	ClassID        int
}

// DetectionsState holds the decoded object-detection list for the channel
// this build was compiled for.
type DetectionsState struct {
	Items  []Detection
	Status DetectionStatus
	Valid  bool
}

// SAMTrackState mirrors the decoded tracking-state enum.
type SAMTrackState int

const (
	SAMStateIdle SAMTrackState = iota
	SAMStateStarting
	SAMStateTracking
	SAMStateOccluded
	SAMStateLost
)

// SAMState holds SAM tracking output, decoded from an opaque payload.
type SAMState struct {
	Status             DetectionStatus
	TrackState         SAMTrackState
	BoxX1, BoxY1       float64
	BoxX2, BoxY2       float64
	Confidence         float64
	CentroidX          float64
	CentroidY          float64
	PredictedCentroidX float64
	PredictedCentroidY float64
	HasPredicted       bool
	LostFrames         int
	Mask               *RLEMask
	Valid              bool
}
