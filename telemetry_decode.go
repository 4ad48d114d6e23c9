// telemetry_decode.go - hand-rolled protobuf-wire-format telemetry decoder
//
// No protobuf runtime is linked in: the wire format (varint, length-
// delimited, fixed32/fixed64 — see https://protobuf.dev/programming-guides/encoding/)
// is decoded directly, in the same spirit as the other binary chip and
// register parsers this module's ancestor carried for its sound and music
// formats. Field numbers below are this module's own wire contract, not
// reverse-engineered from a .proto file that ships with it.
//
// License: GPLv3 or later

package main

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	maxTelemetryBytes   = 16 * 1024
	maxOpaquePayload    = 4 * 1024
	unmatchedUUIDPeriod = 300
)

// Outer GuiState field numbers.
const (
	fieldCompass         = 1
	fieldRotary          = 2
	fieldTime            = 3
	fieldSpaceTime       = 4
	fieldCameraDay       = 5
	fieldCV              = 6
	fieldRecOSD          = 7
	fieldMonotonicUs     = 8
	fieldFrameDayUs      = 9
	fieldFrameHeatUs     = 10
	fieldOpaquePayloads  = 20
)

// opaque_payloads[] submessage field numbers.
const (
	fieldPayloadUUID = 1
	fieldPayloadData = 2
)

// UUID -> opaque payload kind registry.
const (
	uuidClientMetadata        = "01941b00-0000-7000-8000-000000000001"
	uuidCvMetaSharpness       = "019c3e33-d52d-7552-b36b-6fdcaa5d59b8"
	uuidObjectDetectionsDay   = "019c40f6-825c-7f4c-8284-ddad4375ed9b"
	uuidObjectDetectionsHeat  = "019c40f6-825d-7e0e-9893-87c7b167a751"
	uuidSAMTrackingDay        = "019c4b8a-2f1e-7a10-9b3e-1c6ef9a2d401"
	uuidSAMTrackingHeat       = "019c4b8a-2f1f-7a11-9b3e-1c6ef9a2d402"
)

// Channel selects which compile-time variant this build targets, per
// the build-time channel selector.
type Channel int

const (
	ChannelDay Channel = iota
	ChannelThermal
)

// TelemetryDecoder owns the rate limiter for unmatched-UUID warnings and
// the compile-time channel selection. It holds no per-frame state itself
// — everything decoded lands in a caller-supplied DecodedState.
type TelemetryDecoder struct {
	channel          Channel
	unmatchedLimiter *rateLimiter
}

// NewTelemetryDecoder builds a decoder for the given channel variant.
func NewTelemetryDecoder(channel Channel) *TelemetryDecoder {
	return &TelemetryDecoder{
		channel:          channel,
		unmatchedLimiter: newRateLimiter(unmatchedUUIDPeriod),
	}
}

// Decode resets every field's Valid flag and decodes buf into state. Any
// decode error at the outer-message stage is returned, but the fields
// already decoded before the error stay valid, so the frame still renders
// using whatever state made it through.
func (dec *TelemetryDecoder) Decode(buf []byte, state *DecodedState) error {
	state.Reset()
	if len(buf) > maxTelemetryBytes {
		return &DecodeError{Stage: "outer-message", Details: "telemetry buffer exceeds 16KiB"}
	}

	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return &DecodeError{Stage: "outer-message", Details: "tag", Err: err}
		}
		switch fieldNum {
		case fieldCompass:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeCompass(sub, &state.Compass)
			}
		case fieldRotary:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeRotary(sub, &state.Rotary)
			}
		case fieldTime:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeTime(sub, &state.Time)
			}
		case fieldSpaceTime:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeSpaceTime(sub, &state.SpaceTime)
			}
		case fieldCameraDay:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeCameraDay(sub, &state.CameraDay)
			}
		case fieldCV:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeCV(sub, &state.CV, dec.channel)
			}
		case fieldRecOSD:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				decodeRecOSD(sub, &state.RecOSD, dec.channel)
			}
		case fieldMonotonicUs:
			v, err := r.readVarintField(wireType)
			if err == nil {
				state.MonotonicUs = v
			}
		case fieldFrameDayUs:
			v, err := r.readVarintField(wireType)
			if err == nil {
				state.FrameDayUs = v
			}
		case fieldFrameHeatUs:
			v, err := r.readVarintField(wireType)
			if err == nil {
				state.FrameHeatUs = v
			}
		case fieldOpaquePayloads:
			sub, err := r.readSubmessage(wireType)
			if err == nil {
				dec.decodeOpaquePayload(sub, state)
			}
		default:
			if err := r.skipField(wireType); err != nil {
				return &DecodeError{Stage: "outer-message", Details: "skip unknown field", Err: err}
			}
		}
	}
	return nil
}

func (dec *TelemetryDecoder) decodeOpaquePayload(buf []byte, state *DecodedState) {
	var uuid string
	var payload []byte
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case fieldPayloadUUID:
			b, err := r.readBytesField(wireType)
			if err == nil {
				uuid = string(b)
			}
		case fieldPayloadData:
			b, err := r.readBytesField(wireType)
			if err == nil {
				payload = b
			}
		default:
			_ = r.skipField(wireType)
		}
	}

	switch {
	case uuid == uuidClientMetadata:
		decodeClientMetadata(payload, &state.ClientMeta)
	case uuid == uuidCvMetaSharpness:
		decodeSharpness(payload, &state.Sharpness)
	case uuid == uuidObjectDetectionsDay && dec.channel == ChannelDay:
		decodeDetections(payload, &state.Detections)
	case uuid == uuidObjectDetectionsHeat && dec.channel == ChannelThermal:
		decodeDetections(payload, &state.Detections)
	case uuid == uuidSAMTrackingDay && dec.channel == ChannelDay:
		decodeSAMTracking(payload, &state.SAM)
	case uuid == uuidSAMTrackingHeat && dec.channel == ChannelThermal:
		decodeSAMTracking(payload, &state.SAM)
	default:
		state.UnmatchedUUIDCount++
		if dec.unmatchedLimiter.Allow() {
			logWarn("telemetry: unmatched opaque payload uuid %q (count=%d)", uuid, state.UnmatchedUUIDCount)
		}
	}
}

// ------------------------------------------------------------------------------
// Submessage decoders
// ------------------------------------------------------------------------------

func decodeCompass(buf []byte, out *CompassState) {
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			out.AzimuthDeg, _ = r.readDoubleField(wireType)
		case 2:
			out.ElevationDeg, _ = r.readDoubleField(wireType)
		case 3:
			out.BankDeg, _ = r.readDoubleField(wireType)
		default:
			_ = r.skipField(wireType)
		}
	}
	out.Valid = true
}

func decodeRotary(buf []byte, out *RotaryState) {
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			out.AzimuthSpeed, _ = r.readDoubleField(wireType)
		case 2:
			out.ElevationSpeed, _ = r.readDoubleField(wireType)
		case 3:
			v, _ := r.readVarintField(wireType)
			out.IsMoving = v != 0
		default:
			_ = r.skipField(wireType)
		}
	}
	out.Valid = true
}

func decodeTime(buf []byte, out *TimeState) {
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		if fieldNum == 1 {
			v, _ := r.readVarintField(wireType)
			out.UnixSeconds = zigzagDecode(v)
		} else {
			_ = r.skipField(wireType)
		}
	}
	out.Valid = true
}

func decodeSpaceTime(buf []byte, out *SpaceTimeState) {
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			out.LatitudeDeg, _ = r.readDoubleField(wireType)
		case 2:
			out.LongitudeDeg, _ = r.readDoubleField(wireType)
		case 3:
			out.AltitudeM, _ = r.readDoubleField(wireType)
		case 4:
			v, _ := r.readVarintField(wireType)
			out.UnixSeconds = zigzagDecode(v)
		default:
			_ = r.skipField(wireType)
		}
	}
	out.Valid = true
}

func decodeCameraDay(buf []byte, out *CameraDayState) {
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			out.SensorGain, _ = r.readDoubleField(wireType)
		case 2:
			out.IrisPos, _ = r.readDoubleField(wireType)
		case 3:
			out.FocusPos, _ = r.readDoubleField(wireType)
		case 4:
			out.ZoomPos, _ = r.readDoubleField(wireType)
		case 5:
			out.Exposure, _ = r.readDoubleField(wireType)
		case 6:
			v, _ := r.readVarintField(wireType)
			out.AutoGain = v != 0
		case 7:
			v, _ := r.readVarintField(wireType)
			out.AutoIris = v != 0
		case 8:
			v, _ := r.readVarintField(wireType)
			out.HasSensorGain = v != 0
		case 9:
			v, _ := r.readVarintField(wireType)
			out.HasExposure = v != 0
		default:
			_ = r.skipField(wireType)
		}
	}
	out.Valid = true
}

func decodeROIRect(buf []byte) ROIRect {
	rect := ROIRect{Present: true}
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return rect
		}
		switch fieldNum {
		case 1:
			rect.X1, _ = r.readDoubleField(wireType)
		case 2:
			rect.Y1, _ = r.readDoubleField(wireType)
		case 3:
			rect.X2, _ = r.readDoubleField(wireType)
		case 4:
			rect.Y2, _ = r.readDoubleField(wireType)
		default:
			_ = r.skipField(wireType)
		}
	}
	return rect
}

func decodeCV(buf []byte, out *CVState, channel Channel) {
	var dayFocus, dayTrack, dayZoom, dayFX ROIRect
	var heatFocus, heatTrack, heatZoom, heatFX ROIRect
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		sub, serr := r.readSubmessage(wireType)
		if serr != nil {
			continue
		}
		switch fieldNum {
		case 1:
			dayFocus = decodeROIRect(sub)
		case 2:
			dayTrack = decodeROIRect(sub)
		case 3:
			dayZoom = decodeROIRect(sub)
		case 4:
			dayFX = decodeROIRect(sub)
		case 5:
			heatFocus = decodeROIRect(sub)
		case 6:
			heatTrack = decodeROIRect(sub)
		case 7:
			heatZoom = decodeROIRect(sub)
		case 8:
			heatFX = decodeROIRect(sub)
		}
	}
	if channel == ChannelDay {
		out.Focus, out.Track, out.Zoom, out.FX = dayFocus, dayTrack, dayZoom, dayFX
	} else {
		out.Focus, out.Track, out.Zoom, out.FX = heatFocus, heatTrack, heatZoom, heatFX
	}
	out.Valid = true
}

func decodeRecOSD(buf []byte, out *RecOSDState, channel Channel) {
	var dayX, dayY, heatX, heatY int64
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		v, verr := r.readVarintField(wireType)
		if verr != nil {
			continue
		}
		switch fieldNum {
		case 1:
			dayX = zigzagDecode(v)
		case 2:
			dayY = zigzagDecode(v)
		case 3:
			heatX = zigzagDecode(v)
		case 4:
			heatY = zigzagDecode(v)
		}
	}
	if channel == ChannelDay {
		out.OffsetX, out.OffsetY = int(dayX), int(dayY)
	} else {
		out.OffsetX, out.OffsetY = int(heatX), int(heatY)
	}
	out.Valid = true
}

// ------------------------------------------------------------------------------
// Opaque-payload decoders
// ------------------------------------------------------------------------------

func decodeClientMetadata(buf []byte, out *ClientMetadataState) {
	if len(buf) > maxOpaquePayload {
		logWarn("telemetry: ClientMetadata payload too large (%d bytes)", len(buf))
		return
	}
	r := newWireReader(buf)
	var meta ClientMetadataState
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			v, _ := r.readVarintField(wireType)
			meta.CanvasWidthPx = uint32(v)
		case 2:
			v, _ := r.readVarintField(wireType)
			meta.CanvasHeightPx = uint32(v)
		case 3:
			meta.DevicePixelRatio, _ = r.readFloatField(wireType)
		case 4:
			v, _ := r.readVarintField(wireType)
			meta.OSDBufferWidth = uint32(v)
		case 5:
			v, _ := r.readVarintField(wireType)
			meta.OSDBufferHeight = uint32(v)
		case 6:
			meta.VideoProxyNDCX, _ = r.readFloatField(wireType)
		case 7:
			meta.VideoProxyNDCY, _ = r.readFloatField(wireType)
		case 8:
			meta.VideoProxyNDCW, _ = r.readFloatField(wireType)
		case 9:
			meta.VideoProxyNDCH, _ = r.readFloatField(wireType)
		case 10:
			meta.ScaleFactor, _ = r.readFloatField(wireType)
		case 11:
			v, _ := r.readVarintField(wireType)
			meta.IsSharpMode = v != 0
		case 12:
			meta.ThemeHue, _ = r.readFloatField(wireType)
		case 13:
			meta.ThemeChroma, _ = r.readFloatField(wireType)
		case 14:
			meta.ThemeLightness, _ = r.readFloatField(wireType)
		default:
			_ = r.skipField(wireType)
		}
	}

	// Range-validate before accepting.
	if meta.CanvasWidthPx < 1 || meta.CanvasWidthPx > 40960 ||
		meta.CanvasHeightPx < 1 || meta.CanvasHeightPx > 40960 ||
		meta.DevicePixelRatio <= 0 || meta.DevicePixelRatio > 10 ||
		math.IsNaN(meta.DevicePixelRatio) {
		logWarn("telemetry: dropping out-of-range ClientMetadata (canvas=%dx%d dpr=%v)",
			meta.CanvasWidthPx, meta.CanvasHeightPx, meta.DevicePixelRatio)
		return
	}
	meta.Valid = true
	*out = meta
}

func decodeSharpness(buf []byte, out *SharpnessState) {
	if len(buf) > maxOpaquePayload {
		logWarn("telemetry: CvMeta sharpness payload too large (%d bytes)", len(buf))
		return
	}
	var sharp SharpnessState
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			sharp.GlobalScore, _ = r.readFloatField(wireType)
		case 2:
			packed, err := r.readBytesField(wireType)
			if err != nil {
				continue
			}
			n := len(packed) / 4
			if n > 64 {
				n = 64
			}
			for i := 0; i < n; i++ {
				bits := binary.LittleEndian.Uint32(packed[i*4:])
				sharp.Grid8x8[i] = float64(math.Float32frombits(bits))
			}
		default:
			_ = r.skipField(wireType)
		}
	}
	sharp.Valid = true
	*out = sharp
}

func decodeDetections(buf []byte, out *DetectionsState) {
	if len(buf) > maxOpaquePayload {
		logWarn("telemetry: ObjectDetections payload too large (%d bytes)", len(buf))
		return
	}
	var result DetectionsState
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			v, _ := r.readVarintField(wireType)
			result.Status = DetectionStatus(v)
		case 2:
			sub, serr := r.readSubmessage(wireType)
			if serr == nil && len(result.Items) < MaxDetections {
				result.Items = append(result.Items, decodeDetection(sub))
			}
		default:
			_ = r.skipField(wireType)
		}
	}
	result.Valid = true
	*out = result
}

func decodeDetection(buf []byte) Detection {
	var d Detection
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return d
		}
		switch fieldNum {
		case 1:
			d.X1, _ = r.readFloatField(wireType)
		case 2:
			d.Y1, _ = r.readFloatField(wireType)
		case 3:
			d.X2, _ = r.readFloatField(wireType)
		case 4:
			d.Y2, _ = r.readFloatField(wireType)
		case 5:
			d.Confidence, _ = r.readFloatField(wireType)
		case 6:
			v, _ := r.readVarintField(wireType)
			d.ClassID = int(zigzagDecode(v))
		default:
			_ = r.skipField(wireType)
		}
	}
	return d
}

func decodeSAMTracking(buf []byte, out *SAMState) {
	if len(buf) > rleMaskMaxBytes {
		logWarn("telemetry: SAM tracking payload too large (%d bytes)", len(buf))
		return
	}
	var result SAMState
	r := newWireReader(buf)
	for !r.done() {
		fieldNum, wireType, err := r.readTag()
		if err != nil {
			return
		}
		switch fieldNum {
		case 1:
			v, _ := r.readVarintField(wireType)
			result.Status = DetectionStatus(v)
		case 2:
			v, _ := r.readVarintField(wireType)
			result.TrackState = SAMTrackState(v)
		case 3:
			sub, serr := r.readSubmessage(wireType)
			if serr == nil {
				box := decodeROIRect(sub)
				result.BoxX1, result.BoxY1, result.BoxX2, result.BoxY2 = box.X1, box.Y1, box.X2, box.Y2
			}
		case 4:
			result.Confidence, _ = r.readFloatField(wireType)
		case 5:
			result.CentroidX, _ = r.readFloatField(wireType)
		case 6:
			result.CentroidY, _ = r.readFloatField(wireType)
		case 7:
			result.PredictedCentroidX, _ = r.readFloatField(wireType)
		case 8:
			result.PredictedCentroidY, _ = r.readFloatField(wireType)
		case 9:
			v, _ := r.readVarintField(wireType)
			result.HasPredicted = v != 0
		case 10:
			v, _ := r.readVarintField(wireType)
			result.LostFrames = int(v)
		case 11:
			maskBytes, merr := r.readBytesField(wireType)
			if merr == nil {
				mask, derr := decodeRLEMask(maskBytes)
				if derr != nil {
					logWarn("telemetry: %v", derr)
				} else {
					result.Mask = mask
				}
			}
		default:
			_ = r.skipField(wireType)
		}
	}
	result.Valid = true
	*out = result
}

// ------------------------------------------------------------------------------
// Low-level wire reader
// ------------------------------------------------------------------------------

const (
	wireVarint     = 0
	wireFixed64    = 1
	wireBytes      = 2
	wireFixed32    = 5
)

type wireReader struct {
	data []byte
	pos  int
}

func newWireReader(data []byte) *wireReader {
	return &wireReader{data: data}
}

func (r *wireReader) done() bool { return r.pos >= len(r.data) }

func (r *wireReader) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if r.pos >= len(r.data) {
			return 0, fmt.Errorf("varint: unexpected end")
		}
		b := r.data[r.pos]
		r.pos++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, fmt.Errorf("varint: too long")
		}
	}
}

func (r *wireReader) readTag() (fieldNum int, wireType int, err error) {
	tag, err := r.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(tag >> 3), int(tag & 0x7), nil
}

func (r *wireReader) readLenDelimited() ([]byte, error) {
	n, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)-r.pos) {
		return nil, fmt.Errorf("length-delimited field overruns buffer")
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *wireReader) readFixed32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("fixed32: unexpected end")
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *wireReader) readFixed64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("fixed64: unexpected end")
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *wireReader) readSubmessage(wireType int) ([]byte, error) {
	if wireType != wireBytes {
		_ = r.skipField(wireType)
		return nil, fmt.Errorf("expected length-delimited wire type, got %d", wireType)
	}
	return r.readLenDelimited()
}

func (r *wireReader) readBytesField(wireType int) ([]byte, error) {
	return r.readSubmessage(wireType)
}

func (r *wireReader) readVarintField(wireType int) (uint64, error) {
	if wireType != wireVarint {
		_ = r.skipField(wireType)
		return 0, fmt.Errorf("expected varint wire type, got %d", wireType)
	}
	return r.readVarint()
}

func (r *wireReader) readDoubleField(wireType int) (float64, error) {
	if wireType != wireFixed64 {
		_ = r.skipField(wireType)
		return 0, fmt.Errorf("expected fixed64 wire type, got %d", wireType)
	}
	bits, err := r.readFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (r *wireReader) readFloatField(wireType int) (float64, error) {
	if wireType != wireFixed32 {
		_ = r.skipField(wireType)
		return 0, fmt.Errorf("expected fixed32 wire type, got %d", wireType)
	}
	bits, err := r.readFixed32()
	if err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(bits)), nil
}

func (r *wireReader) skipField(wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := r.readVarint()
		return err
	case wireFixed64:
		_, err := r.readFixed64()
		return err
	case wireBytes:
		_, err := r.readLenDelimited()
		return err
	case wireFixed32:
		_, err := r.readFixed32()
		return err
	default:
		return fmt.Errorf("unknown wire type %d", wireType)
	}
}

func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
