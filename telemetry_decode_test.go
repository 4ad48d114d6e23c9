// telemetry_decode_test.go - hand-built wire-format fixtures exercising the
// outer message, submessage and opaque-payload decoders
//
// License: GPLv3 or later

package main

import (
	"encoding/binary"
	"math"
	"testing"
)

// --- tiny protobuf-wire encoder, mirroring the decoder's field layout ---

func putTag(buf []byte, fieldNum, wireType int) []byte {
	return putVarint(buf, uint64(fieldNum<<3|wireType))
}

func putVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func putLenDelimited(buf []byte, fieldNum int, payload []byte) []byte {
	buf = putTag(buf, fieldNum, wireBytes)
	buf = putVarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

func putVarintField(buf []byte, fieldNum int, v uint64) []byte {
	buf = putTag(buf, fieldNum, wireVarint)
	return putVarint(buf, v)
}

func putDoubleField(buf []byte, fieldNum int, v float64) []byte {
	buf = putTag(buf, fieldNum, wireFixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return append(buf, b[:]...)
}

func putFloatField(buf []byte, fieldNum int, v float64) []byte {
	buf = putTag(buf, fieldNum, wireFixed32)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
	return append(buf, b[:]...)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func putOpaquePayload(buf []byte, fieldNum int, uuid string, payload []byte) []byte {
	var inner []byte
	inner = putLenDelimited(inner, fieldPayloadUUID, []byte(uuid))
	inner = putLenDelimited(inner, fieldPayloadData, payload)
	return putLenDelimited(buf, fieldNum, inner)
}

func TestDecodeResetsValidityOnEmptyBuffer(t *testing.T) {
	dec := NewTelemetryDecoder(ChannelDay)
	var state DecodedState
	state.Compass.Valid = true
	if err := dec.Decode(nil, &state); err != nil {
		t.Fatalf("unexpected error decoding an empty buffer: %v", err)
	}
	if state.Compass.Valid {
		t.Fatalf("Decode should reset stale validity flags even with nothing to decode")
	}
}

func TestDecodeCompassRotaryTimeSpaceTime(t *testing.T) {
	var buf []byte
	var compass []byte
	compass = putDoubleField(compass, 1, 12.5)
	compass = putDoubleField(compass, 2, -3.25)
	compass = putDoubleField(compass, 3, 1.0)
	buf = putLenDelimited(buf, fieldCompass, compass)

	var rotary []byte
	rotary = putDoubleField(rotary, 1, 0.04)
	rotary = putDoubleField(rotary, 2, 0.2)
	rotary = putVarintField(rotary, 3, 1)
	buf = putLenDelimited(buf, fieldRotary, rotary)

	var tm []byte
	tm = putVarintField(tm, 1, zigzagEncode(1700000000))
	buf = putLenDelimited(buf, fieldTime, tm)

	var st []byte
	st = putDoubleField(st, 1, 51.5)
	st = putDoubleField(st, 2, -0.12)
	st = putDoubleField(st, 3, 35.0)
	st = putVarintField(st, 4, zigzagEncode(1700000000))
	buf = putLenDelimited(buf, fieldSpaceTime, st)

	dec := NewTelemetryDecoder(ChannelDay)
	var state DecodedState
	if err := dec.Decode(buf, &state); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !state.Compass.Valid || state.Compass.AzimuthDeg != 12.5 || state.Compass.ElevationDeg != -3.25 {
		t.Fatalf("compass decode mismatch: %+v", state.Compass)
	}
	if !state.Rotary.Valid || !state.Rotary.IsMoving || state.Rotary.ElevationSpeed != 0.2 {
		t.Fatalf("rotary decode mismatch: %+v", state.Rotary)
	}
	if !state.Time.Valid || state.Time.UnixSeconds != 1700000000 {
		t.Fatalf("time decode mismatch: %+v", state.Time)
	}
	if !state.SpaceTime.Valid || state.SpaceTime.LatitudeDeg != 51.5 || state.SpaceTime.UnixSeconds != 1700000000 {
		t.Fatalf("spacetime decode mismatch: %+v", state.SpaceTime)
	}
}

func TestDecodeCVChannelSelection(t *testing.T) {
	var focusDay, focusHeat []byte
	focusDay = putDoubleField(focusDay, 1, 0.1)
	focusHeat = putDoubleField(focusHeat, 1, 0.9)

	var cv []byte
	cv = putLenDelimited(cv, 1, focusDay)  // day focus
	cv = putLenDelimited(cv, 5, focusHeat) // heat focus
	var buf []byte
	buf = putLenDelimited(buf, fieldCV, cv)

	dayDec := NewTelemetryDecoder(ChannelDay)
	var dayState DecodedState
	if err := dayDec.Decode(buf, &dayState); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dayState.CV.Focus.X1 != 0.1 {
		t.Fatalf("day channel should read the day-focus rect, got %+v", dayState.CV.Focus)
	}

	heatDec := NewTelemetryDecoder(ChannelThermal)
	var heatState DecodedState
	if err := heatDec.Decode(buf, &heatState); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heatState.CV.Focus.X1 != 0.9 {
		t.Fatalf("thermal channel should read the heat-focus rect, got %+v", heatState.CV.Focus)
	}
}

func TestDecodeUnmatchedUUIDRateLimited(t *testing.T) {
	dec := NewTelemetryDecoder(ChannelDay)
	var buf []byte
	buf = putOpaquePayload(buf, fieldOpaquePayloads, "00000000-0000-0000-0000-000000000000", []byte("x"))

	// Decode's Reset clears only Valid flags and leaves UnmatchedUUIDCount
	// alone, so each frame decodes into a fresh DecodedState to keep the
	// count per-frame; the rate limiter underneath tracks the cumulative
	// call count itself.
	var total int
	for i := 0; i < 300; i++ {
		var state DecodedState
		if err := dec.Decode(buf, &state); err != nil {
			t.Fatalf("unexpected error on frame %d: %v", i, err)
		}
		if state.UnmatchedUUIDCount != 1 {
			t.Fatalf("frame %d: expected exactly one unmatched payload this frame, got %d", i, state.UnmatchedUUIDCount)
		}
		total += state.UnmatchedUUIDCount
	}
	if total != 300 {
		t.Fatalf("expected 300 unmatched payloads across 300 frames, got %d", total)
	}
	// 300 Decode calls means 300 Allow() calls on the shared limiter (every=300):
	// the first (index 0) and the 301st (index 300, the next multiple) fire.
	// The 300 calls already made consumed indices 0..299, so the very next
	// call lands exactly on index 300 and should fire again.
	if !dec.unmatchedLimiter.Allow() {
		t.Fatalf("expected the 301st unmatched-uuid call to land on the next rate-limiter firing boundary")
	}
}

func TestDecodeOversizedOpaquePayloadRejected(t *testing.T) {
	var state ClientMetadataState
	decodeClientMetadata(make([]byte, maxOpaquePayload+1), &state)
	if state.Valid {
		t.Fatalf("an oversized ClientMetadata payload must not be accepted")
	}
}

func TestDecodeClientMetadataRangeValidation(t *testing.T) {
	valid := func() []byte {
		var b []byte
		b = putVarintField(b, 1, 1920)
		b = putVarintField(b, 2, 1080)
		b = putFloatField(b, 3, 1.0)
		return b
	}()
	var state ClientMetadataState
	decodeClientMetadata(valid, &state)
	if !state.Valid || state.CanvasWidthPx != 1920 {
		t.Fatalf("expected a valid in-range ClientMetadata decode, got %+v", state)
	}

	outOfRangeCanvas := func() []byte {
		var b []byte
		b = putVarintField(b, 1, 99999) // > 40960
		b = putVarintField(b, 2, 1080)
		b = putFloatField(b, 3, 1.0)
		return b
	}()
	var rejected ClientMetadataState
	decodeClientMetadata(outOfRangeCanvas, &rejected)
	if rejected.Valid {
		t.Fatalf("an out-of-range canvas width must be rejected")
	}

	outOfRangeDPR := func() []byte {
		var b []byte
		b = putVarintField(b, 1, 1920)
		b = putVarintField(b, 2, 1080)
		b = putFloatField(b, 3, 50.0) // > 10
		return b
	}()
	var rejectedDPR ClientMetadataState
	decodeClientMetadata(outOfRangeDPR, &rejectedDPR)
	if rejectedDPR.Valid {
		t.Fatalf("an out-of-range device pixel ratio must be rejected")
	}
}

func TestDecodeDetectionsFiltersByChannel(t *testing.T) {
	var det []byte
	det = putFloatField(det, 1, 0.25)
	det = putFloatField(det, 2, 0.25)
	det = putFloatField(det, 3, 0.75)
	det = putFloatField(det, 4, 0.75)
	det = putFloatField(det, 5, 0.9)
	det = putVarintField(det, 6, zigzagEncode(0))

	var detList []byte
	detList = putVarintField(detList, 1, uint64(DetectionStatusOK))
	detList = putLenDelimited(detList, 2, det)

	var buf []byte
	buf = putOpaquePayload(buf, fieldOpaquePayloads, uuidObjectDetectionsDay, detList)

	dayDec := NewTelemetryDecoder(ChannelDay)
	var dayState DecodedState
	if err := dayDec.Decode(buf, &dayState); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dayState.Detections.Valid || len(dayState.Detections.Items) != 1 {
		t.Fatalf("day channel should decode the day-detections payload, got %+v", dayState.Detections)
	}

	heatDec := NewTelemetryDecoder(ChannelThermal)
	var heatState DecodedState
	if err := heatDec.Decode(buf, &heatState); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heatState.Detections.Valid {
		t.Fatalf("thermal channel should not decode a day-tagged detections payload")
	}
	if heatState.UnmatchedUUIDCount != 1 {
		t.Fatalf("a day-tagged uuid on a thermal build should count as unmatched")
	}
}

func TestDecodeSAMTrackingWithMask(t *testing.T) {
	var maskBuf []byte
	maskBuf = appendRLEPair(maskBuf, rleMaskCellCount/2, 0)
	maskBuf = appendRLEPair(maskBuf, rleMaskCellCount/2, 0)

	var box []byte
	box = putDoubleField(box, 1, 0.1)
	box = putDoubleField(box, 2, 0.1)
	box = putDoubleField(box, 3, 0.5)
	box = putDoubleField(box, 4, 0.5)

	var sam []byte
	sam = putVarintField(sam, 1, uint64(DetectionStatusOK))
	sam = putVarintField(sam, 2, uint64(SAMStateTracking))
	sam = putLenDelimited(sam, 3, box)
	sam = putFloatField(sam, 4, 0.8)
	sam = putLenDelimited(sam, 11, maskBuf)

	var buf []byte
	buf = putOpaquePayload(buf, fieldOpaquePayloads, uuidSAMTrackingDay, sam)

	dec := NewTelemetryDecoder(ChannelDay)
	var state DecodedState
	if err := dec.Decode(buf, &state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.SAM.Valid || state.SAM.TrackState != SAMStateTracking {
		t.Fatalf("SAM tracking decode mismatch: %+v", state.SAM)
	}
	if state.SAM.Mask == nil {
		t.Fatalf("expected a decoded mask")
	}
}

func TestDecodeRejectsOversizedOuterBuffer(t *testing.T) {
	dec := NewTelemetryDecoder(ChannelDay)
	var state DecodedState
	err := dec.Decode(make([]byte, maxTelemetryBytes+1), &state)
	if err == nil {
		t.Fatalf("expected an error for an outer buffer exceeding 16KiB")
	}
}
