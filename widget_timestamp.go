// widget_timestamp.go - UTC HH:MM:SS readout, hidden in LIVE builds
//
// License: GPLv3 or later

package main

import "time"

// RenderTimestampWidget is widget order position 2. LIVE builds never
// include this widget in the active list at all.
func RenderTimestampWidget(ctx *RenderContext) bool {
	cfg := ctx.Config.Timestamp
	if !cfg.Enabled || !ctx.State.Time.Valid {
		return false
	}
	if !ctx.FontTimestamp.Valid() {
		return false
	}

	t := time.Unix(ctx.State.Time.UnixSeconds, 0).UTC()
	text := t.Format("15:04:05") + " UTC"

	RenderWithOutline(ctx.FB, ctx.FontTimestamp, text, cfg.PositionX, cfg.PositionY,
		ParseHex(cfg.ColorHex), Opaque(0, 0, 0), cfg.FontSize, 2)
	return true
}
