// widget_variantinfo_test.go - debug panel gating and history feed
//
// License: GPLv3 or later

package main

import "testing"

func TestVariantInfoDisabledIsNoop(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.VariantInfo.Enabled = false
	if RenderVariantInfoWidget(ctx) {
		t.Fatalf("a disabled variant-info widget should report no change")
	}
}

func TestVariantInfoInvalidFontIsNoop(t *testing.T) {
	ctx := newTestContext(200, 200)
	ctx.Config.VariantInfo.Enabled = true
	if RenderVariantInfoWidget(ctx) {
		t.Fatalf("a nil font should keep variant-info a no-op")
	}
}
