// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import (
	"testing"

	"github.com/ctrgfx/pica200/host"
)

func TestFillWidthOf(t *testing.T) {
	cases := []struct {
		bpp  int
		want host.FillWidth
	}{
		{2, host.Fill16},
		{3, host.Fill24},
		{4, host.Fill32},
	}
	for _, c := range cases {
		if got := fillWidthOf(c.bpp); got != c.want {
			t.Fatalf("fillWidthOf(%d):\nhave %v\nwant %v", c.bpp, got, c.want)
		}
	}
}

func TestColorClearValuePacksNativeFormat(t *testing.T) {
	const rgba8 = uint32(0xFF)<<24 | uint32(0x80)<<16 | uint32(0x40)<<8 | uint32(0x20)
	cases := []struct {
		format Enum
		want   uint32
	}{
		{RGBA8, rgba8},
		{RGB8, uint32(0xFF)<<16 | uint32(0x80)<<8 | uint32(0x40)},
		{RGB565, uint32(0xFF>>3)<<11 | uint32(0x80>>2)<<5 | uint32(0x40>>3)},
		{RGBA4, uint32(0xFF>>4)<<12 | uint32(0x80>>4)<<8 | uint32(0x40>>4)<<4 | uint32(0x20>>4)},
	}
	for _, c := range cases {
		if got := colorClearValue(c.format, rgba8); got != c.want {
			t.Fatalf("colorClearValue(%v):\nhave %#x\nwant %#x", c.format, got, c.want)
		}
	}
}

func TestColorClearValueRGB5A1AlphaThreshold(t *testing.T) {
	opaque := uint32(0)<<24 | uint32(0)<<16 | uint32(0)<<8 | uint32(0xFF)
	transparent := uint32(0)<<24 | uint32(0)<<16 | uint32(0)<<8 | uint32(0)
	if got := colorClearValue(RGB5A1, opaque); got&1 != 1 {
		t.Fatalf("colorClearValue(RGB5A1, alpha=0xFF) alpha bit:\nhave %d\nwant 1", got&1)
	}
	if got := colorClearValue(RGB5A1, transparent); got&1 != 0 {
		t.Fatalf("colorClearValue(RGB5A1, alpha=0) alpha bit:\nhave %d\nwant 0", got&1)
	}
}

func TestDepthClearPatternWidthByFormat(t *testing.T) {
	if got := depthClearPattern(DepthComponent16, 1, 0); got != 0xFFFF {
		t.Fatalf("depthClearPattern(DepthComponent16, 1, 0):\nhave %#x\nwant %#x", got, 0xFFFF)
	}
	if got := depthClearPattern(Depth24Stencil8, 1, 0x7F); got != uint32(0xFFFFFF)<<8|0x7F {
		t.Fatalf("depthClearPattern(Depth24Stencil8, 1, 0x7F):\nhave %#x\nwant %#x", got, uint32(0xFFFFFF)<<8|0x7F)
	}
}

func TestGetRenderbufferParameterivRoundTrip(t *testing.T) {
	c := newTestContext(t)
	rb := c.GenRenderbuffers(1)[0]
	c.BindRenderbuffer(rb)
	if err := c.RenderbufferStorage(RGB565, 32, 16); err != nil {
		t.Fatalf("RenderbufferStorage: %v", err)
	}
	got, err := c.GetRenderbufferParameteriv()
	if err != nil {
		t.Fatalf("GetRenderbufferParameteriv: %v", err)
	}
	if got.Format != RGB565 || got.Width != 32 || got.Height != 16 {
		t.Fatalf("GetRenderbufferParameteriv:\nhave %+v\nwant {RGB565 32 16}", got)
	}
}

func TestGetRenderbufferParameterivNoneBound(t *testing.T) {
	c := newTestContext(t)
	if _, err := c.GetRenderbufferParameteriv(); err == nil {
		t.Fatalf("GetRenderbufferParameteriv(none bound): want error, got nil")
	}
}

func TestGetVertexAttribDefaults(t *testing.T) {
	c := newTestContext(t)
	got, err := c.GetVertexAttrib(0)
	if err != nil {
		t.Fatalf("GetVertexAttrib(0): %v", err)
	}
	if got.Enabled {
		t.Fatalf("GetVertexAttrib(0) default Enabled: have true, want false")
	}
	if !got.Fixed {
		t.Fatalf("GetVertexAttrib(0) default Fixed: have false, want true")
	}
	if got.Components != ([4]float32{0, 0, 0, 1}) {
		t.Fatalf("GetVertexAttrib(0) default Components:\nhave %v\nwant [0 0 0 1]", got.Components)
	}
}

func TestGetVertexAttribOutOfRange(t *testing.T) {
	c := newTestContext(t)
	if _, err := c.GetVertexAttrib(-1); err == nil {
		t.Fatalf("GetVertexAttrib(-1): want error, got nil")
	}
	if _, err := c.GetVertexAttrib(numAttribRegs); err == nil {
		t.Fatalf("GetVertexAttrib(numAttribRegs): want error, got nil")
	}
}
