// Copyright 2025 The pica200 Authors. All rights reserved.

package swap

import (
	"testing"

	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/host"
)

func TestTransferFormatOf(t *testing.T) {
	cases := []struct {
		in   glctx.Enum
		want host.TransferFormat
		ok   bool
	}{
		{glctx.RGBA8, host.TransferRGBA8, true},
		{glctx.RGB8, host.TransferRGB8, true},
		{glctx.RGB565, host.TransferRGB565, true},
		{glctx.Enum(0xDEAD), 0, false},
	}
	for _, c := range cases {
		got, ok := transferFormatOf(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("transferFormatOf(%v):\nhave (%v,%v)\nwant (%v,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTransferAllowed(t *testing.T) {
	cases := []struct {
		src, dst host.TransferFormat
		want     bool
	}{
		{host.TransferRGBA8, host.TransferRGB565, true},
		{host.TransferRGBA8, host.TransferRGB8, true},
		{host.TransferRGB8, host.TransferRGB8, true},
		{host.TransferRGB8, host.TransferRGBA8, false},
		{host.TransferRGB565, host.TransferRGB5A1, true},
		{host.TransferRGB565, host.TransferRGBA8, false},
	}
	for _, c := range cases {
		if got := transferAllowed(c.src, c.dst); got != c.want {
			t.Fatalf("transferAllowed(%v,%v):\nhave %v\nwant %v", c.src, c.dst, got, c.want)
		}
	}
}
