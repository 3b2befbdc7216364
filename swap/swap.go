// Copyright 2025 The pica200 Authors. All rights reserved.

// Package swap implements the swap engine (spec §4.7): preparing
// per-side display transfers from a context's color buffer to the
// physical screen and sequencing them against VSync.
package swap

import (
	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/host"
)

// transferFormatOf maps a GL internal format to the host's transfer
// format enum (spec §4.7 step 2).
func transferFormatOf(format glctx.Enum) (host.TransferFormat, bool) {
	switch format {
	case glctx.RGBA8:
		return host.TransferRGBA8, true
	case glctx.RGB8:
		return host.TransferRGB8, true
	case glctx.RGB565:
		return host.TransferRGB565, true
	case glctx.RGB5A1:
		return host.TransferRGB5A1, true
	case glctx.RGBA4:
		return host.TransferRGBA4, true
	default:
		return 0, false
	}
}

// transferAllowed enforces the spec's (src,dst) compatibility matrix:
// RGBA8 converts to anything; RGB8 only to itself; any 16-bit source
// only to another 16-bit destination.
func transferAllowed(src, dst host.TransferFormat) bool {
	is16 := func(f host.TransferFormat) bool {
		return f == host.TransferRGB565 || f == host.TransferRGB5A1 || f == host.TransferRGBA4
	}
	switch {
	case src == host.TransferRGBA8:
		return true
	case src == host.TransferRGB8:
		return dst == host.TransferRGB8
	case is16(src):
		return is16(dst)
	default:
		return false
	}
}

// sideTransfer is one prepared display transfer for one eye.
type sideTransfer struct {
	screen host.Screen
	right  bool
	xfer   host.DisplayTransfer
}

// prepareSide builds the display transfer for one context's one side,
// or ok=false if the context has no color buffer to present.
func prepareSide(c *glctx.Context) (sideTransfer, bool) {
	addr, w, h, ok := c.ColorBuffer()
	if !ok || addr == 0 {
		return sideTransfer{}, false
	}
	glFormat, ok := c.ColorBufferFormat()
	if !ok {
		return sideTransfer{}, false
	}
	srcFmt, ok := transferFormatOf(glFormat)
	if !ok {
		return sideTransfer{}, false
	}

	disp := c.Host().Display
	dstAddr, dstW, dstH, dstFmt := disp.DisplayBuffer(c.Params.Screen, c.Params.Side)
	if !transferAllowed(srcFmt, dstFmt) {
		return sideTransfer{}, false
	}

	return sideTransfer{
		screen: c.Params.Screen,
		right:  c.Params.Side == host.SideRight,
		xfer: host.DisplayTransfer{
			SrcAddr: addr, DstAddr: dstAddr,
			SrcW: w, SrcH: h,
			DstW: dstW, DstH: dstH,
			SrcFormat: srcFmt, DstFormat: dstFmt,
			VerticalFlip: c.Params.HorizontalFlip,
			MakeTiled:    false,
			Scale:        c.Params.Downscale,
		},
	}, true
}

// Swap implements swap_context_buffers(ctx0, ctx1): either argument
// may be nil. Binds and flushes each non-nil context, prepares one
// display transfer per eligible side, and sequences them against
// VSync preference before requesting the host swap each screen's
// display buffers.
func Swap(ctx0, ctx1 *glctx.Context) error {
	var h *host.Host
	var transfers []sideTransfer

	for _, c := range []*glctx.Context{ctx0, ctx1} {
		if c == nil {
			continue
		}
		glctx.Bind(c)
		if err := c.Flush(); err != nil {
			return err
		}
		h = c.Host()
		h.GX.WaitTransfer()
		if t, ok := prepareSide(c); ok {
			transfers = append(transfers, t)
		}
	}

	if len(transfers) == 0 {
		if h != nil {
			if ctx0 != nil {
				h.GX.SwapDisplayBuffers(ctx0.Params.Screen, ctx0.Params.Side == host.SideRight)
			}
			if ctx1 != nil {
				h.GX.SwapDisplayBuffers(ctx1.Params.Screen, ctx1.Params.Side == host.SideRight)
			}
		}
		return nil
	}

	// VSync preference: if ctx1 wants VSync and ctx0 does not, ctx1's
	// transfer goes first.
	if ctx0 != nil && ctx1 != nil && ctx1.Params.VSync && !ctx0.Params.VSync {
		if len(transfers) == 2 {
			transfers[0], transfers[1] = transfers[1], transfers[0]
		}
	}

	h.GX.Lock()
	for _, t := range transfers {
		screen, right := t.screen, t.right
		if err := h.GX.DisplayTransfer(t.xfer, func() {
			h.GX.SwapDisplayBuffers(screen, right)
		}); err != nil {
			h.GX.Unlock()
			return err
		}
	}
	h.GX.Unlock()

	anyVSync := (ctx0 != nil && ctx0.Params.VSync) || (ctx1 != nil && ctx1.Params.VSync)
	if anyVSync {
		h.GX.WaitTransfer()
		h.GX.WaitVBlank()
	}
	return nil
}
