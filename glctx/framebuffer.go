// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import (
	"github.com/ctrgfx/pica200/host"
	"github.com/ctrgfx/pica200/internal/objheap"
)

// attachment describes one of a Framebuffer's two attachment points.
// It is either a Renderbuffer, a Texture face, or empty.
type attachment struct {
	renderbuffer objheap.Handle
	texture      objheap.Handle
	face         CubeFace
}

func (a attachment) bound() bool { return a.renderbuffer.Valid() || a.texture.Valid() }

// format resolves the attachment's storage format, looking it up in
// the given heaps.
func (a attachment) format(h *heaps) (Enum, bool) {
	if a.renderbuffer.Valid() {
		rb, found := h.renderbuffers.Get(a.renderbuffer)
		if !found {
			return 0, false
		}
		return rb.format, true
	}
	if a.texture.Valid() {
		t, found := h.textures.Get(a.texture)
		if !found {
			return 0, false
		}
		return t.NativeFormat, true
	}
	return 0, false
}

// addressAndSize resolves the attachment's backing address and
// dimensions, looking it up in the given heaps.
func (a attachment) addressAndSize(h *heaps) (addr uintptr, width, height int, ok bool) {
	if a.renderbuffer.Valid() {
		rb, found := h.renderbuffers.Get(a.renderbuffer)
		if !found {
			return 0, 0, 0, false
		}
		return rb.address, rb.width, rb.height, true
	}
	if a.texture.Valid() {
		t, found := h.textures.Get(a.texture)
		if !found {
			return 0, 0, 0, false
		}
		return t.Faces[a.face], t.Width, t.Height, true
	}
	return 0, 0, 0, false
}

// Framebuffer is a draw target: a color attachment and a depth (or
// depth/stencil) attachment, each independently optional (spec §3,
// §4.7 completeness rules).
type Framebuffer struct {
	color attachment
	depth attachment
}

// GenFramebuffers allocates n fresh, empty framebuffer objects.
func (c *Context) GenFramebuffers(n int) []objheap.Handle {
	out := make([]objheap.Handle, n)
	for i := range out {
		out[i] = c.heaps.framebuffers.Alloc(Framebuffer{})
	}
	return out
}

// DeleteFramebuffers frees the given framebuffer objects. It does not
// free the attachments themselves, only the detaching.
func (c *Context) DeleteFramebuffers(handles []objheap.Handle) {
	for _, h := range handles {
		if c.framebuffer == h {
			c.framebuffer = objheap.Handle{}
		}
		c.heaps.framebuffers.Free(h)
	}
}

// BindFramebuffer binds h as the current draw framebuffer.
func (c *Context) BindFramebuffer(h objheap.Handle) {
	c.framebuffer = h
	c.markDirty(dirtyFramebuffer)
}

// FramebufferRenderbuffer attaches renderbuffer to the bound
// framebuffer's color or depth attachment point.
func (c *Context) FramebufferRenderbuffer(point Enum, rb objheap.Handle) error {
	fb, ok := c.heaps.framebuffers.Get(c.framebuffer)
	if !ok {
		return errEnum(InvalidOperation)
	}
	switch point {
	case ColorAttachment0:
		fb.color = attachment{renderbuffer: rb}
	case DepthAttachment:
		fb.depth = attachment{renderbuffer: rb}
	default:
		return errEnum(InvalidEnum)
	}
	c.markDirty(dirtyFramebuffer)
	return nil
}

// FramebufferTexture2D attaches a single face of texture to the bound
// framebuffer's color attachment point (textures are never used as a
// depth attachment in this core).
func (c *Context) FramebufferTexture2D(point Enum, face CubeFace, tex objheap.Handle) error {
	if point != ColorAttachment0 {
		return errEnum(InvalidEnum)
	}
	fb, ok := c.heaps.framebuffers.Get(c.framebuffer)
	if !ok {
		return errEnum(InvalidOperation)
	}
	fb.color = attachment{texture: tex, face: face}
	c.markDirty(dirtyFramebuffer)
	return nil
}

// CheckFramebufferStatus runs the completeness algorithm described in
// the spec's framebuffer section.
func (c *Context) CheckFramebufferStatus() Enum {
	fb, ok := c.heaps.framebuffers.Get(c.framebuffer)
	if !ok {
		return FramebufferUnsupported
	}
	if !fb.color.bound() && !fb.depth.bound() {
		return FramebufferIncompleteMissingAttachment
	}
	colorAddr, colorW, colorH, colorOK := fb.color.addressAndSize(c.heaps)
	if fb.color.bound() && (!colorOK || colorAddr == 0) {
		return FramebufferIncompleteAttachment
	}
	depthAddr, depthW, depthH, depthOK := fb.depth.addressAndSize(c.heaps)
	if fb.depth.bound() && (!depthOK || depthAddr == 0) {
		return FramebufferIncompleteAttachment
	}
	if fb.color.bound() && fb.depth.bound() {
		if colorW != depthW || colorH != depthH {
			return FramebufferIncompleteDimensions
		}
	}
	return FramebufferComplete
}

// Clear implements glClear(mask): color/depth memory-fills plus the
// early-depth-clear dirty bit, per spec §4.7.
func (c *Context) Clear(mask uint32) error {
	if mask&StencilBufferBit != 0 && mask&DepthBufferBit == 0 {
		return errEnum(InvalidOperation)
	}
	if status := c.CheckFramebufferStatus(); status != FramebufferComplete {
		return errEnum(InvalidFramebufferOperation)
	}
	if mask&EarlyDepthBufferBitPICA != 0 {
		c.markDirty(dirtyEarlyDepthClear)
	}
	if mask&(ColorBufferBit|DepthBufferBit) == 0 {
		return nil
	}

	fb, _ := c.heaps.framebuffers.Get(c.framebuffer)
	var fills []*host.MemoryFill
	if mask&ColorBufferBit != 0 && fb.color.bound() {
		addr, w, h, ok := fb.color.addressAndSize(c.heaps)
		format, fok := fb.color.format(c.heaps)
		if ok && fok && addr != 0 {
			bpp := bytesPerPixel(format)
			fills = append(fills, &host.MemoryFill{
				Addr: addr, Size: w * h * bpp, Value: colorClearValue(format, c.clearColor), FillWidth: fillWidthOf(bpp),
			})
		}
	}
	if mask&DepthBufferBit != 0 && fb.depth.bound() {
		addr, w, h, ok := fb.depth.addressAndSize(c.heaps)
		format, fok := fb.depth.format(c.heaps)
		if ok && fok && addr != 0 {
			bpp := bytesPerPixel(format)
			fills = append(fills, &host.MemoryFill{
				Addr: addr, Size: w * h * bpp, Value: depthClearPattern(format, c.clearDepth, c.clearStencil), FillWidth: fillWidthOf(bpp),
			})
		}
	}
	if len(fills) == 0 {
		return nil
	}
	c.host.GX.Lock()
	defer c.host.GX.Unlock()
	var a, b *host.MemoryFill
	a = fills[0]
	if len(fills) > 1 {
		b = fills[1]
	}
	return c.host.GX.MemoryFill(a, b)
}

// fillWidthOf maps an attachment's per-pixel byte size to the GX
// memory-fill element width that matches it (spec §6: 16-bit=0,
// 24-bit=1, 32-bit=2).
func fillWidthOf(bpp int) host.FillWidth {
	switch bpp {
	case 2:
		return host.Fill16
	case 3:
		return host.Fill24
	default:
		return host.Fill32
	}
}

// colorClearValue packs c.clearColor's 8-bit-per-channel RGBA into
// the bit layout the attachment's native format actually stores,
// since Clear must emit a fill word matching the attachment's pixel
// width, not always a 32-bit RGBA8 word (spec §4.7).
func colorClearValue(format Enum, rgba8 uint32) uint32 {
	r := uint8(rgba8 >> 24)
	g := uint8(rgba8 >> 16)
	b := uint8(rgba8 >> 8)
	a := uint8(rgba8)
	switch format {
	case RGB565:
		return uint32(r>>3)<<11 | uint32(g>>2)<<5 | uint32(b>>3)
	case RGB5A1:
		aBit := uint32(0)
		if a >= 0x80 {
			aBit = 1
		}
		return uint32(r>>3)<<11 | uint32(g>>3)<<6 | uint32(b>>3)<<1 | aBit
	case RGBA4:
		return uint32(r>>4)<<12 | uint32(g>>4)<<8 | uint32(b>>4)<<4 | uint32(a>>4)
	case RGB8:
		return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	default: // RGBA8
		return rgba8
	}
}

// depthClearPattern packs a normalized [0,1] depth value and, for
// formats with a stencil channel, an 8-bit stencil value, into the
// fill word matching the attachment's depth format: a bare 16-bit
// value for DepthComponent16, or a 24.8 word for DepthComponent24/
// Depth24Stencil8.
func depthClearPattern(format Enum, depth float32, stencil uint8) uint32 {
	if depth < 0 {
		depth = 0
	} else if depth > 1 {
		depth = 1
	}
	if format == DepthComponent16 {
		return uint32(depth * 0xFFFF)
	}
	d := uint32(depth * 0xFFFFFF)
	return d<<8 | uint32(stencil)
}
