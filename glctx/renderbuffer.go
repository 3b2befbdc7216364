// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "github.com/ctrgfx/pica200/internal/objheap"

// Renderbuffer is a dedicated color/depth/stencil surface (spec §3:
// format + dimensions + heap-allocated backing store). Renderbuffers
// are always linearly laid out, unlike Texture's tiled storage.
type Renderbuffer struct {
	format  Enum
	width   int
	height  int
	address uintptr
}

// GenRenderbuffers allocates n fresh, empty renderbuffer objects.
func (c *Context) GenRenderbuffers(n int) []objheap.Handle {
	out := make([]objheap.Handle, n)
	for i := range out {
		out[i] = c.heaps.renderbuffers.Alloc(Renderbuffer{})
	}
	return out
}

// DeleteRenderbuffers frees the given renderbuffer objects.
func (c *Context) DeleteRenderbuffers(handles []objheap.Handle) {
	for _, h := range handles {
		if c.renderbuffer == h {
			c.renderbuffer = objheap.Handle{}
		}
		if rb, ok := c.heaps.renderbuffers.Get(h); ok && rb.address != 0 {
			c.host.Alloc.Free(rb.address)
		}
		c.heaps.renderbuffers.Free(h)
	}
}

// BindRenderbuffer binds h as the current renderbuffer.
func (c *Context) BindRenderbuffer(h objheap.Handle) {
	c.renderbuffer = h
}

// bytesPerPixel returns the per-pixel storage size for a renderbuffer
// internal format.
func bytesPerPixel(format Enum) int {
	switch format {
	case RGBA8, DepthComponent24, Depth24Stencil8:
		return 4
	case RGB8:
		return 3
	case RGB565, RGB5A1, RGBA4, DepthComponent16:
		return 2
	default:
		return 0
	}
}

// RenderbufferStorage (re)allocates the bound renderbuffer's backing
// store for the given format and dimensions.
func (c *Context) RenderbufferStorage(format Enum, width, height int) error {
	if !c.renderbuffer.Valid() {
		return errEnum(InvalidOperation)
	}
	bpp := bytesPerPixel(format)
	if bpp == 0 || width <= 0 || height <= 0 {
		return errEnum(InvalidValue)
	}
	rb, ok := c.heaps.renderbuffers.Get(c.renderbuffer)
	if !ok {
		return errEnum(InvalidOperation)
	}
	if rb.address != 0 {
		c.host.Alloc.Free(rb.address)
		rb.address = 0
	}
	size := bpp * width * height
	addr := c.host.Alloc.Alloc(size)
	if addr == 0 {
		return errEnum(OutOfMemory)
	}
	rb.format = format
	rb.width = width
	rb.height = height
	rb.address = addr
	c.markDirty(dirtyFramebuffer)
	return nil
}

// RenderbufferParams mirrors the glGetRenderbufferParameteriv query
// subset this core tracks: internal format and dimensions.
type RenderbufferParams struct {
	Format Enum
	Width  int
	Height int
}

// GetRenderbufferParameteriv implements glGetRenderbufferParameteriv
// against the bound renderbuffer.
func (c *Context) GetRenderbufferParameteriv() (RenderbufferParams, error) {
	if !c.renderbuffer.Valid() {
		return RenderbufferParams{}, errEnum(InvalidOperation)
	}
	rb, ok := c.heaps.renderbuffers.Get(c.renderbuffer)
	if !ok {
		return RenderbufferParams{}, errEnum(InvalidOperation)
	}
	return RenderbufferParams{Format: rb.format, Width: rb.width, Height: rb.height}, nil
}
