// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "github.com/ctrgfx/pica200/host"

// Flush implements glFlush: submit pending state and commands to the
// host GX queue without waiting for completion.
func (c *Context) Flush() error { return c.flush(true) }

// Finish implements glFinish: submit pending state and block until
// the host GX queue has drained.
func (c *Context) Finish() error {
	if err := c.flush(true); err != nil {
		return err
	}
	c.host.GX.WaitTransfer()
	return nil
}

// FlushState flushes pending state without submitting to the host
// (flush(send=false)); exported for the swap engine, which submits
// through its own sequencing instead of per-context.
func (c *Context) FlushState() error { return c.flush(false) }

// ColorBuffer resolves the bound framebuffer's color attachment to a
// physical surface descriptor, or ok=false if none is attached.
func (c *Context) ColorBuffer() (addr uintptr, w, h int, ok bool) {
	fb, found := c.heaps.framebuffers.Get(c.framebuffer)
	if !found {
		return 0, 0, 0, false
	}
	return fb.color.addressAndSize(c.heaps)
}

// ColorBufferFormat resolves the bound framebuffer's color
// attachment's native pixel format, or ok=false if none is attached.
func (c *Context) ColorBufferFormat() (format Enum, ok bool) {
	fb, found := c.heaps.framebuffers.Get(c.framebuffer)
	if !found {
		return 0, false
	}
	if fb.color.renderbuffer.Valid() {
		if rb, ok := c.heaps.renderbuffers.Get(fb.color.renderbuffer); ok {
			return rb.format, true
		}
	}
	if fb.color.texture.Valid() {
		if t, ok := c.heaps.textures.Get(fb.color.texture); ok {
			return t.NativeFormat, true
		}
	}
	return 0, false
}

// Host returns the context's host collaborator, for callers (the
// swap engine) that need to issue their own GX calls alongside the
// context's.
func (c *Context) Host() *host.Host { return c.host }

// ClearColorRGBA stores the packed clear color used by Clear.
func (c *Context) ClearColorRGBA(rgba uint32) { c.clearColor = rgba }
