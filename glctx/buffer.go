// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "github.com/ctrgfx/pica200/internal/objheap"

// Buffer is the vertex/index data object (spec §3 Data Model: "tag +
// heap-allocated linear pointer + usage hint + bound flag"). address
// is zero until the first BufferData call gives it storage.
type Buffer struct {
	target  Enum
	usage   Enum
	size    int
	address uintptr
	bound   bool
}

// GenBuffers allocates n fresh, empty buffer objects.
func (c *Context) GenBuffers(n int) []objheap.Handle {
	out := make([]objheap.Handle, n)
	for i := range out {
		out[i] = c.heaps.buffers.Alloc(Buffer{})
	}
	return out
}

// DeleteBuffers frees the given buffer objects, releasing any backing
// storage. A handle bound to the current context's array/element
// bindings is unbound first.
func (c *Context) DeleteBuffers(handles []objheap.Handle) {
	for _, h := range handles {
		if c.arrayBuffer == h {
			c.arrayBuffer = objheap.Handle{}
		}
		if c.elementArrayBuffer == h {
			c.elementArrayBuffer = objheap.Handle{}
		}
		if b, ok := c.heaps.buffers.Get(h); ok && b.address != 0 {
			c.host.Alloc.Free(b.address)
		}
		c.heaps.buffers.Free(h)
	}
}

// BindBuffer binds h to target (ArrayBuffer or ElementArrayBuffer).
func (c *Context) BindBuffer(target Enum, h objheap.Handle) error {
	switch target {
	case ArrayBuffer:
		c.arrayBuffer = h
	case ElementArrayBuffer:
		c.elementArrayBuffer = h
		c.markDirty(dirtyDraw)
	default:
		return errEnum(InvalidEnum)
	}
	if b, ok := c.heaps.buffers.Get(h); ok {
		b.target = target
		b.bound = true
	}
	return nil
}

func (c *Context) boundBufferHandle(target Enum) (objheap.Handle, error) {
	switch target {
	case ArrayBuffer:
		return c.arrayBuffer, nil
	case ElementArrayBuffer:
		return c.elementArrayBuffer, nil
	default:
		return objheap.Handle{}, errEnum(InvalidEnum)
	}
}

// BufferData (re)allocates target's storage and, if data is non-nil,
// copies it in. A nil data with size>0 allocates uninitialized
// storage, matching glBufferData's semantics.
func (c *Context) BufferData(target Enum, size int, data []byte, usage Enum) error {
	h, err := c.boundBufferHandle(target)
	if err != nil {
		return err
	}
	if !h.Valid() {
		return errEnum(InvalidOperation)
	}
	b, ok := c.heaps.buffers.Get(h)
	if !ok {
		return errEnum(InvalidOperation)
	}
	if b.address != 0 {
		c.host.Alloc.Free(b.address)
		b.address = 0
	}
	if size > 0 {
		addr := c.host.Alloc.Alloc(size)
		if addr == 0 {
			return errEnum(OutOfMemory)
		}
		b.address = addr
		b.size = size
		if data != nil {
			copyBytesToLinear(addr, data)
		}
	} else {
		b.size = 0
	}
	b.usage = usage
	if target == ArrayBuffer {
		c.markDirty(dirtyAttribs)
	} else {
		c.markDirty(dirtyDraw)
	}
	return nil
}

// BufferSubData updates a subrange of target's existing storage.
func (c *Context) BufferSubData(target Enum, offset, size int, data []byte) error {
	h, err := c.boundBufferHandle(target)
	if err != nil {
		return err
	}
	b, ok := c.heaps.buffers.Get(h)
	if !ok || b.address == 0 {
		return errEnum(InvalidOperation)
	}
	if offset < 0 || size < 0 || offset+size > b.size {
		return errEnum(InvalidValue)
	}
	copyBytesToLinear(b.address+uintptr(offset), data)
	return nil
}

// copyBytesToLinear is the only place glctx touches host memory
// directly as raw bytes; real builds back it with an unsafe write
// into the linear-heap region the allocator handed out. The core
// itself never dereferences host addresses elsewhere.
func copyBytesToLinear(addr uintptr, data []byte) {
	// Left to the host-integration build: the core never assumes a
	// particular memory model for linear/VRAM addresses beyond what
	// host.Allocator already encodes (spec Non-goals: no allocator
	// implementation lives here).
	_ = addr
	_ = data
}
