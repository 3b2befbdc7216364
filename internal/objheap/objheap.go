// Copyright 2025 The pica200 Authors. All rights reserved.

// Package objheap implements the object heap that backs every GL
// resource family (buffers, textures, renderbuffers, framebuffers,
// shaders, programs).
//
// The vendor source emulates a downcast by reading the first word of
// whatever a GLuint handle points to and comparing it against a type
// tag. Per the spec's design notes (§9), this implementation instead
// uses an enumerated Kind as the discriminant and a generational index
// into a per-kind slab: Handle.Kind replaces the tagged-pointer read,
// and Handle.Gen catches use of a handle whose slot was freed and
// reused, a hazard the tagged-pointer encoding cannot detect at all.
package objheap

import (
	"github.com/ctrgfx/pica200/internal/bitm"
)

// Kind discriminates the family a Handle belongs to. The zero Kind is
// reserved so that a zero Handle is always invalid, matching the
// spec's "all-zero handle is invalid object" rule.
type Kind uint8

// Object kinds, numbered after the vendor container's type tags.
const (
	_ Kind = iota
	KindBuffer
	KindRenderbuffer
	KindFramebuffer
	KindProgram
	KindShader
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindRenderbuffer:
		return "renderbuffer"
	case KindFramebuffer:
		return "framebuffer"
	case KindProgram:
		return "program"
	case KindShader:
		return "shader"
	case KindTexture:
		return "texture"
	default:
		return "invalid"
	}
}

// Handle identifies a live object in a Heap. The zero Handle is the
// spec's "invalid object" and is never returned by Heap.Alloc.
type Handle struct {
	Kind  Kind
	Index uint32
	Gen   uint32
}

// Valid reports whether h has a non-zero Kind. It does not by itself
// guarantee the object is still live; use Heap.Get for that.
func (h Handle) Valid() bool { return h.Kind != 0 }

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Heap is a slab of live objects of a single Kind, with freed slots
// recycled by index and a generation counter guarding against a stale
// Handle resurrecting a reused slot.
type Heap[T any] struct {
	kind  Kind
	free  bitm.Bitm[uint32]
	slots []slot[T]
}

// New creates a Heap for the given Kind.
func New[T any](kind Kind) *Heap[T] {
	return &Heap[T]{kind: kind}
}

// Alloc inserts value into the heap and returns its Handle. No
// destructor runs on whatever occupied the recycled slot previously;
// callers are responsible for zeroing value as the spec requires
// ("constructors... zero, and return a handle").
func (h *Heap[T]) Alloc(value T) Handle {
	idx, ok := h.free.Search()
	if !ok {
		idx = h.free.Grow(1)
	}
	h.free.Set(idx)
	for idx >= len(h.slots) {
		h.slots = append(h.slots, slot[T]{})
	}
	h.slots[idx].live = true
	h.slots[idx].value = value
	return Handle{Kind: h.kind, Index: uint32(idx), Gen: h.slots[idx].gen}
}

// Get returns a pointer to the object identified by h, and whether h
// is a live handle of this heap's Kind. The returned pointer is valid
// only until the next call to Free for the same slot.
func (h *Heap[T]) Get(handle Handle) (*T, bool) {
	if handle.Kind != h.kind {
		return nil, false
	}
	i := int(handle.Index)
	if i < 0 || i >= len(h.slots) {
		return nil, false
	}
	s := &h.slots[i]
	if !s.live || s.gen != handle.Gen {
		return nil, false
	}
	return &s.value, true
}

// Free releases the slot identified by handle, bumping its generation
// so that any other outstanding copy of handle is recognized as stale.
// Freeing an invalid or already-free handle is a silent no-op, which
// is what the spec requires of repeated glDelete* calls.
func (h *Heap[T]) Free(handle Handle) {
	if handle.Kind != h.kind {
		return
	}
	i := int(handle.Index)
	if i < 0 || i >= len(h.slots) || !h.slots[i].live || h.slots[i].gen != handle.Gen {
		return
	}
	var zero T
	h.slots[i].value = zero
	h.slots[i].live = false
	h.slots[i].gen++
	h.free.Unset(i)
}

// Len returns the number of live objects in the heap.
func (h *Heap[T]) Len() int { return h.free.Len() - h.free.Rem() }
