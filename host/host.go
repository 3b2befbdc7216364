// Copyright 2025 The pica200 Authors. All rights reserved.

// Package host declares the interfaces the core calls into but does
// not implement: linear-heap/VRAM allocation, address classification,
// and the GSP/GX primitives for memory-fill, display-transfer,
// texture-copy and command-list submission. Per the spec (§1, §5)
// these are opaque host collaborators; a real build links a concrete
// implementation (e.g. a libctru/KYGX binding) and registers it with
// Register, mirroring how the teacher's driver package lets platform
// backends register themselves from an init function.
package host

import (
	"errors"
	"sync"
)

// ErrNoMemory means the host allocator could not satisfy a request.
var ErrNoMemory = errors.New("host: out of memory")

// ErrFatal means the host is in an unrecoverable state; per the
// spec's error design (§7), callers treat this as an assertion
// failure, not a recoverable GL error.
var ErrFatal = errors.New("host: fatal error")

// Allocator is the linear-heap or VRAM allocator the spec treats as
// an opaque `alloc(size)`/`free(ptr)` primitive (§1).
type Allocator interface {
	// Alloc returns a newly allocated, zeroed region of size bytes, or
	// 0 if the allocator is out of memory.
	Alloc(size int) uintptr
	// Free releases a region previously returned by Alloc. Freeing 0
	// is a no-op.
	Free(ptr uintptr)
	// IsLinear reports whether ptr lies within the linear heap.
	IsLinear(ptr uintptr) bool
	// IsVRAM reports whether ptr lies within VRAM.
	IsVRAM(ptr uintptr) bool
	// PhysOf converts a linear-heap or VRAM virtual address to its
	// physical address, as the GPU's register file expects.
	PhysOf(ptr uintptr) uint32
}

// MemoryFill is one side of a GX memory-fill command (§4.7 Clear).
type MemoryFill struct {
	Addr      uintptr
	Size      int
	Value     uint32
	FillWidth FillWidth
}

// FillWidth selects the GX memory-fill element width.
type FillWidth int

// Fill widths (§6, bit-exact).
const (
	Fill16 FillWidth = 0
	Fill24 FillWidth = 1
	Fill32 FillWidth = 2
)

// TransferFormat is the GX display-transfer pixel format enum (§6,
// bit-exact).
type TransferFormat int

const (
	TransferRGBA8  TransferFormat = 0
	TransferRGB8   TransferFormat = 1
	TransferRGB565 TransferFormat = 2
	TransferRGB5A1 TransferFormat = 3
	TransferRGBA4  TransferFormat = 4
)

// Downscale is the GX display-transfer downscale enum (§6, bit-exact).
type Downscale int

const (
	DownscaleNone Downscale = 0
	Downscale1x2  Downscale = 1
	Downscale2x2  Downscale = 2
)

// DisplayTransfer describes one display-transfer operation (§4.7).
type DisplayTransfer struct {
	SrcAddr, DstAddr       uintptr
	SrcW, SrcH             int
	DstW, DstH             int
	SrcFormat, DstFormat   TransferFormat
	VerticalFlip, MakeTiled bool
	Scale                  Downscale
}

// TextureCopy describes one bit-exact block texture-copy (§4.5).
type TextureCopy struct {
	SrcAddr, DstAddr uintptr
	Size             int
}

// CommandList describes a finalized GPU command list ready for
// submission (§4.2).
type CommandList struct {
	Addr  uintptr
	Words int
	// Flush requests that the host flush the entire linear heap before
	// submission (glctx sets it from Params.FlushAllLinear); when false
	// the host relies on the per-region flushes the caller has already
	// issued (§4.1 flush step 9).
	Flush bool
}

// GX is the host's GSP/GX command submission surface. Calls block the
// caller only as far as the spec's suspension points require (§5):
// ProcessCommandList returns once submission is queued; WaitTransfer
// blocks until a previously issued DisplayTransfer completes.
type GX interface {
	// Lock acquires the host's GX command-queue mutex (§5).
	Lock()
	// Unlock releases it.
	Unlock()

	// MemoryFill issues one or two memory-fill operations in a single
	// GX call. b may be nil; a must not be.
	MemoryFill(a, b *MemoryFill) error

	// DisplayTransfer issues an asynchronous display transfer and
	// invokes done (if non-nil) on completion.
	DisplayTransfer(t DisplayTransfer, done func()) error

	// WaitTransfer blocks until the most recently issued
	// DisplayTransfer completes.
	WaitTransfer()

	// TextureCopy issues a synchronous bit-exact block copy (§4.5).
	TextureCopy(c TextureCopy) error

	// ProcessCommandList submits a finalized command list for
	// asynchronous GPU execution (§4.1 step 9).
	ProcessCommandList(l CommandList) error

	// SwapDisplayBuffers requests the host swap the given screen's
	// front/back display buffers (§4.7 step 3).
	SwapDisplayBuffers(screen Screen, right bool)

	// WaitVBlank blocks until the next vertical blank (§4.7 step 5).
	WaitVBlank()
}

// Screen identifies a physical LCD panel.
type Screen int

const (
	ScreenTop Screen = iota
	ScreenBottom
)

// Side identifies which eye's framebuffer a context targets (§3).
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Display resolves the LCD/framebuffer metadata that the spec (§9c)
// says a portable implementation should query rather than hard-code.
type Display interface {
	// DisplayBuffer returns the current display (scan-out) buffer
	// address and dimensions for the given screen/side.
	DisplayBuffer(screen Screen, side Side) (addr uintptr, w, h int, format TransferFormat)
}

// Host bundles the allocator, GX queue and display metadata a context
// needs; it is the single opaque collaborator the core is handed at
// construction time.
type Host struct {
	Alloc   Allocator
	GX      GX
	Display Display
}

var (
	mu      sync.Mutex
	current *Host
)

// Register installs h as the process-wide host collaborator. Intended
// to be called once during platform initialization, mirroring the
// teacher's driver.Register.
func Register(h *Host) {
	mu.Lock()
	defer mu.Unlock()
	current = h
}

// Current returns the registered Host, or nil if none has been
// registered yet.
func Current() *Host {
	mu.Lock()
	defer mu.Unlock()
	return current
}
