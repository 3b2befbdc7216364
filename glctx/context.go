// Copyright 2025 The pica200 Authors. All rights reserved.

// Package glctx implements the per-context state mirror, dirty-state
// engine, resource objects, state→GPU translator and draw path (spec
// §4.1, §4.3, parts of §4.6). One Context is the single exclusively
// owned mirror of a logical GL context's pipeline state.
package glctx

import (
	"errors"
	"log"

	"github.com/ctrgfx/pica200/cmdlist"
	"github.com/ctrgfx/pica200/host"
	"github.com/ctrgfx/pica200/internal/objheap"
)

const errPrefix = "glctx: "

// dirty is the 17-bit dirty-domain bitset described in spec §4.1. Bit
// order matches the vendor source's CONTEXT_FLAG_* constants. flush
// (translate.go) does not walk the bits in numeric order: it handles
// program before attributes and combiners after textures.
type dirty uint32

const (
	dirtyFramebuffer dirty = 1 << iota
	dirtyDraw
	dirtyViewport
	dirtyScissor
	dirtyAttribs
	dirtyProgram
	dirtyCombiners
	dirtyFragOp
	dirtyDepthMap
	dirtyColorDepth
	dirtyEarlyDepth
	dirtyEarlyDepthClear
	dirtyStencil
	dirtyCullFace
	dirtyAlpha
	dirtyBlend
	dirtyTexture

	dirtyAll = dirty(1<<17) - 1
)

// Params are the fixed, caller-supplied parameters of a context:
// which physical screen/side it targets, whether it waits for
// VSync, whether it horizontally flips on transfer, whether it
// flushes the whole linear heap on submission rather than relying on
// per-region flushes, the downscale mode applied on swap, and the
// command-list buffer capacity. This mirrors the vendor source's
// glassInitParams/glassSettings pair, folded into a single struct in
// the spirit of the teacher's plain-struct Context parameters
// (engine/internal/ctxt).
type Params struct {
	Screen          host.Screen
	Side            host.Side
	VSync           bool
	HorizontalFlip  bool
	FlushAllLinear  bool
	Downscale       host.Downscale
	CmdListWords    int
}

// texUnit is one of the three texture units a context exposes.
type texUnit struct {
	bound objheap.Handle // Texture handle, zero if unbound.
}

// combinerStage is the state of one of the six fixed-function
// texture-combiner stages (spec §6 vendor extensions).
type combinerStage struct {
	rgbSrc, alphaSrc   [3]Enum
	rgbOp, alphaOp     [3]Enum
	rgbFunc, alphaFunc Enum
	rgbScale, alphaScale float32
	color              uint32 // Constant color, packed RGBA.
}

// Context is a single GL context's complete pipeline state mirror.
// Not safe for concurrent use: a single context must not be driven
// from two goroutines at once (spec §5).
type Context struct {
	Params Params
	host   *host.Host
	enc    *cmdlist.Encoder

	flags dirty

	firstError Enum

	// Buffers.
	arrayBuffer, elementArrayBuffer objheap.Handle

	// Framebuffer.
	framebuffer  objheap.Handle
	renderbuffer objheap.Handle
	clearColor   uint32
	clearDepth   float32
	clearStencil uint8
	block32      bool

	// Viewport.
	viewportX, viewportY, viewportW, viewportH int32

	// Scissor.
	scissorEnabled, scissorInverted bool
	scissorX, scissorY, scissorW, scissorH int32

	// Program.
	currentProgram objheap.Handle

	// Attributes.
	attribs          [numAttribRegs]attribute
	numEnabledAttribs int

	// Fragment.
	fragMode Enum

	// Color / depth masks.
	writeRed, writeGreen, writeBlue, writeAlpha, writeDepth bool
	depthTest bool
	depthFunc Enum

	// Depth map.
	depthNear, depthFar float32
	polygonOffset       bool
	polygonUnits        float32

	// Early depth.
	earlyDepthTest   bool
	clearEarlyDepth  float32
	earlyDepthFunc   Enum

	// Stencil.
	stencilTest                        bool
	stencilFunc                        Enum
	stencilRef                         int32
	stencilMask, stencilWriteMask      uint32
	stencilFail, stencilDepthFail, stencilPass Enum

	// Cull face.
	cullFace      bool
	cullFaceMode  Enum
	frontFaceMode Enum

	// Alpha.
	alphaTest bool
	alphaFunc Enum
	alphaRef  float32

	// Blend / logic op.
	blendMode                                       bool
	blendColor                                       uint32
	blendEqRGB, blendEqAlpha                         Enum
	blendSrcRGB, blendDstRGB, blendSrcAlpha, blendDstAlpha Enum
	logicOp                                          Enum

	// Texture.
	textureUnits     [numTexUnits]texUnit
	activeTextureUnit int

	// Combiners.
	combinerStage int
	combiners     [numCombinerStages]combinerStage

	heaps *heaps
}

const (
	numAttribRegs      = 16
	maxEnabledAttribs  = 12
	numTexUnits        = 3
	numCombinerStages  = 6
)

// heaps holds the object heaps a Context's resource handles are
// allocated from. These are shared across contexts in a real build
// (GL objects are not context-local in the spec's data model, only
// the *bindings* are), so they live behind a pointer a caller can
// share between two Contexts that are meant to see the same objects.
type heaps struct {
	buffers       *objheap.Heap[Buffer]
	renderbuffers *objheap.Heap[Renderbuffer]
	framebuffers  *objheap.Heap[Framebuffer]
	textures      *objheap.Heap[Texture]
}

// NewHeaps creates a fresh, empty object-heap set suitable for sharing
// across every Context in a process.
func NewHeaps() *heaps {
	return &heaps{
		buffers:       objheap.New[Buffer](objheap.KindBuffer),
		renderbuffers: objheap.New[Renderbuffer](objheap.KindRenderbuffer),
		framebuffers:  objheap.New[Framebuffer](objheap.KindFramebuffer),
		textures:      objheap.New[Texture](objheap.KindTexture),
	}
}

var errNoHost = errors.New(errPrefix + "no host registered")

// NewContext creates a Context bound to h's collaborators, sharing the
// given object heaps. Combiner stages are initialized to the GL
// default (REPLACE, PRIMARY_COLOR), per SPEC_FULL §3.1's supplemented
// default-state note.
func NewContext(h *host.Host, heaps *heaps, p Params) (*Context, error) {
	if h == nil {
		return nil, errNoHost
	}
	c := &Context{
		Params: p,
		host:   h,
		enc:    cmdlist.New(p.CmdListWords),
		heaps:  heaps,
		writeRed: true, writeGreen: true, writeBlue: true, writeAlpha: true, writeDepth: true,
		depthFunc: Less,
		fragMode:  0,
		cullFaceMode: Back, frontFaceMode: CCW,
		alphaFunc: Always,
		blendEqRGB: FuncAdd, blendEqAlpha: FuncAdd,
		blendSrcRGB: BlendOne, blendDstRGB: BlendZero,
		blendSrcAlpha: BlendOne, blendDstAlpha: BlendZero,
		stencilFunc: Always, stencilFail: Keep, stencilDepthFail: Keep, stencilPass: Keep,
		stencilMask: 0xFFFFFFFF, stencilWriteMask: 0xFFFFFFFF,
		depthFar: 1,
	}
	for i := range c.attribs {
		c.attribs[i] = newAttribute()
	}
	for i := range c.combiners {
		c.combiners[i] = combinerStage{
			rgbSrc:   [3]Enum{CombSrcPrimaryColor, CombSrcPrimaryColor, CombSrcPrimaryColor},
			alphaSrc: [3]Enum{CombSrcPrimaryColor, CombSrcPrimaryColor, CombSrcPrimaryColor},
			rgbFunc:  CombReplace,
			alphaFunc: CombReplace,
			rgbScale: 1, alphaScale: 1,
		}
	}
	return c, nil
}

// Global "current context" pointer (spec §5: process-wide, mutated by
// Bind). Guarded informally by the same single-threaded-per-context
// rule the spec assumes; the core never reenters a flush, so no lock
// is taken here, mirroring the vendor source's bare g_Context global.
var (
	current *Context
	previous *Context
)

// Bind makes c the current context. If c differs from the previously
// bound context and is not the context that was just unbound, every
// dirty bit is set, because the GPU register file reflects whichever
// context last flushed (spec §4.1).
func Bind(c *Context) {
	if c == current {
		return
	}
	skipUpdate := current == nil && c == previous
	previous = current
	current = c
	if current != nil && !skipUpdate {
		current.flags = dirtyAll
	}
	if current != nil {
		log.Printf("glctx: context bound (screen=%v side=%v)", current.Params.Screen, current.Params.Side)
	}
}

// Current returns the process-wide current context, or nil.
func Current() *Context { return current }

func (c *Context) markDirty(d dirty) { c.flags |= d }

// SetError records e in the first-error slot if it is still NoError
// (spec §4.1, "first error wins").
func (c *Context) SetError(e Enum) {
	if c.firstError == NoError {
		c.firstError = e
	}
}

// GetError returns and clears the first-error slot.
func (c *Context) GetError() Enum {
	e := c.firstError
	c.firstError = NoError
	return e
}
