// Copyright 2025 The pica200 Authors. All rights reserved.

// Package shader implements the vendor shader-binary loader (DVLB/
// DVLP/DVLE, spec §4.4) and the Shader/Program/SharedData object
// model that sits behind glAttachShader/glLinkProgram/glUseProgram.
//
// Container parsing follows the same chunked-binary technique the
// teacher's gltf package uses for GLB containers (magic-tagged
// sections read via encoding/binary over a bytes.Reader), retargeted
// to DVLB/DVLP/DVLE's specific chunk shapes.
package shader

import (
	"errors"

	"github.com/ctrgfx/pica200/internal/objheap"
)

var (
	ErrBadContainer   = errors.New("shader: malformed binary container")
	ErrHandleMismatch = errors.New("shader: no handle with matching geometry flag")
	ErrLinkFailed     = errors.New("shader: program is not linkable")
)

// Register-range boundaries for uniform classification (spec §4.4).
const (
	attrRegMin = 0x00
	attrRegMax = 0x0F

	boolRegMin   = 0x78
	boolRegMax   = 0x87
	numBoolRegs  = boolRegMax - boolRegMin + 1

	intRegMin  = 0x70
	intRegMax  = 0x73
	numIntRegs = intRegMax - intRegMin + 1

	floatRegMin  = 0x10
	floatRegMax  = 0x6F
	numFloatRegs = floatRegMax - floatRegMin + 1
)

// outSemSentinel marks an outSems slot not written by this shader,
// used by outmap merging (spec §4.4 "Outmap merging for geometry").
const outSemSentinel = 0x1F1F1F1F

// SharedData is the DVLP-derived code/op-descriptor blob shared by
// every shader compiled from the same DVLP section. Multiple Shader
// records may reference one SharedData; refs counts those references,
// but nothing reads the count, and no code frees the blob when it
// drops to zero.
type SharedData struct {
	Code    []uint32
	Opdescs []uint32
	refs    int
}

// AttribInfo records one vertex-input attribute exposed by a linked
// vertex shader.
type AttribInfo struct {
	Name string
	Reg  uint8
}

// UniformInfo records one active uniform's location class and
// register range.
type UniformInfo struct {
	Name        string
	Kind        UniformKind
	StartReg    uint8
	EndReg      uint8
}

type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformInt
	UniformBool
)

// Shader is one compiled DVLE entry: a vertex or geometry stage, its
// entrypoint, its outmap, and its own constant-uniform values plus
// the dirty-bound uniform table a linked Program's dirty uniforms
// feed into.
type Shader struct {
	Geometry     bool
	MergeOutmaps bool
	Entrypoint   uint32
	GeoMode      uint8

	Symbols []byte

	Attribs  []AttribInfo
	Uniforms []UniformInfo

	OutMask    uint32
	OutTotal   int
	OutSems    [16]uint32
	OutClock   uint32
	UseTexcoords bool

	ConstBoolMask uint16
	ConstBool     uint16
	ConstIntMask  uint8
	ConstInt      [numIntRegs]uint32
	ConstFloatMask uint32
	ConstFloat    [numFloatRegs][3]uint32

	Shared *SharedData

	// needUpload is set whenever the program this shader is linked
	// into must re-issue code/opdesc register writes on next flush.
	needUpload bool
}

// NeedsUpload reports whether the translator must re-emit this
// shader's code/opdesc registers (spec §4.1 step 5).
func (s *Shader) NeedsUpload() bool { return s.needUpload }

// ClearUpload marks the code/opdesc registers as already current.
func (s *Shader) ClearUpload() { s.needUpload = false }

// Program is the attach/link target: two attach slots (vertex,
// geometry) and two linked slots, mirroring the spec's "attached
// slot copied to linked slot on successful link" semantics.
type Program struct {
	attached [2]objheap.Handle // [0]=vertex, [1]=geometry
	linked   [2]objheap.Handle

	linkFailed bool

	// Merged outmap, valid only once linked.
	OutSems  [16]uint32
	OutTotal int
	OutClock uint32
	UseTexcoords bool

	// Live application-set uniform values (glUniform*), separate from
	// each Shader's compile-time constant uniforms above. Indexed by
	// register offset within their kind's range.
	FloatUniforms [numFloatRegs][4]float32
	IntUniforms   [numIntRegs][4]int32
	BoolUniforms  uint16
	UniformsDirty bool
}

var (
	shaders  = objheap.New[Shader](objheap.KindShader)
	programs = objheap.New[Program](objheap.KindProgram)
)

// CreateShader allocates an empty shader object; it has no binary
// content until ShaderBinary is called.
func CreateShader(geometry bool) objheap.Handle {
	return shaders.Alloc(Shader{Geometry: geometry})
}

// DeleteShader releases h's shared data reference (if any) and frees
// the slot.
func DeleteShader(h objheap.Handle) {
	if s, ok := shaders.Get(h); ok {
		releaseShared(s.Shared)
	}
	shaders.Free(h)
}

// GetShader resolves a shader handle to its record.
func GetShader(h objheap.Handle) (*Shader, bool) { return shaders.Get(h) }

// CreateProgram allocates an empty program object.
func CreateProgram() objheap.Handle {
	return programs.Alloc(Program{})
}

// DeleteProgram frees the slot; attached shaders are not themselves
// deleted (they may be attached to other programs or still owned by
// the caller).
func DeleteProgram(h objheap.Handle) {
	programs.Free(h)
}

// GetProgram resolves a program handle to its record.
func GetProgram(h objheap.Handle) (*Program, bool) { return programs.Get(h) }

func slotOf(geometry bool) int {
	if geometry {
		return 1
	}
	return 0
}

// AttachShader attaches sh to p's vertex or geometry slot, replacing
// whatever was attached there before.
func AttachShader(p objheap.Handle, sh objheap.Handle) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	s, ok := shaders.Get(sh)
	if !ok {
		return errors.New("shader: no such shader")
	}
	prog.attached[slotOf(s.Geometry)] = sh
	return nil
}

// DetachShader clears whichever attach slot currently holds sh.
func DetachShader(p objheap.Handle, sh objheap.Handle) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	for i, h := range prog.attached {
		if h == sh {
			prog.attached[i] = objheap.Handle{}
		}
	}
	return nil
}

func retainShared(sd *SharedData) {
	if sd != nil {
		sd.refs++
	}
}

func releaseShared(sd *SharedData) {
	if sd != nil {
		sd.refs--
	}
}
