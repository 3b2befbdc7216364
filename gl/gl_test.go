// Copyright 2025 The pica200 Authors. All rights reserved.

package gl

import (
	"testing"

	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/host"
	"github.com/ctrgfx/pica200/internal/objheap"
)

type fakeAllocator struct{ next uintptr }

func (a *fakeAllocator) Alloc(size int) uintptr   { a.next += 0x1000; return a.next }
func (a *fakeAllocator) Free(uintptr)             {}
func (a *fakeAllocator) IsLinear(uintptr) bool    { return true }
func (a *fakeAllocator) IsVRAM(uintptr) bool      { return false }
func (a *fakeAllocator) PhysOf(p uintptr) uint32  { return uint32(p) }

type fakeGX struct{}

func (fakeGX) Lock()   {}
func (fakeGX) Unlock() {}
func (fakeGX) MemoryFill(a, b *host.MemoryFill) error                    { return nil }
func (fakeGX) DisplayTransfer(t host.DisplayTransfer, done func()) error { return nil }
func (fakeGX) WaitTransfer()                                            {}
func (fakeGX) TextureCopy(c host.TextureCopy) error                     { return nil }
func (fakeGX) ProcessCommandList(l host.CommandList) error               { return nil }
func (fakeGX) SwapDisplayBuffers(screen host.Screen, right bool)         {}
func (fakeGX) WaitVBlank()                                               {}

func newTestContext(t *testing.T) *glctx.Context {
	t.Helper()
	h := &host.Host{Alloc: &fakeAllocator{}, GX: fakeGX{}}
	c, err := glctx.NewContext(h, glctx.NewHeaps(), glctx.Params{CmdListWords: 256})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	glctx.Bind(c)
	return c
}

// TestHandleRoundTrip checks that the Kind/Gen/Index bit-packing used
// to turn an objheap.Handle into a flat Handle name survives the trip
// back, for every field independently.
func TestHandleRoundTrip(t *testing.T) {
	cases := []objheap.Handle{
		{Kind: 1, Gen: 1, Index: 1},
		{Kind: 3, Gen: 0xFFF, Index: 0xFFFF},
		{Kind: 5, Gen: 42, Index: 12345},
	}
	for _, h := range cases {
		got := fromHandle(toHandle(h))
		if got != h {
			t.Fatalf("handle round trip:\nhave %+v\nwant %+v", got, h)
		}
	}
}

// TestInvalidHandleIsZero checks that a zero-Kind (invalid) handle
// packs to the zero Handle, matching GL's convention that object name
// 0 means "no object".
func TestInvalidHandleIsZero(t *testing.T) {
	if got := toHandle(objheap.Handle{}); got != 0 {
		t.Fatalf("toHandle(zero value):\nhave %v\nwant 0", got)
	}
}

func TestGenDeleteBuffersRoundTrip(t *testing.T) {
	newTestContext(t)
	handles := GenBuffers(2)
	if len(handles) != 2 {
		t.Fatalf("GenBuffers(2):\nhave %d handles\nwant 2", len(handles))
	}
	if handles[0] == 0 || handles[1] == 0 {
		t.Fatalf("GenBuffers(2) returned a zero handle: %v", handles)
	}
	if err := BindBuffer(ArrayBuffer, handles[0]); err != nil {
		t.Fatalf("BindBuffer: %v", err)
	}
	DeleteBuffers(handles)
}

// TestClearColorDoesNotPanic checks that the veneer's ClearColor
// reaches SetClearColor's clamp path without a bound framebuffer; the
// exact clamp arithmetic is covered in package glctx's own tests.
func TestClearColorDoesNotPanic(t *testing.T) {
	newTestContext(t)
	ClearColor(2, -1, 0.5, 1)
	ClearDepthf(1.5)
	ClearStencil(-1)
}

func TestShaderProgramLifecycleThroughVeneer(t *testing.T) {
	newTestContext(t)
	vs := CreateShader(false)
	defer DeleteShader(vs)
	p := CreateProgram()
	defer DeleteProgram(p)

	if err := AttachShader(p, vs); err != nil {
		t.Fatalf("AttachShader: %v", err)
	}
	if err := DetachShader(p, vs); err != nil {
		t.Fatalf("DetachShader: %v", err)
	}
}

func TestUniformLocationUnknownName(t *testing.T) {
	newTestContext(t)
	p := CreateProgram()
	defer DeleteProgram(p)
	if err := UseProgram(p); err != nil {
		t.Fatalf("UseProgram: %v", err)
	}
	if loc := GetUniformLocation("does_not_exist"); loc != -1 {
		t.Fatalf("GetUniformLocation(unknown):\nhave %d\nwant -1", loc)
	}
}

func TestProgramStatusUnlinked(t *testing.T) {
	newTestContext(t)
	p := CreateProgram()
	defer DeleteProgram(p)
	if LinkStatus(p) {
		t.Fatalf("LinkStatus(never-linked program): have true, want false")
	}
	if n := ActiveUniformCount(p); n != 0 {
		t.Fatalf("ActiveUniformCount(unlinked):\nhave %d\nwant 0", n)
	}
}

func TestShaderStatusNoBinary(t *testing.T) {
	newTestContext(t)
	sh := CreateShader(false)
	defer DeleteShader(sh)
	if ShaderHasBinary(sh) {
		t.Fatalf("ShaderHasBinary(no ShaderBinary call yet): have true, want false")
	}
	if ShaderIsGeometry(sh) {
		t.Fatalf("ShaderIsGeometry(created as vertex): have true, want false")
	}
}

// TestUniform4fGetUniformfvScenario exercises the spec's end-to-end
// glUniform4f-then-glGetUniformfv readback: the value set must come
// back unchanged (the store is the caller's own float32, not yet
// round-tripped through the PICA200 register pack/unpack).
func TestUniform4fGetUniformfvScenario(t *testing.T) {
	newTestContext(t)
	p := CreateProgram()
	defer DeleteProgram(p)
	if err := UseProgram(p); err != nil {
		t.Fatalf("UseProgram: %v", err)
	}
	// A location within the float register range, picked independently
	// of any particular linked shader's active-uniform table.
	const loc = int32(0x10)
	Uniform4f(loc, 1, 2, 3, 4)
	got, ok := GetUniformfv(loc)
	if !ok {
		t.Fatalf("GetUniformfv: not ok")
	}
	if want := [4]float32{1, 2, 3, 4}; got != want {
		t.Fatalf("GetUniformfv after Uniform4f:\nhave %v\nwant %v", got, want)
	}
}

func TestUniformMatrix4fvRejectsTranspose(t *testing.T) {
	newTestContext(t)
	p := CreateProgram()
	defer DeleteProgram(p)
	if err := UseProgram(p); err != nil {
		t.Fatalf("UseProgram: %v", err)
	}
	values := make([]float32, 16)
	if err := UniformMatrix4fv(0x10, true, values); err == nil {
		t.Fatalf("UniformMatrix4fv(transpose=true): want error, got nil")
	}
	if err := UniformMatrix4fv(0x10, false, values); err != nil {
		t.Fatalf("UniformMatrix4fv(transpose=false): %v", err)
	}
}
