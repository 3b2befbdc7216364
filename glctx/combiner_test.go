// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import (
	"testing"

	"github.com/ctrgfx/pica200/host"
)

type fakeAllocator struct{ next uintptr }

func (a *fakeAllocator) Alloc(size int) uintptr     { a.next += 0x1000; return a.next }
func (a *fakeAllocator) Free(uintptr)               {}
func (a *fakeAllocator) IsLinear(uintptr) bool      { return true }
func (a *fakeAllocator) IsVRAM(uintptr) bool        { return false }
func (a *fakeAllocator) PhysOf(p uintptr) uint32    { return uint32(p) }

type fakeGX struct{}

func (fakeGX) Lock()                                          {}
func (fakeGX) Unlock()                                         {}
func (fakeGX) MemoryFill(a, b *host.MemoryFill) error          { return nil }
func (fakeGX) DisplayTransfer(t host.DisplayTransfer, done func()) error { return nil }
func (fakeGX) WaitTransfer()                                   {}
func (fakeGX) TextureCopy(c host.TextureCopy) error             { return nil }
func (fakeGX) ProcessCommandList(l host.CommandList) error      { return nil }
func (fakeGX) SwapDisplayBuffers(screen host.Screen, right bool) {}
func (fakeGX) WaitVBlank()                                      {}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	h := &host.Host{Alloc: &fakeAllocator{}, GX: fakeGX{}}
	c, err := NewContext(h, NewHeaps(), Params{CmdListWords: 256})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c
}

func TestCombinerStageValidation(t *testing.T) {
	c := newTestContext(t)
	if err := c.CombinerStagePICA(0); err != nil {
		t.Fatalf("CombinerStagePICA(0): %v", err)
	}
	if err := c.CombinerStagePICA(numCombinerStages); err == nil {
		t.Fatalf("CombinerStagePICA(%d): want error, got nil", numCombinerStages)
	}
	if err := c.CombinerStagePICA(-1); err == nil {
		t.Fatalf("CombinerStagePICA(-1): want error, got nil")
	}
}

func TestCombinerFuncValidation(t *testing.T) {
	c := newTestContext(t)
	if err := c.CombinerFuncPICA(true, CombDot3RGBA); err != nil {
		t.Fatalf("CombinerFuncPICA(valid): %v", err)
	}
	if err := c.CombinerFuncPICA(true, Enum(0xDEAD)); err == nil {
		t.Fatalf("CombinerFuncPICA(bad): want error, got nil")
	}
}

func TestCombinerScaleValidation(t *testing.T) {
	c := newTestContext(t)
	for _, v := range []float32{1, 2, 4} {
		if err := c.CombinerScalePICA(true, v); err != nil {
			t.Fatalf("CombinerScalePICA(%v): %v", v, err)
		}
	}
	if err := c.CombinerScalePICA(true, 3); err == nil {
		t.Fatalf("CombinerScalePICA(3): want error, got nil")
	}
}

func TestSetCapabilityUnknown(t *testing.T) {
	c := newTestContext(t)
	if err := c.SetCapability(Enum(0xDEAD), true); err == nil {
		t.Fatalf("SetCapability(unknown): want error, got nil")
	}
}

func TestSetCapabilityRoundTrip(t *testing.T) {
	c := newTestContext(t)
	if err := c.SetCapability(DepthTest, true); err != nil {
		t.Fatalf("SetCapability(DepthTest,true): %v", err)
	}
	got, err := c.IsEnabled(DepthTest)
	if err != nil {
		t.Fatalf("IsEnabled(DepthTest): %v", err)
	}
	if !got {
		t.Fatalf("IsEnabled(DepthTest) after enable:\nhave false\nwant true")
	}
	if c.flags&dirtyColorDepth == 0 {
		t.Fatalf("SetCapability(DepthTest) did not mark dirtyColorDepth")
	}
}

func TestSetClearColorClamps(t *testing.T) {
	c := newTestContext(t)
	c.SetClearColor(2, -1, 0.5, 1)
	want := uint32(0xFF)<<24 | uint32(0)<<16 | uint32(128)<<8 | uint32(255)
	if c.clearColor != want {
		t.Fatalf("SetClearColor clamp:\nhave %#x\nwant %#x", c.clearColor, want)
	}
}
