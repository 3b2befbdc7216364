// Copyright 2025 The pica200 Authors. All rights reserved.

package host

import "testing"

type fakeAllocator struct{}

func (fakeAllocator) Alloc(int) uintptr     { return 0x14000000 }
func (fakeAllocator) Free(uintptr)          {}
func (fakeAllocator) IsLinear(uintptr) bool { return true }
func (fakeAllocator) IsVRAM(uintptr) bool   { return false }
func (fakeAllocator) PhysOf(p uintptr) uint32 { return uint32(p) }

func TestRegisterCurrent(t *testing.T) {
	h := &Host{Alloc: fakeAllocator{}}
	Register(h)
	if Current() != h {
		t.Fatalf("Current:\nhave %p\nwant %p", Current(), h)
	}
}

func TestFillWidthValues(t *testing.T) {
	for _, x := range [...]struct {
		w    FillWidth
		want int
	}{
		{Fill16, 0},
		{Fill24, 1},
		{Fill32, 2},
	} {
		if int(x.w) != x.want {
			t.Fatalf("FillWidth:\nhave %d\nwant %d", x.w, x.want)
		}
	}
}

func TestTransferFormatValues(t *testing.T) {
	for _, x := range [...]struct {
		f    TransferFormat
		want int
	}{
		{TransferRGBA8, 0},
		{TransferRGB8, 1},
		{TransferRGB565, 2},
		{TransferRGB5A1, 3},
		{TransferRGBA4, 4},
	} {
		if int(x.f) != x.want {
			t.Fatalf("TransferFormat:\nhave %d\nwant %d", x.f, x.want)
		}
	}
}
