// Copyright 2025 The pica200 Authors. All rights reserved.

package texture

import (
	"testing"

	"github.com/ctrgfx/pica200/glctx"
)

func TestBitsPerPixel(t *testing.T) {
	cases := []struct {
		format glctx.Enum
		want   int
	}{
		{glctx.RGBA8, 32},
		{glctx.RGB8, 24},
		{glctx.RGB565, 16},
		{glctx.RGB5A1, 16},
		{glctx.RGBA4, 16},
	}
	for _, c := range cases {
		if got := bitsPerPixel(c.format); got != c.want {
			t.Fatalf("bitsPerPixel(%v):\nhave %d\nwant %d", c.format, got, c.want)
		}
	}
}

func TestNumMipLevels(t *testing.T) {
	cases := []struct {
		w, h, want int
	}{
		{8, 8, 1},
		{16, 16, 2},
		{64, 64, 4},
		{128, 64, 4},
	}
	for _, c := range cases {
		if got := numMipLevels(c.w, c.h); got != c.want {
			t.Fatalf("numMipLevels(%d,%d):\nhave %d\nwant %d", c.w, c.h, got, c.want)
		}
	}
}

func TestFaceSize(t *testing.T) {
	// An 8x8 RGBA8 texture has exactly one mip level: 8*8*4 = 256 bytes.
	if got := FaceSize(glctx.RGBA8, 8, 8); got != 256 {
		t.Fatalf("FaceSize(RGBA8,8,8):\nhave %d\nwant %d", got, 256)
	}
}

func TestTilePixelIndexCoversAllOffsets(t *testing.T) {
	seen := make(map[int]bool)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			idx := tilePixelIndex(c, r)
			if idx < 0 || idx >= 64 {
				t.Fatalf("tilePixelIndex(%d,%d) out of range: %d", c, r, idx)
			}
			if seen[idx] {
				t.Fatalf("tilePixelIndex(%d,%d) duplicate offset %d", c, r, idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != 64 {
		t.Fatalf("tilePixelIndex coverage:\nhave %d distinct offsets\nwant 64", len(seen))
	}
}

func TestTileUntileRoundTrip(t *testing.T) {
	const w, h, bpp = 16, 8, 4
	src := make([]byte, w*h*bpp)
	for i := range src {
		src[i] = byte(i)
	}
	tiled := make([]byte, w*h*bpp)
	untile(tiled, src, w, h, bpp)
	back := make([]byte, w*h*bpp)
	tile(back, tiled, w, h, bpp)
	for i := range src {
		if back[i] != src[i] {
			t.Fatalf("untile/tile round-trip byte %d:\nhave %d\nwant %d", i, back[i], src[i])
		}
	}
}

func TestReallocUnchanged(t *testing.T) {
	alloc := &fakeAllocator{}
	tex := &glctx.Texture{}
	if _, err := Realloc(alloc, tex, glctx.Texture2D, 16, 16, glctx.RGBA8, false); err != nil {
		t.Fatalf("Realloc initial: %v", err)
	}
	first := tex.Faces[0]
	result, err := Realloc(alloc, tex, glctx.Texture2D, 16, 16, glctx.RGBA8, false)
	if err != nil {
		t.Fatalf("Realloc repeat: %v", err)
	}
	if result != Unchanged {
		t.Fatalf("Realloc repeat result:\nhave %v\nwant Unchanged", result)
	}
	if tex.Faces[0] != first {
		t.Fatalf("Realloc repeat changed face address")
	}
}

func TestReallocBadDimensions(t *testing.T) {
	alloc := &fakeAllocator{}
	tex := &glctx.Texture{}
	if _, err := Realloc(alloc, tex, glctx.Texture2D, 10, 10, glctx.RGBA8, false); err != ErrBadDimensions {
		t.Fatalf("Realloc(10,10) error:\nhave %v\nwant %v", err, ErrBadDimensions)
	}
}

// fakeAllocator is a minimal host.Allocator for tests that only need a
// monotonically increasing address and trivial IsLinear/Free.
type fakeAllocator struct {
	next uintptr
}

func (a *fakeAllocator) Alloc(size int) uintptr {
	a.next += 0x1000
	return a.next
}
func (a *fakeAllocator) Free(addr uintptr)            {}
func (a *fakeAllocator) IsLinear(addr uintptr) bool   { return true }
func (a *fakeAllocator) IsVRAM(addr uintptr) bool     { return false }
func (a *fakeAllocator) PhysOf(addr uintptr) uint32   { return uint32(addr) }
