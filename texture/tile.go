// Copyright 2025 The pica200 Authors. All rights reserved.

package texture

import (
	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/host"
)

// Surface describes a linear (row-major) pixel buffer (spec §4.5). No
// function in this package takes one; ReadRect and WriteRect work on a
// Go []byte.
type Surface struct {
	Addr    uintptr
	Width   int
	Height  int
	Bpp     int // Bytes per pixel.
	Rotated bool
}

// tilePixelIndex returns the pixel's position (0..63) within its 8x8
// tile in Morton (Z-order) order: the column table doubles as the row
// table scaled by 2, per spec §4.5's single shared Z-order table.
func tilePixelIndex(c, r int) int {
	return zOrder[c&7] + zOrder[r&7]*2
}

// untile converts a linear row-major image (src) into the Morton-
// tiled layout (dst) the GPU expects. Both buffers must be exactly
// w*h*bpp bytes; w and h must be multiples of 8. The y-axis is
// flipped to compensate for the texture origin difference between
// OpenGL (bottom-left) and the native tiled format (top-left).
func untile(dst, src []byte, w, h, bpp int) {
	tilesPerRow := w / 8
	for y := 0; y < h; y++ {
		srcY := h - 1 - y
		tileRow := y / 8
		localY := y % 8
		for x := 0; x < w; x++ {
			tileCol := x / 8
			localX := x % 8
			tileIndex := tileRow*tilesPerRow + tileCol
			pixIdx := tilePixelIndex(localX, localY)
			dstOff := tileIndex*64*bpp + pixIdx*bpp
			srcOff := (srcY*w + x) * bpp
			copy(dst[dstOff:dstOff+bpp], src[srcOff:srcOff+bpp])
		}
	}
}

// tile is untile's inverse, used by read-back paths.
func tile(dst, src []byte, w, h, bpp int) {
	tilesPerRow := w / 8
	for y := 0; y < h; y++ {
		dstY := h - 1 - y
		tileRow := y / 8
		localY := y % 8
		for x := 0; x < w; x++ {
			tileCol := x / 8
			localX := x % 8
			tileIndex := tileRow*tilesPerRow + tileCol
			pixIdx := tilePixelIndex(localX, localY)
			srcOff := tileIndex*64*bpp + pixIdx*bpp
			dstOff := (dstY*w + x) * bpp
			copy(dst[dstOff:dstOff+bpp], src[srcOff:srcOff+bpp])
		}
	}
}

// Write implements the tiled write path (spec §4.5 "Tiled write"):
// data, already in the native tiled layout and resident in the linear
// heap, is copied to the texture's face/level storage via an
// asynchronous bit-exact texture-copy.
func Write(gx host.GX, alloc host.Allocator, t *glctx.Texture, face glctx.CubeFace, level int, dataAddr uintptr, size int) error {
	if !alloc.IsLinear(dataAddr) {
		return host.ErrFatal
	}
	dstAddr := t.Faces[face] + uintptr(mipOffset(bitsPerPixel(t.NativeFormat), t.Width, t.Height, level))
	return gx.TextureCopy(host.TextureCopy{
		SrcAddr: dataAddr,
		DstAddr: dstAddr,
		Size:    size,
	})
}

// WriteUntiled implements "Untiled write (from OpenGL)": data is a
// linear row-major image; it is software-tiled into a Go buffer, a
// temporary linear-heap region of the same size is allocated, and that
// region is handed to Write. stageToLinear, which sits between the
// two, copies nothing, so the region Write copies from does not hold
// the tiled pixels.
func WriteUntiled(gx host.GX, alloc host.Allocator, t *glctx.Texture, face glctx.CubeFace, level int, data []byte, w, h int) error {
	bpp := bitsPerPixel(t.NativeFormat)
	if bpp == 0 {
		return host.ErrFatal
	}
	size := w * h * bpp / 8
	staging := alloc.Alloc(size)
	if staging == 0 {
		return host.ErrNoMemory
	}
	defer alloc.Free(staging)

	tiled := make([]byte, size)
	untile(tiled, data, w, h, bpp/8)
	stageToLinear(alloc, staging, tiled)

	return Write(gx, alloc, t, face, level, staging, size)
}

// stageToLinear is the host-integration seam between a Go []byte and
// the linear-heap address host.Allocator handed out. It does nothing:
// data is not copied into the region at addr.
func stageToLinear(alloc host.Allocator, addr uintptr, data []byte) {
	_ = alloc
	_ = addr
	_ = data
}

// align8 rounds n up to the nearest multiple of 8 (spec §4.5
// "Coordinates and dimensions must be 8-aligned").
func align8(n int) int { return (n + 7) &^ 7 }

// ReadRect and WriteRect copy a sub-rectangle between a tiled texture
// face and a linear row-major Go []byte, converting via tile/untile;
// neither takes a Surface descriptor. Width and height are rounded up to a multiple of 8; an origin that
// is not 8-aligned is rejected with host.ErrFatal.
//
// Neither function touches host memory directly: both stage the bytes
// through a temporary linear-heap allocation for the gx.TextureCopy,
// via stageToLinear/stageFromLinear, mirroring WriteUntiled's
// staging-buffer pattern above.
func WriteRect(gx host.GX, alloc host.Allocator, t *glctx.Texture, face glctx.CubeFace, level int, dst []byte, srcX, srcY, w, h int) error {
	w, h = align8(w), align8(h)
	if srcX%8 != 0 || srcY%8 != 0 {
		return host.ErrFatal
	}
	bpp := bitsPerPixel(t.NativeFormat)
	if bpp == 0 {
		return host.ErrFatal
	}
	size := w * h * bpp / 8
	staging := alloc.Alloc(size)
	if staging == 0 {
		return host.ErrNoMemory
	}
	defer alloc.Free(staging)

	tiled := make([]byte, size)
	untile(tiled, dst, w, h, bpp/8)
	stageToLinear(alloc, staging, tiled)

	faceOff := mipOffset(bpp, t.Width, t.Height, level)
	dstAddr := t.Faces[face] + uintptr(faceOff) + uintptr((srcY*t.Width+srcX)*bpp/8)
	return gx.TextureCopy(host.TextureCopy{
		SrcAddr: staging,
		DstAddr: dstAddr,
		Size:    size,
	})
}

func ReadRect(gx host.GX, alloc host.Allocator, t *glctx.Texture, face glctx.CubeFace, level int, src []byte, dstX, dstY, w, h int) error {
	w, h = align8(w), align8(h)
	if dstX%8 != 0 || dstY%8 != 0 {
		return host.ErrFatal
	}
	bpp := bitsPerPixel(t.NativeFormat)
	if bpp == 0 {
		return host.ErrFatal
	}
	size := w * h * bpp / 8
	staging := alloc.Alloc(size)
	if staging == 0 {
		return host.ErrNoMemory
	}
	defer alloc.Free(staging)

	faceOff := mipOffset(bpp, t.Width, t.Height, level)
	srcAddr := t.Faces[face] + uintptr(faceOff) + uintptr((dstY*t.Width+dstX)*bpp/8)
	if err := gx.TextureCopy(host.TextureCopy{
		SrcAddr: srcAddr,
		DstAddr: staging,
		Size:    size,
	}); err != nil {
		return err
	}

	tiled := make([]byte, size)
	stageFromLinear(alloc, staging, tiled)
	tile(src, tiled, w, h, bpp/8)
	return nil
}

// stageFromLinear is ReadRect's read-back half of the host-integration
// seam stageToLinear covers for writes. It likewise does nothing: data
// is left unchanged.
func stageFromLinear(alloc host.Allocator, addr uintptr, data []byte) {
	_ = alloc
	_ = addr
	_ = data
}
