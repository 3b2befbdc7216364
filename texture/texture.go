// Copyright 2025 The pica200 Authors. All rights reserved.

// Package texture implements the PICA200 texture manager (spec §4.5):
// Morton-tiled storage with mipmaps, face sizing, VRAM/linear
// reallocation, and the tiled/untiled/rectangle write paths. It
// operates on *glctx.Texture's exported fields rather than owning a
// competing object model.
package texture

import (
	"errors"

	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/host"
)

var (
	ErrBadDimensions = errors.New("texture: dimensions must be a multiple of 8")
	ErrFaceMismatch  = errors.New("texture: cube-map faces do not share a high-bits region")
)

// zOrder is the 8-element Z-order table: entry c is column c's share
// of a pixel's index (0..63) inside one 8x8 tile, and twice entry r is
// row r's share (see tilePixelIndex; spec §4.5).
var zOrder = [8]int{0, 1, 4, 5, 16, 17, 20, 21}

// bitsPerPixel returns the PICA200 native format's bits-per-pixel.
func bitsPerPixel(format glctx.Enum) int {
	switch format {
	case glctx.RGBA8:
		return 32
	case glctx.RGB8:
		return 24
	case glctx.RGB565, glctx.RGB5A1, glctx.RGBA4:
		return 16
	default:
		return 0
	}
}

// mipOffset returns the byte offset of mip level l within a texture's
// allocation, per the spec's formula:
// B·W·H·((4^L − 1)/12) / 8.
func mipOffset(bitsPerPixel, w, h, level int) int {
	num := pow4(level) - 1
	return bitsPerPixel * w * h * num / 12 / 8
}

func pow4(n int) int {
	r := 1
	for i := 0; i < n; i++ {
		r *= 4
	}
	return r
}

// numMipLevels returns how many mip levels exist down to an 8x8 base.
func numMipLevels(w, h int) int {
	n := 1
	for w > 8 && h > 8 {
		w /= 2
		h /= 2
		n++
	}
	return n
}

// FaceSize returns the total allocation size (bytes) for one face of
// a texture with base dimensions w×h in format, covering every mip
// level down to 8×8.
func FaceSize(format glctx.Enum, w, h int) int {
	bpp := bitsPerPixel(format)
	levels := numMipLevels(w, h)
	size := 0
	for l := 0; l < levels; l++ {
		size += bpp * (w >> l) * (h >> l) / 8
	}
	return size
}

// ReallocResult is the outcome of Realloc.
type ReallocResult int

const (
	Unchanged ReallocResult = iota
	Updated
	Failed
)

// cubeFaces is the ordered list of faces a cube-map texture occupies;
// a 2D texture only ever uses the first.
var cubeFaces = [6]glctx.CubeFace{
	glctx.FacePosX, glctx.FaceNegX, glctx.FacePosY,
	glctx.FaceNegY, glctx.FacePosZ, glctx.FaceNegZ,
}

func faceCount(target glctx.Enum) int {
	if target == glctx.TextureCubeMap {
		return 6
	}
	return 1
}

// Realloc reallocates t's face storage for the given target, format
// and dimensions if anything differs from its current state, or
// reports Unchanged if no allocation is necessary. On any allocation
// failure, every face successfully allocated this call is freed and
// Failed is reported (spec §4.5 "Reallocation").
func Realloc(alloc host.Allocator, t *glctx.Texture, target glctx.Enum, w, h int, format glctx.Enum, vram bool) (ReallocResult, error) {
	if w%8 != 0 || h%8 != 0 {
		return Failed, ErrBadDimensions
	}
	if t.Target == target && t.Width == w && t.Height == h &&
		t.NativeFormat == format && t.VRAM == vram && t.Faces[0] != 0 {
		return Unchanged, nil
	}

	for _, addr := range t.Faces {
		if addr != 0 {
			alloc.Free(addr)
		}
	}
	t.Faces = [6]uintptr{}

	size := FaceSize(format, w, h)
	n := faceCount(target)
	var allocated []uintptr
	for i := 0; i < n; i++ {
		addr := alloc.Alloc(size)
		if addr == 0 {
			for _, a := range allocated {
				alloc.Free(a)
			}
			return Failed, host.ErrNoMemory
		}
		allocated = append(allocated, addr)
		t.Faces[cubeFaces[i]] = addr
	}

	if n == 6 {
		if err := validateCubeAlignment(t.Faces); err != nil {
			sortFaces(&t.Faces)
			if err := validateCubeAlignment(t.Faces); err != nil {
				for _, a := range allocated {
					alloc.Free(a)
				}
				t.Faces = [6]uintptr{}
				return Failed, err
			}
		}
	}

	t.Target = target
	t.Width, t.Height = w, h
	t.NativeFormat = format
	t.VRAM = vram
	t.Levels = numMipLevels(w, h)
	return Updated, nil
}

// cubeAlignMask is the bit-mask cube-map face addresses must agree on
// in their high bits (spec §4.5).
const cubeAlignMask = ^uintptr(0x3FFFFF)

func validateCubeAlignment(faces [6]uintptr) error {
	if faces[0] == 0 {
		return nil
	}
	want := faces[0] & cubeAlignMask
	for _, f := range faces[1:] {
		if f&cubeAlignMask != want {
			return ErrFaceMismatch
		}
	}
	return nil
}

func sortFaces(faces *[6]uintptr) {
	for i := 1; i < len(faces); i++ {
		for j := i; j > 0 && faces[j-1] > faces[j]; j-- {
			faces[j-1], faces[j] = faces[j], faces[j-1]
		}
	}
}
