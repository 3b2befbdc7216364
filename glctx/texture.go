// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "github.com/ctrgfx/pica200/internal/objheap"

// CubeFace indexes the six faces of a cube-map texture; for a
// Texture2D-target texture only FacePosX is meaningful.
type CubeFace int

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	numFaces
)

// Texture is the resource object backing glGenTextures handles (spec
// §3 Data Model, §4.7 texture addressing). The core owns identity,
// parameters and face storage pointers; the tiling/untiling and rect
// copy algorithms that populate those pointers live in package
// texture, which operates on exported fields through this type rather
// than duplicating the object model.
type Texture struct {
	Target Enum

	MinFilter, MagFilter  Enum
	WrapS, WrapT          Enum
	LodBias               float32
	MinLod, MaxLod        int32

	// NativeFormat is the PICA200 texture format the faces are stored
	// in; distinct from the GL internal format the caller specified,
	// since some GL formats (e.g. RGB8) have no 1:1 native equivalent
	// and are widened on upload.
	NativeFormat Enum

	Width, Height int
	Levels        int // Number of mip levels actually resident.

	// Faces holds one linear-heap address per cube face (index 0 only
	// for a Texture2D-target texture); nil until first TexImage2D.
	Faces [numFaces]uintptr

	VRAM bool
}

// GenTextures allocates n fresh, empty texture objects.
func (c *Context) GenTextures(n int) []objheap.Handle {
	out := make([]objheap.Handle, n)
	for i := range out {
		out[i] = c.heaps.textures.Alloc(Texture{
			MinFilter: NearestMipmapLinear,
			MagFilter: Linear,
			WrapS:     Repeat,
			WrapT:     Repeat,
			MaxLod:    1000,
		})
	}
	return out
}

// DeleteTextures frees the given texture objects and their face
// storage.
func (c *Context) DeleteTextures(handles []objheap.Handle) {
	for _, h := range handles {
		for i := range c.textureUnits {
			if c.textureUnits[i].bound == h {
				c.textureUnits[i].bound = objheap.Handle{}
			}
		}
		if t, ok := c.heaps.textures.Get(h); ok {
			for _, addr := range t.Faces {
				if addr != 0 {
					c.host.Alloc.Free(addr)
				}
			}
		}
		c.heaps.textures.Free(h)
	}
}

// BindTexture binds h to target on the active texture unit.
func (c *Context) BindTexture(target Enum, h objheap.Handle) error {
	if target != Texture2D && target != TextureCubeMap {
		return errEnum(InvalidEnum)
	}
	c.textureUnits[c.activeTextureUnit].bound = h
	c.markDirty(dirtyTexture)
	return nil
}

// ActiveTexture selects which of the three texture units subsequent
// BindTexture/TexParameter calls target.
func (c *Context) ActiveTexture(unit int) error {
	if unit < 0 || unit >= numTexUnits {
		return errEnum(InvalidEnum)
	}
	c.activeTextureUnit = unit
	return nil
}

// BoundTexture resolves the texture currently bound to target on the
// active unit, for package texture's TexImage2D to operate on without
// glctx needing to import it back.
func (c *Context) BoundTexture(target Enum) (*Texture, error) {
	h := c.textureUnits[c.activeTextureUnit].bound
	t, ok := c.heaps.textures.Get(h)
	if !ok {
		return nil, errEnum(InvalidOperation)
	}
	if t.Target != 0 && t.Target != target {
		return nil, errEnum(InvalidOperation)
	}
	return t, nil
}

// MarkTextureDirty re-dirties the texture domain; exported for package
// texture to call after mutating a Texture's storage out from under
// glctx (TexImage2D, VRAM toggles performed outside TexVRAMPICA).
func (c *Context) MarkTextureDirty() { c.markDirty(dirtyTexture) }

// TexParameteri sets a scalar integer/enum texture parameter on the
// texture bound to target on the active unit.
func (c *Context) TexParameteri(target Enum, pname Enum, param int32) error {
	h := c.textureUnits[c.activeTextureUnit].bound
	t, ok := c.heaps.textures.Get(h)
	if !ok {
		return errEnum(InvalidOperation)
	}
	switch pname {
	case TextureMinFilter:
		t.MinFilter = Enum(param)
	case TextureMagFilter:
		t.MagFilter = Enum(param)
	case TextureWrapS:
		t.WrapS = Enum(param)
	case TextureWrapT:
		t.WrapT = Enum(param)
	case TextureMinLod:
		t.MinLod = param
	case TextureMaxLod:
		t.MaxLod = param
	default:
		return errEnum(InvalidEnum)
	}
	c.markDirty(dirtyTexture)
	return nil
}
