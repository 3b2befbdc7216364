// Copyright 2025 The pica200 Authors. All rights reserved.

package texture

import "github.com/ctrgfx/pica200/glctx"

// TexImage2D implements glTexImage2D's level-0 case: it reallocates
// the texture bound to target on c's active unit to the given
// dimensions/format if needed, then software-tiles pixels (row-major,
// origin bottom-left per GL convention) into face-0 storage. Non-zero
// levels are left to the caller's own TexImage2D(level>0) calls or a
// future GenerateMipmap; this core does not synthesize mip data.
func TexImage2D(c *glctx.Context, target glctx.Enum, level int, format glctx.Enum, w, h int, pixels []byte) error {
	t, err := c.BoundTexture(target)
	if err != nil {
		return err
	}
	if level == 0 {
		vram := t.VRAM
		if _, err := Realloc(c.Host().Alloc, t, target, w, h, format, vram); err != nil {
			return err
		}
	}
	if pixels != nil {
		if err := WriteUntiled(c.Host().GX, c.Host().Alloc, t, glctx.FacePosX, level, pixels, w, h); err != nil {
			return err
		}
	}
	c.MarkTextureDirty()
	return nil
}

// TexImage2DFace is TexImage2D's cube-map sibling, targeting one face
// explicitly (glTexImage2D called with a GL_TEXTURE_CUBE_MAP_* target
// selects the face; the veneer is responsible for mapping that enum to
// a glctx.CubeFace before calling here).
func TexImage2DFace(c *glctx.Context, face glctx.CubeFace, level int, format glctx.Enum, w, h int, pixels []byte) error {
	t, err := c.BoundTexture(glctx.TextureCubeMap)
	if err != nil {
		return err
	}
	if level == 0 {
		if _, err := Realloc(c.Host().Alloc, t, glctx.TextureCubeMap, w, h, format, t.VRAM); err != nil {
			return err
		}
	}
	if pixels != nil {
		if err := WriteUntiled(c.Host().GX, c.Host().Alloc, t, face, level, pixels, w, h); err != nil {
			return err
		}
	}
	c.MarkTextureDirty()
	return nil
}
