// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

// Vendor combiner-stage extension entry points (spec §6): program
// each of the 6 fixed-function texture-combiner stages. RGB and
// alpha channels have independent sources, operands, function and
// scale.

func (c *Context) validCombinerStage(stage int) bool {
	return stage >= 0 && stage < numCombinerStages
}

// CombinerStagePICA selects which of the 6 stages subsequent
// CombinerSrc/Op/Func/Scale/Color calls target.
func (c *Context) CombinerStagePICA(stage int) error {
	if !c.validCombinerStage(stage) {
		return errEnum(InvalidValue)
	}
	c.combinerStage = stage
	return nil
}

// CombinerSrcPICA sets one of the 3 RGB or 3 alpha sources for the
// active stage.
func (c *Context) CombinerSrcPICA(rgb bool, index int, src Enum) error {
	if index < 0 || index > 2 {
		return errEnum(InvalidValue)
	}
	s := &c.combiners[c.combinerStage]
	if rgb {
		s.rgbSrc[index] = src
	} else {
		s.alphaSrc[index] = src
	}
	c.markDirty(dirtyCombiners)
	return nil
}

// CombinerOpPICA sets one of the 3 RGB or 3 alpha operands for the
// active stage.
func (c *Context) CombinerOpPICA(rgb bool, index int, op Enum) error {
	if index < 0 || index > 2 {
		return errEnum(InvalidValue)
	}
	s := &c.combiners[c.combinerStage]
	if rgb {
		s.rgbOp[index] = op
	} else {
		s.alphaOp[index] = op
	}
	c.markDirty(dirtyCombiners)
	return nil
}

// CombinerFuncPICA sets the RGB or alpha combiner function for the
// active stage.
func (c *Context) CombinerFuncPICA(rgb bool, fn Enum) error {
	switch fn {
	case CombReplace, CombModulate, CombAdd, CombAddSigned, CombInterpolate,
		CombSubtract, CombDot3RGB, CombDot3RGBA, CombMultAdd, CombAddMult:
	default:
		return errEnum(InvalidEnum)
	}
	s := &c.combiners[c.combinerStage]
	if rgb {
		s.rgbFunc = fn
	} else {
		s.alphaFunc = fn
	}
	c.markDirty(dirtyCombiners)
	return nil
}

// CombinerScalePICA sets the RGB or alpha output scale (1, 2 or 4)
// for the active stage.
func (c *Context) CombinerScalePICA(rgb bool, scale float32) error {
	if scale != 1 && scale != 2 && scale != 4 {
		return errEnum(InvalidValue)
	}
	s := &c.combiners[c.combinerStage]
	if rgb {
		s.rgbScale = scale
	} else {
		s.alphaScale = scale
	}
	c.markDirty(dirtyCombiners)
	return nil
}

// CombinerColorPICA sets the active stage's constant color (packed
// RGBA, one byte per channel).
func (c *Context) CombinerColorPICA(rgba uint32) {
	c.combiners[c.combinerStage].color = rgba
	c.markDirty(dirtyCombiners)
}

// TexVRAMPICA records whether the texture bound to the active unit
// wants linear-heap or VRAM backing (spec §6): it sets the texture's
// VRAM flag and dirties the texture domain. No code reallocates or
// copies the face storage when the flag changes; package texture
// passes the flag's current value back to Realloc, which allocates
// from the same allocator either way.
func (c *Context) TexVRAMPICA(enabled bool) error {
	h := c.textureUnits[c.activeTextureUnit].bound
	t, ok := c.heaps.textures.Get(h)
	if !ok {
		return errEnum(InvalidOperation)
	}
	if t.VRAM == enabled {
		return nil
	}
	t.VRAM = enabled
	c.markDirty(dirtyTexture)
	return nil
}
