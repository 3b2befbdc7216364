// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

// SetCapability implements glEnable/glDisable for the capability subset
// the core tracks as dirty-domain state (spec §4.1, flush step 8's
// fixed-function domains). Unrecognized caps report InvalidEnum, per
// GL's own glEnable behavior.
func (c *Context) SetCapability(cap Enum, enabled bool) error {
	switch cap {
	case DepthTest:
		c.depthTest = enabled
		c.markDirty(dirtyColorDepth)
	case CullFace:
		c.cullFace = enabled
		c.markDirty(dirtyCullFace)
	case Blend:
		c.blendMode = enabled
		c.markDirty(dirtyBlend)
	case StencilTest:
		c.stencilTest = enabled
		c.markDirty(dirtyStencil)
	case AlphaTest:
		c.alphaTest = enabled
		c.markDirty(dirtyAlpha)
	case ScissorTest:
		c.scissorEnabled = enabled
		c.markDirty(dirtyScissor)
	case PolygonOffsetFill:
		c.polygonOffset = enabled
		c.markDirty(dirtyDepthMap)
	case EarlyDepthTestPICA:
		c.earlyDepthTest = enabled
		c.markDirty(dirtyEarlyDepth)
	default:
		return errEnum(InvalidEnum)
	}
	return nil
}

// IsEnabled reports a capability's current state (glIsEnabled).
func (c *Context) IsEnabled(cap Enum) (bool, error) {
	switch cap {
	case DepthTest:
		return c.depthTest, nil
	case CullFace:
		return c.cullFace, nil
	case Blend:
		return c.blendMode, nil
	case StencilTest:
		return c.stencilTest, nil
	case AlphaTest:
		return c.alphaTest, nil
	case ScissorTest:
		return c.scissorEnabled, nil
	case PolygonOffsetFill:
		return c.polygonOffset, nil
	case EarlyDepthTestPICA:
		return c.earlyDepthTest, nil
	default:
		return false, errEnum(InvalidEnum)
	}
}

// SetClearColor implements glClearColor: each component is clamped to
// [0,1] and packed into the RGBA8 word Clear's color fill uses.
func (c *Context) SetClearColor(r, g, b, a float32) {
	clamp := func(f float32) uint32 {
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		return uint32(f*255 + 0.5)
	}
	c.clearColor = clamp(r)<<24 | clamp(g)<<16 | clamp(b)<<8 | clamp(a)
}

// SetClearDepth implements glClearDepthf.
func (c *Context) SetClearDepth(depth float32) {
	if depth < 0 {
		depth = 0
	} else if depth > 1 {
		depth = 1
	}
	c.clearDepth = depth
}

// SetClearStencil implements glClearStencil.
func (c *Context) SetClearStencil(s int32) {
	c.clearStencil = uint8(s)
}
