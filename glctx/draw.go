// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "github.com/ctrgfx/pica200/shader"

// validDrawMode reports whether mode is one of the four primitives
// this core accepts (spec §4.6 step 1).
func validDrawMode(mode Enum) bool {
	switch mode {
	case Triangles, TriangleStrip, TriangleFan, GeometryPrim:
		return true
	default:
		return false
	}
}

func validIndexType(t Enum) bool {
	return t == UnsignedByte || t == UnsignedShort
}

// predraw runs the steps common to DrawArrays and DrawElements: a check
// that the current program has a linked vertex stage (invalid operation
// otherwise), mode validation, framebuffer completeness, and flushing
// pending state with send=false.
func (c *Context) predraw(mode Enum) error {
	prog, ok := shader.GetProgram(c.currentProgram)
	if !ok || !prog.VertexShader().Valid() {
		return errEnum(InvalidOperation)
	}
	if !validDrawMode(mode) {
		return errEnum(InvalidEnum)
	}
	if status := c.CheckFramebufferStatus(); status != FramebufferComplete {
		return errEnum(InvalidFramebufferOperation)
	}
	return c.flush(false)
}

// postdraw encodes the primitive configuration and draw trigger, and
// marks the draw domain dirty so the next flush re-invalidates the
// framebuffer (spec §4.6 step 5).
func (c *Context) postdraw(mode Enum, first, count int32, indexed bool, indexPhys uint32, indexType Enum) {
	c.enc.Write(regPrimitiveConfig, primitiveConfigWord(mode))
	c.enc.Write(regRestartPrimitive, 1)

	if indexed {
		c.enc.Write(regIndexbufferConfig, indexBufferConfigWord(indexType, indexPhys))
	} else {
		c.enc.Write(regVertexOffset, uint32(first))
	}
	c.enc.Write(regNumvertices, uint32(count))

	c.enc.Write(regGeostageConfig2, 0)
	c.enc.Write(regStartDrawFunc0, 0)
	c.enc.Write(regDrawarrays, 1)
	c.enc.Write(regVtxFunc, 1)

	c.markDirty(dirtyDraw)
}

func primitiveConfigWord(mode Enum) uint32 {
	switch mode {
	case Triangles:
		return 0
	case TriangleStrip:
		return 1
	case TriangleFan:
		return 2
	default: // GeometryPrim
		return 3
	}
}

func indexBufferConfigWord(indexType Enum, phys uint32) uint32 {
	v := phys &^ 0x3
	if indexType == UnsignedShort {
		v |= 1
	}
	return v
}

// DrawArrays implements glDrawArrays.
func (c *Context) DrawArrays(mode Enum, first, count int32) error {
	if count < 0 || first < 0 {
		return errEnum(InvalidValue)
	}
	if err := c.predraw(mode); err != nil {
		return err
	}
	c.postdraw(mode, first, count, false, 0, 0)
	return nil
}

// DrawElements implements glDrawElements. indices must reference a
// bound element-array buffer; indexOffset is the byte offset into it.
func (c *Context) DrawElements(mode Enum, count int32, indexType Enum, indexOffset uintptr) error {
	if count < 0 {
		return errEnum(InvalidValue)
	}
	if !validIndexType(indexType) {
		return errEnum(InvalidEnum)
	}
	if !c.elementArrayBuffer.Valid() {
		return errEnum(InvalidOperation)
	}
	buf, ok := c.heaps.buffers.Get(c.elementArrayBuffer)
	if !ok || buf.address == 0 {
		return errEnum(InvalidOperation)
	}
	if err := c.predraw(mode); err != nil {
		return err
	}
	phys := c.host.Alloc.PhysOf(buf.address) + uint32(indexOffset)
	c.postdraw(mode, 0, count, true, phys, indexType)
	return nil
}
