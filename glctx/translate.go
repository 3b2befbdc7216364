// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import (
	"github.com/ctrgfx/pica200/host"
	"github.com/ctrgfx/pica200/internal/fixed"
	"github.com/ctrgfx/pica200/shader"
)

// flush implements spec §4.1's flush algorithm: walk the dirty
// domains in the documented order, emit the register writes each one
// needs, and clear its bit. When send is true the finalized list is
// submitted to the host GX queue.
func (c *Context) flush(send bool) error {
	if c.flags&dirtyFramebuffer != 0 {
		if c.flags&dirtyDraw != 0 {
			c.emitFramebufferFlush()
			c.emitEarlyDepthClear()
			c.flags &^= dirtyDraw | dirtyEarlyDepthClear
		}
		c.emitBindFramebuffer()
		c.flags &^= dirtyFramebuffer
	}
	if c.flags&dirtyDraw != 0 {
		c.emitFramebufferFlush()
		c.emitFramebufferInvalidate()
		c.flags &^= dirtyDraw
	}
	if c.flags&dirtyViewport != 0 {
		c.emitViewport()
		c.flags &^= dirtyViewport
	}
	if c.flags&dirtyScissor != 0 {
		c.emitScissor()
		c.flags &^= dirtyScissor
	}
	if c.flags&dirtyProgram != 0 {
		c.emitProgram()
		c.flags &^= dirtyProgram
	}
	if prog, ok := shader.GetProgram(c.currentProgram); ok && prog.IsLinked() {
		c.emitUniforms(prog)
	}
	if c.flags&dirtyAttribs != 0 {
		c.emitAttribs()
		c.flags &^= dirtyAttribs
	}

	// Remaining fixed-function domains: each a self-contained register
	// sequence derived purely from mirrored state.
	if c.flags&dirtyFragOp != 0 {
		c.emitFragOp()
		c.flags &^= dirtyFragOp
	}
	if c.flags&dirtyColorDepth != 0 {
		c.emitColorDepthMask()
		c.flags &^= dirtyColorDepth
	}
	if c.flags&dirtyDepthMap != 0 {
		c.emitDepthMap()
		c.flags &^= dirtyDepthMap
	}
	if c.flags&dirtyEarlyDepth != 0 {
		c.emitEarlyDepth()
		c.flags &^= dirtyEarlyDepth
	}
	if c.flags&dirtyEarlyDepthClear != 0 {
		c.emitEarlyDepthClear()
		c.flags &^= dirtyEarlyDepthClear
	}
	if c.flags&dirtyStencil != 0 {
		c.emitStencil()
		c.flags &^= dirtyStencil
	}
	if c.flags&dirtyCullFace != 0 {
		c.emitCullFace()
		c.flags &^= dirtyCullFace
	}
	if c.flags&dirtyAlpha != 0 {
		c.emitAlpha()
		c.flags &^= dirtyAlpha
	}
	if c.flags&dirtyBlend != 0 {
		c.emitBlend()
		c.flags &^= dirtyBlend
	}
	if c.flags&dirtyTexture != 0 {
		c.emitTextures()
		c.flags &^= dirtyTexture
	}
	if c.flags&dirtyCombiners != 0 {
		c.emitCombiners()
		c.flags &^= dirtyCombiners
	}

	if send {
		buf, err := c.enc.Finalize()
		if err != nil {
			c.SetError(OutOfMemory)
			return err
		}
		if len(buf) == 0 {
			return nil
		}
		// buf's backing array must live in host-addressable memory for
		// Addr to be meaningful; a real build backs the encoder's two
		// buffers with host.Allocator-obtained linear-heap storage
		// instead of plain Go-managed slices (left to the host
		// integration, per host's package doc).
		return c.host.GX.ProcessCommandList(host.CommandList{
			Words: len(buf),
			Flush: c.Params.FlushAllLinear,
		})
	}
	return nil
}

func (c *Context) emitFramebufferFlush() {
	c.enc.Write(regFramebufferFlush, 1)
}

func (c *Context) emitFramebufferInvalidate() {
	c.enc.Write(regFramebufferInvalidate, 1)
}

func (c *Context) emitBindFramebuffer() {
	fb, ok := c.heaps.framebuffers.Get(c.framebuffer)
	if !ok {
		return
	}
	if addr, w, h, ok := fb.color.addressAndSize(c.heaps); ok {
		c.enc.Write(regColorbufferLoc, c.host.Alloc.PhysOf(addr))
		c.enc.Write(regRenderbufDim, uint32(w)<<16|uint32(h))
	}
	if addr, _, _, ok := fb.depth.addressAndSize(c.heaps); ok {
		c.enc.Write(regDepthbufferLoc, c.host.Alloc.PhysOf(addr))
	}
	if c.block32 {
		c.enc.Write(regFramebufferBlock32, 1)
	}
}

// mirrorX applies the physical-screen-is-rotated-90° x-origin mirror:
// x_out = render_width - (x + w).
func mirrorX(renderWidth, x, w int32) int32 {
	return renderWidth - (x + w)
}

func (c *Context) renderWidth() int32 {
	if fb, ok := c.heaps.framebuffers.Get(c.framebuffer); ok {
		if _, w, _, ok := fb.color.addressAndSize(c.heaps); ok {
			return int32(w)
		}
	}
	return 0
}

func (c *Context) emitViewport() {
	c.enc.Write(regViewportWidth, uint32(c.viewportW))
	x := mirrorX(c.renderWidth(), c.viewportX, c.viewportW)
	c.enc.Write(regViewportXY, uint32(uint16(x))|uint32(uint16(c.viewportY))<<16)
}

func (c *Context) emitScissor() {
	mode := uint32(0)
	if c.scissorEnabled {
		mode = 1
		if c.scissorInverted {
			mode = 2
		}
	}
	c.enc.Write(regScissorMode, mode)
	x := mirrorX(c.renderWidth(), c.scissorX, c.scissorW)
	c.enc.Write(regScissorPos, uint32(uint16(x))|uint32(uint16(c.scissorY))<<16)
	c.enc.Write(regScissorDim, uint32(uint16(c.scissorW))|uint32(uint16(c.scissorH))<<16)
}

func (c *Context) emitProgram() {
	prog, ok := shader.GetProgram(c.currentProgram)
	if !ok {
		return
	}
	if vs, ok := shader.GetShader(prog.VertexShader()); ok && vs.NeedsUpload() {
		c.bindShaders(vs, false)
		c.uploadConstUniforms(vs, false)
		vs.ClearUpload()
	}
	if prog.GeometryShader().Valid() {
		if gs, ok := shader.GetShader(prog.GeometryShader()); ok && gs.NeedsUpload() {
			c.bindShaders(gs, true)
			c.uploadConstUniforms(gs, true)
			gs.ClearUpload()
		}
	}
	c.enc.Write(regShOutmapTotalO, uint32(prog.OutTotal))
	c.enc.Write(regShOutattrClock, prog.OutClock)
	for i, sem := range prog.OutSems {
		c.enc.WriteMasked(regShOutmapO0+uint16(i), 0xF, sem)
	}
}

// bindShaders uploads one stage's code and op-descriptor table (spec
// §4.1 step 5, §4.4).
func (c *Context) bindShaders(s *shader.Shader, geometry bool) {
	codeReg, codeData, codeEnd := regVshCodetransferConfig, regVshCodetransferData, regVshCodetransferEnd
	opReg, opData := regVshOpdescsConfig, regVshOpdescsData
	entryReg, outmapReg := regVshEntrypoint, regVshOutmapMask
	if geometry {
		codeReg, codeData, codeEnd = regGshCodetransferConfig, regGshCodetransferData, regGshCodetransferEnd
		opReg, opData = regGshOpdescsConfig, regGshOpdescsData
		entryReg, outmapReg = regGshEntrypoint, regGshOutmapMask
	}
	c.enc.Write(codeReg, 0)
	c.enc.Writes(codeData, s.Shared.Code)
	c.enc.Write(codeEnd, 1)
	c.enc.Write(opReg, 0)
	c.enc.Writes(opData, s.Shared.Opdescs)
	c.enc.Write(entryReg, s.Entrypoint)
	c.enc.Write(outmapReg, s.OutMask)
}

func (c *Context) uploadConstUniforms(s *shader.Shader, geometry bool) {
	boolReg, intReg, floatCfg, floatData := regVshBooluniform, regVshIntuniformI0, regVshFloatuniformConfig, regVshFloatuniformData
	if geometry {
		boolReg, intReg, floatCfg, floatData = regGshBooluniform, regGshIntuniformI0, regGshFloatuniformConfig, regGshFloatuniformData
	}
	if s.ConstBoolMask != 0 {
		c.enc.Write(boolReg, uint32(s.ConstBool)|0x7FFF0000)
	}
	for i := 0; i < 4; i++ {
		if s.ConstIntMask&(1<<i) != 0 {
			c.enc.Write(intReg+uint16(i), s.ConstInt[i])
		}
	}
	for i, v := range s.ConstFloat {
		if s.ConstFloatMask&(1<<i) == 0 {
			continue
		}
		c.enc.Write(floatCfg, uint32(i))
		c.enc.Writes(floatData, v[:])
	}
}

// emitUniforms walks each active, dirty uniform and writes its
// register(s), per spec §4.1 step 6. This core tracks "dirty" at
// program granularity (any Uniform* call re-dirties the whole
// program) rather than per-uniform, trading a few redundant writes
// for a much simpler bookkeeping surface.
func (c *Context) emitUniforms(p *shader.Program) {
	if !p.UniformsDirty {
		return
	}
	vs, gs := p.ActiveUniforms()
	if vs != nil {
		c.emitShaderUniforms(p, vs, false)
	}
	if gs != nil {
		c.emitShaderUniforms(p, gs, true)
	}
	p.UniformsDirty = false
}

// emitShaderUniforms writes one stage's active bool/int/float uniform
// registers from the program's live value store. Unlike
// uploadConstUniforms (which uploads a shader's own baked-in
// constants), this walks the Program's glUniform*-set values against
// whichever registers that stage's symbol table actually declares
// active, so a stage with no int uniforms never touches I0-I3.
func (c *Context) emitShaderUniforms(p *shader.Program, s *shader.Shader, geometry bool) {
	boolReg, intReg, floatCfg, floatData := regVshBooluniform, regVshIntuniformI0, regVshFloatuniformConfig, regVshFloatuniformData
	if geometry {
		boolReg, intReg, floatCfg, floatData = regGshBooluniform, regGshIntuniformI0, regGshFloatuniformConfig, regGshFloatuniformData
	}
	var hasBool, hasInt, hasFloat bool
	for _, u := range s.Uniforms {
		switch u.Kind {
		case shader.UniformBool:
			hasBool = true
		case shader.UniformInt:
			hasInt = true
		case shader.UniformFloat:
			hasFloat = true
		}
	}
	if hasBool {
		c.enc.Write(boolReg, uint32(p.BoolUniforms)|0x7FFF0000)
	}
	if hasInt {
		for i := 0; i < 4; i++ {
			v := p.IntUniforms[i]
			c.enc.Write(intReg+uint16(i), fixed.PackIntVector([4]uint32{
				uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3]),
			}))
		}
	}
	if hasFloat {
		for i, v := range p.FloatUniforms {
			c.enc.Write(floatCfg, uint32(i))
			packed := fixed.PackFloatVector(v)
			c.enc.Writes(floatData, packed[:])
		}
	}
}

func (c *Context) emitAttribs() {
	var permLow uint32
	numEnabled := uint32(0)
	for i, a := range c.attribs {
		if !a.enabled() {
			continue
		}
		permLow |= uint32(i) << (numEnabled * 4)
		numEnabled++
	}
	c.enc.Write(regVshNumAttr, numEnabled)
	c.enc.Write(regVshAttributesPermutationLow, permLow)

	var fmtLow uint32
	for i, a := range c.attribs {
		if !a.enabled() {
			continue
		}
		fmtLow |= attribFormatWord(a.typ, a.count) << (uint(i) * 4)
	}
	c.enc.Write(regAttribbuffersFormatLow, fmtLow)

	for i, a := range c.attribs {
		if a.enabled() && !a.fixed() {
			c.enc.Write(regAttribbuffer0Offset+uint16(i), uint32(a.bufferOffset))
			continue
		}
		if a.enabled() && a.fixed() {
			c.enc.Write(regFixedattribIndex, uint32(i))
			packed := fixed.PackFloatVector(a.components)
			c.enc.Writes(regFixedattribData0, packed[:])
		}
	}
}

// attribFormatWord packs one attribute's (count-1, type) nibble, the
// GPU's ATTRIBFMT encoding.
func attribFormatWord(typ Enum, count int32) uint32 {
	var f uint32
	switch typ {
	case Byte:
		f = 0
	case UByte:
		f = 1
	case Short:
		f = 2
	case Float:
		f = 3
	}
	return uint32(count-1)<<2 | f
}

func (c *Context) emitFragOp() {
	c.enc.Write(regColorOperation, uint32(c.fragMode))
}

func packBool4(a, b, c2, d bool) uint32 {
	var v uint32
	if a {
		v |= 1
	}
	if b {
		v |= 2
	}
	if c2 {
		v |= 4
	}
	if d {
		v |= 8
	}
	return v
}

func (c *Context) emitColorDepthMask() {
	v := packBool4(c.writeRed, c.writeGreen, c.writeBlue, c.writeAlpha)
	if c.writeDepth {
		v |= 1 << 4
	}
	c.enc.Write(regDepthColorMask, v)
}

func (c *Context) emitDepthMap() {
	en := uint32(0)
	if c.depthTest {
		en = 1
	}
	c.enc.Write(regDepthmapEnable, en)
	c.enc.Write(regDepthmapScale, uint32(fixed.FromF32ToF31(-(c.depthFar-c.depthNear)/2)))
	c.enc.Write(regDepthmapOffset, uint32(fixed.FromF32ToF31((c.depthFar+c.depthNear)/2)))
}

func (c *Context) emitEarlyDepth() {
	en := uint32(0)
	if c.earlyDepthTest {
		en = 1
	}
	c.enc.Write(regEarlydepthTest1, en)
	c.enc.Write(regEarlydepthTest2, en)
	c.enc.Write(regEarlydepthFunc, uint32(c.earlyDepthFunc))
}

func (c *Context) emitEarlyDepthClear() {
	c.enc.Write(regEarlydepthClear, 1)
}

func (c *Context) emitStencil() {
	en := uint32(0)
	if c.stencilTest {
		en = 1
	}
	c.enc.Write(regStencilTest, en|uint32(c.stencilFunc)<<4|uint32(c.stencilMask)<<8|uint32(c.stencilRef)<<24)
	c.enc.Write(regStencilOp, uint32(c.stencilFail)|uint32(c.stencilDepthFail)<<4|uint32(c.stencilPass)<<8)
}

func (c *Context) emitCullFace() {
	en := uint32(0)
	if c.cullFace {
		en = 1
	}
	mode := uint32(0)
	switch {
	case c.cullFaceMode == Back && c.frontFaceMode == CCW:
		mode = 1
	case c.cullFaceMode == Front && c.frontFaceMode == CCW:
		mode = 2
	}
	c.enc.Write(regFacecullingConfig, en|mode<<8)
}

func (c *Context) emitAlpha() {
	en := uint32(0)
	if c.alphaTest {
		en = 1
	}
	c.enc.Write(regFragopAlphaTest, en|uint32(c.alphaFunc)<<4)
}

func (c *Context) emitBlend() {
	en := uint32(0)
	if c.blendMode {
		en = 1
	}
	_ = en
	c.enc.Write(regBlendFunc,
		uint32(c.blendEqRGB)|uint32(c.blendEqAlpha)<<8|
			uint32(c.blendSrcRGB)<<16|uint32(c.blendDstRGB)<<20|
			uint32(c.blendSrcAlpha)<<24|uint32(c.blendDstAlpha)<<28)
	c.enc.Write(regBlendColor, c.blendColor)
	c.enc.Write(regLogicOp, uint32(c.logicOp))
}

func (c *Context) emitTextures() {
	var cfg uint32
	for i := range c.textureUnits {
		if c.textureUnits[i].bound.Valid() {
			cfg |= 1 << i
		}
	}
	c.enc.Write(regTexunitConfig, cfg)
	for i, u := range c.textureUnits {
		if !u.bound.Valid() {
			continue
		}
		t, ok := c.heaps.textures.Get(u.bound)
		if !ok {
			continue
		}
		base := uint16(i) * 8
		c.enc.Write(regTexunit0Dim+base, uint32(t.Width)<<16|uint32(t.Height))
		c.enc.Write(regTexunit0Param+base, texParamWord(t))
		c.enc.Write(regTexunit0Addr1+base, c.host.Alloc.PhysOf(t.Faces[FacePosX]))
		c.enc.Write(regTexunit0Type+base, uint32(t.NativeFormat))
	}
}

func texParamWord(t *Texture) uint32 {
	var v uint32
	v |= uint32(t.MinFilter)
	v |= uint32(t.MagFilter) << 4
	v |= uint32(t.WrapS) << 8
	v |= uint32(t.WrapT) << 12
	return v
}

func (c *Context) emitCombiners() {
	for i, s := range c.combiners {
		base := uint16(i)
		c.enc.Write(regTexenv0Source+base, uint32(s.rgbSrc[0])|uint32(s.rgbSrc[1])<<4|uint32(s.rgbSrc[2])<<8)
		c.enc.Write(regTexenv0Combiner+base, uint32(s.rgbFunc)|uint32(s.alphaFunc)<<16)
		c.enc.Write(regTexenv0Scale+base, combScaleBits(s.rgbScale)|combScaleBits(s.alphaScale)<<16)
	}
}

func combScaleBits(scale float32) uint32 {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 0
	}
}
