// Copyright 2025 The pica200 Authors. All rights reserved.

// Package gl is an illustrative, intentionally partial GL-ES-style
// C-ABI veneer over glctx. It is not a conformant implementation of
// any GL entry-point set — it exists to show how an application-
// facing surface would dispatch onto the core (bind/validate/
// mutate-state/mark-dirty), the way the core's own doc comments
// describe it. A real binding layer (cgo, or a platform's GL dispatch
// table) would generate the equivalent of this file mechanically.
package gl

import (
	"github.com/ctrgfx/pica200/glctx"
	"github.com/ctrgfx/pica200/internal/objheap"
	"github.com/ctrgfx/pica200/texture"
)

// Re-exported GL constants, so callers of this package see the
// familiar names without importing glctx directly.
const (
	ArrayBuffer        = glctx.ArrayBuffer
	ElementArrayBuffer = glctx.ElementArrayBuffer
	StaticDraw         = glctx.StaticDraw
	DynamicDraw        = glctx.DynamicDraw
	StreamDraw         = glctx.StreamDraw

	Texture2D      = glctx.Texture2D
	TextureCubeMap = glctx.TextureCubeMap

	Triangles     = glctx.Triangles
	TriangleStrip = glctx.TriangleStrip
	TriangleFan   = glctx.TriangleFan

	UnsignedByte  = glctx.UnsignedByte
	UnsignedShort = glctx.UnsignedShort

	ColorBufferBit   = glctx.ColorBufferBit
	DepthBufferBit   = glctx.DepthBufferBit
	StencilBufferBit = glctx.StencilBufferBit

	DepthTest   = glctx.DepthTest
	CullFace    = glctx.CullFace
	Blend       = glctx.Blend
	ScissorTest = glctx.ScissorTest
)

// Handle is a resource object name, the veneer's equivalent of a
// GLuint. It packs an objheap.Handle's Kind/Gen/Index into a single
// 32-bit name the way a real binding layer's name table would hand out
// opaque uint32s to callers; Kind occupies the top 4 bits, Gen the
// next 12, Index the low 16.
type Handle uint32

const (
	handleKindShift  = 28
	handleGenShift   = 16
	handleGenMask    = 0xFFF
	handleIndexMask  = 0xFFFF
)

func toHandle(h objheap.Handle) Handle {
	if !h.Valid() {
		return 0
	}
	return Handle(uint32(h.Kind)<<handleKindShift |
		(h.Gen&handleGenMask)<<handleGenShift |
		(h.Index & handleIndexMask))
}

func fromHandle(h Handle) objheap.Handle {
	return objheap.Handle{
		Kind:  objheap.Kind(uint32(h) >> handleKindShift),
		Gen:   (uint32(h) >> handleGenShift) & handleGenMask,
		Index: uint32(h) & handleIndexMask,
	}
}

func toHandles(hs []objheap.Handle) []Handle {
	out := make([]Handle, len(hs))
	for i, h := range hs {
		out[i] = toHandle(h)
	}
	return out
}

func fromHandles(hs []Handle) []objheap.Handle {
	out := make([]objheap.Handle, len(hs))
	for i, h := range hs {
		out[i] = fromHandle(h)
	}
	return out
}

func ctx() *glctx.Context { return glctx.Current() }

// GenBuffers allocates n buffer objects into the current context.
func GenBuffers(n int) []Handle {
	hs := ctx().GenBuffers(n)
	return toHandles(hs)
}

// GenTextures allocates n texture objects into the current context.
func GenTextures(n int) []Handle {
	hs := ctx().GenTextures(n)
	return toHandles(hs)
}

// GenRenderbuffers allocates n renderbuffer objects.
func GenRenderbuffers(n int) []Handle {
	hs := ctx().GenRenderbuffers(n)
	return toHandles(hs)
}

// GenFramebuffers allocates n framebuffer objects.
func GenFramebuffers(n int) []Handle {
	hs := ctx().GenFramebuffers(n)
	return toHandles(hs)
}

// BindBuffer binds handle to target.
func BindBuffer(target glctx.Enum, handle Handle) error {
	return ctx().BindBuffer(target, fromHandle(handle))
}

// BindTexture binds handle to target on the active texture unit.
func BindTexture(target glctx.Enum, handle Handle) error {
	return ctx().BindTexture(target, fromHandle(handle))
}

// BindRenderbuffer binds handle as the current renderbuffer.
func BindRenderbuffer(handle Handle) {
	ctx().BindRenderbuffer(fromHandle(handle))
}

// BindFramebuffer binds handle as the current framebuffer.
func BindFramebuffer(handle Handle) {
	ctx().BindFramebuffer(fromHandle(handle))
}

// DeleteBuffers frees the given buffer objects.
func DeleteBuffers(handles []Handle) {
	ctx().DeleteBuffers(fromHandles(handles))
}

// DeleteTextures frees the given texture objects.
func DeleteTextures(handles []Handle) {
	ctx().DeleteTextures(fromHandles(handles))
}

// BufferData implements glBufferData.
func BufferData(target glctx.Enum, size int, data []byte, usage glctx.Enum) error {
	return ctx().BufferData(target, size, data, usage)
}

// BufferSubData implements glBufferSubData.
func BufferSubData(target glctx.Enum, offset, size int, data []byte) error {
	return ctx().BufferSubData(target, offset, size, data)
}

// Enable and Disable implement glEnable/glDisable for the capability
// subset this veneer exposes.
func Enable(cap glctx.Enum) error  { return setCapability(cap, true) }
func Disable(cap glctx.Enum) error { return setCapability(cap, false) }

func setCapability(cap glctx.Enum, enabled bool) error {
	return ctx().SetCapability(cap, enabled)
}

// ClearColor sets the color used by Clear's color-buffer fill.
func ClearColor(r, g, b, a float32) { ctx().SetClearColor(r, g, b, a) }

// ClearDepthf sets the depth value used by Clear's depth-buffer fill.
func ClearDepthf(depth float32) { ctx().SetClearDepth(depth) }

// ClearStencil sets the stencil value used by Clear's stencil-buffer
// fill.
func ClearStencil(s int32) { ctx().SetClearStencil(s) }

// Clear implements glClear.
func Clear(mask uint32) error { return ctx().Clear(mask) }

// DrawArrays implements glDrawArrays.
func DrawArrays(mode glctx.Enum, first, count int32) error {
	return ctx().DrawArrays(mode, first, count)
}

// DrawElements implements glDrawElements.
func DrawElements(mode glctx.Enum, count int32, indexType glctx.Enum, offset uintptr) error {
	return ctx().DrawElements(mode, count, indexType, offset)
}

// CombinerStagePICA and its siblings expose the vendor texture-
// combiner extension.
func CombinerStagePICA(stage int) error { return ctx().CombinerStagePICA(stage) }
func CombinerSrcPICA(rgb bool, index int, src glctx.Enum) error {
	return ctx().CombinerSrcPICA(rgb, index, src)
}
func CombinerOpPICA(rgb bool, index int, op glctx.Enum) error {
	return ctx().CombinerOpPICA(rgb, index, op)
}
func CombinerFuncPICA(rgb bool, fn glctx.Enum) error { return ctx().CombinerFuncPICA(rgb, fn) }
func CombinerScalePICA(rgb bool, scale float32) error {
	return ctx().CombinerScalePICA(rgb, scale)
}
func CombinerColorPICA(rgba uint32) { ctx().CombinerColorPICA(rgba) }

// TexVRAMPICA switches the active texture unit's bound texture
// between linear-heap and VRAM backing.
func TexVRAMPICA(enabled bool) error { return ctx().TexVRAMPICA(enabled) }

// CreateShader, DeleteShader, ShaderBinary, CreateProgram,
// DeleteProgram, Attach/DetachShader, LinkProgram and UseProgram
// implement the shader-object half of the API, forwarding onto the
// shader package's object heaps through glctx.
func CreateShader(geometry bool) Handle  { return toHandle(ctx().CreateShader(geometry)) }
func DeleteShader(h Handle)              { ctx().DeleteShader(fromHandle(h)) }
func ShaderBinary(handles []Handle, data []byte) error {
	return ctx().ShaderBinary(fromHandles(handles), data)
}
func CreateProgram() Handle                       { return toHandle(ctx().CreateProgram()) }
func DeleteProgram(h Handle)                      { ctx().DeleteProgram(fromHandle(h)) }
func AttachShader(p, sh Handle) error             { return ctx().AttachShader(fromHandle(p), fromHandle(sh)) }
func DetachShader(p, sh Handle) error             { return ctx().DetachShader(fromHandle(p), fromHandle(sh)) }
func LinkProgram(p Handle) error                  { return ctx().LinkProgram(fromHandle(p)) }
func UseProgram(p Handle) error                   { return ctx().UseProgram(fromHandle(p)) }

// GetUniformLocation, GetAttribLocation and the Uniform* family
// operate against whichever program is current.
func GetUniformLocation(name string) int32 { return ctx().GetUniformLocation(name) }
func GetAttribLocation(name string) int32  { return ctx().GetAttribLocation(name) }

func Uniform1f(location int32, x float32)             { _ = ctx().Uniform1f(location, x) }
func Uniform2f(location int32, x, y float32)          { _ = ctx().Uniform2f(location, x, y) }
func Uniform3f(location int32, x, y, z float32)       { _ = ctx().Uniform3f(location, x, y, z) }
func Uniform4f(location int32, x, y, z, w float32)    { _ = ctx().Uniform4f(location, x, y, z, w) }
func Uniform4fv(location int32, values [][4]float32)  { _ = ctx().Uniform4fv(location, values) }
func Uniform1i(location int32, x int32)               { _ = ctx().Uniform1i(location, x) }
func Uniform4i(location int32, x, y, z, w int32)      { _ = ctx().Uniform4i(location, x, y, z, w) }
func UniformBoolPICA(location int32, value bool)      { _ = ctx().UniformBoolPICA(location, value) }

// UniformMatrix2fv, UniformMatrix3fv and UniformMatrix4fv implement
// glUniformMatrix{2,3,4}fv. transpose=true returns an error (GL's
// INVALID_VALUE): this core's register layout only supports
// column-major input.
func UniformMatrix2fv(location int32, transpose bool, values []float32) error {
	return ctx().UniformMatrix2fv(location, transpose, values)
}
func UniformMatrix3fv(location int32, transpose bool, values []float32) error {
	return ctx().UniformMatrix3fv(location, transpose, values)
}
func UniformMatrix4fv(location int32, transpose bool, values []float32) error {
	return ctx().UniformMatrix4fv(location, transpose, values)
}

// GetUniformfv and GetUniformiv implement glGetUniformfv/glGetUniformiv
// against the current program.
func GetUniformfv(location int32) ([4]float32, bool) { return ctx().GetUniformfv(location) }
func GetUniformiv(location int32) ([4]int32, bool)   { return ctx().GetUniformiv(location) }

// GetProgramiv subset: LinkStatus, ActiveUniformCount and
// ActiveAttribCount report program p's link state and reflected table
// sizes.
func LinkStatus(p Handle) bool {
	st, ok := ctx().GetProgramStatus(fromHandle(p))
	return ok && st.LinkSucceeded
}
func ActiveUniformCount(p Handle) int {
	st, _ := ctx().GetProgramStatus(fromHandle(p))
	return st.ActiveUniforms
}
func ActiveAttribCount(p Handle) int {
	st, _ := ctx().GetProgramStatus(fromHandle(p))
	return st.ActiveAttribs
}

// ShaderHasBinary and ShaderIsGeometry cover the glGetShaderiv subset.
func ShaderHasBinary(sh Handle) bool {
	st, _ := ctx().GetShaderStatus(fromHandle(sh))
	return st.HasBinary
}
func ShaderIsGeometry(sh Handle) bool {
	st, _ := ctx().GetShaderStatus(fromHandle(sh))
	return st.Geometry
}

// ActiveUniformName and ActiveUniformLocation implement
// glGetActiveUniform's name/location outputs for p's index'th active
// uniform.
func ActiveUniformName(p Handle, index int) (string, bool) {
	u, ok := ctx().GetActiveUniform(fromHandle(p), index)
	return u.Name, ok
}
func ActiveUniformLocation(p Handle, index int) (int32, bool) {
	u, ok := ctx().GetActiveUniform(fromHandle(p), index)
	return u.Location, ok
}

// ActiveAttribName and ActiveAttribLocation implement
// glGetActiveAttrib's name/location outputs for p's index'th active
// attribute.
func ActiveAttribName(p Handle, index int) (string, bool) {
	a, ok := ctx().GetActiveAttrib(fromHandle(p), index)
	return a.Name, ok
}
func ActiveAttribLocation(p Handle, index int) (int32, bool) {
	a, ok := ctx().GetActiveAttrib(fromHandle(p), index)
	return a.Location, ok
}

// GetVertexAttrib implements glGetVertexAttrib for index.
func GetVertexAttrib(index int) (glctx.VertexAttribInfo, error) {
	return ctx().GetVertexAttrib(index)
}

// GetRenderbufferParameteriv implements glGetRenderbufferParameteriv
// against the bound renderbuffer.
func GetRenderbufferParameteriv() (glctx.RenderbufferParams, error) {
	return ctx().GetRenderbufferParameteriv()
}

// TexImage2D implements glTexImage2D for the 2D target; cube-map faces
// go through TexImage2DFacePICA since this veneer, like real GL,
// distinguishes the six cube targets at the constant level rather than
// via a separate entry point, a distinction left to a fuller veneer.
func TexImage2D(target glctx.Enum, level int, format glctx.Enum, w, h int, pixels []byte) error {
	return texture.TexImage2D(ctx(), target, level, format, w, h, pixels)
}

// TexImage2DFacePICA uploads one cube-map face explicitly.
func TexImage2DFacePICA(face glctx.CubeFace, level int, format glctx.Enum, w, h int, pixels []byte) error {
	return texture.TexImage2DFace(ctx(), face, level, format, w, h, pixels)
}
