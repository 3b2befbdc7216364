// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import (
	"github.com/ctrgfx/pica200/internal/objheap"
	"github.com/ctrgfx/pica200/shader"
)

// CreateShader, DeleteShader, CreateProgram, DeleteProgram, Attach/
// DetachShader and ShaderBinary forward directly onto the shader
// package's own object heaps (spec §4.4): glctx does not duplicate
// shader/program storage, it only tracks which program is current.

func (c *Context) CreateShader(geometry bool) objheap.Handle { return shader.CreateShader(geometry) }

func (c *Context) DeleteShader(h objheap.Handle) {
	if c.currentProgram.Valid() {
		_ = shader.DetachShader(c.currentProgram, h)
	}
	shader.DeleteShader(h)
}

func (c *Context) ShaderBinary(handles []objheap.Handle, data []byte) error {
	return shader.ShaderBinary(handles, data)
}

func (c *Context) CreateProgram() objheap.Handle { return shader.CreateProgram() }

func (c *Context) DeleteProgram(h objheap.Handle) {
	if c.currentProgram == h {
		c.currentProgram = objheap.Handle{}
		c.markDirty(dirtyProgram)
	}
	shader.DeleteProgram(h)
}

func (c *Context) AttachShader(p, sh objheap.Handle) error { return shader.AttachShader(p, sh) }
func (c *Context) DetachShader(p, sh objheap.Handle) error { return shader.DetachShader(p, sh) }

// LinkProgram implements glLinkProgram; a program currently in use
// whose link fails keeps its previously linked stages active, per GL
// semantics (only a fresh UseProgram call or a successful relink
// changes what's bound for drawing).
func (c *Context) LinkProgram(p objheap.Handle) error {
	err := shader.LinkProgram(p)
	if p == c.currentProgram {
		c.markDirty(dirtyProgram)
	}
	return err
}

// UseProgram implements glUseProgram.
func (c *Context) UseProgram(p objheap.Handle) error {
	if p.Valid() {
		if _, ok := shader.GetProgram(p); !ok {
			return errEnum(InvalidOperation)
		}
	}
	c.currentProgram = p
	c.markDirty(dirtyProgram)
	return nil
}

// GetUniformLocation and GetAttribLocation implement their glGet*
// entry points against the current program.
func (c *Context) GetUniformLocation(name string) int32 {
	return shader.GetUniformLocation(c.currentProgram, name)
}

func (c *Context) GetAttribLocation(name string) int32 {
	return shader.GetAttribLocation(c.currentProgram, name)
}

// Uniform{1,2,3,4}f implement the float glUniform* family against the
// current program; missing trailing components are padded with 0 to
// match glUniform1f/2f/3f's implicit-zero convention.
func (c *Context) Uniform4f(location int32, x, y, z, w float32) error {
	return shader.SetUniform4f(c.currentProgram, location, x, y, z, w)
}
func (c *Context) Uniform3f(location int32, x, y, z float32) error {
	return c.Uniform4f(location, x, y, z, 0)
}
func (c *Context) Uniform2f(location int32, x, y float32) error {
	return c.Uniform4f(location, x, y, 0, 0)
}
func (c *Context) Uniform1f(location int32, x float32) error {
	return c.Uniform4f(location, x, 0, 0, 0)
}

// Uniform4fv sets count consecutive vec4 uniforms starting at
// location.
func (c *Context) Uniform4fv(location int32, values [][4]float32) error {
	return shader.SetUniform4fv(c.currentProgram, location, values)
}

// Uniform{1,2,3,4}i implement the int glUniform* family.
func (c *Context) Uniform4i(location int32, x, y, z, w int32) error {
	return shader.SetUniform4i(c.currentProgram, location, x, y, z, w)
}
func (c *Context) Uniform1i(location int32, x int32) error {
	return c.Uniform4i(location, x, 0, 0, 0)
}

// UniformBoolPICA sets a vendor bool uniform.
func (c *Context) UniformBoolPICA(location int32, value bool) error {
	return shader.SetUniformBool(c.currentProgram, location, value)
}

// GetUniformfv and GetUniformiv implement glGetUniformfv/glGetUniformiv
// against the current program.
func (c *Context) GetUniformfv(location int32) ([4]float32, bool) {
	return shader.GetUniformfv(c.currentProgram, location)
}
func (c *Context) GetUniformiv(location int32) ([4]int32, bool) {
	return shader.GetUniformiv(c.currentProgram, location)
}

// UniformMatrix2fv, UniformMatrix3fv and UniformMatrix4fv implement
// glUniformMatrix{2,3,4}fv. transpose=true is rejected with
// InvalidValue: the PICA200 register layout this core writes into is
// always column-major, matching GL's own untransposed convention.
func (c *Context) uniformMatrixNfv(n int, transpose bool, location int32, values []float32) error {
	if transpose {
		return errEnum(InvalidValue)
	}
	return shader.SetUniformMatrix(c.currentProgram, location, n, values)
}

func (c *Context) UniformMatrix2fv(location int32, transpose bool, values []float32) error {
	return c.uniformMatrixNfv(2, transpose, location, values)
}
func (c *Context) UniformMatrix3fv(location int32, transpose bool, values []float32) error {
	return c.uniformMatrixNfv(3, transpose, location, values)
}
func (c *Context) UniformMatrix4fv(location int32, transpose bool, values []float32) error {
	return c.uniformMatrixNfv(4, transpose, location, values)
}

// GetProgramStatus implements the glGetProgramiv query subset this
// core tracks (link status, active uniform/attribute counts).
func (c *Context) GetProgramStatus(p objheap.Handle) (shader.ProgramStatus, bool) {
	return shader.GetProgramStatus(p)
}

// GetShaderStatus implements the glGetShaderiv query subset.
func (c *Context) GetShaderStatus(h objheap.Handle) (shader.ShaderStatus, bool) {
	return shader.GetShaderStatus(h)
}

// GetActiveUniform implements glGetActiveUniform against p.
func (c *Context) GetActiveUniform(p objheap.Handle, index int) (shader.ActiveUniform, bool) {
	return shader.GetActiveUniform(p, index)
}

// GetActiveAttrib implements glGetActiveAttrib against p.
func (c *Context) GetActiveAttrib(p objheap.Handle, index int) (shader.ActiveAttrib, bool) {
	return shader.GetActiveAttrib(p, index)
}
