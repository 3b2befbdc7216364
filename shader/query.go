// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import "github.com/ctrgfx/pica200/internal/objheap"

// ProgramStatus mirrors the glGetProgramiv query subset this core
// supports: whether the last LinkProgram call succeeded, and how many
// active uniforms/attributes the linked vertex and geometry stages
// expose between them.
type ProgramStatus struct {
	LinkSucceeded  bool
	ActiveUniforms int
	ActiveAttribs  int
}

// GetProgramStatus implements the glGetProgramiv subset
// (GL_LINK_STATUS, GL_ACTIVE_UNIFORMS, GL_ACTIVE_ATTRIBUTES) this core
// tracks; ok is false if p names no program.
func GetProgramStatus(p objheap.Handle) (ProgramStatus, bool) {
	prog, ok := programs.Get(p)
	if !ok {
		return ProgramStatus{}, false
	}
	var st ProgramStatus
	st.LinkSucceeded = prog.linked[0].Valid() && !prog.linkFailed
	for _, h := range prog.linked {
		if !h.Valid() {
			continue
		}
		if s, ok := shaders.Get(h); ok {
			st.ActiveUniforms += len(s.Uniforms)
			st.ActiveAttribs += len(s.Attribs)
		}
	}
	return st, true
}

// ShaderStatus mirrors the glGetShaderiv query subset: whether the
// shader holds parsed DVLE content (GL has no separate "compile" step
// here, ShaderBinary plays that role) and which stage it is.
type ShaderStatus struct {
	HasBinary bool
	Geometry  bool
}

// GetShaderStatus implements glGetShaderiv's GL_SHADER_TYPE/implicit
// "has been given a binary" subset.
func GetShaderStatus(h objheap.Handle) (ShaderStatus, bool) {
	s, ok := shaders.Get(h)
	if !ok {
		return ShaderStatus{}, false
	}
	return ShaderStatus{HasBinary: s.Shared != nil, Geometry: s.Geometry}, true
}

// ActiveUniform describes one entry returned by GetActiveUniform.
type ActiveUniform struct {
	Name     string
	Kind     UniformKind
	Location int32
}

// GetActiveUniform implements glGetActiveUniform: index ranges over
// the linked vertex stage's uniforms first, then (if present) the
// geometry stage's, matching GetProgramStatus's ActiveUniforms count.
func GetActiveUniform(p objheap.Handle, index int) (ActiveUniform, bool) {
	prog, ok := programs.Get(p)
	if !ok {
		return ActiveUniform{}, false
	}
	for _, h := range prog.linked {
		if !h.Valid() {
			continue
		}
		s, ok := shaders.Get(h)
		if !ok {
			continue
		}
		if index < len(s.Uniforms) {
			u := s.Uniforms[index]
			return ActiveUniform{Name: u.Name, Kind: u.Kind, Location: locationOf(u)}, true
		}
		index -= len(s.Uniforms)
	}
	return ActiveUniform{}, false
}

// ActiveAttrib describes one entry returned by GetActiveAttrib.
type ActiveAttrib struct {
	Name     string
	Location int32
}

// GetActiveAttrib implements glGetActiveAttrib against the linked
// vertex stage (the only stage with an input attribute table).
func GetActiveAttrib(p objheap.Handle, index int) (ActiveAttrib, bool) {
	prog, ok := programs.Get(p)
	if !ok || !prog.linked[0].Valid() {
		return ActiveAttrib{}, false
	}
	s, ok := shaders.Get(prog.linked[0])
	if !ok || index < 0 || index >= len(s.Attribs) {
		return ActiveAttrib{}, false
	}
	a := s.Attribs[index]
	return ActiveAttrib{Name: a.Name, Location: int32(a.Reg)}, true
}
