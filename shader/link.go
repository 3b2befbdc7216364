// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import "github.com/ctrgfx/pica200/internal/objheap"

// LinkProgram implements spec §4.4's linking rule: linkable iff a
// vertex shader is attached and has non-null shared data; a geometry
// shader is optional. On success the attached slots are copied to the
// linked slots, refcounts adjusted, and the shaders' upload-pending
// flags set so the next draw re-uploads code and op-descriptors.
func LinkProgram(p objheap.Handle) error {
	prog, ok := programs.Get(p)
	if !ok {
		return ErrLinkFailed
	}

	vs, ok := shaders.Get(prog.attached[0])
	if !ok || vs.Shared == nil {
		prog.linkFailed = true
		return ErrLinkFailed
	}

	var gs *Shader
	if prog.attached[1].Valid() {
		if g, ok := shaders.Get(prog.attached[1]); ok && g.Shared != nil {
			gs = g
		}
	}

	// Release whatever was previously linked, retain the new slots.
	for i, h := range prog.linked {
		if h.Valid() {
			if s, ok := shaders.Get(h); ok {
				releaseShared(s.Shared)
			}
		}
		prog.linked[i] = objheap.Handle{}
	}

	prog.linked[0] = prog.attached[0]
	retainShared(vs.Shared)
	vs.needUpload = true

	if gs != nil {
		prog.linked[1] = prog.attached[1]
		retainShared(gs.Shared)
		gs.needUpload = true
	}

	mergeOutmap(prog, vs, gs)
	prog.linkFailed = false
	return nil
}

// mergeOutmap computes the program's effective outmap: if a geometry
// shader is linked and its merge flag is set, the merged value at
// each slot is the geometry shader's value where it differs from the
// sentinel, otherwise the vertex shader's; merged total counts
// non-sentinel slots, clock and use-texcoords are the OR of both.
func mergeOutmap(p *Program, vs, gs *Shader) {
	if gs == nil || !gs.MergeOutmaps {
		p.OutSems = vs.OutSems
		p.OutTotal = vs.OutTotal
		p.OutClock = vs.OutClock
		p.UseTexcoords = vs.UseTexcoords
		return
	}
	total := 0
	for i := range p.OutSems {
		if gs.OutSems[i] != outSemSentinel {
			p.OutSems[i] = gs.OutSems[i]
		} else {
			p.OutSems[i] = vs.OutSems[i]
		}
		if p.OutSems[i] != outSemSentinel {
			total++
		}
	}
	p.OutTotal = total
	p.OutClock = vs.OutClock | gs.OutClock
	p.UseTexcoords = vs.UseTexcoords || gs.UseTexcoords
}

// IsLinked reports whether p currently has a successfully linked
// vertex stage.
func (p *Program) IsLinked() bool { return p.linked[0].Valid() && !p.linkFailed }

// LinkFailed reports whether the most recent LinkProgram call failed.
func (p *Program) LinkFailed() bool { return p.linkFailed }

// VertexShader and GeometryShader expose the linked stages (the
// latter may be invalid if no geometry shader is linked).
func (p *Program) VertexShader() objheap.Handle   { return p.linked[0] }
func (p *Program) GeometryShader() objheap.Handle { return p.linked[1] }
