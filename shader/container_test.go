// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ctrgfx/pica200/internal/objheap"
)

// buildDVLB assembles a minimal one-DVLE vendor shader binary by hand,
// matching parseDVLB/parseDVLP/parseDVLE's expected layout exactly: a
// DVLB header with one DVLE offset, an empty-code DVLP section, and a
// single vertex DVLE declaring one float uniform ("u_proj" at register
// 0x10) and no attributes/outputs.
func buildDVLB(t *testing.T) []byte {
	t.Helper()

	var dvle bytes.Buffer
	dvle.WriteString("DVLE")
	dvle.WriteByte(0) // flags: not geometry
	dvle.WriteByte(0) // merge: off
	dvle.Write([]byte{0, 0})
	binary.Write(&dvle, order, uint32(0x100)) // entrypoint
	dvle.WriteByte(0)                         // geoMode
	dvle.Write([]byte{0, 0, 0})
	// Range table (base=16): constUniforms, outRegs, activeUniforms, symbols.
	binary.Write(&dvle, order, uint32(48)) // constUniforms.off
	binary.Write(&dvle, order, uint32(0))  // constUniforms.count
	binary.Write(&dvle, order, uint32(48)) // outRegs.off
	binary.Write(&dvle, order, uint32(0))  // outRegs.count
	binary.Write(&dvle, order, uint32(48)) // activeUniforms.off
	binary.Write(&dvle, order, uint32(1))  // activeUniforms.count
	binary.Write(&dvle, order, uint32(56)) // symbols.off
	binary.Write(&dvle, order, uint32(7))  // symbols.count
	if dvle.Len() != 48 {
		t.Fatalf("dvle range table ended at %d, want 48", dvle.Len())
	}
	// One activeUniform entry: symbolOffset=0, startReg=endReg=floatRegMin.
	binary.Write(&dvle, order, uint32(0))
	dvle.WriteByte(floatRegMin)
	dvle.WriteByte(floatRegMin)
	dvle.Write([]byte{0, 0})
	if dvle.Len() != 56 {
		t.Fatalf("dvle activeUniforms ended at %d, want 56", dvle.Len())
	}
	dvle.WriteString("u_proj\x00")
	for dvle.Len() < 64 {
		dvle.WriteByte(0)
	}

	var dvlp bytes.Buffer
	dvlp.WriteString("DVLP")
	dvlp.Write([]byte{0, 0, 0, 0}) // version
	binary.Write(&dvlp, order, uint32(0)) // codeOffset
	binary.Write(&dvlp, order, uint32(0)) // codeCount
	binary.Write(&dvlp, order, uint32(0)) // opdescOffset
	binary.Write(&dvlp, order, uint32(0)) // opdescCount
	for dvlp.Len() < 40 {
		dvlp.WriteByte(0)
	}

	var out bytes.Buffer
	out.WriteString("DVLB")
	binary.Write(&out, order, uint32(1)) // N
	dvleOffset := uint32(8 + 4 + dvlp.Len())
	binary.Write(&out, order, dvleOffset)
	out.Write(dvlp.Bytes())
	out.Write(dvle.Bytes())
	return out.Bytes()
}

func TestParseDVLBRoundTrip(t *testing.T) {
	data := buildDVLB(t)
	top, err := parseDVLB(data)
	if err != nil {
		t.Fatalf("parseDVLB: %v", err)
	}
	if len(top.dvles) != 1 {
		t.Fatalf("parseDVLB dvles:\nhave %d\nwant 1", len(top.dvles))
	}
	de := top.dvles[0]
	if de.geometry {
		t.Fatalf("parseDVLB dvle.geometry:\nhave true\nwant false")
	}
	if de.entrypoint != 0x100 {
		t.Fatalf("parseDVLB dvle.entrypoint:\nhave %#x\nwant %#x", de.entrypoint, 0x100)
	}
	if len(de.activeUniforms) != 1 {
		t.Fatalf("parseDVLB activeUniforms:\nhave %d\nwant 1", len(de.activeUniforms))
	}
}

func TestShaderBinaryClassifiesFloatUniform(t *testing.T) {
	data := buildDVLB(t)
	h := CreateShader(false)
	defer DeleteShader(h)

	if err := ShaderBinary([]objheap.Handle{h}, data); err != nil {
		t.Fatalf("ShaderBinary: %v", err)
	}
	s, ok := GetShader(h)
	if !ok {
		t.Fatalf("GetShader: not found")
	}
	if s.Entrypoint != 0x100 {
		t.Fatalf("Shader.Entrypoint:\nhave %#x\nwant %#x", s.Entrypoint, 0x100)
	}
	if len(s.Uniforms) != 1 {
		t.Fatalf("Shader.Uniforms:\nhave %d\nwant 1", len(s.Uniforms))
	}
	u := s.Uniforms[0]
	if u.Name != "u_proj" || u.Kind != UniformFloat || u.StartReg != 0 {
		t.Fatalf("Shader.Uniforms[0]:\nhave %+v\nwant {u_proj Float 0 0}", u)
	}
	if s.Shared == nil || len(s.Shared.Code) != 0 {
		t.Fatalf("Shader.Shared:\nhave %+v\nwant non-nil empty code", s.Shared)
	}
}
