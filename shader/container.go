// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import (
	"bytes"
	"encoding/binary"

	"github.com/ctrgfx/pica200/internal/fixed"
	"github.com/ctrgfx/pica200/internal/objheap"
)

var order = binary.LittleEndian

// dvlb is the parsed top-level container: one shared DVLP plus the
// ordered list of DVLE sections it offsets into.
type dvlb struct {
	dvlp  dvlpSection
	dvles []dvleSection
}

type dvlpSection struct {
	code    []uint32
	opdescs []uint32
}

type dvleSection struct {
	geometry     bool
	mergeOutmaps bool
	entrypoint   uint32
	geoMode      uint8

	constUniforms []constUniform
	outRegs       []outReg
	activeUniforms []activeUniform
	symbols       []byte
}

type constUniform struct {
	typ  uint8 // 0=bool, 1=int, 2=float
	id   uint8
	data [16]byte
}

type outReg struct {
	typ    uint8
	reg    uint8
	mask   uint8
}

type activeUniform struct {
	symbolOffset uint32
	startReg     uint8
	endReg       uint8
}

// parseDVLB parses the top-level container: magic "DVLB", a header
// word count N, then N absolute DVLE offsets.
func parseDVLB(data []byte) (*dvlb, error) {
	if len(data) < 8 || string(data[0:4]) != "DVLB" {
		return nil, ErrBadContainer
	}
	n := order.Uint32(data[4:8])
	if len(data) < int(8+4*n) {
		return nil, ErrBadContainer
	}
	offsets := make([]uint32, n)
	for i := range offsets {
		offsets[i] = order.Uint32(data[8+4*i : 12+4*i])
	}

	// The DVLP section immediately follows the DVLE offset table in
	// every binary this loader accepts; its own offsets inside it are
	// relative to its own start.
	dvlpStart := 8 + 4*int(n)
	if dvlpStart+40 > len(data) || string(data[dvlpStart:dvlpStart+4]) != "DVLP" {
		return nil, ErrBadContainer
	}
	dp, err := parseDVLP(data[dvlpStart:])
	if err != nil {
		return nil, err
	}

	out := &dvlb{dvlp: *dp}
	for _, off := range offsets {
		if int(off) >= len(data) {
			return nil, ErrBadContainer
		}
		de, err := parseDVLE(data[off:])
		if err != nil {
			return nil, err
		}
		out.dvles = append(out.dvles, *de)
	}
	return out, nil
}

// parseDVLP parses a shared DVLP section: code blob + op-descriptor
// table, each as (offset, count) pairs relative to the section start.
func parseDVLP(b []byte) (*dvlpSection, error) {
	if len(b) < 40 || string(b[0:4]) != "DVLP" {
		return nil, ErrBadContainer
	}
	r := bytes.NewReader(b)
	var codeOff, codeCount, opOff, opCount uint32
	// Layout (after the 4-byte magic + 4-byte version word): codeOffset,
	// codeCount, opdescOffset, opdescCount, each a uint32, at fixed
	// offsets mirroring the vendor DVLP header.
	if _, err := r.Seek(8, 0); err != nil {
		return nil, ErrBadContainer
	}
	for _, p := range []*uint32{&codeOff, &codeCount, &opOff, &opCount} {
		if err := binary.Read(r, order, p); err != nil {
			return nil, ErrBadContainer
		}
	}
	if codeCount > 512 || opCount > 128 {
		return nil, ErrBadContainer
	}
	code := make([]uint32, codeCount)
	for i := range code {
		o := int(codeOff) + i*4
		if o+4 > len(b) {
			return nil, ErrBadContainer
		}
		code[i] = order.Uint32(b[o : o+4])
	}
	// Each op-descriptor entry is 8 bytes; only the low word is used.
	opdescs := make([]uint32, opCount)
	for i := range opdescs {
		o := int(opOff) + i*8
		if o+4 > len(b) {
			return nil, ErrBadContainer
		}
		opdescs[i] = order.Uint32(b[o : o+4])
	}
	return &dvlpSection{code: code, opdescs: opdescs}, nil
}

// parseDVLE parses one per-shader DVLE section.
func parseDVLE(b []byte) (*dvleSection, error) {
	if len(b) < 64 || string(b[0:4]) != "DVLE" {
		return nil, ErrBadContainer
	}
	flags := b[4]
	merge := b[5]
	entry := order.Uint32(b[8:12])
	geoMode := b[12]

	type offCount struct{ off, count uint32 }
	var ranges [4]offCount
	base := 16
	for i := range ranges {
		ranges[i] = offCount{
			off:   order.Uint32(b[base+i*8 : base+i*8+4]),
			count: order.Uint32(b[base+i*8+4 : base+i*8+8]),
		}
	}

	d := &dvleSection{
		geometry:     flags&1 != 0,
		mergeOutmaps: merge&1 != 0,
		entrypoint:   entry,
		geoMode:      geoMode,
	}

	for i := uint32(0); i < ranges[0].count; i++ {
		o := int(ranges[0].off) + int(i)*20
		if o+20 > len(b) {
			return nil, ErrBadContainer
		}
		var cu constUniform
		cu.typ = b[o]
		cu.id = b[o+1]
		copy(cu.data[:], b[o+4:o+20])
		d.constUniforms = append(d.constUniforms, cu)
	}

	for i := uint32(0); i < ranges[1].count; i++ {
		o := int(ranges[1].off) + int(i)*8
		if o+8 > len(b) {
			return nil, ErrBadContainer
		}
		d.outRegs = append(d.outRegs, outReg{typ: b[o], reg: b[o+1], mask: b[o+2]})
	}

	for i := uint32(0); i < ranges[2].count; i++ {
		o := int(ranges[2].off) + int(i)*8
		if o+8 > len(b) {
			return nil, ErrBadContainer
		}
		d.activeUniforms = append(d.activeUniforms, activeUniform{
			symbolOffset: order.Uint32(b[o : o+4]),
			startReg:     b[o+4],
			endReg:       b[o+5],
		})
	}

	symOff, symCount := ranges[3].off, ranges[3].count
	if int(symOff)+int(symCount) > len(b) {
		return nil, ErrBadContainer
	}
	d.symbols = append([]byte(nil), b[symOff:symOff+symCount]...)

	return d, nil
}

func symbolAt(table []byte, off uint32) string {
	if int(off) >= len(table) {
		return ""
	}
	end := int(off)
	for end < len(table) && table[end] != 0 {
		end++
	}
	return string(table[off:end])
}

// ShaderBinary implements spec §4.4's entry point: matches each DVLE
// in data, in order, to the next handle in handles whose geometry
// flag agrees, and populates that shader's full record.
func ShaderBinary(handles []objheap.Handle, data []byte) error {
	top, err := parseDVLB(data)
	if err != nil {
		return err
	}

	shared := &SharedData{Code: top.dvlp.code, Opdescs: top.dvlp.opdescs}

	next := 0
	for _, de := range top.dvles {
		var match objheap.Handle
		found := false
		for next < len(handles) {
			h := handles[next]
			next++
			s, ok := shaders.Get(h)
			if !ok {
				continue
			}
			if s.Geometry == de.geometry {
				match = h
				found = true
				break
			}
		}
		if !found {
			return ErrHandleMismatch
		}
		s, _ := shaders.Get(match)
		if s.Shared != nil {
			releaseShared(s.Shared)
		}
		populateShader(s, &de)
		s.Shared = shared
		retainShared(shared)
		s.needUpload = true
	}
	return nil
}

// populateShader fills s from a parsed DVLE section: symbol table,
// uniform classification, constant values, and outmap synthesis.
func populateShader(s *Shader, de *dvleSection) {
	s.Geometry = de.geometry
	s.MergeOutmaps = de.mergeOutmaps
	s.Entrypoint = de.entrypoint
	s.GeoMode = de.geoMode
	s.Symbols = append([]byte(nil), de.symbols...)
	s.Attribs = s.Attribs[:0]
	s.Uniforms = s.Uniforms[:0]

	for _, au := range de.activeUniforms {
		name := symbolAt(s.Symbols, au.symbolOffset)
		switch {
		case au.startReg >= attrRegMin && au.startReg <= attrRegMax:
			if au.startReg != au.endReg {
				continue
			}
			s.Attribs = append(s.Attribs, AttribInfo{Name: name, Reg: au.startReg})
		case au.startReg >= boolRegMin && au.startReg <= boolRegMax:
			s.Uniforms = append(s.Uniforms, UniformInfo{
				Name: name, Kind: UniformBool,
				StartReg: au.startReg - boolRegMin, EndReg: au.endReg - boolRegMin,
			})
		case au.startReg >= intRegMin && au.startReg <= intRegMax:
			s.Uniforms = append(s.Uniforms, UniformInfo{
				Name: name, Kind: UniformInt,
				StartReg: au.startReg - intRegMin, EndReg: au.endReg - intRegMin,
			})
		case au.startReg >= floatRegMin && au.startReg <= floatRegMax:
			s.Uniforms = append(s.Uniforms, UniformInfo{
				Name: name, Kind: UniformFloat,
				StartReg: au.startReg - floatRegMin, EndReg: au.endReg - floatRegMin,
			})
		}
	}

	applyConstUniforms(s, de.constUniforms)
	synthesizeOutmap(s, de.outRegs)
}

func applyConstUniforms(s *Shader, consts []constUniform) {
	for _, cu := range consts {
		switch cu.typ {
		case 0: // bool
			bit := uint16(1) << cu.id
			s.ConstBoolMask |= bit
			if cu.data[0] != 0 {
				s.ConstBool |= bit
			}
		case 1: // int
			if int(cu.id) < len(s.ConstInt) {
				s.ConstIntMask |= 1 << cu.id
				s.ConstInt[cu.id] = order.Uint32(cu.data[0:4])
			}
		case 2: // float
			if int(cu.id) < len(s.ConstFloat) {
				var v [4]float32
				for i := range v {
					bits := order.Uint32(cu.data[i*4 : i*4+4])
					v[i] = fixed.F24(bits).ToF32()
				}
				s.ConstFloatMask |= 1 << cu.id
				s.ConstFloat[cu.id] = fixed.PackFloatVector(v)
			}
		}
	}
}

// outTypeSemantic maps an output-register type to its 4-byte semantic
// vector, one byte written per set bit in the write mask.
func outTypeSemantic(typ uint8) [4]byte {
	// Position=0, normal/color-adjacent=1, texcoord-family=2..,
	// mirroring the vendor DVLE output-register type enumeration.
	return [4]byte{typ, typ, typ, typ}
}

func synthesizeOutmap(s *Shader, regs []outReg) {
	s.OutMask = 0
	s.OutTotal = 0
	s.OutClock = 0
	s.UseTexcoords = false
	for i := range s.OutSems {
		s.OutSems[i] = outSemSentinel
	}
	for _, r := range regs {
		if r.reg >= uint8(len(s.OutSems)) {
			continue
		}
		if s.OutMask&(1<<r.reg) == 0 {
			s.OutTotal++
		}
		s.OutMask |= 1 << r.reg
		sem := outTypeSemantic(r.typ)
		cur := s.OutSems[r.reg]
		if cur == outSemSentinel {
			cur = 0
		}
		var merged [4]byte
		order.PutUint32(merged[:], cur)
		for bit := 0; bit < 4; bit++ {
			if r.mask&(1<<bit) != 0 {
				merged[bit] = sem[bit]
			}
		}
		s.OutSems[r.reg] = order.Uint32(merged[:])
		s.OutClock |= 1 << r.reg
		if r.typ >= texcoordTypeMin {
			s.UseTexcoords = true
		}
	}
}

// texcoordTypeMin is the lowest DVLE output-register type value that
// denotes a texture-coordinate (or texcoord.w) output.
const texcoordTypeMin = 4
