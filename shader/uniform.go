// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import (
	"errors"

	"github.com/ctrgfx/pica200/internal/objheap"
)

// InvalidLocation is returned by GetUniformLocation for an unknown
// name, mirroring glGetUniformLocation's -1.
const InvalidLocation int32 = -1

var errBadLocation = errors.New("shader: invalid uniform location")

// locationOf turns a classified active uniform back into an absolute
// register id: since the bool/int/float register ranges are disjoint,
// the register id alone is enough to recover both the kind and the
// program-local storage index on the way back in classifyLocation.
func locationOf(u UniformInfo) int32 {
	switch u.Kind {
	case UniformBool:
		return int32(boolRegMin) + int32(u.StartReg)
	case UniformInt:
		return int32(intRegMin) + int32(u.StartReg)
	case UniformFloat:
		return int32(floatRegMin) + int32(u.StartReg)
	default:
		return InvalidLocation
	}
}

func classifyLocation(loc int32) (kind UniformKind, index int, ok bool) {
	switch {
	case loc >= boolRegMin && loc <= boolRegMax:
		return UniformBool, int(loc - boolRegMin), true
	case loc >= intRegMin && loc <= intRegMax:
		return UniformInt, int(loc - intRegMin), true
	case loc >= floatRegMin && loc <= floatRegMax:
		return UniformFloat, int(loc - floatRegMin), true
	default:
		return 0, 0, false
	}
}

// GetUniformLocation implements glGetUniformLocation: the program
// must be linked, and name must match an active uniform in either
// linked stage.
func GetUniformLocation(p objheap.Handle, name string) int32 {
	prog, ok := programs.Get(p)
	if !ok {
		return InvalidLocation
	}
	for _, h := range prog.linked {
		if !h.Valid() {
			continue
		}
		s, ok := shaders.Get(h)
		if !ok {
			continue
		}
		for _, u := range s.Uniforms {
			if u.Name == name {
				return locationOf(u)
			}
		}
	}
	return InvalidLocation
}

// GetAttribLocation implements glGetAttribLocation, searching the
// linked vertex shader's attribute table.
func GetAttribLocation(p objheap.Handle, name string) int32 {
	prog, ok := programs.Get(p)
	if !ok || !prog.linked[0].Valid() {
		return InvalidLocation
	}
	s, ok := shaders.Get(prog.linked[0])
	if !ok {
		return InvalidLocation
	}
	for _, a := range s.Attribs {
		if a.Name == name {
			return int32(a.Reg)
		}
	}
	return InvalidLocation
}

// SetUniform4f implements glUniform4f and the low-arity glUniform{1,2,3}f
// forms (callers pad unset trailing components with 0, matching GL's
// own convention for the implicit .z/.w of a position-like uniform).
func SetUniform4f(p objheap.Handle, location int32, x, y, z, w float32) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformFloat || idx >= numFloatRegs {
		return errBadLocation
	}
	prog.FloatUniforms[idx] = [4]float32{x, y, z, w}
	prog.UniformsDirty = true
	return nil
}

// SetUniform4fv sets count consecutive float vec4 uniforms starting at
// location, implementing glUniform4fv (and, by only consuming the
// first 1-3 components per v, the lower-arity *fv forms).
func SetUniform4fv(p objheap.Handle, location int32, values [][4]float32) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformFloat {
		return errBadLocation
	}
	for i, v := range values {
		if idx+i >= numFloatRegs {
			break
		}
		prog.FloatUniforms[idx+i] = v
	}
	prog.UniformsDirty = true
	return nil
}

// SetUniform4i implements glUniform4i and the lower-arity int forms.
func SetUniform4i(p objheap.Handle, location int32, x, y, z, w int32) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformInt || idx >= numIntRegs {
		return errBadLocation
	}
	prog.IntUniforms[idx] = [4]int32{x, y, z, w}
	prog.UniformsDirty = true
	return nil
}

// SetUniformBool implements the vendor glUniform1iPICA-style bool
// uniform setter (GL ES has no native bool uniform type; the PICA200
// exposes one as a vendor extension register range).
func SetUniformBool(p objheap.Handle, location int32, value bool) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformBool || idx >= numBoolRegs {
		return errBadLocation
	}
	bit := uint16(1) << uint(idx)
	if value {
		prog.BoolUniforms |= bit
	} else {
		prog.BoolUniforms &^= bit
	}
	prog.UniformsDirty = true
	return nil
}

// SetUniformMatrix implements the UniformMatrix{2,3,4}fv family: n is
// 2, 3 or 4, values holds count column-major n*n matrices packed
// tightly, and each matrix occupies n consecutive float vec4
// registers starting at location (one column per register, unused
// trailing components set to 0). Callers must
// reject transpose=true before calling this (spec: glUniformMatrix
// only supports column-major input); this function assumes that
// check already passed.
func SetUniformMatrix(p objheap.Handle, location int32, n int, values []float32) error {
	prog, ok := programs.Get(p)
	if !ok {
		return errors.New("shader: no such program")
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformFloat {
		return errBadLocation
	}
	if len(values)%(n*n) != 0 {
		return errors.New("shader: UniformMatrix value count not a multiple of n*n")
	}
	count := len(values) / (n * n)
	for i := 0; i < count; i++ {
		for col := 0; col < n; col++ {
			reg := idx + i*n + col
			if reg >= numFloatRegs {
				return nil
			}
			var v [4]float32
			for row := 0; row < n; row++ {
				v[row] = values[i*n*n+col*n+row]
			}
			prog.FloatUniforms[reg] = v
		}
	}
	prog.UniformsDirty = true
	return nil
}

// GetUniformfv implements glGetUniformfv: it reads back the float32
// value last stored at location by SetUniform4f, SetUniform4fv or
// SetUniformMatrix, exactly as it was set; the stored value is not
// passed through the f24 register packing. Bool and int locations
// report ok=false, matching GL's
// type-mismatch behavior for glGetUniformfv against a non-float
// uniform.
func GetUniformfv(p objheap.Handle, location int32) (value [4]float32, ok bool) {
	prog, ok := programs.Get(p)
	if !ok {
		return [4]float32{}, false
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformFloat || idx >= numFloatRegs {
		return [4]float32{}, false
	}
	return prog.FloatUniforms[idx], true
}

// GetUniformiv implements glGetUniformiv, GetUniformfv's int sibling.
func GetUniformiv(p objheap.Handle, location int32) (value [4]int32, ok bool) {
	prog, ok := programs.Get(p)
	if !ok {
		return [4]int32{}, false
	}
	kind, idx, ok := classifyLocation(location)
	if !ok || kind != UniformInt || idx >= numIntRegs {
		return [4]int32{}, false
	}
	return prog.IntUniforms[idx], true
}

// ActiveUniforms returns the linked vertex and geometry shaders' (the
// latter may be nil) active-uniform tables, for the translator's
// per-flush register walk.
func (p *Program) ActiveUniforms() (vertex, geometry *Shader) {
	if p.linked[0].Valid() {
		vertex, _ = shaders.Get(p.linked[0])
	}
	if p.linked[1].Valid() {
		geometry, _ = shaders.Get(p.linked[1])
	}
	return
}
