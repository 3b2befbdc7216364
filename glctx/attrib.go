// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

const (
	attribFlagEnabled = 1 << iota
	attribFlagFixed
)

// attribute is one of the context's 16 attribute registers (spec
// §3 Attribute-register / §4.3 Attribute pointer semantics).
type attribute struct {
	typ          Enum
	count        int32
	stride       int32
	boundBuffer  bufferRef
	physAddr     uint32
	bufferOffset uintptr
	bufferSize   int32 // Effective per-vertex record size.
	components   [4]float32
	prePad       int32
	postPad      int32
	flags        uint16
}

// bufferRef is a reference to an array buffer. VertexAttribPointer
// does not fill the boundBuffer field and no code reads it: the bound
// buffer is resolved to a physical address when the pointer is set.
type bufferRef = handleOrZero

type handleOrZero struct {
	valid bool
	index uint32
	gen   uint32
	kind  uint8
}

// newAttribute returns the GL default attribute record: type=FLOAT,
// count=4, fixed flag set, components (0,0,0,1).
func newAttribute() attribute {
	return attribute{
		typ:        Float,
		count:      4,
		components: [4]float32{0, 0, 0, 1},
		flags:      attribFlagFixed,
	}
}

func (a *attribute) enabled() bool { return a.flags&attribFlagEnabled != 0 }
func (a *attribute) fixed() bool   { return a.flags&attribFlagFixed != 0 }

// sizeOf returns the byte size of one component of type t. Only the
// four types VertexAttribPointer accepts are valid.
func sizeOf(t Enum) int32 {
	switch t {
	case Byte, UByte:
		return 1
	case Short:
		return 2
	case Float:
		return 4
	default:
		return 0
	}
}

func alignOf(t Enum) uint32 {
	switch t {
	case Short:
		return 2
	case Float:
		return 4
	default:
		return 1
	}
}

// EnableVertexAttribArray marks attribute index as enabled. Enabling a
// 13th attribute (the cap is 12, spec §8 Boundaries) is an invalid
// operation and does not change any state.
func (c *Context) EnableVertexAttribArray(index int) error {
	if index < 0 || index >= numAttribRegs {
		return errEnum(InvalidValue)
	}
	a := &c.attribs[index]
	if a.enabled() {
		return nil
	}
	if c.numEnabledAttribs >= maxEnabledAttribs {
		return errEnum(InvalidOperation)
	}
	a.flags |= attribFlagEnabled
	c.numEnabledAttribs++
	c.markDirty(dirtyAttribs)
	return nil
}

// DisableVertexAttribArray clears the enabled flag for index.
func (c *Context) DisableVertexAttribArray(index int) error {
	if index < 0 || index >= numAttribRegs {
		return errEnum(InvalidValue)
	}
	a := &c.attribs[index]
	if !a.enabled() {
		return nil
	}
	a.flags &^= attribFlagEnabled
	c.numEnabledAttribs--
	c.markDirty(dirtyAttribs)
	return nil
}

// VertexAttribPointer implements spec §4.3's attribute-pointer
// semantics. transpose/normalized is always false for this API
// surface (the spec only models the unnormalized case).
func (c *Context) VertexAttribPointer(index int, size int32, typ Enum, stride int32, pointer uintptr) error {
	if index < 0 || index >= numAttribRegs {
		return errEnum(InvalidValue)
	}
	compSize := sizeOf(typ)
	if compSize == 0 || size < 1 || size > 4 {
		return errEnum(InvalidValue)
	}
	componentDataSize := size * compSize

	recordSize := stride
	if recordSize <= 0 {
		recordSize = componentDataSize
	}

	a := &c.attribs[index]
	var phys uint32
	var bufOff uintptr
	if c.arrayBuffer.Valid() {
		buf, ok := c.heaps.buffers.Get(c.arrayBuffer)
		if !ok {
			return errEnum(InvalidOperation)
		}
		phys = c.host.Alloc.PhysOf(buf.address)
		bufOff = pointer
	} else {
		if !c.host.Alloc.IsLinear(pointer) {
			return errEnum(InvalidOperation)
		}
		phys = c.host.Alloc.PhysOf(pointer)
		bufOff = 0
	}

	align := alignOf(typ)
	if (uint64(phys)+uint64(bufOff))%uint64(align) != 0 {
		return errEnum(InvalidOperation)
	}

	a.typ = typ
	a.count = size
	a.stride = stride
	a.physAddr = phys
	a.bufferOffset = bufOff
	a.bufferSize = recordSize
	a.flags &^= attribFlagFixed

	if recordSize > componentDataSize {
		a.prePad = int32(pointer)
		a.postPad = recordSize - a.prePad - componentDataSize
	} else {
		a.prePad = 0
		a.postPad = 0
	}

	c.markDirty(dirtyAttribs)
	return nil
}

// vertexAttribNf implements VertexAttrib{1,2,3,4}f: writes into the
// fixed-value components and sets the fixed flag.
func (c *Context) vertexAttribNf(index int, v [4]float32) error {
	if index < 0 || index >= numAttribRegs {
		return errEnum(InvalidValue)
	}
	a := &c.attribs[index]
	a.components = v
	a.flags |= attribFlagFixed
	c.markDirty(dirtyAttribs)
	return nil
}

func (c *Context) VertexAttrib1f(index int, x float32) error {
	return c.vertexAttribNf(index, [4]float32{x, 0, 0, 1})
}
func (c *Context) VertexAttrib2f(index int, x, y float32) error {
	return c.vertexAttribNf(index, [4]float32{x, y, 0, 1})
}
func (c *Context) VertexAttrib3f(index int, x, y, z float32) error {
	return c.vertexAttribNf(index, [4]float32{x, y, z, 1})
}
func (c *Context) VertexAttrib4f(index int, x, y, z, w float32) error {
	return c.vertexAttribNf(index, [4]float32{x, y, z, w})
}

// VertexAttribInfo mirrors the glGetVertexAttrib query subset this
// core tracks: whether the array is enabled, whether the register
// currently holds a fixed (glVertexAttribNf) value or a pointer into
// buffer-backed data, the pointer's declared type/component count,
// and the fixed-value components (meaningful only when Fixed).
type VertexAttribInfo struct {
	Enabled    bool
	Fixed      bool
	Type       Enum
	Count      int32
	Stride     int32
	Components [4]float32
}

// GetVertexAttrib implements glGetVertexAttrib for index.
func (c *Context) GetVertexAttrib(index int) (VertexAttribInfo, error) {
	if index < 0 || index >= numAttribRegs {
		return VertexAttribInfo{}, errEnum(InvalidValue)
	}
	a := &c.attribs[index]
	return VertexAttribInfo{
		Enabled:    a.enabled(),
		Fixed:      a.fixed(),
		Type:       a.typ,
		Count:      a.count,
		Stride:     a.stride,
		Components: a.components,
	}, nil
}
