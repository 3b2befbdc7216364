// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

// Enum mirrors the GLenum values the core cares about. Values follow
// the real GL/GL-ES numeric assignments so that a veneer layer can
// pass the genuine API constants through unchanged.
type Enum uint32

// Buffer targets.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
)

// Buffer usage hints.
const (
	StreamDraw  Enum = 0x88E0
	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
)

// Renderbuffer / texture internal formats.
const (
	RGBA8             Enum = 0x8058
	RGB8              Enum = 0x8051
	RGB5A1            Enum = 0x8057
	RGB565            Enum = 0x8D62
	RGBA4             Enum = 0x8056
	DepthComponent16  Enum = 0x81A5
	DepthComponent24  Enum = 0x81A6
	Depth24Stencil8   Enum = 0x88F0
)

// Attribute component types.
const (
	Byte   Enum = 0x1400
	UByte  Enum = 0x1401
	Short  Enum = 0x1402
	Float  Enum = 0x1406
)

// Index types.
const (
	UnsignedByte  Enum = 0x1401
	UnsignedShort Enum = 0x1403
)

// Draw modes.
const (
	Triangles      Enum = 0x0004
	TriangleStrip  Enum = 0x0005
	TriangleFan    Enum = 0x0006
	GeometryPrim   Enum = 0x100A // Vendor extension: geometry-shader primitive.
)

// Texture targets.
const (
	Texture2D      Enum = 0x0DE1
	TextureCubeMap Enum = 0x8513
)

// Texture parameters.
const (
	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	TextureLodBias   Enum = 0x8501
	TextureMinLod    Enum = 0x813A
	TextureMaxLod    Enum = 0x813B
)

const (
	Nearest              Enum = 0x2600
	Linear               Enum = 0x2601
	NearestMipmapNearest Enum = 0x2700
	LinearMipmapNearest  Enum = 0x2701
	NearestMipmapLinear  Enum = 0x2702
	LinearMipmapLinear   Enum = 0x2703
	ClampToEdge          Enum = 0x812F
	Repeat               Enum = 0x2901
	MirroredRepeat       Enum = 0x8370
	ClampToBorder        Enum = 0x812D
)

// Capabilities (glEnable/glDisable).
const (
	CullFace     Enum = 0x0B44
	DepthTest    Enum = 0x0B71
	Blend        Enum = 0x0BE2
	StencilTest  Enum = 0x0B90
	ScissorTest  Enum = 0x0C11
	AlphaTest    Enum = 0x0BC0
	PolygonOffsetFill Enum = 0x8037
	EarlyDepthTestPICA Enum = 0x1100
)

// Compare functions (depth/stencil/alpha).
const (
	Never    Enum = 0x0200
	Less     Enum = 0x0201
	Equal    Enum = 0x0202
	Lequal   Enum = 0x0203
	Greater  Enum = 0x0204
	Notequal Enum = 0x0205
	Gequal   Enum = 0x0206
	Always   Enum = 0x0207
)

// Stencil ops.
const (
	Keep     Enum = 0x1E00
	Zero     Enum = 0
	Replace  Enum = 0x1E01
	Incr     Enum = 0x1E02
	Decr     Enum = 0x1E03
	Invert   Enum = 0x150A
	IncrWrap Enum = 0x8507
	DecrWrap Enum = 0x8508
)

// Cull face / front face.
const (
	Front Enum = 0x0404
	Back  Enum = 0x0405
	FrontAndBack Enum = 0x0408
	CW  Enum = 0x0900
	CCW Enum = 0x0901
)

// Blend equations.
const (
	FuncAdd             Enum = 0x8006
	FuncSubtract        Enum = 0x800A
	FuncReverseSubtract Enum = 0x800B
	Min                 Enum = 0x8007
	Max                 Enum = 0x8008
)

// Blend factors.
const (
	BlendZero              Enum = 0
	BlendOne               Enum = 1
	SrcColor               Enum = 0x0300
	OneMinusSrcColor       Enum = 0x0301
	SrcAlpha               Enum = 0x0302
	OneMinusSrcAlpha       Enum = 0x0303
	DstAlpha               Enum = 0x0304
	OneMinusDstAlpha       Enum = 0x0305
	DstColor               Enum = 0x0306
	OneMinusDstColor       Enum = 0x0307
	ConstantColor          Enum = 0x8001
	OneMinusConstantColor  Enum = 0x8002
	ConstantAlpha          Enum = 0x8003
	OneMinusConstantAlpha  Enum = 0x8004
)

// Framebuffer attachment points and targets. (Named *Target to avoid
// colliding with the Framebuffer/Renderbuffer resource-object types.)
const (
	FramebufferTarget  Enum = 0x8D40
	RenderbufferTarget Enum = 0x8D41
	ColorAttachment0   Enum = 0x8CE0
	DepthAttachment    Enum = 0x8D00
)

// CheckFramebufferStatus results.
const (
	FramebufferComplete                     Enum = 0x8CD5
	FramebufferIncompleteAttachment          Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment   Enum = 0x8CD7
	FramebufferIncompleteDimensions          Enum = 0x8CD9
	FramebufferUnsupported                   Enum = 0x8CDD
)

// glClear mask bits.
const (
	ColorBufferBit        uint32 = 0x00004000
	DepthBufferBit        uint32 = 0x00000100
	StencilBufferBit      uint32 = 0x00000400
	EarlyDepthBufferBitPICA uint32 = 0x00010000
)

// Error codes.
const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation             Enum = 0x0502
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
)

// Combiner functions (glCombinerFuncPICA).
const (
	CombReplace     Enum = 0
	CombModulate    Enum = 1
	CombAdd         Enum = 2
	CombAddSigned   Enum = 3
	CombInterpolate Enum = 4
	CombSubtract    Enum = 5
	CombDot3RGB     Enum = 6
	CombDot3RGBA    Enum = 7
	CombMultAdd     Enum = 8
	CombAddMult     Enum = 9
)

// Combiner sources (subset relevant to the core's bookkeeping; the
// full source enumeration is a veneer-layer concern).
const (
	CombSrcPrimaryColor   Enum = 0
	CombSrcTexture0       Enum = 1
	CombSrcTexture1       Enum = 2
	CombSrcTexture2       Enum = 3
	CombSrcConstant       Enum = 4
	CombSrcPrevious       Enum = 5
)

// Combiner operands.
const (
	CombOpSrcColor Enum = 0
	CombOpSrcAlpha Enum = 1
)
