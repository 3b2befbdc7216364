// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

// Register ids the translator writes into the command-list encoder.
// Names follow the PICA200 register map used by Source/GPU.c; these
// are internal GPU register offsets, not public GL constants, so
// unlike Enum they need not match any external numbering scheme.
const (
	regFramebufferInvalidate uint16 = iota
	regFramebufferFlush
	regColorbufferLoc
	regDepthbufferLoc
	regRenderbufDim
	regColorbufferFormat
	regDepthbufferFormat
	regFramebufferBlock32

	regViewportWidth
	regViewportXY

	regScissorMode
	regScissorPos
	regScissorDim

	regVshCodetransferConfig
	regVshCodetransferData
	regVshCodetransferEnd
	regVshOpdescsConfig
	regVshOpdescsData
	regGshCodetransferConfig
	regGshCodetransferData
	regGshCodetransferEnd
	regGshOpdescsConfig
	regGshOpdescsData

	regVshEntrypoint
	regVshOutmapMask
	regVshOutmapTotal1
	regVshOutmapTotal2
	regGshEntrypoint
	regGshOutmapMask
	regShOutmapTotalO
	regShOutmapO0
	regShOutattrMode
	regShOutattrClock

	regVshBooluniform
	regVshIntuniformI0
	regVshFloatuniformConfig
	regVshFloatuniformData
	regGshBooluniform
	regGshIntuniformI0
	regGshFloatuniformConfig
	regGshFloatuniformData

	regAttribbuffersFormatLow
	regVshInputbufferConfig
	regVshNumAttr
	regVshAttributesPermutationLow
	regAttribbuffersLoc
	regAttribbuffer0Offset
	regFixedattribIndex
	regFixedattribData0

	regTexenv0Source
	regTexenv1Source
	regTexenv2Source
	regTexenv3Source
	regTexenv4Source
	regTexenv5Source
	regTexenv0Combiner
	regTexenv0Scale

	regTexunitConfig
	regTexunit0Border
	regTexunit0Dim
	regTexunit0Param
	regTexunit0Addr1
	regTexunit0Type

	regColorOperation
	regDepthColorMask
	regDepthmapEnable
	regDepthmapScale
	regDepthmapOffset
	regEarlydepthTest1
	regEarlydepthTest2
	regEarlydepthFunc
	regEarlydepthClear

	regStencilTest
	regStencilOp

	regFacecullingConfig

	regFragopAlphaTest

	regBlendFunc
	regBlendColor
	regLogicOp

	regPrimitiveConfig
	regRestartPrimitive
	regIndexbufferConfig
	regNumvertices
	regVertexOffset
	regGeostageConfig
	regGeostageConfig2
	regStartDrawFunc0
	regDrawarrays
	regVtxFunc
)
