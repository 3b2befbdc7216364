// Copyright 2025 The pica200 Authors. All rights reserved.

package fixed

import (
	"math"
	"testing"
)

func TestF24RoundTrip(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 2.5, -2.5, 100, -100, 0.125} {
		got := FromF32(f).ToF32()
		if d := got - f; d > 1e-2 || d < -1e-2 {
			t.Fatalf("F24 round-trip %v:\nhave %v\nwant %v", f, got, f)
		}
	}
}

func TestF24Inf(t *testing.T) {
	pos := FromF32(float32(math.Inf(1))).ToF32()
	if !math.IsInf(float64(pos), 1) {
		t.Fatalf("FromF32(+Inf).ToF32:\nhave %v\nwant +Inf", pos)
	}
	neg := FromF32(float32(math.Inf(-1))).ToF32()
	if !math.IsInf(float64(neg), -1) {
		t.Fatalf("FromF32(-Inf).ToF32:\nhave %v\nwant -Inf", neg)
	}
}

func TestF24Zero(t *testing.T) {
	if got := FromF32(0).ToF32(); got != 0 {
		t.Fatalf("FromF32(0).ToF32:\nhave %v\nwant 0", got)
	}
	neg := FromF32(float32(math.Copysign(0, -1)))
	if neg.ToF32() != 0 {
		t.Fatalf("FromF32(-0).ToF32 magnitude:\nhave %v\nwant 0", neg.ToF32())
	}
	if neg>>23 != 1 {
		t.Fatalf("FromF32(-0) sign bit:\nhave %d\nwant 1", neg>>23)
	}
}

func TestPackIntVector(t *testing.T) {
	in := [4]uint32{0x11, 0x22, 0x33, 0x44}
	packed := PackIntVector(in)
	if out := UnpackIntVector(packed); out != in {
		t.Fatalf("PackIntVector round-trip:\nhave %v\nwant %v", out, in)
	}
	if packed != 0x44332211 {
		t.Fatalf("PackIntVector layout:\nhave %#x\nwant %#x", packed, 0x44332211)
	}
}

func TestPackFloatVector(t *testing.T) {
	in := [4]float32{1, 2, 3, 4}
	packed := PackFloatVector(in)
	out := UnpackFloatVector(packed)
	for i := range in {
		if d := out[i] - in[i]; d > 1e-2 || d < -1e-2 {
			t.Fatalf("PackFloatVector round-trip[%d]:\nhave %v\nwant %v", i, out[i], in[i])
		}
	}
}

func TestPackFloatVectorBitExact(t *testing.T) {
	in := [4]float32{1, 2, 3, 4}
	packed := PackFloatVector(in)
	again := PackFloatVector(UnpackFloatVector(packed))
	if packed != again {
		t.Fatalf("PackFloatVector(Unpack(v)):\nhave %v\nwant %v", again, packed)
	}
}

func TestFixed13Clamp(t *testing.T) {
	if got := Fixed13(100); got&0x1000 != 0 {
		t.Fatalf("Fixed13(100) sign bit:\nhave set\nwant clear")
	}
	if got := Fixed13(-100); got&0x1000 == 0 {
		t.Fatalf("Fixed13(-100) sign bit:\nhave clear\nwant set")
	}
}
