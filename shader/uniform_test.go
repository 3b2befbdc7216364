// Copyright 2025 The pica200 Authors. All rights reserved.

package shader

import "testing"

func TestUniform4fSetAndGetRoundTrip(t *testing.T) {
	p := CreateProgram()
	defer DeleteProgram(p)

	loc := int32(floatRegMin) + 3
	if err := SetUniform4f(p, loc, 1, 2, 3, 4); err != nil {
		t.Fatalf("SetUniform4f: %v", err)
	}
	got, ok := GetUniformfv(p, loc)
	if !ok {
		t.Fatalf("GetUniformfv: not ok")
	}
	want := [4]float32{1, 2, 3, 4}
	if got != want {
		t.Fatalf("GetUniformfv round trip:\nhave %v\nwant %v", got, want)
	}
}

func TestUniform4iSetAndGetRoundTrip(t *testing.T) {
	p := CreateProgram()
	defer DeleteProgram(p)

	loc := int32(intRegMin)
	if err := SetUniform4i(p, loc, 10, -5, 0, 7); err != nil {
		t.Fatalf("SetUniform4i: %v", err)
	}
	got, ok := GetUniformiv(p, loc)
	if !ok {
		t.Fatalf("GetUniformiv: not ok")
	}
	want := [4]int32{10, -5, 0, 7}
	if got != want {
		t.Fatalf("GetUniformiv round trip:\nhave %v\nwant %v", got, want)
	}
}

func TestGetUniformfvWrongKindRejected(t *testing.T) {
	p := CreateProgram()
	defer DeleteProgram(p)

	if _, ok := GetUniformfv(p, int32(intRegMin)); ok {
		t.Fatalf("GetUniformfv(int location): have ok, want !ok")
	}
}

func TestGetUniformfvAttribRangeLocation(t *testing.T) {
	if _, ok := GetUniformfv(CreateProgram(), 0); ok {
		t.Fatalf("GetUniformfv(location 0, no float uniform there): have ok, want !ok")
	}
}

func TestSetUniformMatrix4fvWritesFourColumns(t *testing.T) {
	p := CreateProgram()
	defer DeleteProgram(p)

	loc := int32(floatRegMin)
	// Column-major identity matrix.
	values := []float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	if err := SetUniformMatrix(p, loc, 4, values); err != nil {
		t.Fatalf("SetUniformMatrix: %v", err)
	}
	prog, ok := programs.Get(p)
	if !ok {
		t.Fatalf("programs.Get: not found")
	}
	for col := 0; col < 4; col++ {
		var want [4]float32
		want[col] = 1
		if prog.FloatUniforms[col] != want {
			t.Fatalf("FloatUniforms[%d]:\nhave %v\nwant %v", col, prog.FloatUniforms[col], want)
		}
	}
}

func TestSetUniformMatrix2fvWritesTwoColumns(t *testing.T) {
	p := CreateProgram()
	defer DeleteProgram(p)

	loc := int32(floatRegMin) + 5
	values := []float32{1, 2, 3, 4} // One 2x2 matrix, column-major.
	if err := SetUniformMatrix(p, loc, 2, values); err != nil {
		t.Fatalf("SetUniformMatrix: %v", err)
	}
	prog, _ := programs.Get(p)
	if got, want := prog.FloatUniforms[5], ([4]float32{1, 2, 0, 0}); got != want {
		t.Fatalf("FloatUniforms[5] (column 0):\nhave %v\nwant %v", got, want)
	}
	if got, want := prog.FloatUniforms[6], ([4]float32{3, 4, 0, 0}); got != want {
		t.Fatalf("FloatUniforms[6] (column 1):\nhave %v\nwant %v", got, want)
	}
}
