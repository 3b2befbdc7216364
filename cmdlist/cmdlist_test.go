// Copyright 2025 The pica200 Authors. All rights reserved.

package cmdlist

import "testing"

func TestHeaderPacking(t *testing.T) {
	h := header(0x0080, 0x3, 2, true)
	if id := uint16(h & 0xFFFF); id != 0x0080 {
		t.Fatalf("header id:\nhave %#x\nwant %#x", id, 0x0080)
	}
	if mask := uint8((h >> 16) & 0xF); mask != 0x3 {
		t.Fatalf("header mask:\nhave %#x\nwant %#x", mask, 0x3)
	}
	if np := (h >> 20) & 0xFF; np != 1 {
		t.Fatalf("header num_params-1:\nhave %d\nwant 1", np)
	}
	if h&(1<<31) == 0 {
		t.Fatalf("header consecutive bit:\nhave clear\nwant set")
	}
}

func TestWriteLayoutOddParams(t *testing.T) {
	e := New(64)
	if err := e.Write(0x10, 0xDEADBEEF); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// One param + header = 2 words, already even, so no pad is added.
	if e.Len() != 2 {
		t.Fatalf("Len after single Write:\nhave %d\nwant 2", e.Len())
	}
}

func TestWritesPadsOnEvenParamCount(t *testing.T) {
	e := New(64)
	if err := e.Writes(0x20, []uint32{1, 2}); err != nil {
		t.Fatalf("Writes: %v", err)
	}
	// n=2 params + 1 header = 3 words (odd) -> 1 word pad -> 4 total.
	if e.Len() != 4 {
		t.Fatalf("Len after 2-param Writes:\nhave %d\nwant 4", e.Len())
	}
}

func TestWritesChunking(t *testing.T) {
	e := New(4096)
	params := make([]uint32, 300)
	for i := range params {
		params[i] = uint32(i)
	}
	if err := e.Writes(0x30, params); err != nil {
		t.Fatalf("Writes: %v", err)
	}
	// 300 params -> chunks of 255 and 45.
	// Chunk 1: 255 params + header = 256 (even, no pad).
	// Chunk 2: 45 params + header = 46 (even, no pad).
	want := 256 + 46
	if e.Len() != want {
		t.Fatalf("Len after chunked Writes:\nhave %d\nwant %d", e.Len(), want)
	}
}

func TestIncrementalWritesAutoIncrements(t *testing.T) {
	e := New(4096)
	params := make([]uint32, 300)
	if err := e.IncrementalWrites(0x00, params); err != nil {
		t.Fatalf("IncrementalWrites: %v", err)
	}
	if e.Len() != 256+46 {
		t.Fatalf("Len:\nhave %d\nwant %d", e.Len(), 256+46)
	}
}

func TestFullReturnsErrFull(t *testing.T) {
	e := New(4) // 4 words capacity: room for exactly two 2-word writes.
	if err := e.Write(0, 1); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := e.Write(1, 2); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if err := e.Write(2, 3); err != ErrFull {
		t.Fatalf("third Write:\nhave %v\nwant %v", err, ErrFull)
	}
}

func TestFinalizePadsAndSwaps(t *testing.T) {
	e := New(64)
	if err := e.Write(0x10, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf, err := e.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(buf)%4 != 0 {
		t.Fatalf("Finalize length not 16-byte aligned:\nhave %d words", len(buf))
	}
	if e.Len() != 0 {
		t.Fatalf("offset after Finalize:\nhave %d\nwant 0", e.Len())
	}
	if e.active != 1 {
		t.Fatalf("active buffer after Finalize:\nhave %d\nwant 1", e.active)
	}
}

func TestFinalizeSwapIsolatesBuffers(t *testing.T) {
	e := New(64)
	e.Write(0x10, 0xAAAA)
	buf1, _ := e.Finalize()
	e.Write(0x20, 0xBBBB)
	buf2, _ := e.Finalize()
	if buf1[0] != 0xAAAA || buf2[0] != 0xBBBB {
		t.Fatalf("buffer contents crossed over between Finalize calls")
	}
	// After the second Finalize we're back to the first physical
	// buffer; writing into it must not disturb buf2's already-handed
	// off contents.
	e.Write(0x30, 0xCCCC)
	if buf2[0] != 0xBBBB {
		t.Fatalf("writing to recycled buffer clobbered previously finalized buf2")
	}
}
