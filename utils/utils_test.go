package utils

import (
	"testing"
)

func TestByteReader(t *testing.T) {
	r := NewByteReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	b, ok := r.ReadUint8()
	if !ok || b != 0x01 {
		t.Fatalf("ReadUint8 = %#x, %v", b, ok)
	}

	v, ok := r.ReadUint16()
	if !ok || v != 0x0203 {
		t.Fatalf("ReadUint16 = %#x, %v", v, ok)
	}

	if !r.Skip(1) {
		t.Fatal("Skip(1) failed with a byte remaining")
	}
	if r.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", r.Remaining())
	}
	if r.Pos() != 4 {
		t.Fatalf("Pos = %d, want 4", r.Pos())
	}
}

func TestByteReaderBounds(t *testing.T) {
	r := NewByteReader([]byte{0x01})

	if _, ok := r.ReadUint16(); ok {
		t.Error("ReadUint16 succeeded with one byte left")
	}
	if r.Skip(2) {
		t.Error("Skip(2) succeeded with one byte left")
	}
	if r.Skip(-1) {
		t.Error("Skip(-1) succeeded")
	}

	// Failed reads must not advance.
	if r.Pos() != 0 {
		t.Fatalf("Pos = %d after failed reads, want 0", r.Pos())
	}

	if _, ok := r.ReadUint8(); !ok {
		t.Fatal("ReadUint8 failed with a byte left")
	}
	if _, ok := r.ReadUint8(); ok {
		t.Error("ReadUint8 succeeded past the end")
	}

	empty := NewByteReader(nil)
	if _, ok := empty.ReadUint8(); ok {
		t.Error("ReadUint8 succeeded on nil data")
	}
	if empty.Remaining() != 0 {
		t.Errorf("Remaining = %d on nil data, want 0", empty.Remaining())
	}
}

func TestGetBytes(t *testing.T) {
	data := []byte{0x0A, 0x0B, 0x0C, 0x0D}

	if v := Get2Bytes(data, 0); v != 0x0A0B {
		t.Errorf("Get2Bytes(data, 0) = %#x, want 0x0A0B", v)
	}
	if v := Get2Bytes(data, 2); v != 0x0C0D {
		t.Errorf("Get2Bytes(data, 2) = %#x, want 0x0C0D", v)
	}
	if v := Get3Bytes(data, 1); v != 0x0B0C0D {
		t.Errorf("Get3Bytes(data, 1) = %#x, want 0x0B0C0D", v)
	}
}
