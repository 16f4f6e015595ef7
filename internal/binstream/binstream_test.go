package binstream

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestReadUint32NoSwap(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(80))
	r := New(bytes.NewReader(buf.Bytes()), false)
	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 80 {
		t.Fatalf("expected 80, got %d", v)
	}
}

func TestReadUint32Swap(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(80))
	r := New(bytes.NewReader(buf.Bytes()), true)
	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 80 {
		t.Fatalf("expected 80, got %d", v)
	}
}

func TestReadFloat64ArraySinglePrecision(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, float32(70.0))
	binary.Write(&buf, binary.LittleEndian, float32(7.5))
	r := New(bytes.NewReader(buf.Bytes()), false)
	vals, err := r.ReadFloat64Array(2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0] != 70.0 || vals[1] != 7.5 {
		t.Fatalf("unexpected values: %v", vals)
	}
}
