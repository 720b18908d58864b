package common

import (
	"errors"
	"testing"
)

func TestBitReaderReadBit(t *testing.T) {
	b := NewBitReader([]byte{0xB4}) // 1011 0100
	want := []int32{1, 0, 1, 1, 0, 1, 0, 0}
	for i, w := range want {
		bit, err := b.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: unexpected error: %v", i, err)
		}
		if bit != w {
			t.Errorf("bit %d = %d, want %d", i, bit, w)
		}
	}

	if _, err := b.ReadBit(); !errors.Is(err, ErrTruncated) {
		t.Errorf("read past end: error = %v, want ErrTruncated", err)
	}
}

func TestBitReaderReadBits(t *testing.T) {
	b := NewBitReader([]byte{0xB4, 0x1F})
	v, err := b.ReadBits(4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xB {
		t.Errorf("ReadBits(4) = %#x, want 0xB", v)
	}

	// crossing the byte boundary
	v, err = b.ReadBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x41 {
		t.Errorf("ReadBits(8) = %#x, want 0x41", v)
	}

	if _, err := b.ReadBits(8); !errors.Is(err, ErrTruncated) {
		t.Errorf("starved ReadBits: error = %v, want ErrTruncated", err)
	}
}

func TestBitReaderReadBitsZero(t *testing.T) {
	b := NewBitReader(nil)
	v, err := b.ReadBits(0)
	if err != nil || v != 0 {
		t.Errorf("ReadBits(0) = %d, %v, want 0, nil", v, err)
	}
}

func TestBitReaderAlign(t *testing.T) {
	b := NewBitReader([]byte{0xFF, 0x80})
	if _, err := b.ReadBits(3); err != nil {
		t.Fatal(err)
	}
	b.Align()
	bit, err := b.ReadBit()
	if err != nil {
		t.Fatal(err)
	}
	if bit != 1 {
		t.Errorf("bit after Align = %d, want 1 (top bit of second byte)", bit)
	}
}

func TestBitReaderAlignAtBoundaryIsNoop(t *testing.T) {
	b := NewBitReader([]byte{0xFF, 0x00})
	if _, err := b.ReadBits(8); err != nil {
		t.Fatal(err)
	}
	b.Align()
	bit, err := b.ReadBit()
	if err != nil {
		t.Fatal(err)
	}
	if bit != 0 {
		t.Errorf("bit after no-op Align = %d, want 0", bit)
	}
}

func TestBitReaderAlignAtEnd(t *testing.T) {
	b := NewBitReader([]byte{0xFF})
	if _, err := b.ReadBits(5); err != nil {
		t.Fatal(err)
	}
	b.Align()
	if _, err := b.ReadBit(); !errors.Is(err, ErrTruncated) {
		t.Errorf("read after Align at end: error = %v, want ErrTruncated", err)
	}
}
