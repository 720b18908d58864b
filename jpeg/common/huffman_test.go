package common

import (
	"errors"
	"testing"
)

// codeLengths expands a table's cumulative offsets into a per-symbol
// code length list
func codeLengths(h *HuffmanTable) []int {
	lengths := make([]int, len(h.Symbols))
	for l := 0; l < 16; l++ {
		for k := h.Offsets[l]; k < h.Offsets[l+1]; k++ {
			lengths[k] = l + 1
		}
	}
	return lengths
}

func TestCanonicalCodeAssignment(t *testing.T) {
	// one symbol each at lengths 1, 2, 3
	h := BuildHuffmanTable([16]int{1, 1, 1}, []byte{0x04, 0x05, 0x06})

	want := []int32{0, 2, 6} // 0, 10, 110
	for i, w := range want {
		if h.Codes()[i] != w {
			t.Errorf("code[%d] = %b, want %b", i, h.Codes()[i], w)
		}
	}
}

func TestCanonicalOrderingRule(t *testing.T) {
	h := BuildHuffmanTable(StandardACLuminanceBits, StandardACLuminanceValues)
	codes := h.Codes()
	lengths := codeLengths(h)

	for k := 1; k < len(codes); k++ {
		if lengths[k] == lengths[k-1] {
			if codes[k] != codes[k-1]+1 {
				t.Errorf("symbol %d: code %b does not increment %b within length %d",
					k, codes[k], codes[k-1], lengths[k])
			}
		} else {
			// moving to a longer length shifts the incremented code
			// left once per extra bit
			want := (codes[k-1] + 1) << uint(lengths[k]-lengths[k-1])
			if codes[k] != want {
				t.Errorf("symbol %d: code %b at length %d, want %b",
					k, codes[k], lengths[k], want)
			}
		}
	}
}

func TestCanonicalCodesArePrefixFree(t *testing.T) {
	h := BuildHuffmanTable(StandardACChrominanceBits, StandardACChrominanceValues)
	codes := h.Codes()
	lengths := codeLengths(h)

	for i := range codes {
		for j := range codes {
			if i == j || lengths[i] >= lengths[j] {
				continue
			}
			if codes[j]>>uint(lengths[j]-lengths[i]) == codes[i] {
				t.Fatalf("code %b (len %d) is a prefix of %b (len %d)",
					codes[i], lengths[i], codes[j], lengths[j])
			}
		}
	}
}

func TestDecodeSymbol(t *testing.T) {
	h := BuildHuffmanTable([16]int{1, 1, 1}, []byte{0x04, 0x05, 0x06})

	// bits: 0, 10, 110, padded with zeros
	b := NewBitReader([]byte{0x58})
	for _, want := range []byte{0x04, 0x05, 0x06} {
		sym, err := h.DecodeSymbol(b)
		if err != nil {
			t.Fatalf("DecodeSymbol: %v", err)
		}
		if sym != want {
			t.Errorf("DecodeSymbol = %#x, want %#x", sym, want)
		}
	}
}

func TestDecodeSymbolNoMatch(t *testing.T) {
	h := BuildHuffmanTable([16]int{1, 1, 1}, []byte{0x04, 0x05, 0x06})

	// all ones never resolves: the deepest code is 110
	b := NewBitReader([]byte{0xFF, 0xFF})
	if _, err := h.DecodeSymbol(b); !errors.Is(err, ErrEntropy) {
		t.Errorf("error = %v, want ErrEntropy", err)
	}
}

func TestDecodeSymbolStarved(t *testing.T) {
	h := BuildHuffmanTable([16]int{1, 1, 1}, []byte{0x04, 0x05, 0x06})

	b := NewBitReader(nil)
	if _, err := h.DecodeSymbol(b); !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want ErrTruncated", err)
	}
}

func TestBuildHuffmanTableOffsets(t *testing.T) {
	h := BuildHuffmanTable(StandardDCLuminanceBits, StandardDCLuminanceValues)
	if h.Offsets[0] != 0 {
		t.Errorf("Offsets[0] = %d, want 0", h.Offsets[0])
	}
	if h.Offsets[16] != len(StandardDCLuminanceValues) {
		t.Errorf("Offsets[16] = %d, want %d", h.Offsets[16], len(StandardDCLuminanceValues))
	}
	if !h.Set {
		t.Error("table not marked as set")
	}
}
