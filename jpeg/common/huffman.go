package common

import "fmt"

// MaxHuffmanSymbols is the largest symbol count a single table may
// declare. AC symbols are run/size byte pairs, which leaves at most
// 162 distinct values once EOB and ZRL are counted.
const MaxHuffmanSymbols = 162

// HuffmanTable represents one Huffman coding table as transmitted in a
// DHT segment. Offsets is cumulative: Offsets[0] is 0 and Offsets[i]
// is the total number of symbols with code length <= i, so the symbols
// of code length l occupy Symbols[Offsets[l-1]:Offsets[l]].
type HuffmanTable struct {
	Offsets [17]int
	Symbols []byte
	Set     bool

	// canonical code for each symbol, filled by BuildCodes
	codes []int32
}

// BuildHuffmanTable builds a table from per-length symbol counts and
// the symbol list in transmission order, and assigns canonical codes
func BuildHuffmanTable(counts [16]int, symbols []byte) *HuffmanTable {
	h := &HuffmanTable{Set: true}
	total := 0
	for i, n := range counts {
		total += n
		h.Offsets[i+1] = total
	}
	h.Symbols = make([]byte, len(symbols))
	copy(h.Symbols, symbols)
	h.BuildCodes()
	return h
}

// BuildCodes assigns canonical Huffman codes to every symbol: code 0
// at the shortest length, incrementing within a length, doubling by a
// left shift when moving to the next length. Symbols are already
// stored in ascending length order, so no sort is needed.
func (h *HuffmanTable) BuildCodes() {
	h.codes = make([]int32, len(h.Symbols))
	code := int32(0)
	for l := 0; l < 16; l++ {
		for k := h.Offsets[l]; k < h.Offsets[l+1]; k++ {
			h.codes[k] = code
			code++
		}
		code <<= 1
	}
}

// Codes returns the canonical code assigned to each symbol, in symbol
// storage order
func (h *HuffmanTable) Codes() []int32 {
	return h.codes
}

// DecodeSymbol resolves the next Huffman code from the bit reader and
// returns its symbol. Codes are at most 16 bits, so the accumulated
// prefix is matched against each length's codes in turn; running past
// 16 bits without a match means the coded data is corrupt.
func (h *HuffmanTable) DecodeSymbol(b *BitReader) (byte, error) {
	code := int32(0)
	for l := 0; l < 16; l++ {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		code = (code << 1) | bit
		for k := h.Offsets[l]; k < h.Offsets[l+1]; k++ {
			if h.codes[k] == code {
				return h.Symbols[k], nil
			}
		}
	}
	return 0, fmt.Errorf("no Huffman code matched within 16 bits: %w", ErrEntropy)
}
