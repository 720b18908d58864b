package common

import "fmt"

// BitReader is an MSB-first bit cursor over an entropy-coded byte
// buffer. The buffer must already be destuffed: marker escapes and
// restart markers are removed during header parsing, so byte values
// here are pure coded data.
type BitReader struct {
	data     []byte
	nextByte int
	nextBit  uint
}

// NewBitReader creates a bit reader over data
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// ReadBit reads a single bit (0 or 1)
func (b *BitReader) ReadBit() (int32, error) {
	if b.nextByte >= len(b.data) {
		return 0, fmt.Errorf("bit reader exhausted at byte %d: %w", b.nextByte, ErrTruncated)
	}
	bit := int32(b.data[b.nextByte]>>(7-b.nextBit)) & 1
	b.nextBit++
	if b.nextBit == 8 {
		b.nextBit = 0
		b.nextByte++
	}
	return bit, nil
}

// ReadBits reads n bits as an unsigned value, first bit most
// significant
func (b *BitReader) ReadBits(n int) (int32, error) {
	var bits int32
	for i := 0; i < n; i++ {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		bits = (bits << 1) | bit
	}
	return bits, nil
}

// Align advances the cursor to the start of the next byte, discarding
// any unread bits of the current byte. Restart markers are byte
// aligned, so this is the resynchronization point after each restart
// interval.
func (b *BitReader) Align() {
	if b.nextByte >= len(b.data) {
		return
	}
	if b.nextBit != 0 {
		b.nextBit = 0
		b.nextByte++
	}
}
