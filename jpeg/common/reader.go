package common

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader provides utilities for reading marker-segmented JPEG data
type Reader struct {
	r   io.Reader
	buf [2]byte
}

// NewReader creates a new JPEG reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte. Running out of input is ErrTruncated:
// every byte this reader is asked for is structurally required.
func (r *Reader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	if err != nil {
		return 0, truncated(err)
	}
	return r.buf[0], nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	_, err := io.ReadFull(r.r, r.buf[:2])
	if err != nil {
		return 0, truncated(err)
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadMarker reads the next JPEG marker. Any run of 0xFF fill bytes
// before the marker ID is allowed and skipped.
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, fmt.Errorf("expected a marker, found byte 0x%02X: %w", b, ErrMalformed)
	}

	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			break
		}
	}

	// 0xFF00 is a stuffed data byte, never a marker
	if b == 0x00 {
		return 0, fmt.Errorf("stuffed byte where a marker was expected: %w", ErrMalformed)
	}

	return uint16(0xFF00) | uint16(b), nil
}

// ReadSegment reads a length-prefixed segment and returns its payload
// (the declared length minus the 2 length bytes). The caller is
// responsible for consuming the payload exactly.
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, fmt.Errorf("segment length %d smaller than its own length field: %w", length, ErrMalformed)
	}

	data := make([]byte, length-2)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, truncated(err)
	}
	return data, nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("input ended prematurely: %w", ErrTruncated)
	}
	return err
}
