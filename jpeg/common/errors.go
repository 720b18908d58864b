package common

import "errors"

// Error categories. Every rejection in the decoder wraps one of these
// with fmt.Errorf so callers can classify with errors.Is while the
// message still names the segment and the offending value.
var (
	// ErrMalformed indicates the container structure is invalid:
	// bad signature, bad or duplicate marker, segment length
	// mismatch, out-of-range table ID, uninitialized table reference
	ErrMalformed = errors.New("malformed JPEG container")

	// ErrTruncated indicates the stream ended before a structurally
	// required byte or bit
	ErrTruncated = errors.New("truncated JPEG stream")

	// ErrUnsupported indicates a valid JPEG feature outside the
	// baseline subset: progressive or arithmetic coding, non-baseline
	// spectral selection or successive approximation, CMYK/YIQ color,
	// sampling factors other than 1x1
	ErrUnsupported = errors.New("unsupported JPEG feature")

	// ErrEntropy indicates corrupt entropy-coded data: a Huffman code
	// that resolves to no symbol, a zero run past the end of a block,
	// or a coefficient magnitude length out of range
	ErrEntropy = errors.New("corrupt entropy-coded data")
)
