package baseline

import (
	"fmt"
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Component describes one color component of the frame. Components
// are stored at slot ID-1, so slot 0 is always Y.
type Component struct {
	ID   byte // Component identifier, 1..3 after normalization
	H    int  // Horizontal sampling factor
	V    int  // Vertical sampling factor
	Tq   int  // Quantization table selector
	Td   int  // DC Huffman table selector, assigned per scan
	Ta   int  // AC Huffman table selector, assigned per scan
	used bool // Present in the current frame/scan
}

// QuantizationTable holds 64 coefficients in zig-zag transmission
// order
type QuantizationTable struct {
	Table [64]int32
	Set   bool
}

// Header is the decode configuration built from the marker segments.
// It is read-only once ReadHeader returns.
type Header struct {
	Width         int
	Height        int
	FrameType     uint16
	Precision     int
	NumComponents int
	Components    [3]Component

	QuantTables [4]QuantizationTable
	DCTables    [4]common.HuffmanTable
	ACTables    [4]common.HuffmanTable

	StartOfSelection            byte
	EndOfSelection              byte
	SuccessiveApproximationHigh byte
	SuccessiveApproximationLow  byte

	RestartInterval int

	// Some encoders number components 0,1,2 instead of 1,2,3. Once
	// any zero ID is seen every ID in the stream is shifted up by one.
	zeroBased bool

	// EntropyData is the destuffed entropy-coded scan data
	EntropyData []byte
}

// ReadHeader parses the marker segments of a baseline JPEG stream,
// extracts the destuffed entropy-coded data, and validates the
// resulting configuration. The stream must start with SOI and the
// marker loop ends at SOS; everything after the scan data up to EOI
// belongs to the entropy buffer.
func ReadHeader(r io.Reader) (*Header, error) {
	reader := common.NewReader(r)
	h := &Header{}

	// The signature is the literal two bytes FF D8; fill bytes are
	// only tolerated between segments, never before SOI
	for _, want := range []byte{0xFF, 0xD8} {
		b, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != want {
			return nil, fmt.Errorf("missing SOI signature, found byte 0x%02X: %w", b, common.ErrMalformed)
		}
	}

	if err := h.readSegments(reader); err != nil {
		return nil, err
	}

	if err := h.readEntropyData(reader); err != nil {
		return nil, err
	}

	if err := h.validate(); err != nil {
		return nil, err
	}

	return h, nil
}

// readSegments runs the marker dispatch loop. The only non-error exit
// is the SOS handler; every other recognized marker either updates the
// header or is skipped by length.
func (h *Header) readSegments(reader *common.Reader) error {
	for {
		marker, err := reader.ReadMarker()
		if err != nil {
			return err
		}

		switch {
		case marker == common.MarkerSOF0:
			if err := h.parseSOF(reader, marker); err != nil {
				return err
			}

		case marker == common.MarkerDQT:
			if err := h.parseDQT(reader); err != nil {
				return err
			}

		case marker == common.MarkerDHT:
			if err := h.parseDHT(reader); err != nil {
				return err
			}

		case marker == common.MarkerSOS:
			return h.parseSOS(reader)

		case marker == common.MarkerDRI:
			if err := h.parseDRI(reader); err != nil {
				return err
			}

		case common.IsAPP(marker) || marker == common.MarkerCOM || common.IsSkippable(marker):
			if _, err := reader.ReadSegment(); err != nil {
				return err
			}

		case marker == common.MarkerTEM:
			// TEM has no length field

		case marker == common.MarkerSOI:
			return fmt.Errorf("embedded SOI inside the stream: %w", common.ErrMalformed)

		case marker == common.MarkerEOI:
			return fmt.Errorf("EOI before any scan data: %w", common.ErrMalformed)

		case marker == common.MarkerDAC:
			return fmt.Errorf("arithmetic coding not supported: %w", common.ErrUnsupported)

		case common.IsSOF(marker):
			return fmt.Errorf("frame type %s not supported: %w", common.MarkerName(marker), common.ErrUnsupported)

		case common.IsRST(marker):
			return fmt.Errorf("%s before any scan data: %w", common.MarkerName(marker), common.ErrMalformed)

		default:
			return fmt.Errorf("unknown marker %s: %w", common.MarkerName(marker), common.ErrMalformed)
		}
	}
}

// parseSOF parses the baseline Start of Frame segment
func (h *Header) parseSOF(reader *common.Reader, marker uint16) error {
	if h.NumComponents != 0 {
		return fmt.Errorf("multiple SOF segments: %w", common.ErrMalformed)
	}
	h.FrameType = marker

	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}
	if len(data) < 6 {
		return fmt.Errorf("SOF segment too short (%d bytes): %w", len(data), common.ErrMalformed)
	}

	h.Precision = int(data[0])
	if h.Precision != 8 {
		return fmt.Errorf("SOF: sample precision %d, baseline requires 8: %w", h.Precision, common.ErrUnsupported)
	}

	h.Height = int(data[1])<<8 | int(data[2])
	h.Width = int(data[3])<<8 | int(data[4])
	if h.Height == 0 || h.Width == 0 {
		return fmt.Errorf("SOF: zero image dimensions: %w", common.ErrMalformed)
	}

	numComponents := int(data[5])
	switch numComponents {
	case 0:
		return fmt.Errorf("SOF: zero color components: %w", common.ErrMalformed)
	case 2:
		return fmt.Errorf("SOF: 2 color components (1 or 3 required): %w", common.ErrMalformed)
	case 4:
		return fmt.Errorf("SOF: CMYK color mode not supported: %w", common.ErrUnsupported)
	}
	if len(data) != 6+3*numComponents {
		return fmt.Errorf("SOF: segment length does not match %d components: %w", numComponents, common.ErrMalformed)
	}
	h.NumComponents = numComponents

	for i := 0; i < numComponents; i++ {
		off := 6 + i*3
		componentID := data[off]

		// Component IDs are usually 1,2,3 but are rarely seen as
		// 0,1,2. Force them into 1,2,3 for consistency.
		if componentID == 0 {
			h.zeroBased = true
		}
		if h.zeroBased {
			componentID++
		}
		if componentID == 4 || componentID == 5 {
			return fmt.Errorf("SOF: YIQ color mode not supported (component ID %d): %w", componentID, common.ErrUnsupported)
		}
		if componentID == 0 || componentID > 3 {
			return fmt.Errorf("SOF: invalid component ID %d: %w", componentID, common.ErrMalformed)
		}

		comp := &h.Components[componentID-1]
		if comp.used {
			return fmt.Errorf("SOF: duplicate component ID %d: %w", componentID, common.ErrMalformed)
		}
		comp.used = true
		comp.ID = componentID
		comp.H = int(data[off+1] >> 4)
		comp.V = int(data[off+1] & 0x0F)
		comp.Tq = int(data[off+2])
		if comp.Tq > 3 {
			return fmt.Errorf("SOF: invalid quantization table ID %d for component %d: %w", comp.Tq, componentID, common.ErrMalformed)
		}
	}

	return nil
}

// parseDQT parses a Define Quantization Table segment, which may hold
// several tables back to back. Coefficients are kept in zig-zag order;
// dequantization resolves the natural position.
func (h *Header) parseDQT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		tableInfo := data[offset]
		offset++
		tableID := tableInfo & 0x0F

		if tableID > 3 {
			return fmt.Errorf("DQT: invalid table ID %d: %w", tableID, common.ErrMalformed)
		}
		qt := &h.QuantTables[tableID]
		qt.Set = true

		if tableInfo>>4 != 0 {
			if offset+128 > len(data) {
				return fmt.Errorf("DQT: segment too short for 16-bit table %d: %w", tableID, common.ErrMalformed)
			}
			for i := 0; i < 64; i++ {
				qt.Table[i] = int32(data[offset])<<8 | int32(data[offset+1])
				offset += 2
			}
		} else {
			if offset+64 > len(data) {
				return fmt.Errorf("DQT: segment too short for 8-bit table %d: %w", tableID, common.ErrMalformed)
			}
			for i := 0; i < 64; i++ {
				qt.Table[i] = int32(data[offset])
				offset++
			}
		}
	}

	if offset != len(data) {
		return fmt.Errorf("DQT: segment length mismatch: %w", common.ErrMalformed)
	}
	return nil
}

// parseDHT parses a Define Huffman Table segment, which may hold
// several tables back to back
func (h *Header) parseDHT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		tableInfo := data[offset]
		offset++
		tableID := tableInfo & 0x0F
		acTable := tableInfo>>4 != 0

		if tableID > 3 {
			return fmt.Errorf("DHT: invalid table ID %d: %w", tableID, common.ErrMalformed)
		}

		var table *common.HuffmanTable
		if acTable {
			table = &h.ACTables[tableID]
		} else {
			table = &h.DCTables[tableID]
		}

		if offset+16 > len(data) {
			return fmt.Errorf("DHT: segment too short for symbol counts: %w", common.ErrMalformed)
		}
		allSymbols := 0
		table.Offsets[0] = 0
		for i := 1; i <= 16; i++ {
			allSymbols += int(data[offset])
			table.Offsets[i] = allSymbols
			offset++
		}
		if allSymbols > common.MaxHuffmanSymbols {
			return fmt.Errorf("DHT: %d symbols in one table (max %d): %w", allSymbols, common.MaxHuffmanSymbols, common.ErrMalformed)
		}

		if offset+allSymbols > len(data) {
			return fmt.Errorf("DHT: segment too short for %d symbols: %w", allSymbols, common.ErrMalformed)
		}
		table.Symbols = make([]byte, allSymbols)
		copy(table.Symbols, data[offset:offset+allSymbols])
		offset += allSymbols

		table.Set = true
		table.BuildCodes()
	}

	if offset != len(data) {
		return fmt.Errorf("DHT: segment length mismatch: %w", common.ErrMalformed)
	}
	return nil
}

// parseSOS parses the Start of Scan segment. This is the terminal
// marker of the header: once it returns, the next bytes of the stream
// are entropy-coded data.
func (h *Header) parseSOS(reader *common.Reader) error {
	if h.NumComponents == 0 {
		return fmt.Errorf("SOS before SOF: %w", common.ErrMalformed)
	}

	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}
	if len(data) < 1 {
		return fmt.Errorf("SOS segment too short: %w", common.ErrMalformed)
	}

	for i := range h.Components {
		h.Components[i].used = false
	}

	// The scan may cover fewer components than the frame declares
	numComponents := int(data[0])
	if len(data) != 4+2*numComponents {
		return fmt.Errorf("SOS: segment length does not match %d components: %w", numComponents, common.ErrMalformed)
	}

	for i := 0; i < numComponents; i++ {
		componentID := data[1+i*2]
		if h.zeroBased {
			componentID++
		}
		if componentID == 0 || int(componentID) > h.NumComponents {
			return fmt.Errorf("SOS: invalid component ID %d: %w", componentID, common.ErrMalformed)
		}

		comp := &h.Components[componentID-1]
		if comp.used {
			return fmt.Errorf("SOS: duplicate component ID %d: %w", componentID, common.ErrMalformed)
		}
		comp.used = true

		tableIDs := data[2+i*2]
		comp.Td = int(tableIDs >> 4)
		comp.Ta = int(tableIDs & 0x0F)
		if comp.Td > 3 {
			return fmt.Errorf("SOS: invalid DC table ID %d: %w", comp.Td, common.ErrMalformed)
		}
		if comp.Ta > 3 {
			return fmt.Errorf("SOS: invalid AC table ID %d: %w", comp.Ta, common.ErrMalformed)
		}
	}

	h.StartOfSelection = data[1+2*numComponents]
	h.EndOfSelection = data[2+2*numComponents]
	approx := data[3+2*numComponents]
	h.SuccessiveApproximationHigh = approx >> 4
	h.SuccessiveApproximationLow = approx & 0x0F

	// Baseline scans always cover the full spectrum with no
	// successive approximation
	if h.StartOfSelection != 0 || h.EndOfSelection != 63 {
		return fmt.Errorf("SOS: spectral selection %d..%d (baseline requires 0..63): %w",
			h.StartOfSelection, h.EndOfSelection, common.ErrUnsupported)
	}
	if h.SuccessiveApproximationHigh != 0 || h.SuccessiveApproximationLow != 0 {
		return fmt.Errorf("SOS: successive approximation %d/%d (baseline requires 0/0): %w",
			h.SuccessiveApproximationHigh, h.SuccessiveApproximationLow, common.ErrUnsupported)
	}

	return nil
}

// parseDRI parses the Define Restart Interval segment
func (h *Header) parseDRI(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}
	if len(data) != 2 {
		return fmt.Errorf("DRI: segment length mismatch: %w", common.ErrMalformed)
	}
	h.RestartInterval = int(data[0])<<8 | int(data[1])
	return nil
}

// readEntropyData extracts the entropy-coded bytes that follow the
// scan header, destuffing as it goes: 0xFF00 decodes to a literal
// 0xFF, restart markers are dropped, fill 0xFF runs are ignored, and
// EOI terminates the scan. Any other marker inside the scan, or the
// input ending before EOI, is fatal.
func (h *Header) readEntropyData(reader *common.Reader) error {
	current, err := reader.ReadByte()
	if err != nil {
		return err
	}

	for {
		last := current
		current, err = reader.ReadByte()
		if err != nil {
			return err
		}

		if last != 0xFF {
			h.EntropyData = append(h.EntropyData, last)
			continue
		}

		switch {
		case current == 0xD9: // EOI
			return nil

		case current == 0x00:
			h.EntropyData = append(h.EntropyData, 0xFF)
			current, err = reader.ReadByte()
			if err != nil {
				return err
			}

		case common.IsRST(0xFF00 | uint16(current)):
			current, err = reader.ReadByte()
			if err != nil {
				return err
			}

		case current == 0xFF:
			// fill byte, re-examined as the next 'last'

		default:
			return fmt.Errorf("invalid marker %s inside scan data: %w",
				common.MarkerName(0xFF00|uint16(current)), common.ErrMalformed)
		}
	}
}

// validate runs the whole-file checks once every segment has been
// consumed: component count, sampling factors, and that every
// referenced table was actually transmitted.
func (h *Header) validate() error {
	if h.NumComponents != 1 && h.NumComponents != 3 {
		return fmt.Errorf("%d color components given (1 or 3 required): %w", h.NumComponents, common.ErrMalformed)
	}

	for i := 0; i < h.NumComponents; i++ {
		comp := &h.Components[i]
		if comp.H != 1 || comp.V != 1 {
			return fmt.Errorf("component %d sampling factor %dx%d (only 1x1 supported): %w",
				i+1, comp.H, comp.V, common.ErrUnsupported)
		}
		if !h.QuantTables[comp.Tq].Set {
			return fmt.Errorf("component %d references uninitialized quantization table %d: %w",
				i+1, comp.Tq, common.ErrMalformed)
		}
		if !h.DCTables[comp.Td].Set {
			return fmt.Errorf("component %d references uninitialized DC Huffman table %d: %w",
				i+1, comp.Td, common.ErrMalformed)
		}
		if !h.ACTables[comp.Ta].Set {
			return fmt.Errorf("component %d references uninitialized AC Huffman table %d: %w",
				i+1, comp.Ta, common.ErrMalformed)
		}
	}

	return nil
}

// MCUColumns returns the number of MCUs per row
func (h *Header) MCUColumns() int {
	return common.DivCeil(h.Width, 8)
}

// MCURows returns the number of MCU rows
func (h *Header) MCURows() int {
	return common.DivCeil(h.Height, 8)
}
