package baseline

import (
	"testing"

	"github.com/cocosip/go-jpeg-baseline/codec"
)

func TestCodecRegistered(t *testing.T) {
	c, err := codec.Get("1.2.840.10008.1.2.4.50")
	if err != nil {
		t.Fatalf("codec not registered by UID: %v", err)
	}
	if c.Name() != "jpeg-baseline" {
		t.Errorf("codec name = %q, want jpeg-baseline", c.Name())
	}

	byName, err := codec.Get("jpeg-baseline")
	if err != nil {
		t.Fatalf("codec not registered by name: %v", err)
	}
	if byName != c {
		t.Error("name and UID lookups returned different codecs")
	}
}

func TestCodecDecode(t *testing.T) {
	result, err := NewCodec().Decode(grayFlatJPEG())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Width != 8 || result.Height != 8 {
		t.Errorf("dimensions = %dx%d, want 8x8", result.Width, result.Height)
	}
	if result.Components != 1 {
		t.Errorf("components = %d, want 1", result.Components)
	}
	if result.BitDepth != 8 {
		t.Errorf("bit depth = %d, want 8", result.BitDepth)
	}
	if len(result.PixelData) != 64 {
		t.Errorf("pixel data length = %d, want 64", len(result.PixelData))
	}
}

func TestCodecDecodeError(t *testing.T) {
	if _, err := NewCodec().Decode([]byte{0xFF, 0xD8}); err == nil {
		t.Error("Decode of a truncated stream should fail")
	}
}
