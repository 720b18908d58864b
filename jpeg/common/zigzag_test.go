package common

import "testing"

func TestZigZagIsBijection(t *testing.T) {
	var seen [64]bool
	for i, n := range ZigZag {
		if n < 0 || n > 63 {
			t.Fatalf("ZigZag[%d] = %d, out of range", i, n)
		}
		if seen[n] {
			t.Fatalf("ZigZag maps two positions to %d", n)
		}
		seen[n] = true
	}
}

func TestZigZagKnownPositions(t *testing.T) {
	// first diagonal and the last few entries
	tests := []struct {
		scan    int
		natural int
	}{
		{0, 0},
		{1, 1},
		{2, 8},
		{3, 16},
		{4, 9},
		{5, 2},
		{62, 62},
		{63, 63},
	}
	for _, tt := range tests {
		if got := ZigZag[tt.scan]; got != tt.natural {
			t.Errorf("ZigZag[%d] = %d, want %d", tt.scan, got, tt.natural)
		}
	}
}

func TestDivCeil(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{8, 8, 1},
		{9, 8, 2},
		{16, 8, 2},
		{17, 8, 3},
		{1, 8, 1},
	}
	for _, tt := range tests {
		if got := DivCeil(tt.a, tt.b); got != tt.want {
			t.Errorf("DivCeil(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 255); got != 0 {
		t.Errorf("Clamp(-5) = %d, want 0", got)
	}
	if got := Clamp(300, 0, 255); got != 255 {
		t.Errorf("Clamp(300) = %d, want 255", got)
	}
	if got := Clamp(128, 0, 255); got != 128 {
		t.Errorf("Clamp(128) = %d, want 128", got)
	}
}
