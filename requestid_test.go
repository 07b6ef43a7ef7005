package reqtrace

import (
	"fmt"
	"testing"
)

func TestFormatStrippedIsFixedWidthHex(t *testing.T) {
	for _, id := range []RequestID{0, 1, 0xab, 0xcafe, 0xffff} {
		want := fmt.Sprintf("%04x", uint16(id))
		got := StripANSI(id.Format(DefaultPalette))
		if got != want {
			t.Errorf("id %d: got %q want %q", id, got, want)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	id := RequestID(0xbeef)
	if a, b := id.Format(DefaultPalette), id.Format(DefaultPalette); a != b {
		t.Errorf("repeated Format disagrees: %q vs %q", a, b)
	}
}

func TestNewRequestIDVaries(t *testing.T) {
	// Not a uniqueness guarantee, just a sanity check that the source
	// is not stuck on one value.
	seen := make(map[RequestID]bool)
	for i := 0; i < 100; i++ {
		seen[NewRequestID()] = true
	}
	if len(seen) < 2 {
		t.Errorf("100 draws produced %d distinct ids", len(seen))
	}
}
