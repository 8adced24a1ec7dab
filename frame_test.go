package max6921

import (
	"math/bits"
	"testing"
)

func TestGridMask(t *testing.T) {
	for grid := 0; grid < GridCount; grid++ {
		mask := gridMask(grid)
		if bits.OnesCount16(mask) != 1 {
			t.Errorf("grid %d: mask %#011b is not one-hot", grid, mask)
		}
		if want := uint16(1 << (8 - grid)); mask != want {
			t.Errorf("grid %d: mask = %#011b, want %#011b", grid, mask, want)
		}
	}
}

func TestEncodeFrame(t *testing.T) {
	tests := []struct {
		name     string
		command  uint8
		grid     uint16
		segments Pattern
		want     [frameBytes]byte
	}{
		{
			// Grid 3 selects bit 5 of the 9-bit grid field; the frame
			// is the 20-bit word in the low bits of 24, high byte
			// first, padding in front.
			name:     "grid 3 digit 1",
			grid:     gridMask(3),
			segments: Digit1,
			want:     [frameBytes]byte{0x00, 0x20, 0x06},
		},
		{
			name:     "grid 0 all segments",
			grid:     gridMask(0),
			segments: 0xFF,
			want:     [frameBytes]byte{0x01, 0x00, 0xFF},
		},
		{
			name:     "grid 8 digit 8",
			grid:     gridMask(8),
			segments: Digit8,
			want:     [frameBytes]byte{0x00, 0x01, 0x7F},
		},
		{
			name:    "command 7 standalone",
			command: 7,
			want:    [frameBytes]byte{0x0E, 0x00, 0x00},
		},
		{
			name: "all zero",
			want: [frameBytes]byte{0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeFrame(tt.command, tt.grid, tt.segments)
			if got != tt.want {
				t.Errorf("encodeFrame() = %#02x, want %#02x", got, tt.want)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	for command := uint8(0); command <= maxCommand; command++ {
		for grid := 0; grid < GridCount; grid++ {
			for _, segments := range []Pattern{Blank, Digit0, Digit9, Dot, Dash, 0xFF} {
				frame := encodeFrame(command, gridMask(grid), segments)

				pad, c, g, s := decodeFrame(frame)
				if pad != 0 {
					t.Fatalf("frame %#02x: padding bits = %#04b, want 0", frame, pad)
				}
				if c != command {
					t.Fatalf("frame %#02x: command = %d, want %d", frame, c, command)
				}
				if g != gridMask(grid) {
					t.Fatalf("frame %#02x: grid = %#011b, want %#011b", frame, g, gridMask(grid))
				}
				if s != segments {
					t.Fatalf("frame %#02x: segments = %#010b, want %#010b", frame, s, segments)
				}
			}
		}
	}
}
