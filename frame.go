package max6921

// The MAX6921 is a 20-bit shift register loaded MSB-first. SPI moves
// whole bytes, so each load is a 3-byte (24-bit) frame: 4 zero padding
// bits clocked in first, then the 20-bit word
//
//	[COMMAND(3) | GRID(9) | SEGMENTS(8)]
//
// After 24 clocks the padding has shifted out the far end and the word
// sits in the register, ready to latch.
const (
	padBits     = 4
	commandBits = 3
	gridBits    = 9
	segmentBits = 8

	frameBytes = 3

	maxCommand = 1<<commandBits - 1

	gridShift    = segmentBits
	commandShift = gridBits + segmentBits
)

// GridCount is the number of multiplexed grid positions, indexed 0..8
// left to right.
const GridCount = 9

// gridMask returns the one-hot grid select for a valid grid index.
// Grid 0 is the highest bit of the 9-bit field.
func gridMask(grid int) uint16 {
	return 1 << (gridBits - 1 - grid)
}

// encodeFrame packs one wire word into its 3-byte frame, high byte
// first.
func encodeFrame(command uint8, grid uint16, segments Pattern) [frameBytes]byte {
	word := uint32(command)<<commandShift | uint32(grid)<<gridShift | uint32(segments)
	return [frameBytes]byte{
		byte(word >> 16),
		byte(word >> 8),
		byte(word),
	}
}

// decodeFrame splits a 3-byte frame back into its fields, including the
// padding bits, which must be zero on the wire.
func decodeFrame(frame [frameBytes]byte) (pad, command uint8, grid uint16, segments Pattern) {
	word := uint32(frame[0])<<16 | uint32(frame[1])<<8 | uint32(frame[2])
	pad = uint8(word >> (commandShift + commandBits))
	command = uint8(word>>commandShift) & maxCommand
	grid = uint16(word>>gridShift) & (1<<gridBits - 1)
	segments = Pattern(word)
	return
}
