package max6921

import "strings"

// Pattern is an 8-bit segment mask. Bits 0..6 select the seven segment
// bars A..G, bit 7 (H) is the decimal point. Any 8-bit value is valid;
// whether it renders a recognizable glyph is up to the caller.
type Pattern uint8

// Canonical segment patterns.
const (
	Digit0 Pattern = 0b0011_1111 // A B C D E F
	Digit1 Pattern = 0b0000_0110 // B C
	Digit2 Pattern = 0b0101_1011 // A B D E G
	Digit3 Pattern = 0b0100_1111 // A B C D G
	Digit4 Pattern = 0b0110_0110 // B C F G
	Digit5 Pattern = 0b0110_1101 // A C D F G
	Digit6 Pattern = 0b0111_1101 // A C D E F G
	Digit7 Pattern = 0b0000_0111 // A B C
	Digit8 Pattern = 0b0111_1111 // A B C D E F G
	Digit9 Pattern = 0b0110_1111 // A B C D F G
	Dot    Pattern = 0b1000_0000 // decimal point (H) only
	Dash   Pattern = 0b0100_0000 // minus sign (G) only
	Blank  Pattern = 0b0000_0000 // all segments off
)

var digitPatterns = [10]Pattern{
	Digit0, Digit1, Digit2, Digit3, Digit4,
	Digit5, Digit6, Digit7, Digit8, Digit9,
}

// DigitPattern returns the canonical pattern for a decimal digit, or
// ErrInvalidParam for values outside 0..9.
func DigitPattern(digit int) (Pattern, error) {
	if digit < 0 || digit > 9 {
		return Blank, ErrInvalidParam
	}
	return digitPatterns[digit], nil
}

var segmentNames = [8]string{"A", "B", "C", "D", "E", "F", "G", "H"}

// String renders the lit segments as a space-separated list of labels,
// for example "B C" for Digit1. Blank renders as the empty string.
func (p Pattern) String() string {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		if p&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(segmentNames[i])
	}
	return b.String()
}
