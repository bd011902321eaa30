package mastermind

import (
	"fmt"
	"strings"
)

// Color is one peg color. The numeric value is the digit used by the codec.
type Color uint8

const (
	Yellow Color = iota
	Blue
	Green
	Red
	Pink
	Orange
)

// NumColors is the size of the alphabet.
const NumColors = 6

var colorNames = [NumColors]string{"yellow", "blue", "green", "red", "pink", "orange"}

const colorLetters = "YBGRPO"

// Next returns the successor color; Orange wraps to Yellow.
func (c Color) Next() Color {
	if c == NumColors-1 {
		return Yellow
	}
	return c + 1
}

func (c Color) Valid() bool {
	return c < NumColors
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Letter returns the single-letter form used on the wire and in the CLI.
func (c Color) Letter() byte {
	if !c.Valid() {
		return '?'
	}
	return colorLetters[c]
}

// ParseColor accepts a letter (Y B G R P O) or a full color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if i := strings.IndexByte(colorLetters, upper(s[0])); i >= 0 {
			return Color(i), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	for i, name := range colorNames {
		if strings.EqualFold(name, s) {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
