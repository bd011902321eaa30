package mastermind

import (
	"fmt"
	"strings"
)

// Combination is an ordered sequence of colors. Colors may repeat.
type Combination []Color

// NewCombination returns a combination of length n holding only Yellow.
func NewCombination(n int) Combination {
	return make(Combination, n)
}

// Next advances c in odometer order: position 0 moves first and a wrap carries
// into the following position. It reports false once the last position wraps,
// which means the enumeration is exhausted.
func (c Combination) Next() bool {
	for i := range c {
		if c[i] != Orange {
			c[i] = c[i].Next()
			return true
		}
		if i == len(c)-1 {
			return false
		}
		c[i] = c[i].Next()
	}
	return false
}

func (c Combination) Clone() Combination {
	return append(Combination(nil), c...)
}

func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the combination as space separated letters, e.g. "Y Y B B".
func (c Combination) String() string {
	var b strings.Builder
	for i, col := range c {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(col.Letter())
	}
	return b.String()
}

func (c Combination) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Combination) UnmarshalText(text []byte) error {
	parsed, err := ParseCombination(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCombination accepts "YYBB", "Y Y B B", "Y,Y,B,B" or full color names
// separated by spaces or commas.
func ParseCombination(s string) (Combination, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty combination", ErrInvalidLength)
	}
	if len(fields) == 1 && allLetters(fields[0]) {
		word := fields[0]
		out := make(Combination, len(word))
		for i := 0; i < len(word); i++ {
			col, err := ParseColor(word[i : i+1])
			if err != nil {
				return nil, err
			}
			out[i] = col
		}
		return out, nil
	}

	out := make(Combination, 0, len(fields))
	for _, f := range fields {
		col, err := ParseColor(f)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

func allLetters(word string) bool {
	for i := 0; i < len(word); i++ {
		if strings.IndexByte(colorLetters, upper(word[i])) < 0 {
			return false
		}
	}
	return true
}
