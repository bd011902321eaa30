package mastermind

import (
	"fmt"
	"strconv"
	"strings"
)

// Feedback is the score of a guess against a secret: exact-position matches
// and color-only matches.
type Feedback struct {
	Positions int `json:"positions"`
	Colors    int `json:"colors"`
}

// Valid reports whether f is a possible score for length n.
func (f Feedback) Valid(n int) bool {
	return f.Positions >= 0 && f.Colors >= 0 && f.Positions+f.Colors <= n &&
		!(f.Positions == n-1 && f.Colors == 1)
}

// Solved reports whether f is a full match for length n.
func (f Feedback) Solved(n int) bool {
	return f.Positions == n
}

func (f Feedback) String() string {
	return fmt.Sprintf("%d %d", f.Positions, f.Colors)
}

// bucket maps f to a slot of a (n+1)^2 histogram.
func (f Feedback) bucket(n int) int {
	return f.Positions*(n+1) + f.Colors
}

// ParseFeedback reads "positions colors", the format the CLI prompt expects.
func ParseFeedback(s string) (Feedback, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return Feedback{}, fmt.Errorf("%w: want two integers, got %q", ErrInvalidFeedback, s)
	}
	p, err := strconv.Atoi(fields[0])
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: positions: %v", ErrInvalidFeedback, err)
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: colors: %v", ErrInvalidFeedback, err)
	}
	return Feedback{Positions: p, Colors: c}, nil
}
