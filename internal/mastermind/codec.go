package mastermind

import "fmt"

const (
	// MaxLength bounds the codec so that 6^n stays a comfortable int.
	MaxLength = 10
)

// SupportedLengths are the lengths offered by the CLI and the session API.
var SupportedLengths = []int{2, 3, 4, 5}

// ValidateLength checks n against SupportedLengths.
func ValidateLength(n int) error {
	for _, l := range SupportedLengths {
		if l == n {
			return nil
		}
	}
	return fmt.Errorf("%w: %d (want one of %v)", ErrInvalidLength, n, SupportedLengths)
}

// SpaceSize returns 6^n, the number of combinations of length n.
func SpaceSize(n int) int {
	mustLength(n)
	size := 1
	for i := 0; i < n; i++ {
		size *= NumColors
	}
	return size
}

// Encode maps c to its index: the k-th color is weighted by 6^k.
func Encode(c Combination) int {
	index := 0
	weight := 1
	for _, col := range c {
		index += int(col) * weight
		weight *= NumColors
	}
	return index
}

// Decode returns a fresh combination of length n for index.
func Decode(index, n int) Combination {
	return DecodeInto(index, make(Combination, n))
}

// DecodeInto overwrites dst with the combination for index, using len(dst) as n.
// An index outside [0, 6^n) is a programming error and panics.
func DecodeInto(index int, dst Combination) Combination {
	if index < 0 || index >= SpaceSize(len(dst)) {
		panic(fmt.Sprintf("mastermind: index %d out of range for length %d", index, len(dst)))
	}
	for i := range dst {
		dst[i] = Color(index % NumColors)
		index /= NumColors
	}
	return dst
}

func mustLength(n int) {
	if n < 1 || n > MaxLength {
		panic(fmt.Sprintf("mastermind: combination length %d out of range [1, %d]", n, MaxLength))
	}
}

// Space holds every combination of one length, decoded once, indexed by Encode.
type Space struct {
	n      int
	combos []Combination
}

func NewSpace(n int) *Space {
	size := SpaceSize(n)
	backing := make([]Color, size*n)
	combos := make([]Combination, size)
	for i := range combos {
		combos[i] = DecodeInto(i, backing[i*n:(i+1)*n:(i+1)*n])
	}
	return &Space{n: n, combos: combos}
}

func (s *Space) Length() int { return s.n }
func (s *Space) Size() int   { return len(s.combos) }

// At returns the shared combination for index. Callers must not modify it.
func (s *Space) At(index int) Combination {
	return s.combos[index]
}
