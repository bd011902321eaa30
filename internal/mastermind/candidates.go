package mastermind

import (
	"fmt"
	"math/bits"
)

// CandidateSet tracks which combinations are still consistent with every
// feedback received. Bits are only ever cleared after construction.
type CandidateSet struct {
	n     int
	size  int
	words []uint64
	count int
}

// NewCandidateSet returns a set over all 6^n combinations, every bit set.
func NewCandidateSet(n int) *CandidateSet {
	size := SpaceSize(n)
	words := make([]uint64, (size+63)/64)
	for i := range words {
		words[i] = ^uint64(0)
	}
	if tail := size % 64; tail != 0 {
		words[len(words)-1] = (uint64(1) << tail) - 1
	}
	return &CandidateSet{n: n, size: size, words: words, count: size}
}

// Length is the combination length the set was built for.
func (s *CandidateSet) Length() int { return s.n }

// Size is the number of indices covered, 6^n.
func (s *CandidateSet) Size() int { return s.size }

// Count is the number of candidates left.
func (s *CandidateSet) Count() int { return s.count }

func (s *CandidateSet) Contains(index int) bool {
	s.check(index)
	return s.words[index/64]&(uint64(1)<<(index%64)) != 0
}

// Clear removes index from the set. Clearing twice is a no-op.
func (s *CandidateSet) Clear(index int) {
	s.check(index)
	mask := uint64(1) << (index % 64)
	if s.words[index/64]&mask != 0 {
		s.words[index/64] &^= mask
		s.count--
	}
}

// Each calls fn for every candidate index in ascending order.
func (s *CandidateSet) Each(fn func(index int)) {
	for w, word := range s.words {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			fn(w*64 + tz)
			word &= word - 1
		}
	}
}

// First returns the lowest candidate index, or -1 when the set is empty.
func (s *CandidateSet) First() int {
	for w, word := range s.words {
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// Revalidate clears every candidate whose score against guess differs from fb
// and returns how many were removed. Only set bits are rescored; cleared bits
// would be cleared again, so the outcome matches a full rescan.
func (s *CandidateSet) Revalidate(guess Combination, fb Feedback) (int, error) {
	if len(guess) != s.n {
		return 0, fmt.Errorf("%w: guess has %d colors, candidate set expects %d",
			ErrLengthMismatch, len(guess), s.n)
	}

	secret := NewCombination(s.n)
	before := s.count
	s.Each(func(index int) {
		if score(guess, DecodeInto(index, secret)) != fb {
			s.Clear(index)
		}
	})
	return before - s.count, nil
}

func (s *CandidateSet) check(index int) {
	if index < 0 || index >= s.size {
		panic(fmt.Sprintf("mastermind: candidate index %d out of range [0, %d)", index, s.size))
	}
}
