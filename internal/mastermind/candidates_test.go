package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSet_Init(t *testing.T) {
	for n := 1; n <= 5; n++ {
		s := NewCandidateSet(n)
		require.Equal(t, SpaceSize(n), s.Size())
		require.Equal(t, s.Size(), s.Count())

		seen := 0
		s.Each(func(index int) {
			require.Equal(t, seen, index)
			seen++
		})
		require.Equal(t, s.Size(), seen, "n=%d: Each must not visit padding bits", n)
	}
}

func TestCandidateSet_ClearIsIdempotent(t *testing.T) {
	s := NewCandidateSet(2)
	s.Clear(5)
	s.Clear(5)
	assert.False(t, s.Contains(5))
	assert.True(t, s.Contains(4))
	assert.Equal(t, 35, s.Count())
	assert.Equal(t, 0, s.First())

	s.Clear(0)
	assert.Equal(t, 1, s.First())
	assert.Panics(t, func() { s.Contains(36) })
}

func TestCandidateSet_RevalidateKeepsOnlyConsistent(t *testing.T) {
	guess := mustParse(t, "YYBB")
	secret := mustParse(t, "YBGR")
	fb, err := Score(guess, secret)
	require.NoError(t, err)

	s := NewCandidateSet(4)
	removed, err := s.Revalidate(guess, fb)
	require.NoError(t, err)
	require.Equal(t, 1296-s.Count(), removed)
	require.True(t, s.Contains(Encode(secret)))

	want := 0
	for i := 0; i < 1296; i++ {
		got, _ := Score(guess, Decode(i, 4))
		consistent := got == fb
		if consistent {
			want++
		}
		require.Equal(t, consistent, s.Contains(i), "index %d", i)
	}
	require.Equal(t, want, s.Count())
}

func TestCandidateSet_Monotonic(t *testing.T) {
	secret := mustParse(t, "RPOB")
	s := NewCandidateSet(4)
	prev := s.Count()
	cleared := map[int]bool{}

	guesses := []string{"YYBB", "GGRR", "PPOO", "YBGR", "RPOB"}
	for _, g := range guesses {
		guess := mustParse(t, g)
		fb, _ := Score(guess, secret)
		_, err := s.Revalidate(guess, fb)
		require.NoError(t, err)

		require.LessOrEqual(t, s.Count(), prev)
		prev = s.Count()
		for i := range cleared {
			require.False(t, s.Contains(i), "index %d was set again", i)
		}
		for i := 0; i < s.Size(); i++ {
			if !s.Contains(i) {
				cleared[i] = true
			}
		}
		require.True(t, s.Contains(Encode(secret)))
	}
	require.Equal(t, 1, s.Count())
}

func TestCandidateSet_RevalidateLengthMismatch(t *testing.T) {
	s := NewCandidateSet(3)
	_, err := s.Revalidate(mustParse(t, "YYBB"), Feedback{})
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.Equal(t, 216, s.Count())
}
