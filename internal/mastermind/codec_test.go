package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_NextWraps(t *testing.T) {
	want := []Color{Blue, Green, Red, Pink, Orange, Yellow}
	c := Yellow
	for i, w := range want {
		c = c.Next()
		if c != w {
			t.Fatalf("step %d: got %s want %s", i, c, w)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"Y", Yellow, true},
		{"b", Blue, true},
		{"green", Green, true},
		{" RED ", Red, true},
		{"P", Pink, true},
		{"orange", Orange, true},
		{"X", 0, false},
		{"purple", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if !tc.ok {
			require.ErrorIs(t, err, ErrUnknownColor, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCombination(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Combination
	}{
		{name: "letters", in: "YBGR", want: Combination{Yellow, Blue, Green, Red}},
		{name: "spaced", in: "Y Y B B", want: Combination{Yellow, Yellow, Blue, Blue}},
		{name: "commas", in: "p,o,y", want: Combination{Pink, Orange, Yellow}},
		{name: "names", in: "orange red", want: Combination{Orange, Red}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCombination(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Equal(tc.want))
		})
	}

	_, err := ParseCombination("YBX")
	require.ErrorIs(t, err, ErrUnknownColor)
	_, err = ParseCombination("  ")
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestCombination_String(t *testing.T) {
	assert.Equal(t, "Y B G R P O", Combination{Yellow, Blue, Green, Red, Pink, Orange}.String())
}

func TestCodec_Bijection(t *testing.T) {
	for n := 1; n <= 6; n++ {
		size := SpaceSize(n)
		buf := NewCombination(n)
		for i := 0; i < size; i++ {
			c := DecodeInto(i, buf)
			if got := Encode(c); got != i {
				t.Fatalf("n=%d: Encode(Decode(%d))=%d", n, i, got)
			}
			if back := Decode(Encode(c), n); !back.Equal(c) {
				t.Fatalf("n=%d: Decode(Encode(%s))=%s", n, c, back)
			}
		}
	}
}

func TestCodec_Weights(t *testing.T) {
	// first element is least significant
	assert.Equal(t, 0, Encode(Combination{Yellow, Yellow, Yellow, Yellow}))
	assert.Equal(t, 1, Encode(Combination{Blue, Yellow, Yellow, Yellow}))
	assert.Equal(t, 6, Encode(Combination{Yellow, Blue, Yellow, Yellow}))
	assert.Equal(t, 252, Encode(Combination{Yellow, Yellow, Blue, Blue}))
	assert.Equal(t, 1295, Encode(Combination{Orange, Orange, Orange, Orange}))
	assert.Equal(t, Combination{Yellow, Yellow, Yellow}, Decode(0, 3))
}

func TestCodec_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Decode(36, 2) })
	assert.Panics(t, func() { Decode(-1, 2) })
	assert.Panics(t, func() { SpaceSize(0) })
}

func TestCombination_NextMatchesIndexOrder(t *testing.T) {
	for n := 1; n <= 4; n++ {
		c := NewCombination(n)
		i := 0
		for {
			require.Equal(t, i, Encode(c), "n=%d", n)
			i++
			if !c.Next() {
				break
			}
		}
		assert.Equal(t, SpaceSize(n), i, "n=%d", n)
	}
}

func TestSpace_MatchesDecode(t *testing.T) {
	s := NewSpace(3)
	require.Equal(t, 216, s.Size())
	for i := 0; i < s.Size(); i++ {
		require.True(t, s.At(i).Equal(Decode(i, 3)), "index %d", i)
	}
}

func TestValidateLength(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		require.NoError(t, ValidateLength(n))
	}
	for _, n := range []int{0, 1, 6, 10} {
		require.ErrorIs(t, ValidateLength(n), ErrInvalidLength)
	}
}
