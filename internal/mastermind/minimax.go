package mastermind

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Book caches minimax decisions. Keys describe the feedback history of a
// session, so a stored index is exactly the guess the search would pick.
type Book interface {
	Lookup(ctx context.Context, key string) (index int, ok bool, err error)
	Store(ctx context.Context, key string, index int) error
}

// SeedGuess is the opening guess: ceil(n/2) Yellow followed by floor(n/2) Blue.
func SeedGuess(n int) Combination {
	c := NewCombination(n)
	for i := (n + 1) / 2; i < n; i++ {
		c[i] = Blue
	}
	return c
}

// Minimax picks the guess whose worst feedback bucket leaves the fewest
// candidates (Knuth). Ties prefer a guess that is still a candidate, then the
// lower index.
type Minimax struct {
	n     int
	space *Space
	cands *CandidateSet

	hist []int
	pool []int
	key  strings.Builder

	observed int

	book Book
	log  *slog.Logger
}

func NewMinimax(n int, book Book, log *slog.Logger) *Minimax {
	if log == nil {
		log = slog.Default()
	}
	m := &Minimax{
		n:     n,
		space: NewSpace(n),
		cands: NewCandidateSet(n),
		hist:  make([]int, (n+1)*(n+1)),
		book:  book,
		log:   log,
	}
	m.key.WriteString("n" + strconv.Itoa(n))
	return m
}

func (m *Minimax) Guess(ctx context.Context) (Combination, error) {
	if m.cands.Count() == 0 {
		return nil, ErrInconsistentFeedback
	}
	if m.observed == 0 {
		return SeedGuess(m.n), nil
	}

	key := m.key.String()
	if m.book != nil {
		index, ok, err := m.book.Lookup(ctx, key)
		switch {
		case err != nil:
			m.log.Warn("minimax book lookup failed", "key", key, "err", err)
		case ok && index >= 0 && index < m.space.Size():
			return m.space.At(index).Clone(), nil
		}
	}

	best := m.best()
	if m.book != nil {
		if err := m.book.Store(ctx, key, best); err != nil {
			m.log.Warn("minimax book store failed", "key", key, "err", err)
		}
	}
	return m.space.At(best).Clone(), nil
}

func (m *Minimax) Observe(ctx context.Context, guess Combination, fb Feedback) error {
	if _, err := m.cands.Revalidate(guess, fb); err != nil {
		return err
	}
	m.observed++
	m.key.WriteString("|" + strconv.Itoa(Encode(guess)) + ":" +
		strconv.Itoa(fb.Positions) + "." + strconv.Itoa(fb.Colors))
	return nil
}

func (m *Minimax) Remaining() int {
	return m.cands.Count()
}

func (m *Minimax) Candidates() *CandidateSet {
	return m.cands
}

// WorstCase returns the size of the largest bucket the current candidates
// fall into when scored against guess.
func (m *Minimax) WorstCase(guess Combination) int {
	m.collect()
	return m.worstCase(guess, m.cands.Count())
}

// Gain is the number of candidates guess is guaranteed to eliminate.
func (m *Minimax) Gain(guess Combination) int {
	return m.cands.Count() - m.WorstCase(guess)
}

// best scans the whole space, not only the candidates.
func (m *Minimax) best() int {
	m.collect()
	count := m.cands.Count()

	bestIndex, bestGain, bestIsCand := -1, -1, false
	for g := 0; g < m.space.Size(); g++ {
		worst := m.worstCase(m.space.At(g), count-bestGain)
		gain := count - worst
		if gain < bestGain {
			continue
		}
		isCand := m.cands.Contains(g)
		if gain > bestGain || (isCand && !bestIsCand) {
			bestIndex, bestGain, bestIsCand = g, gain, isCand
		}
	}
	return bestIndex
}

// worstCase stops counting once a bucket exceeds limit; the result is then
// only known to be larger than limit.
func (m *Minimax) worstCase(guess Combination, limit int) int {
	clear(m.hist)
	worst := 0
	for _, s := range m.pool {
		b := score(guess, m.space.At(s)).bucket(m.n)
		m.hist[b]++
		if m.hist[b] > worst {
			worst = m.hist[b]
			if worst > limit {
				break
			}
		}
	}
	return worst
}

func (m *Minimax) collect() {
	m.pool = m.pool[:0]
	m.cands.Each(func(index int) {
		m.pool = append(m.pool, index)
	})
}
