package mastermind

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Strategy names a guess-selection rule.
type Strategy string

const (
	StrategyExhaustive Strategy = "exhaustive"
	StrategyFiltered   Strategy = "filtered"
	StrategyMinimax    Strategy = "minimax"
)

// Strategies lists every strategy in menu order.
var Strategies = []Strategy{StrategyExhaustive, StrategyFiltered, StrategyMinimax}

// ParseStrategy accepts a strategy name or a menu letter: B (brute force),
// i (bitfield) or K (Knuth).
func ParseStrategy(s string) (Strategy, error) {
	switch strings.TrimSpace(s) {
	case "B":
		return StrategyExhaustive, nil
	case "i":
		return StrategyFiltered, nil
	case "K":
		return StrategyMinimax, nil
	}
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StrategyExhaustive, StrategyFiltered, StrategyMinimax:
		return st, nil
	case "bruteforce", "brute-force":
		return StrategyExhaustive, nil
	case "bitfield", "bitset":
		return StrategyFiltered, nil
	case "knuth":
		return StrategyMinimax, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Selector produces guesses for one solving session.
type Selector interface {
	// Guess returns the next combination to submit.
	Guess(ctx context.Context) (Combination, error)
	// Observe records the feedback received for guess.
	Observe(ctx context.Context, guess Combination, fb Feedback) error
	// Remaining is the number of combinations the selector may still offer.
	Remaining() int
}

type SelectorConfig struct {
	Length   int
	Strategy Strategy

	// Book and Log are used by the minimax strategy only; both are optional.
	Book Book
	Log  *slog.Logger
}

func NewSelector(cfg SelectorConfig) (Selector, error) {
	if cfg.Length < 1 || cfg.Length > MaxLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, cfg.Length)
	}
	switch cfg.Strategy {
	case StrategyExhaustive:
		return NewExhaustive(cfg.Length), nil
	case StrategyFiltered:
		return NewFiltered(cfg.Length), nil
	case StrategyMinimax:
		return NewMinimax(cfg.Length, cfg.Book, cfg.Log), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}

// Exhaustive offers every combination in odometer order and ignores feedback.
type Exhaustive struct {
	cursor  Combination
	started bool
	done    bool
	offered int
}

func NewExhaustive(n int) *Exhaustive {
	mustLength(n)
	return &Exhaustive{cursor: NewCombination(n)}
}

func (e *Exhaustive) Guess(ctx context.Context) (Combination, error) {
	if e.done {
		return nil, ErrExhausted
	}
	if !e.started {
		e.started = true
	} else if !e.cursor.Next() {
		e.done = true
		return nil, ErrExhausted
	}
	e.offered++
	return e.cursor.Clone(), nil
}

func (e *Exhaustive) Observe(ctx context.Context, guess Combination, fb Feedback) error {
	return nil
}

func (e *Exhaustive) Remaining() int {
	return SpaceSize(len(e.cursor)) - e.offered
}

// Filtered walks the same odometer order as Exhaustive but skips every
// combination already ruled out by feedback.
type Filtered struct {
	cands   *CandidateSet
	cursor  Combination
	started bool
	done    bool
}

func NewFiltered(n int) *Filtered {
	return &Filtered{cands: NewCandidateSet(n), cursor: NewCombination(n)}
}

func (f *Filtered) Guess(ctx context.Context) (Combination, error) {
	for !f.done {
		if !f.started {
			f.started = true
		} else if !f.cursor.Next() {
			f.done = true
			break
		}
		if f.cands.Contains(Encode(f.cursor)) {
			return f.cursor.Clone(), nil
		}
	}
	return nil, ErrExhausted
}

func (f *Filtered) Observe(ctx context.Context, guess Combination, fb Feedback) error {
	_, err := f.cands.Revalidate(guess, fb)
	return err
}

func (f *Filtered) Remaining() int {
	return f.cands.Count()
}

func (f *Filtered) Candidates() *CandidateSet {
	return f.cands
}
