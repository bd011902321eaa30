package mastermind

import (
	"context"
	"fmt"
	"log/slog"
)

// State is the solver's position in the round loop.
type State uint8

const (
	StateGuessing State = iota
	StateAwaitingFeedback
	StateSolved
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateGuessing:
		return "guessing"
	case StateAwaitingFeedback:
		return "awaiting_feedback"
	case StateSolved:
		return "solved"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further rounds can happen.
func (s State) Terminal() bool {
	return s == StateSolved || s == StateAborted
}

type Config struct {
	Length   int
	Strategy Strategy

	Book Book
	Log  *slog.Logger
}

// Round is one guess and the oracle's answer to it.
type Round struct {
	Guess     Combination `json:"guess"`
	Verdict   Verdict     `json:"verdict"`
	Feedback  Feedback    `json:"feedback"`
	Remaining int         `json:"remaining"`
}

type Report struct {
	Length   int         `json:"length"`
	Strategy Strategy    `json:"strategy"`
	State    State       `json:"state"`
	Rounds   []Round     `json:"rounds"`
	Solution Combination `json:"solution,omitempty"`
}

// Solver drives one game: it owns the selector (and so the candidate set)
// for the whole session.
type Solver struct {
	cfg    Config
	sel    Selector
	oracle Oracle
	log    *slog.Logger

	state  State
	rounds []Round
}

func NewSolver(cfg Config, oracle Oracle) (*Solver, error) {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	sel, err := NewSelector(SelectorConfig{
		Length:   cfg.Length,
		Strategy: cfg.Strategy,
		Book:     cfg.Book,
		Log:      cfg.Log,
	})
	if err != nil {
		return nil, err
	}
	return &Solver{
		cfg:    cfg,
		sel:    sel,
		oracle: oracle,
		log:    cfg.Log.With("strategy", string(cfg.Strategy), "length", cfg.Length),
		state:  StateGuessing,
	}, nil
}

func (s *Solver) State() State { return s.state }

// Remaining is the number of combinations the selector may still offer.
func (s *Solver) Remaining() int { return s.sel.Remaining() }

// Run plays rounds until the oracle reports a solution, aborts, or the
// selector runs out of guesses. The report is returned in every case.
func (s *Solver) Run(ctx context.Context) (Report, error) {
	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}

		s.state = StateGuessing
		guess, err := s.sel.Guess(ctx)
		if err != nil {
			return s.fail(err)
		}

		s.state = StateAwaitingFeedback
		resp, err := s.oracle.Evaluate(ctx, guess)
		if err != nil {
			return s.fail(fmt.Errorf("oracle: %w", err))
		}

		round := Round{Guess: guess, Verdict: resp.Verdict, Feedback: resp.Feedback}
		switch resp.Verdict {
		case VerdictSolved:
			round.Feedback = Feedback{Positions: s.cfg.Length}
			s.solve(round)

		case VerdictAborted:
			round.Feedback = Feedback{}
			s.rounds = append(s.rounds, round)
			return s.fail(ErrOracleAborted)

		case VerdictContinue:
			fb := resp.Feedback
			if !fb.Valid(s.cfg.Length) {
				return s.fail(fmt.Errorf("%w: %s for length %d", ErrInvalidFeedback, fb, s.cfg.Length))
			}
			if fb.Solved(s.cfg.Length) {
				round.Verdict = VerdictSolved
				s.solve(round)
				continue
			}
			if err := s.sel.Observe(ctx, guess, fb); err != nil {
				return s.fail(err)
			}
			round.Remaining = s.sel.Remaining()
			s.rounds = append(s.rounds, round)
			s.log.Debug("round finished",
				"round", len(s.rounds), "guess", guess.String(),
				"feedback", fb.String(), "remaining", round.Remaining)

		default:
			return s.fail(fmt.Errorf("%w: unknown verdict %d", ErrInvalidFeedback, resp.Verdict))
		}
	}
	return s.report(), nil
}

func (s *Solver) solve(round Round) {
	round.Remaining = 1
	s.rounds = append(s.rounds, round)
	s.state = StateSolved
	s.log.Debug("solved", "rounds", len(s.rounds), "solution", round.Guess.String())
}

func (s *Solver) fail(err error) (Report, error) {
	s.state = StateAborted
	s.log.Debug("solver stopped", "rounds", len(s.rounds), "err", err)
	return s.report(), err
}

func (s *Solver) report() Report {
	r := Report{
		Length:   s.cfg.Length,
		Strategy: s.cfg.Strategy,
		State:    s.state,
		Rounds:   append([]Round(nil), s.rounds...),
	}
	if s.state == StateSolved && len(s.rounds) > 0 {
		r.Solution = s.rounds[len(s.rounds)-1].Guess.Clone()
	}
	return r
}

// Solve plays secret automatically with the given strategy.
func Solve(ctx context.Context, cfg Config, secret Combination) (Report, error) {
	if len(secret) != cfg.Length {
		return Report{}, fmt.Errorf("%w: secret has %d colors, want %d",
			ErrLengthMismatch, len(secret), cfg.Length)
	}
	s, err := NewSolver(cfg, ScoringOracle{Secret: secret})
	if err != nil {
		return Report{}, err
	}
	return s.Run(ctx)
}
