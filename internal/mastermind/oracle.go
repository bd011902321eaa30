package mastermind

import "context"

// Verdict is the oracle's answer kind.
type Verdict uint8

const (
	VerdictContinue Verdict = iota
	VerdictSolved
	VerdictAborted
)

func (v Verdict) String() string {
	switch v {
	case VerdictContinue:
		return "continue"
	case VerdictSolved:
		return "solved"
	case VerdictAborted:
		return "aborted"
	}
	return "unknown"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Response is what an oracle returns for one guess. Feedback is meaningful
// only when Verdict is VerdictContinue.
type Response struct {
	Verdict  Verdict
	Feedback Feedback
}

func FeedbackResponse(fb Feedback) Response {
	return Response{Verdict: VerdictContinue, Feedback: fb}
}

var (
	SolvedResponse  = Response{Verdict: VerdictSolved}
	AbortedResponse = Response{Verdict: VerdictAborted}
)

// Oracle judges guesses against the hidden secret. Evaluate blocks until an
// answer is available.
type Oracle interface {
	Evaluate(ctx context.Context, guess Combination) (Response, error)
}

type OracleFunc func(ctx context.Context, guess Combination) (Response, error)

func (f OracleFunc) Evaluate(ctx context.Context, guess Combination) (Response, error) {
	return f(ctx, guess)
}

// ScoringOracle knows the secret and answers with Score.
type ScoringOracle struct {
	Secret Combination
}

func (o ScoringOracle) Evaluate(ctx context.Context, guess Combination) (Response, error) {
	fb, err := Score(guess, o.Secret)
	if err != nil {
		return Response{}, err
	}
	if fb.Solved(len(o.Secret)) {
		return SolvedResponse, nil
	}
	return FeedbackResponse(fb), nil
}
