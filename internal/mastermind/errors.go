package mastermind

import "errors"

var (
	// ErrLengthMismatch is returned when a guess and a secret differ in length.
	ErrLengthMismatch = errors.New("combination length mismatch")

	// ErrOracleAborted means the oracle could not produce a response.
	ErrOracleAborted = errors.New("oracle aborted")

	// ErrExhausted means enumeration reached the end of the space without a solution.
	// The oracle was inconsistent or the secret is not representable.
	ErrExhausted = errors.New("combination space exhausted without a solution")

	// ErrInconsistentFeedback means no candidate is compatible with the feedback received.
	ErrInconsistentFeedback = errors.New("no candidate is consistent with the feedback")

	ErrInvalidFeedback = errors.New("invalid feedback")
	ErrUnknownColor    = errors.New("unknown color")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidLength   = errors.New("invalid combination length")
)
