package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"example.com/mastermind/internal/mastermind"
)

var (
	ErrFeedbackTimeout = errors.New("no feedback received in time")
	ErrNotAwaiting     = errors.New("no guess is awaiting feedback")
	ErrDisconnected    = errors.New("client disconnected")
)

// connOracle is the mastermind.Oracle for a WebSocket client. Evaluate runs
// on the solver goroutine; deliver is called by the connection reader.
type connOracle struct {
	conn      *ClientConn
	remaining func() int
	timeout   time.Duration

	mu       sync.Mutex
	awaiting bool
	round    int
	replies  chan mastermind.Response
}

func newConnOracle(conn *ClientConn, timeout time.Duration) *connOracle {
	return &connOracle{
		conn:    conn,
		timeout: timeout,
		replies: make(chan mastermind.Response, 1),
	}
}

func (o *connOracle) Evaluate(ctx context.Context, guess mastermind.Combination) (mastermind.Response, error) {
	o.mu.Lock()
	o.round++
	o.awaiting = true
	round := o.round
	o.mu.Unlock()

	remaining := 0
	if o.remaining != nil {
		remaining = o.remaining()
	}
	if !o.conn.Send(TypeGuess, GuessPayload{Round: round, Guess: guess.String(), Remaining: remaining}) {
		return mastermind.Response{}, ErrDisconnected
	}

	var timeout <-chan time.Time
	if o.timeout > 0 {
		t := time.NewTimer(o.timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case resp := <-o.replies:
		return resp, nil
	case <-timeout:
		o.stopAwaiting()
		return mastermind.Response{}, ErrFeedbackTimeout
	case <-ctx.Done():
		o.stopAwaiting()
		return mastermind.Response{}, ctx.Err()
	}
}

// deliver hands the client's answer to the waiting Evaluate call.
func (o *connOracle) deliver(resp mastermind.Response) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.awaiting {
		return ErrNotAwaiting
	}
	o.awaiting = false
	o.replies <- resp
	return nil
}

func (o *connOracle) stopAwaiting() {
	o.mu.Lock()
	o.awaiting = false
	o.mu.Unlock()
}
