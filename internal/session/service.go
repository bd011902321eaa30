package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/mastermind/internal/mastermind"
	"example.com/mastermind/internal/store"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrBusy      = errors.New("session already has a client")
	ErrFinished  = errors.New("session already finished")
	ErrForbidden = errors.New("session belongs to another user")
)

// Status is the session lifecycle as seen by clients.
type Status string

const (
	StatusWaiting  Status = "waiting" // created, no client yet
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// RecordSink receives the result of every finished session.
type RecordSink interface {
	Add(ctx context.Context, r store.Record) error
}

type Config struct {
	Length          int
	Strategy        mastermind.Strategy
	FeedbackTimeout time.Duration // 0 => wait forever
	SessionTTL      time.Duration // unattached sessions older than this are swept
}

// Session is one remote solving game. The connected client plays the oracle.
type Session struct {
	ID        string
	UserID    string
	Length    int
	Strategy  mastermind.Strategy
	CreatedAt time.Time

	mu     sync.Mutex
	status Status
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) state() StatePayload {
	colors := make([]string, 0, mastermind.NumColors)
	for c := mastermind.Yellow; c.Valid(); c++ {
		colors = append(colors, c.String())
	}
	return StatePayload{
		SessionID: s.ID,
		Length:    s.Length,
		Strategy:  s.Strategy,
		Status:    s.Status(),
		CreatedAt: s.CreatedAt,
		Colors:    colors,
	}
}

// claim moves a waiting session to playing for userID.
func (s *Session) claim(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UserID != "" && s.UserID != userID {
		return ErrForbidden
	}
	switch s.status {
	case StatusPlaying:
		return ErrBusy
	case StatusFinished:
		return ErrFinished
	}
	s.status = StatusPlaying
	return nil
}

// release returns a claimed session to waiting when the client never got
// connected.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPlaying {
		s.status = StatusWaiting
	}
}

// Service keeps live sessions in memory. Sessions are never persisted; only
// their results go to the record sink.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg     Config
	book    mastermind.Book
	records RecordSink
	log     *slog.Logger
	now     func() time.Time
}

// NewService builds a session service. book and records may be nil.
func NewService(cfg Config, book mastermind.Book, records RecordSink, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		book:     book,
		records:  records,
		log:      log,
		now:      time.Now,
	}
}

// Create registers a new waiting session. Zero length or empty strategy take
// the configured defaults.
func (s *Service) Create(userID string, length int, strategy mastermind.Strategy) (*Session, error) {
	if length == 0 {
		length = s.cfg.Length
	}
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	if err := mastermind.ValidateLength(length); err != nil {
		return nil, err
	}
	if _, err := mastermind.ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Length:    length,
		Strategy:  strategy,
		CreatedAt: s.now(),
		status:    StatusWaiting,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Info("session created", "session", sess.ID, "length", length, "strategy", string(strategy))
	return sess, nil
}

func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Play runs the solver for sess against oracle until the game ends. The
// session is removed and its result recorded before Play returns.
func (s *Service) Play(ctx context.Context, sess *Session, oracle mastermind.Oracle) (mastermind.Report, error) {
	solver, err := mastermind.NewSolver(s.solverConfig(sess.Length, sess.Strategy), oracle)
	if err != nil {
		s.finish(sess, mastermind.Report{}, err)
		return mastermind.Report{}, err
	}
	if co, ok := oracle.(*connOracle); ok {
		co.remaining = solver.Remaining
	}

	report, err := solver.Run(ctx)
	s.finish(sess, report, err)
	return report, err
}

// Solve plays secret automatically without creating a live session.
func (s *Service) Solve(ctx context.Context, userID string, secret mastermind.Combination, strategy mastermind.Strategy) (mastermind.Report, error) {
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	if err := mastermind.ValidateLength(len(secret)); err != nil {
		return mastermind.Report{}, err
	}

	report, err := mastermind.Solve(ctx, s.solverConfig(len(secret), strategy), secret)
	if err != nil {
		return report, err
	}
	s.record(Outcome(nil), store.Record{
		ID:       uuid.NewString(),
		UserID:   userID,
		Length:   len(secret),
		Strategy: string(strategy),
		Rounds:   len(report.Rounds),
		Solution: report.Solution.String(),
	})
	return report, nil
}

// Sweep drops waiting sessions older than the configured TTL and returns how
// many were removed.
func (s *Service) Sweep() int {
	if s.cfg.SessionTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Status() == StatusWaiting && sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info("swept idle sessions", "count", n)
			}
		}
	}
}

func (s *Service) solverConfig(length int, strategy mastermind.Strategy) mastermind.Config {
	return mastermind.Config{
		Length:   length,
		Strategy: strategy,
		Book:     s.book,
		Log:      s.log,
	}
}

func (s *Service) finish(sess *Session, report mastermind.Report, err error) {
	sess.mu.Lock()
	sess.status = StatusFinished
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	outcome := Outcome(err)
	s.log.Info("session finished", "session", sess.ID, "outcome", outcome, "rounds", len(report.Rounds))

	solution := ""
	if report.State == mastermind.StateSolved {
		solution = report.Solution.String()
	}
	s.record(outcome, store.Record{
		ID:       sess.ID,
		UserID:   sess.UserID,
		Length:   sess.Length,
		Strategy: string(sess.Strategy),
		Rounds:   len(report.Rounds),
		Solution: solution,
	})
}

func (s *Service) record(outcome string, r store.Record) {
	if s.records == nil {
		return
	}
	r.Outcome = outcome

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.records.Add(ctx, r); err != nil {
		s.log.Error("record session result", "session", r.ID, "err", err)
	}
}

// Outcome names how a game ended for records and failed envelopes.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "solved"
	case errors.Is(err, mastermind.ErrOracleAborted):
		return "aborted"
	case errors.Is(err, mastermind.ErrExhausted):
		return "exhausted"
	case errors.Is(err, mastermind.ErrInconsistentFeedback):
		return "inconsistent"
	case errors.Is(err, mastermind.ErrInvalidFeedback):
		return "invalid_feedback"
	case errors.Is(err, ErrFeedbackTimeout):
		return "timeout"
	case errors.Is(err, ErrDisconnected), errors.Is(err, context.Canceled):
		return "disconnected"
	}
	return "error"
}
