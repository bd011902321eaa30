package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is the result of one finished solving session. Only outcomes are
// kept; a session cannot be resumed from a record.
type Record struct {
	ID        string
	UserID    string // empty for anonymous sessions
	Length    int
	Strategy  string
	Outcome   string // solved|aborted|exhausted|inconsistent
	Rounds    int
	Solution  string
	CreatedAt time.Time
}

// StrategySummary aggregates records per (strategy, length).
type StrategySummary struct {
	Strategy   string  `json:"strategy"`
	Length     int     `json:"length"`
	Solved     int     `json:"solved"`
	Failed     int     `json:"failed"`
	AvgRounds  float64 `json:"avgRounds"`
	BestRounds int     `json:"bestRounds"`
}

type RecordStore struct {
	db *pgxpool.Pool
}

func NewRecordStore(db *pgxpool.Pool) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) Add(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO game_records (id, user_id, length, strategy, outcome, rounds, solution)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, nullable(r.UserID), r.Length, r.Strategy, r.Outcome, r.Rounds, r.Solution)
	return err
}

// Summary returns per-strategy statistics for a user. Averages and best
// rounds only count solved games.
func (s *RecordStore) Summary(ctx context.Context, userID string) ([]StrategySummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT strategy, length,
		       COUNT(*) FILTER (WHERE outcome = 'solved'),
		       COUNT(*) FILTER (WHERE outcome <> 'solved'),
		       COALESCE(AVG(rounds) FILTER (WHERE outcome = 'solved'), 0)::float8,
		       COALESCE(MIN(rounds) FILTER (WHERE outcome = 'solved'), 0)
		FROM game_records
		WHERE user_id = $1
		GROUP BY strategy, length
		ORDER BY strategy, length
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StrategySummary
	for rows.Next() {
		var st StrategySummary
		if err := rows.Scan(&st.Strategy, &st.Length, &st.Solved, &st.Failed, &st.AvgRounds, &st.BestRounds); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *RecordStore) Recent(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, COALESCE(user_id, ''), length, strategy, outcome, rounds, solution, created_at
		FROM game_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.UserID, &r.Length, &r.Strategy, &r.Outcome, &r.Rounds, &r.Solution, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
