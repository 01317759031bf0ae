package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

// Outcome is a finished solving session as stored in the history.
type Outcome struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner,omitempty"`
	Outcome    string    `json:"outcome"` // solved | exhausted
	Solution   string    `json:"solution,omitempty"`
	Turns      int       `json:"turns"`
	Guesses    []string  `json:"guesses"` // "raise:..-.+" per turn
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Summary aggregates all recorded outcomes.
type Summary struct {
	Solved       int     `json:"solved"`
	Exhausted    int     `json:"exhausted"`
	AverageTurns float64 `json:"averageTurns"` // over solved sessions
}

// Recorder receives finished sessions. *Store implements it.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// FromSession summarises a terminal session.
func FromSession(s *session.Session, owner string) Outcome {
	turns := s.Turns()
	o := Outcome{
		ID:         s.ID(),
		Owner:      owner,
		Outcome:    string(s.State()),
		Turns:      len(turns),
		Guesses:    make([]string, len(turns)),
		StartedAt:  s.StartedAt(),
		FinishedAt: s.FinishedAt(),
	}
	for i, t := range turns {
		o.Guesses[i] = t.Guess.String() + ":" + t.Code.String()
	}
	if w, ok := s.Solution(); ok {
		o.Solution = w.String()
	}
	return o
}

// Store is the SQLite-backed outcome history.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts a finished session. Recording the same ID twice is ignored.
func (s *Store) Record(ctx context.Context, o Outcome) error {
	if o.Outcome != string(session.Solved) && o.Outcome != string(session.Exhausted) {
		return fmt.Errorf("history: session %s is not finished (%s)", o.ID, o.Outcome)
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO outcomes
            (id, owner, outcome, solution, turns, guesses, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Owner, o.Outcome, o.Solution, o.Turns, strings.Join(o.Guesses, " "),
		o.StartedAt.UTC().Format(time.RFC3339Nano), o.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns up to limit outcomes, newest first. Default limit is 20.
// A non-empty owner restricts the result to that owner's sessions.
func (s *Store) Recent(ctx context.Context, owner string, limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, owner, outcome, solution, turns, guesses, started_at, finished_at
	          FROM outcomes`
	args := []any{}
	if owner != "" {
		query += ` WHERE owner=?`
		args = append(args, owner)
	}
	query += ` ORDER BY finished_at DESC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Outcome, 0, limit)
	for rows.Next() {
		var (
			o                 Outcome
			guesses           string
			started, finished string
		)
		if err := rows.Scan(&o.ID, &o.Owner, &o.Outcome, &o.Solution, &o.Turns, &guesses, &started, &finished); err != nil {
			return nil, err
		}
		o.Guesses = strings.Fields(guesses)
		o.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		o.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Stats aggregates every recorded outcome.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
        SELECT
            COALESCE(SUM(CASE WHEN outcome='solved' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN outcome='exhausted' THEN 1 ELSE 0 END), 0),
            COALESCE(AVG(CASE WHEN outcome='solved' THEN turns END), 0)
        FROM outcomes`,
	).Scan(&sum.Solved, &sum.Exhausted, &sum.AverageTurns)
	return sum, err
}
