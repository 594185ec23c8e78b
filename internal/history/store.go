package history

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished round.
type Result struct {
	SessionID  string    `json:"sessionId"`
	Score      int       `json:"score"`
	Words      int       `json:"words"`
	MaxWords   int       `json:"maxWords"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Store keeps finished rounds for the life of the process.
type Store struct{ db *sql.DB }

// Open opens an in-memory history and applies migrations.
func Open() (*Store, error) {
	return openStore(MemoryDSN)
}

func openStore(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database; the history is gone afterwards.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts a finished round.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds(session_id, score, words, max_words, finished_at)
		 VALUES(?,?,?,?,?)`,
		r.SessionID, r.Score, r.Words, r.MaxWords, r.FinishedAt.UnixNano(),
	)
	return err
}

// Top returns the best rounds: highest score first, earlier finish on ties.
// A non-positive limit defaults to 10.
func (s *Store) Top(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, score, words, max_words, finished_at
		 FROM rounds
		 ORDER BY score DESC, finished_at ASC, id ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var finished int64
		if err := rows.Scan(&r.SessionID, &r.Score, &r.Words, &r.MaxWords, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt = time.Unix(0, finished).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns how many rounds were recorded.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM rounds`).Scan(&n)
	return n, err
}
