// internal/daily/store.go
//
// SQLite-backed results for the daily challenge: one row per user per
// date, enforced by the schema's UNIQUE(user_id, date). Wins rank above
// losses on the leaderboard, then fewer mistakes, then speed.

package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily round.
type Result struct {
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	WordIndex  int    `json:"wordIndex"`
	Won        bool   `json:"won"`
	WrongCount int    `json:"wrongCount"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// Store reads and writes daily results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the user has a recorded result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished daily round. A second result for the
// same user and date is silently ignored; the first one stands.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, word_index, won, wrong_count, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`,
		r.UserID, r.Date, r.WordIndex, r.Won, r.WrongCount, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID     string `json:"userId"`
	Won        bool   `json:"won"`
	WrongCount int    `json:"wrongCount"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// Leaderboard returns the day's results, best first: wins before losses,
// then fewest wrong guesses, then fastest, then earliest submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, won, wrong_count, elapsed_ms
		   FROM daily_results
		  WHERE date=?
		  ORDER BY won DESC, wrong_count ASC, elapsed_ms ASC, created_at ASC
		  LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Won, &r.WrongCount, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
