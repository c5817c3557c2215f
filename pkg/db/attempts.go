package db

import (
	"fmt"
	"time"
)

// Attempt is one row of the import log.
type Attempt struct {
	ID           int64     `json:"id" yaml:"id"`
	URL          string    `json:"url" yaml:"url"`
	Outcome      string    `json:"outcome" yaml:"outcome"`
	ErrorType    string    `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	AttemptedAt  time.Time `json:"attempted_at" yaml:"attempted_at"`
}

// RecordAttempt logs an import of url. errType and errMsg are empty on success.
func (db *DB) RecordAttempt(url, outcome, errType, errMsg string) error {
	_, err := db.Exec(`
		INSERT INTO import_attempts (url, outcome, error_type, error_message)
		VALUES (?, ?, ?, ?)
	`, url, outcome, NewNullString(errType), NewNullString(errMsg))
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// ListAttempts returns the attempts for url, oldest first. An empty url lists every attempt.
func (db *DB) ListAttempts(url string) ([]Attempt, error) {
	query := `SELECT attempt_id, url, outcome, COALESCE(error_type, ''), COALESCE(error_message, ''), attempted_at
		FROM import_attempts`
	var args []any
	if url != "" {
		query += " WHERE url = ?"
		args = append(args, url)
	}
	query += " ORDER BY attempt_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.URL, &a.Outcome, &a.ErrorType, &a.ErrorMessage, &a.AttemptedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
