package quizforge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// CallRecord is one model interaction: the prompt sent, the reply or
// error received, and how long the call took
type CallRecord struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Prompt    string        `json:"prompt"`
	Response  string        `json:"response"`
	Status    string        `json:"status"` // "ok" or "error"
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// CallLog keeps a transcript of every model call in a SQLite file.
// It records transport traffic only; quizzes themselves never outlive
// their session.
type CallLog struct {
	db *sql.DB
}

// OpenCallLog opens (creating if needed) the transcript database
func OpenCallLog(path string) (*CallLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open call log: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping call log: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS calls (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		prompt TEXT NOT NULL,
		response TEXT,
		status TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create calls table: %w", err)
	}

	return &CallLog{db: db}, nil
}

// Close closes the underlying database
func (cl *CallLog) Close() error {
	return cl.db.Close()
}

// Record inserts one call transcript. A zero ID or timestamp is filled
// in here.
func (cl *CallLog) Record(rec CallRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := cl.db.Exec(
		"INSERT INTO calls (id, created_at, prompt, response, status, error, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.CreatedAt, rec.Prompt, rec.Response, rec.Status, rec.Error, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}
	return nil
}

// Recent returns the newest call transcripts, most recent first.
// A non-positive limit returns everything.
func (cl *CallLog) Recent(limit int) ([]CallRecord, error) {
	query := "SELECT id, created_at, prompt, response, status, error, duration_ms FROM calls ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := cl.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	defer rows.Close()

	var records []CallRecord
	for rows.Next() {
		var rec CallRecord
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Prompt, &rec.Response, &rec.Status, &rec.Error, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calls: %w", err)
	}

	return records, nil
}
