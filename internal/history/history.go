// Package history archives closed sessions in a SQLite database so
// transcripts and summaries outlive the daemon process.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one archived session.
type Record struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	AudioPath      string    `json:"audio_path"`
	TranscriptPath string    `json:"transcript_path"`
	Transcript     string    `json:"transcript"`
	Summary        string    `json:"summary"`
	DurationSecs   float64   `json:"duration_secs"`
}

// Store is the session archive. The daemon treats every call as
// best-effort: archive failures are logged, never fatal to a session.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id              TEXT PRIMARY KEY,
	started_at      INTEGER NOT NULL,
	ended_at        INTEGER NOT NULL,
	audio_path      TEXT NOT NULL,
	transcript_path TEXT NOT NULL,
	transcript      TEXT NOT NULL DEFAULT '',
	summary         TEXT NOT NULL DEFAULT '',
	duration_secs   REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);
`

// Open opens or creates the archive at path with WAL journaling and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts one closed session. An existing row with the same id is
// replaced.
func (s *Store) Add(rec Record) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions
			(id, started_at, ended_at, audio_path, transcript_path, transcript, summary, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.StartedAt.Unix(), rec.EndedAt.Unix(), rec.AudioPath,
		rec.TranscriptPath, rec.Transcript, rec.Summary, rec.DurationSecs)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// AttachSummary stores a summary on the newest session whose transcript
// lives at transcriptPath. Summarizing a file the archive never saw is
// not an error; it reports false.
func (s *Store) AttachSummary(transcriptPath, summary string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE sessions SET summary = ?
		WHERE id = (
			SELECT id FROM sessions
			WHERE transcript_path = ?
			ORDER BY ended_at DESC, id DESC
			LIMIT 1
		)
	`, summary, transcriptPath)
	if err != nil {
		return false, fmt.Errorf("attach summary for %s: %w", transcriptPath, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("attach summary for %s: %w", transcriptPath, err)
	}
	return n > 0, nil
}

// Recent returns up to n sessions, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, ended_at, audio_path, transcript_path, transcript, summary, duration_secs
		FROM sessions
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var startedAt, endedAt int64
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.AudioPath,
			&rec.TranscriptPath, &rec.Transcript, &rec.Summary, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0)
		rec.EndedAt = time.Unix(endedAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}
