// Package storage provides SQLite-based persistence for reveal session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only outcomes are stored; pyramid state is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is the outcome of one reveal, finished or abandoned.
type Session struct {
	ID          int64
	Source      string // Picture ID or image path
	Origin      string // "local" or "ssh:<user>"
	MinCellSize int
	MaxCellSize int
	TotalCells  int
	Splits      int
	UserSplits  int
	Completed   bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT 'local',
			min_cell_size INTEGER NOT NULL,
			max_cell_size INTEGER NOT NULL,
			total_cells INTEGER NOT NULL,
			splits INTEGER NOT NULL DEFAULT 0,
			user_splits INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_source ON sessions(source);
		CREATE INDEX IF NOT EXISTS idx_sessions_origin ON sessions(origin);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished or abandoned reveal.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.Source == "" {
		return 0, errors.New("storage: session has no source")
	}
	if sess.Origin == "" {
		sess.Origin = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (source, origin, min_cell_size, max_cell_size, total_cells, splits, user_splits, completed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Source, sess.Origin, sess.MinCellSize, sess.MaxCellSize, sess.TotalCells,
		sess.Splits, sess.UserSplits, sess.Completed, sess.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, source, origin, min_cell_size, max_cell_size, total_cells,
	splits, user_splits, completed, duration_ms, created_at`

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// SessionsBySource retrieves the most recent sessions for one source.
func (s *Store) SessionsBySource(source string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE source = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&sess.ID, &sess.Source, &sess.Origin, &sess.MinCellSize, &sess.MaxCellSize,
			&sess.TotalCells, &sess.Splits, &sess.UserSplits, &sess.Completed,
			&durationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Duration = time.Duration(durationMS) * time.Millisecond
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes the history of one source, or all history when
// source is empty.
func (s *Store) ClearSessions(source string) error {
	var err error
	if source == "" {
		_, err = s.db.Exec("DELETE FROM sessions")
	} else {
		_, err = s.db.Exec("DELETE FROM sessions WHERE source = ?", source)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// SourceStats contains aggregated statistics for a picture source.
type SourceStats struct {
	Source       string
	Sessions     int
	Completed    int
	TotalSplits  int64
	AvgUserShare float64 // Mean fraction of splits made by the user
	BestDuration time.Duration
	LastPlayed   time.Time
}

// GetSourceStats retrieves aggregated statistics for a specific source.
func (s *Store) GetSourceStats(source string) (*SourceStats, error) {
	stats := &SourceStats{Source: source}

	var bestMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(SUM(splits), 0),
		        COALESCE(AVG(CASE WHEN splits > 0 THEN CAST(user_splits AS REAL) / splits END), 0),
		        COALESCE(MIN(CASE WHEN completed = 1 THEN duration_ms END), 0)
		 FROM sessions WHERE source = ?`,
		source,
	).Scan(&stats.Sessions, &stats.Completed, &stats.TotalSplits, &stats.AvgUserShare, &bestMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get source stats: %w", err)
	}
	stats.BestDuration = time.Duration(bestMS) * time.Millisecond

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE source = ? ORDER BY id DESC LIMIT 1`,
		source,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Sources returns every source with recorded history, sorted by name.
func (s *Store) Sources() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT source FROM sessions ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("storage: cannot scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sources, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
