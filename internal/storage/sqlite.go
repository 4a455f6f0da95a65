// Package storage provides SQLite-based persistence for solve records and
// saved games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// ErrSlotNotFound is returned when a named save slot does not exist.
var ErrSlotNotFound = errors.New("storage: save slot not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SolveEntry is one completed level.
type SolveEntry struct {
	ID        int64
	PackID    string
	LevelID   string
	Player    string
	Moves     int
	Pushes    int
	CreatedAt time.Time
}

// LevelStats aggregates the solves of one level.
type LevelStats struct {
	PackID     string
	LevelID    string
	Solves     int
	BestMoves  int
	BestPushes int
	LastSolved time.Time
}

// SaveSlot is a named saved game. Data holds an encoded snapshot.
type SaveSlot struct {
	Name       string
	PackID     string
	LevelID    string
	LevelIndex int
	Data       []byte
	UpdatedAt  time.Time
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_level ON solves(pack_id, level_id);
		CREATE INDEX IF NOT EXISTS idx_solves_best ON solves(pack_id, level_id, moves, pushes);

		CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			pack_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// parseTime handles both time.Time and string values from the driver.
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

// RecordSolve stores a completed level.
// Returns the ID of the inserted record.
func (s *Store) RecordSolve(e SolveEntry) (int64, error) {
	if e.Moves < 0 || e.Pushes < 0 {
		return 0, fmt.Errorf("storage: invalid solve moves=%d pushes=%d", e.Moves, e.Pushes)
	}
	result, err := s.db.Exec(
		"INSERT INTO solves (pack_id, level_id, player, moves, pushes) VALUES (?, ?, ?, ?, ?)",
		e.PackID, e.LevelID, e.Player, e.Moves, e.Pushes,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestSolves retrieves the best N solves of a level, fewest moves first,
// then fewest pushes.
func (s *Store) BestSolves(packID, levelID string, limit int) ([]SolveEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, level_id, player, moves, pushes, created_at
		 FROM solves
		 WHERE pack_id = ? AND level_id = ?
		 ORDER BY moves ASC, pushes ASC, id ASC
		 LIMIT ?`,
		packID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var entries []SolveEntry
	for rows.Next() {
		var e SolveEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.LevelID, &e.Player, &e.Moves, &e.Pushes, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// LevelBest returns the best solve of a level, or nil if it was never solved.
func (s *Store) LevelBest(packID, levelID string) (*SolveEntry, error) {
	entries, err := s.BestSolves(packID, levelID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// PackStats retrieves per-level statistics for every solved level of a pack.
func (s *Store) PackStats(packID string) (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(moves), MIN(pushes), MAX(created_at)
		 FROM solves
		 WHERE pack_id = ?
		 GROUP BY level_id`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		st := LevelStats{PackID: packID}
		var lastSolved any
		if err := rows.Scan(&st.LevelID, &st.Solves, &st.BestMoves, &st.BestPushes, &lastSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSolved = parseTime(lastSolved)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearSolves deletes all solves of a pack.
func (s *Store) ClearSolves(packID string) error {
	_, err := s.db.Exec("DELETE FROM solves WHERE pack_id = ?", packID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

// PutSave creates or replaces a save slot.
func (s *Store) PutSave(slot SaveSlot) error {
	if slot.Name == "" {
		return fmt.Errorf("storage: save slot needs a name")
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (name, pack_id, level_id, level_index, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   pack_id = excluded.pack_id,
		   level_id = excluded.level_id,
		   level_index = excluded.level_index,
		   data = excluded.data,
		   updated_at = CURRENT_TIMESTAMP`,
		slot.Name, slot.PackID, slot.LevelID, slot.LevelIndex, slot.Data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save %q: %w", slot.Name, err)
	}
	return nil
}

// GetSave loads a save slot by name.
func (s *Store) GetSave(name string) (*SaveSlot, error) {
	var slot SaveSlot
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT name, pack_id, level_id, level_index, data, updated_at
		 FROM saves WHERE name = ?`,
		name,
	).Scan(&slot.Name, &slot.PackID, &slot.LevelID, &slot.LevelIndex, &slot.Data, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read save %q: %w", name, err)
	}
	slot.UpdatedAt = parseTime(updatedAt)
	return &slot, nil
}

// ListSaves returns all save slots without their data, newest first.
func (s *Store) ListSaves() ([]SaveSlot, error) {
	rows, err := s.db.Query(
		`SELECT name, pack_id, level_id, level_index, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var slot SaveSlot
		var updatedAt any
		if err := rows.Scan(&slot.Name, &slot.PackID, &slot.LevelID, &slot.LevelIndex, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		slot.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSave removes a save slot.
func (s *Store) DeleteSave(name string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, name)
	}
	return nil
}
