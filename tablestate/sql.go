package tablestate

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLStore persists table state in a SQLite database, for installations
// that keep all durable client state in one file.
type SQLStore struct {
	db *sql.DB
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS table_state (
	table_id   TEXT NOT NULL,
	user_id    TEXT NOT NULL DEFAULT '',
	state      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	PRIMARY KEY (table_id, user_id)
);`

// OpenSQLStore opens (or creates) a SQLite-backed store at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the stored state for scope.
func (s *SQLStore) Load(scope Scope) (State, bool, error) {
	if s == nil || s.db == nil {
		return State{}, false, nil
	}
	var raw string
	err := s.db.QueryRow(
		`SELECT state FROM table_state WHERE table_id = ? AND user_id = ?`,
		scope.Table, scope.User,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("load state: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, false, fmt.Errorf("decode state: %w", err)
	}
	return state, true, nil
}

// Save upserts state for scope.
func (s *SQLStore) Save(scope Scope, state State) error {
	if s == nil || s.db == nil {
		return errors.New("state db not open")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO table_state (table_id, user_id, state) VALUES (?, ?, ?)
		 ON CONFLICT (table_id, user_id) DO UPDATE SET
			state = excluded.state,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		scope.Table, scope.User, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Clear removes the stored state for scope.
func (s *SQLStore) Clear(scope Scope) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(
		`DELETE FROM table_state WHERE table_id = ? AND user_id = ?`,
		scope.Table, scope.User,
	)
	return err
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLStore)(nil)
)
