// Package store persists the progression state to a single-row SQLite
// save slot. The row identity is fixed at 1; every save fully replaces
// it. Numeric fields are stored as exact decimal text and timestamps as
// RFC3339Nano, so a load reconstructs the state bit-for-bit.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"idler/internal/bignum"
	"idler/internal/game"
)

var (
	// ErrNoRecord is the normal absent outcome: fresh install or a save
	// slot that was erased. Not an error condition for callers.
	ErrNoRecord = errors.New("no saved game")

	// ErrCorrupt marks a save row that exists but does not decode. It is
	// a hard failure: callers must halt rather than overwrite a slot
	// that might still be recoverable by hand.
	ErrCorrupt = errors.New("corrupt save record")
)

// timeLayout round-trips time.Now() at full stored resolution.
const timeLayout = time.RFC3339Nano

// Store owns the SQLite handle for the save slot. All operations are
// serialized by a single mutex; the driver may call Save from a
// background command while the UI keeps running.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	numCtx *bignum.Context
}

// Open ensures the save directory exists, opens the database and runs
// the idempotent schema init. Any failure here means the backing
// location is unavailable and the caller should abort startup.
func Open(path string, numCtx *bignum.Context) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure save database: %w", err)
		}
	}

	s := &Store{db: db, path: path, numCtx: numCtx}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the singleton-row schema if absent. Safe to run on
// every open.
func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS game_state (
			id             INTEGER PRIMARY KEY DEFAULT 1,
			counter        TEXT NOT NULL,
			click_power    TEXT NOT NULL,
			auto_rate      TEXT NOT NULL,
			last_update    TEXT NOT NULL,
			last_save      TEXT NOT NULL,
			CHECK (id = 1)
		)`)
	if err != nil {
		return fmt.Errorf("initialize save schema: %w", err)
	}
	return nil
}

// Save replaces the singleton row with the given snapshot. The whole row
// is written in one statement, so a concurrent Load sees either the old
// record or the new one, never a mix.
func (s *Store) Save(rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO game_state
			(id, counter, click_power, auto_rate, last_update, last_save)
		VALUES (1, ?, ?, ?, ?, ?)`,
		rec.Counter.String(),
		rec.ClickPower.String(),
		rec.AutoRate.String(),
		rec.LastUpdate.Format(timeLayout),
		rec.LastSave.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("write save record: %w", err)
	}
	return nil
}

// Load reconstructs the saved state. Returns ErrNoRecord when the slot
// has never been written; a row that fails to decode wraps ErrCorrupt
// and is never reported as absent.
func (s *Store) Load() (*game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT counter, click_power, auto_rate, last_update, last_save
		FROM game_state WHERE id = 1`)

	var counter, clickPower, autoRate, lastUpdate, lastSave string
	if err := row.Scan(&counter, &clickPower, &autoRate, &lastUpdate, &lastSave); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("read save record: %w", err)
	}

	rec := game.Record{}
	var err error
	if rec.Counter, err = bignum.Parse(s.numCtx, counter); err != nil {
		return nil, fmt.Errorf("%w: counter %q: %v", ErrCorrupt, counter, err)
	}
	if rec.ClickPower, err = bignum.Parse(s.numCtx, clickPower); err != nil {
		return nil, fmt.Errorf("%w: click_power %q: %v", ErrCorrupt, clickPower, err)
	}
	if rec.AutoRate, err = bignum.Parse(s.numCtx, autoRate); err != nil {
		return nil, fmt.Errorf("%w: auto_rate %q: %v", ErrCorrupt, autoRate, err)
	}
	if rec.LastUpdate, err = time.Parse(timeLayout, lastUpdate); err != nil {
		return nil, fmt.Errorf("%w: last_update %q: %v", ErrCorrupt, lastUpdate, err)
	}
	if rec.LastSave, err = time.Parse(timeLayout, lastSave); err != nil {
		return nil, fmt.Errorf("%w: last_save %q: %v", ErrCorrupt, lastSave, err)
	}
	return rec.State(), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Erase deletes the backing store file and its WAL sidecars, returning
// the slot to the never-saved state. Returns ErrNoRecord when there is
// nothing to delete. The store must not be open on the same path.
func Erase(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNoRecord
		}
		return fmt.Errorf("stat save file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove save file: %w", err)
	}
	for _, sidecar := range []string{path + "-wal", path + "-shm"} {
		if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove save sidecar: %w", err)
		}
	}
	return nil
}
