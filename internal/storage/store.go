// Package storage persists session snapshots and event logs in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// ErrSlotNotFound is returned when loading or deleting a slot that holds nothing
var ErrSlotNotFound = errors.New("save slot not found")

// SlotInfo describes a saved snapshot without its payload
type SlotInfo struct {
	Slot      string    `db:"slot"`
	SessionID string    `db:"session_id"`
	Turn      int       `db:"turn"`
	SavedAt   time.Time `db:"saved_at"`
}

// LogEntry is one persisted event
type LogEntry struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	Type      string    `db:"type"`
	At        time.Time `db:"at"`
	Payload   string    `db:"payload"`
}

// Store wraps a SQLite connection
type Store struct {
	conn   *sqlx.DB
	logger zerolog.Logger
}

// Open opens or creates a SQLite database at the given path
func Open(path string, logger zerolog.Logger) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn, logger: logger.With().Str("component", "storage").Logger()}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		slot TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		data TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		type TEXT NOT NULL,
		at TIMESTAMP NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_event_log_session ON event_log(session_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save writes snapshot as JSON into slot, replacing what was there
func (s *Store) Save(ctx context.Context, slot, sessionID string, turn int, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (slot, session_id, turn, saved_at, data) VALUES (?, ?, ?, ?, ?)",
		slot, sessionID, turn, time.Now().UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}

	s.logger.Info().
		Str("slot", slot).
		Str("session_id", sessionID).
		Int("turn", turn).
		Int("bytes", len(data)).
		Msg("Snapshot saved")
	return nil
}

// Load decodes the snapshot in slot into dst
func (s *Store) Load(ctx context.Context, slot string, dst any) (SlotInfo, error) {
	var row struct {
		SlotInfo
		Data string `db:"data"`
	}
	err := s.conn.GetContext(ctx, &row,
		"SELECT slot, session_id, turn, saved_at, data FROM snapshots WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return SlotInfo{}, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	if err != nil {
		return SlotInfo{}, fmt.Errorf("load slot %q: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(row.Data), dst); err != nil {
		return SlotInfo{}, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	return row.SlotInfo, nil
}

// List returns every saved slot, most recent first
func (s *Store) List(ctx context.Context) ([]SlotInfo, error) {
	var slots []SlotInfo
	err := s.conn.SelectContext(ctx, &slots,
		"SELECT slot, session_id, turn, saved_at FROM snapshots ORDER BY saved_at DESC, slot")
	return slots, err
}

// Delete removes a slot
func (s *Store) Delete(ctx context.Context, slot string) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM snapshots WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	return nil
}

// AppendEvents writes events to the log in one transaction
func (s *Store) AppendEvents(ctx context.Context, evs []events.Event) error {
	if len(evs) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO event_log (session_id, type, at, payload) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range evs {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Type(), err)
		}
		if _, err := stmt.ExecContext(ctx, e.SessionID(), e.Type(), e.Timestamp().UTC(), string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SessionLog returns the logged events of a session in publish order, optionally
// filtered to one event type
func (s *Store) SessionLog(ctx context.Context, sessionID, eventType string, limit int) ([]LogEntry, error) {
	query := "SELECT id, session_id, type, at, payload FROM event_log WHERE session_id = ?"
	args := []any{sessionID}
	if eventType != "" {
		query += " AND type = ?"
		args = append(args, eventType)
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var entries []LogEntry
	err := s.conn.SelectContext(ctx, &entries, query, args...)
	return entries, err
}
