// Package sqlite provides a SQLite-backed wedding details store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/goldencity/invite/internal/platform/storage/sqlitemigrate"
	"github.com/goldencity/invite/internal/wedding"
	"github.com/goldencity/invite/internal/wedding/storage"
	"github.com/goldencity/invite/internal/wedding/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// recordID is the fixed primary key of the singleton row. The schema's CHECK
// constraint keeps a second row from ever existing.
const recordID = 1

// Store persists the wedding details record in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite wedding store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the saved wedding details, or storage.ErrNotFound when nothing
// has been saved yet.
func (s *Store) Get(ctx context.Context) (wedding.Details, error) {
	if err := ctx.Err(); err != nil {
		return wedding.Details{}, err
	}
	if s == nil || s.sqlDB == nil {
		return wedding.Details{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT groom_name, bride_name, invitation_text, ceremonies
		   FROM wedding_details
		  WHERE id = ?`,
		recordID,
	)

	var details wedding.Details
	var ceremoniesJSON string
	err := row.Scan(
		&details.GroomName,
		&details.BrideName,
		&details.InvitationText,
		&ceremoniesJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return wedding.Details{}, storage.ErrNotFound
		}
		return wedding.Details{}, fmt.Errorf("get wedding details: %w", err)
	}

	if err := json.Unmarshal([]byte(ceremoniesJSON), &details.Ceremonies); err != nil {
		return wedding.Details{}, fmt.Errorf("decode ceremonies: %w", err)
	}
	if details.Ceremonies == nil {
		details.Ceremonies = []wedding.Ceremony{}
	}
	return details, nil
}

// Put replaces the saved record with the given details, inserting the row if
// it does not exist. Every field is written on every call; the last committed
// write wins.
func (s *Store) Put(ctx context.Context, details wedding.Details) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	ceremonies := details.Ceremonies
	if ceremonies == nil {
		ceremonies = []wedding.Ceremony{}
	}
	ceremoniesJSON, err := json.Marshal(ceremonies)
	if err != nil {
		return fmt.Errorf("encode ceremonies: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wedding_details (id, groom_name, bride_name, invitation_text, ceremonies, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   groom_name = excluded.groom_name,
		   bride_name = excluded.bride_name,
		   invitation_text = excluded.invitation_text,
		   ceremonies = excluded.ceremonies,
		   updated_at = excluded.updated_at`,
		recordID,
		details.GroomName,
		details.BrideName,
		details.InvitationText,
		string(ceremoniesJSON),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put wedding details: %w", err)
	}
	return nil
}
