package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantalega/asta/internal/domain"
)

// PostgresStore keeps league snapshots in an append-only JSONB table so a
// draft can be resumed from another machine and every historical state is
// retained. Load always returns the latest row.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a PostgresStore on an open connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist yet.
// Idempotent; called once at startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS league_snapshots (
			id        BIGSERIAL PRIMARY KEY,
			kind      TEXT NOT NULL DEFAULT 'autosave',
			doc       JSONB NOT NULL,
			taken_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("postgres_store.EnsureSchema: %w", err)
	}
	return nil
}

// Save appends a new snapshot row with the current league state.
func (s *PostgresStore) Save(ctx context.Context, l *domain.League) error {
	return s.insert(ctx, l, "autosave")
}

// Backup appends a snapshot row tagged as a scheduled backup.
func (s *PostgresStore) Backup(ctx context.Context, l *domain.League) error {
	return s.insert(ctx, l, "backup")
}

func (s *PostgresStore) insert(ctx context.Context, l *domain.League, kind string) error {
	data, err := json.Marshal(encodeLeague(l))
	if err != nil {
		return fmt.Errorf("postgres_store: marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO league_snapshots (kind, doc) VALUES ($1, $2)`,
		kind, data)
	if err != nil {
		return fmt.Errorf("postgres_store: insert: %w", err)
	}
	return nil
}

// Load returns the league from the most recent snapshot row of any kind.
// Returns domain.ErrSnapshotNotFound when the table is empty.
func (s *PostgresStore) Load(ctx context.Context) (*domain.League, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT doc FROM league_snapshots ORDER BY id DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("postgres_store.Load: %w", err)
	}
	var doc snapshotDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("postgres_store.Load: unmarshal: %w", err)
	}
	return decodeLeague(doc), nil
}
