package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PsqlStore)(nil)

const kvEntrySchema = `
CREATE TABLE IF NOT EXISTS kv_entry
(
    namespace  VARCHAR NOT NULL,
    key        VARCHAR NOT NULL,
    value      TEXT    NOT NULL,
    expires_at TIMESTAMPTZ,
    PRIMARY KEY (namespace, key)
);
CREATE INDEX IF NOT EXISTS ix_kv_entry_expires_at ON kv_entry (expires_at);
`

// PsqlStore keeps entries in a single kv_entry table, partitioned by
// namespace. Expired rows stay in the table until overwritten but are
// invisible to reads and listings.
type PsqlStore struct {
	db        *pgxpool.Pool
	namespace string
}

func NewPsqlStore(db *pgxpool.Pool, namespace string) *PsqlStore {
	return &PsqlStore{
		db:        db,
		namespace: namespace,
	}
}

func (s *PsqlStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, kvEntrySchema); err != nil {
		return fmt.Errorf("create kv_entry table: %w", err)
	}
	return nil
}

func (s *PsqlStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		ctx,
		`SELECT value FROM kv_entry
		WHERE namespace = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > now());`,
		s.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("psql get %s: %w", key, err)
	}
	return value, nil
}

func (s *PsqlStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := s.db.Exec(
		ctx,
		`INSERT INTO kv_entry (namespace, key, value, expires_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at;`,
		s.namespace, key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("psql put %s: %w", key, err)
	}
	return nil
}

func (s *PsqlStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(
		ctx,
		`DELETE FROM kv_entry WHERE namespace = $1 AND key = $2;`,
		s.namespace, key,
	); err != nil {
		return fmt.Errorf("psql delete %s: %w", key, err)
	}
	return nil
}

func (s *PsqlStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT key FROM kv_entry
		WHERE namespace = $1 AND (expires_at IS NULL OR expires_at > now());`,
		s.namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("psql list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("psql list keys: %w", err)
	}

	return keys, nil
}
