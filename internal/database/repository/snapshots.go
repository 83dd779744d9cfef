package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SnapshotRepo handles key-value snapshots. It satisfies game.KV.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

// Get returns the value stored under key. ok is false when the key is absent.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	snap, err := r.Row(ctx, key)
	if err != nil || snap == nil {
		return nil, false, err
	}
	return snap.Value, true, nil
}

// Put overwrites the value stored under key.
func (r *SnapshotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO snapshots(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=excluded.updated_at;
	`, key, string(value))
	return err
}

// Row returns the full row for key, or nil when absent.
func (r *SnapshotRepo) Row(ctx context.Context, key string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM snapshots WHERE key = ?`, key)
	var (
		s     Snapshot
		value string
	)
	if err := row.Scan(&s.Key, &value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Value = []byte(value)
	return &s, nil
}

func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	return err
}
