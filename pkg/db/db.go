// Package db provides the persistence layer used by the web command. It wraps
// a SQLite database holding hydrated object snapshots, keyed by kind and id,
// and the last snapshot id seen for each playlist. Callers open a single DB
// with New and reuse it for all operations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"Music-Catalog-Go/pkg/catalog"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path, creating the schema when
// missing.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection.
	if path == ":memory:" {
		d.SetMaxOpenConns(1)
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS objects (kind TEXT NOT NULL, id TEXT NOT NULL, data TEXT NOT NULL, fetched_at TIMESTAMP NOT NULL, PRIMARY KEY (kind, id))`,
		`CREATE TABLE IF NOT EXISTS playlist_snapshots (playlist_id TEXT PRIMARY KEY, snapshot_id TEXT NOT NULL, updated_at TIMESTAMP NOT NULL)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// SaveObjects stores objs under kind, replacing earlier copies. Objects
// without an id are skipped.
func (db *DB) SaveObjects(ctx context.Context, kind catalog.Kind, objs []catalog.Object) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO objects(kind, id, data, fetched_at) VALUES(?, ?, ?, ?) ON CONFLICT(kind, id) DO UPDATE SET data=excluded.data, fetched_at=excluded.fetched_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, obj := range objs {
		id, _ := obj["id"].(string)
		if id == "" {
			continue
		}
		b, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", kind, id, err)
		}
		if _, err := stmt.ExecContext(ctx, string(kind), id, string(b), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadObjects returns the stored objects of kind for ids. Ids without a
// stored copy are absent from the map.
func (db *DB) LoadObjects(ctx context.Context, kind catalog.Kind, ids []string) (map[string]catalog.Object, error) {
	out := make(map[string]catalog.Object, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(kind))
	for _, id := range ids {
		args = append(args, id)
	}
	q := `SELECT id, data FROM objects WHERE kind=? AND id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var obj catalog.Object
		if err := json.Unmarshal([]byte(data), &obj); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", kind, id, err)
		}
		out[id] = obj
	}
	return out, rows.Err()
}

// DeleteObjects removes the stored copies of ids.
func (db *DB) DeleteObjects(ctx context.Context, kind catalog.Kind, ids []string) error {
	for _, id := range ids {
		if _, err := db.ExecContext(ctx, `DELETE FROM objects WHERE kind=? AND id=?`, string(kind), id); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot records the latest snapshot id returned for a playlist.
func (db *DB) SaveSnapshot(ctx context.Context, playlistID, snapshotID string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO playlist_snapshots(playlist_id, snapshot_id, updated_at) VALUES(?, ?, ?) ON CONFLICT(playlist_id) DO UPDATE SET snapshot_id=excluded.snapshot_id, updated_at=excluded.updated_at`, playlistID, snapshotID, time.Now().UTC())
	return err
}

// GetSnapshot returns the stored snapshot id for playlistID. sql.ErrNoRows
// is returned when none has been recorded.
func (db *DB) GetSnapshot(ctx context.Context, playlistID string) (string, error) {
	var snap string
	err := db.QueryRowContext(ctx, `SELECT snapshot_id FROM playlist_snapshots WHERE playlist_id=?`, playlistID).Scan(&snap)
	return snap, err
}
