// Package storage persists analysis history and caches results in a local
// SQLite database. The pure-Go driver keeps the binary free of C
// dependencies for this layer.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	deterr "aidetect/internal/errors"
)

// DB wraps the SQLite handle with the query helpers the rest of the host
// uses.
type DB struct {
	conn *sql.DB
	log  zerolog.Logger
}

// Open creates or opens the database under dir and applies the schema.
func Open(dir string, log zerolog.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, deterr.New(deterr.StorageFailure, "create storage directory", err)
	}

	path := filepath.Join(dir, "aidetect.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "open database", err)
	}

	// Single writer; WAL keeps readers unblocked during inserts.
	conn.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, deterr.New(deterr.StorageFailure, fmt.Sprintf("apply %s", p), err)
		}
	}

	db := &DB{conn: conn, log: log}
	if err := db.applySchema(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("storage opened")
	return db, nil
}

// Close releases the underlying handle.
func (db *DB) Close() error {
	return db.conn.Close()
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error or panic.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return deterr.New(deterr.StorageFailure, "begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return deterr.New(deterr.StorageFailure, "commit transaction", err)
	}
	return nil
}
