package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/persistenceerror"

	_ "modernc.org/sqlite"
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

// KVStore keeps the document under one key of an SQLite key/value table,
// the way a browser keeps it under one localStorage key.
type KVStore struct {
	db     *sql.DB
	path   string
	key    string
	logger logging.Logger
}

// OpenKVStore opens (or creates) the database at path and ensures the schema exists.
func OpenKVStore(ctx context.Context, path, key string, logger logging.Logger) (*KVStore, error) {
	logger = logging.OrDefault(logger)
	location := path + "#" + key

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return nil, &persistenceerror.StoreError{Op: "open", Location: location, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &persistenceerror.StoreError{Op: "open", Location: location, Err: err}
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		_ = db.Close()
		return nil, &persistenceerror.StoreError{Op: "open", Location: location, Err: fmt.Errorf("create schema: %w", err)}
	}

	logger.Debug("Opened key/value store", logging.F(logging.FieldLocation, location))
	return &KVStore{db: db, path: path, key: key, logger: logger}, nil
}

// Read returns the value stored under the key, or ErrAbsent.
func (s *KVStore) Read(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAbsent
	}
	if err != nil {
		return "", s.storeError("read", err)
	}
	return value, nil
}

// Write stores text under the key, replacing any previous value in one statement.
func (s *KVStore) Write(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.key, text)
	if err != nil {
		return s.storeError("write", err)
	}
	s.logger.Debug("Wrote key/value entry",
		logging.F(logging.FieldLocation, s.Location()),
		logging.F(logging.FieldBytes, len(text)))
	return nil
}

// Remove deletes the key. Reading afterwards reports ErrAbsent.
func (s *KVStore) Remove(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.key); err != nil {
		return s.storeError("remove", err)
	}
	return nil
}

// Location returns the database path and key.
func (s *KVStore) Location() string {
	return s.path + "#" + s.key
}

// Close closes the database.
func (s *KVStore) Close() error {
	return s.db.Close()
}

func (s *KVStore) storeError(op string, err error) error {
	return &persistenceerror.StoreError{Op: op, Location: s.Location(), Err: err}
}
