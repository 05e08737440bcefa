// Package blobstore provides the single-document text stores the application
// persists its data in: a file next to the executable, one key of an SQLite
// key/value table, or process memory.
//
// A store only moves an opaque string. Read reports ErrAbsent when nothing
// was ever written, which callers treat as a first run rather than a failure;
// every other failure is a *persistenceerror.StoreError. Writes replace the
// whole document.
package blobstore

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/persistenceerror"
)

// ErrAbsent is returned by Read when no document has been saved yet.
var ErrAbsent = persistenceerror.ErrAbsent

// Store is a single-document text store.
type Store interface {
	// Read returns the stored text, or ErrAbsent.
	Read(ctx context.Context) (string, error)
	// Write replaces the stored text.
	Write(ctx context.Context, text string) error
	// Location describes where the document lives, for logs.
	Location() string
	// Close releases the resources held by the store.
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendKV     Backend = "kv"
	BackendMemory Backend = "memory"
)

// Default locations, shared with documents written by earlier versions.
const (
	DefaultFileName = "donnees-comptes.json"
	DefaultKVKey    = "mes_comptes_data_v1"
	DefaultKVFile   = "mes-comptes.db"
)

// Options describe which store to open and where.
type Options struct {
	Backend   Backend
	Directory string // Data directory; empty means the executable's directory
	FileName  string // File backend document name
	KVPath    string // KV backend database path; empty means Directory/DefaultKVFile
	KVKey     string // KV backend key
}

// New opens the store selected by opts. It is called once at start-up; the
// rest of the application only sees the Store interface.
func New(ctx context.Context, opts Options, logger logging.Logger) (Store, error) {
	logger = logging.OrDefault(logger)

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendFile, "":
		dir, err := resolveDirectory(opts.Directory)
		if err != nil {
			return nil, err
		}
		name := opts.FileName
		if name == "" {
			name = DefaultFileName
		}
		return NewFileStore(filepath.Join(dir, name), logger), nil

	case BackendKV:
		path := opts.KVPath
		if path == "" {
			dir, err := resolveDirectory(opts.Directory)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, DefaultKVFile)
		}
		key := opts.KVKey
		if key == "" {
			key = DefaultKVKey
		}
		return OpenKVStore(ctx, path, key, logger)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

func resolveDirectory(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return fileutils.ExecutableDir()
}
