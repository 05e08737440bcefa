package blobstore

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/persistenceerror"
)

// FileStore keeps the document in a single file.
type FileStore struct {
	path   string
	logger logging.Logger
}

// NewFileStore creates a store for the file at path. Nothing is touched on
// disk until the first Write.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logging.OrDefault(logger),
	}
}

// Read returns the file content, or ErrAbsent when the file does not exist.
func (s *FileStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", s.storeError("read", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrAbsent
		}
		return "", s.storeError("read", err)
	}

	s.logger.Debug("Read data file",
		logging.F(logging.FieldLocation, s.path),
		logging.F(logging.FieldBytes, len(data)))
	return string(data), nil
}

// Write replaces the file through a temporary file and a rename.
func (s *FileStore) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return s.storeError("write", err)
	}

	if err := fileutils.WriteFileAtomic(s.path, []byte(text), models.PermissionDataFile); err != nil {
		return s.storeError("write", err)
	}

	s.logger.Debug("Wrote data file",
		logging.F(logging.FieldLocation, s.path),
		logging.F(logging.FieldBytes, len(text)))
	return nil
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Close is a no-op: the file is opened per operation.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) storeError(op string, err error) error {
	return &persistenceerror.StoreError{Op: op, Location: s.path, Err: err}
}
