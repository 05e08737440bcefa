// Package persistenceerror defines the failures the persistence layer can
// classify: a missing document, a store failure, and encode/decode failures.
package persistenceerror

import (
	"errors"
	"fmt"
)

// ErrAbsent reports that no document has been saved yet. It is the expected
// first-run condition, not a failure.
var ErrAbsent = errors.New("no stored document")

// Stage identifies the decode step that failed.
type Stage string

const (
	StageBase64 Stage = "base64"
	StageUTF8   Stage = "utf8"
	StageJSON   Stage = "json"
)

// StoreError represents an I/O failure of the underlying blob store
type StoreError struct {
	Op       string // "read", "write", "open", ...
	Location string // File path or key of the document
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError represents a stored text that could not be turned back into JSON
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at %s stage: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError represents a document that could not be serialized
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsAbsent reports whether err means that no document was stored.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrAbsent)
}

// IsStoreError reports whether err carries a *StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsDecodeError reports whether err carries a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
