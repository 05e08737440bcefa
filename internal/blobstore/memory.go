package blobstore

import (
	"context"
	"sync"

	"fjacquet/mes-comptes/internal/persistenceerror"
)

// MemoryStore keeps the document in process memory. Tests use its error
// fields to simulate a failing store.
type MemoryStore struct {
	mu      sync.Mutex
	text    string
	present bool

	// Error flags for testing error conditions
	ReadError  error
	WriteError error

	Reads  int
	Writes int
}

// NewMemoryStore returns an empty store: Read reports ErrAbsent.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store already holding text.
func NewMemoryStoreWith(text string) *MemoryStore {
	return &MemoryStore{text: text, present: true}
}

// Read returns the stored text.
func (m *MemoryStore) Read(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++

	if m.ReadError != nil {
		return "", &persistenceerror.StoreError{Op: "read", Location: m.Location(), Err: m.ReadError}
	}
	if err := ctx.Err(); err != nil {
		return "", &persistenceerror.StoreError{Op: "read", Location: m.Location(), Err: err}
	}
	if !m.present {
		return "", ErrAbsent
	}
	return m.text, nil
}

// Write replaces the stored text unless WriteError is set, in which case the
// previous text is kept.
func (m *MemoryStore) Write(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++

	if m.WriteError != nil {
		return &persistenceerror.StoreError{Op: "write", Location: m.Location(), Err: m.WriteError}
	}
	if err := ctx.Err(); err != nil {
		return &persistenceerror.StoreError{Op: "write", Location: m.Location(), Err: err}
	}
	m.text = text
	m.present = true
	return nil
}

// Text returns the stored text and whether anything was written.
func (m *MemoryStore) Text() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.present
}

// Location returns a fixed description.
func (m *MemoryStore) Location() string {
	return "memory"
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
