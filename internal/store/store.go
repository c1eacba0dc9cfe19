// Package store persists opaque records by key. Callers own the encoding;
// backends only move bytes.
package store

import (
	"context"
	"fmt"
	"strings"
)

// RecordStore is a key/value store of serialised records.
type RecordStore interface {
	// Load returns the value stored under key. ok is false when nothing is stored.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names a RecordStore implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Open creates the store for backend. path is a directory for the file
// backend and a database file for sqlite; the memory backend ignores it.
func Open(backend Backend, path string) (RecordStore, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendFile, "":
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("store key cannot be empty")
	}
	return nil
}
