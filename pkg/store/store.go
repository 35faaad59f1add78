// Package store persists planner documents (named JSON blobs) and watches
// them for outside changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by ReadDocument for a document that was never
// written. Callers treat it as "nothing recorded yet".
var ErrNotFound = errors.New("store: document not found")

// Documents is the persistence contract for planner documents. Names are
// slash separated, e.g. "2025/2025-03.json".
type Documents interface {
	ReadDocument(ctx context.Context, name string) ([]byte, error)
	WriteDocument(ctx context.Context, name string, data []byte) error
	DeleteDocument(ctx context.Context, name string) error
	ListDocuments(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Watcher is implemented by backends that can stream outside changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFile = "planner.db"
)

// Open returns the backend selected by cfg. A nil cfg loads the default
// configuration.
func Open(cfg Config) (Documents, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(cfg.Backend()) {
	case "", BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return NewSQLite(filepath.Join(cfg.BasePath(), sqliteFile))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func cleanName(name string) (string, error) {
	name = strings.Trim(strings.TrimSpace(filepath.ToSlash(name)), "/")
	if name == "" {
		return "", errors.New("store: document name required")
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("store: invalid document name %q", name)
		}
	}
	return name, nil
}
