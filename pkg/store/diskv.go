package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvDocuments stores each document as a file under a base directory.
type DiskvDocuments struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv creates a diskv-backed store rooted at basePath.
func NewDiskv(basePath string) (*DiskvDocuments, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskvDocuments{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}, nil
}

// BasePath is the directory documents are written to.
func (p *DiskvDocuments) BasePath() string {
	return p.basePath
}

func (p *DiskvDocuments) ReadDocument(_ context.Context, name string) ([]byte, error) {
	key, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	// Read around the cache so edits reported by Watch are visible.
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *DiskvDocuments) WriteDocument(_ context.Context, name string, data []byte) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *DiskvDocuments) DeleteDocument(_ context.Context, name string) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

func (p *DiskvDocuments) ListDocuments(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		names = append(names, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op; diskv holds no open handles.
func (p *DiskvDocuments) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
