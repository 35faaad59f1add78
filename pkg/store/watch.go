package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventDocumentChanged indicates a single document was written or
	// removed outside this process.
	EventDocumentChanged EventType = iota

	// EventCatalogInvalidated signals a change that cannot be pinned to one
	// document (a new year folder, a watcher error). Callers reload
	// everything they hold.
	EventCatalogInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventDocumentChanged:
		return "document"
	case EventCatalogInvalidated:
		return "catalog"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type     EventType
	Document string
}

// Watch streams change events until ctx is cancelled. Slow consumers lose
// events rather than stall the watcher. The channel is closed once ctx is done
// or fsnotify gives up.
func (p *DiskvDocuments) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	logger := log.Default().WithPrefix("store")

	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	out := make(chan Event, 64)

	var (
		outMu  sync.Mutex
		closed bool
	)
	go func() {
		defer func() {
			outMu.Lock()
			closed = true
			close(out)
			outMu.Unlock()
		}()
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			outMu.Lock()
			defer outMu.Unlock()
			if closed {
				return
			}
			select {
			case out <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							if err := watcher.Add(dir); err != nil {
								logger.Warn("watch directory", "dir", dir, "err", err)
							} else {
								watched[dir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
						continue
					}
				}

				doc, ok := p.documentForPath(evt.Name)
				switch {
				case !ok:
					throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
				case doc != "":
					throttle.Enqueue(Event{Type: EventDocumentChanged, Document: doc}, send)
				}
			}
		}
	}()

	return out, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// documentForPath maps a file below the base path to its document name.
// Files that are not JSON documents (editor swap files, temporaries) map to
// "" with ok true so they are ignored; paths outside the base report false.
func (p *DiskvDocuments) documentForPath(path string) (string, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	name := filepath.ToSlash(rel)
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ".json") || strings.HasPrefix(base, ".") {
		return "", true
	}
	return name, true
}

// eventThrottle coalesces bursts of writes (a save touches up to fourteen
// documents) into one notification per document. A pending catalog
// invalidation swallows the document events queued with it.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	catalog bool
	docs    map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay: delay,
		docs:  make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ev.Type == EventCatalogInvalidated {
		t.catalog = true
	} else {
		t.docs[ev.Document] = struct{}{}
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	catalog, docs := t.catalog, t.docs
	t.catalog = false
	t.docs = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if catalog {
		send(Event{Type: EventCatalogInvalidated})
		return
	}
	names := make([]string, 0, len(docs))
	for doc := range docs {
		names = append(names, doc)
	}
	sort.Strings(names)
	for _, doc := range names {
		send(Event{Type: EventDocumentChanged, Document: doc})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
