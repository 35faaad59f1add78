// Package dirty tracks documents whose in-memory state has not been written
// to persistent storage yet.
package dirty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sink receives documents on save.
type Sink interface {
	WriteDocument(ctx context.Context, name string, data []byte) error
}

// File is one document handed to a full save.
type File struct {
	Name string
	Data []byte
}

// Report summarises a save run.
type Report struct {
	Written []string
	Failed  map[string]error
}

// Service records the last payload marked for each file. Payloads are stored
// as JSON so later mutations of the caller's value cannot leak in.
type Service struct {
	mu    sync.RWMutex
	files map[string]json.RawMessage
}

// New returns an empty service.
func New() *Service {
	return &Service{files: make(map[string]json.RawMessage)}
}

// MarkDirty stores a deep copy of payload for fileID, replacing any previous
// payload.
func (s *Service) MarkDirty(fileID string, payload any) error {
	if fileID == "" {
		return errors.New("dirty: file identifier required")
	}
	var data []byte
	switch p := payload.(type) {
	case json.RawMessage:
		data = append([]byte(nil), p...)
	default:
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("dirty: marshal %s: %w", fileID, err)
		}
	}
	s.mu.Lock()
	s.files[fileID] = data
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the last payload marked for fileID.
func (s *Service) Get(fileID string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[fileID]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), data...), true
}

// Decode unmarshals the payload for fileID into v. It reports false when the
// file is clean.
func (s *Service) Decode(fileID string, v any) (bool, error) {
	data, ok := s.Get(fileID)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("dirty: decode %s: %w", fileID, err)
	}
	return true, nil
}

// Clear forgets fileID.
func (s *Service) Clear(fileID string) {
	s.mu.Lock()
	delete(s.files, fileID)
	s.mu.Unlock()
}

// Files lists dirty identifiers in sorted order.
func (s *Service) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for id := range s.files {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of dirty files.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// TriggerPartialSave writes every dirty file to sink. A file is cleared only
// after the sink accepted it and only if it was not re-marked meanwhile.
func (s *Service) TriggerPartialSave(ctx context.Context, sink Sink) (Report, error) {
	if sink == nil {
		return Report{}, errors.New("dirty: no sink configured")
	}
	s.mu.RLock()
	pending := make([]File, 0, len(s.files))
	for id, data := range s.files {
		pending = append(pending, File{Name: id, Data: data})
	}
	s.mu.RUnlock()
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })
	return s.write(ctx, sink, pending, false)
}

// TriggerFullYearSave writes the explicit document set of a year to sink. The
// set is authoritative, so every file written is cleared.
func (s *Service) TriggerFullYearSave(ctx context.Context, year int, files []File, sink Sink) (Report, error) {
	if sink == nil {
		return Report{}, errors.New("dirty: no sink configured")
	}
	if len(files) == 0 {
		return Report{}, fmt.Errorf("dirty: no files to save for %d", year)
	}
	return s.write(ctx, sink, files, true)
}

func (s *Service) write(ctx context.Context, sink Sink, files []File, force bool) (Report, error) {
	report := Report{Failed: map[string]error{}}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := sink.WriteDocument(ctx, f.Name, f.Data); err != nil {
			report.Failed[f.Name] = err
			continue
		}
		report.Written = append(report.Written, f.Name)
		if force {
			s.Clear(f.Name)
		} else {
			s.clearIfUnchanged(f.Name, f.Data)
		}
	}
	if len(report.Failed) > 0 {
		errs := make([]error, 0, len(report.Failed))
		for _, name := range sortedKeys(report.Failed) {
			errs = append(errs, fmt.Errorf("%s: %w", name, report.Failed[name]))
		}
		return report, fmt.Errorf("dirty: save failed: %w", errors.Join(errs...))
	}
	return report, nil
}

func (s *Service) clearIfUnchanged(fileID string, written []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.files[fileID]
	if !ok {
		return
	}
	if string(current) == string(written) {
		delete(s.files, fileID)
	}
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
