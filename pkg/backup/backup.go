// Package backup reads and writes the zip archives a year is exported to.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"

	"tableflip.dev/planner/pkg/model"
)

// MaxDocumentSize bounds a single archive member.
const MaxDocumentSize = 16 << 20

var fileNamePattern = regexp.MustCompile(`backup_(\d{4})(?: \(\d+\))?\.zip`)

// ErrNoYear is returned when an archive name does not carry a year.
var ErrNoYear = errors.New("backup: file name does not name a year")

// FileName is the archive name for year.
func FileName(year int) string {
	return fmt.Sprintf("backup_%04d.zip", year)
}

// YearFromFileName extracts the year from names such as "backup_2025.zip"
// or "backup_2025 (2).zip" produced by repeated browser downloads.
func YearFromFileName(name string) (int, error) {
	m := fileNamePattern.FindStringSubmatch(path.Base(name))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoYear, name)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoYear, name)
	}
	return year, nil
}

// DetectYear returns the year of the first yearly or monthly document in
// files.
func DetectYear(files []model.FileData) (int, error) {
	for _, f := range files {
		info := model.ClassifyFile(f.FilenameInZip)
		if info.Kind == model.KindYear || info.Kind == model.KindMonth {
			return info.Year, nil
		}
	}
	return 0, fmt.Errorf("%w: archive holds no year documents", ErrNoYear)
}

// Write stores files in a zip archive, sorted by name.
func Write(w io.Writer, files []model.FileData) error {
	sorted := append([]model.FileData(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FilenameInZip < sorted[j].FilenameInZip })

	zw := zip.NewWriter(w)
	for _, f := range sorted {
		name := strings.TrimPrefix(f.FilenameInZip, "/")
		if name == "" {
			zw.Close()
			return errors.New("backup: empty file name")
		}
		fw, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("backup: create %s: %w", name, err)
		}
		if _, err := fw.Write(indent(f.Data)); err != nil {
			zw.Close()
			return fmt.Errorf("backup: write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("backup: finish archive: %w", err)
	}
	return nil
}

// Read returns every JSON member of the archive. Directories and other
// members are skipped.
func Read(r io.ReaderAt, size int64) ([]model.FileData, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("backup: open archive: %w", err)
	}
	var out []model.FileData
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		if f.UncompressedSize64 > MaxDocumentSize {
			return nil, fmt.Errorf("backup: %s exceeds %d bytes", f.Name, MaxDocumentSize)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("backup: open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, MaxDocumentSize+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("backup: read %s: %w", f.Name, err)
		}
		out = append(out, model.FileData{FilenameInZip: f.Name, Data: data})
	}
	return out, nil
}

// ReadBytes is Read over an in-memory archive.
func ReadBytes(data []byte) ([]model.FileData, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

func indent(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	return buf.Bytes()
}

// ZipSink collects documents handed to it by a save and writes them as one
// archive on Flush.
type ZipSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewZipSink returns an empty sink.
func NewZipSink() *ZipSink {
	return &ZipSink{files: map[string][]byte{}}
}

// WriteDocument buffers a document.
func (z *ZipSink) WriteDocument(_ context.Context, name string, data []byte) error {
	if name == "" {
		return errors.New("backup: empty file name")
	}
	z.mu.Lock()
	z.files[name] = append([]byte(nil), data...)
	z.mu.Unlock()
	return nil
}

// Files returns the buffered documents.
func (z *ZipSink) Files() []model.FileData {
	z.mu.Lock()
	defer z.mu.Unlock()
	out := make([]model.FileData, 0, len(z.files))
	for name, data := range z.files {
		out = append(out, model.FileData{FilenameInZip: name, Data: append([]byte(nil), data...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilenameInZip < out[j].FilenameInZip })
	return out
}

// Flush writes the buffered documents to w.
func (z *ZipSink) Flush(w io.Writer) error {
	return Write(w, z.Files())
}
