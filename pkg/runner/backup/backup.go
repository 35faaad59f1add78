// Package backup contains the export and import runners.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/backup"
	"tableflip.dev/planner/pkg/state"
)

// Export writes a year's documents to a zip archive.
type Export struct {
	Store *state.Store
	// Year defaults to the resident year.
	Year int
	// Path is a file or directory; a directory receives backup_{year}.zip.
	Path string
	Out  io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Store == nil {
		return errors.New("export: no state store")
	}
	year := e.Year
	if year == 0 {
		year = e.Store.Year()
	}
	files, err := e.Store.GetSpecificYearDataForSave(ctx, year)
	if err != nil {
		return err
	}

	path := e.Path
	if path == "" {
		path = "."
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, backup.FileName(year))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := backup.Write(f, files); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(out(e.Out), "exported %d documents to %s\n", len(files), path)
	return nil
}

// Import replaces a year with the contents of a zip archive. The year comes
// from Year, the archive name, or the documents inside, in that order.
type Import struct {
	Store *state.Store
	Year  int
	Path  string
	Out   io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Store == nil {
		return errors.New("import: no state store")
	}
	data, err := os.ReadFile(i.Path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	files, err := backup.ReadBytes(data)
	if err != nil {
		return err
	}
	year := i.Year
	if year == 0 {
		if year, err = backup.YearFromFileName(i.Path); err != nil {
			if year, err = backup.DetectYear(files); err != nil {
				return err
			}
		}
	}
	if err := i.Store.LoadYearFromBackup(year, files); err != nil {
		return err
	}
	_, _ = color.New(color.Bold).Fprintf(out(i.Out), "restored %d from %s\n", year, filepath.Base(i.Path))
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
