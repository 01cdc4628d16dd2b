// Package artifact renders telemetry records into the full and import-ready
// CSV files.
//
// The full artifact is for people: UTF-8 BOM, semicolon delimiter, every
// field. The import-ready artifact is for COPY: plain comma-separated CSV
// with the four columns of telemetry_legacy. Both files carry a single header
// line and share a UTC second-resolution stamp in their names.
package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// Writer writes both artifacts for a record into one directory.
type Writer struct {
	dir    string
	logger telemetry.Logger
	clock  func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock overrides the clock used for filename stamps.
func WithClock(clock func() time.Time) WriterOption {
	return func(w *Writer) {
		w.clock = clock
	}
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string, logger telemetry.Logger, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:    dir,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write creates the output directory if needed, writes the import-ready and
// the full artifact, and returns their handles. The first failure aborts the
// write and is returned wrapped with telemetry.ErrWriteFailed.
func (w *Writer) Write(rec telemetry.Record) (telemetry.Artifacts, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return telemetry.Artifacts{}, fmt.Errorf("create output directory %s: %w: %w", w.dir, telemetry.ErrWriteFailed, err)
	}

	stamp := w.clock()
	fullName := FullFileName(stamp)
	fullPath := filepath.Join(w.dir, fullName)
	importPath := filepath.Join(w.dir, ImportFileName(stamp))

	if err := writeFile(importPath, "", ImportDelimiter, ImportHeader, ImportRow(rec, fullName)); err != nil {
		return telemetry.Artifacts{}, err
	}
	if err := writeFile(fullPath, ByteOrderMark, FullDelimiter, FullHeader, FullRow(rec, fullName)); err != nil {
		return telemetry.Artifacts{}, err
	}

	w.logger.Info("generated %s", fullPath)
	w.logger.Info("generated %s (for DB COPY)", importPath)

	return telemetry.Artifacts{
		Full:   telemetry.ArtifactHandle{Path: fullPath, Role: telemetry.RoleFull},
		Import: telemetry.ArtifactHandle{Path: importPath, Role: telemetry.RoleImport},
	}, nil
}

func writeFile(path, preamble string, delimiter rune, header, row []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", path, telemetry.ErrWriteFailed, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w: %w", path, telemetry.ErrWriteFailed, cerr)
		}
	}()

	if err := Encode(f, preamble, delimiter, header, row); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, telemetry.ErrWriteFailed, err)
	}
	return nil
}

// Encode writes an optional preamble, the header and one row as CSV with
// CRLF line endings.
func Encode(out io.Writer, preamble string, delimiter rune, header, row []string) error {
	if preamble != "" {
		if _, err := io.WriteString(out, preamble); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(out)
	cw.Comma = delimiter
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

var _ telemetry.ArtifactWriter = (*Writer)(nil)
