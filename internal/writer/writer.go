// Package writer saves divided statements as individual .sql files.
package writer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqldivider/pkg/divider"
)

// Errors returned by Write.
var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrEmptyTitle = errors.New("title is empty")
	// ErrUnsafeTitle is returned for titles that would place the file
	// outside the target directory.
	ErrUnsafeTitle = errors.New("title is not a plain file name")
)

// FileExt is appended to every statement title.
const FileExt = ".sql"

// Writer writes statements into a target directory, one file per title.
// A later statement with an already written title overwrites the earlier file.
type Writer struct {
	dir      string
	clean    bool
	encoding divider.Encoding
	logger   *slog.Logger
	written  map[string]int
}

// Option configures a Writer.
type Option func(*Writer)

// WithClean removes the target directory before the first write.
func WithClean(clean bool) Option {
	return func(w *Writer) {
		w.clean = clean
	}
}

// WithEncoding sets the encoding of written files. Defaults to UTF-8 without BOM.
func WithEncoding(enc divider.Encoding) Option {
	return func(w *Writer) {
		w.encoding = enc
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Writer for dir.
func New(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir:      dir,
		encoding: divider.EncodingUTF8,
		logger:   slog.New(slog.DiscardHandler),
		written:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the target directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Prepare creates the target directory, removing it first when cleaning.
func (w *Writer) Prepare() error {
	if w.clean {
		if err := os.RemoveAll(w.dir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", w.dir, err)
		}
		w.logger.Debug("cleaned output directory", slog.String("dir", w.dir))
	}
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.dir, err)
	}
	return nil
}

// FileName returns the file name used for a statement title.
func FileName(title string) string {
	return title + FileExt
}

// Write saves stmt as {title}.sql and returns the written path. The content
// always ends with exactly one newline.
func (w *Writer) Write(stmt divider.Statement) (string, error) {
	if stmt.Title == "" {
		return "", fmt.Errorf("%w: query %q", ErrEmptyTitle, firstLine(stmt.Query))
	}
	if strings.TrimSpace(stmt.Query) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyQuery, stmt.Title)
	}

	name := FileName(stmt.Title)
	if !safeName(stmt.Title, name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeTitle, stmt.Title)
	}
	if n := w.written[name]; n > 0 {
		w.logger.Warn("duplicate title overwrites earlier file",
			slog.String("file", name),
			slog.Int("occurrence", n+1))
	}

	content := strings.TrimRight(stmt.Query, "\r\n") + "\n"
	raw, err := w.encoding.Encode(content)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.written[name]++

	w.logger.Info("generated file", slog.String("file", name))
	return path, nil
}

// WriteAll writes each statement in order and stops at the first error.
func (w *Writer) WriteAll(stmts []divider.Statement) ([]string, error) {
	paths := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		path, err := w.Write(stmt)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Duplicates returns the file names written more than once, sorted.
func (w *Writer) Duplicates() []string {
	var out []string
	for name, n := range w.written {
		if n > 1 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// safeName reports whether name stays a direct child of the target directory.
func safeName(title, name string) bool {
	if strings.ContainsAny(title, `/\`) || strings.Contains(title, "..") {
		return false
	}
	return filepath.IsLocal(name) && filepath.Base(name) == name
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
