// Package loader reads SQL files and directories and divides their contents
// into statements.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/leapstack-labs/sqldivider/pkg/divider"
	"golang.org/x/sync/errgroup"
)

// SQLExt is the extension of files picked up from directories.
const SQLExt = ".sql"

// ErrInputNotFound is returned when the input file or directory does not exist.
var ErrInputNotFound = errors.New("input not found")

// FileResult holds the statements divided from one file.
type FileResult struct {
	Path       string              `json:"path" yaml:"path"`
	Statements []divider.Statement `json:"statements" yaml:"statements"`
}

// Loader reads SQL input from the filesystem.
type Loader struct {
	logger      *slog.Logger
	parallelism int
	exclude     []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithParallelism bounds how many files of a directory are parsed at once.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(l *Loader) {
		l.parallelism = n
	}
}

// WithExclude skips the given directories when walking a directory input.
// Used to keep generated output out of the next run.
func WithExclude(dirs ...string) Option {
	return func(l *Loader) {
		l.exclude = append(l.exclude, AbsDirs(dirs...)...)
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.parallelism < 1 {
		l.parallelism = runtime.GOMAXPROCS(0)
	}
	return l
}

// Load divides path, which may be a single file or a directory.
func (l *Loader) Load(ctx context.Context, path string, m divider.TitleMatcher, opts divider.Options) ([]FileResult, error) {
	info, err := stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return l.FromDirectory(ctx, path, m, opts)
	}
	stmts, err := l.FromFile(path, m, opts)
	if err != nil {
		return nil, err
	}
	return []FileResult{{Path: path, Statements: stmts}}, nil
}

// FromFile reads the whole file at path and divides it.
func (l *Loader) FromFile(path string, m divider.TitleMatcher, opts divider.Options) ([]divider.Statement, error) {
	if _, err := stat(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := opts.Encoding.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	stmts := divider.FromLines(divider.SplitLines(text), m, opts)
	l.logger.Debug("divided file",
		slog.String("path", path),
		slog.String("encoding", opts.Encoding.String()),
		slog.Int("statements", len(stmts)))
	return stmts, nil
}

// FromDirectory divides every .sql file under dir, recursively. Files are
// parsed concurrently but results keep the lexical walk order.
func (l *Loader) FromDirectory(ctx context.Context, dir string, m divider.TitleMatcher, opts divider.Options) ([]FileResult, error) {
	files, err := FindSQLFiles(dir, l.exclude...)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stmts, err := l.FromFile(file, m, opts)
			if err != nil {
				return err
			}
			results[i] = FileResult{Path: file, Statements: stmts}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Debug("divided directory",
		slog.String("dir", dir),
		slog.Int("files", len(files)))
	return results, nil
}

// FindSQLFiles lists .sql files under dir in lexical order. The extension is
// matched case-insensitively. Hidden entries and the directories in exclude
// are skipped.
func FindSQLFiles(dir string, exclude ...string) ([]string, error) {
	info, err := stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	exclude = AbsDirs(exclude...)

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			if Hidden(d.Name()) || Excluded(path, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		// Skip hidden files
		if Hidden(d.Name()) {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), SQLExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return files, nil
}

// Statements flattens results into a single slice, in order.
func Statements(results []FileResult) []divider.Statement {
	var out []divider.Statement
	for _, r := range results {
		out = append(out, r.Statements...)
	}
	return out
}

// Hidden reports whether a file or directory name starts with a dot.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// AbsDirs returns dirs as cleaned absolute paths, dropping empty entries.
func AbsDirs(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if abs, err := filepath.Abs(d); err == nil {
			d = abs
		}
		out = append(out, filepath.Clean(d))
	}
	return out
}

// Excluded reports whether path is one of the absolute directories in exclude.
func Excluded(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, d := range exclude {
		if abs == d {
			return true
		}
	}
	return false
}

func stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info, nil
}
