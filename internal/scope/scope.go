package scope

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Config bounds file discovery to a base directory and a set of glob
// patterns. An empty pattern list defaults to "*.md".
type Config struct {
	BaseDir   string
	Patterns  []string
	Recursive bool
}

// Discoverer walks the scope directory and produces the candidate markdown
// files fed into validation. Results are cached for the run; discovery
// happens before the core pipeline begins.
type Discoverer struct {
	baseDir   string
	patterns  []glob.Glob
	recursive bool
	logger    interfaces.Logger

	mu     sync.Mutex
	cached []string
}

// Option configures a Discoverer instance.
type Option func(*Discoverer)

// WithLogger injects the logger used for discovery diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New compiles the scope patterns and returns a discoverer rooted at the
// configured base directory.
func New(cfg Config, opts ...Option) (*Discoverer, error) {
	baseDir, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("scope base dir %s: %w", cfg.BaseDir, err)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"*.md"}
	}

	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		matcher, err := glob.Compile(trimmed, '/')
		if err != nil {
			return nil, fmt.Errorf("scope pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, matcher)
	}

	d := &Discoverer{
		baseDir:   filepath.Clean(baseDir),
		patterns:  compiled,
		recursive: cfg.Recursive,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Discover returns the absolute paths of every in-scope markdown file,
// sorted for stable processing order. The walk runs once per discoverer;
// later calls return the cached list.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil {
		return d.cached, nil
	}

	var files []string
	walkErr := filepath.WalkDir(d.baseDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			if !d.recursive && path != d.baseDir {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(d.baseDir, path)
		if err != nil {
			return err
		}
		if d.matches(filepath.ToSlash(rel), entry.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scope walk %s: %w", d.baseDir, walkErr)
	}

	sort.Strings(files)
	d.cached = files

	d.logger.Debug("scope.discovered", "base_dir", d.baseDir, "files", len(files))
	return files, nil
}

// matches accepts a file when any pattern matches either its base name or
// its slash-form path relative to the scope root.
func (d *Discoverer) matches(relPath, baseName string) bool {
	for _, matcher := range d.patterns {
		if matcher.Match(baseName) || matcher.Match(relPath) {
			return true
		}
	}
	return false
}
