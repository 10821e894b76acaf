package parser

import (
	"context"
	"sync"

	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// FileParser is the single-method contract the cache delegates to. Any
// component honoring it is substitutable, which is how tests count parse
// invocations.
type FileParser interface {
	ParseFile(ctx context.Context, absolutePath string) (*Document, error)
}

// Cache guarantees each normalized path is parsed at most once per run, even
// under concurrent requests. The in-flight entry is stored before the parse
// settles, inside the same critical section as the lookup, so a concurrent
// caller for the same path always finds and shares it instead of triggering a
// second parse. Failed parses evict their entry; a later call retries instead
// of seeing a poisoned result.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	parser  FileParser
	logger  interfaces.Logger
}

type cacheEntry struct {
	done chan struct{}
	doc  *Document
	err  error
}

// CacheOption configures a Cache instance.
type CacheOption func(*Cache)

// WithCacheLogger injects the logger used for cache diagnostics.
func WithCacheLogger(logger interfaces.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache wraps a file parser with the at-most-once-per-run guarantee.
func NewCache(fileParser FileParser, opts ...CacheOption) *Cache {
	c := &Cache{
		entries: map[string]*cacheEntry{},
		parser:  fileParser,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveParsedFile returns the parsed document for path, parsing at most
// once per run. Every concurrent caller for the same path receives the
// identical *Document (or the identical error while the failed entry is
// evicted for retry).
func (c *Cache) ResolveParsedFile(ctx context.Context, path string) (*Document, error) {
	normalized, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if entry, ok := c.entries[normalized]; ok {
		c.mu.Unlock()
		c.logger.Trace("cache.hit", "path", normalized)
		return entry.wait(ctx)
	}

	entry := &cacheEntry{done: make(chan struct{})}
	c.entries[normalized] = entry
	c.mu.Unlock()

	doc, parseErr := c.parser.ParseFile(ctx, normalized)
	if parseErr != nil {
		c.mu.Lock()
		delete(c.entries, normalized)
		c.mu.Unlock()
		entry.err = parseErr
		c.logger.Debug("cache.parse.failed", "path", normalized, "error", parseErr)
	} else {
		entry.doc = doc
	}
	close(entry.done)

	return entry.wait(ctx)
}

// Len reports how many documents are currently cached (in flight or settled).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// wait blocks until the entry settles or the caller's context ends. A settled
// entry propagates the identical document or error to every waiter.
func (e *cacheEntry) wait(ctx context.Context) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
		return e.doc, e.err
	}
}
