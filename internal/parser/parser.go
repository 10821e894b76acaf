package parser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Parser turns one markdown file into a Document: links, anchors, headings,
// and the flattened token tree. The parser is stateless so callers can reuse
// a single instance across files without additional locking.
type Parser struct {
	logger interfaces.Logger
}

// Option configures a Parser instance.
type Option func(*Parser)

// WithLogger injects the logger used for parse diagnostics. Defaults to a
// no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a document parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses a single markdown document. The path should be
// absolute; callers going through the cache get normalization for free.
func (p *Parser) ParseFile(ctx context.Context, absolutePath string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	source, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, fmt.Errorf("parser read %s: %w", absolutePath, err)
	}

	doc := buildDocument(absolutePath, source)

	p.logger.Debug("parser.file.parsed",
		"path", absolutePath,
		"links", len(doc.Links),
		"anchors", len(doc.Anchors),
		"headings", len(doc.Headings),
	)
	return doc, nil
}

// buildDocument assembles the Document from raw bytes: front matter metadata,
// token tree over the body, and a line scan for links and anchors.
func buildDocument(absolutePath string, source []byte) *Document {
	meta, body := parseFrontMatter(source)
	content := string(source)

	doc := &Document{
		FilePath: absolutePath,
		Content:  content,
		Meta:     meta,
		Tokens:   Tokenize(body),
		body:     string(body),
		lines:    splitLines(content),
	}

	// Front matter lines never define citations or anchors.
	skipLines := strings.Count(content[:len(content)-len(doc.body)], "\n")

	collector := newAnchorCollector()
	inFence := false
	for i, line := range doc.lines {
		if i < skipLines {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		doc.Links = append(doc.Links, extractLinks(line, i+1, absolutePath)...)
		collector.scanLine(line, i+1)
	}

	doc.Anchors = collector.anchors
	doc.Headings = collector.headings
	return doc
}

// parseFrontMatter extracts YAML front matter metadata and returns the
// remaining body. Malformed front matter is treated as body text rather than
// failing the parse; a citation run should not die on someone's stray
// delimiter.
func parseFrontMatter(source []byte) (Meta, []byte) {
	var envelope struct {
		Title string         `yaml:"title"`
		Tags  []string       `yaml:"tags"`
		Raw   map[string]any `yaml:",inline"`
	}

	body, err := frontmatter.Parse(bytes.NewReader(source), &envelope)
	if err != nil {
		return Meta{}, source
	}

	return Meta{
		Title: envelope.Title,
		Tags:  envelope.Tags,
		Raw:   envelope.Raw,
	}, body
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// NormalizePath resolves a path to its canonical absolute form; the cache
// keys entries by this value so aliases of one file share a single parse.
func NormalizePath(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("parser normalize %s: %w", path, err)
	}
	return filepath.Clean(absolute), nil
}
