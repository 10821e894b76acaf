package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/internal/parser"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Resolver is the cache boundary the validator consumes. The validator
// performs zero direct file I/O; every file access goes through
// ResolveParsedFile so each file is parsed at most once per run.
type Resolver interface {
	ResolveParsedFile(ctx context.Context, path string) (*parser.Document, error)
}

// Validator resolves every link's target file and anchor, attaching a verdict
// to each link and summarizing the counts.
type Validator struct {
	cache  Resolver
	logger interfaces.Logger
}

// Option configures a Validator instance.
type Option func(*Validator)

// WithLogger injects the logger used for validation diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New constructs a link validator on top of the parse cache.
func New(cache Resolver, opts ...Option) *Validator {
	v := &Validator{cache: cache, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Result is the outcome of validating one source file: its links, each
// carrying a verdict, plus the aggregate counts.
type Result struct {
	Links   []*domain.Link
	Summary domain.ValidationSummary
}

// ValidateFile parses the source document through the cache and attaches a
// verdict to every link in it. Links are validated sequentially in document
// order so error reporting stays stable and the number of concurrently open
// files stays bounded.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*Result, error) {
	doc, err := v.cache.ResolveParsedFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("validator resolve source %s: %w", path, err)
	}

	result := &Result{Links: doc.Links}
	for _, link := range doc.Links {
		verdict := v.validateLink(ctx, link)
		link.Validation = verdict

		result.Summary.Total++
		switch verdict.Status {
		case domain.StatusValid:
			result.Summary.Valid++
		case domain.StatusWarning:
			result.Summary.Warnings++
		case domain.StatusError:
			result.Summary.Errors++
		}
	}

	v.logger.Info("validator.file.completed",
		"path", path,
		"total", result.Summary.Total,
		"valid", result.Summary.Valid,
		"warnings", result.Summary.Warnings,
		"errors", result.Summary.Errors,
	)
	return result, nil
}

// validateLink walks the verdict state machine: unresolvable target file is a
// terminal error; a resolved anchorless link is terminally valid; otherwise
// the anchor decides.
func (v *Validator) validateLink(ctx context.Context, link *domain.Link) *domain.ValidationVerdict {
	target, err := v.cache.ResolveParsedFile(ctx, link.Target.Path.Absolute)
	if err != nil {
		return &domain.ValidationVerdict{
			Status: domain.StatusError,
			Error:  fmt.Sprintf("target file not resolvable: %s", link.Target.Path.Raw),
		}
	}

	if link.AnchorType == domain.AnchorNone {
		return &domain.ValidationVerdict{Status: domain.StatusValid}
	}

	return v.ValidateAnchorExists(target, link.Target.Anchor, link.AnchorType)
}

// ValidateAnchorExists is the single anchor-resolution primitive, reused for
// link-target anchors and standalone reference checks alike. Exact id match
// is valid; a normalized match (case, dashes, percent-encoding) is a warning
// carrying the real anchor id as suggestion; no match is an error.
func (v *Validator) ValidateAnchorExists(doc *parser.Document, anchor string, anchorType domain.AnchorType) *domain.ValidationVerdict {
	lookup := anchor
	if anchorType == domain.AnchorBlock {
		lookup = strings.TrimPrefix(lookup, "^")
	}

	if _, ok := doc.AnchorByID(lookup); ok {
		return &domain.ValidationVerdict{Status: domain.StatusValid}
	}

	normalized := NormalizeAnchor(lookup)
	for _, candidate := range doc.Anchors {
		if NormalizeAnchor(candidate.ID) == normalized {
			return &domain.ValidationVerdict{
				Status:     domain.StatusWarning,
				Error:      fmt.Sprintf("anchor %q not found, close match %q exists", anchor, candidate.ID),
				Suggestion: candidate.ID,
			}
		}
	}

	return &domain.ValidationVerdict{
		Status: domain.StatusError,
		Error:  fmt.Sprintf("anchor %q not found in %s", anchor, doc.FilePath),
	}
}
