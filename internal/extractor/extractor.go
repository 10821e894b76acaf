package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/internal/parser"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Resolver is the cache boundary the extractor consumes for target documents.
type Resolver interface {
	ResolveParsedFile(ctx context.Context, path string) (*parser.Document, error)
}

// Extractor retrieves the referenced content of validated links, applying the
// eligibility chain and collapsing identical payloads. It performs no
// validation of its own; links arrive already carrying verdicts.
type Extractor struct {
	cache  Resolver
	chain  []Strategy
	logger interfaces.Logger
}

// Option configures an Extractor instance.
type Option func(*Extractor)

// WithLogger injects the logger used for extraction diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithChain overrides the eligibility strategy chain. Order is precedence.
func WithChain(chain []Strategy) Option {
	return func(e *Extractor) {
		if len(chain) > 0 {
			e.chain = chain
		}
	}
}

// New constructs a content extractor on top of the parse cache.
func New(cache Resolver, opts ...Option) *Extractor {
	e := &Extractor{
		cache:  cache,
		chain:  DefaultChain(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent processes the enriched links in input order and aggregates
// the deduplicated payload. Links are awaited sequentially so reporting order
// stays stable and the number of open file handles stays bounded; one link's
// failure never prevents processing of the rest.
func (e *Extractor) ExtractContent(ctx context.Context, links []*domain.Link, opts Options) (*domain.AggregatedOutput, error) {
	agg := newAggregator()
	results := make([]*domain.ExtractionResult, 0, len(links))

	// Documents resolved during this batch, so internal-scope links reuse the
	// already-resolved source document instead of re-fetching.
	resolved := map[string]*parser.Document{}

	for _, link := range links {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result := e.processLink(ctx, link, opts, resolved)
		results = append(results, result)
		if result.Status == domain.ExtractionSuccess {
			agg.add(link, result.Success.ExtractedContent)
		}
	}

	output := agg.finish(results)
	e.logger.Info("extractor.run.completed",
		"total", output.Stats.TotalLinks,
		"unique", output.Stats.UniqueContent,
		"duplicates", output.Stats.DuplicateContentDetected,
		"tokens_saved", output.Stats.TokensSaved,
	)
	return output, nil
}

func (e *Extractor) processLink(ctx context.Context, link *domain.Link, opts Options, resolved map[string]*parser.Document) *domain.ExtractionResult {
	// Validation errors short-circuit: the link never reaches extraction.
	if link.Validation == nil {
		return skipped(link, "link carries no validation verdict")
	}
	if link.Validation.Status != domain.StatusValid {
		reason := fmt.Sprintf("validation status %q", link.Validation.Status)
		if link.Validation.Error != "" {
			reason = fmt.Sprintf("validation status %q: %s", link.Validation.Status, link.Validation.Error)
		}
		return skipped(link, reason)
	}

	decision := Evaluate(e.chain, link, opts)
	if !decision.Eligible {
		return skipped(link, decision.Reason)
	}

	doc, err := e.resolveTarget(ctx, link, resolved)
	if err != nil {
		return failed(link, fmt.Sprintf("resolve target: %v", err))
	}

	content, err := e.retrieve(doc, link)
	if err != nil {
		// Extraction failure never aborts the batch.
		return failed(link, err.Error())
	}

	return &domain.ExtractionResult{
		SourceLink: link,
		Status:     domain.ExtractionSuccess,
		Success: &domain.SuccessDetails{
			DecisionReason:   decision.Reason,
			ExtractedContent: content,
		},
	}
}

func (e *Extractor) resolveTarget(ctx context.Context, link *domain.Link, resolved map[string]*parser.Document) (*parser.Document, error) {
	path := link.Target.Path.Absolute
	if link.Scope == domain.ScopeInternal {
		path = link.Source.Path.Absolute
	}

	if doc, ok := resolved[path]; ok {
		return doc, nil
	}

	doc, err := e.cache.ResolveParsedFile(ctx, path)
	if err != nil {
		return nil, err
	}
	resolved[path] = doc
	return doc, nil
}

// retrieve dispatches on the anchor type to the document's extraction
// primitives.
func (e *Extractor) retrieve(doc *parser.Document, link *domain.Link) (string, error) {
	switch link.AnchorType {
	case domain.AnchorHeader:
		return doc.ExtractSection(decodeAnchor(link.Target.Anchor))
	case domain.AnchorBlock:
		return doc.ExtractBlock(strings.TrimPrefix(link.Target.Anchor, "^"))
	default:
		return doc.ExtractFullContent(), nil
	}
}

func decodeAnchor(anchor string) string {
	decoded, err := url.PathUnescape(anchor)
	if err != nil {
		return anchor
	}
	return decoded
}

func skipped(link *domain.Link, reason string) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		SourceLink: link,
		Status:     domain.ExtractionSkipped,
		Failure:    &domain.FailureDetails{Reason: reason},
	}
}

func failed(link *domain.Link, reason string) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		SourceLink: link,
		Status:     domain.ExtractionError,
		Failure:    &domain.FailureDetails{Reason: reason},
	}
}
