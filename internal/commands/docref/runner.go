package docrefcmd

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/extractor"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/internal/parser"
	"github.com/goliatone/go-docref/internal/scope"
	"github.com/goliatone/go-docref/internal/validator"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// FileValidation pairs one source file with its validation outcome.
type FileValidation struct {
	Path   string
	Result *validator.Result
}

// ValidationRun is the outcome of validating every in-scope file.
type ValidationRun struct {
	Files   []FileValidation
	Summary domain.ValidationSummary
}

// ExtractionRun couples a validation pass with the aggregated extraction
// payload built from its links.
type ExtractionRun struct {
	Validation *ValidationRun
	Output     *domain.AggregatedOutput
}

// Runner orchestrates one pipeline invocation: discovery, validation, and
// optionally extraction. Each run builds a fresh parse cache, so the
// at-most-once parse guarantee is scoped to the run.
type Runner struct {
	provider interfaces.LoggerProvider
}

// NewRunner creates a runner using the supplied logger provider; a nil
// provider disables logging.
func NewRunner(provider interfaces.LoggerProvider) *Runner {
	return &Runner{provider: provider}
}

// ValidateDirectory validates every in-scope markdown file under dir.
func (r *Runner) ValidateDirectory(ctx context.Context, dir string, patterns []string, recursive bool) (*ValidationRun, error) {
	cache, _ := r.pipeline()
	return r.validate(ctx, cache, dir, patterns, recursive)
}

// ExtractDirectory validates every in-scope file and then extracts the
// content of every eligible link, sharing one parse cache across both phases.
func (r *Runner) ExtractDirectory(ctx context.Context, dir string, patterns []string, recursive, includeFullFiles bool) (*ExtractionRun, error) {
	cache, contentExtractor := r.pipeline()

	validation, err := r.validate(ctx, cache, dir, patterns, recursive)
	if err != nil {
		return nil, err
	}

	var links []*domain.Link
	for _, file := range validation.Files {
		links = append(links, file.Result.Links...)
	}

	output, err := contentExtractor.ExtractContent(ctx, links, extractor.Options{
		IncludeFullFiles: includeFullFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("extract directory %s: %w", dir, err)
	}

	return &ExtractionRun{Validation: validation, Output: output}, nil
}

func (r *Runner) pipeline() (*parser.Cache, *extractor.Extractor) {
	fileParser := parser.New(parser.WithLogger(logging.ParserLogger(r.provider)))
	cache := parser.NewCache(fileParser, parser.WithCacheLogger(logging.ParserLogger(r.provider)))
	contentExtractor := extractor.New(cache, extractor.WithLogger(logging.ExtractorLogger(r.provider)))
	return cache, contentExtractor
}

func (r *Runner) validate(ctx context.Context, cache *parser.Cache, dir string, patterns []string, recursive bool) (*ValidationRun, error) {
	discoverer, err := scope.New(scope.Config{
		BaseDir:   dir,
		Patterns:  patterns,
		Recursive: recursive,
	}, scope.WithLogger(logging.ScopeLogger(r.provider)))
	if err != nil {
		return nil, err
	}

	files, err := discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	linkValidator := validator.New(cache, validator.WithLogger(logging.ValidatorLogger(r.provider)))

	run := &ValidationRun{}
	for _, file := range files {
		result, err := linkValidator.ValidateFile(ctx, file)
		if err != nil {
			return nil, err
		}

		run.Files = append(run.Files, FileValidation{Path: file, Result: result})
		run.Summary.Total += result.Summary.Total
		run.Summary.Valid += result.Summary.Valid
		run.Summary.Warnings += result.Summary.Warnings
		run.Summary.Errors += result.Summary.Errors
	}
	return run, nil
}
