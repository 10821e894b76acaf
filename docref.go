package docref

import (
	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/extractor"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/internal/parser"
	"github.com/goliatone/go-docref/internal/scope"
	"github.com/goliatone/go-docref/internal/validator"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Link exports the citation record for consumers of the docref package.
type Link = domain.Link

// Anchor exports the anchor record.
type Anchor = domain.Anchor

// Heading exports the heading record.
type Heading = domain.Heading

// ValidationVerdict exports the per-link verdict.
type ValidationVerdict = domain.ValidationVerdict

// ValidationResult exports the per-file validation outcome.
type ValidationResult = validator.Result

// AggregatedOutput exports the extraction payload.
type AggregatedOutput = domain.AggregatedOutput

// ExtractOptions exports the extraction eligibility switches.
type ExtractOptions = extractor.Options

// ParsedDocument exports the immutable parse result.
type ParsedDocument = parser.Document

// Module is the top level docref runtime façade wiring the
// parse→cache→validate→extract pipeline.
type Module struct {
	cfg        Config
	parser     *parser.Parser
	cache      *parser.Cache
	validator  *validator.Validator
	extractor  *extractor.Extractor
	discoverer *scope.Discoverer
	provider   interfaces.LoggerProvider
}

// Option overrides module wiring, primarily for tests and embedding hosts.
type Option func(*Module)

// WithLoggerProvider injects the logging provider used to scope module
// loggers. Defaults to no-op logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// New constructs a docref module from configuration. The parse cache is
// created per module, so one module equals one run of the at-most-once parse
// guarantee.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	m.parser = parser.New(parser.WithLogger(logging.ParserLogger(m.provider)))
	m.cache = parser.NewCache(m.parser, parser.WithCacheLogger(logging.ParserLogger(m.provider)))
	m.validator = validator.New(m.cache, validator.WithLogger(logging.ValidatorLogger(m.provider)))
	m.extractor = extractor.New(m.cache, extractor.WithLogger(logging.ExtractorLogger(m.provider)))

	discoverer, err := scope.New(scope.Config{
		BaseDir:   cfg.Scope.Dir,
		Patterns:  cfg.Scope.Patterns,
		Recursive: cfg.Scope.Recursive,
	}, scope.WithLogger(logging.ScopeLogger(m.provider)))
	if err != nil {
		return nil, err
	}
	m.discoverer = discoverer

	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Cache exposes the parse cache shared by the validator and extractor.
func (m *Module) Cache() *parser.Cache {
	return m.cache
}

// Validator returns the configured link validator.
func (m *Module) Validator() *validator.Validator {
	return m.validator
}

// Extractor returns the configured content extractor.
func (m *Module) Extractor() *extractor.Extractor {
	return m.extractor
}

// Scope returns the file discovery collaborator bound to the configured
// directory.
func (m *Module) Scope() *scope.Discoverer {
	return m.discoverer
}
