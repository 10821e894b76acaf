package bootstrap

import (
	"strings"

	"github.com/goliatone/go-docref"
	docrefcmd "github.com/goliatone/go-docref/internal/commands/docref"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/internal/logging/gologger"
	"github.com/goliatone/go-docref/pkg/interfaces"
)

// Options captures configuration for docref CLI bootstraps.
type Options struct {
	Dir              string
	Patterns         []string
	Recursive        bool
	IncludeFullFiles bool
	OutputFormat     string
	LogLevel         string
	LogFormat        string
	LogAddSource     bool
	LoggerProvider   interfaces.LoggerProvider
}

// Module wraps the docref module and the runner/logger the CLI tools drive.
type Module struct {
	Module   *docref.Module
	Runner   *docrefcmd.Runner
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// BuildModule constructs a docref module configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := docref.DefaultConfig()
	if trimmed := strings.TrimSpace(opts.Dir); trimmed != "" {
		cfg.Scope.Dir = trimmed
	}
	if len(opts.Patterns) > 0 {
		cfg.Scope.Patterns = cloneStrings(opts.Patterns)
	}
	cfg.Scope.Recursive = opts.Recursive
	cfg.Extractor.IncludeFullFiles = opts.IncludeFullFiles
	if trimmed := strings.TrimSpace(opts.OutputFormat); trimmed != "" {
		cfg.Output.Format = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}
	cfg.Logging.AddSource = opts.LogAddSource

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := opts.LoggerProvider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	module, err := docref.New(cfg, docref.WithLoggerProvider(provider))
	if err != nil {
		return nil, err
	}

	return &Module{
		Module:   module,
		Runner:   docrefcmd.NewRunner(provider),
		Provider: provider,
		Logger:   logging.ModuleLogger(provider, ""),
	}, nil
}

// SplitPatterns turns a comma separated flag value into a pattern list,
// dropping empty segments.
func SplitPatterns(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	patterns := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}

func cloneStrings(values []string) []string {
	return append([]string(nil), values...)
}
