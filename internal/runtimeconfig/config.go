package runtimeconfig

import (
	"errors"
	"strings"
)

// ErrScopeDirRequired indicates the scope directory is missing.
var ErrScopeDirRequired = errors.New("docref config: scope directory is required")

// ErrLoggingLevelInvalid indicates an unsupported logging level.
var ErrLoggingLevelInvalid = errors.New("docref config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format.
var ErrLoggingFormatInvalid = errors.New("docref config: logging format is invalid")

// ErrOutputFormatInvalid indicates an unsupported report output format.
var ErrOutputFormatInvalid = errors.New("docref config: output format is invalid")

// Config aggregates the pipeline settings. Fields intentionally use simple
// types so host applications can extend them later.
type Config struct {
	Scope     ScopeConfig
	Extractor ExtractorConfig
	Output    OutputConfig
	Logging   LoggingConfig
}

// ScopeConfig bounds file discovery.
type ScopeConfig struct {
	// Dir is the directory bound resolved before the core pipeline begins.
	Dir string
	// Patterns limits discovered files; defaults to ["*.md"].
	Patterns []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// ExtractorConfig carries the flags the eligibility chain consumes.
type ExtractorConfig struct {
	// IncludeFullFiles enables extraction of anchorless (full-file) links.
	IncludeFullFiles bool
}

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string
}

// LoggingConfig mirrors the go-logger adapter options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings a fresh invocation starts from.
func DefaultConfig() Config {
	return Config{
		Scope: ScopeConfig{
			Dir:       ".",
			Patterns:  []string{"*.md"},
			Recursive: true,
		},
		Output: OutputConfig{Format: "text"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Scope.Dir) == "" {
		return ErrScopeDirRequired
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Output.Format)) {
	case "", "text", "json":
	default:
		return ErrOutputFormatInvalid
	}

	return nil
}
