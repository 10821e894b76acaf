package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docref/pkg/interfaces"
)

const (
	rootModule      = "docref"
	parserModule    = "docref.parser"
	validatorModule = "docref.validator"
	extractorModule = "docref.extractor"
	scopeModule     = "docref.scope"
)

const (
	fieldDocumentPath = "document_path"
	fieldTargetPath   = "target_path"
	fieldAnchor       = "anchor"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for document parsing.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// ValidatorLogger returns the logger namespace reserved for link validation.
func ValidatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validatorModule)
}

// ExtractorLogger returns the logger namespace reserved for content extraction.
func ExtractorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extractorModule)
}

// ScopeLogger returns the logger namespace reserved for file discovery.
func ScopeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scopeModule)
}

// WithLinkContext enriches the provided logger with common citation fields
// such as source path, target path, and anchor. Empty values are ignored.
func WithLinkContext(logger interfaces.Logger, source, target, anchor string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(target); trimmed != "" {
		fields[fieldTargetPath] = trimmed
	}
	if trimmed := strings.TrimSpace(anchor); trimmed != "" {
		fields[fieldAnchor] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
