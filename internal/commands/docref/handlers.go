package docrefcmd

import (
	"context"

	"github.com/goliatone/go-docref/internal/commands"
	"github.com/goliatone/go-docref/internal/logging"
	"github.com/goliatone/go-docref/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	validateOperation = "docref.validate_directory"
	extractOperation  = "docref.extract_directory"
)

var (
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[ExtractDirectoryCommand]  = (*ExtractDirectoryHandler)(nil)
)

// ValidateDirectoryHandler orchestrates directory validation via the shared
// command handler foundation. Results are delivered through the onComplete
// callback so callers decide how to render them.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied runner.
func NewValidateDirectoryHandler(runner *Runner, logger interfaces.Logger, onComplete func(*ValidationRun), opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		run, err := runner.ValidateDirectory(ctx, msg.Directory, msg.Patterns, msg.Recursive)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory": msg.Directory,
			"files":     len(run.Files),
			"total":     run.Summary.Total,
			"valid":     run.Summary.Valid,
			"warnings":  run.Summary.Warnings,
			"errors":    run.Summary.Errors,
		}).Info("docref.command.validate_directory.completed")

		if onComplete != nil {
			onComplete(run)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute conforms to command.Commander.
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExtractDirectoryHandler orchestrates validate-then-extract runs via the
// shared command handler foundation.
type ExtractDirectoryHandler struct {
	inner *commands.Handler[ExtractDirectoryCommand]
}

// NewExtractDirectoryHandler creates a handler bound to the supplied runner.
func NewExtractDirectoryHandler(runner *Runner, logger interfaces.Logger, onComplete func(*ExtractionRun), opts ...commands.HandlerOption[ExtractDirectoryCommand]) *ExtractDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExtractDirectoryCommand) error {
		run, err := runner.ExtractDirectory(ctx, msg.Directory, msg.Patterns, msg.Recursive, msg.IncludeFullFiles)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":    msg.Directory,
			"total_links":  run.Output.Stats.TotalLinks,
			"unique":       run.Output.Stats.UniqueContent,
			"duplicates":   run.Output.Stats.DuplicateContentDetected,
			"tokens_saved": run.Output.Stats.TokensSaved,
		}).Info("docref.command.extract_directory.completed")

		if onComplete != nil {
			onComplete(run)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExtractDirectoryCommand]{
		commands.WithLogger[ExtractDirectoryCommand](baseLogger),
		commands.WithOperation[ExtractDirectoryCommand](extractOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExtractDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute conforms to command.Commander.
func (h *ExtractDirectoryHandler) Execute(ctx context.Context, msg ExtractDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
