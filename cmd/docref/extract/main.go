package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-docref/cmd/docref/internal/bootstrap"
	"github.com/goliatone/go-docref/internal/commands"
	docrefcmd "github.com/goliatone/go-docref/internal/commands/docref"
	"github.com/goliatone/go-docref/internal/report"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runExtract(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatalf("docref extract: %v", err)
	}
	os.Exit(code)
}

func runExtract(args []string, out io.Writer) (int, error) {
	fs := flag.NewFlagSet("docref-extract", flag.ExitOnError)
	dir := fs.String("dir", ".", "Directory bound for markdown discovery")
	patterns := fs.String("patterns", "*.md", "Comma separated glob patterns applied during discovery")
	recursive := fs.Bool("recursive", true, "Traverse sub-directories")
	fullFiles := fs.Bool("full-files", false, "Extract anchorless (full-file) links too")
	format := fs.String("format", "text", "Output format (text, json)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return 1, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Dir:              *dir,
		Patterns:         bootstrap.SplitPatterns(*patterns),
		Recursive:        *recursive,
		IncludeFullFiles: *fullFiles,
		OutputFormat:     *format,
		LogLevel:         *logLevel,
		LogFormat:        *logFormat,
	})
	if err != nil {
		return 1, fmt.Errorf("bootstrap module: %w", err)
	}

	var run *docrefcmd.ExtractionRun
	logger := commands.CommandLogger(module.Provider, "extract")
	handler := docrefcmd.NewExtractDirectoryHandler(module.Runner, logger, func(r *docrefcmd.ExtractionRun) {
		run = r
	})

	cmd := docrefcmd.ExtractDirectoryCommand{
		Directory:        *dir,
		Patterns:         bootstrap.SplitPatterns(*patterns),
		Recursive:        *recursive,
		IncludeFullFiles: *fullFiles,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return 1, fmt.Errorf("execute extract command: %w", err)
	}

	if run == nil {
		return 1, fmt.Errorf("extract command produced no result")
	}

	if strings.EqualFold(*format, "json") {
		if err := report.WriteJSON(out, run.Output); err != nil {
			return 1, err
		}
	} else {
		for _, file := range run.Validation.Files {
			fmt.Fprint(out, report.ValidationText(file.Path, file.Result))
		}
		fmt.Fprint(out, report.ExtractionText(run.Output))
	}

	if run.Validation.Summary.Errors > 0 {
		return 1, nil
	}
	return 0, nil
}
