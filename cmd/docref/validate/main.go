package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-docref/cmd/docref/internal/bootstrap"
	"github.com/goliatone/go-docref/internal/commands"
	docrefcmd "github.com/goliatone/go-docref/internal/commands/docref"
	"github.com/goliatone/go-docref/internal/report"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runValidate(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatalf("docref validate: %v", err)
	}
	os.Exit(code)
}

func runValidate(args []string, out io.Writer) (int, error) {
	fs := flag.NewFlagSet("docref-validate", flag.ExitOnError)
	dir := fs.String("dir", ".", "Directory bound for markdown discovery")
	patterns := fs.String("patterns", "*.md", "Comma separated glob patterns applied during discovery")
	recursive := fs.Bool("recursive", true, "Traverse sub-directories")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return 1, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Dir:       *dir,
		Patterns:  bootstrap.SplitPatterns(*patterns),
		Recursive: *recursive,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return 1, fmt.Errorf("bootstrap module: %w", err)
	}

	var run *docrefcmd.ValidationRun
	logger := commands.CommandLogger(module.Provider, "validate")
	handler := docrefcmd.NewValidateDirectoryHandler(module.Runner, logger, func(r *docrefcmd.ValidationRun) {
		run = r
	})

	cmd := docrefcmd.ValidateDirectoryCommand{
		Directory: *dir,
		Patterns:  bootstrap.SplitPatterns(*patterns),
		Recursive: *recursive,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return 1, fmt.Errorf("execute validate command: %w", err)
	}

	if run == nil {
		return 1, fmt.Errorf("validate command produced no result")
	}

	for _, file := range run.Files {
		fmt.Fprint(out, report.ValidationText(file.Path, file.Result))
	}
	fmt.Fprintf(out, "total: %d links, %d valid, %d warnings, %d errors\n",
		run.Summary.Total, run.Summary.Valid, run.Summary.Warnings, run.Summary.Errors)

	if run.Summary.Errors > 0 {
		return 1, nil
	}
	return 0, nil
}
