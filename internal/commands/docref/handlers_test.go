package docrefcmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirectoryCommandValidate(t *testing.T) {
	if err := (ValidateDirectoryCommand{}).Validate(); err == nil {
		t.Fatalf("empty directory must fail validation")
	}
	if err := (ValidateDirectoryCommand{Directory: "   "}).Validate(); err == nil {
		t.Fatalf("blank directory must fail validation")
	}
	if err := (ValidateDirectoryCommand{Directory: "./docs"}).Validate(); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}
}

func TestExtractDirectoryCommandValidate(t *testing.T) {
	if err := (ExtractDirectoryCommand{}).Validate(); err == nil {
		t.Fatalf("empty directory must fail validation")
	}
	if err := (ExtractDirectoryCommand{Directory: "docs", IncludeFullFiles: true}).Validate(); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}
}

func TestMessageTypes(t *testing.T) {
	if got := (ValidateDirectoryCommand{}).Type(); got != "docref.validate_directory" {
		t.Fatalf("validate message type mismatch: %q", got)
	}
	if got := (ExtractDirectoryCommand{}).Type(); got != "docref.extract_directory" {
		t.Fatalf("extract message type mismatch: %q", got)
	}
}

func TestValidateDirectoryHandlerExecute(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte("[ok](doc.md)\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var delivered *ValidationRun
	handler := NewValidateDirectoryHandler(NewRunner(nil), nil, func(run *ValidationRun) {
		delivered = run
	})

	err := handler.Execute(context.Background(), ValidateDirectoryCommand{Directory: dir, Recursive: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if delivered == nil {
		t.Fatalf("onComplete was not invoked")
	}
	if delivered.Summary.Total != 1 || delivered.Summary.Valid != 1 {
		t.Fatalf("delivered summary mismatch: %+v", delivered.Summary)
	}
}

func TestValidateDirectoryHandlerRejectsInvalidMessage(t *testing.T) {
	handler := NewValidateDirectoryHandler(NewRunner(nil), nil, nil)
	if err := handler.Execute(context.Background(), ValidateDirectoryCommand{}); err == nil {
		t.Fatalf("invalid message must fail before execution")
	}
}

func TestExtractDirectoryHandlerExecute(t *testing.T) {
	dir := t.TempDir()
	fixtures := map[string]string{
		"target.md": "# Topic\n\nDetail text.\n",
		"source.md": "[[target#Topic]]\n",
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}

	var delivered *ExtractionRun
	handler := NewExtractDirectoryHandler(NewRunner(nil), nil, func(run *ExtractionRun) {
		delivered = run
	})

	err := handler.Execute(context.Background(), ExtractDirectoryCommand{Directory: dir, Recursive: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if delivered == nil {
		t.Fatalf("onComplete was not invoked")
	}
	if delivered.Output.Stats.UniqueContent != 1 {
		t.Fatalf("extraction output mismatch: %+v", delivered.Output.Stats)
	}
}
