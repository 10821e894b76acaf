package docrefcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateDirectoryMessageType = "docref.validate_directory"
	extractDirectoryMessageType  = "docref.extract_directory"
)

// ValidateDirectoryCommand triggers link validation for every in-scope
// markdown file under Directory.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to validate.
	Directory string `json:"directory"`
	// Patterns limits discovered files; defaults to ["*.md"].
	Patterns []string `json:"patterns,omitempty"`
	// Recursive controls whether sub-directories are traversed.
	Recursive bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("docref.validate_directory.directory_required", "directory is required"))),
	)
}

// ExtractDirectoryCommand runs validation and then extracts the referenced
// content of every eligible link under Directory.
type ExtractDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to process.
	Directory string `json:"directory"`
	// Patterns limits discovered files; defaults to ["*.md"].
	Patterns []string `json:"patterns,omitempty"`
	// Recursive controls whether sub-directories are traversed.
	Recursive bool `json:"recursive,omitempty"`
	// IncludeFullFiles enables extraction of anchorless (full-file) links.
	IncludeFullFiles bool `json:"include_full_files,omitempty"`
}

// Type implements command.Message.
func (ExtractDirectoryCommand) Type() string { return extractDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ExtractDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("docref.extract_directory.directory_required", "directory is required"))),
	)
}

func requireNonBlank(code, message string) func(value any) error {
	return func(value any) error {
		if text, ok := value.(string); !ok || strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
