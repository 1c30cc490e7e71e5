package controller

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewUI creates a UI for the requested format.
// Text output uses the TUI on a terminal and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, format string, useTTY bool) (UI, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return NewStructuredUI(cmd.OutOrStdout(), format), nil
	case FormatText, "":
		if useTTY {
			return NewTUI(cmd.OutOrStdout()), nil
		}

		return NewSimpleUI(cmd), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns true if the output is an interactive terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
