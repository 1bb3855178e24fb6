package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command line surface.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var ge *GalleryError
	if errors.As(err, &ge) {
		return exitCodeFromGallery(ge)
	}
	return 1
}

func exitCodeFromGallery(err *GalleryError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid input or description document
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryScan:
		return 8 // Input directory error
	case CategoryRender, CategoryFileSystem, CategoryTool:
		return 11 // Output pipeline error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	var ge *GalleryError
	if !errors.As(err, &ge) {
		return err.Error()
	}
	msg := fmt.Sprintf("%s: %s", ge.Category, ge.Message)
	if ge.Cause != nil {
		msg += ": " + ge.Cause.Error()
	}
	if a.verbose && len(ge.Context) > 0 {
		for k, v := range ge.Context {
			msg += fmt.Sprintf("\n  %s=%v", k, v)
		}
	}
	return msg
}
