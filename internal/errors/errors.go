// Package errors provides a lightweight structured error type (GalleryError)
// for category-based classification in the CLI surface.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gallery error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryScan       ErrorCategory = "scan"

	// Output pipeline errors
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryTool       ErrorCategory = "tool"

	// Everything else
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// GalleryError is a structured error with category, severity, and context
type GalleryError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for GalleryError
type ContextFields map[string]any

// Error implements the error interface
func (e *GalleryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GalleryError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GalleryError) WithContext(key string, value any) *GalleryError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new GalleryError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GalleryError {
	return &GalleryError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new GalleryError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GalleryError {
	return &GalleryError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ge, ok := err.(*GalleryError); ok {
		return ge.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns
// CategoryInternal if not a GalleryError
func GetCategory(err error) ErrorCategory {
	if ge, ok := err.(*GalleryError); ok {
		return ge.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error
func ValidationError(message string) *GalleryError {
	return &GalleryError{
		Category: CategoryValidation,
		Severity: SeverityError,
		Message:  message,
	}
}

// WrapError wraps an existing error with a new GalleryError at error severity
func WrapError(err error, category ErrorCategory, message string) *GalleryError {
	return &GalleryError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}
