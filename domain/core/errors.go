package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrUploadNotFound = fmt.Errorf("%w: upload", ErrNotFound)
	ErrSchoolNotFound = fmt.Errorf("%w: school", ErrNotFound)

	// Input errors
	ErrEmptyDataset      = errors.New("file appears empty or has no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")

	// Narrative errors
	ErrInsightsUnavailable = errors.New("AI insights are not configured")
	ErrMalformedInsights   = errors.New("failed to parse AI response as JSON")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, id)
}

func NewUnsupportedFormatError(filename string) error {
	return fmt.Errorf("%w: %s (expected .xlsx, .xls or .csv)", ErrUnsupportedFormat, filename)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports errors caused by the uploaded file rather than the service.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge)
}
