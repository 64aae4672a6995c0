package vision

import (
	"errors"
	"fmt"
)

// Common vision processing errors
var (
	// ErrPDFTooLarge is returned when a PDF exceeds the maximum file size limit.
	// Google Cloud Vision API has a 20MB limit for synchronous processing.
	ErrPDFTooLarge = errors.New("PDF file size exceeds the maximum limit (20MB)")

	// ErrInvalidPDF is returned when the provided data is not a valid PDF document.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrAnnotationFailed is returned when the Vision API fails to process a request.
	ErrAnnotationFailed = errors.New("vision annotation failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrTooManyPages is returned when a PDF has too many pages for synchronous
	// processing. Google Cloud Vision API supports up to 5 pages.
	ErrTooManyPages = errors.New("PDF has too many pages (maximum 5 pages for synchronous processing)")

	// ErrNoTextFound is returned when no text could be detected in the input.
	ErrNoTextFound = errors.New("no text found")

	// ErrEmptyImage is returned when the supplied image buffer is empty.
	ErrEmptyImage = errors.New("image data is empty")
)

// VisionError wraps errors with additional context about the failure.
type VisionError struct {
	// Op is the operation that failed (e.g., "DetectText", "Annotate").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *VisionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("vision: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("vision: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *VisionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *VisionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError wraps an error as a VisionError if it isn't already one.
func WrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var visErr *VisionError
	if errors.As(err, &visErr) {
		return err // Already wrapped
	}

	return &VisionError{Op: op, Err: err, Details: details}
}
