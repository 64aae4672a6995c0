package document

import (
	"errors"
	"fmt"
)

// Common document processing errors
var (
	// ErrExtractionFailed is returned when PDF text extraction fails.
	// Extraction is all-or-nothing for a batch: no partial text is returned.
	ErrExtractionFailed = errors.New("document text extraction failed")

	// ErrIndexingFailed is returned when building the vector store over the
	// text chunks fails.
	ErrIndexingFailed = errors.New("vector store creation failed")

	// ErrVisionNotConfigured is returned by image operations when no vision
	// provider was supplied at construction.
	ErrVisionNotConfigured = errors.New("vision service not configured")
)

// ProcessingError wraps errors with additional context about the document
// processing failure.
type ProcessingError struct {
	// Op is the operation that failed (e.g., "ExtractText", "BuildVectorStore").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("document: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("document: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ProcessingError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError wraps an error as a ProcessingError if it isn't already one.
func WrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return err // Already wrapped
	}

	return &ProcessingError{Op: op, Err: err, Details: details}
}
