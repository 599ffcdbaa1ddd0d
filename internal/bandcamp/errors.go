package bandcamp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a page carries no ld+json block.
	ErrNotFound = errors.New("structured data not found")

	// ErrParse is returned when the page or its structured data cannot be parsed.
	ErrParse = errors.New("could not parse page")

	// ErrUnsupportedKind is returned for page URLs that are neither
	// /album/ nor /track/ pages.
	ErrUnsupportedKind = errors.New("unsupported page kind")
)

// MissingFieldError reports a required field absent from the document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// InvalidFieldError reports a field whose value has the wrong type.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid field %q", e.Field)
	}
	return fmt.Sprintf("invalid field %q: %s is not an integer", e.Field, e.Value)
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
