package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrSectionNotFound signals a missing section within an existing document.
	ErrSectionNotFound = errors.New("section not found")
	// ErrMissingField signals that a projection source field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrParse signals an undecodable document file.
	ErrParse = errors.New("parse error")
)

// MissingFieldError wraps ErrMissingField with the absent field name.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField.Error(), e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// NewMissingField creates a missing field error.
func NewMissingField(field string) error {
	return &MissingFieldError{Field: field}
}
