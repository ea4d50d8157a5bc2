package repository

import "errors"

var (
	// ErrNotFound means the id did not resolve to a document.
	ErrNotFound = errors.New("document not found")

	// ErrValidation wraps a document-rule failure detected at the
	// storage layer. Controllers translate it to a 400.
	ErrValidation = errors.New("validation failed")
)
