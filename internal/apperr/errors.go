// Package apperr defines the sentinel errors shared across kohl.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing vault note or statistics entry.
	ErrNotFound = errors.New("not found")
	// ErrNoBooks marks a device scan that found no highlight exports.
	ErrNoBooks = errors.New("no highlight exports found")
)
