// Package apperr defines sentinel errors shared across service boundaries so
// transport layers can map them to responses with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
)
