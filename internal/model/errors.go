package model

import "errors"

var (
	// ErrDocumentNotFound is returned when a phase input document is missing.
	ErrDocumentNotFound = errors.New("report document not found")
	// ErrInvalidConfig is returned when configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrRootNotFound is returned when the scan root does not exist or is not a directory.
	ErrRootNotFound = errors.New("scan root not found")
	// ErrInvalidDocument is returned when a loaded document is structurally invalid.
	ErrInvalidDocument = errors.New("invalid report document")
	// ErrCutIncomplete is returned when the cut phase finished with per-file errors.
	ErrCutIncomplete = errors.New("cut finished with errors")
)
