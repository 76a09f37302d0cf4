package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPattern indicates a catalog or user pattern failed to compile.
	// The operation that needed it returns an empty result.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidSettings indicates a configuration value is out of range.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrEmptyDocument indicates a document has no lines to analyse.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNoFingerprint indicates the text normalised to nothing and
	// therefore has no content hash.
	ErrNoFingerprint = errors.New("no fingerprint")

	// ErrUnsupportedType indicates an unknown snapshot or input format.
	ErrUnsupportedType = errors.New("unsupported type")
)
