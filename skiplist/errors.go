package skiplist

import "errors"

var (
	// ErrKeyExists is returned when inserting a key that is already stored.
	ErrKeyExists = errors.New("key already exists")

	// ErrKeyNotFound is returned when deleting a key that is not stored.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidMaxLevel is returned when an engine is configured with a non-positive max level.
	ErrInvalidMaxLevel = errors.New("max level must be positive")

	// ErrInvalidDelimiter is returned when the record delimiter is empty or contains a line break.
	ErrInvalidDelimiter = errors.New("invalid record delimiter")

	// ErrMalformedRecord marks a dump line that cannot be turned into an entry.
	ErrMalformedRecord = errors.New("malformed record")
)
