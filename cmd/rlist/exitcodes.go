package main

import (
	"errors"

	"github.com/rlist/rlist/internal/codec"
	"github.com/rlist/rlist/internal/ident"
	"github.com/rlist/rlist/internal/query"
	"github.com/rlist/rlist/internal/store"
)

// Exit codes. Every core failure kind maps to its own code so scripts
// can tell them apart.
const (
	ExitSuccess           = 0 // Success
	ExitError             = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError       = 2 // Configuration error (missing config, invalid paths)
	ExitNotFound          = 3 // No entry with the given identifier
	ExitDuplicate         = 4 // Identifier already in use
	ExitInvalidIdentifier = 5 // Identifier is empty or has unsafe characters
	ExitInvalidDate       = 6 // Malformed date token or bound
	ExitInvalidSort       = 7 // Unrecognized sort field
	ExitInvalidFormat     = 8 // Malformed import document
	ExitStorage           = 9 // Persistence unavailable or corrupt
)

// exitCodeFor maps a core error to its exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrDuplicateIdentifier):
		return ExitDuplicate
	case errors.Is(err, ident.ErrInvalidIdentifier):
		return ExitInvalidIdentifier
	case errors.Is(err, query.ErrInvalidDateExpression):
		return ExitInvalidDate
	case errors.Is(err, query.ErrInvalidSortField):
		return ExitInvalidSort
	case errors.Is(err, codec.ErrInvalidFormat):
		return ExitInvalidFormat
	case errors.Is(err, store.ErrStorage):
		return ExitStorage
	default:
		return ExitError
	}
}
