package store

import "errors"

var (
	// ErrNotFound is returned when no entry has the given identifier.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateIdentifier is returned when a create, rename or import
	// would reuse an identifier already present in the store.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrStorage marks failures of the underlying persistence layer
	// (unreadable file, busy lock, corrupt database).
	ErrStorage = errors.New("storage failure")
)

// storageErr wraps err with ErrStorage so callers can distinguish
// persistence failures from domain errors via errors.Is.
func storageErr(context string, err error) error {
	return &wrappedStorageError{context: context, err: err}
}

type wrappedStorageError struct {
	context string
	err     error
}

func (e *wrappedStorageError) Error() string {
	return e.context + ": " + e.err.Error()
}

func (e *wrappedStorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *wrappedStorageError) Unwrap() error {
	return e.err
}
