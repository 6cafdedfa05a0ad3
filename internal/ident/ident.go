// Package ident generates and validates entry identifiers.
package ident

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/rlist/rlist/internal/entry"
)

// ErrInvalidIdentifier is returned when a user-supplied identifier
// contains unsafe characters or is empty.
var ErrInvalidIdentifier = errors.New("invalid identifier")

const (
	// MaxLength caps user-supplied identifiers.
	MaxLength = 64

	// DerivedLength is the fixed length of derived identifiers.
	DerivedLength = 8
)

// derivedSpace is 36^DerivedLength, the number of distinct derived ids.
const derivedSpace = 36 * 36 * 36 * 36 * 36 * 36 * 36 * 36

// Validate checks that id is non-empty, within the length cap, and uses
// only letters, digits, '-' and '_'.
func Validate(id string) error {
	if id == "" {
		return fmt.Errorf("%w: identifier is empty", ErrInvalidIdentifier)
	}
	if len(id) > MaxLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentifier, id, MaxLength)
	}
	for _, r := range id {
		if !isSafe(r) {
			return fmt.Errorf("%w: %q contains %q (allowed: letters, digits, '-', '_')",
				ErrInvalidIdentifier, id, r)
		}
	}
	return nil
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

// Derive produces a deterministic identifier from an entry's URL and
// added date: same URL added on the same day always yields the same id,
// so a duplicate add surfaces through the store's uniqueness check.
func Derive(url string, added entry.Date) string {
	h := xxhash.Sum64String(url + "\n" + added.String())
	return encodeBase36(h % derivedSpace)
}

// encodeBase36 renders v as a DerivedLength-character base36 string,
// left-padded with zeros.
func encodeBase36(v uint64) string {
	s := strconv.FormatUint(v, 36)
	if len(s) < DerivedLength {
		s = strings.Repeat("0", DerivedLength-len(s)) + s
	}
	return s
}

// Source supplies randomness for Random. Tests inject a fixed source.
type Source func() uuid.UUID

// Random produces a random identifier from the given source. Used when
// the caller wants collision avoidance beyond identical URL+date.
func Random(src Source) string {
	if src == nil {
		src = uuid.New
	}
	u := src()
	return strings.ReplaceAll(u.String(), "-", "")[:DerivedLength]
}
