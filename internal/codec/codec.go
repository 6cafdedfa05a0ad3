// Package codec converts the store's full contents to and from a
// portable YAML document, used for backup and restore.
//
// The document is self-describing and preserves every field, including
// empty topic sets and exact added dates, so that importing an export
// reproduces the original store observably unchanged.
package codec

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rlist/rlist/internal/entry"
	"github.com/rlist/rlist/internal/ident"
	"github.com/rlist/rlist/internal/store"
)

// ErrInvalidFormat is returned for documents that cannot be parsed or
// that violate entry invariants. Nothing is applied on failure.
var ErrInvalidFormat = errors.New("invalid document format")

// Version is the current document format version.
const Version = 1

// Mode governs import collision policy.
type Mode int

const (
	// FailOnDuplicate aborts the entire import on the first identifier
	// already present in the store.
	FailOnDuplicate Mode = iota

	// Overwrite replaces existing entries with the same identifier.
	Overwrite
)

// document is the serialized form of a full store.
type document struct {
	Version int        `yaml:"version"`
	Entries []docEntry `yaml:"entries"`
}

type docEntry struct {
	ID     string     `yaml:"id"`
	URL    string     `yaml:"url"`
	Title  string     `yaml:"title"`
	Author string     `yaml:"author,omitempty"`
	Topics []string   `yaml:"topics"`
	Added  entry.Date `yaml:"added"`
}

// Export serializes entries into a document.
func Export(entries []entry.Entry) ([]byte, error) {
	doc := document{Version: Version, Entries: make([]docEntry, 0, len(entries))}
	for _, e := range entries {
		topics := e.Topics
		if topics == nil {
			topics = []string{}
		}
		doc.Entries = append(doc.Entries, docEntry{
			ID:     e.ID,
			URL:    e.URL,
			Title:  e.Title,
			Author: e.Author,
			Topics: topics,
			Added:  e.Added,
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a document, returning its entries. Any
// structural or semantic problem fails with ErrInvalidFormat.
func Parse(data []byte) ([]entry.Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, doc.Version)
	}

	seen := make(map[string]bool, len(doc.Entries))
	entries := make([]entry.Entry, 0, len(doc.Entries))
	for i, de := range doc.Entries {
		if err := ident.Validate(de.ID); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidFormat, i+1, err)
		}
		if seen[de.ID] {
			return nil, fmt.Errorf("%w: identifier %q appears twice", ErrInvalidFormat, de.ID)
		}
		seen[de.ID] = true

		e := entry.Entry{
			ID:     de.ID,
			URL:    de.URL,
			Title:  de.Title,
			Author: de.Author,
			Topics: entry.NormalizeTopics(de.Topics),
			Added:  de.Added,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidFormat, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Import parses a document and applies its entries to the store as a
// single all-or-nothing batch. Returns the number of entries applied.
func Import(st *store.Store, data []byte, mode Mode) (int, error) {
	entries, err := Parse(data)
	if err != nil {
		return 0, err
	}
	if err := st.ImportAll(entries, mode == Overwrite); err != nil {
		return 0, err
	}
	return len(entries), nil
}
