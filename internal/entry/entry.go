// Package entry defines the core domain types for reading-list entries.
package entry

import (
	"fmt"
	"sort"
)

// Entry represents a single reading-list record.
type Entry struct {
	// ID is the unique key naming this entry, user-chosen or derived.
	ID string `json:"id" yaml:"id"`

	URL    string `json:"url" yaml:"url"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Topics is a set: sorted, no duplicates, no empty strings.
	Topics []string `json:"topics" yaml:"topics"`

	// Added is the calendar date the entry was created. It never changes
	// after creation.
	Added Date `json:"added" yaml:"added"`
}

// Validate checks the entry's required fields and topic-set invariants.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry has no identifier")
	}
	if e.URL == "" {
		return fmt.Errorf("entry %q has no url", e.ID)
	}
	if e.Title == "" {
		return fmt.Errorf("entry %q has no title", e.ID)
	}
	if e.Added.IsZero() {
		return fmt.Errorf("entry %q has no added date", e.ID)
	}
	seen := make(map[string]bool, len(e.Topics))
	for _, t := range e.Topics {
		if t == "" {
			return fmt.Errorf("entry %q has an empty topic", e.ID)
		}
		if seen[t] {
			return fmt.Errorf("entry %q has duplicate topic %q", e.ID, t)
		}
		seen[t] = true
	}
	return nil
}

// HasTopic reports whether the entry's topic set contains topic.
func (e Entry) HasTopic(topic string) bool {
	for _, t := range e.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// HasAnyTopic reports whether the entry's topic set intersects topics.
func (e Entry) HasAnyTopic(topics []string) bool {
	for _, t := range topics {
		if e.HasTopic(t) {
			return true
		}
	}
	return false
}

// NormalizeTopics returns topics as a set: empty strings dropped,
// duplicates removed, sorted. Returns nil for an empty set.
func NormalizeTopics(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	var out []string
	for _, t := range topics {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
