// Package query evaluates structured filters against the entry
// store and produces ordered result sequences.
//
// A Filter carries structured, already-lexed predicates; the engine
// never sees raw CLI tokens. Every Run re-evaluates from the current
// store state, so results are a snapshot, not a live view.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rlist/rlist/internal/entry"
)

var (
	// ErrInvalidSortField is returned for an unrecognized sort_by value.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidDateExpression is returned for a malformed date token or
	// bound. The whole query fails before any scanning.
	ErrInvalidDateExpression = errors.New("invalid date expression")
)

// Sort field names accepted in Filter.SortBy.
const (
	SortByDate       = "date"
	SortByIdentifier = "identifier"
	SortByURL        = "url"
	SortByTitle      = "title"
	SortByAuthor     = "author"
)

// Filter is a fully structured query description. Zero-valued fields
// impose no constraint; present predicates combine with AND.
type Filter struct {
	// Name matches entries whose identifier or title contains the text,
	// case-insensitively.
	Name string

	// Author is an exact, case-insensitive author match.
	Author string

	// Topics lists required topics; an entry matches only if it carries
	// every one of them.
	Topics []string

	// From and To are inclusive date bounds, each an independent date
	// token (today, yesterday, or DD-MM-YY).
	From string
	To   string

	// On is a single date-equality token.
	On string

	// SortBy names the result order field; empty means date ascending.
	SortBy string

	// Descending reverses the sort key order. Equal keys still tie-break
	// by identifier ascending.
	Descending bool

	// Limit truncates the sorted results; zero or negative means
	// unbounded.
	Limit int
}

// Lister is the read-only store view the engine consumes.
type Lister interface {
	ListAll() ([]entry.Entry, error)
}

// Engine evaluates filters against a store.
type Engine struct {
	store Lister

	// Now supplies the current time for relative date tokens. Tests
	// inject a fixed clock.
	Now func() time.Time
}

// New returns an engine reading through st.
func New(st Lister) *Engine {
	return &Engine{store: st, Now: time.Now}
}

// resolved holds a filter with its date tokens resolved to concrete
// dates and its sort order compiled. Resolution happens once per Run.
type resolved struct {
	f        Filter
	name     string
	from, to entry.Date
	on       entry.Date
	less     func(a, b entry.Entry) bool
}

// Run evaluates the filter and returns matching entries in sort order.
// Invalid sort fields and malformed date tokens fail the whole query
// before any entry is examined.
func (eng *Engine) Run(f Filter) ([]entry.Entry, error) {
	r, err := eng.resolve(f)
	if err != nil {
		return nil, err
	}

	all, err := eng.store.ListAll()
	if err != nil {
		return nil, err
	}

	var matched []entry.Entry
	for _, e := range all {
		if r.matches(e) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return r.less(matched[i], matched[j]) })

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (eng *Engine) resolve(f Filter) (*resolved, error) {
	r := &resolved{f: f, name: strings.ToLower(f.Name)}

	keyLess, err := sortKeyFunc(f.SortBy)
	if err != nil {
		return nil, err
	}
	r.less = func(a, b entry.Entry) bool {
		x, y := a, b
		if f.Descending {
			x, y = b, a
		}
		if keyLess(x, y) {
			return true
		}
		if keyLess(y, x) {
			return false
		}
		return a.ID < b.ID
	}

	now := eng.Now()
	if r.from, err = resolveToken(f.From, now); err != nil {
		return nil, err
	}
	if r.to, err = resolveToken(f.To, now); err != nil {
		return nil, err
	}
	if r.on, err = resolveToken(f.On, now); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *resolved) matches(e entry.Entry) bool {
	if r.name != "" &&
		!strings.Contains(strings.ToLower(e.ID), r.name) &&
		!strings.Contains(strings.ToLower(e.Title), r.name) {
		return false
	}
	if r.f.Author != "" && !strings.EqualFold(e.Author, r.f.Author) {
		return false
	}
	for _, t := range r.f.Topics {
		if !e.HasTopic(t) {
			return false
		}
	}
	if !r.from.IsZero() && e.Added.Before(r.from) {
		return false
	}
	if !r.to.IsZero() && e.Added.After(r.to) {
		return false
	}
	if !r.on.IsZero() && !e.Added.Equal(r.on) {
		return false
	}
	return true
}

// sortKeyFunc returns a strict-weak ordering on the named field.
func sortKeyFunc(field string) (func(a, b entry.Entry) bool, error) {
	switch field {
	case "", SortByDate:
		return func(a, b entry.Entry) bool { return a.Added.Before(b.Added) }, nil
	case SortByIdentifier:
		return func(a, b entry.Entry) bool { return a.ID < b.ID }, nil
	case SortByURL:
		return func(a, b entry.Entry) bool { return a.URL < b.URL }, nil
	case SortByTitle:
		return func(a, b entry.Entry) bool { return a.Title < b.Title }, nil
	case SortByAuthor:
		return func(a, b entry.Entry) bool { return a.Author < b.Author }, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: identifier, url, title, author, date)",
			ErrInvalidSortField, field)
	}
}
