package query

import (
	"errors"
	"testing"
	"time"

	"github.com/rlist/rlist/internal/entry"
)

// memLister serves a fixed entry list, standing in for the store.
type memLister []entry.Entry

func (m memLister) ListAll() ([]entry.Entry, error) {
	return m, nil
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 30, 0, 0, time.UTC)
	}
}

func testEngine(entries ...entry.Entry) *Engine {
	eng := New(memLister(entries))
	eng.Now = fixedClock(2024, time.March, 5)
	return eng
}

var (
	entryA = entry.Entry{
		ID:     "a1",
		URL:    "https://a.example/1",
		Title:  "Post A",
		Author: "alice",
		Topics: []string{"rust"},
		Added:  entry.NewDate(2024, time.March, 1),
	}
	entryB = entry.Entry{
		ID:     "b1",
		URL:    "https://a.example/2",
		Title:  "Post B",
		Author: "bob",
		Topics: []string{"go", "rust"},
		Added:  entry.NewDate(2024, time.March, 5),
	}
	entryC = entry.Entry{
		ID:     "c1",
		URL:    "https://a.example/3",
		Title:  "Older Post",
		Author: "alice",
		Topics: nil,
		Added:  entry.NewDate(2024, time.February, 10),
	}
)

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunNoFilterSortsByDate(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	got, err := eng.Run(Filter{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "c1", "a1", "b1") {
		t.Errorf("Run() = %v, want [c1 a1 b1] (date ascending)", ids(got))
	}
}

func TestRunAuthorFilter(t *testing.T) {
	eng := testEngine(entryA, entryB)

	got, err := eng.Run(Filter{Author: "alice"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1") {
		t.Errorf("Run(author=alice) = %v, want [a1]", ids(got))
	}

	// Exact match is case-insensitive.
	got, err = eng.Run(Filter{Author: "ALICE"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1") {
		t.Errorf("Run(author=ALICE) = %v, want [a1]", ids(got))
	}

	// Substring of an author is not a match.
	got, err = eng.Run(Filter{Author: "ali"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Run(author=ali) = %v, want none", ids(got))
	}
}

func TestRunTopicsRequireAll(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	// Single topic matches every entry carrying it, date ascending.
	got, err := eng.Run(Filter{Topics: []string{"rust"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1", "b1") {
		t.Errorf("Run(topics=rust) = %v, want [a1 b1]", ids(got))
	}

	// AND semantics: both topics required, so only b1 qualifies.
	got, err = eng.Run(Filter{Topics: []string{"rust", "go"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1") {
		t.Errorf("Run(topics=rust,go) = %v, want [b1]", ids(got))
	}
}

func TestRunNameSubstring(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	// Case-insensitive over titles.
	got, err := eng.Run(Filter{Name: "post"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Run(name=post) matched %v, want all three", ids(got))
	}

	// Also matches identifiers.
	got, err = eng.Run(Filter{Name: "B1"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1") {
		t.Errorf("Run(name=B1) = %v, want [b1]", ids(got))
	}
}

func TestRunDateToken(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	// Clock is fixed at 2024-03-05, so today is exactly entryB's date.
	got, err := eng.Run(Filter{On: "today"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1") {
		t.Errorf("Run(on=today) = %v, want [b1]", ids(got))
	}

	got, err = eng.Run(Filter{On: "yesterday"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Run(on=yesterday) = %v, want none", ids(got))
	}

	got, err = eng.Run(Filter{On: "01-03-24"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1") {
		t.Errorf("Run(on=01-03-24) = %v, want [a1]", ids(got))
	}
}

func TestRunDateBounds(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"from only", Filter{From: "01-03-24"}, []string{"a1", "b1"}},
		{"to only", Filter{To: "01-03-24"}, []string{"c1", "a1"}},
		{"closed range", Filter{From: "11-02-24", To: "04-03-24"}, []string{"a1"}},
		{"bounds are inclusive", Filter{From: "01-03-24", To: "05-03-24"}, []string{"a1", "b1"}},
		{"relative bound", Filter{From: "yesterday"}, []string{"b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.Run(tt.f)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want...) {
				t.Errorf("Run() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestRunInvalidDateFailsWholeQuery(t *testing.T) {
	eng := testEngine(entryA, entryB)

	for _, f := range []Filter{
		{On: "32-13-24"},
		{From: "32-13-24"},
		{To: "not-a-date"},
	} {
		got, err := eng.Run(f)
		if !errors.Is(err, ErrInvalidDateExpression) {
			t.Errorf("Run(%+v) error = %v, want ErrInvalidDateExpression", f, err)
		}
		if got != nil {
			t.Errorf("Run(%+v) = %v, want no partial results", f, ids(got))
		}
	}
}

func TestRunInvalidSortField(t *testing.T) {
	eng := testEngine(entryA)

	got, err := eng.Run(Filter{SortBy: "popularity"})
	if !errors.Is(err, ErrInvalidSortField) {
		t.Fatalf("Run() error = %v, want ErrInvalidSortField", err)
	}
	if got != nil {
		t.Errorf("Run() = %v, want no partial results", ids(got))
	}
}

func TestRunSortFields(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	tests := []struct {
		sortBy string
		want   []string
	}{
		{SortByIdentifier, []string{"a1", "b1", "c1"}},
		{SortByTitle, []string{"c1", "a1", "b1"}},
		{SortByURL, []string{"a1", "b1", "c1"}},
		{SortByDate, []string{"c1", "a1", "b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got, err := eng.Run(Filter{SortBy: tt.sortBy})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want...) {
				t.Errorf("Run(sort=%s) = %v, want %v", tt.sortBy, ids(got), tt.want)
			}
		})
	}
}

func TestRunSortTiesBreakByIdentifier(t *testing.T) {
	// Both alice entries share the author; ties order by id ascending.
	eng := testEngine(entryB, entryC, entryA)

	got, err := eng.Run(Filter{SortBy: SortByAuthor})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1", "c1", "b1") {
		t.Errorf("Run(sort=author) = %v, want [a1 c1 b1]", ids(got))
	}
}

func TestRunDescending(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	got, err := eng.Run(Filter{SortBy: SortByDate, Descending: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1", "a1", "c1") {
		t.Errorf("Run(desc) = %v, want [b1 a1 c1]", ids(got))
	}

	// Ties still break by identifier ascending even when descending.
	got, err = eng.Run(Filter{SortBy: SortByAuthor, Descending: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1", "a1", "c1") {
		t.Errorf("Run(sort=author desc) = %v, want [b1 a1 c1]", ids(got))
	}
}

func TestRunLimit(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	// Zero means unbounded.
	got, err := eng.Run(Filter{Limit: 0})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Run(limit=0) returned %d entries, want 3", len(got))
	}

	// Positive limits truncate the front of the sorted sequence.
	got, err = eng.Run(Filter{Limit: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "c1", "a1") {
		t.Errorf("Run(limit=2) = %v, want [c1 a1]", ids(got))
	}

	// A limit beyond the match count returns everything.
	got, err = eng.Run(Filter{Limit: 10})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Run(limit=10) returned %d entries, want 3", len(got))
	}
}

func TestRunConjunction(t *testing.T) {
	eng := testEngine(entryA, entryB, entryC)

	// All predicates must hold at once.
	got, err := eng.Run(Filter{Author: "alice", Topics: []string{"rust"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "a1") {
		t.Errorf("Run(author+topics) = %v, want [a1]", ids(got))
	}

	got, err = eng.Run(Filter{Author: "bob", Topics: []string{"rust"}, On: "today"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !equalIDs(ids(got), "b1") {
		t.Errorf("Run(author+topics+date) = %v, want [b1]", ids(got))
	}
}
