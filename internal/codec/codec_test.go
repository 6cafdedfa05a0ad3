package codec

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rlist/rlist/internal/entry"
	"github.com/rlist/rlist/internal/store"
)

func testEntries() []entry.Entry {
	return []entry.Entry{
		{
			ID:     "a1",
			URL:    "https://a.example/1",
			Title:  "Post A",
			Author: "alice",
			Topics: []string{"rust"},
			Added:  entry.NewDate(2024, time.March, 1),
		},
		{
			ID:     "b1",
			URL:    "https://a.example/2",
			Title:  "Post B",
			Topics: nil,
			Added:  entry.NewDate(2024, time.March, 5),
		},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rlist.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestExportParseRoundTrip(t *testing.T) {
	want := testEntries()

	data, err := Export(want)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Parse() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].URL != want[i].URL ||
			got[i].Title != want[i].Title || got[i].Author != want[i].Author ||
			!got[i].Added.Equal(want[i].Added) {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
		if !reflect.DeepEqual(entry.NormalizeTopics(got[i].Topics), entry.NormalizeTopics(want[i].Topics)) {
			t.Errorf("entry %d topics = %v, want %v", i, got[i].Topics, want[i].Topics)
		}
	}
}

func TestExportPreservesEmptyTopics(t *testing.T) {
	data, err := Export(testEntries())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	doc := string(data)
	if !strings.Contains(doc, "topics: []") {
		t.Errorf("export does not spell out the empty topic set:\n%s", doc)
	}
	if !strings.Contains(doc, "version: 1") {
		t.Errorf("export is not self-describing:\n%s", doc)
	}
	if !strings.Contains(doc, "added: \"2024-03-01\"") && !strings.Contains(doc, "added: 2024-03-01") {
		t.Errorf("export lost the exact added date:\n%s", doc)
	}
}

func TestImportExportRoundTripThroughStore(t *testing.T) {
	src := openTestStore(t)
	for _, e := range testEntries() {
		if err := src.Create(e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	srcEntries, err := src.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	data, err := Export(srcEntries)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst := openTestStore(t)
	n, err := Import(dst, data, FailOnDuplicate)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d entries, want 2", n)
	}

	dstEntries, err := dst.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if !reflect.DeepEqual(dstEntries, srcEntries) {
		t.Errorf("round trip differs:\n got %+v\nwant %+v", dstEntries, srcEntries)
	}
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", ":\n\t:::"},
		{"wrong version", "version: 9\nentries: []\n"},
		{"missing version", "entries: []\n"},
		{"missing url", "version: 1\nentries:\n  - id: a1\n    title: T\n    topics: []\n    added: 2024-03-01\n"},
		{"bad date", "version: 1\nentries:\n  - id: a1\n    url: https://x\n    title: T\n    topics: []\n    added: yesterday\n"},
		{"bad identifier", "version: 1\nentries:\n  - id: \"a 1\"\n    url: https://x\n    title: T\n    topics: []\n    added: 2024-03-01\n"},
		{"duplicate identifier", "version: 1\nentries:\n  - id: a1\n    url: https://x\n    title: T\n    topics: []\n    added: 2024-03-01\n  - id: a1\n    url: https://y\n    title: U\n    topics: []\n    added: 2024-03-02\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
			}
			if got != nil {
				t.Errorf("Parse() = %v, want nil on failure", got)
			}
		})
	}
}

func TestImportMalformedAppliesNothing(t *testing.T) {
	st := openTestStore(t)

	_, err := Import(st, []byte("version: 1\nentries:\n  - id: a1\n"), FailOnDuplicate)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Import() error = %v, want ErrInvalidFormat", err)
	}

	n, err := st.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d after failed import, want 0", n)
	}
}

func TestImportFailOnDuplicateAbortsWholeBatch(t *testing.T) {
	st := openTestStore(t)
	existing := testEntries()[1] // b1
	if err := st.Create(existing); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	data, err := Export(testEntries())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	_, err = Import(st, data, FailOnDuplicate)
	if !errors.Is(err, store.ErrDuplicateIdentifier) {
		t.Fatalf("Import() error = %v, want ErrDuplicateIdentifier", err)
	}

	n, _ := st.Count()
	if n != 1 {
		t.Errorf("Count() = %d after aborted import, want 1", n)
	}
}

func TestImportOverwriteReplaces(t *testing.T) {
	st := openTestStore(t)
	existing := testEntries()[0]
	existing.Title = "Stale Title"
	if err := st.Create(existing); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	data, err := Export(testEntries())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	n, err := Import(st, data, Overwrite)
	if err != nil {
		t.Fatalf("Import() overwrite error = %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d, want 2", n)
	}

	got, err := st.Get("a1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Post A" {
		t.Errorf("Title = %q, want Post A", got.Title)
	}
}
