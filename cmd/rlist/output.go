package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rlist/rlist/internal/entry"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithCoreError maps a core error to its exit code and exits.
func exitWithCoreError(context string, err error) {
	exitWithError(exitCodeFor(err), "%s: %v", context, err)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// RemovedResponse reports the entries removed by a delete.
type RemovedResponse struct {
	Removed []entry.Entry `json:"removed"`
	Count   int           `json:"count"`
}

// RenamedResponse reports an identifier change.
type RenamedResponse struct {
	Status string `json:"status"`
	OldID  string `json:"old_id"`
	NewID  string `json:"new_id"`
}

// ListResponse wraps query results.
type ListResponse struct {
	Entries []entry.Entry `json:"entries"`
	Count   int           `json:"count"`
}

// printEntryLine prints the one-line human form: "id: url by author".
func printEntryLine(e entry.Entry) {
	line := fmt.Sprintf("%s: %s", e.ID, e.URL)
	if e.Author != "" {
		line += " by " + e.Author
	}
	fmt.Println(line)
}

// printEntryDetail prints the long human form with topics and date.
func printEntryDetail(e entry.Entry, layout string) {
	printEntryLine(e)
	fmt.Printf("  Title:  %s\n", e.Title)
	if len(e.Topics) > 0 {
		fmt.Printf("  Topics: %s\n", strings.Join(e.Topics, ", "))
	}
	fmt.Printf("  Added:  %s\n", e.Added.Format(layout))
}

// printEntriesHuman prints entries in the requested human form.
func printEntriesHuman(entries []entry.Entry, long bool, layout string) {
	for i, e := range entries {
		if long {
			printEntryDetail(e, layout)
			if i < len(entries)-1 {
				fmt.Println()
			}
		} else {
			printEntryLine(e)
		}
	}
}
