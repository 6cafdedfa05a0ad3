package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/entry"
	"github.com/rlist/rlist/internal/ident"
)

var (
	addAuthor   string
	addTopics   []string
	addID       string
	addRandomID bool
)

func init() {
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "Author of the resource")
	addCmd.Flags().StringSliceVarP(&addTopics, "topics", "t", nil, "Topics to tag the entry with (can be repeated)")
	addCmd.Flags().StringVar(&addID, "id", "", "Explicit identifier (derived from URL and date when omitted)")
	addCmd.Flags().BoolVar(&addRandomID, "random-id", false, "Use a random identifier instead of a derived one")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:     "add <title> <url>",
	Aliases: []string{"a", "create"},
	Short:   "Add an entry to the reading list",
	Long: `Add an entry to the reading list.

When --id is omitted the identifier is derived from the URL and today's
date, so re-adding the same URL on the same day is rejected as a
duplicate. Use --id to pick one, or --random-id to sidestep a collision.

Examples:
  rlist add "A Tour of Go" https://go.dev/tour --topics go --topics tutorial
  rlist add "Post A" https://a.example/1 -a alice -t rust --id a1`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, url := args[0], args[1]
	added := entry.DateOf(time.Now())

	var id string
	switch {
	case addID != "":
		if err := ident.Validate(addID); err != nil {
			exitWithCoreError("validating identifier", err)
		}
		id = addID
	case addRandomID:
		id = ident.Random(nil)
	default:
		id = ident.Derive(url, added)
	}

	e := entry.Entry{
		ID:     id,
		URL:    url,
		Title:  title,
		Author: addAuthor,
		Topics: entry.NormalizeTopics(addTopics),
		Added:  added,
	}

	st := mustOpenStore()
	defer st.Close()

	if err := st.Create(e); err != nil {
		exitWithCoreError("adding entry", err)
	}

	if humanOutput {
		fmt.Printf("Added %s\n", e.ID)
		printEntryDetail(e, dateLayout())
	} else {
		outputJSON(e)
	}
	return nil
}
