package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/entry"
)

var (
	editTitle        string
	editURL          string
	editAuthor       string
	editClearAuthor  bool
	editTopics       []string
	editAddTopics    []string
	editRemoveTopics []string
	editClearTopics  bool
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editURL, "url", "", "New URL")
	editCmd.Flags().StringVarP(&editAuthor, "author", "a", "", "New author")
	editCmd.Flags().BoolVar(&editClearAuthor, "clear-author", false, "Remove the author")
	editCmd.Flags().StringSliceVarP(&editTopics, "topics", "t", nil, "Replace the topic set (same as --clear-topics plus --add-topics)")
	editCmd.Flags().StringSliceVar(&editAddTopics, "add-topics", nil, "Topics to add")
	editCmd.Flags().StringSliceVar(&editRemoveTopics, "remove-topics", nil, "Topics to remove")
	editCmd.Flags().BoolVar(&editClearTopics, "clear-topics", false, "Remove every topic")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"e"},
	Short:   "Edit fields of an existing entry",
	Long: `Edit fields of an existing entry. Only the flags you pass change
anything; the added date never changes, and the identifier changes only
through 'rlist rename'.

Examples:
  rlist edit a1 --title "Post A, revised"
  rlist edit a1 --add-topics go --remove-topics rust
  rlist edit a1 --clear-author --topics reading,later`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	var p entry.Patch

	if cmd.Flags().Changed("title") {
		p.Title = entry.SetField(editTitle)
	}
	if cmd.Flags().Changed("url") {
		p.URL = entry.SetField(editURL)
	}
	switch {
	case editClearAuthor:
		p.Author = entry.ClearField()
	case cmd.Flags().Changed("author"):
		p.Author = entry.SetField(editAuthor)
	}

	// --topics is a wholesale replacement: clear, then add.
	if cmd.Flags().Changed("topics") {
		p.ClearTopics = true
		p.AddTopics = editTopics
	} else {
		p.ClearTopics = editClearTopics
		p.AddTopics = editAddTopics
	}
	p.RemoveTopics = editRemoveTopics

	if p.IsEmpty() {
		exitWithError(ExitError, "nothing to change (pass at least one edit flag)")
	}

	st := mustOpenStore()
	defer st.Close()

	e, err := st.Update(args[0], p)
	if err != nil {
		exitWithCoreError("editing entry", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s\n", e.ID)
		printEntryDetail(e, dateLayout())
	} else {
		outputJSON(e)
	}
	return nil
}
