package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/entry"
)

var removeTopics []string

func init() {
	removeCmd.Flags().StringSliceVarP(&removeTopics, "topics", "t", nil, "Remove every entry tagged with any of these topics")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove [<id>]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove entries by identifier or by topics",
	Long: `Remove a single entry by identifier, or every entry carrying any of
the given topics. The identifier takes precedence over --topics.

Removing by topics that match nothing removes zero entries and is not
an error.

Examples:
  rlist remove a1
  rlist remove --topics go,rust`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(removeTopics) == 0 {
		exitWithError(ExitError, "nothing to remove: pass an identifier or --topics")
	}

	st := mustOpenStore()
	defer st.Close()

	var removed []entry.Entry
	if len(args) > 0 {
		e, err := st.Get(args[0])
		if err != nil {
			exitWithCoreError("removing entry", err)
		}
		if err := st.Delete(args[0]); err != nil {
			exitWithCoreError("removing entry", err)
		}
		removed = []entry.Entry{e}
	} else {
		var err error
		removed, err = st.DeleteByTopics(removeTopics)
		if err != nil {
			exitWithCoreError("removing entries", err)
		}
	}

	if humanOutput {
		if len(removed) == 0 {
			fmt.Println("No entries were removed")
			return nil
		}
		fmt.Println("Removed:")
		printEntriesHuman(removed, false, dateLayout())
		if len(removed) > 1 {
			fmt.Printf("Removed a total of %d entries\n", len(removed))
		}
	} else {
		if removed == nil {
			removed = []entry.Entry{}
		}
		outputJSON(RemovedResponse{Removed: removed, Count: len(removed)})
	}
	return nil
}
