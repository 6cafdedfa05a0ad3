package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/ident"
)

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:     "rename <old-id> <new-id>",
	Aliases: []string{"mv"},
	Short:   "Change an entry's identifier",
	Long: `Change an entry's identifier, keeping every other field.

Renaming an entry to its current identifier succeeds and changes
nothing.

Example:
  rlist rename 3k2m91xq tour-of-go`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	oldID, newID := args[0], args[1]

	if err := ident.Validate(newID); err != nil {
		exitWithCoreError("validating identifier", err)
	}

	st := mustOpenStore()
	defer st.Close()

	if err := st.Rename(oldID, newID); err != nil {
		exitWithCoreError("renaming entry", err)
	}

	if humanOutput {
		fmt.Printf("Renamed %s to %s\n", oldID, newID)
	} else {
		outputJSON(RenamedResponse{Status: "renamed", OldID: oldID, NewID: newID})
	}
	return nil
}
