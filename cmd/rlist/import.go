package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/codec"
)

var importOverwrite bool

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace existing entries with the same identifier")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from an exported YAML document",
	Long: `Import entries from a document produced by 'rlist export'.

The import is all-or-nothing: a malformed document, or (without
--overwrite) an identifier that already exists, applies nothing.

Examples:
  rlist import backup.yml
  rlist import backup.yml --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading import file: %v", err)
	}

	mode := codec.FailOnDuplicate
	if importOverwrite {
		mode = codec.Overwrite
	}

	st := mustOpenStore()
	defer st.Close()

	n, err := codec.Import(st, data, mode)
	if err != nil {
		exitWithCoreError("importing entries", err)
	}

	if humanOutput {
		fmt.Printf("Imported %d entries from %s\n", n, args[0])
	} else {
		outputJSON(struct {
			Status   string `json:"status"`
			Imported int    `json:"imported"`
		}{Status: "imported", Imported: n})
	}
	return nil
}
