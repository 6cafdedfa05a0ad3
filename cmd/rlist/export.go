package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/codec"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the whole reading list as a YAML document",
	Long: `Export every entry as a self-describing YAML document.

Writes to stdout when no file is given. The document round-trips:
importing it into an empty list reproduces this one exactly.

Examples:
  rlist export backup.yml
  rlist export > backup.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	st := mustOpenStore()
	defer st.Close()

	entries, err := st.ListAll()
	if err != nil {
		exitWithCoreError("reading entries", err)
	}

	data, err := codec.Export(entries)
	if err != nil {
		exitWithCoreError("exporting entries", err)
	}

	if len(args) == 0 {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		exitWithError(ExitError, "writing export file: %v", err)
	}

	if humanOutput {
		fmt.Printf("Exported %d entries to %s\n", len(entries), args[0])
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: args[0]})
	}
	return nil
}
