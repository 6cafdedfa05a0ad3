package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single entry by identifier",
	Long: `Get a single entry by its identifier.

Example:
  rlist get a1`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	st := mustOpenStore()
	defer st.Close()

	e, err := st.Get(args[0])
	if err != nil {
		exitWithCoreError("getting entry", err)
	}

	if humanOutput {
		printEntryDetail(e, dateLayout())
	} else {
		outputJSON(e)
	}
	return nil
}
