// Package main provides the rlist CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/rlist/rlist/internal/config"
	"github.com/rlist/rlist/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// dbFlag and configFlag override the store and config file locations
var (
	dbFlag     string
	configFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rlist",
	Short: "Personal reading-list manager",
	Long: `rlist keeps a local reading list of URLs with titles, authors and topics.

Entries live in a single SQLite file and are addressed by a short unique
identifier, derived from the URL and date when you don't pick one.

Core features:
  - Add, edit, rename and remove entries
  - Filter by author, topics and dates; sort and limit results
  - Export the whole list to YAML and import it back

All commands output JSON by default; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the reading-list file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the config file")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configFlag)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustResolveDBPath resolves the store file location, exits on error.
func mustResolveDBPath(cfg *config.Config) string {
	path, err := cfg.ResolveDBFile(dbFlag)
	if err != nil {
		exitWithError(ExitConfigError, "resolving store path: %v", err)
	}
	return path
}

// mustOpenStore opens the entry store, exits on error.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore() *store.Store {
	cfg := mustLoadConfig()
	st, err := store.Open(mustResolveDBPath(cfg))
	if err != nil {
		exitWithError(exitCodeFor(err), "opening store: %v", err)
	}
	return st
}

// dateLayout returns the configured human date layout, warning once on
// stderr if the configured format is unusable.
func dateLayout() string {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.DefaultDateFormat
	}
	layout, ok := cfg.DateLayout()
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: date_format %q is not a valid Go time layout, using %s\n",
			cfg.DateFormat, config.DefaultDateFormat)
	}
	return layout
}
