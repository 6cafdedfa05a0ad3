package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the config file location, the resolved store path and the
date format in effect.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the JSON form of the resolved configuration.
type ConfigResponse struct {
	ConfigFile string `json:"config_file"`
	DBFile     string `json:"db_file"`
	DateFormat string `json:"date_format"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	configPath := configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	layout, _ := cfg.DateLayout()

	resp := ConfigResponse{
		ConfigFile: configPath,
		DBFile:     mustResolveDBPath(cfg),
		DateFormat: layout,
	}

	if humanOutput {
		fmt.Printf("Config file: %s\n", resp.ConfigFile)
		fmt.Printf("Store file:  %s\n", resp.DBFile)
		fmt.Printf("Date format: %s\n", resp.DateFormat)
	} else {
		outputJSON(resp)
	}
	return nil
}
