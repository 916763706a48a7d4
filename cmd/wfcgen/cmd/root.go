package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hollowforge/wfcmap/pkg/cliutil"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "wfcgen",
	Short: "Wave-function-collapse tile map generator",
	Long: `wfcgen drives the wfcmap solver core from the command line:

  - generate: compile tiles/rules from a config, run the solver, write a result
  - validate: run the compiler alone and report dropped rules/tiles
  - version:  print the CLI version`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cliutil.VerboseEnabled = verbose
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML run configuration")
}
