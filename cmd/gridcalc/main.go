package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gridcalc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gridcalc [rows] [cols]",
	Short: "Interactive integer spreadsheet",
	Long: `gridcalc is a terminal spreadsheet over 32-bit integers with formulas,
range aggregates and dependency-driven recomputation`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected <rows> <cols> or no arguments")
		}
		return nil
	},
	RunE: runSheet,
}

// main initializes the CLI by setting the command version, registering
// subcommands and flags, and then executes the root command. If command
// execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().String("ui", "", "front end (auto|on|off), overrides sheet.toml")
	rootCmd.Flags().String("config", "", "path to a sheet.toml to load")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
