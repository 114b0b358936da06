// Command chef runs, parses, and validates Chef recipes: esoteric
// programs written as cooking instructions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "chef <recipe-file>",
	Short: "Run, parse, and validate Chef recipes",
	Long: `chef is an interpreter for the Chef esoteric programming language,
where programs are written as cooking recipes.

Running "chef <recipe-file>" with no subcommand parses, lifts,
validates, and executes the recipe against stdin/stdout, equivalent to
"chef run <recipe-file>".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRecipe(args[0])
	},
}

func init() {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chef: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chef: %v\n", err)
		os.Exit(1)
	}
}
