package main

import (
	"os"

	"github.com/hilli/chef/interp"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:               "run <recipe-file>",
	Short:             "Parse, validate, and execute a Chef recipe",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeChefFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRecipe(filename string) error {
	src, program, err := loadValidProgram(filename)
	if err != nil {
		return err
	}

	ip := interp.New(os.Stdin, os.Stdout, interp.WithSeed(cfg.seedOrDefault()))
	return src.annotateError(ip.Run(program))
}
