package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:               "validate <recipe-file>",
	Short:             "Check a recipe's recipe- and ingredient-references without running it",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeChefFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if _, _, err := loadValidProgram(filename); err != nil {
			return err
		}
		printSuccess("%s is valid", filename)
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
