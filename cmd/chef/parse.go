package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hilli/chef"
	"github.com/spf13/cobra"
)

var (
	parseJSON     bool
	parseYAML     bool
	parseDetailed bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <recipe-file>",
	Short: "Parse and lift a recipe without running it",
	Long: `Parse runs stages A (lexical) and B (structural lift) over a recipe
and prints the resulting instruction tree, for debugging recipes
without executing them.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeChefFiles,
	RunE:              runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output the lifted program as JSON")
	parseCmd.Flags().BoolVar(&parseYAML, "yaml", false, "output the lifted program as YAML")
	parseCmd.Flags().BoolVarP(&parseDetailed, "detailed", "d", false, "show per-ingredient declarations alongside instructions")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	_, program, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	format := cfg.ParseFormat
	switch {
	case parseJSON:
		format = "json"
	case parseYAML:
		format = "yaml"
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(program)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
	default:
		displayProgram(program, parseDetailed)
	}
	return nil
}

func displayProgram(program *chef.Program, detailed bool) {
	fmt.Printf("Main: %s\n", program.Main.Title)
	displayRecipe(program.Main, detailed)

	for _, aux := range program.Auxiliary {
		fmt.Printf("\nAuxiliary: %s\n", aux.Title)
		displayRecipe(aux, detailed)
	}
}

func displayRecipe(recipe chef.Recipe, detailed bool) {
	if detailed && len(recipe.Ingredients) > 0 {
		fmt.Println("  Ingredients:")
		for _, ing := range recipe.Ingredients {
			value := "unset"
			if ing.InitialValue != nil {
				value = fmt.Sprintf("%d", *ing.InitialValue)
			}
			fmt.Printf("    - %s = %s (%s)\n", ing.Name, value, ing.Kind())
		}
	}
	fmt.Println("  Method:")
	for i, inst := range recipe.Instructions {
		printInstruction(inst, i+1, "    ")
	}
}

func printInstruction(inst chef.Instruction, n int, indent string) {
	fmt.Printf("%s%d. %s\n", indent, n, describeInstruction(inst))
	if loop, ok := inst.(chef.Loop); ok {
		for i, body := range loop.Body {
			printInstruction(body, i+1, indent+"    ")
		}
	}
}

func describeInstruction(inst chef.Instruction) string {
	// Index 0 is the default utensil (the 1st); any other index is
	// already the ordinal written in the source.
	ordinal := func(index int) int {
		if index == 0 {
			return 1
		}
		return index
	}
	switch v := inst.(type) {
	case chef.Take:
		return fmt.Sprintf("Take %s from refrigerator", v.Ingredient)
	case chef.Put:
		return fmt.Sprintf("Put %s into bowl %d", v.Ingredient, ordinal(v.Bowl))
	case chef.Fold:
		return fmt.Sprintf("Fold %s into bowl %d", v.Ingredient, ordinal(v.Bowl))
	case chef.Arith:
		return fmt.Sprintf("Arith(%v) %s, bowl %d", v.Op, v.Ingredient, ordinal(v.Bowl))
	case chef.AddDryIngredients:
		return fmt.Sprintf("Add dry ingredients to bowl %d", ordinal(v.Bowl))
	case chef.Liquefy:
		return fmt.Sprintf("Liquefy %s", v.Ingredient)
	case chef.LiquefyContents:
		return fmt.Sprintf("Liquefy contents of bowl %d", ordinal(v.Bowl))
	case chef.Stir:
		return fmt.Sprintf("Stir bowl %d for %d minutes", ordinal(v.Bowl), v.Minutes)
	case chef.StirIngredient:
		return fmt.Sprintf("Stir bowl %d for %s minutes", ordinal(v.Bowl), v.Ingredient)
	case chef.Mix:
		return fmt.Sprintf("Mix bowl %d", ordinal(v.Bowl))
	case chef.Clean:
		return fmt.Sprintf("Clean bowl %d", ordinal(v.Bowl))
	case chef.Pour:
		return fmt.Sprintf("Pour bowl %d into dish %d", ordinal(v.Bowl), ordinal(v.Dish))
	case chef.Loop:
		return fmt.Sprintf("Loop %s %s (...)", v.Verb, v.Ingredient)
	case chef.SetAside:
		return "Set aside"
	case chef.ServeWith:
		return fmt.Sprintf("Serve with %s", v.Recipe)
	case chef.Refrigerate:
		if v.Hours != nil {
			return fmt.Sprintf("Refrigerate for %d hours", *v.Hours)
		}
		return "Refrigerate"
	case chef.Serves:
		return fmt.Sprintf("Serves %d", v.Count)
	default:
		return fmt.Sprintf("%T", inst)
	}
}
