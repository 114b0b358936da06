// Package validator implements spec.md §4.3: it checks that every
// ServeWith names a known auxiliary recipe and that every instruction
// naming an ingredient refers to one the recipe actually declares,
// recursing into Loop bodies. A validator failure is fatal — nothing
// downstream runs the program.
package validator

import (
	"strings"

	"github.com/hilli/chef"
)

// Validate runs both checks against program. Recipe-reference
// validation runs first across every recipe (main and auxiliary);
// ingredient-reference validation then runs per recipe. Either check
// returns on its first violation rather than accumulating every
// fault in the program — mirroring the walk this package is grounded
// on, which collects into a slice internally but always surfaces only
// the first element.
func Validate(program *chef.Program) error {
	if err := validateRecipeReferences(program); err != nil {
		return err
	}
	if err := validateIngredientReferences(program.Main); err != nil {
		return err
	}
	for _, recipe := range program.Auxiliary {
		if err := validateIngredientReferences(recipe); err != nil {
			return err
		}
	}
	return nil
}

func validateRecipeReferences(program *chef.Program) error {
	if err := validateRecipeReferencesIn(program.Main, program.Auxiliary); err != nil {
		return err
	}
	for _, recipe := range program.Auxiliary {
		if err := validateRecipeReferencesIn(recipe, program.Auxiliary); err != nil {
			return err
		}
	}
	return nil
}

func validateRecipeReferencesIn(recipe chef.Recipe, auxiliary map[string]chef.Recipe) error {
	var fault error
	visit(recipe.Instructions, func(inst chef.Instruction) bool {
		sw, ok := inst.(chef.ServeWith)
		if !ok {
			return true
		}
		if _, known := auxiliary[chef.NormaliseTitle(sw.Recipe)]; !known {
			fault = chef.NewError(chef.ReferenceError, sw.Span(),
				"recipe %q not found; available recipes: %s", sw.Recipe, availableRecipes(auxiliary))
			return false
		}
		return true
	})
	return fault
}

func validateIngredientReferences(recipe chef.Recipe) error {
	declared := make(map[string]bool, len(recipe.Ingredients))
	for _, decl := range recipe.Ingredients {
		declared[strings.ToLower(strings.TrimSpace(decl.Name))] = true
	}

	var fault error
	visit(recipe.Instructions, func(inst chef.Instruction) bool {
		name, ok := ingredientNameOf(inst)
		if !ok {
			return true
		}
		if !declared[strings.ToLower(strings.TrimSpace(name))] {
			fault = chef.NewError(chef.ReferenceError, inst.Span(),
				"recipe %q: ingredient %q not declared", recipe.Title, name)
			return false
		}
		return true
	})
	return fault
}

// ingredientNameOf returns the ingredient name an instruction refers
// to, for the instruction kinds spec.md §4.3 lists.
func ingredientNameOf(inst chef.Instruction) (string, bool) {
	switch v := inst.(type) {
	case chef.Take:
		return v.Ingredient, true
	case chef.Put:
		return v.Ingredient, true
	case chef.Fold:
		return v.Ingredient, true
	case chef.Arith:
		return v.Ingredient, true
	case chef.Liquefy:
		return v.Ingredient, true
	case chef.StirIngredient:
		return v.Ingredient, true
	default:
		return "", false
	}
}

// visit walks instructions in order, recursing into Loop bodies,
// calling fn on each instruction. fn returns false to stop the walk
// early (a fault has been recorded).
func visit(instructions []chef.Instruction, fn func(chef.Instruction) bool) bool {
	for _, inst := range instructions {
		if !fn(inst) {
			return false
		}
		if loop, ok := inst.(chef.Loop); ok {
			if !visit(loop.Body, fn) {
				return false
			}
		}
	}
	return true
}

func availableRecipes(auxiliary map[string]chef.Recipe) string {
	names := make([]string, 0, len(auxiliary))
	for name := range auxiliary {
		names = append(names, name)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
