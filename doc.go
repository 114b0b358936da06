// Package chef implements an interpreter for Chef, the esoteric
// programming language in which programs are written as cooking
// recipes. A Chef program is a main recipe plus zero or more auxiliary
// recipes; recipes manipulate named numeric ingredients, push them onto
// ordered mixing bowls, and emit characters or numbers via baking
// dishes.
//
// # Pipeline
//
// Running a recipe goes through four stages, each living in its own
// package:
//
//	source text --[lexer+parser]--> flat recipes --[lifter]--> *chef.Program --[validator]--> checked --[interp]--> output
//
//	content, _ := os.ReadFile("hello.chef")
//	flat, err := parser.New().ParseBytes(content)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	program, err := lifter.Lift(flat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := validator.Validate(program); err != nil {
//	    log.Fatal(err)
//	}
//	if err := interp.New(os.Stdin, os.Stdout).Run(program); err != nil {
//	    log.Fatal(err)
//	}
//
// # Recipe Structure
//
// A recipe is a title, optional comments, an ingredient list, an
// optional cooking time and oven temperature, a method (an ordered list
// of instructions, with loops nested as Loop nodes), and an optional
// trailing Serves statement. See Program, Recipe, IngredientDecl,
// Instruction and Value for the full data model.
//
// # Mixing Bowls and Baking Dishes
//
// Bowls and dishes are ordinal-indexed stacks of tagged values. Values
// are snapshots: changing an ingredient's dry/wet tag after it has been
// pushed into a bowl does not change the tag of the value already
// there. The interp package keeps them per call frame, as maps from
// utensil index to a slice of Values.
package chef
