// Package lifter implements stage 2 of the pipeline (spec.md §4.2): it
// walks a recipe's flat instruction list, pairing VerbStart/VerbUntil
// sentinels into nested chef.Loop nodes via an explicit stack of open
// loop frames, and aggregates the lifted recipes into a chef.Program.
package lifter

import "github.com/hilli/chef"

// Lift turns the parser's flat output into a Program: the first
// recipe in source order becomes the main recipe, the rest are keyed
// into the auxiliary map by normalised title (last declaration wins
// on a title collision, per spec.md §9).
func Lift(recipes []chef.Recipe) (*chef.Program, error) {
	if len(recipes) == 0 {
		return nil, chef.NewError(chef.StructuralError, chef.NewSpan(0, 0), "no recipes to lift")
	}

	main, err := liftRecipe(recipes[0])
	if err != nil {
		return nil, err
	}

	auxiliary := make(map[string]chef.Recipe, len(recipes)-1)
	for _, r := range recipes[1:] {
		lifted, err := liftRecipe(r)
		if err != nil {
			return nil, err
		}
		auxiliary[chef.NormaliseTitle(lifted.Title)] = lifted
	}

	return &chef.Program{Main: main, Auxiliary: auxiliary}, nil
}

// loopFrame is an open loop awaiting its matching VerbUntil.
type loopFrame struct {
	verb       string
	ingredient string
	span       chef.Span
	body       []chef.Instruction
}

// liftRecipe runs the linear scan-with-a-loop-stack algorithm: on a
// VerbStart, push a new frame; on any other instruction, append it to
// the innermost open frame (or the recipe's top level, if none is
// open); on a VerbUntil, pop the innermost frame and emit it as a
// Loop, its span widened to cover the until.
func liftRecipe(r chef.Recipe) (chef.Recipe, error) {
	var stack []*loopFrame
	var top []chef.Instruction

	appendInstruction := func(inst chef.Instruction) {
		if len(stack) == 0 {
			top = append(top, inst)
			return
		}
		f := stack[len(stack)-1]
		f.body = append(f.body, inst)
		f.span = f.span.Cover(inst.Span())
	}

	for _, inst := range r.Instructions {
		switch v := inst.(type) {
		case chef.VerbStart:
			stack = append(stack, &loopFrame{verb: v.Verb, ingredient: v.Ingredient, span: v.Span()})
		case chef.VerbUntil:
			if len(stack) == 0 {
				return chef.Recipe{}, chef.NewError(chef.StructuralError, v.Span(),
					"recipe %q: `until` with no matching loop start", r.Title)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			loopSpan := f.span.Cover(v.Span())
			appendInstruction(chef.NewLoop(loopSpan, f.verb, f.ingredient, f.body))
		default:
			appendInstruction(inst)
		}
	}

	if len(stack) > 0 {
		unterminated := stack[len(stack)-1]
		return chef.Recipe{}, chef.NewError(chef.StructuralError, unterminated.span,
			"recipe %q: unterminated loop %q", r.Title, unterminated.verb)
	}

	r.Instructions = top
	return r, nil
}
