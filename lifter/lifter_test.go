package lifter

import (
	"testing"

	"github.com/hilli/chef"
)

func span(n int) chef.Span { return chef.NewSpan(n, n+1) }

func TestLiftPairsVerbSentinelsIntoLoop(t *testing.T) {
	recipe := chef.Recipe{
		Title: "Main",
		Instructions: []chef.Instruction{
			chef.NewVerbStart(span(0), "Mash", "cherries"),
			chef.NewSetAside(span(1)),
			chef.NewVerbUntil(span(2), "mashed"),
			chef.NewServes(span(3), 1),
		},
	}

	program, err := Lift([]chef.Recipe{recipe})
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if len(program.Main.Instructions) != 2 {
		t.Fatalf("got %d top-level instructions, want 2: %#v", len(program.Main.Instructions), program.Main.Instructions)
	}
	loop, ok := program.Main.Instructions[0].(chef.Loop)
	if !ok {
		t.Fatalf("instruction 0 = %T, want chef.Loop", program.Main.Instructions[0])
	}
	if loop.Verb != "Mash" || loop.Ingredient != "cherries" {
		t.Errorf("loop = %+v", loop)
	}
	if len(loop.Body) != 1 {
		t.Fatalf("loop body = %#v, want 1 instruction", loop.Body)
	}
	if _, ok := program.Main.Instructions[1].(chef.Serves); !ok {
		t.Errorf("instruction 1 = %T, want chef.Serves", program.Main.Instructions[1])
	}
}

func TestLiftNestsLoops(t *testing.T) {
	recipe := chef.Recipe{
		Title: "Main",
		Instructions: []chef.Instruction{
			chef.NewVerbStart(span(0), "Stir", "outer"),
			chef.NewVerbStart(span(1), "Mix", "inner"),
			chef.NewSetAside(span(2)),
			chef.NewVerbUntil(span(3), "mixed"),
			chef.NewVerbUntil(span(4), "stirred"),
		},
	}

	program, err := Lift([]chef.Recipe{recipe})
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	outer := program.Main.Instructions[0].(chef.Loop)
	if outer.Verb != "Stir" || len(outer.Body) != 1 {
		t.Fatalf("outer = %+v", outer)
	}
	inner, ok := outer.Body[0].(chef.Loop)
	if !ok || inner.Verb != "Mix" {
		t.Fatalf("inner = %#v", outer.Body[0])
	}
}

func TestLiftUnterminatedLoopErrors(t *testing.T) {
	recipe := chef.Recipe{
		Title: "Broken",
		Instructions: []chef.Instruction{
			chef.NewVerbStart(span(0), "Mash", "cherries"),
		},
	}
	if _, err := Lift([]chef.Recipe{recipe}); err == nil {
		t.Fatal("expected an unterminated-loop error")
	}
}

func TestLiftUnmatchedUntilErrors(t *testing.T) {
	recipe := chef.Recipe{
		Title: "Broken",
		Instructions: []chef.Instruction{
			chef.NewVerbUntil(span(0), "mashed"),
		},
	}
	if _, err := Lift([]chef.Recipe{recipe}); err == nil {
		t.Fatal("expected an unmatched-until error")
	}
}

func TestLiftAggregatesAuxiliariesByNormalisedTitle(t *testing.T) {
	main := chef.Recipe{Title: "Main"}
	aux := chef.Recipe{Title: "  Caramel SAUCE  "}

	program, err := Lift([]chef.Recipe{main, aux})
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if _, ok := program.Auxiliary["caramel sauce"]; !ok {
		t.Fatalf("auxiliary map = %#v, missing normalised key", program.Auxiliary)
	}
}

func TestLiftDuplicateAuxiliaryTitleLastWins(t *testing.T) {
	first := chef.Recipe{Title: "Sub", Instructions: []chef.Instruction{chef.NewSetAside(span(0))}}
	second := chef.Recipe{Title: "Sub"}

	program, err := Lift([]chef.Recipe{{Title: "Main"}, first, second})
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if len(program.Auxiliary["sub"].Instructions) != 0 {
		t.Fatalf("expected the second (empty) declaration to win, got %#v", program.Auxiliary["sub"])
	}
}
