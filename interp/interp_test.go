package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hilli/chef"
)

func sp(n int) chef.Span { return chef.NewSpan(n, n+1) }

func valuesOf(nums ...int) []chef.Value {
	vals := make([]chef.Value, len(nums))
	for i, n := range nums {
		vals[i] = chef.Value{Amount: n, Kind: chef.Dry}
	}
	return vals
}

func amounts(vals []chef.Value) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = v.Amount
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestExecStirRollsTable reproduces, at each minute count 0 through 6,
// the reference roll of [1,2,3,4,5].
func TestExecStirRollsTable(t *testing.T) {
	want := map[int][]int{
		0: {1, 2, 3, 4, 5},
		1: {1, 2, 3, 5, 4},
		2: {1, 2, 5, 3, 4},
		3: {1, 5, 2, 3, 4},
		4: {5, 1, 2, 3, 4},
		5: {5, 1, 2, 3, 4},
		6: {5, 1, 2, 3, 4},
	}
	for minutes, expect := range want {
		ip := New(strings.NewReader(""), &bytes.Buffer{})
		f := &frame{bowls: map[int][]chef.Value{0: valuesOf(1, 2, 3, 4, 5)}}
		if err := ip.execStir(sp(0), 0, minutes, f); err != nil {
			t.Fatalf("minutes=%d: execStir: %v", minutes, err)
		}
		got := amounts(f.bowls[0])
		if !equalInts(got, expect) {
			t.Errorf("minutes=%d: got %v, want %v", minutes, got, expect)
		}
	}
}

func TestRunHelloWorld(t *testing.T) {
	program := &chef.Program{
		Main: chef.Recipe{
			Title: "Hello World Souffle",
			Ingredients: []chef.IngredientDecl{{
				Name:         "72",
				InitialValue: intPtr(72),
				Measure:      &chef.Measure{Unit: chef.UnitMillilitres},
			}},
			Instructions: []chef.Instruction{
				chef.NewPut(sp(0), "72", 0),
				chef.NewPour(sp(1), 0, 0),
				chef.NewServes(sp(2), 1),
			},
		},
		Auxiliary: map[string]chef.Recipe{},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "H\n" {
		t.Errorf("got %q, want %q", out.String(), "H\n")
	}
}

func TestRunArithmetic(t *testing.T) {
	program := &chef.Program{
		Main: chef.Recipe{
			Title: "Sum",
			Ingredients: []chef.IngredientDecl{
				{Name: "two", InitialValue: intPtr(2)},
				{Name: "three", InitialValue: intPtr(3)},
			},
			Instructions: []chef.Instruction{
				chef.NewPut(sp(0), "two", 0),
				chef.NewArith(sp(1), chef.OpAdd, "three", 0),
				chef.NewPour(sp(2), 0, 0),
				chef.NewServes(sp(3), 1),
			},
		},
		Auxiliary: map[string]chef.Recipe{},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Arith reads the bowl's top without popping, so the original 2
	// stays under the pushed sum; Serves drains top to bottom: 5, 2.
	if out.String() != "52\n" {
		t.Errorf("got %q, want %q", out.String(), "52\n")
	}
}

func TestRunLoopWithSetAside(t *testing.T) {
	program := &chef.Program{
		Main: chef.Recipe{
			Title: "Countdown",
			Ingredients: []chef.IngredientDecl{
				{Name: "count", InitialValue: intPtr(3)},
				{Name: "flag", InitialValue: intPtr(0)},
			},
			Instructions: []chef.Instruction{
				chef.NewLoop(sp(0), "Stir", "count", []chef.Instruction{
					chef.NewPut(sp(1), "count", 0),
					chef.NewSetAside(sp(2)),
				}),
				chef.NewPour(sp(3), 0, 0),
				chef.NewServes(sp(4), 1),
			},
		},
		Auxiliary: map[string]chef.Recipe{},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Set aside fires on the loop's very first iteration, so only one
	// value (3) ever reaches dish 1.
	if out.String() != "3\n" {
		t.Errorf("got %q, want %q", out.String(), "3\n")
	}
}

func TestRunAuxiliaryReturn(t *testing.T) {
	// Main's bowl 1 starts empty; the auxiliary puts 1 then adds 1 to
	// itself, leaving its own bowl 1 as [1, 2]. On return that entire
	// sequence is appended onto the caller's (still empty) bowl 1.
	program := &chef.Program{
		Main: chef.Recipe{
			Title: "Main",
			Instructions: []chef.Instruction{
				chef.NewServeWith(sp(0), "Add One"),
				chef.NewPour(sp(1), 0, 0),
				chef.NewServes(sp(2), 1),
			},
		},
		Auxiliary: map[string]chef.Recipe{
			"add one": {
				Title:       "Add One",
				Ingredients: []chef.IngredientDecl{{Name: "one", InitialValue: intPtr(1)}},
				Instructions: []chef.Instruction{
					chef.NewPut(sp(0), "one", 0),
					chef.NewArith(sp(1), chef.OpAdd, "one", 0),
				},
			},
		},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Bowl 1 ends as [1, 2]; Serves pops top to bottom: 2 then 1.
	if out.String() != "21\n" {
		t.Errorf("got %q, want %q", out.String(), "21\n")
	}
}

func TestRunRefrigerateWithHours(t *testing.T) {
	one := 1
	program := &chef.Program{
		Main: chef.Recipe{
			Title:       "Main",
			Ingredients: []chef.IngredientDecl{{Name: "five", InitialValue: intPtr(5)}},
			Instructions: []chef.Instruction{
				chef.NewPut(sp(0), "five", 0),
				chef.NewPour(sp(1), 0, 0),
				chef.NewRefrigerate(sp(2), &one),
			},
		},
		Auxiliary: map[string]chef.Recipe{},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "5\n" {
		t.Errorf("got %q, want %q", out.String(), "5\n")
	}
}

func TestExecTakeReadsIntegerAndReprompts(t *testing.T) {
	ip := New(strings.NewReader("not a number\n42\n"), &bytes.Buffer{})
	f := &frame{
		env:          map[string]chef.Value{},
		declaredKind: map[string]chef.Kind{"count": chef.Dry},
	}
	if err := ip.execTake(chef.NewTake(sp(0), "count"), f); err != nil {
		t.Fatalf("execTake: %v", err)
	}
	got, ok := f.value("count")
	if !ok || got.Amount != 42 {
		t.Errorf("got %+v, ok=%v, want Amount=42", got, ok)
	}
}

func TestExecTakeEndOfInput(t *testing.T) {
	ip := New(strings.NewReader(""), &bytes.Buffer{})
	f := &frame{
		env:          map[string]chef.Value{},
		declaredKind: map[string]chef.Kind{"count": chef.Dry},
	}
	err := ip.execTake(chef.NewTake(sp(0), "count"), f)
	if err == nil {
		t.Fatal("expected end-of-input error")
	}
}

func TestAddDryIngredientsSumsAndReplaces(t *testing.T) {
	program := &chef.Program{
		Main: chef.Recipe{
			Title: "Main",
			Ingredients: []chef.IngredientDecl{
				{Name: "flour", InitialValue: intPtr(2)},
				{Name: "sugar", InitialValue: intPtr(3)},
			},
			Instructions: []chef.Instruction{
				chef.NewPut(sp(0), "flour", 0),
				chef.NewAddDryIngredients(sp(1), 0),
				chef.NewPour(sp(2), 0, 0),
				chef.NewServes(sp(3), 1),
			},
		},
		Auxiliary: map[string]chef.Recipe{},
	}
	var out bytes.Buffer
	ip := New(strings.NewReader(""), &out)
	if err := ip.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// AddDryIngredients replaces the bowl's contents with the single
	// sum 2+3=5, discarding the flour already put there.
	if out.String() != "5\n" {
		t.Errorf("got %q, want %q", out.String(), "5\n")
	}
}

func intPtr(n int) *int { return &n }
