package chef_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hilli/chef/interp"
	"github.com/hilli/chef/internal/spectest"
	"github.com/hilli/chef/lifter"
	"github.com/hilli/chef/parser"
	"github.com/hilli/chef/validator"
)

// TestCanonicalScenarios drives every fixture in testdata/canonical.yaml
// through the full pipeline in the same stage order as doc.go's
// example (with a fixed Mix seed), checking
// either the expected stdout or that the expected stage's error
// surfaces.
func TestCanonicalScenarios(t *testing.T) {
	tests, err := spectest.LoadFile("testdata/canonical.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(tests.Tests) == 0 {
		t.Fatal("no scenarios loaded")
	}

	for name, scenario := range tests.Tests {
		t.Run(name, func(t *testing.T) {
			runScenario(t, scenario)
		})
	}
}

func runScenario(t *testing.T, scenario spectest.Scenario) {
	t.Helper()

	flat, err := parser.New().ParseString(scenario.Source)
	if err != nil {
		checkExpectedError(t, scenario, err)
		return
	}

	program, err := lifter.Lift(flat)
	if err != nil {
		checkExpectedError(t, scenario, err)
		return
	}

	if err := validator.Validate(program); err != nil {
		checkExpectedError(t, scenario, err)
		return
	}

	var out bytes.Buffer
	ip := interp.New(strings.NewReader(scenario.Stdin), &out, interp.WithSeed(1))
	if err := ip.Run(program); err != nil {
		checkExpectedError(t, scenario, err)
		return
	}

	if scenario.WantErrorContains != "" {
		t.Fatalf("expected an error containing %q, run succeeded with stdout %q", scenario.WantErrorContains, out.String())
	}
	if out.String() != scenario.Stdout {
		t.Errorf("stdout = %q, want %q", out.String(), scenario.Stdout)
	}
}

func checkExpectedError(t *testing.T, scenario spectest.Scenario, err error) {
	t.Helper()
	if scenario.WantErrorContains == "" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), scenario.WantErrorContains) {
		t.Errorf("error = %q, want it to contain %q", err.Error(), scenario.WantErrorContains)
	}
}
