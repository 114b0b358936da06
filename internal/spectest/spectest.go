// Package spectest loads the canonical end-to-end scenario table from
// YAML, the way the teacher's spec package loads Cooklang's canonical
// test corpus, so the root package's end-to-end test and any future
// scenario additions share one fixture format instead of growing
// inline Go literals per test.
package spectest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// CanonicalTests is the top-level shape of testdata/canonical.yaml: a
// named table of scenarios, each a recipe source plus its expected
// stdin/stdout/error behaviour.
type CanonicalTests struct {
	Tests map[string]Scenario `yaml:"tests"`
}

// Scenario is one named end-to-end case: Chef source, optional stdin
// for any Take instructions, and the expected outcome. Exactly one of
// Stdout or WantErrorContains should be set for a well-formed fixture;
// a scenario with neither simply expects a clean run with no output.
type Scenario struct {
	Source            string `yaml:"source"`
	Stdin             string `yaml:"stdin"`
	Stdout            string `yaml:"stdout"`
	WantErrorContains string `yaml:"want_error_contains"`
}

// LoadFile reads and parses a canonical scenario file.
func LoadFile(path string) (CanonicalTests, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CanonicalTests{}, fmt.Errorf("spectest: read %s: %w", path, err)
	}
	return LoadData(data)
}

// LoadData parses scenario YAML already read into memory.
func LoadData(data []byte) (CanonicalTests, error) {
	var out CanonicalTests
	if err := yaml.Unmarshal(data, &out); err != nil {
		return CanonicalTests{}, fmt.Errorf("spectest: unmarshal: %w", err)
	}
	return out, nil
}
