package program

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perbu/celeval/pkg/cel"
)

// Scenario is one row of spec.md section 8's end-to-end scenario table,
// expressed as data so new cases can be added without touching test code.
type Scenario struct {
	Name string         `yaml:"name"`
	Expr string         `yaml:"expr"`
	Env  map[string]any `yaml:"env"`
	Want any            `yaml:"want"`
}

// LoadScenarios reads a YAML file holding a list of Scenario records.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario fixture %s: %w", path, err)
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("parsing scenario fixture %s: %w", path, err)
	}
	return scenarios, nil
}

// Run compiles and evaluates s.Expr against s.Env and reports whether the
// result deep-equals s.Want (after s.Want is itself converted via
// FromYAML), so scenario-table tests reduce to one Run call per row.
func (s Scenario) Run(opts ...Option) (got cel.Value, want cel.Value, ok bool, err error) {
	env, err := EnvFromYAML(s.Env)
	if err != nil {
		return cel.Value{}, cel.Value{}, false, err
	}
	got, err = Eval(s.Expr, env, opts...)
	if err != nil {
		return cel.Value{}, cel.Value{}, false, err
	}
	want, err = FromYAML(s.Want)
	if err != nil {
		return cel.Value{}, cel.Value{}, false, err
	}
	return got, want, cel.Equal(got, want), nil
}
