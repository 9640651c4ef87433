package program

import (
	"fmt"

	"github.com/perbu/celeval/pkg/cel"
)

// FromYAML converts a value decoded by gopkg.in/yaml.v3 into any (the
// shape yaml.Unmarshal produces for `map[string]any`/`[]any`/scalars)
// into a cel.Value. It is also used to decode the {expression,
// environment} input file and scenario-fixture `want` values.
func FromYAML(v any) (cel.Value, error) {
	switch x := v.(type) {
	case nil:
		return cel.Null(), nil
	case bool:
		return cel.Bool(x), nil
	case int:
		return cel.Int(int64(x)), nil
	case int64:
		return cel.Int(x), nil
	case uint64:
		return cel.Uint(x), nil
	case float64:
		return cel.Double(x), nil
	case string:
		return cel.String(x), nil
	case []byte:
		return cel.Bytes(x), nil
	case []any:
		out := make([]cel.Value, len(x))
		for i, e := range x {
			cv, err := FromYAML(e)
			if err != nil {
				return cel.Value{}, err
			}
			out[i] = cv
		}
		return cel.List(out), nil
	case map[string]any:
		m := cel.NewMapping()
		for k, e := range x {
			cv, err := FromYAML(e)
			if err != nil {
				return cel.Value{}, err
			}
			m.Set(cel.String(k), cv)
		}
		return cel.Map(m), nil
	default:
		return cel.Value{}, fmt.Errorf("cannot convert %T to a cel.Value", v)
	}
}

// EnvFromYAML converts a decoded {name: value, ...} mapping into an
// interpreter.Env.
func EnvFromYAML(raw map[string]any) (Env, error) {
	env := make(Env, len(raw))
	for k, v := range raw {
		cv, err := FromYAML(v)
		if err != nil {
			return nil, fmt.Errorf("environment key %q: %w", k, err)
		}
		env[k] = cv
	}
	return env, nil
}
