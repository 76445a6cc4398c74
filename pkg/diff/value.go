package diff

import (
	"fmt"
	"sort"
)

// Value is a structured value under comparison: null, boolean, number, string,
// sequence, or mapping. It is a closed set; every Value the engine sees is one
// of the six kinds below.
type Value interface {
	isValue()
}

type Null struct{}

type Bool bool

type Number float64

type String string

type Sequence []Value

// Mapping holds string-keyed children. Key order is irrelevant for comparison.
type Mapping map[string]Value

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Number) isValue()   {}
func (String) isValue()   {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}

// FromAny converts an untyped host value (as produced by encoding/json or
// yaml.v3 unmarshalling) into a Value.
func FromAny(v interface{}) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case uint64:
		return Number(val), nil
	case string:
		return String(val), nil
	case []interface{}:
		seq := make(Sequence, len(val))
		for i, elem := range val {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			seq[i] = converted
		}
		return seq, nil
	case map[string]interface{}:
		mapping := make(Mapping, len(val))
		for key, elem := range val {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			mapping[key] = converted
		}
		return mapping, nil
	case Value:
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToAny converts a Value back into the untyped form hosts exchange. Null
// becomes nil.
func ToAny(v Value) interface{} {
	switch val := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(val)
	case Number:
		return float64(val)
	case String:
		return string(val)
	case Sequence:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = ToAny(elem)
		}
		return out
	case Mapping:
		out := make(map[string]interface{}, len(val))
		for key, elem := range val {
			out[key] = ToAny(elem)
		}
		return out
	default:
		return nil
	}
}

// sortedKeys returns the mapping's keys in lexical order so walk output is
// deterministic across runs.
func sortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
