package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"bibmap/internal/record"
)

// UnmarshalYAML accepts either a single key or a list of keys. "$type" and
// "$label" name the pseudo-fields.
func (k *KeyList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string

		if err := node.Decode(&s); err != nil {
			return err
		}

		if s == "" {
			*k = KeyList{}
		} else {
			*k = KeyList{record.ParseKey(s)}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		keys := make(KeyList, 0, len(arr))
		for _, s := range arr {
			keys = append(keys, record.ParseKey(s))
		}

		*k = keys

		return nil

	default:
		return fmt.Errorf("line %d: expected key or list of keys, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a single string if the list has one key, otherwise a
// list.
func (k KeyList) MarshalYAML() (any, error) {
	if k.IsSingle() {
		return k[0].String(), nil
	}

	return k.Strings(), nil
}
