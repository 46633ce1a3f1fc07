package condition

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"bibmap/internal/record"
)

var errFuncMatcher = errors.New("func matchers cannot be serialized")

// UnmarshalYAML accepts true, false or a mapping of field matchers. Field
// order is kept.
func (c *Clause) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var b bool

		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: expected true, false or a field map: %w", node.Line, err)
		}

		if b {
			*c = Clause{Mode: ModeAlways}
		} else {
			*c = Clause{Mode: ModeNever}
		}

		return nil

	case yaml.MappingNode:
		fields := make([]FieldCondition, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var m Matcher

			if err := node.Content[i+1].Decode(&m); err != nil {
				return fmt.Errorf("field %q: %w", node.Content[i].Value, err)
			}

			fields = append(fields, FieldCondition{
				Key:     record.ParseKey(node.Content[i].Value),
				Matcher: m,
			})
		}

		*c = Clause{Mode: ModeFields, Fields: fields}

		return nil

	default:
		return fmt.Errorf("line %d: expected true, false or a field map, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the shortest form of the clause.
func (c Clause) MarshalYAML() (any, error) {
	switch c.Mode {
	case ModeAlways:
		return true, nil
	case ModeNever:
		return false, nil
	}

	out := &yaml.Node{Kind: yaml.MappingNode}

	for _, f := range c.Fields {
		v, err := f.Matcher.MarshalYAML()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}

		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return nil, err
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key.String()},
			&val)
	}

	return out, nil
}

// UnmarshalYAML decodes the matcher shorthands listed in the package docs.
func (m *Matcher) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var b bool

			if err := node.Decode(&b); err != nil {
				return err
			}

			if b {
				*m = Present()
			} else {
				*m = Absent()
			}

			return nil
		}

		*m = Equals(node.Value)

		return nil

	case yaml.SequenceNode:
		var vs []string

		if err := node.Decode(&vs); err != nil {
			return err
		}

		*m = OneOf(vs...)

		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: matcher map must have exactly one key", node.Line)
		}

		op, arg := Op(node.Content[0].Value), node.Content[1]

		switch op {
		case OpNot, OpMapsTo, OpOneOf, OpEquals:
			vs, err := stringList(arg)
			if err != nil {
				return err
			}

			*m = Matcher{Op: op, Values: vs}

		case OpPattern, OpNotPattern:
			re, err := regexp.Compile(arg.Value)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", arg.Line, op, err)
			}

			*m = Matcher{Op: op, Pattern: re}

		default:
			return fmt.Errorf("line %d: unknown matcher %q", node.Line, op)
		}

		return m.Validate()

	default:
		return fmt.Errorf("line %d: unsupported matcher form", node.Line)
	}
}

// MarshalYAML writes the matcher in the form UnmarshalYAML reads.
func (m Matcher) MarshalYAML() (any, error) {
	switch m.Op {
	case OpPresent:
		return true, nil
	case OpAbsent:
		return false, nil
	case OpEquals:
		if len(m.Values) == 1 {
			return m.Values[0], nil
		}

		return m.Values, nil
	case OpOneOf:
		return m.Values, nil
	case OpNot, OpMapsTo:
		if len(m.Values) == 1 {
			return map[string]any{string(m.Op): m.Values[0]}, nil
		}

		return map[string]any{string(m.Op): m.Values}, nil
	case OpPattern, OpNotPattern:
		return map[string]string{string(m.Op): m.Pattern.String()}, nil
	case OpFunc:
		return nil, errFuncMatcher
	default:
		return nil, fmt.Errorf("unknown matcher %q", m.Op)
	}
}

func stringList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var vs []string

		if err := node.Decode(&vs); err != nil {
			return nil, err
		}

		return vs, nil
	default:
		return nil, fmt.Errorf("line %d: expected string or list", node.Line)
	}
}
