package rules

import (
	"slices"

	"bibmap/internal/common"
	"bibmap/internal/condition"
	"bibmap/internal/record"
)

// Table represents the root of a YAML rule-table file.
type Table struct {
	// Version of the rule schema.
	Version string `yaml:"version,omitempty"`

	// Dialect names the source schema the table is written for.
	Dialect string `yaml:"dialect,omitempty"`

	// Rules in evaluation order.
	Rules []Rule `yaml:"rules"`
}

// Rule maps source keys to target keys.
type Rule struct {
	// Source keys, supplied positionally to the converter.
	Source KeyList `yaml:"source"`

	// Target keys, produced positionally by the converter.
	Target KeyList `yaml:"target"`

	// Converter names a registered converter; empty means identity.
	Converter string `yaml:"converter,omitempty"`

	// When gates the rule on both records.
	When *condition.When `yaml:"when,omitempty"`

	// Note is free text for table authors.
	Note string `yaml:"note,omitempty"`
}

// Keys returns the keys of a side.
func (r *Rule) Keys(s record.Side) KeyList {
	if s == record.TargetSide {
		return r.Target
	}

	return r.Source
}

// KeyList is a list of keys that unmarshals from a single string or a list.
type KeyList []record.Key

// First returns the first key or the zero key.
func (k KeyList) First() record.Key {
	if v, ok := common.First(k); ok {
		return v
	}

	return record.Key{}
}

// IsEmpty returns true if the list is empty.
func (k KeyList) IsEmpty() bool {
	return common.IsEmpty(k)
}

// IsSingle returns true if the list has exactly one key.
func (k KeyList) IsSingle() bool {
	return common.IsSingle(k)
}

// IsMultiple returns true if the list has more than one key.
func (k KeyList) IsMultiple() bool {
	return common.IsMultiple(k)
}

// Contains returns true if the list contains the key.
func (k KeyList) Contains(key record.Key) bool {
	return slices.Contains(k, key)
}

// Strings returns the rule-table spelling of every key.
func (k KeyList) Strings() []string {
	out := make([]string, len(k))
	for i, key := range k {
		out[i] = key.String()
	}

	return out
}

// Cardinality represents the rule cardinality.
type Cardinality int

const (
	CardinalityOneToOne   Cardinality = iota // 1:1 - single source to single target
	CardinalityOneToMany                     // 1:N - single source to multiple targets
	CardinalityManyToOne                     // N:1 - multiple sources to single target
	CardinalityManyToMany                    // N:M - multiple sources to multiple targets
)

// String returns a human-readable cardinality.
func (c Cardinality) String() string {
	switch c {
	case CardinalityOneToOne:
		return "1:1"
	case CardinalityOneToMany:
		return "1:N"
	case CardinalityManyToOne:
		return "N:1"
	case CardinalityManyToMany:
		return "N:M"
	default:
		return common.UnknownStr
	}
}

// GetCardinality returns the cardinality of the rule read in the to-target
// direction.
func (r *Rule) GetCardinality() Cardinality {
	switch {
	case !r.Source.IsMultiple() && !r.Target.IsMultiple():
		return CardinalityOneToOne
	case !r.Source.IsMultiple():
		return CardinalityOneToMany
	case !r.Target.IsMultiple():
		return CardinalityManyToOne
	default:
		return CardinalityManyToMany
	}
}
