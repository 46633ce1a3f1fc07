package rules

import (
	"errors"
	"fmt"
	"iter"

	"bibmap/internal/convert"
	"bibmap/internal/diagnostic"
	"bibmap/internal/match"
	"bibmap/internal/record"
)

var (
	// ErrUnknownConverter reports a rule naming an unregistered converter.
	ErrUnknownConverter = errors.New("unknown converter")
	// ErrArity reports a rule whose key count does not fit its converter.
	ErrArity = convert.ErrArity
	// ErrInvalid reports any other structural problem in a rule table.
	ErrInvalid = errors.New("invalid rule table")
)

// Diagnostic codes produced by Validate.
const (
	CodeTableNil         = "table_is_nil"
	CodeRegistryNil      = "registry_is_nil"
	CodeNoRules          = "no_rules"
	CodeEmptySource      = "empty_source"
	CodeEmptyTarget      = "empty_target"
	CodeDuplicateKey     = "duplicate_key"
	CodeUnknownConverter = "unknown_converter"
	CodeArity            = "arity_mismatch"
	CodePositional       = "positional_mismatch"
	CodeInvalidCondition = "invalid_condition"
	CodeOneWay           = "one_way_converter"
)

// Bound is a rule bound to its converter.
type Bound struct {
	Rule *Rule

	// Index is the position of the rule in its table.
	Index int
	// ID identifies the rule in logs and diagnostics, e.g. "biblatex#4".
	ID string
	// Converter is nil for identity rules.
	Converter *convert.Converter
}

// Compiled is a validated rule table bound to a converter registry.
type Compiled struct {
	table *Table
	rules []Bound
}

// Table returns the table the rules were compiled from.
func (c *Compiled) Table() *Table {
	return c.table
}

// Len returns the number of rules.
func (c *Compiled) Len() int {
	return len(c.rules)
}

// All yields the rules in table order.
func (c *Compiled) All() iter.Seq[*Bound] {
	return func(yield func(*Bound) bool) {
		for i := range c.rules {
			if !yield(&c.rules[i]) {
				return
			}
		}
	}
}

// Compile validates the table against the registry and binds every rule to
// its converter. Validation errors are returned wrapped in ErrUnknownConverter,
// ErrArity or ErrInvalid according to the first problem found; the full list
// is available from Validate.
func Compile(t *Table, reg *convert.Registry) (*Compiled, error) {
	diags := Validate(t, reg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", sentinelFor(diags.Errors[0].Code), diags.Error())
	}

	c := &Compiled{
		table: t,
		rules: make([]Bound, len(t.Rules)),
	}

	for i := range t.Rules {
		r := &t.Rules[i]
		c.rules[i] = Bound{
			Rule:      r,
			Index:     i,
			ID:        t.RuleID(i),
			Converter: reg.Get(r.Converter),
		}
	}

	return c, nil
}

// MustCompile is Compile for embedded tables.
func MustCompile(t *Table, reg *convert.Registry) *Compiled {
	c, err := Compile(t, reg)
	if err != nil {
		panic(err)
	}

	return c
}

// Validate checks a rule table against a converter registry.
func Validate(t *Table, reg *convert.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		res.AddError(CodeTableNil, "rule table is nil", "", "")
		return res
	}

	if reg == nil {
		res.AddError(CodeRegistryNil, "converter registry is nil", "", "")
		return res
	}

	if len(t.Rules) == 0 {
		res.AddWarning(CodeNoRules, "rule table has no rules", "", "")
	}

	for i := range t.Rules {
		validateRule(res, t.RuleID(i), &t.Rules[i], reg)
	}

	return res
}

func validateRule(res *diagnostic.Diagnostics, id string, r *Rule, reg *convert.Registry) {
	if r.Source.IsEmpty() {
		res.AddError(CodeEmptySource, "rule has no source keys", id, "")
	}

	if r.Target.IsEmpty() {
		res.AddError(CodeEmptyTarget, "rule has no target keys", id, "")
	}

	for _, side := range []record.Side{record.SourceSide, record.TargetSide} {
		seen := map[record.Key]struct{}{}

		for _, k := range r.Keys(side) {
			if _, dup := seen[k]; dup {
				res.AddError(CodeDuplicateKey,
					fmt.Sprintf("key listed twice on the %s side", side), id, k.String())
			}

			seen[k] = struct{}{}
		}
	}

	if err := r.When.Side(record.SourceSide).Validate(); err != nil {
		res.AddError(CodeInvalidCondition, "source condition: "+err.Error(), id, "")
	}

	if err := r.When.Side(record.TargetSide).Validate(); err != nil {
		res.AddError(CodeInvalidCondition, "target condition: "+err.Error(), id, "")
	}

	if r.Converter == "" {
		if r.GetCardinality() == CardinalityManyToMany && len(r.Source) != len(r.Target) {
			res.AddError(CodePositional,
				fmt.Sprintf("identity rule maps %d source keys to %d target keys", len(r.Source), len(r.Target)),
				id, "")
		}

		return
	}

	c := reg.Get(r.Converter)
	if c == nil {
		res.AddError(CodeUnknownConverter,
			fmt.Sprintf("converter %q is not registered", r.Converter),
			id, "", match.Suggest(r.Converter, reg.Names(), 3)...)

		return
	}

	if err := c.CheckArity(len(r.Source), len(r.Target)); err != nil {
		res.AddError(CodeArity, err.Error(), id, "")
	}

	switch {
	case c.ToTarget == nil:
		res.AddInfo(CodeOneWay, fmt.Sprintf("converter %s only runs to-source", c.Name), id, "")
	case c.ToSource == nil:
		res.AddInfo(CodeOneWay, fmt.Sprintf("converter %s only runs to-target", c.Name), id, "")
	}
}

func sentinelFor(code string) error {
	switch code {
	case CodeUnknownConverter:
		return ErrUnknownConverter
	case CodeArity:
		return ErrArity
	default:
		return ErrInvalid
	}
}

// RuleID identifies rule i in logs and diagnostics, e.g. "biblatex#4".
func (t *Table) RuleID(i int) string {
	name := t.Dialect
	if name == "" {
		name = "rules"
	}

	return fmt.Sprintf("%s#%d", name, i)
}
