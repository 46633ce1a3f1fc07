package condition

import (
	"bibmap/internal/metadata"
	"bibmap/internal/record"
)

// Mode is the overall form of a side clause.
type Mode int

const (
	// ModeFields evaluates every field condition.
	ModeFields Mode = iota
	// ModeAlways always passes.
	ModeAlways
	// ModeNever disables the rule in the direction that reads this side.
	ModeNever
)

// FieldCondition pairs a key with its matcher.
type FieldCondition struct {
	Key     record.Key
	Matcher Matcher
}

// Clause is the condition on one side of a rule. A nil *Clause always
// passes.
type Clause struct {
	Mode   Mode
	Fields []FieldCondition
}

// Always returns a clause that always passes.
func Always() *Clause { return &Clause{Mode: ModeAlways} }

// Never returns a clause that disables reading from its side.
func Never() *Clause { return &Clause{Mode: ModeNever} }

// Fields builds a field clause.
func Fields(conds ...FieldCondition) *Clause {
	return &Clause{Mode: ModeFields, Fields: conds}
}

// On pairs a rule-table key spelling with a matcher.
func On(key string, m Matcher) FieldCondition {
	return FieldCondition{Key: record.ParseKey(key), Matcher: m}
}

// IsNever reports whether the clause disables its side.
func (c *Clause) IsNever() bool {
	return c != nil && c.Mode == ModeNever
}

// Validate checks every matcher of the clause.
func (c *Clause) Validate() error {
	if c == nil {
		return nil
	}

	for _, f := range c.Fields {
		if err := f.Matcher.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// When holds the clauses of both sides.
type When struct {
	Source *Clause `yaml:"source,omitempty"`
	Target *Clause `yaml:"target,omitempty"`
}

// Side returns the clause of a side.
func (w *When) Side(s record.Side) *Clause {
	if w == nil {
		return nil
	}

	if s == record.TargetSide {
		return w.Target
	}

	return w.Source
}

// Evaluator evaluates clauses. It is immutable and safe for concurrent use.
type Evaluator struct {
	types *metadata.TypeTable
}

// NewEvaluator creates an evaluator. The type table backs maps_to matchers
// and may be nil.
func NewEvaluator(types *metadata.TypeTable) *Evaluator {
	return &Evaluator{types: types}
}

// Matches reports whether every field condition of the clause holds on rec.
// Always and nil clauses pass. A Never clause fails.
func (e *Evaluator) Matches(c *Clause, rec *record.Record) bool {
	if c == nil {
		return true
	}

	switch c.Mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}

	var mapKind func(string) (string, bool)
	if e != nil && e.types != nil {
		mapKind = e.types.ToTarget
	}

	for _, f := range c.Fields {
		v, present := rec.Lookup(f.Key)
		if !f.Matcher.match(v, present, mapKind) {
			return false
		}
	}

	return true
}

// Allows reports whether a rule with the given clauses applies in direction
// d. input is the record being read; output is the record assembled so far.
func (e *Evaluator) Allows(w *When, d record.Direction, input, output *record.Record) bool {
	if w == nil {
		return true
	}

	in := w.Side(d.Input())
	if !e.Matches(in, input) {
		return false
	}

	out := w.Side(d.Output())
	if out.IsNever() {
		return true
	}

	return e.Matches(out, output)
}
