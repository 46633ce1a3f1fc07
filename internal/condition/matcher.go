package condition

import (
	"fmt"
	"regexp"
	"slices"

	"bibmap/internal/record"
)

// Op identifies a field matcher.
type Op string

const (
	OpPresent    Op = "present"
	OpAbsent     Op = "absent"
	OpEquals     Op = "equals"
	OpOneOf      Op = "one_of"
	OpNot        Op = "not"
	OpPattern    Op = "pattern"
	OpNotPattern Op = "not_pattern"
	OpMapsTo     Op = "maps_to"
	OpFunc       Op = "func"
)

// Predicate is a matcher implemented in Go. present is false when the field
// is not set, in which case v is nil.
type Predicate func(v any, present bool) bool

// Matcher tests a single field value.
type Matcher struct {
	Op      Op
	Values  []string
	Pattern *regexp.Regexp
	Func    Predicate
}

// Present requires the field to be set.
func Present() Matcher { return Matcher{Op: OpPresent} }

// Absent requires the field to be unset.
func Absent() Matcher { return Matcher{Op: OpAbsent} }

// Equals requires the field to equal v.
func Equals(v string) Matcher { return Matcher{Op: OpEquals, Values: []string{v}} }

// OneOf requires the field to be one of vs.
func OneOf(vs ...string) Matcher { return Matcher{Op: OpOneOf, Values: vs} }

// Not requires the field to be none of vs. Unset fields pass.
func Not(vs ...string) Matcher { return Matcher{Op: OpNot, Values: vs} }

// Pattern requires the field to match the expression.
func Pattern(expr string) Matcher {
	return Matcher{Op: OpPattern, Pattern: regexp.MustCompile(expr)}
}

// NotPattern requires the field not to match the expression. Unset fields
// pass.
func NotPattern(expr string) Matcher {
	return Matcher{Op: OpNotPattern, Pattern: regexp.MustCompile(expr)}
}

// MapsTo requires the field, read as a source kind, to map to one of the
// given target kinds through the type table.
func MapsTo(kinds ...string) Matcher { return Matcher{Op: OpMapsTo, Values: kinds} }

// Func wraps a Go predicate.
func Func(p Predicate) Matcher { return Matcher{Op: OpFunc, Func: p} }

// match evaluates the matcher. mapKind resolves maps_to lookups.
func (m Matcher) match(v any, present bool, mapKind func(string) (string, bool)) bool {
	text := ""
	if present {
		text = record.Stringify(v)
	}

	switch m.Op {
	case OpPresent:
		return present
	case OpAbsent:
		return !present
	case OpEquals, OpOneOf:
		return present && slices.Contains(m.Values, text)
	case OpNot:
		return !present || !slices.Contains(m.Values, text)
	case OpPattern:
		return present && m.Pattern != nil && m.Pattern.MatchString(text)
	case OpNotPattern:
		return !present || m.Pattern == nil || !m.Pattern.MatchString(text)
	case OpMapsTo:
		if !present || mapKind == nil {
			return false
		}

		mapped, ok := mapKind(text)

		return ok && slices.Contains(m.Values, mapped)
	case OpFunc:
		return m.Func != nil && m.Func(v, present)
	default:
		return false
	}
}

// Validate reports matchers that cannot be evaluated.
func (m Matcher) Validate() error {
	switch m.Op {
	case OpPresent, OpAbsent:
		return nil
	case OpEquals, OpOneOf, OpNot, OpMapsTo:
		if len(m.Values) == 0 {
			return fmt.Errorf("matcher %s needs at least one value", m.Op)
		}
	case OpPattern, OpNotPattern:
		if m.Pattern == nil {
			return fmt.Errorf("matcher %s needs an expression", m.Op)
		}
	case OpFunc:
		if m.Func == nil {
			return fmt.Errorf("matcher %s needs a function", m.Op)
		}
	default:
		return fmt.Errorf("unknown matcher %q", m.Op)
	}

	return nil
}
