package record

import (
	"fmt"
	"strconv"
	"strings"
)

// DateParts is one date component: year, optional month, optional day.
// A nil DateParts is an undefined component (for example the open end of a
// range).
type DateParts []int

// Date is a CSL date value: either structured parts or free text.
type Date struct {
	Parts   []DateParts `json:"date-parts,omitempty"`
	Literal string      `json:"literal,omitempty"`
}

// IsLiteral reports whether the date only carries free text.
func (d Date) IsLiteral() bool {
	return len(d.Parts) == 0 && d.Literal != ""
}

// Name is a structured personal or corporate name.
type Name struct {
	Family              string `json:"family,omitempty"`
	Given               string `json:"given,omitempty"`
	Suffix              string `json:"suffix,omitempty"`
	NonDroppingParticle string `json:"non-dropping-particle,omitempty"`
	DroppingParticle    string `json:"dropping-particle,omitempty"`
	Literal             string `json:"literal,omitempty"`
}

// IsZero reports whether no part of the name is set.
func (n Name) IsZero() bool {
	return n == Name{}
}

// IsEmpty reports whether v counts as "no value": nil, an empty string or an
// empty slice.
func IsEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case []Name:
		return len(x) == 0
	default:
		return false
	}
}

// Stringify formats a scalar value as text. Integral floats print without a
// fraction so that 12 and 12.0 compare equal.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// AsInt reads an integer from a number or a numeric string.
func AsInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == float64(int(x)) {
			return int(x), true
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err == nil {
			return n, true
		}
	}

	return 0, false
}

// CloneValue deep-copies the container types a record may hold.
func CloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = CloneValue(x[i])
		}

		return out
	case []string:
		return append([]string(nil), x...)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = CloneValue(e)
		}

		return out
	case []Name:
		return append([]Name(nil), x...)
	case Date:
		parts := make([]DateParts, len(x.Parts))
		for i, p := range x.Parts {
			if p != nil {
				parts[i] = append(DateParts(nil), p...)
			}
		}

		if x.Parts == nil {
			parts = nil
		}

		return Date{Parts: parts, Literal: x.Literal}
	default:
		return v
	}
}

// DateOf reads a Date from either the typed form or the decoded JSON form
// ({"date-parts": [[...]]} / {"literal": "..."}).
func DateOf(v any) (Date, bool) {
	switch x := v.(type) {
	case Date:
		return x, true
	case *Date:
		if x == nil {
			return Date{}, false
		}

		return *x, true
	case map[string]any:
		d := Date{}
		if lit, ok := x["literal"].(string); ok {
			d.Literal = lit
		}

		if raw, ok := x["date-parts"].([]any); ok {
			for _, p := range raw {
				d.Parts = append(d.Parts, datePartsOf(p))
			}
		}

		if len(d.Parts) == 0 && d.Literal == "" {
			if raw, ok := x["raw"].(string); ok {
				d.Literal = raw
			}
		}

		return d, len(d.Parts) > 0 || d.Literal != ""
	default:
		return Date{}, false
	}
}

func datePartsOf(v any) DateParts {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	parts := make(DateParts, 0, len(raw))
	for _, c := range raw {
		n, ok := AsInt(c)
		if !ok {
			break
		}

		parts = append(parts, n)
	}

	if len(parts) == 0 {
		return nil
	}

	return parts
}

// NamesOf reads a name list from either the typed form or decoded JSON.
func NamesOf(v any) ([]Name, bool) {
	switch x := v.(type) {
	case []Name:
		return x, true
	case []any:
		names := make([]Name, 0, len(x))
		for _, e := range x {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}

			names = append(names, Name{
				Family:              str(m["family"]),
				Given:               str(m["given"]),
				Suffix:              str(m["suffix"]),
				NonDroppingParticle: str(m["non-dropping-particle"]),
				DroppingParticle:    str(m["dropping-particle"]),
				Literal:             str(m["literal"]),
			})
		}

		return names, len(names) > 0
	default:
		return nil, false
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
