package check

import (
	"fmt"

	"bibmap/internal/diagnostic"
	"bibmap/internal/match"
	"bibmap/internal/metadata"
	"bibmap/internal/rules"
)

// Diagnostic codes produced by Rules.
const (
	CodeFieldNotDefined   = "field_not_defined"
	CodeConverterRequired = "converter_required"
)

// maxSuggestions caps the "did you mean" list per unknown field.
const maxSuggestions = 3

// Rules reports identity rules whose source fields are unknown to the field
// table or carry more than a single value.
func Rules(t *rules.Table, fields metadata.FieldTable) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		return res
	}

	names := fields.Names()

	for i := range t.Rules {
		r := &t.Rules[i]
		if r.Converter != "" {
			continue
		}

		id := t.RuleID(i)

		for _, k := range r.Source {
			if k.IsPseudo() {
				continue
			}

			info, ok := fields.Lookup(k.Name)
			if !ok {
				res.AddWarning(CodeFieldNotDefined,
					fmt.Sprintf("field %q is not defined for %s", k.Name, t.Dialect),
					id, k.Name, match.Suggest(k.Name, names, maxSuggestions)...)

				continue
			}

			if info.Shape != metadata.ShapeField {
				res.AddWarning(CodeConverterRequired,
					fmt.Sprintf("%s field %q is copied without a converter", info.Shape, k.Name),
					id, k.Name)
			}
		}
	}

	return res
}

// Dialect checks the embedded rule table of a dialect.
func Dialect(d metadata.Dialect) (*diagnostic.Diagnostics, error) {
	meta, err := metadata.Load(d)
	if err != nil {
		return nil, err
	}

	tbl, err := rules.Builtin(d)
	if err != nil {
		return nil, err
	}

	return Rules(tbl, meta.Fields), nil
}
