package convert

import (
	"regexp"
)

var rangeSeparator = regexp.MustCompile(`\s*(?:-+|\x{2013}|\x{2014})\s*`)

// Pages normalizes page ranges: "--", en and em dashes become "-" on import,
// and any dash run becomes "--" on export. With several source keys (pages, eid) the
// first defined value is used.
func Pages() *Converter {
	return &Converter{
		Name:        "PAGES",
		Description: "page range separators",
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			s, isString := v.(string)
			if !isString {
				return one(v)
			}

			return one(rangeSeparator.ReplaceAllString(s, "-"))
		},
		ToSource: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			s, isString := v.(string)
			if !isString {
				return one(v)
			}

			return one(rangeSeparator.ReplaceAllString(s, "--"))
		},
	}
}
