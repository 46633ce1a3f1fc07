package convert

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"bibmap/internal/record"
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,

	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11,
	"december": 12, "sept": 9,
}

// Date converts EDTF-style dates and date ranges ("2021-03-15/2021-04").
func Date() *Converter {
	return &Converter{
		Name:        "DATE",
		Description: "EDTF date or range <-> date-parts",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			return one(ParseDate(s))
		},
		ToSource: func(values []any) ([]any, bool) {
			d, ok := record.DateOf(arg(values, 0))
			if !ok {
				if s, isString := arg(values, 0).(string); isString && s != "" {
					return one(s)
				}

				return nil, false
			}

			return one(FormatDate(d))
		},
	}
}

// ParseDate splits a date string on "/" into range components. Open ends
// ("..", empty) and unreadable components are undefined (nil).
func ParseDate(s string) record.Date {
	var d record.Date

	for part := range strings.SplitSeq(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" || part == ".." {
			d.Parts = append(d.Parts, nil)
			continue
		}

		d.Parts = append(d.Parts, parseDateComponent(part))
	}

	return d
}

// parseDateComponent reads one EDTF level-1 date. Time of day, uncertainty
// qualifiers and seasons are dropped; unspecified digits (X) read as 0.
func parseDateComponent(s string) record.DateParts {
	s, _, _ = strings.Cut(s, "T")
	s = strings.Trim(s, "?~%")

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, "-")

	yearText := strings.TrimPrefix(parts[0], "Y")
	yearText = strings.ReplaceAll(yearText, "X", "0")

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return nil
	}

	if negative {
		year = -year
	}

	month := atoiOrZero(parts, 1)
	if month <= 0 || month > 20 {
		return record.DateParts{year}
	}

	day := atoiOrZero(parts, 2)
	if day <= 0 {
		return record.DateParts{year, month}
	}

	return record.DateParts{year, month, day}
}

func atoiOrZero(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}

	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}

	return n
}

// FormatDate joins date parts back into an EDTF string. Literal dates are
// returned as is; undefined components become "..".
func FormatDate(d record.Date) string {
	if d.IsLiteral() {
		return d.Literal
	}

	out := make([]string, 0, len(d.Parts))
	for _, p := range d.Parts {
		out = append(out, formatDateParts(p))
	}

	return strings.Join(out, "/")
}

func formatDateParts(p record.DateParts) string {
	if len(p) == 0 {
		return ".."
	}

	var b strings.Builder

	year := p[0]
	if year < 0 {
		b.WriteByte('-')
		year = -year
	}

	fmt.Fprintf(&b, "%04d", year)

	for _, n := range p[1:] {
		fmt.Fprintf(&b, "-%02d", n)
	}

	return b.String()
}

// YearMonth combines separate year and month fields into one date. A year
// that is not a number produces a literal date.
func YearMonth() *Converter {
	return &Converter{
		Name:        "YEAR_MONTH",
		Description: "(year, month) <-> date-parts",
		SourceArity: 2,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			year := stringArg(values, 0)
			if year == "" {
				return nil, false
			}

			y, err := strconv.Atoi(strings.TrimSpace(year))
			if err != nil {
				return one(record.Date{Literal: year})
			}

			parts := append(record.DateParts{y}, ParseMonth(arg(values, 1))...)

			return one(record.Date{Parts: []record.DateParts{parts}})
		},
		ToSource: func(values []any) ([]any, bool) {
			d, ok := record.DateOf(arg(values, 0))
			if !ok {
				return nil, false
			}

			if d.IsLiteral() {
				return []any{d.Literal, nil}, true
			}

			if len(d.Parts) == 0 || len(d.Parts[0]) == 0 {
				return nil, false
			}

			p := d.Parts[0]

			var month any
			if len(p) > 1 {
				month = strconv.Itoa(p[1])
			}

			return []any{strconv.Itoa(p[0]), month}, true
		},
	}
}

// ParseMonth reads a month field: a number, an English month name or
// abbreviation, or a day-month phrase ("April 1st", "24th December",
// "1 jan"). It returns [month], [month, day] or nothing.
func ParseMonth(v any) []int {
	if record.IsEmpty(v) {
		return nil
	}

	if n, ok := record.AsInt(v); ok {
		if n >= 1 && n <= 12 {
			return []int{n}
		}

		return nil
	}

	s := strings.ToLower(strings.TrimSpace(record.Stringify(v)))
	if m, ok := lookupMonth(s); ok {
		return []int{m}
	}

	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil
	}

	var month, day int

	if m, ok := lookupMonth(fields[0]); ok {
		month, day = m, leadingInt(fields[1])
	} else if m, ok := lookupMonth(fields[1]); ok {
		month, day = m, leadingInt(fields[0])
	}

	switch {
	case month == 0:
		return nil
	case day > 0:
		return []int{month, day}
	default:
		return []int{month}
	}
}

func lookupMonth(s string) (int, bool) {
	m, ok := months[strings.TrimRight(s, ".,")]
	return m, ok
}

// leadingInt parses the digits at the start of s ("1st" -> 1).
func leadingInt(s string) int {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return 0
	}

	if end > 0 {
		s = s[:end]
	}

	n, _ := strconv.Atoi(s)

	return n
}
