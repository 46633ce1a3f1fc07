package convert

import (
	"strings"
	"unicode"

	"bibmap/internal/record"
)

const nameDelimiter = "and"

// Names converts a delimiter-joined name list ("Smith, Jane and {Doe and
// Sons}") into structured names and back.
func Names() *Converter {
	return &Converter{
		Name:        "NAMES",
		Description: "name list <-> structured names",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			var raw []string

			switch v := arg(values, 0).(type) {
			case string:
				raw = SplitNames(v)
			case []any:
				for _, e := range v {
					if s, ok := e.(string); ok {
						raw = append(raw, SplitNames(s)...)
					}
				}
			case []string:
				for _, s := range v {
					raw = append(raw, SplitNames(s)...)
				}
			}

			if len(raw) == 0 {
				return nil, false
			}

			names := make([]record.Name, 0, len(raw))
			for _, s := range raw {
				names = append(names, ParseName(s))
			}

			return one(names)
		},
		ToSource: func(values []any) ([]any, bool) {
			names, ok := record.NamesOf(arg(values, 0))
			if !ok || len(names) == 0 {
				return nil, false
			}

			return one(FormatNames(names))
		},
	}
}

// SplitNames splits a name list on the "and" delimiter. Delimiters inside
// braces are not separators.
func SplitNames(s string) []string {
	var (
		names []string
		cur   []string
	)

	for _, w := range words(s) {
		if strings.EqualFold(w, nameDelimiter) {
			if len(cur) > 0 {
				names = append(names, strings.Join(cur, " "))
			}

			cur = cur[:0]

			continue
		}

		cur = append(cur, w)
	}

	if len(cur) > 0 {
		names = append(names, strings.Join(cur, " "))
	}

	return names
}

// ParseName reads one name in any of the three BibTeX forms:
// "First von Last", "von Last, First" and "von Last, Jr, First". A name
// wrapped entirely in braces is a literal (corporate) name.
func ParseName(s string) record.Name {
	s = strings.TrimSpace(s)
	if isWrapped(s) {
		return record.Name{Literal: s[1 : len(s)-1]}
	}

	parts := splitTopLevel(s, ',')

	var n record.Name

	switch len(parts) {
	case 1:
		w := words(parts[0])
		if len(w) == 0 {
			return n
		}

		if len(w) == 1 {
			n.Family = unbrace(w[0])
			return n
		}

		start, end := vonRange(w[:len(w)-1])
		if start < 0 {
			n.Given = joinUnbraced(w[:len(w)-1])
			n.Family = unbrace(w[len(w)-1])

			return n
		}

		n.Given = joinUnbraced(w[:start])
		n.NonDroppingParticle = joinUnbraced(w[start:end])
		n.Family = joinUnbraced(w[end:])
	default:
		n.NonDroppingParticle, n.Family = splitVonLast(words(parts[0]))
		if len(parts) == 2 {
			n.Given = joinUnbraced(words(parts[1]))
		} else {
			n.Suffix = joinUnbraced(words(parts[1]))
			n.Given = joinUnbraced(words(strings.Join(parts[2:], ",")))
		}
	}

	return n
}

// FormatNames joins names with the delimiter, protecting any part that
// contains the delimiter text.
func FormatNames(names []record.Name) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n.IsZero() {
			continue
		}

		out = append(out, FormatName(n))
	}

	return strings.Join(out, " and ")
}

// FormatName writes a name in "von Last, Jr, First" form.
func FormatName(n record.Name) string {
	if n.Literal != "" {
		return "{" + n.Literal + "}"
	}

	family := protect(n.Family)
	if n.NonDroppingParticle == "" && n.DroppingParticle == "" && startsLower(n.Family) {
		family = "{" + n.Family + "}"
	}

	var particle []string

	for _, p := range []string{n.DroppingParticle, n.NonDroppingParticle} {
		if p != "" {
			particle = append(particle, protect(p))
		}
	}

	last := strings.Join(append(particle, family), " ")

	switch {
	case n.Suffix != "":
		return last + ", " + protect(n.Suffix) + ", " + protect(n.Given)
	case n.Given != "":
		return last + ", " + protect(n.Given)
	default:
		return last
	}
}

// protect wraps text that would otherwise be read as a delimiter or a
// separator.
func protect(s string) string {
	if s == "" {
		return s
	}

	if strings.Contains(s, ",") || containsDelimiter(s) {
		return "{" + s + "}"
	}

	return s
}

func containsDelimiter(s string) bool {
	for _, w := range strings.Fields(s) {
		if strings.EqualFold(w, nameDelimiter) {
			return true
		}
	}

	return false
}

// vonRange finds the particle words: from the first word starting in lower
// case to the last one. It returns -1 when there are none.
func vonRange(w []string) (int, int) {
	start, end := -1, -1

	for i, word := range w {
		if startsLower(word) {
			if start < 0 {
				start = i
			}

			end = i + 1
		}
	}

	return start, end
}

// splitVonLast splits "von Last" words. The last word is always part of the
// family name.
func splitVonLast(w []string) (string, string) {
	if len(w) == 0 {
		return "", ""
	}

	end := 0
	for i := range w[:len(w)-1] {
		if startsLower(w[i]) {
			end = i + 1
		}
	}

	return joinUnbraced(w[:end]), joinUnbraced(w[end:])
}

// startsLower reports whether the first letter outside braces is lower case.
// Braced words never count as particles.
func startsLower(s string) bool {
	for _, r := range s {
		if r == '{' {
			return false
		}

		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}

	return false
}

// words splits on whitespace outside braces.
func words(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		depth int
	)

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case unicode.IsSpace(r) && depth == 0:
			flush()
			continue
		}

		cur.WriteRune(r)
	}

	flush()

	return out
}

// splitTopLevel splits on sep outside braces and trims each part.
func splitTopLevel(s string, sep rune) []string {
	var (
		out   []string
		start int
		depth int
	)

	for i, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == sep && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}

	return append(out, strings.TrimSpace(s[start:]))
}

// isWrapped reports whether s is one braced group from start to end.
func isWrapped(s string) bool {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return false
	}

	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}

	return depth == 0
}

func unbrace(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

func joinUnbraced(w []string) string {
	return unbrace(strings.Join(w, " "))
}
