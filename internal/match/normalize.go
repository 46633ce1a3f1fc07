package match

import (
	"strings"
	"unicode"
)

// NormalizeField folds a field or converter name for fuzzy matching:
// camel-case humps and separators are dropped and the result is lower case.
// "container-title", "ContainerTitle" and "container_title" all normalize to
// "containertitle".
func NormalizeField(s string) string {
	return strings.Join(TokenizeField(s), "")
}

// TokenizeField splits a name into lower-case tokens at separators and
// camel-case boundaries.
//
//   - "container-title" -> ["container", "title"]
//   - "eventDate"       -> ["event", "date"]
//   - "PMCID"           -> ["pmcid"]
func TokenizeField(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// affixes are name parts that derive one field from another.
var (
	prefixes = []string{"short", "orig", "main", "book", "sub"}
	suffixes = []string{"title", "date"}
)

// StripAffixes removes one known prefix and one known suffix from a
// normalized name, keeping at least one rune.
func StripAffixes(s string) string {
	for _, p := range prefixes {
		if len(s) > len(p) && strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)
			break
		}
	}

	for _, suf := range suffixes {
		if len(s) > len(suf) && strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}

	return s
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a camel-case boundary before runes[i]: a lower to
// upper transition, or the last capital of an acronym followed by lower
// case ("XMLParser").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if isSeparator(prev) || !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
