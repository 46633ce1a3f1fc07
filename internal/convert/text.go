package convert

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// combining maps TeX accent commands to Unicode combining marks.
var combining = map[string]string{
	`"`: "\u0308",
	"'": "\u0301",
	"`": "\u0300",
	"^": "\u0302",
	"~": "\u0303",
	"=": "\u0304",
	".": "\u0307",
	"u": "\u0306",
	"v": "\u030C",
	"H": "\u030B",
	"c": "\u0327",
	"k": "\u0328",
	"r": "\u030A",
}

var (
	symbolAccent = regexp.MustCompile("\\\\([\"'`^~=.])\\s*(?:\\{(\\\\?[A-Za-z])\\}|(\\\\?[A-Za-z]))")
	letterAccent = regexp.MustCompile(`\\([uvHckr])(?:\{(\\?[A-Za-z])\}|\s+(\\?[A-Za-z]))`)
	urlCommand   = regexp.MustCompile(`^\\?url\s*\{(.*)\}$`)
)

// specials are escaped with a backslash in TeX text.
const specials = `&%$#_`

// textSymbols are the text-mode commands that stand for a single character.
var textSymbols = map[string]string{
	"textbackslash":   `\`,
	"textasciitilde":  "~",
	"textasciicircum": "^",
}

// RichText turns TeX-flavoured text into plain text: accents are folded into
// composed characters, protective braces are removed and escaped specials
// are unescaped. On export the specials, braces, backslash, tilde and caret
// are escaped so the text survives a round trip.
func RichText() *Converter {
	return &Converter{
		Name:        "RICH_TEXT",
		Description: "TeX text <-> plain text",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			return one(PlainText(s))
		},
		ToSource: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			return one(EscapeText(s))
		},
	}
}

// PlainText converts TeX text to plain Unicode text.
func PlainText(s string) string {
	s = foldAccents(s)

	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && strings.HasPrefix(s[i+1:], "^{}"):
			b.WriteByte('^')
			i += 3
		case c == '\\' && i+1 < len(s) && strings.IndexByte(specials+"{}\\", s[i+1]) >= 0:
			b.WriteByte(s[i+1])
			i++
		case c == '\\' && i+1 < len(s) && isASCIILetter(s[i+1]):
			start := i + 1
			for i+1 < len(s) && isASCIILetter(s[i+1]) {
				i++
			}

			if sym, ok := textSymbols[s[start:i+1]]; ok {
				b.WriteString(sym)

				if strings.HasPrefix(s[i+1:], "{}") {
					i += 2
				}

				continue
			}

			// Drop unknown command names and keep their arguments.
			if i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		case c == '{' || c == '}':
		case c == '~':
			b.WriteString("\u00a0")
		default:
			b.WriteByte(c)
		}
	}

	return norm.NFC.String(b.String())
}

func foldAccents(s string) string {
	for _, re := range []*regexp.Regexp{letterAccent, symbolAccent} {
		s = re.ReplaceAllStringFunc(s, func(m string) string {
			g := re.FindStringSubmatch(m)

			letter := g[2]
			if letter == "" {
				letter = g[3]
			}

			// \i and \j are the dotless letters used under accents; the plain
			// letter composes to the same character.
			return strings.TrimPrefix(letter, `\`) + combining[g[1]]
		})
	}

	return s
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// EscapeText escapes the TeX special characters so that PlainText gives the
// input back.
func EscapeText(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\textbackslash{}`)
		case r == '~':
			b.WriteString(`\textasciitilde{}`)
		case r == '^':
			b.WriteString(`\^{}`)
		case r < 0x80 && strings.IndexByte(specials+"{}", byte(r)) >= 0:
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

var statuses = map[string]string{
	"inpreparation": "in preparation",
	"submitted":     "submitted",
	"forthcoming":   "forthcoming",
	"inpress":       "in press",
	"prepublished":  "pre-published",
}

// Status maps publication-state keys to status phrases. Unknown values pass
// through unchanged.
func Status() *Converter {
	return &Converter{
		Name:        "STATUS",
		Description: "pubstate key <-> status phrase",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			if phrase, ok := statuses[strings.ToLower(s)]; ok {
				return one(phrase)
			}

			return one(s)
		},
		ToSource: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			for key, phrase := range statuses {
				if strings.EqualFold(phrase, s) {
					return one(key)
				}
			}

			return one(s)
		},
	}
}

// HowPublishedURL extracts a URL from a howpublished value: either
// "\url{...}" or a bare http(s) address.
func HowPublishedURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := urlCommand.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[1] != ""
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, true
	}

	return "", false
}

// HowPublished reads a URL out of howpublished. Import only.
func HowPublished() *Converter {
	return &Converter{
		Name:        "HOW_PUBLISHED",
		Description: "howpublished -> URL",
		SourceArity: 1,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			u, ok := HowPublishedURL(stringArg(values, 0))
			if !ok {
				return nil, false
			}

			return one(u)
		},
	}
}

// URL prefers the url field and falls back to a URL in howpublished. On
// export the URL goes to the url field.
func URL() *Converter {
	return &Converter{
		Name:        "URL",
		Description: "(url, howpublished) <-> URL",
		SourceArity: 2,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			if u := stringArg(values, 0); u != "" {
				return one(u)
			}

			u, ok := HowPublishedURL(stringArg(values, 1))
			if !ok {
				return nil, false
			}

			return one(u)
		},
		ToSource: func(values []any) ([]any, bool) {
			u := stringArg(values, 0)
			if u == "" {
				return nil, false
			}

			return []any{u, nil}, true
		},
	}
}
