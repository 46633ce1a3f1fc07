package convert

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"bibmap/internal/record"
)

// standardNumbers matches the four mutually exclusive standard identifier
// formats, one capture group each, in the order isan, ismn, isrn, iswc. The
// ISMN alternative needs a lookahead, which is why this is regexp2.
var standardNumbers = func() *regexp2.Regexp {
	re := regexp2.MustCompile(strings.Join([]string{
		`(^(?:ISAN )?(?:[0-9a-f]{4}-){4}[0-9a-z](?:-(?:[0-9a-f]{4}-){2}[0-9a-z])?$)`,
		`(^(?:979-?0-?|M-?)(?:\d{9}|(?=[\d-]{11}$)\d+-\d+-\d)$)`,
		`(^ISRN .{1,36}$)`,
		`(^(?:ISWC )?T-?\d{9}-?\d$)`,
	}, "|"), regexp2.IgnoreCase)
	re.MatchTimeout = time.Second

	return re
}()

// StandardNumberFields are the source keys, in capture group order.
var StandardNumberFields = []string{"isan", "ismn", "isrn", "iswc"}

// StandardNumbers merges the ISAN/ISMN/ISRN/ISWC fields into one number on
// import. On export the number is matched against the four formats and
// written to the field of the first match; numbers matching none are
// dropped.
func StandardNumbers() *Converter {
	return &Converter{
		Name:        "STANDARD_NUMBERS",
		Description: "isan/ismn/isrn/iswc <-> number (lossy on export)",
		SourceArity: len(StandardNumberFields),
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			v, ok := firstDefined(values)
			if !ok {
				return nil, false
			}

			return one(v)
		},
		ToSource: func(values []any) ([]any, bool) {
			s := stringArg(values, 0)
			if s == "" {
				return nil, false
			}

			return MatchStandardNumber(s)
		},
	}
}

// MatchStandardNumber returns the positional captures of the first matching
// identifier format, or false.
func MatchStandardNumber(s string) ([]any, bool) {
	m, err := standardNumbers.FindStringMatch(s)
	if err != nil || m == nil {
		return nil, false
	}

	out := make([]any, len(StandardNumberFields))
	for i := range out {
		g := m.GroupByNumber(i + 1)
		if g != nil && len(g.Captures) > 0 {
			out[i] = g.String()
		}
	}

	return out, true
}

// Eprint reads a PubMed identifier from an eprint field whose type is
// "pubmed".
func Eprint() *Converter {
	return &Converter{
		Name:        "EPRINT",
		Description: "(eprint, eprinttype) <-> PMID",
		SourceArity: 2,
		TargetArity: 1,
		ToTarget: func(values []any) ([]any, bool) {
			id := arg(values, 0)
			if record.IsEmpty(id) || !strings.EqualFold(stringArg(values, 1), "pubmed") {
				return nil, false
			}

			return one(id)
		},
		ToSource: func(values []any) ([]any, bool) {
			id := arg(values, 0)
			if record.IsEmpty(id) {
				return nil, false
			}

			return []any{id, "pubmed"}, true
		},
	}
}
