package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bibmap/internal/metadata"
	"bibmap/internal/record"
)

func parseWhen(t *testing.T, src string) *When {
	t.Helper()

	var w When

	require.NoError(t, yaml.Unmarshal([]byte(src), &w))

	return &w
}

func TestMatcherForms(t *testing.T) {
	w := parseWhen(t, `
source:
  maintitle: false
  title: true
  $type: article
  entrysubtype: [magazine, newspaper]
  number: {not_pattern: '[^\s\d]'}
  note: {not: draft}
  pages: {pattern: '^\d+$'}
  ids: {maps_to: [article-journal]}
`)
	require.NotNil(t, w.Source)
	assert.Nil(t, w.Target)
	require.Len(t, w.Source.Fields, 8)

	ops := make([]Op, 0, len(w.Source.Fields))
	for _, f := range w.Source.Fields {
		ops = append(ops, f.Matcher.Op)
	}

	assert.Equal(t, []Op{OpAbsent, OpPresent, OpEquals, OpOneOf, OpNotPattern, OpNot, OpPattern, OpMapsTo}, ops)
	assert.Equal(t, record.KindKey, w.Source.Fields[2].Key)
	assert.Equal(t, record.Field("maintitle"), w.Source.Fields[0].Key)
}

func TestClauseBooleans(t *testing.T) {
	w := parseWhen(t, "source: true\ntarget: false\n")

	assert.Equal(t, ModeAlways, w.Source.Mode)
	assert.True(t, w.Target.IsNever())
}

func TestMatcherErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown op", "source: {title: {like: x}}"},
		{"bad pattern", "source: {title: {pattern: '('}}"},
		{"two keys", "source: {title: {not: a, pattern: b}}"},
		{"bad clause", "source: [title]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w When

			assert.Error(t, yaml.Unmarshal([]byte(tt.src), &w))
		})
	}
}

func TestMatches(t *testing.T) {
	ev := NewEvaluator(nil)

	rec := record.New("article", "a1")
	rec.Set("title", "Title")
	rec.Set("number", 12)

	tests := []struct {
		name   string
		clause *Clause
		want   bool
	}{
		{"nil", nil, true},
		{"always", Always(), true},
		{"never", Never(), false},
		{"empty fields", Fields(), true},
		{"present", Fields(On("title", Present())), true},
		{"present missing", Fields(On("subtitle", Present())), false},
		{"absent", Fields(On("subtitle", Absent())), true},
		{"equals kind", Fields(On("$type", Equals("article"))), true},
		{"one of kind", Fields(On("$type", OneOf("book", "mvbook"))), false},
		{"equals label", Fields(On("$label", Equals("a1"))), true},
		{"not passes when absent", Fields(On("subtitle", Not("x"))), true},
		{"not", Fields(On("title", Not("Title"))), false},
		{"pattern on number", Fields(On("number", Pattern(`^\d+$`))), true},
		{"pattern absent", Fields(On("issue", Pattern(`.`))), false},
		{"not pattern", Fields(On("number", NotPattern(`[^\s\d]`))), true},
		{"not pattern absent", Fields(On("issue", NotPattern(`.`))), true},
		{"func", Fields(On("number", Func(func(v any, present bool) bool {
			n, ok := record.AsInt(v)

			return present && ok && n > 10
		}))), true},
		{"all must hold", Fields(On("title", Present()), On("subtitle", Present())), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ev.Matches(tt.clause, rec))
		})
	}
}

func TestMapsTo(t *testing.T) {
	types := &metadata.TypeTable{
		Source: map[string]string{"report": "report", "techreport": "report", "article": "article-journal"},
	}
	ev := NewEvaluator(types)
	clause := Fields(On("$type", MapsTo("report")))

	assert.True(t, ev.Matches(clause, record.New("techreport", "")))
	assert.False(t, ev.Matches(clause, record.New("article", "")))
	assert.False(t, ev.Matches(clause, record.New("unknown", "")))
	assert.False(t, NewEvaluator(nil).Matches(clause, record.New("report", "")))
}

func TestAllowsDirection(t *testing.T) {
	ev := NewEvaluator(nil)

	in := record.New("article", "")
	in.Set("title", "T")

	out := record.New("", "")

	oneWay := &When{Source: Never()}
	assert.False(t, ev.Allows(oneWay, record.ToTarget, in, out), "source=false blocks to-target")
	assert.True(t, ev.Allows(oneWay, record.ToSource, in, out), "source=false ignored on the output side")

	gated := &When{
		Source: Fields(On("title", Present())),
		Target: Fields(On("container-title", Absent())),
	}
	assert.True(t, ev.Allows(gated, record.ToTarget, in, out))

	out.Set("container-title", "Journal")
	assert.False(t, ev.Allows(gated, record.ToTarget, in, out), "output clause sees what earlier rules wrote")

	assert.True(t, ev.Allows(nil, record.ToSource, in, out))
}

func TestMarshalRoundTrip(t *testing.T) {
	src := `source:
    maintitle: false
    $type: [book, mvbook]
    number:
        not_pattern: '[^\s\d]'
target: false
`
	w := parseWhen(t, src)

	out, err := yaml.Marshal(w)
	require.NoError(t, err)

	again := parseWhen(t, string(out))
	assert.Equal(t, len(w.Source.Fields), len(again.Source.Fields))
	assert.True(t, again.Target.IsNever())
	assert.Equal(t, `[^\s\d]`, again.Source.Fields[2].Matcher.Pattern.String())

	_, err = yaml.Marshal(&When{Source: Fields(On("x", Func(func(any, bool) bool { return true })))})
	assert.Error(t, err)
}
