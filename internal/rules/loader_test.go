package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibmap/internal/condition"
	"bibmap/internal/record"
)

func TestParse(t *testing.T) {
	yaml := `
dialect: biblatex
rules:
  - source: $type
    target: type
    converter: ENTRY_TYPE
  - source: $label
    target: [id, citation-label]
    converter: LABEL
  - source: [pages, eid]
    target: page
    converter: PAGES
  - source: annote
    target: annote
    note: alias
    when:
      source: {annotation: false}
      target: false
  - source: title
    target: title
`

	tbl, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, tbl)

	assert.Equal(t, "1", tbl.Version, "version defaults to 1")
	assert.Equal(t, "biblatex", tbl.Dialect)
	require.Len(t, tbl.Rules, 5)

	// pseudo-fields
	assert.Equal(t, record.KindKey, tbl.Rules[0].Source.First())
	assert.Equal(t, record.LabelKey, tbl.Rules[1].Source.First())

	// 1:N
	assert.Equal(t, []string{"id", "citation-label"}, tbl.Rules[1].Target.Strings())
	assert.Equal(t, CardinalityOneToMany, tbl.Rules[1].GetCardinality())

	// N:1
	assert.Equal(t, CardinalityManyToOne, tbl.Rules[2].GetCardinality())
	assert.True(t, tbl.Rules[2].Source.Contains(record.Field("eid")))

	// conditions
	when := tbl.Rules[3].When
	require.NotNil(t, when)
	assert.True(t, when.Target.IsNever())
	require.Len(t, when.Source.Fields, 1)
	assert.Equal(t, condition.OpAbsent, when.Source.Fields[0].Matcher.Op)
	assert.Equal(t, "alias", tbl.Rules[3].Note)

	// no converter, no condition
	assert.Empty(t, tbl.Rules[4].Converter)
	assert.Nil(t, tbl.Rules[4].When)
	assert.Equal(t, CardinalityOneToOne, tbl.Rules[4].GetCardinality())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "rules: [\n"},
		{"key map", "rules:\n  - source: {title: x}\n    target: title\n"},
		{"bad matcher", "rules:\n  - source: title\n    target: title\n    when:\n      source: {title: {like: x}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestCardinalityString(t *testing.T) {
	assert.Equal(t, "1:1", CardinalityOneToOne.String())
	assert.Equal(t, "1:N", CardinalityOneToMany.String())
	assert.Equal(t, "N:1", CardinalityManyToOne.String())
	assert.Equal(t, "N:M", CardinalityManyToMany.String())
	assert.Equal(t, "unknown", Cardinality(42).String())
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	orig := BibLaTeX()
	require.NoError(t, WriteFile(orig, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, loaded.Rules, len(orig.Rules))

	for i := range orig.Rules {
		a, b := orig.Rules[i], loaded.Rules[i]
		assert.Equal(t, a.Source, b.Source, "rule %d source", i)
		assert.Equal(t, a.Target, b.Target, "rule %d target", i)
		assert.Equal(t, a.Converter, b.Converter, "rule %d converter", i)
		assert.Equal(t, a.When == nil, b.When == nil, "rule %d when", i)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
