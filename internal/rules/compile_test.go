package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibmap/internal/convert"
	"bibmap/internal/metadata"
)

func registry() *convert.Registry {
	return convert.NewRegistry().MustRegister(convert.Pick(), convert.Names(), convert.Label(), convert.HowPublished())
}

func mustParse(t *testing.T, yaml string) *Table {
	t.Helper()

	tbl, err := Parse([]byte(yaml))
	require.NoError(t, err)

	return tbl
}

func TestCompile(t *testing.T) {
	tbl := mustParse(t, `
dialect: test
rules:
  - source: $label
    target: [id, citation-label]
    converter: LABEL
  - source: author
    target: author
    converter: NAMES
  - source: title
    target: title
`)

	c, err := Compile(tbl, registry())
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	assert.Same(t, tbl, c.Table())

	var ids []string
	for b := range c.All() {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"test#0", "test#1", "test#2"}, ids)

	var last *Bound
	for b := range c.All() {
		last = b
	}

	assert.Nil(t, last.Converter, "identity rules have no converter")
	assert.Equal(t, 2, last.Index)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
		code string
	}{
		{
			name: "unknown converter",
			yaml: "rules:\n  - source: author\n    target: author\n    converter: NAME\n",
			err:  ErrUnknownConverter,
			code: CodeUnknownConverter,
		},
		{
			name: "arity",
			yaml: "rules:\n  - source: $label\n    target: id\n    converter: LABEL\n",
			err:  ErrArity,
			code: CodeArity,
		},
		{
			name: "positional",
			yaml: "rules:\n  - source: [a, b]\n    target: [c, d, e]\n",
			err:  ErrInvalid,
			code: CodePositional,
		},
		{
			name: "empty source",
			yaml: "rules:\n  - target: title\n",
			err:  ErrInvalid,
			code: CodeEmptySource,
		},
		{
			name: "duplicate key",
			yaml: "rules:\n  - source: [a, a]\n    target: b\n    converter: PICK\n",
			err:  ErrInvalid,
			code: CodeDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := mustParse(t, tt.yaml)

			_, err := Compile(tbl, registry())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			diags := Validate(tbl, registry())
			assert.NotEmpty(t, diags.WithCode(tt.code))
		})
	}
}

func TestValidateSuggestsConverter(t *testing.T) {
	tbl := mustParse(t, "rules:\n  - source: author\n    target: author\n    converter: NAME\n")

	diags := Validate(tbl, registry())
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, []string{"NAMES"}, diags.Errors[0].Suggestions)
}

func TestValidateNil(t *testing.T) {
	assert.NotEmpty(t, Validate(nil, registry()).WithCode(CodeTableNil))
	assert.NotEmpty(t, Validate(&Table{}, nil).WithCode(CodeRegistryNil))
	assert.NotEmpty(t, Validate(&Table{}, registry()).WithCode(CodeNoRules))
}

func TestValidateOneWay(t *testing.T) {
	tbl := mustParse(t, "rules:\n  - source: howpublished\n    target: URL\n    converter: HOW_PUBLISHED\n")

	diags := Validate(tbl, registry())
	assert.True(t, diags.IsValid())
	assert.Len(t, diags.WithCode(CodeOneWay), 1)
}

func TestBuiltinTablesCompile(t *testing.T) {
	for _, d := range []metadata.Dialect{metadata.BibLaTeX, metadata.BibTeX} {
		t.Run(string(d), func(t *testing.T) {
			tbl, err := Builtin(d)
			require.NoError(t, err)
			assert.Equal(t, string(d), tbl.Dialect)

			reg := convert.NewRegistryFor(metadata.MustLoad(d))

			diags := Validate(tbl, reg)
			require.True(t, diags.IsValid(), "%v", diags.Error())

			c, err := Compile(tbl, reg)
			require.NoError(t, err)

			// the kind rule runs first so later conditions can read it
			first := c.Table().Rules[0]
			assert.Equal(t, "$type", first.Source.First().String())
		})
	}

	_, err := Builtin("ris")
	assert.ErrorIs(t, err, metadata.ErrUnknownDialect)
}
