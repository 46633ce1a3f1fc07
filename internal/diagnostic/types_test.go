package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("field_not_defined", "field is not defined", "biblatex#3", "jounral", "journal")
	d.AddInfo("rule_count", "42 rules", "", "")
	assert.True(t, d.IsValid())

	d.AddError("unknown_converter", `converter "NAME" not registered`, "biblatex#4", "")
	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 3)
	assert.Len(t, d.WithCode("field_not_defined"), 1)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, `[biblatex#4]: [unknown_converter] converter "NAME" not registered`, err.Error())

	assert.Equal(t,
		"[biblatex#3] jounral: [field_not_defined] field is not defined (did you mean journal?)",
		d.Warnings[0].String())
}

func TestMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "x", "", "")
	b.AddWarning("y", "y", "", "")
	b.AddInfo("z", "z", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
