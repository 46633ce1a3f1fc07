package rules

import (
	"embed"
	"fmt"
	"path"

	"bibmap/internal/metadata"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Builtin parses the embedded rule table of a dialect. Every call returns a
// fresh table.
func Builtin(d metadata.Dialect) (*Table, error) {
	if _, err := metadata.ParseDialect(string(d)); err != nil {
		return nil, err
	}

	data, err := tablesFS.ReadFile(path.Join("tables", string(d)+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("read %s rule table: %w", d, err)
	}

	return Parse(data)
}

// BibLaTeX returns the embedded BibLaTeX rule table.
func BibLaTeX() *Table {
	return mustBuiltin(metadata.BibLaTeX)
}

// BibTeX returns the embedded BibTeX rule table.
func BibTeX() *Table {
	return mustBuiltin(metadata.BibTeX)
}

func mustBuiltin(d metadata.Dialect) *Table {
	t, err := Builtin(d)
	if err != nil {
		panic(err)
	}

	return t
}
