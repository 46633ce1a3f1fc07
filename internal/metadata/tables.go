package metadata

import (
	"embed"
	"errors"
	"fmt"
	"path"

	json "github.com/goccy/go-json"
)

//go:embed data
var dataFS embed.FS

// Dialect names a source schema.
type Dialect string

const (
	BibLaTeX Dialect = "biblatex"
	BibTeX   Dialect = "bibtex"
)

// ErrUnknownDialect is returned for dialects without embedded tables.
var ErrUnknownDialect = errors.New("unknown dialect")

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case BibLaTeX, BibTeX:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// Tables bundles every static table of one dialect.
type Tables struct {
	Dialect  Dialect
	Types    *TypeTable
	Required *RequiredTable
	Fields   FieldTable
}

// Load decodes the embedded tables of a dialect.
func Load(d Dialect) (*Tables, error) {
	if _, err := ParseDialect(string(d)); err != nil {
		return nil, err
	}

	types := &TypeTable{}
	if err := readJSON(d, "types.json", types); err != nil {
		return nil, err
	}

	required, err := loadRequired(d)
	if err != nil {
		return nil, err
	}

	fields := FieldTable{}
	if err := readJSON(d, "fieldTypes.json", &fields); err != nil {
		return nil, err
	}

	return &Tables{
		Dialect:  d,
		Types:    types,
		Required: required,
		Fields:   fields,
	}, nil
}

// MustLoad is Load for the embedded dialects, which are known to be valid.
func MustLoad(d Dialect) *Tables {
	t, err := Load(d)
	if err != nil {
		panic(err)
	}

	return t
}

func readJSON(d Dialect, name string, v any) error {
	data, err := dataFS.ReadFile(path.Join("data", string(d), name))
	if err != nil {
		return fmt.Errorf("read %s table %s: %w", d, name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s table %s: %w", d, name, err)
	}

	return nil
}

// TypeTable maps entry kinds between the schemas.
type TypeTable struct {
	Source map[string]string `json:"source"`
	Target map[string]string `json:"target"`
}

// ToTarget returns the canonical target kind of a source kind.
func (t *TypeTable) ToTarget(kind string) (string, bool) {
	if t == nil {
		return "", false
	}

	v, ok := t.Source[kind]

	return v, ok
}

// ToSource returns the source kind of a target kind.
func (t *TypeTable) ToSource(kind string) (string, bool) {
	if t == nil {
		return "", false
	}

	v, ok := t.Target[kind]

	return v, ok
}
