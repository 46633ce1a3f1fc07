package metadata

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Shape is how many values a field carries.
type Shape string

const (
	ShapeField     Shape = "field"
	ShapeList      Shape = "list"
	ShapeSeparated Shape = "separated"
)

// DataKind is the kind of data a field holds.
type DataKind string

const (
	KindLiteral    DataKind = "literal"
	KindName       DataKind = "name"
	KindKey        DataKind = "key"
	KindDate       DataKind = "date"
	KindVerbatim   DataKind = "verbatim"
	KindRange      DataKind = "range"
	KindURI        DataKind = "uri"
	KindInteger    DataKind = "integer"
	KindEntryKey   DataKind = "entry key"
	KindCode       DataKind = "code"
	KindGender     DataKind = "gender"
	KindIdentifier DataKind = "identifier"
	KindOptions    DataKind = "options"
	KindString     DataKind = "string"
)

// FieldInfo describes one field.
type FieldInfo struct {
	Shape Shape
	Kind  DataKind
}

// UnmarshalJSON reads the [shape, kind] pair.
func (f *FieldInfo) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("field info must be a [shape, kind] pair: %w", err)
	}

	f.Shape, f.Kind = Shape(pair[0]), DataKind(pair[1])

	return nil
}

// FieldTable maps field names to their metadata.
type FieldTable map[string]FieldInfo

// Lookup returns the metadata of a field.
func (t FieldTable) Lookup(name string) (FieldInfo, bool) {
	info, ok := t[name]
	return info, ok
}

// Names returns every field name in the table.
func (t FieldTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	return names
}
