package record

import "strings"

//go:generate go tool stringer -type=Marker -output=marker_string.go

// Marker distinguishes ordinary fields from the reserved pseudo-fields.
type Marker int

const (
	Ordinary Marker = iota
	Kind
	Label
)

// Reserved spellings of the pseudo-fields in rule tables.
const (
	KindKeyName  = "$type"
	LabelKeyName = "$label"
)

// Key addresses a value in a record: an ordinary field by name, or one of
// the pseudo-fields.
type Key struct {
	Marker Marker
	Name   string
}

// Field returns the key of an ordinary field.
func Field(name string) Key {
	return Key{Marker: Ordinary, Name: name}
}

// KindKey is the entry-kind pseudo-field.
var KindKey = Key{Marker: Kind}

// LabelKey is the identity pseudo-field.
var LabelKey = Key{Marker: Label}

// ParseKey turns the rule-table spelling into a Key. "$type" and "$label"
// name the pseudo-fields; anything else is an ordinary field.
func ParseKey(s string) Key {
	switch strings.TrimSpace(s) {
	case KindKeyName:
		return KindKey
	case LabelKeyName:
		return LabelKey
	default:
		return Field(s)
	}
}

// IsPseudo reports whether the key is one of the reserved markers.
func (k Key) IsPseudo() bool {
	return k.Marker != Ordinary
}

// String returns the rule-table spelling of the key.
func (k Key) String() string {
	switch k.Marker {
	case Kind:
		return KindKeyName
	case Label:
		return LabelKeyName
	default:
		return k.Name
	}
}
