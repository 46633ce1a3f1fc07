package record

import (
	"iter"
	"maps"
	"slices"
)

// Record is an ordered mapping from field name to value plus the entry-kind
// and label pseudo-fields. An empty Type or Label means the pseudo-field is
// unset. Nil values are never stored: setting a field to nil removes it.
//
// The zero Record is empty and ready to use.
type Record struct {
	Type  string
	Label string

	order  []string
	values map[string]any
}

// New creates a record with the given kind and label.
func New(kind, label string) *Record {
	return &Record{Type: kind, Label: label}
}

// FromMap builds a record from a plain map. Keys are ordered alphabetically
// since Go maps carry no order.
func FromMap(m map[string]any) *Record {
	r := &Record{}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		r.Set(k, m[k])
	}

	return r
}

// Len returns the number of ordinary fields.
func (r *Record) Len() int {
	return len(r.order)
}

// Get returns the value of an ordinary field.
func (r *Record) Get(name string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}

	v, ok := r.values[name]

	return v, ok
}

// GetString returns the value of an ordinary field when it is a string.
func (r *Record) GetString(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Has reports whether an ordinary field is set.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set writes an ordinary field, appending it to the field order when new.
// A nil value deletes the field.
func (r *Record) Set(name string, v any) {
	if v == nil {
		r.Delete(name)
		return
	}

	if r.values == nil {
		r.values = make(map[string]any)
	}

	if _, exists := r.values[name]; !exists {
		r.order = append(r.order, name)
	}

	r.values[name] = v
}

// Delete removes an ordinary field.
func (r *Record) Delete(name string) {
	if r.values == nil {
		return
	}

	if _, exists := r.values[name]; !exists {
		return
	}

	delete(r.values, name)
	r.order = slices.DeleteFunc(r.order, func(k string) bool { return k == name })
}

// Keys returns the ordinary field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.order)
}

// All iterates over the ordinary fields in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}

		for _, k := range r.order {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Lookup reads a value addressed by key, including the pseudo-fields.
func (r *Record) Lookup(k Key) (any, bool) {
	if r == nil {
		return nil, false
	}

	switch k.Marker {
	case Kind:
		return r.Type, r.Type != ""
	case Label:
		return r.Label, r.Label != ""
	default:
		return r.Get(k.Name)
	}
}

// HasKey reports whether the value addressed by key is set.
func (r *Record) HasKey(k Key) bool {
	_, ok := r.Lookup(k)
	return ok
}

// Put writes a value addressed by key. Pseudo-fields only accept strings;
// other values are formatted with Stringify.
func (r *Record) Put(k Key, v any) {
	switch k.Marker {
	case Kind:
		r.Type = Stringify(v)
	case Label:
		r.Label = Stringify(v)
	default:
		r.Set(k.Name, v)
	}
}

// Clone returns a copy of the record. Values are deep-copied.
func (r *Record) Clone() *Record {
	if r == nil {
		return &Record{}
	}

	c := &Record{Type: r.Type, Label: r.Label}
	for k, v := range r.All() {
		c.Set(k, CloneValue(v))
	}

	return c
}

// Map returns the ordinary fields as a plain map.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, r.Len())
	for k, v := range r.All() {
		m[k] = v
	}

	return m
}
