package convert

import (
	"errors"
	"fmt"
	"slices"

	"bibmap/internal/record"
)

// Func transforms positional input values into positional output values.
// It returns false when it produces no value.
type Func func(values []any) ([]any, bool)

// Converter is a named bidirectional transform.
type Converter struct {
	Name        string
	Description string

	// SourceArity and TargetArity are the number of source and target keys a
	// rule must name; zero accepts any number.
	SourceArity int
	TargetArity int

	ToTarget Func
	ToSource Func
}

// Func returns the implementation for a direction, or nil when the converter
// does not support it.
func (c *Converter) Func(d record.Direction) Func {
	if c == nil {
		return nil
	}

	if d == record.ToSource {
		return c.ToSource
	}

	return c.ToTarget
}

// Supports reports whether the converter implements a direction.
func (c *Converter) Supports(d record.Direction) bool {
	return c.Func(d) != nil
}

// IsBidirectional reports whether both directions are implemented.
func (c *Converter) IsBidirectional() bool {
	return c.ToTarget != nil && c.ToSource != nil
}

// CheckArity verifies that a rule with the given number of source and target
// keys can use the converter.
func (c *Converter) CheckArity(sources, targets int) error {
	if c.SourceArity > 0 && sources != c.SourceArity {
		return fmt.Errorf("%w: converter %s takes %d source keys, rule names %d",
			ErrArity, c.Name, c.SourceArity, sources)
	}

	if c.TargetArity > 0 && targets != c.TargetArity {
		return fmt.Errorf("%w: converter %s takes %d target keys, rule names %d",
			ErrArity, c.Name, c.TargetArity, targets)
	}

	return nil
}

var (
	// ErrArity reports a rule whose key count does not fit its converter.
	ErrArity = errors.New("converter arity mismatch")
	// ErrDuplicate reports a converter registered twice.
	ErrDuplicate = errors.New("duplicate converter")
)

// Registry holds converters by name.
type Registry struct {
	converters map[string]*Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]*Converter),
	}
}

// Register adds a converter. Names must be unique.
func (r *Registry) Register(c *Converter) error {
	if c == nil || c.Name == "" {
		return errors.New("converter must have a name")
	}

	if _, exists := r.converters[c.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, c.Name)
	}

	r.converters[c.Name] = c

	return nil
}

// MustRegister is Register for statically known converters.
func (r *Registry) MustRegister(cs ...*Converter) *Registry {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}

	return r
}

// Get returns a converter by name, or nil if not found.
func (r *Registry) Get(name string) *Converter {
	if r == nil {
		return nil
	}

	return r.converters[name]
}

// Has returns true if a converter with the given name exists.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// All returns all converters sorted by name.
func (r *Registry) All() []*Converter {
	result := make([]*Converter, 0, len(r.converters))
	for _, name := range r.Names() {
		result = append(result, r.converters[name])
	}

	return result
}

// Names returns all converter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// firstDefined returns the first value that is not empty.
func firstDefined(values []any) (any, bool) {
	for _, v := range values {
		if !record.IsEmpty(v) {
			return v, true
		}
	}

	return nil, false
}

// arg returns the i-th value or nil.
func arg(values []any, i int) any {
	if i < len(values) {
		return values[i]
	}

	return nil
}

// stringArg returns the i-th value formatted as text, or "" when undefined.
func stringArg(values []any, i int) string {
	v := arg(values, i)
	if record.IsEmpty(v) {
		return ""
	}

	return record.Stringify(v)
}

func one(v any) ([]any, bool) {
	return []any{v}, true
}
