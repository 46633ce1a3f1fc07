package engine

import (
	"fmt"

	"go.uber.org/zap"

	"bibmap/internal/condition"
	"bibmap/internal/convert"
	"bibmap/internal/metadata"
	"bibmap/internal/record"
	"bibmap/internal/rules"
)

// Translator runs a compiled rule table in both directions. It holds no
// mutable state and is safe for concurrent use.
type Translator struct {
	rules *rules.Compiled
	eval  *condition.Evaluator
	log   *zap.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger used for debug traces of skipped rules.
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// New creates a translator for a compiled rule table.
func New(compiled *rules.Compiled, eval *condition.Evaluator, opts ...Option) *Translator {
	t := &Translator{
		rules: compiled,
		eval:  eval,
		log:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// ForDialect builds a translator from the embedded tables of a dialect.
func ForDialect(d metadata.Dialect, opts ...Option) (*Translator, error) {
	meta, err := metadata.Load(d)
	if err != nil {
		return nil, err
	}

	tbl, err := rules.Builtin(d)
	if err != nil {
		return nil, err
	}

	return FromTable(tbl, meta, opts...)
}

// FromTable compiles a rule table against the converters and type table of
// a dialect.
func FromTable(tbl *rules.Table, meta *metadata.Tables, opts ...Option) (*Translator, error) {
	compiled, err := rules.Compile(tbl, convert.NewRegistryFor(meta))
	if err != nil {
		return nil, fmt.Errorf("compile %s rules: %w", meta.Dialect, err)
	}

	return New(compiled, condition.NewEvaluator(meta.Types), opts...), nil
}

// Rules returns the compiled rule table.
func (t *Translator) Rules() *rules.Compiled {
	return t.rules
}

// ConvertToTarget translates a source record into a target record.
func (t *Translator) ConvertToTarget(rec *record.Record) *record.Record {
	return t.Translate(rec, record.ToTarget)
}

// ConvertToSource translates a target record into a source record.
func (t *Translator) ConvertToSource(rec *record.Record) *record.Record {
	return t.Translate(rec, record.ToSource)
}

// Translate runs every rule in table order in direction d. The input is
// never modified and the output shares no containers with it.
func (t *Translator) Translate(in *record.Record, d record.Direction) *record.Record {
	out := record.New("", "")
	if in == nil {
		return out
	}

	for b := range t.rules.All() {
		if !t.eval.Allows(b.Rule.When, d, in, out) {
			continue
		}

		outKeys := b.Rule.Keys(d.Output())

		values, ok := t.apply(b, d, gather(in, b.Rule.Keys(d.Input())), len(outKeys))
		if !ok {
			continue
		}

		t.write(out, b, d, outKeys, values)
	}

	return out
}

// apply produces the output values of one rule.
func (t *Translator) apply(b *rules.Bound, d record.Direction, values []any, outN int) ([]any, bool) {
	if allEmpty(values) {
		return nil, false
	}

	if b.Converter == nil {
		return identity(values, outN)
	}

	fn := b.Converter.Func(d)
	if fn == nil {
		t.log.Debug("rule skipped: converter has no direction",
			zap.String("rule", b.ID),
			zap.String("converter", b.Converter.Name),
			zap.Stringer("direction", d))

		return nil, false
	}

	return fn(values)
}

// write assigns values positionally. Missing and empty values are not
// written, and neither is any key that already holds a value.
func (t *Translator) write(out *record.Record, b *rules.Bound, d record.Direction, keys rules.KeyList, values []any) {
	for i, key := range keys {
		if i >= len(values) {
			return
		}

		v := values[i]
		if record.IsEmpty(v) {
			continue
		}

		if out.HasKey(key) {
			t.log.Debug("rule skipped: key already written",
				zap.String("rule", b.ID),
				zap.Stringer("key", key),
				zap.Stringer("direction", d))

			continue
		}

		out.Put(key, record.CloneValue(v))
	}
}

// gather reads the input values of a rule, undefined values included.
func gather(in *record.Record, keys rules.KeyList) []any {
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i], _ = in.Lookup(k)
	}

	return values
}

// identity copies values without a converter: the first defined value for
// a single output key, and otherwise the values positionally. Output keys
// past the end of the input stay unset.
func identity(values []any, outN int) ([]any, bool) {
	first, ok := firstDefined(values)
	if !ok {
		return nil, false
	}

	if outN <= 1 {
		return []any{first}, true
	}

	if len(values) > outN {
		values = values[:outN]
	}

	return values, true
}

func firstDefined(values []any) (any, bool) {
	for _, v := range values {
		if !record.IsEmpty(v) {
			return v, true
		}
	}

	return nil, false
}

func allEmpty(values []any) bool {
	_, ok := firstDefined(values)
	return !ok
}
