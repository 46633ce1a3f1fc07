// Package metadata exposes the static lookup tables the translation core
// consumes: entry-kind mappings between the source and target schemas, the
// per-kind required field sets, and the field metadata table (field shape
// and data kind).
//
// The tables are produced offline from the schema documentation and are
// embedded as JSON. They are loaded once and never mutated.
package metadata
