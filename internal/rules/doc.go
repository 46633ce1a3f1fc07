// Package rules provides the rule-table schema, YAML parsing and the
// load-time compile step that binds rules to converters.
//
// A rule table is an ordered list of rules. Order is significant: in each
// direction the first rule that writes a field wins, and conditions only
// observe what earlier rules wrote.
//
// # Schema Overview
//
//	version: "1"
//	dialect: biblatex
//	rules:
//	  - source: $type              # pseudo-field: entry kind
//	    target: type
//	    converter: ENTRY_TYPE
//	  - source: [pages, eid]        # N:1, first defined wins
//	    target: page
//	    converter: PAGES
//	  - source: annote
//	    target: annote
//	    when:
//	      source: {annotation: false}
//	      target: false             # import only
//
// # Cardinality
//
//   - 1:1 - copy
//   - 1:N - the value fills the first target key (identity) or converter
//   - N:1 - first defined value (identity) or converter
//   - N:M - positional; without a converter both sides need the same length
//
// Converter arity and existence are checked by Compile; a table that
// compiles is immutable and safe for concurrent use.
package rules
