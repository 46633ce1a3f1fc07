// Package condition evaluates the "when" clauses that gate rules.
//
// A rule carries one clause per side. Each clause is evaluated against the
// record on its own side: in the to-target direction the source clause sees
// the input record and the target clause sees the target record assembled
// so far; the to-source direction swaps them. Conditions therefore only
// observe what earlier rules have already written.
//
// # Clause forms
//
//	when:
//	  source:                # field map: every entry must pass
//	    maintitle: false     # field absent
//	    $type: article       # literal (pseudo-field $type)
//	  target: false          # rule never reads from the target side
//
// A side set to false disables the rule in the direction where that side is
// the input, which makes one-direction rules. Where that side is the output
// the clause is ignored. A side set to true, or left out, always passes.
//
// # Field matchers
//
//	true                  present
//	false                 absent
//	article               equal to the literal
//	[book, mvbook]        one of the literals
//	{not: webpage}        not equal to (or not one of); passes when absent
//	{pattern: '\d'}       value matches the expression
//	{not_pattern: '\d'}   value does not match; passes when absent
//	{maps_to: report}     the kind maps to one of these target kinds
package condition
