// Package diagnostic provides structured errors, warnings and infos for
// rule-table loading and consistency checks.
//
// Key capabilities:
//   - Unknown converter and arity errors at load time
//   - Undefined field warnings with "did you mean" suggestions
//   - Missing converter warnings for list-shaped fields
package diagnostic
