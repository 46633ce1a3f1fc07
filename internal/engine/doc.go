// Package engine translates records between the source and target schemas
// by running a compiled rule table.
//
// For each direction the translator starts from an empty record and walks
// the rules in table order. A rule applies when its condition holds on the
// input record and on the output assembled so far; its input values are
// gathered positionally, passed through the converter (or copied), and
// written to the output keys. A key is written at most once per pass: the
// earliest rule that produces a value wins and later writes are dropped.
package engine
