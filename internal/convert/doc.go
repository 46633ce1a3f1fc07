// Package convert provides the converter registry and the named,
// bidirectional value transforms used by the rule tables.
//
// A converter maps an ordered sequence of input values to an ordered
// sequence of output values. In the to-target direction the inputs are the
// values of the rule's source keys and the outputs are written to its target
// keys; the to-source direction swaps the roles. Undefined values are nil.
//
// A converter may implement only one direction. Rules using it are skipped in
// the other direction rather than failing. Converters are pure functions and
// hold no shared state, so a Registry can be used from many goroutines once
// built.
//
// # Arity
//
// SourceArity and TargetArity fix how many source and target keys a rule
// using the converter must name. Zero means any number. The rules package
// checks arities when a table is compiled.
package convert
