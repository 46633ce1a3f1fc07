// Package check cross-checks a rule table against the field metadata of its
// dialect. The findings are advisory: nothing reported here stops a table
// from compiling or running.
package check
