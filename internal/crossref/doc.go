// Package crossref merges fields inherited through crossref references
// before translation.
package crossref
