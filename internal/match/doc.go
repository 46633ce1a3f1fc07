// Package match provides field-name normalization, Levenshtein distance and
// candidate ranking for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeField: folds a field or converter name for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankNames: ranks known names by similarity to an unknown one
//   - Suggest: returns the closest known names above a threshold
package match
