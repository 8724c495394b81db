// Package match provides name normalization, Levenshtein distance and
// ranking of near-miss names for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: folds case and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
