// Package diagnostic provides structured errors, warnings and notes
// produced while validating mapping definitions and resolving adapter plans.
//
// Key capabilities:
//   - Configuration errors (missing ids, mismatched types, unknown transforms)
//   - Fallback notices when no typed sink overload matches an event
//   - "Did you mean" suggestions for misspelled type and transform names
package diagnostic
