// Package plan resolves event mappings into a Plan consumed by adapter
// synthesis.
//
// Resolution pipeline, per event mapping in declaration order:
//  1. Validate the identity and every data mapping.
//  2. Resolve the notification parameters: one per distinct source name,
//     positioned by first appearance.
//  3. Bind each data mapping to the index of the parameter it reads.
//  4. Pick the sink entry point: the first typed overload whose parameter
//     types equal the destination types, or the variable-arity fallback.
//
// Cross-mapping checks (duplicate ids and method names) run afterwards.
// Findings are reported as diagnostics; Resolve fails when any is an error.
package plan
