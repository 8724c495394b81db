// Package gen synthesizes adapters from resolved plans.
//
// An Adapter owns one sink.EventSource and exposes, per resolved event:
//   - an Event (sink-facing method) taking the destination values in
//     declaration order and forwarding them to the chosen sink entry point;
//   - a Notification (notification-facing method) taking the distinct
//     source values in parameter order, converting each into its
//     destination slot and calling the event.
//
// Synthesis binds every reader, transform and sink call into closures once.
// Invoking a method afterwards does plain type assertions and function calls:
// no reflection, no locks and no mutable state. Adapters are safe for
// concurrent use.
//
// Adapter unit names come from a Registry, which hands out
// "Generated_EventSource_<name>_<n>" with a per-registry atomic counter so
// that adapters built from the same name never collide.
package gen
