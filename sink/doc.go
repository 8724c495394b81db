// Package sink is the tracing side of the bridge: a named, strongly typed
// event source that fans written events out to listeners.
//
// An EventSource exposes a closed family of fixed-arity entry points
// (WriteEvent, WriteEventInt, WriteEventStringInt, ...) plus the
// variable-arity WriteEventArgs. Adapters resolve one entry point per event
// ahead of time (see Overloads) so that, on the hot path, a notification turns
// into a single typed call. When no listener is enabled a write returns before
// any payload is materialised.
//
// Every EventSource carries a GUID derived from its name (GUIDFromName) so that
// external tooling sees the same identifier for the same source across runs.
package sink
