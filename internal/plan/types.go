package plan

import (
	"reflect"

	"eventsource-adapter/internal/diagnostic"
	"eventsource-adapter/internal/mapping"
	"eventsource-adapter/sink"
)

//go:generate go tool stringer -type=ConflictPolicy -linecomment -output=conflictpolicy_string.go
//go:generate go tool stringer -type=CallKind -linecomment -output=callkind_string.go

// ConflictPolicy decides what happens when one source name is declared with
// two different types in the same event mapping.
type ConflictPolicy int

const (
	// ConflictError rejects the mapping.
	ConflictError ConflictPolicy = iota // error
	// ConflictLastWins keeps the first position and the last declared type.
	// Data mappings expecting the overwritten type read zero values.
	ConflictLastWins // last-wins
)

// ParseConflictPolicy parses the String form of a policy.
func ParseConflictPolicy(s string) (ConflictPolicy, bool) {
	for _, p := range []ConflictPolicy{ConflictError, ConflictLastWins} {
		if p.String() == s {
			return p, true
		}
	}

	return ConflictError, false
}

// CallKind tells how an event reaches the sink.
type CallKind int

const (
	_ CallKind = iota // zero value is invalid

	// CallExact uses a typed overload whose parameters match exactly.
	CallExact // exact
	// CallFallback boxes the values into the variable-arity entry point.
	CallFallback // fallback
)

// Plan is the output of resolution. It contains everything needed for synthesis.
type Plan struct {
	// Name is the event source name.
	Name string
	// Events is the list of resolved events, in declaration order.
	Events []EventPlan
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// EventPlan is one resolved event mapping.
type EventPlan struct {
	// Mapping is a private copy of the declared mapping.
	Mapping mapping.EventMapping
	// Parameters are the notification parameters.
	Parameters ParameterSet
	// Slots holds, per data mapping, the index of the parameter it reads.
	Slots []int
	// Call is the chosen sink entry point.
	Call CallStrategy
}

// ID returns the numeric event id.
func (e *EventPlan) ID() int {
	id, _ := e.Mapping.Identity.EventID()
	return id
}

// EventMethodName returns the sink-facing method name.
func (e *EventPlan) EventMethodName() string {
	return e.Mapping.Identity.EventMethodName()
}

// NotificationMethodName returns the notification-facing method name.
func (e *EventPlan) NotificationMethodName() string {
	return e.Mapping.Identity.NotificationMethodName()
}

// Parameter is one notification parameter.
type Parameter struct {
	Name string
	Type reflect.Type
}

// Conflict records a source name declared with two types.
type Conflict struct {
	Name     string
	Previous reflect.Type
	Declared reflect.Type
}

// CallStrategy describes the sink call of one event.
type CallStrategy struct {
	Kind CallKind
	// Overload is set when Kind is CallExact.
	Overload sink.Overload
	// Types are the destination value types, one per data mapping.
	Types []reflect.Type
}

// Name returns the sink entry point name.
func (c CallStrategy) Name() string {
	if c.Kind == CallExact {
		return c.Overload.Name
	}

	return sink.FallbackName
}

// Signature renders the chosen entry point with its parameter types.
func (c CallStrategy) Signature() string {
	if c.Kind == CallExact {
		return c.Overload.Signature()
	}

	return sink.FallbackName + "(id, ...any)"
}
