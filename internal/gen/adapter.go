package gen

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"eventsource-adapter/internal/plan"
	"eventsource-adapter/notify"
	"eventsource-adapter/sink"
)

var (
	// ErrArgumentCount is returned when a method gets the wrong number of values.
	ErrArgumentCount = errors.New("eventsource(gen): wrong number of arguments")
	// ErrArgumentType is returned when a value does not match its parameter type.
	ErrArgumentType = errors.New("eventsource(gen): argument type mismatch")
)

// Adapter is a synthesized adapter unit.
type Adapter struct {
	name          string
	plan          *plan.Plan
	source        *sink.EventSource
	events        []*Event
	notifications []*Notification
}

// Name returns the unique unit name, e.g. "Generated_EventSource_TestName_1".
func (a *Adapter) Name() string {
	return a.name
}

// Plan returns the plan the adapter was synthesized from.
func (a *Adapter) Plan() *plan.Plan {
	return a.plan
}

// DisplayName returns the event source name.
func (a *Adapter) DisplayName() string {
	return a.source.Name()
}

// EventSource returns the sink handle owned by the adapter.
func (a *Adapter) EventSource() *sink.EventSource {
	return a.source
}

// Events returns the sink-facing methods in declaration order.
func (a *Adapter) Events() []*Event {
	return slices.Clone(a.events)
}

// Notifications returns the notification-facing methods in declaration order.
func (a *Adapter) Notifications() []*Notification {
	return slices.Clone(a.notifications)
}

// Event returns the sink-facing method called methodName, e.g. "Event_TestEvent".
func (a *Adapter) Event(methodName string) (*Event, bool) {
	for _, e := range a.events {
		if e.name == methodName {
			return e, true
		}
	}

	return nil, false
}

// Notification returns the notification-facing method called methodName,
// e.g. "Notification_NumberOne".
func (a *Adapter) Notification(methodName string) (*Notification, bool) {
	for _, n := range a.notifications {
		if n.methodName == methodName {
			return n, true
		}
	}

	return nil, false
}

// NotificationMethods returns the notification methods for enlisting on a notify.Notifier.
func (a *Adapter) NotificationMethods() []notify.Method {
	methods := make([]notify.Method, len(a.notifications))
	for i, n := range a.notifications {
		methods[i] = n
	}

	return methods
}

// Event is a sink-facing method. It writes one event with the destination
// values of its data mappings.
type Event struct {
	name    string
	id      int
	types   []reflect.Type
	kind    plan.CallKind
	entry   string
	sig     string
	fn      any
	accepts []func(any) bool
	write   func(values []any)
}

// Name returns the method name.
func (e *Event) Name() string { return e.name }

// ID returns the numeric event id.
func (e *Event) ID() int { return e.id }

// Types returns the destination value types in declaration order.
func (e *Event) Types() []reflect.Type { return slices.Clone(e.types) }

// Call returns how the event reaches the sink.
func (e *Event) Call() plan.CallKind { return e.kind }

// EntryPoint returns the name of the sink entry point used.
func (e *Event) EntryPoint() string { return e.entry }

// Signature renders the sink entry point with its parameter types, e.g.
// "WriteEventStringInt(id, string, int)".
func (e *Event) Signature() string { return e.sig }

// Func returns the method as a typed func value: func(string, int) for an
// event with a string and an int value, or func(...any) for events written
// through the variable-arity entry point.
func (e *Event) Func() any { return e.fn }

// Write checks values against Types and writes the event.
// nil stands for the zero value.
func (e *Event) Write(values ...any) error {
	if err := check(e.name, e.accepts, values); err != nil {
		return err
	}

	e.write(values)

	return nil
}

// Notification is a notification-facing method. Its parameters are the
// distinct source values of the mapping, in first-appearance order.
type Notification struct {
	methodName       string
	notificationName string
	names            []string
	types            []reflect.Type
	accepts          []func(any) bool
	invoke           func(args []any)
	event            *Event
}

// MethodName returns the method name, e.g. "Notification_NumberOne".
func (n *Notification) MethodName() string { return n.methodName }

// NotificationName returns the full notification name the method listens to.
func (n *Notification) NotificationName() string { return n.notificationName }

// NonEvent reports that the method is not itself a sink call. Always true.
func (n *Notification) NonEvent() bool { return true }

// ParameterNames returns the parameter names in order.
func (n *Notification) ParameterNames() []string { return slices.Clone(n.names) }

// ParameterTypes returns the parameter types in order.
func (n *Notification) ParameterTypes() []reflect.Type { return slices.Clone(n.types) }

// Event returns the sink-facing method the notification calls.
func (n *Notification) Event() *Event { return n.event }

// Invoke converts args, given in parameter order, and writes the event.
// nil stands for the zero value.
func (n *Notification) Invoke(args ...any) error {
	if err := check(n.methodName, n.accepts, args); err != nil {
		return err
	}

	n.invoke(args)

	return nil
}

// InvokeNamed is Invoke with arguments taken by parameter name.
// Missing names are passed as nil.
func (n *Notification) InvokeNamed(values map[string]any) error {
	args := make([]any, len(n.names))
	for i, name := range n.names {
		args[i] = values[name]
	}

	return n.Invoke(args...)
}

func check(method string, accepts []func(any) bool, args []any) error {
	if len(args) != len(accepts) {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, method, len(accepts), len(args))
	}

	for i, ok := range accepts {
		if args[i] != nil && !ok(args[i]) {
			return fmt.Errorf("%w: %s argument %d is %T", ErrArgumentType, method, i, args[i])
		}
	}

	return nil
}
