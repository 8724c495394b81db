package sink

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// FallbackName is the name of the variable-arity entry point.
const FallbackName = "WriteEventArgs"

// ErrReaderMismatch is returned when the readers handed to Compose do not
// produce the overload's parameter types.
var ErrReaderMismatch = errors.New("sink: reader does not match overload parameter")

// Overload describes one fixed-arity entry point of EventSource. Each entry
// takes the event id followed by Params, in order.
//
// A reader is a func([]any) T that extracts one destination value of type T
// from a notification's positional arguments; Compose chains readers into a
// single typed call without boxing the destination values.
type Overload struct {
	Name   string
	Params []reflect.Type

	method  func(s *EventSource, id int) any
	compose func(s *EventSource, id int, readers []any) (func(args []any), bool)
	call    func(s *EventSource, id int, values []any)
}

// Method returns the entry point bound to s and id as a typed func value,
// e.g. func(string, int) for WriteEventStringInt.
func (o Overload) Method(s *EventSource, id int) any {
	return o.method(s, id)
}

// Compose binds readers (one func([]any) T per parameter) to the entry point.
func (o Overload) Compose(s *EventSource, id int, readers []any) (func(args []any), error) {
	if len(readers) != len(o.Params) {
		return nil, fmt.Errorf("%w: %s takes %d values, got %d readers",
			ErrReaderMismatch, o.Name, len(o.Params), len(readers))
	}

	fn, ok := o.compose(s, id, readers)
	if !ok {
		return nil, fmt.Errorf("%w: %s%v", ErrReaderMismatch, o.Name, o.Params)
	}

	return fn, nil
}

// Call invokes the entry point with boxed values. Values must already match
// Params; nil stands for the zero value.
func (o Overload) Call(s *EventSource, id int, values []any) {
	o.call(s, id, values)
}

// Signature renders the overload as "Name(id, T1, T2)".
func (o Overload) Signature() string {
	parts := "id"
	for _, p := range o.Params {
		parts += ", " + p.String()
	}

	return o.Name + "(" + parts + ")"
}

// Overloads returns the closed family of typed entry points in their stable
// enumeration order. The variable-arity fallback is not part of the family.
func Overloads() []Overload {
	return slices.Clone(overloads)
}

var overloads = []Overload{
	overload0("WriteEvent", (*EventSource).WriteEvent),
	overload1("WriteEventInt", (*EventSource).WriteEventInt),
	overload2("WriteEventIntInt", (*EventSource).WriteEventIntInt),
	overload3("WriteEventIntIntInt", (*EventSource).WriteEventIntIntInt),
	overload1("WriteEventInt64", (*EventSource).WriteEventInt64),
	overload2("WriteEventInt64Int64", (*EventSource).WriteEventInt64Int64),
	overload3("WriteEventInt64Int64Int64", (*EventSource).WriteEventInt64Int64Int64),
	overload1("WriteEventString", (*EventSource).WriteEventString),
	overload2("WriteEventStringString", (*EventSource).WriteEventStringString),
	overload3("WriteEventStringStringString", (*EventSource).WriteEventStringStringString),
	overload2("WriteEventStringInt", (*EventSource).WriteEventStringInt),
	overload3("WriteEventStringIntInt", (*EventSource).WriteEventStringIntInt),
	overload2("WriteEventStringInt64", (*EventSource).WriteEventStringInt64),
	overload2("WriteEventInt64String", (*EventSource).WriteEventInt64String),
	overload2("WriteEventIntString", (*EventSource).WriteEventIntString),
	overload1("WriteEventBytes", (*EventSource).WriteEventBytes),
	overload2("WriteEventInt64Bytes", (*EventSource).WriteEventInt64Bytes),
}

func overload0(name string, w func(*EventSource, int)) Overload {
	return Overload{
		Name: name,
		method: func(s *EventSource, id int) any {
			return func() { w(s, id) }
		},
		compose: func(s *EventSource, id int, _ []any) (func([]any), bool) {
			return func([]any) { w(s, id) }, true
		},
		call: func(s *EventSource, id int, _ []any) {
			w(s, id)
		},
	}
}

func overload1[A any](name string, w func(*EventSource, int, A)) Overload {
	return Overload{
		Name:   name,
		Params: []reflect.Type{reflect.TypeFor[A]()},
		method: func(s *EventSource, id int) any {
			return func(a A) { w(s, id, a) }
		},
		compose: func(s *EventSource, id int, r []any) (func([]any), bool) {
			ra, ok := r[0].(func([]any) A)
			if !ok {
				return nil, false
			}

			return func(args []any) { w(s, id, ra(args)) }, true
		},
		call: func(s *EventSource, id int, v []any) {
			a, _ := v[0].(A)
			w(s, id, a)
		},
	}
}

func overload2[A, B any](name string, w func(*EventSource, int, A, B)) Overload {
	return Overload{
		Name:   name,
		Params: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		method: func(s *EventSource, id int) any {
			return func(a A, b B) { w(s, id, a, b) }
		},
		compose: func(s *EventSource, id int, r []any) (func([]any), bool) {
			ra, okA := r[0].(func([]any) A)
			rb, okB := r[1].(func([]any) B)

			if !okA || !okB {
				return nil, false
			}

			return func(args []any) { w(s, id, ra(args), rb(args)) }, true
		},
		call: func(s *EventSource, id int, v []any) {
			a, _ := v[0].(A)
			b, _ := v[1].(B)
			w(s, id, a, b)
		},
	}
}

func overload3[A, B, C any](name string, w func(*EventSource, int, A, B, C)) Overload {
	return Overload{
		Name:   name,
		Params: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()},
		method: func(s *EventSource, id int) any {
			return func(a A, b B, c C) { w(s, id, a, b, c) }
		},
		compose: func(s *EventSource, id int, r []any) (func([]any), bool) {
			ra, okA := r[0].(func([]any) A)
			rb, okB := r[1].(func([]any) B)
			rc, okC := r[2].(func([]any) C)

			if !okA || !okB || !okC {
				return nil, false
			}

			return func(args []any) { w(s, id, ra(args), rb(args), rc(args)) }, true
		},
		call: func(s *EventSource, id int, v []any) {
			a, _ := v[0].(A)
			b, _ := v[1].(B)
			c, _ := v[2].(C)
			w(s, id, a, b, c)
		},
	}
}

// ComposeFallback binds boxed readers to WriteEventArgs. It always succeeds;
// each call allocates the payload slice.
func ComposeFallback(s *EventSource, id int, readers []func(args []any) any) func(args []any) {
	return func(args []any) {
		values := make([]any, len(readers))
		for i, r := range readers {
			values[i] = r(args)
		}

		s.WriteEventArgs(id, values...)
	}
}

// FallbackMethod returns WriteEventArgs bound to s and id.
func FallbackMethod(s *EventSource, id int) func(values ...any) {
	return func(values ...any) {
		s.WriteEventArgs(id, values...)
	}
}
