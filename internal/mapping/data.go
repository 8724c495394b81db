package mapping

import (
	"fmt"
	"reflect"
)

// DataMapping reads the payload value named SourceName (of SourceType) and
// produces one event value of DestinationType.
type DataMapping struct {
	SourceName      string
	SourceType      reflect.Type
	DestinationType reflect.Type
	// Transform labels the conversion applied to the source value.
	// Empty means the value passes through unchanged.
	Transform string

	conv *conversion
}

// conversion holds the typed closures captured by a constructor.
type conversion struct {
	// reader returns a func([]any) D reading the argument at index.
	reader      func(index int) any
	boxedReader func(index int) func(args []any) any
	source      func(v any) bool
	destination func(v any) bool
}

// PassThrough maps the payload value sourceName of type T unchanged.
func PassThrough[T any](sourceName string) DataMapping {
	t := reflect.TypeFor[T]()

	return DataMapping{
		SourceName:      sourceName,
		SourceType:      t,
		DestinationType: t,
		conv:            passThroughConversion[T](),
	}
}

// Transformed maps the payload value sourceName of type T through fn.
// A nil fn behaves like PassThrough when T and U are the same type and is
// otherwise a type mismatch reported by Validate.
func Transformed[T, U any](sourceName string, fn func(T) U) DataMapping {
	dm := DataMapping{
		SourceName:      sourceName,
		SourceType:      reflect.TypeFor[T](),
		DestinationType: reflect.TypeFor[U](),
	}

	if fn == nil {
		if dm.SourceType == dm.DestinationType {
			dm.conv = passThroughConversion[T]()
		}

		return dm
	}

	dm.Transform = fmt.Sprintf("func(%s) %s", dm.SourceType, dm.DestinationType)
	dm.conv = transformConversion(fn)

	return dm
}

func passThroughConversion[T any]() *conversion {
	accepts := acceptor[T]()

	return &conversion{
		reader: func(index int) any {
			return func(args []any) T {
				v, _ := args[index].(T)
				return v
			}
		},
		boxedReader: func(index int) func([]any) any {
			return func(args []any) any {
				v, _ := args[index].(T)
				return v
			}
		},
		source:      accepts,
		destination: accepts,
	}
}

func transformConversion[T, U any](fn func(T) U) *conversion {
	return &conversion{
		reader: func(index int) any {
			return func(args []any) U {
				v, _ := args[index].(T)
				return fn(v)
			}
		},
		boxedReader: func(index int) func([]any) any {
			return func(args []any) any {
				v, _ := args[index].(T)
				return fn(v)
			}
		},
		source:      acceptor[T](),
		destination: acceptor[U](),
	}
}

// acceptor returns a check for values usable as T. nil is accepted for
// types whose zero value is nil.
func acceptor[T any]() func(any) bool {
	nilable := IsNilable(reflect.TypeFor[T]())

	return func(v any) bool {
		if _, ok := v.(T); ok {
			return true
		}

		return v == nil && nilable
	}
}

// IsNilable reports whether nil is a valid value of t.
func IsNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// HasTransform reports whether the mapping converts its source value.
func (d DataMapping) HasTransform() bool {
	return d.Transform != ""
}

// Bound reports whether the mapping carries a typed conversion.
func (d DataMapping) Bound() bool {
	return d.conv != nil
}

// Validate checks the mapping on its own.
func (d DataMapping) Validate() error {
	if d.SourceName == "" {
		return ErrEmptySourceName
	}

	if !d.HasTransform() && d.SourceType != d.DestinationType {
		return fmt.Errorf("%w: %q is %v, destination is %v",
			ErrTypeMismatch, d.SourceName, d.SourceType, d.DestinationType)
	}

	if d.conv == nil {
		return fmt.Errorf("%w: %q", ErrUnboundDataMapping, d.SourceName)
	}

	return nil
}

// Reader returns a func([]any) D, D being DestinationType, that reads the
// argument at index and applies the transform. Intended for synthesis only.
func (d DataMapping) Reader(index int) any {
	if d.conv == nil {
		return nil
	}

	return d.conv.reader(index)
}

// BoxedReader is Reader with the destination value boxed.
func (d DataMapping) BoxedReader(index int) func(args []any) any {
	if d.conv == nil {
		return nil
	}

	return d.conv.boxedReader(index)
}

// AcceptsSource reports whether v can be passed as the source value.
func (d DataMapping) AcceptsSource(v any) bool {
	return d.conv != nil && d.conv.source(v)
}

// AcceptsDestination reports whether v can be written as the destination value.
func (d DataMapping) AcceptsDestination(v any) bool {
	return d.conv != nil && d.conv.destination(v)
}

// String describes the mapping, e.g. "hi string -> int via len".
func (d DataMapping) String() string {
	s := fmt.Sprintf("%s %v", d.SourceName, d.SourceType)
	if d.HasTransform() {
		return fmt.Sprintf("%s -> %v via %s", s, d.DestinationType, d.Transform)
	}

	return s
}
