package plan

import (
	"reflect"
	"slices"

	"eventsource-adapter/sink"
)

// ResolveSinkCall picks the first candidate whose parameter types equal types
// position by position. Without one the call falls back to the
// variable-arity entry point. types carries one entry per data mapping, so a
// source read twice counts twice.
func ResolveSinkCall(types []reflect.Type, candidates []sink.Overload) CallStrategy {
	types = slices.Clone(types)

	for _, o := range candidates {
		if slices.Equal(o.Params, types) {
			return CallStrategy{Kind: CallExact, Overload: o, Types: types}
		}
	}

	return CallStrategy{Kind: CallFallback, Types: types}
}
