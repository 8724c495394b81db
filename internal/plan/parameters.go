package plan

import (
	"errors"
	"fmt"
	"reflect"

	"eventsource-adapter/internal/mapping"
)

// ErrParameterConflict is returned when a source name is declared with two
// different types under ConflictError.
var ErrParameterConflict = errors.New("eventsource(plan): conflicting parameter types")

// ParameterSet is the ordered, name-unique parameter list of a notification.
type ParameterSet struct {
	params    []Parameter
	index     map[string]int
	conflicts []Conflict
}

// ResolveParameters derives the notification parameters of em. Parameters are
// positioned by the first appearance of their source name.
func ResolveParameters(em *mapping.EventMapping, policy ConflictPolicy) (ParameterSet, error) {
	ps := ParameterSet{index: make(map[string]int, len(em.DataMappings))}

	var errs []error

	for _, dm := range em.DataMappings {
		i, seen := ps.index[dm.SourceName]
		if !seen {
			ps.index[dm.SourceName] = len(ps.params)
			ps.params = append(ps.params, Parameter{Name: dm.SourceName, Type: dm.SourceType})

			continue
		}

		prev := ps.params[i].Type
		if prev == dm.SourceType {
			continue
		}

		ps.conflicts = append(ps.conflicts, Conflict{Name: dm.SourceName, Previous: prev, Declared: dm.SourceType})

		switch policy {
		case ConflictLastWins:
			ps.params[i].Type = dm.SourceType
		default:
			errs = append(errs, fmt.Errorf("%w: %q is %v and %v", ErrParameterConflict, dm.SourceName, prev, dm.SourceType))
		}
	}

	return ps, errors.Join(errs...)
}

// Len returns the number of parameters.
func (p ParameterSet) Len() int {
	return len(p.params)
}

// At returns the parameter at position i.
func (p ParameterSet) At(i int) Parameter {
	return p.params[i]
}

// IndexOf returns the position of the parameter called name.
func (p ParameterSet) IndexOf(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Names returns the parameter names in order.
func (p ParameterSet) Names() []string {
	names := make([]string, len(p.params))
	for i, prm := range p.params {
		names[i] = prm.Name
	}

	return names
}

// Types returns the parameter types in order.
func (p ParameterSet) Types() []reflect.Type {
	types := make([]reflect.Type, len(p.params))
	for i, prm := range p.params {
		types[i] = prm.Type
	}

	return types
}

// Conflicts returns the type conflicts met while resolving.
func (p ParameterSet) Conflicts() []Conflict {
	return p.conflicts
}
