package notify

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnsupportedPayload is returned for payloads that are not a map or a struct.
var ErrUnsupportedPayload = errors.New("notify: unsupported payload")

// Values is a bag of named notification values.
type Values map[string]any

type lookupFunc func(name string) (any, bool)

func newLookup(payload any) (lookupFunc, error) {
	switch p := payload.(type) {
	case nil:
		return func(string) (any, bool) { return nil, false }, nil
	case Values:
		return mapLookup(p), nil
	case map[string]any:
		return mapLookup(p), nil
	}

	v := reflect.ValueOf(payload)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return func(string) (any, bool) { return nil, false }, nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}

	return structLookup(v), nil
}

// mapLookup matches keys exactly first, then case-insensitively.
func mapLookup(m map[string]any) lookupFunc {
	return func(name string) (any, bool) {
		if v, ok := m[name]; ok {
			return v, true
		}

		for k, v := range m {
			if strings.EqualFold(k, name) {
				return v, true
			}
		}

		return nil, false
	}
}

func structLookup(v reflect.Value) lookupFunc {
	t := v.Type()

	return func(name string) (any, bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, name) {
				return v.Field(i).Interface(), true
			}
		}

		return nil, false
	}
}
