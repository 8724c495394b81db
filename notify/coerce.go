package notify

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// ErrCoerce is returned when a value cannot be converted to a parameter type.
var ErrCoerce = errors.New("notify: cannot coerce value")

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
	bytesType    = reflect.TypeFor[[]byte]()
)

// basicTypes holds the unnamed type of every basic kind.
var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.String:  reflect.TypeFor[string](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
}

// Coerce returns v as a value of exactly type t, or of a type implementing t
// when t is an interface. Assignable values are converted; named basic
// values are unwrapped and, like other basic kinds, converted with cast.
func Coerce(v any, t reflect.Type) (any, error) {
	if v == nil {
		return nil, nil
	}

	vt := reflect.TypeOf(v)
	if vt == t {
		return v, nil
	}

	if vt.AssignableTo(t) {
		if t.Kind() == reflect.Interface {
			return v, nil
		}

		return reflect.ValueOf(v).Convert(t).Interface(), nil
	}

	// Named basic values such as `type code int` go through cast as their
	// underlying kind.
	if bt, ok := basicTypes[vt.Kind()]; ok && vt != bt {
		v = reflect.ValueOf(v).Convert(bt).Interface()
		if bt == t {
			return v, nil
		}
	}

	out, err := castTo(v, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v to %v: %w", ErrCoerce, vt, t, err)
	}

	// Named types such as `type Status string`.
	if ot := reflect.TypeOf(out); ot != t {
		if !ot.ConvertibleTo(t) {
			return nil, fmt.Errorf("%w: %v to %v", ErrCoerce, vt, t)
		}

		out = reflect.ValueOf(out).Convert(t).Interface()
	}

	return out, nil
}

func castTo(v any, t reflect.Type) (any, error) {
	switch t {
	case durationType:
		return cast.ToDurationE(v)
	case timeType:
		return cast.ToTimeE(v)
	case bytesType:
		s, err := cast.ToStringE(v)
		return []byte(s), err
	}

	switch t.Kind() {
	case reflect.Bool:
		return cast.ToBoolE(v)
	case reflect.String:
		return cast.ToStringE(v)
	case reflect.Int:
		return cast.ToIntE(v)
	case reflect.Int8:
		return cast.ToInt8E(v)
	case reflect.Int16:
		return cast.ToInt16E(v)
	case reflect.Int32:
		return cast.ToInt32E(v)
	case reflect.Int64:
		return cast.ToInt64E(v)
	case reflect.Uint:
		return cast.ToUintE(v)
	case reflect.Uint8:
		return cast.ToUint8E(v)
	case reflect.Uint16:
		return cast.ToUint16E(v)
	case reflect.Uint32:
		return cast.ToUint32E(v)
	case reflect.Uint64:
		return cast.ToUint64E(v)
	case reflect.Float32:
		return cast.ToFloat32E(v)
	case reflect.Float64:
		return cast.ToFloat64E(v)
	default:
		return nil, fmt.Errorf("unsupported kind %v", t.Kind())
	}
}
