package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	// ErrUnknownType is returned when a type name is not registered.
	ErrUnknownType = errors.New("eventsource(mapping): unknown type")
	// ErrUnknownTransform is returned when a transform name is not registered.
	ErrUnknownTransform = errors.New("eventsource(mapping): unknown transform")
	// ErrDuplicateName is returned when a type or transform name is registered twice.
	ErrDuplicateName = errors.New("eventsource(mapping): name already registered")
	// ErrTransformInput is returned when a transform is applied to a value of another type.
	ErrTransformInput = errors.New("eventsource(mapping): transform input type mismatch")
)

// Transform is a named, type-erased conversion usable from mapping files.
type Transform struct {
	Name        string
	In          reflect.Type
	Out         reflect.Type
	Description string

	bind func(sourceName string) DataMapping
}

// NewTransform wraps fn as a named transform.
func NewTransform[T, U any](name string, fn func(T) U) *Transform {
	return &Transform{
		Name: name,
		In:   reflect.TypeFor[T](),
		Out:  reflect.TypeFor[U](),
		bind: func(sourceName string) DataMapping {
			dm := Transformed(sourceName, fn)
			dm.Transform = name

			return dm
		},
	}
}

// Map returns a data mapping reading sourceName through the transform.
func (t *Transform) Map(sourceName string) DataMapping {
	return t.bind(sourceName)
}

type typeEntry struct {
	t    reflect.Type
	pass func(sourceName string) DataMapping
}

// Catalog resolves the type and transform names used in mapping files.
// It is safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	types      map[string]typeEntry
	names      map[reflect.Type]string
	transforms map[string]*Transform
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		types:      make(map[string]typeEntry),
		names:      make(map[reflect.Type]string),
		transforms: make(map[string]*Transform),
	}
}

// DefaultCatalog returns a catalog holding the basic types and built-in transforms.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	mustRegisterType[bool](c, "bool")
	mustRegisterType[string](c, "string")
	mustRegisterType[int](c, "int")
	mustRegisterType[int8](c, "int8")
	mustRegisterType[int16](c, "int16")
	mustRegisterType[int32](c, "int32")
	mustRegisterType[int64](c, "int64")
	mustRegisterType[uint](c, "uint")
	mustRegisterType[uint8](c, "uint8")
	mustRegisterType[uint16](c, "uint16")
	mustRegisterType[uint32](c, "uint32")
	mustRegisterType[uint64](c, "uint64")
	mustRegisterType[float32](c, "float32")
	mustRegisterType[float64](c, "float64")
	mustRegisterType[[]byte](c, "[]byte")
	mustRegisterType[time.Time](c, "time.Time")
	mustRegisterType[time.Duration](c, "time.Duration")
	mustRegisterType[any](c, "any")

	c.mustAddAlias("bytes", "[]byte")

	mustRegisterTransform(c, "len", func(s string) int { return len(s) })
	mustRegisterTransform(c, "upper", strings.ToUpper)
	mustRegisterTransform(c, "lower", strings.ToLower)
	mustRegisterTransform(c, "trim", strings.TrimSpace)
	mustRegisterTransform(c, "unixmilli", func(t time.Time) int64 { return t.UnixMilli() })
	mustRegisterTransform(c, "seconds", func(d time.Duration) float64 { return d.Seconds() })
	mustRegisterTransform(c, "sprint", func(v any) string { return fmt.Sprint(v) })
	mustRegisterTransform(c, "toint64", func(i int) int64 { return int64(i) })

	return c
}

// RegisterType makes T available under name.
func RegisterType[T any](c *Catalog, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.types[name]; ok {
		return fmt.Errorf("%w: type %q", ErrDuplicateName, name)
	}

	t := reflect.TypeFor[T]()
	c.types[name] = typeEntry{t: t, pass: PassThrough[T]}

	if _, ok := c.names[t]; !ok {
		c.names[t] = name
	}

	return nil
}

// RegisterTransform makes fn available under name.
func RegisterTransform[T, U any](c *Catalog, name string, fn func(T) U) error {
	return c.AddTransform(NewTransform(name, fn))
}

// AddTransform registers a prebuilt transform.
func (c *Catalog) AddTransform(t *Transform) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.transforms[t.Name]; ok {
		return fmt.Errorf("%w: transform %q", ErrDuplicateName, t.Name)
	}

	c.transforms[t.Name] = t

	return nil
}

// Type returns the Go type registered under name.
func (c *Catalog) Type(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.types[name]

	return e.t, ok
}

// Transform returns the transform registered under name.
func (c *Catalog) Transform(name string) (*Transform, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.transforms[name]

	return t, ok
}

// PassThrough returns a pass-through data mapping for the type registered as typeName.
func (c *Catalog) PassThrough(sourceName, typeName string) (DataMapping, error) {
	c.mu.RLock()
	e, ok := c.types[typeName]
	c.mu.RUnlock()

	if !ok {
		return DataMapping{}, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	return e.pass(sourceName), nil
}

// Map returns a data mapping reading sourceName of typeName through the named transform.
func (c *Catalog) Map(sourceName, typeName, transformName string) (DataMapping, error) {
	if transformName == "" {
		return c.PassThrough(sourceName, typeName)
	}

	t, ok := c.Transform(transformName)
	if !ok {
		return DataMapping{}, fmt.Errorf("%w: %q", ErrUnknownTransform, transformName)
	}

	if typeName != "" {
		in, ok := c.Type(typeName)
		if !ok {
			return DataMapping{}, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
		}

		if in != t.In {
			return DataMapping{}, fmt.Errorf("%w: %s takes %v, got %s", ErrTransformInput, t.Name, t.In, typeName)
		}
	}

	return t.Map(sourceName), nil
}

// TypeNames returns the registered type names, sorted.
func (c *Catalog) TypeNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// TransformNames returns the registered transform names, sorted.
func (c *Catalog) TransformNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.transforms))
	for name := range c.transforms {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// TypeName returns the name t was first registered under, or t.String().
func (c *Catalog) TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if name, ok := c.names[t]; ok {
		return name
	}

	return t.String()
}

func (c *Catalog) mustAddAlias(alias, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.types[name]
	if !ok {
		panic(fmt.Sprintf("alias %q: %q not registered", alias, name))
	}

	c.types[alias] = e
}

func mustRegisterType[T any](c *Catalog, name string) {
	if err := RegisterType[T](c, name); err != nil {
		panic(err)
	}
}

func mustRegisterTransform[T, U any](c *Catalog, name string, fn func(T) U) {
	if err := RegisterTransform(c, name, fn); err != nil {
		panic(err)
	}
}
