package gen

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// UnitNamePrefix starts every allocated adapter unit name.
const UnitNamePrefix = "Generated_EventSource_"

var (
	// ErrNilAdapter is returned when a nil adapter is registered.
	ErrNilAdapter = errors.New("eventsource(gen): nil adapter")
	// ErrEmptyName is returned when an adapter without unit name is registered.
	ErrEmptyName = errors.New("eventsource(gen): empty unit name")
	// ErrConflictingRegistration indicates a different adapter already holds the unit name.
	ErrConflictingRegistration = errors.New("eventsource(gen): conflicting adapter registration")
)

// Registry allocates unique adapter unit names and keeps the adapters
// synthesized under them.
type Registry struct {
	counter atomic.Uint64
	// mu guards write-side consistency and count
	mu sync.Mutex
	// m maps unit name to *Adapter.
	m     sync.Map
	count int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Allocate returns a unit name for base that this registry never returned before.
func (r *Registry) Allocate(base string) string {
	n := r.counter.Add(1)

	var b strings.Builder
	b.Grow(len(UnitNamePrefix) + len(base) + 4)
	b.WriteString(UnitNamePrefix)
	b.WriteString(base)
	b.WriteByte('_')
	b.WriteString(strconv.FormatUint(n, 10))

	return b.String()
}

// Register stores a under its unit name. Registering the same adapter twice is a no-op.
func (r *Registry) Register(a *Adapter) error {
	if a == nil {
		return ErrNilAdapter
	}

	if a.Name() == "" {
		return ErrEmptyName
	}

	if old, ok := r.m.Load(a.Name()); ok {
		if old.(*Adapter) == a {
			return nil
		}

		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(a.Name()); ok {
		if old.(*Adapter) == a {
			return nil
		}

		return ErrConflictingRegistration
	}

	r.m.Store(a.Name(), a)
	r.count++

	return nil
}

// Lookup returns the adapter registered under unit name.
func (r *Registry) Lookup(name string) (*Adapter, bool) {
	if v, ok := r.m.Load(name); ok {
		return v.(*Adapter), true
	}

	return nil, false
}

// Entries returns the registered adapters sorted by unit name.
func (r *Registry) Entries() []*Adapter {
	entries := make([]*Adapter, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(*Adapter))
		return true
	})

	slices.SortFunc(entries, func(a, b *Adapter) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return entries
}

// Count returns the number of registered adapters.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}
