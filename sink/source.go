package sink

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// EventWritten is what listeners observe for every write: the source identity,
// the numeric event id and the positional payload in declaration order.
// Listeners must copy Payload if they retain it.
type EventWritten struct {
	SourceName string
	SourceGUID uuid.UUID
	EventID    int
	Payload    []any
}

// Listener receives events written to the sources it is enabled on.
// Implementations must be safe for concurrent use.
type Listener interface {
	OnEventWritten(e EventWritten)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e EventWritten)

// OnEventWritten calls f(e).
func (f ListenerFunc) OnEventWritten(e EventWritten) {
	f(e)
}

// EventSource is a named tracing sink handle. Writes are lock-free: they load
// an immutable listener snapshot published by Enable/Disable.
type EventSource struct {
	name string
	guid uuid.UUID

	// mu serializes writers of listeners.
	mu        sync.Mutex
	listeners atomic.Pointer[[]Listener]
}

// NewEventSource creates an event source named name with a GUID derived from it.
func NewEventSource(name string) *EventSource {
	return &EventSource{name: name, guid: GUIDFromName(name)}
}

// Name returns the display name of the source.
func (s *EventSource) Name() string {
	return s.name
}

// GUID returns the name-derived identifier of the source.
func (s *EventSource) GUID() uuid.UUID {
	return s.guid
}

// String implements fmt.Stringer.
func (s *EventSource) String() string {
	return fmt.Sprintf("%s(%s)", s.name, s.guid)
}

// IsEnabled reports whether at least one listener observes this source.
func (s *EventSource) IsEnabled() bool {
	return s.active() != nil
}

// Enable attaches l to the source. Enabling the same listener twice is a no-op.
func (s *EventSource) Enable(l Listener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var cur []Listener
	if p := s.listeners.Load(); p != nil {
		cur = *p
	}

	for _, existing := range cur {
		if sameListener(existing, l) {
			return
		}
	}

	next := make([]Listener, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, l)
	s.listeners.Store(&next)
}

// Disable detaches l from the source.
func (s *EventSource) Disable(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.listeners.Load()
	if p == nil {
		return
	}

	next := make([]Listener, 0, len(*p))
	for _, existing := range *p {
		if !sameListener(existing, l) {
			next = append(next, existing)
		}
	}

	if len(next) == 0 {
		s.listeners.Store(nil)
		return
	}

	s.listeners.Store(&next)
}

// sameListener compares listeners without panicking on uncomparable
// dynamic types such as ListenerFunc, which never compare equal.
func sameListener(a, b Listener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	return a == b
}

// active returns the current listener snapshot, or nil when nobody listens.
func (s *EventSource) active() []Listener {
	p := s.listeners.Load()
	if p == nil {
		return nil
	}

	return *p
}

func (s *EventSource) dispatch(ls []Listener, id int, payload []any) {
	e := EventWritten{
		SourceName: s.name,
		SourceGUID: s.guid,
		EventID:    id,
		Payload:    payload,
	}

	for _, l := range ls {
		l.OnEventWritten(e)
	}
}

// WriteEvent writes an event without payload.
func (s *EventSource) WriteEvent(id int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{})
	}
}

func (s *EventSource) WriteEventInt(id int, a int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a})
	}
}

func (s *EventSource) WriteEventIntInt(id int, a, b int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventIntIntInt(id int, a, b, c int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b, c})
	}
}

func (s *EventSource) WriteEventInt64(id int, a int64) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a})
	}
}

func (s *EventSource) WriteEventInt64Int64(id int, a, b int64) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventInt64Int64Int64(id int, a, b, c int64) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b, c})
	}
}

func (s *EventSource) WriteEventString(id int, a string) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a})
	}
}

func (s *EventSource) WriteEventStringString(id int, a, b string) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventStringStringString(id int, a, b, c string) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b, c})
	}
}

func (s *EventSource) WriteEventStringInt(id int, a string, b int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventStringIntInt(id int, a string, b, c int) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b, c})
	}
}

func (s *EventSource) WriteEventStringInt64(id int, a string, b int64) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventInt64String(id int, a int64, b string) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventIntString(id int, a int, b string) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

func (s *EventSource) WriteEventBytes(id int, a []byte) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a})
	}
}

func (s *EventSource) WriteEventInt64Bytes(id int, a int64, b []byte) {
	if ls := s.active(); ls != nil {
		s.dispatch(ls, id, []any{a, b})
	}
}

// WriteEventArgs is the variable-arity entry point. It accepts any payload
// but loses static typing at the call boundary.
func (s *EventSource) WriteEventArgs(id int, args ...any) {
	if ls := s.active(); ls != nil {
		if args == nil {
			args = []any{}
		}

		s.dispatch(ls, id, args)
	}
}
