package mapping

import (
	"errors"
	"fmt"
	"reflect"

	"eventsource-adapter/internal/common"
)

const (
	// EventMethodPrefix marks sink-facing methods.
	EventMethodPrefix = "Event_"
	// NotificationMethodPrefix marks notification-facing methods.
	NotificationMethodPrefix = "Notification_"
)

var (
	// ErrMissingEventID is returned when an event has no numeric id.
	ErrMissingEventID = errors.New("eventsource(mapping): event id is required")
	// ErrEmptyNotificationName is returned when an event has no notification name.
	ErrEmptyNotificationName = errors.New("eventsource(mapping): notification name is empty")
	// ErrEmptySourceName is returned when a data mapping has no source name.
	ErrEmptySourceName = errors.New("eventsource(mapping): source name is empty")
	// ErrTypeMismatch is returned when a data mapping without transform
	// declares different source and destination types.
	ErrTypeMismatch = errors.New("eventsource(mapping): source and destination types differ without a transform")
	// ErrUnboundDataMapping is returned for data mappings not built by a constructor.
	ErrUnboundDataMapping = errors.New("eventsource(mapping): data mapping has no conversion")
)

// EventIdentity identifies one event of an event source and the notification
// that raises it.
type EventIdentity struct {
	// Name is the event name. Defaults to NotificationName when empty.
	Name string
	// ID is the numeric event id. Required before synthesis.
	ID *int
	// NotificationName is the (possibly dotted) name notifications are published under.
	NotificationName string
}

// EventName returns Name, or NotificationName when Name is empty.
func (e EventIdentity) EventName() string {
	if e.Name == "" {
		return e.NotificationName
	}

	return e.Name
}

// EventMethodName returns the name of the sink-facing method, e.g. "Event_TestEvent".
func (e EventIdentity) EventMethodName() string {
	name := e.EventName()
	if name == "" {
		return ""
	}

	return EventMethodPrefix + name
}

// NotificationMethodName returns the name of the notification-facing method,
// built from the last segment of the notification name:
// "Microsoft.Framework.TestEvents.NumberOne" -> "Notification_NumberOne".
func (e EventIdentity) NotificationMethodName() string {
	if e.NotificationName == "" {
		return ""
	}

	return NotificationMethodPrefix + common.LastSegment(e.NotificationName)
}

// HasID reports whether a numeric id is present.
func (e EventIdentity) HasID() bool {
	return e.ID != nil
}

// EventID returns the numeric id, or 0 and false if absent.
func (e EventIdentity) EventID() (int, bool) {
	if e.ID == nil {
		return 0, false
	}

	return *e.ID, true
}

// String returns a label for diagnostics.
func (e EventIdentity) String() string {
	if id, ok := e.EventID(); ok {
		return fmt.Sprintf("%s#%d", e.EventName(), id)
	}

	return e.EventName()
}

// ID returns a pointer to id, for building identities inline.
func ID(id int) *int {
	return &id
}

// EventMapping describes one notification → event translation.
type EventMapping struct {
	Identity     EventIdentity
	DataMappings []DataMapping
}

// NewEventMapping creates a mapping for notificationName raising event id.
// The event name equals the notification name.
func NewEventMapping(notificationName string, id int) *EventMapping {
	return &EventMapping{
		Identity: EventIdentity{
			Name:             notificationName,
			ID:               ID(id),
			NotificationName: notificationName,
		},
	}
}

// Add appends data mappings in declaration order.
func (m *EventMapping) Add(dms ...DataMapping) *EventMapping {
	m.DataMappings = append(m.DataMappings, dms...)
	return m
}

// Clone returns a copy whose DataMappings slice is not shared with m.
func (m EventMapping) Clone() EventMapping {
	m.DataMappings = append([]DataMapping(nil), m.DataMappings...)
	if m.Identity.ID != nil {
		m.Identity.ID = ID(*m.Identity.ID)
	}

	return m
}

// Validate reports every configuration error of the mapping.
func (m *EventMapping) Validate() error {
	var errs []error

	if m.Identity.NotificationName == "" {
		errs = append(errs, ErrEmptyNotificationName)
	}

	if !m.Identity.HasID() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEventID, m.Identity.EventName()))
	}

	for i := range m.DataMappings {
		if err := m.DataMappings[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: data mapping %d: %w", m.Identity.EventName(), i, err))
		}
	}

	return errors.Join(errs...)
}

// DestinationTypes returns one destination type per data mapping, in order.
func (m *EventMapping) DestinationTypes() []reflect.Type {
	types := make([]reflect.Type, len(m.DataMappings))
	for i := range m.DataMappings {
		types[i] = m.DataMappings[i].DestinationType
	}

	return types
}
