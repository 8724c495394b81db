package eventsource

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"eventsource-adapter/internal/gen"
	"eventsource-adapter/internal/mapping"
	"eventsource-adapter/internal/plan"
	"eventsource-adapter/notify"
	"eventsource-adapter/sink"
)

// ErrConfiguration wraps mapping errors recorded while building.
var ErrConfiguration = errors.New("eventsource: configuration error")

type (
	// Adapter is a synthesized adapter unit.
	Adapter = gen.Adapter
	// EventMapping describes one notification → event translation.
	EventMapping = mapping.EventMapping
	// EventIdentity identifies an event and its notification.
	EventIdentity = mapping.EventIdentity
	// DataMapping reads one payload value into one event value.
	DataMapping = mapping.DataMapping
)

// Listener is the result of CreateListener. It owns an event source and
// exposes the notification methods to enlist on a notify.Notifier.
type Listener interface {
	Name() string
	EventSource() *sink.EventSource
	NotificationMethods() []notify.Method
}

var _ Listener = (*Adapter)(nil)

// Builder accumulates event mappings for one event source.
// It is not safe for concurrent use.
type Builder struct {
	name     string
	registry *Registry
	logger   *zap.Logger
	config   plan.Config
	mappings []*mapping.EventMapping
	errs     []error
}

// NewBuilder creates a builder for the event source called name.
func NewBuilder(name string, opts ...Option) *Builder {
	b := &Builder{
		name:     name,
		registry: DefaultRegistry,
		logger:   zap.NewNop(),
		config:   plan.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the event source name.
func (b *Builder) Name() string {
	return b.name
}

// MapEvent starts the mapping of the notification called notificationName
// to the event with the given id. The event is named after the notification.
func (b *Builder) MapEvent(notificationName string, id int) *MappingBuilder {
	em := mapping.NewEventMapping(notificationName, id)
	b.mappings = append(b.mappings, em)

	return &MappingBuilder{b: b, m: em}
}

// AddEventMapping adds a prebuilt mapping. The builder keeps its own copy.
func (b *Builder) AddEventMapping(em EventMapping) *MappingBuilder {
	c := em.Clone()
	c.DataMappings = nil
	b.mappings = append(b.mappings, &c)

	mb := &MappingBuilder{b: b, m: &c}
	for _, dm := range em.DataMappings {
		mb.AddDataMapping(dm)
	}

	return mb
}

// Mappings returns copies of the accumulated mappings in call order.
func (b *Builder) Mappings() []EventMapping {
	out := make([]EventMapping, len(b.mappings))
	for i, m := range b.mappings {
		out[i] = m.Clone()
	}

	return out
}

// Err returns the configuration errors recorded so far, in call order.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Plan resolves the accumulated mappings without synthesizing.
func (b *Builder) Plan() (*plan.Plan, error) {
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return plan.NewResolver(b.name, b.Mappings(), b.config).Resolve()
}

// CreateAdapter resolves and synthesizes the adapter, registering it in the
// builder's registry.
func (b *Builder) CreateAdapter() (*Adapter, error) {
	p, err := b.Plan()
	if err != nil {
		return nil, err
	}

	return gen.NewSynthesizer(b.registry, b.logger).Synthesize(p)
}

// CreateListener is CreateAdapter returning the Listener view.
func (b *Builder) CreateListener() (Listener, error) {
	a, err := b.CreateAdapter()
	if err != nil {
		return nil, err
	}

	return a, nil
}

// MappingBuilder adds data mappings to one event mapping.
type MappingBuilder struct {
	b *Builder
	m *mapping.EventMapping
}

// Builder returns the owning builder.
func (mb *MappingBuilder) Builder() *Builder {
	return mb.b
}

// Identity returns the identity of the mapping being built.
func (mb *MappingBuilder) Identity() EventIdentity {
	return mb.m.Identity
}

// AddDataMapping appends dm. A mapping whose types do not line up is not
// added; the error is recorded and returned by Err and CreateListener.
func (mb *MappingBuilder) AddDataMapping(dm DataMapping) *MappingBuilder {
	if err := dm.Validate(); err != nil {
		mb.b.errs = append(mb.b.errs, fmt.Errorf("%s: %w", mb.m.Identity.EventName(), err))
		return mb
	}

	mb.m.Add(dm)

	return mb
}

// MapData passes the payload value sourceName of type T through unchanged.
func MapData[T any](mb *MappingBuilder, sourceName string) *MappingBuilder {
	return mb.AddDataMapping(mapping.PassThrough[T](sourceName))
}

// MapDataWith writes fn applied to the payload value sourceName of type T.
func MapDataWith[T, U any](mb *MappingBuilder, sourceName string, fn func(T) U) *MappingBuilder {
	return mb.AddDataMapping(mapping.Transformed(sourceName, fn))
}

// PassThrough returns a data mapping passing sourceName of type T through.
func PassThrough[T any](sourceName string) DataMapping {
	return mapping.PassThrough[T](sourceName)
}

// Transformed returns a data mapping applying fn to sourceName.
func Transformed[T, U any](sourceName string, fn func(T) U) DataMapping {
	return mapping.Transformed(sourceName, fn)
}
