package gen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"eventsource-adapter/internal/mapping"
	"eventsource-adapter/internal/plan"
	"eventsource-adapter/sink"
)

var (
	// ErrNilPlan is returned when Synthesize is called without a plan.
	ErrNilPlan = errors.New("eventsource(gen): plan is nil")
	// ErrInvalidPlan is returned for plans carrying error diagnostics.
	ErrInvalidPlan = errors.New("eventsource(gen): plan has errors")
)

// Synthesizer turns resolved plans into adapters.
type Synthesizer struct {
	registry *Registry
	logger   *zap.Logger
}

// NewSynthesizer creates a Synthesizer allocating unit names from registry.
// A nil registry gets a private one; a nil logger discards output.
func NewSynthesizer(registry *Registry, logger *zap.Logger) *Synthesizer {
	if registry == nil {
		registry = NewRegistry()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synthesizer{
		registry: registry,
		logger:   logger.Named("gen"),
	}
}

// Registry returns the registry the synthesizer allocates from.
func (s *Synthesizer) Registry() *Registry {
	return s.registry
}

// Synthesize builds and registers the adapter for p.
func (s *Synthesizer) Synthesize(p *plan.Plan) (*Adapter, error) {
	if p == nil {
		return nil, ErrNilPlan
	}

	if err := p.Diagnostics.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	for i := range p.Events {
		if !p.Events[i].Mapping.Identity.HasID() {
			return nil, fmt.Errorf("%w: %s", mapping.ErrMissingEventID, p.Events[i].Mapping.Identity)
		}
	}

	a := &Adapter{
		name:          s.registry.Allocate(p.Name),
		plan:          p,
		source:        sink.NewEventSource(p.Name),
		events:        make([]*Event, 0, len(p.Events)),
		notifications: make([]*Notification, 0, len(p.Events)),
	}

	logger := s.logger.With(zap.String("unit", a.name))

	for i := range p.Events {
		ev, n, err := synthesizeEvent(a.source, &p.Events[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Events[i].EventMethodName(), err)
		}

		logEvent(logger, &p.Events[i])

		a.events = append(a.events, ev)
		a.notifications = append(a.notifications, n)
	}

	if err := s.registry.Register(a); err != nil {
		return nil, err
	}

	logger.Info("Synthesized adapter",
		zap.String("source", a.source.Name()),
		zap.Stringer("guid", a.source.GUID()),
		zap.Int("events", len(a.events)))

	return a, nil
}

func synthesizeEvent(src *sink.EventSource, ep *plan.EventPlan) (*Event, *Notification, error) {
	dms := ep.Mapping.DataMappings
	id := ep.ID()

	ev := &Event{
		name:    ep.EventMethodName(),
		id:      id,
		types:   ep.Mapping.DestinationTypes(),
		kind:    ep.Call.Kind,
		entry:   ep.Call.Name(),
		sig:     ep.Call.Signature(),
		accepts: make([]func(any) bool, len(dms)),
	}

	for i := range dms {
		ev.accepts[i] = dms[i].AcceptsDestination
	}

	var invoke func(args []any)

	switch ep.Call.Kind {
	case plan.CallExact:
		o := ep.Call.Overload
		ev.fn = o.Method(src, id)
		ev.write = func(values []any) { o.Call(src, id, values) }

		readers := make([]any, len(dms))
		for i := range dms {
			readers[i] = dms[i].Reader(ep.Slots[i])
		}

		composed, err := o.Compose(src, id, readers)
		if err != nil {
			return nil, nil, err
		}

		invoke = composed
	default:
		ev.fn = sink.FallbackMethod(src, id)
		ev.write = func(values []any) { src.WriteEventArgs(id, values...) }

		readers := make([]func([]any) any, len(dms))
		for i := range dms {
			readers[i] = dms[i].BoxedReader(ep.Slots[i])
		}

		invoke = sink.ComposeFallback(src, id, readers)
	}

	n := &Notification{
		methodName:       ep.NotificationMethodName(),
		notificationName: ep.Mapping.Identity.NotificationName,
		names:            ep.Parameters.Names(),
		types:            ep.Parameters.Types(),
		accepts:          make([]func(any) bool, ep.Parameters.Len()),
		invoke:           invoke,
		event:            ev,
	}

	for j := range n.accepts {
		n.accepts[j] = parameterAcceptor(ep, j)
	}

	return ev, n, nil
}

// parameterAcceptor returns the source check of the last data mapping that
// reads parameter j with the parameter's resolved type.
func parameterAcceptor(ep *plan.EventPlan, j int) func(any) bool {
	param := ep.Parameters.At(j)
	dms := ep.Mapping.DataMappings

	for i := len(dms) - 1; i >= 0; i-- {
		if ep.Slots[i] == j && dms[i].SourceType == param.Type {
			return dms[i].AcceptsSource
		}
	}

	return func(any) bool { return false }
}

func logEvent(logger *zap.Logger, ep *plan.EventPlan) {
	fields := []zap.Field{
		zap.String("event", ep.EventMethodName()),
		zap.Int("id", ep.ID()),
		zap.String("notification", ep.Mapping.Identity.NotificationName),
		zap.Strings("parameters", ep.Parameters.Names()),
		zap.Stringer("call", ep.Call.Kind),
		zap.String("entry_point", ep.Call.Signature()),
	}

	if ep.Call.Kind == plan.CallFallback {
		logger.Warn("No typed sink overload, boxing values", fields...)
	} else {
		logger.Debug("Resolved sink call", fields...)
	}

	for _, c := range ep.Parameters.Conflicts() {
		logger.Warn("Parameter type overwritten",
			zap.String("event", ep.EventMethodName()),
			zap.String("parameter", c.Name),
			zap.Stringer("previous", c.Previous),
			zap.Stringer("declared", c.Declared))
	}
}
