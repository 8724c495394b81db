package plan

import (
	"errors"
	"fmt"

	"eventsource-adapter/internal/diagnostic"
	"eventsource-adapter/internal/mapping"
	"eventsource-adapter/sink"
)

// ErrResolveFailed is returned when resolution produced error diagnostics.
var ErrResolveFailed = errors.New("eventsource(plan): resolution failed")

// Config holds configuration for the resolution process.
type Config struct {
	// ConflictPolicy handles a source name declared with two types.
	ConflictPolicy ConflictPolicy
	// FailOnFallback turns every variable-arity sink call into an error.
	FailOnFallback bool
	// Overloads are the typed sink entry points, in preference order.
	// Nil means sink.Overloads().
	Overloads []sink.Overload
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		ConflictPolicy: ConflictError,
		FailOnFallback: false,
		Overloads:      sink.Overloads(),
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	name     string
	mappings []mapping.EventMapping
	config   Config
}

// NewResolver creates a new Resolver for the event source called name.
func NewResolver(name string, mappings []mapping.EventMapping, config Config) *Resolver {
	if config.Overloads == nil {
		config.Overloads = sink.Overloads()
	}

	return &Resolver{
		name:     name,
		mappings: mappings,
		config:   config,
	}
}

// Resolve runs the full resolution pipeline. The plan is returned even on
// error so callers can report its diagnostics.
func (r *Resolver) Resolve() (*Plan, error) {
	plan := &Plan{
		Name:   r.name,
		Events: make([]EventPlan, 0, len(r.mappings)),
	}

	if r.name == "" {
		plan.Diagnostics.AddError("missing_name", "event source name is required", "", "")
	}

	for i := range r.mappings {
		ep, ok := r.resolveEvent(r.mappings[i].Clone(), &plan.Diagnostics)
		if ok {
			plan.Events = append(plan.Events, ep)
		}
	}

	checkDuplicates(plan)

	if err := plan.Diagnostics.Error(); err != nil {
		return plan, fmt.Errorf("%w: %w", ErrResolveFailed, err)
	}

	return plan, nil
}

func (r *Resolver) resolveEvent(em mapping.EventMapping, diags *diagnostic.Diagnostics) (EventPlan, bool) {
	label := em.Identity.String()
	ok := true

	if em.Identity.NotificationName == "" {
		diags.AddError("missing_notification", "notification name is required", label, "")
		ok = false
	}

	if !em.Identity.HasID() {
		diags.AddError("missing_event_id", "event id is required", label, "")
		ok = false
	}

	for i := range em.DataMappings {
		if err := em.DataMappings[i].Validate(); err != nil {
			diags.AddError("invalid_data_mapping", err.Error(), label, em.DataMappings[i].SourceName)
			ok = false
		}
	}

	if !ok {
		return EventPlan{}, false
	}

	params, err := ResolveParameters(&em, r.config.ConflictPolicy)
	if err != nil {
		diags.AddError("parameter_conflict", err.Error(), label, "")
		return EventPlan{}, false
	}

	for _, c := range params.Conflicts() {
		diags.AddWarning("parameter_overwritten",
			fmt.Sprintf("%v replaced by %v", c.Previous, c.Declared), label, c.Name)
	}

	slots := make([]int, len(em.DataMappings))
	for i, dm := range em.DataMappings {
		slots[i], _ = params.IndexOf(dm.SourceName)
	}

	call := ResolveSinkCall(em.DestinationTypes(), r.config.Overloads)
	if call.Kind == CallFallback {
		msg := fmt.Sprintf("no typed overload for %v, using %s", call.Types, sink.FallbackName)
		if r.config.FailOnFallback {
			diags.AddError("sink_fallback", msg, label, "")
			return EventPlan{}, false
		}

		diags.AddInfo("sink_fallback", msg, label, "")
	}

	return EventPlan{
		Mapping:    em,
		Parameters: params,
		Slots:      slots,
		Call:       call,
	}, true
}

// checkDuplicates reports event ids and generated method names used twice.
func checkDuplicates(plan *Plan) {
	ids := map[int]string{}
	events := map[string]string{}
	notifications := map[string]string{}

	for i := range plan.Events {
		ep := &plan.Events[i]
		label := ep.Mapping.Identity.String()

		if prev, ok := ids[ep.ID()]; ok {
			plan.Diagnostics.AddError("duplicate_event_id",
				fmt.Sprintf("event id %d already used by %s", ep.ID(), prev), label, "")
		} else {
			ids[ep.ID()] = label
		}

		if prev, ok := events[ep.EventMethodName()]; ok {
			plan.Diagnostics.AddError("duplicate_event_name",
				fmt.Sprintf("event method %s already generated for %s", ep.EventMethodName(), prev), label, "")
		} else {
			events[ep.EventMethodName()] = label
		}

		if prev, ok := notifications[ep.NotificationMethodName()]; ok {
			plan.Diagnostics.AddError("duplicate_notification_method",
				fmt.Sprintf("notification method %s already generated for %s", ep.NotificationMethodName(), prev), label, "")
		} else {
			notifications[ep.NotificationMethodName()] = label
		}
	}
}
