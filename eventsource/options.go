package eventsource

import (
	"go.uber.org/zap"

	"eventsource-adapter/internal/gen"
	"eventsource-adapter/internal/plan"
)

// Registry allocates adapter unit names and keeps synthesized adapters.
type Registry = gen.Registry

// ConflictPolicy decides what happens when a source name is declared with two types.
type ConflictPolicy = plan.ConflictPolicy

const (
	// ConflictError rejects the event mapping. This is the default.
	ConflictError = plan.ConflictError
	// ConflictLastWins keeps the first position and the last declared type.
	ConflictLastWins = plan.ConflictLastWins
)

// DefaultRegistry is shared by builders created without WithRegistry.
var DefaultRegistry = gen.NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return gen.NewRegistry()
}

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry makes the builder allocate unit names from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(b *Builder) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithLogger sets the logger used during synthesis.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConflictPolicy sets how conflicting source types are handled.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(b *Builder) {
		b.config.ConflictPolicy = p
	}
}

// WithFailOnFallback makes CreateListener fail when an event has no typed sink overload.
func WithFailOnFallback(fail bool) Option {
	return func(b *Builder) {
		b.config.FailOnFallback = fail
	}
}
