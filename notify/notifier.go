package notify

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"eventsource-adapter/internal/common"
)

// Method is one notification-facing entry point of a target.
type Method interface {
	// NotificationName is the declared, possibly dotted, name.
	NotificationName() string
	ParameterNames() []string
	ParameterTypes() []reflect.Type
	// Invoke calls the method with positional arguments; nil stands for the
	// zero value of the parameter type.
	Invoke(args ...any) error
}

// Target exposes notification methods to a Notifier.
type Target interface {
	NotificationMethods() []Method
}

// ErrNilTarget is returned by EnlistTarget for a nil target.
var ErrNilTarget = errors.New("notify: nil target")

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Notifier routes published notifications to enlisted targets.
// Notify and IsEnabled are safe for concurrent use with EnlistTarget.
type Notifier struct {
	logger *zap.Logger

	mu      sync.Mutex
	methods atomic.Pointer[[]Method]
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}

	n.logger = n.logger.Named("notify")

	return n
}

// EnlistTarget adds every notification method of target.
func (n *Notifier) EnlistTarget(target Target) error {
	if target == nil {
		return ErrNilTarget
	}

	added := target.NotificationMethods()

	n.mu.Lock()
	defer n.mu.Unlock()

	var current []Method
	if p := n.methods.Load(); p != nil {
		current = *p
	}

	next := make([]Method, 0, len(current)+len(added))
	next = append(next, current...)
	next = append(next, added...)
	n.methods.Store(&next)

	for _, m := range added {
		n.logger.Debug("Enlisted notification method",
			zap.String("notification", m.NotificationName()),
			zap.Strings("parameters", m.ParameterNames()))
	}

	return nil
}

// IsEnabled reports whether any enlisted method listens to name.
func (n *Notifier) IsEnabled(name string) bool {
	for _, m := range n.snapshot() {
		if Matches(m.NotificationName(), name) {
			return true
		}
	}

	return false
}

// Notify publishes name with payload, which may be nil, a map[string]any,
// Values, or a struct (or pointer to one) whose exported fields are the
// values. Every matching method is invoked even if an earlier one fails;
// the failures are joined.
func (n *Notifier) Notify(name string, payload any) error {
	var (
		lookup lookupFunc
		errs   []error
	)

	for _, m := range n.snapshot() {
		if !Matches(m.NotificationName(), name) {
			continue
		}

		if lookup == nil {
			var err error

			lookup, err = newLookup(payload)
			if err != nil {
				return err
			}
		}

		args, err := bind(m, lookup)
		if err == nil {
			err = m.Invoke(args...)
		}

		if err != nil {
			n.logger.Warn("Notification method failed",
				zap.String("notification", name),
				zap.String("method", m.NotificationName()),
				zap.Error(err))

			errs = append(errs, fmt.Errorf("%s: %w", m.NotificationName(), err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) snapshot() []Method {
	if p := n.methods.Load(); p != nil {
		return *p
	}

	return nil
}

// Matches reports whether a method declared as declared receives
// notifications published as published.
func Matches(declared, published string) bool {
	if declared == published {
		return true
	}

	return published != "" && common.LastSegment(declared) == published
}

// bind collects and coerces the arguments of m from the payload.
func bind(m Method, lookup lookupFunc) ([]any, error) {
	names := m.ParameterNames()
	types := m.ParameterTypes()
	args := make([]any, len(names))

	for i, name := range names {
		v, ok := lookup(name)
		if !ok {
			continue
		}

		c, err := Coerce(v, types[i])
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}

		args[i] = c
	}

	return args, nil
}
