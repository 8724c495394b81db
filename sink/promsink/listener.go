// Package promsink counts event source writes in Prometheus.
package promsink

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"eventsource-adapter/sink"
)

// Listener is a sink.Listener incrementing
// eventsource_events_written_total{source, event_id}.
type Listener struct {
	written *prometheus.CounterVec
}

// New registers the counter on reg and returns the listener. A nil reg means
// prometheus.DefaultRegisterer. A counter already registered by another
// Listener is shared.
func New(reg prometheus.Registerer) (*Listener, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	written := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventsource_events_written_total",
			Help: "Total events written by event sources",
		},
		[]string{"source", "event_id"},
	)

	if err := reg.Register(written); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}

		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}

		written = existing
	}

	return &Listener{written: written}, nil
}

// Collector returns the underlying counter.
func (l *Listener) Collector() *prometheus.CounterVec {
	return l.written
}

// OnEventWritten increments the counter of e's source and id.
func (l *Listener) OnEventWritten(e sink.EventWritten) {
	l.written.WithLabelValues(e.SourceName, strconv.Itoa(e.EventID)).Inc()
}
