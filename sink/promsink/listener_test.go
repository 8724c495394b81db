package promsink

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsource-adapter/sink"
)

func TestListener(t *testing.T) {
	reg := prometheus.NewRegistry()

	l, err := New(reg)
	require.NoError(t, err)

	src := sink.NewEventSource("TestName")
	src.Enable(l)

	src.WriteEvent(1)
	src.WriteEventInt(1, 5)
	src.WriteEventArgs(2, true)

	assert.InDelta(t, 2, testutil.ToFloat64(l.Collector().WithLabelValues("TestName", "1")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(l.Collector().WithLabelValues("TestName", "2")), 0)

	expected := `
# HELP eventsource_events_written_total Total events written by event sources
# TYPE eventsource_events_written_total counter
eventsource_events_written_total{event_id="1",source="TestName"} 2
eventsource_events_written_total{event_id="2",source="TestName"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "eventsource_events_written_total"))
}

func TestNew_SharesRegisteredCounter(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := New(reg)
	require.NoError(t, err)

	second, err := New(reg)
	require.NoError(t, err)
	assert.Same(t, first.Collector(), second.Collector())

	second.OnEventWritten(sink.EventWritten{SourceName: "S", EventID: 3})
	assert.InDelta(t, 1, testutil.ToFloat64(first.Collector().WithLabelValues("S", "3")), 0)
}

func TestNew_ConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eventsource_events_written_total",
		Help: "Total events written by event sources",
	}))

	_, err := New(reg)
	require.Error(t, err)
}
