package eventsource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"eventsource-adapter/internal/mapping"
	"eventsource-adapter/internal/plan"
	"eventsource-adapter/notify"
	"eventsource-adapter/sink"
)

type fakeHTTPContext struct {
	path, query string
}

func (c *fakeHTTPContext) Path() string  { return c.path }
func (c *fakeHTTPContext) Query() string { return c.query }

type responseCode int

type httpContext interface {
	Path() string
	Query() string
}

// listen creates the listener of b, enlists it on a new notifier and
// records everything its event source writes.
func listen(t *testing.T, b *Builder) (*notify.Notifier, *sink.Recorder, Listener) {
	t.Helper()

	l, err := b.CreateListener()
	require.NoError(t, err)

	n := notify.New(notify.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, n.EnlistTarget(l))

	rec := sink.NewRecorder()
	l.EventSource().Enable(rec)

	return n, rec, l
}

func newBuilder(t *testing.T, name string, opts ...Option) *Builder {
	t.Helper()

	opts = append([]Option{WithRegistry(NewRegistry()), WithLogger(zaptest.NewLogger(t))}, opts...)

	return NewBuilder(name, opts...)
}

func TestMapEvent_EmptyEvent(t *testing.T) {
	b := newBuilder(t, "MapEvent_EmptyEvent")
	b.MapEvent("TestEvent", 101)

	n, rec, _ := listen(t, b)
	require.NoError(t, n.Notify("TestEvent", struct{}{}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, "MapEvent_EmptyEvent", written[0].SourceName)
	assert.Equal(t, 101, written[0].EventID)
	assert.Empty(t, written[0].Payload)
}

func TestMapEvent_PassThroughParameter(t *testing.T) {
	b := newBuilder(t, "MapEvent_PassThroughParameter")
	MapData[int](b.MapEvent("TestEvent", 101), "a")

	n, rec, _ := listen(t, b)
	require.NoError(t, n.Notify("TestEvent", struct{ A int }{A: 5}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, 101, written[0].EventID)
	assert.Equal(t, []any{5}, written[0].Payload)
}

func TestMapEvent_PassThroughParameters(t *testing.T) {
	b := newBuilder(t, "MapEvent_PassThroughParameters")
	mb := b.MapEvent("TestEvent", 101)
	MapData[int](mb, "a")
	MapData[string](mb, "hi")

	n, rec, l := listen(t, b)
	require.NoError(t, n.Notify("TestEvent", notify.Values{"a": 5, "hi": "hello"}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, []any{5, "hello"}, written[0].Payload)

	methods := l.NotificationMethods()
	require.Len(t, methods, 1)
	assert.Equal(t, []string{"a", "hi"}, methods[0].ParameterNames())
}

func TestMapEvent_ConvertedPayloadValues(t *testing.T) {
	b := newBuilder(t, "MapEvent_ConvertedPayloadValues")
	mb := b.MapEvent("TestEvent", 101)
	MapData[[]byte](mb, "body")
	MapData[int](mb, "code")

	n, rec, _ := listen(t, b)
	require.NoError(t, n.Notify("TestEvent", notify.Values{
		"body": json.RawMessage("{}"),
		"code": responseCode(3),
	}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, []any{[]byte("{}"), 3}, written[0].Payload)
}

func TestMapEvent_ParameterWithAdapter(t *testing.T) {
	b := newBuilder(t, "MapEvent_ParameterWithAdapter")
	MapDataWith(b.MapEvent("TestEvent", 101), "hi", func(s string) int { return len(s) })

	n, rec, _ := listen(t, b)
	require.NoError(t, n.Notify("TestEvent", map[string]any{"hi": "hello"}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, []any{5}, written[0].Payload)
}

func TestMapEvent_ProxiedParameterWithAdapters(t *testing.T) {
	b := newBuilder(t, "MapEvent_ProxiedParameterWithAdapters")
	mb := b.MapEvent("TestEvent", 101)
	MapDataWith(mb, "httpContext", func(c httpContext) string { return c.Path() })
	MapDataWith(mb, "httpContext", func(c httpContext) string { return c.Query() })

	n, rec, l := listen(t, b)
	assert.Equal(t, []string{"httpContext"}, l.NotificationMethods()[0].ParameterNames())

	require.NoError(t, n.Notify("TestEvent", notify.Values{
		"httpContext": &fakeHTTPContext{
			path:  "/api/Albums/Search",
			query: "?name=smell%25the%25glove&artist=spinal%25tap",
		},
	}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, []any{"/api/Albums/Search", "?name=smell%25the%25glove&artist=spinal%25tap"}, written[0].Payload)
}

func TestMapEvent_HierarchicalName(t *testing.T) {
	b := newBuilder(t, "Hosting")
	MapData[string](b.MapEvent("Microsoft.AspNet.Hosting.BeginRequest", 1), "path")

	n, rec, l := listen(t, b)

	a, ok := l.(*Adapter)
	require.True(t, ok)

	_, ok = a.Notification("Notification_BeginRequest")
	assert.True(t, ok)

	assert.True(t, n.IsEnabled("BeginRequest"))
	assert.True(t, n.IsEnabled("Microsoft.AspNet.Hosting.BeginRequest"))
	assert.False(t, n.IsEnabled("EndRequest"))

	require.NoError(t, n.Notify("BeginRequest", notify.Values{"path": "/a"}))
	require.NoError(t, n.Notify("Microsoft.AspNet.Hosting.BeginRequest", notify.Values{"path": "/b"}))
	require.NoError(t, n.Notify("EndRequest", notify.Values{"path": "/c"}))

	written := rec.Written()
	require.Len(t, written, 2)
	assert.Equal(t, []any{"/a"}, written[0].Payload)
	assert.Equal(t, []any{"/b"}, written[1].Payload)
}

func TestMapEvent_Fallback(t *testing.T) {
	b := newBuilder(t, "Fallback")
	mb := b.MapEvent("Tick", 9)
	MapData[float64](mb, "elapsed")
	MapData[bool](mb, "ok")

	n, rec, l := listen(t, b)

	a := l.(*Adapter)
	assert.Equal(t, plan.CallFallback, a.Events()[0].Call())

	require.NoError(t, n.Notify("Tick", notify.Values{"elapsed": 1.25, "ok": "true"}))

	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, []any{1.25, true}, written[0].Payload)
}

func TestMapEvent_FailOnFallback(t *testing.T) {
	b := newBuilder(t, "Fallback", WithFailOnFallback(true))
	MapData[bool](b.MapEvent("Tick", 9), "ok")

	_, err := b.CreateListener()
	require.ErrorIs(t, err, plan.ErrResolveFailed)
	assert.Contains(t, err.Error(), "sink_fallback")
}

func TestMapEvent_SameNameTwice(t *testing.T) {
	build := func() (*notify.Notifier, *sink.Recorder, Listener) {
		b := NewBuilder("SameName", WithLogger(zaptest.NewLogger(t)))
		MapData[int](b.MapEvent("TestEvent", 1), "n")

		return listen(t, b)
	}

	n1, rec1, l1 := build()
	n2, rec2, l2 := build()

	assert.NotEqual(t, l1.Name(), l2.Name())
	assert.Equal(t, l1.EventSource().GUID(), l2.EventSource().GUID())

	_, ok := DefaultRegistry.Lookup(l1.Name())
	assert.True(t, ok)

	require.NoError(t, n1.Notify("TestEvent", notify.Values{"n": 1}))
	require.NoError(t, n2.Notify("TestEvent", notify.Values{"n": 2}))

	require.Len(t, rec1.Written(), 1)
	require.Len(t, rec2.Written(), 1)
	assert.Equal(t, []any{1}, rec1.Written()[0].Payload)
	assert.Equal(t, []any{2}, rec2.Written()[0].Payload)
}

func TestBuilder_MissingID(t *testing.T) {
	registry := NewRegistry()
	b := NewBuilder("MissingID", WithRegistry(registry))
	b.MapEvent("Good", 1)
	b.AddEventMapping(EventMapping{Identity: EventIdentity{NotificationName: "NoID"}})

	l, err := b.CreateListener()
	require.Error(t, err)
	assert.Nil(t, l)
	assert.Contains(t, err.Error(), "missing_event_id")
	assert.Equal(t, 0, registry.Count(), "no adapter is produced")
}

func TestBuilder_TypeMismatchRecorded(t *testing.T) {
	b := newBuilder(t, "Mismatch")
	mb := b.MapEvent("TestEvent", 1)
	MapData[int](mb, "a")
	mb.AddDataMapping(DataMapping{SourceName: "b"})
	MapDataWith[string, int](mb, "c", nil)

	err := b.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrTypeMismatch)
	assert.ErrorIs(t, err, mapping.ErrUnboundDataMapping)

	_, err = b.CreateListener()
	require.ErrorIs(t, err, ErrConfiguration)

	require.Len(t, b.Mappings()[0].DataMappings, 1, "invalid data mappings are not added")
}

func TestBuilder_ConflictPolicy(t *testing.T) {
	declare := func(b *Builder) {
		mb := b.MapEvent("TestEvent", 1)
		MapData[int](mb, "x")
		MapDataWith(mb, "x", func(s string) string { return s })
	}

	strict := newBuilder(t, "Conflict")
	declare(strict)

	_, err := strict.CreateListener()
	require.ErrorIs(t, err, plan.ErrResolveFailed)
	assert.Contains(t, err.Error(), "parameter_conflict")

	lenient := newBuilder(t, "Conflict", WithConflictPolicy(ConflictLastWins))
	declare(lenient)

	n, rec, l := listen(t, lenient)
	assert.Equal(t, "string", l.NotificationMethods()[0].ParameterTypes()[0].String())

	require.NoError(t, n.Notify("TestEvent", notify.Values{"x": "v"}))
	assert.Equal(t, []any{0, "v"}, rec.Written()[0].Payload, "the int reader sees a string and yields zero")
}

func TestBuilder_AddEventMapping(t *testing.T) {
	em := mapping.NewEventMapping("A.B", 5).Add(mapping.PassThrough[string]("s"))

	b := newBuilder(t, "Added")
	mb := b.AddEventMapping(*em)
	assert.Equal(t, "A.B", mb.Identity().NotificationName)
	assert.Same(t, b, mb.Builder())

	em.DataMappings[0].SourceName = "changed"
	assert.Equal(t, "s", b.Mappings()[0].DataMappings[0].SourceName)

	a, err := b.CreateAdapter()
	require.NoError(t, err)

	_, ok := a.Notification("Notification_B")
	assert.True(t, ok)
}

func TestFromFile(t *testing.T) {
	const yaml = `
name: FromFile
events:
  - notification: Microsoft.AspNet.Hosting.BeginRequest
    event: BeginRequest
    id: 1
    data:
      - {path: string}
      - source: path
        type: string
        transform: len
  - notification: Microsoft.AspNet.Hosting.EndRequest
    event: EndRequest
    id: 2
    data:
      - source: elapsed
        type: time.Duration
        transform: seconds
`

	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	b, err := FromFile(path, nil, WithRegistry(NewRegistry()))
	require.NoError(t, err)
	assert.Equal(t, "FromFile", b.Name())

	n, rec, l := listen(t, b)
	a := l.(*Adapter)

	_, ok := a.Event("Event_BeginRequest")
	assert.True(t, ok)

	require.NoError(t, n.Notify("BeginRequest", notify.Values{"path": "hello"}))
	require.NoError(t, n.Notify("EndRequest", notify.Values{"elapsed": "1500ms"}))

	written := rec.Written()
	require.Len(t, written, 2)
	assert.Equal(t, []any{"hello", 5}, written[0].Payload)
	assert.Equal(t, 2, written[1].EventID)
	assert.Equal(t, []any{1.5}, written[1].Payload)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestFromMappingFile_Invalid(t *testing.T) {
	mf := &MappingFile{Name: "Bad", Events: []mapping.EventDef{{Notification: "A", ID: mapping.ID(1),
		Data: []mapping.DataDef{{Source: "a", Type: "strng"}}}}}

	_, err := FromMappingFile(mf, DefaultCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean string")
}

func TestListener_ConcurrentNotify(t *testing.T) {
	const goroutines, perGoroutine = 8, 50

	b := newBuilder(t, "Concurrent")
	mb := b.MapEvent("TestEvent", 1)
	MapData[string](mb, "s")
	MapDataWith(mb, "s", func(s string) int { return len(s) })

	n, rec, _ := listen(t, b)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range perGoroutine {
				s := fmt.Sprintf("g%d-%d", g, i)
				assert.NoError(t, n.Notify("TestEvent", notify.Values{"s": s}))
			}
		}()
	}

	wg.Wait()

	written := rec.Written()
	require.Len(t, written, goroutines*perGoroutine)

	for _, w := range written {
		s, ok := w.Payload[0].(string)
		require.True(t, ok)
		assert.Equal(t, len(s), w.Payload[1])
	}
}
