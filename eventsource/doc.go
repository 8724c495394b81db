// Package eventsource builds adapters that turn name/value notifications
// into strongly-typed event source writes.
//
// A Builder collects event mappings: for every notification name, the numeric
// event id and the values the event carries. CreateListener resolves them and
// synthesizes an adapter owning one sink.EventSource:
//
//	b := eventsource.NewBuilder("MyEventSource")
//	mb := b.MapEvent("Microsoft.AspNet.Hosting.BeginRequest", 1)
//	eventsource.MapData[string](mb, "path")
//	eventsource.MapDataWith(mb, "path", func(p string) int { return len(p) })
//
//	l, err := b.CreateListener()
//	if err != nil {
//		return err
//	}
//
//	bus := notify.New()
//	_ = bus.EnlistTarget(l)
//	l.EventSource().Enable(listener)
//	_ = bus.Notify("BeginRequest", notify.Values{"path": "/api"})
//
// Several data mappings may read the same source value; the notification
// method still takes it once. Events whose value types match one of the
// typed sink overloads are written without boxing, the others go through
// sink.EventSource.WriteEventArgs.
package eventsource
