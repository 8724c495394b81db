// Package notify is a small name-routed notification bus.
//
// Producers publish a notification by name with a bag of named values.
// Targets enlisted on a Notifier expose Methods; every method whose declared
// name matches the published name is invoked with the values it asks for,
// in its own parameter order. A declared name matches when it equals the
// published name or when its last dotted segment does:
//
//	declared "Microsoft.AspNet.Hosting.BeginRequest"
//	matches  "Microsoft.AspNet.Hosting.BeginRequest" and "BeginRequest"
//
// Values missing from the payload are passed as nil. Values of another basic
// kind than the parameter (e.g. "42" for an int) are coerced.
package notify
