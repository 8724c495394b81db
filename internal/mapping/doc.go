// Package mapping defines the declarative notification → event model and
// its YAML representation.
//
// An EventMapping pairs an EventIdentity (event name, numeric id and the
// hierarchical notification name) with an ordered list of DataMappings. Each
// DataMapping reads one named value of the notification payload and produces
// one positional value of the event, either unchanged or through a transform.
//
// DataMappings are only usable when built by a constructor (PassThrough,
// Transformed, Transform.Map): the constructor captures the Go types as a
// typed conversion, so the adapter can later read and convert values with
// plain type assertions instead of reflection.
//
// # Mapping files
//
// Mappings can also be declared in YAML and resolved against a Catalog of
// named types and transforms:
//
//	version: "1"
//	name: MyEventSource
//	events:
//	  - notification: Microsoft.AspNet.Hosting.BeginRequest
//	    event: BeginRequest
//	    id: 101
//	    data:
//	      - source: path
//	        type: string
//	        transform: len
//	      - {elapsed: time.Duration}   # shorthand: source: type
//
// Rules:
//   - id is required for every event.
//   - Without a transform the destination type equals the source type
//     (destination may be omitted; if given it must match).
//   - With a transform, type must equal the transform's input type and the
//     destination is the transform's output type.
//   - A source may be listed several times; all occurrences must agree on type.
package mapping
