package mapping

import (
	"fmt"
	"reflect"

	"eventsource-adapter/internal/diagnostic"
	"eventsource-adapter/internal/match"
)

// Validate validates a mapping file against the given catalog.
// It checks names, ids and types only; parameter positions and sink calls
// are resolved later.
func Validate(mf *MappingFile, catalog *Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if catalog == nil {
		res.AddError("catalog_is_nil", "catalog is nil", "", "")
		return res
	}

	if mf.Name == "" {
		res.AddError("missing_name", "event source name is required", "", "")
	}

	seenIDs := map[int]string{}
	seenEvents := map[string]struct{}{}
	seenNotifications := map[string]string{}

	for i := range mf.Events {
		ev := &mf.Events[i]
		label := eventLabel(ev, i)

		if ev.Notification == "" {
			res.AddError("missing_notification", "notification name is required", label, "")
		}

		if ev.ID == nil {
			res.AddError("missing_event_id", "event id is required", label, "")
		} else if prev, ok := seenIDs[*ev.ID]; ok {
			res.AddError("duplicate_event_id",
				fmt.Sprintf("event id %d already used by %s", *ev.ID, prev), label, "")
		} else {
			seenIDs[*ev.ID] = label
		}

		identity := ev.Identity()
		if name := identity.EventMethodName(); name != "" {
			if _, ok := seenEvents[name]; ok {
				res.AddError("duplicate_event_name", fmt.Sprintf("event method %s is declared twice", name), label, "")
			}

			seenEvents[name] = struct{}{}
		}

		if name := identity.NotificationMethodName(); name != "" {
			if prev, ok := seenNotifications[name]; ok {
				res.AddError("duplicate_notification_method",
					fmt.Sprintf("notification method %s already generated for %s", name, prev), label, "")
			}

			seenNotifications[name] = ev.Notification
		}

		validateData(res, catalog, label, ev.Data)
	}

	return res
}

func validateData(res *diagnostic.Diagnostics, catalog *Catalog, label string, data []DataDef) {
	sourceTypes := map[string]reflect.Type{}

	for i := range data {
		dd := &data[i]
		if dd.Source == "" {
			res.AddError("missing_source", fmt.Sprintf("data entry %d has no source", i), label, "")
			continue
		}

		in, out, ok := validateDataTypes(res, catalog, label, dd)
		if !ok {
			continue
		}

		if dd.Destination != "" {
			dst, found := lookupType(res, catalog, label, dd.Source, dd.Destination)
			if found && dst != out {
				res.AddError("destination_mismatch",
					fmt.Sprintf("destination %s does not match produced type %s", dd.Destination, catalog.TypeName(out)),
					label, dd.Source)
			}
		}

		if prev, seen := sourceTypes[dd.Source]; seen && prev != in {
			res.AddWarning("parameter_type_conflict",
				fmt.Sprintf("source %q is declared as %s and %s", dd.Source, catalog.TypeName(prev), catalog.TypeName(in)),
				label, dd.Source)
		} else if !seen {
			sourceTypes[dd.Source] = in
		}
	}
}

// validateDataTypes returns the source and destination types of dd.
func validateDataTypes(
	res *diagnostic.Diagnostics,
	catalog *Catalog,
	label string,
	dd *DataDef,
) (reflect.Type, reflect.Type, bool) {
	if dd.Transform == "" {
		if dd.Type == "" {
			res.AddError("missing_type", fmt.Sprintf("source %q has no type", dd.Source), label, dd.Source)
			return nil, nil, false
		}

		t, ok := lookupType(res, catalog, label, dd.Source, dd.Type)

		return t, t, ok
	}

	tr, ok := catalog.Transform(dd.Transform)
	if !ok {
		res.AddError("unknown_transform", fmt.Sprintf("transform %q is not registered", dd.Transform),
			label, dd.Source, suggest(dd.Transform, catalog.TransformNames())...)

		return nil, nil, false
	}

	if dd.Type == "" {
		return tr.In, tr.Out, true
	}

	in, ok := lookupType(res, catalog, label, dd.Source, dd.Type)
	if !ok {
		return nil, nil, false
	}

	if in != tr.In {
		res.AddError("transform_input_mismatch",
			fmt.Sprintf("transform %s takes %s, source is %s", tr.Name, catalog.TypeName(tr.In), dd.Type),
			label, dd.Source)

		return nil, nil, false
	}

	return in, tr.Out, true
}

func lookupType(res *diagnostic.Diagnostics, catalog *Catalog, label, source, name string) (reflect.Type, bool) {
	t, ok := catalog.Type(name)
	if !ok {
		res.AddError("unknown_type", fmt.Sprintf("type %q is not registered", name),
			label, source, suggest(name, catalog.TypeNames())...)
	}

	return t, ok
}

func suggest(name string, candidates []string) []string {
	return match.Suggest(name, candidates, match.DefaultMinScore, match.DefaultMaxSuggestions)
}

func eventLabel(ev *EventDef, index int) string {
	if name := ev.Identity().EventName(); name != "" {
		return name
	}

	return fmt.Sprintf("events[%d]", index)
}
