package mapping

import "fmt"

// Identity returns the event identity declared by ev.
func (ev *EventDef) Identity() EventIdentity {
	id := EventIdentity{
		Name:             ev.Event,
		NotificationName: ev.Notification,
	}

	if ev.ID != nil {
		id.ID = ID(*ev.ID)
	}

	return id
}

// Build validates mf and turns it into event mappings, in file order.
func Build(mf *MappingFile, catalog *Catalog) ([]EventMapping, error) {
	diags := Validate(mf, catalog)
	if err := diags.Error(); err != nil {
		return nil, err
	}

	mappings := make([]EventMapping, 0, len(mf.Events))

	for i := range mf.Events {
		ev := &mf.Events[i]
		em := EventMapping{Identity: ev.Identity()}

		for _, dd := range ev.Data {
			dm, err := catalog.Map(dd.Source, dd.Type, dd.Transform)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ev.Notification, err)
			}

			em.Add(dm)
		}

		mappings = append(mappings, em)
	}

	return mappings, nil
}
