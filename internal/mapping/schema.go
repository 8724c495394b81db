package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MappingFile is the root of a YAML mapping definition.
type MappingFile struct {
	// Version of the mapping schema.
	Version string `yaml:"version,omitempty"`

	// Name is the event source name.
	Name string `yaml:"name"`

	// Events lists the event mappings in method order.
	Events []EventDef `yaml:"events"`
}

// EventDef declares one notification → event mapping.
type EventDef struct {
	// Notification is the (possibly dotted) notification name.
	Notification string `yaml:"notification"`

	// Event is the event name. Defaults to Notification.
	Event string `yaml:"event,omitempty"`

	// ID is the numeric event id.
	ID *int `yaml:"id,omitempty"`

	// Data lists the data mappings in parameter order.
	Data []DataDef `yaml:"data,omitempty"`
}

// DataDef declares one data mapping. YAML formats supported:
//   - Full: {source: path, type: string, transform: len}
//   - Shorthand: {path: string}
type DataDef struct {
	// Source is the payload value name.
	Source string `yaml:"source"`

	// Type is the catalog name of the source type.
	Type string `yaml:"type"`

	// Destination is the catalog name of the event value type. Optional.
	Destination string `yaml:"destination,omitempty"`

	// Transform is the catalog name of the transform. Optional.
	Transform string `yaml:"transform,omitempty"`
}

// dataDefFull has the same fields as DataDef without its YAML methods.
type dataDefFull DataDef

// UnmarshalYAML accepts the full and the shorthand form.
func (d *DataDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: data entry must be a mapping, got %v", node.Line, node.Kind)
	}

	if isShorthand(node) {
		var source, typ string

		if err := node.Content[0].Decode(&source); err != nil {
			return err
		}

		if err := node.Content[1].Decode(&typ); err != nil {
			return err
		}

		*d = DataDef{Source: source, Type: typ}

		return nil
	}

	var full dataDefFull
	if err := node.Decode(&full); err != nil {
		return err
	}

	*d = DataDef(full)

	return nil
}

// MarshalYAML writes plain pass-through entries in shorthand form.
func (d DataDef) MarshalYAML() (any, error) {
	if d.Destination == "" && d.Transform == "" && d.Source != "" && !isDataDefKey(d.Source) {
		return map[string]string{d.Source: d.Type}, nil
	}

	return dataDefFull(d), nil
}

// isShorthand reports whether node is a single {name: type} pair.
func isShorthand(node *yaml.Node) bool {
	if len(node.Content) != 2 {
		return false
	}

	key, value := node.Content[0], node.Content[1]

	return value.Kind == yaml.ScalarNode && !isDataDefKey(key.Value)
}

func isDataDefKey(key string) bool {
	switch key {
	case "source", "type", "destination", "transform":
		return true
	default:
		return false
	}
}
