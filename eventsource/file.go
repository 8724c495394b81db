package eventsource

import (
	"eventsource-adapter/internal/mapping"
)

type (
	// Catalog resolves the type and transform names used in mapping files.
	Catalog = mapping.Catalog
	// MappingFile is a parsed YAML mapping file.
	MappingFile = mapping.MappingFile
)

// DefaultCatalog returns a catalog with the basic types and built-in transforms.
func DefaultCatalog() *Catalog {
	return mapping.DefaultCatalog()
}

// FromFile returns a builder holding the mappings of the YAML file at path.
// A nil catalog means DefaultCatalog().
func FromFile(path string, catalog *Catalog, opts ...Option) (*Builder, error) {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return FromMappingFile(mf, catalog, opts...)
}

// FromMappingFile returns a builder holding the mappings of mf.
func FromMappingFile(mf *MappingFile, catalog *Catalog, opts ...Option) (*Builder, error) {
	if catalog == nil {
		catalog = mapping.DefaultCatalog()
	}

	mappings, err := mapping.Build(mf, catalog)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(mf.Name, opts...)
	for _, em := range mappings {
		b.AddEventMapping(em)
	}

	return b, nil
}
