package ports

import "layerstack/internal/types"

// DefinitionSourcePort enumerates candidate definition files in a source
// directory, in directory-scan order.
type DefinitionSourcePort interface {
	List(dir string) ([]string, error)
}

// DefinitionReaderPort parses a single layer definition file. It must not
// touch any project.
type DefinitionReaderPort interface {
	Read(path string) (types.LayerDefinition, error)
}
