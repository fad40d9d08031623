package types

// LayerDefinitionFile is one discovered definition file. Index is nil when
// the file name carries no numeric index.
type LayerDefinitionFile struct {
	Path  string `yaml:"path"`
	Name  string `yaml:"name"`
	Index *int   `yaml:"index,omitempty"`
}

func (f LayerDefinitionFile) HasIndex() bool {
	return f.Index != nil
}

// MapLayer is a layer body carried by a definition file. XML holds the
// verbatim <maplayer> element; only its <id> is ever rewritten.
type MapLayer struct {
	ID         string
	Name       string
	Type       string
	Provider   string
	Datasource string
	XML        []byte
}

// LayerDefinition is everything a single definition file contributes to a
// project: the tree nodes below its root group and the layers they reference.
type LayerDefinition struct {
	File   LayerDefinitionFile
	Nodes  []*TreeNode
	Layers []MapLayer
}

// InsertionRequest is the loader's output for one file. Definition is nil
// when LoadError is set.
type InsertionRequest struct {
	Sequence   int
	File       LayerDefinitionFile
	Definition *LayerDefinition
	LoadError  string
}

// IndexBand groups indexed files for previews, e.g. "Base layers" 1-10.
type IndexBand struct {
	Name string `mapstructure:"name" yaml:"name"`
	Min  int    `mapstructure:"min" yaml:"min"`
	Max  int    `mapstructure:"max" yaml:"max"`
}

func (b IndexBand) Contains(index int) bool {
	return index >= b.Min && index <= b.Max
}
