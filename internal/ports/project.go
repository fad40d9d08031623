package ports

import "layerstack/internal/types"

// ProjectStorePort is the destination project: it owns the layer tree and
// knows how to serialise itself.
type ProjectStorePort interface {
	// Insert adds the definition's nodes and layers to the tree and returns
	// the layer ids as stored. A rejected definition leaves the tree unchanged.
	Insert(def types.LayerDefinition, at types.InsertPosition) ([]string, error)
	SetCRS(authID string) error
	SetTitle(title string)
	Save(path string) error
	Snapshot() types.ProjectSnapshot

	// RewriteDatasources applies fn to every layer datasource, including the
	// source attribute of layer tree nodes, and returns the number of values
	// that changed.
	RewriteDatasources(fn func(string) string) int
}

// ProjectOpenerPort acquires a project store, either fresh or from an
// existing document.
type ProjectOpenerPort interface {
	Create() ProjectStorePort
	Open(path string) (ProjectStorePort, error)
}

// ProjectFinderPort locates saved project documents below a directory.
type ProjectFinderPort interface {
	FindProjects(root string) ([]string, error)
}
