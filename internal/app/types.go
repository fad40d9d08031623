package app

import "layerstack/internal/types"

// OrderOptions configures discovery and ordering of definition files.
type OrderOptions struct {
	Direction types.SortDirection
	Prefix    string
	Pattern   string
	Extension string
}

// AssembleRequest is the complete, immutable configuration of one run.
type AssembleRequest struct {
	SourceDir    string
	Settings     types.ProjectSettings
	Order        OrderOptions
	Destination  types.Destination
	ExistingPath string
	InsertAt     types.InsertPosition
	DryRun       bool
	ReportPath   string
}

type PreviewRequest struct {
	SourceDir string
	Order     OrderOptions
	Bands     []types.IndexBand
}

type PreviewBand struct {
	Name  string
	Files []types.LayerDefinitionFile
}

type PreviewResult struct {
	SourceDir string
	Files     []types.LayerDefinitionFile
	Bands     []PreviewBand
	// Unbanded lists files that fall in no configured band, in load order.
	Unbanded []types.LayerDefinitionFile
}

type InspectRequest struct {
	ProjectPath string
}

type InspectEntry struct {
	Depth      int
	Kind       types.NodeKind
	Name       string
	LayerID    string
	Datasource string
	Visible    bool
}

type InspectResult struct {
	Title      string
	CRS        string
	Version    string
	LayerCount int
	Entries    []InspectEntry
}

type CleanRequest struct {
	ProjectPaths []string
	// Directories are searched recursively for .qgs projects.
	Directories []string
	// Workers bounds how many projects are cleaned at once.
	Workers int
}

type CleanResult struct {
	// Scanned is the number of distinct projects examined.
	Scanned int
	Cleaned []string
	// Datasources counts rewritten values across map layers and tree nodes.
	Datasources int
}
