package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerstack/internal/shared"
	"layerstack/internal/types"
)

// Inspect summarises the layer tree of a saved project. Datasources are
// shown with credentials redacted.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ProjectPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is required")
	}
	store, err := s.Projects.Open(path)
	if err != nil {
		return InspectResult{}, err
	}
	snapshot := store.Snapshot()

	datasources := make(map[string]string, len(snapshot.Layers))
	for _, layer := range snapshot.Layers {
		datasources[layer.ID] = layer.Datasource
	}

	result := InspectResult{
		Title:      snapshot.Title,
		CRS:        snapshot.CRS,
		Version:    snapshot.Version,
		LayerCount: len(snapshot.Layers),
		Entries:    []InspectEntry{},
	}
	for _, child := range snapshot.Root.Children {
		child.Walk(func(node *types.TreeNode, depth int) {
			entry := InspectEntry{
				Depth:   depth,
				Kind:    node.Kind,
				Name:    node.Name,
				LayerID: node.LayerID,
				Visible: node.Checked,
			}
			if node.Kind == types.NodeKindLayer {
				entry.Datasource = shared.DisplayDatasource(datasources[node.LayerID])
			}
			result.Entries = append(result.Entries, entry)
		})
	}
	return result, nil
}
