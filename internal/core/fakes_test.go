package core

import (
	"fmt"

	"layerstack/internal/types"
)

type fakeReader struct {
	definitions map[string]types.LayerDefinition
	errors      map[string]error
	reads       []string
}

func (r *fakeReader) Read(path string) (types.LayerDefinition, error) {
	r.reads = append(r.reads, path)
	if err, ok := r.errors[path]; ok {
		return types.LayerDefinition{}, err
	}
	def, ok := r.definitions[path]
	if !ok {
		return types.LayerDefinition{}, fmt.Errorf("no definition at %s", path)
	}
	return def, nil
}

type fakeStore struct {
	inserts  []string
	reject   map[string]error
	crs      string
	title    string
	saved    string
	crsErr   error
	saveErr  error
	setCalls int
}

func (s *fakeStore) Insert(def types.LayerDefinition, at types.InsertPosition) ([]string, error) {
	if err, ok := s.reject[def.File.Name]; ok {
		return nil, err
	}
	s.inserts = append(s.inserts, fmt.Sprintf("%s@%s", def.File.Name, at))
	var ids []string
	for _, layer := range def.Layers {
		ids = append(ids, layer.ID)
	}
	return ids, nil
}

func (s *fakeStore) SetCRS(authID string) error {
	s.setCalls++
	if s.crsErr != nil {
		return s.crsErr
	}
	s.crs = authID
	return nil
}

func (s *fakeStore) SetTitle(title string) {
	s.title = title
}

func (s *fakeStore) Save(path string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = path
	return nil
}

func (s *fakeStore) Snapshot() types.ProjectSnapshot {
	return types.ProjectSnapshot{Root: types.NewRootNode()}
}

func (s *fakeStore) RewriteDatasources(func(string) string) int {
	return 0
}

func layerDefinition(name string) types.LayerDefinition {
	id := name + "_id"
	return types.LayerDefinition{
		Nodes:  []*types.TreeNode{{Kind: types.NodeKindLayer, Name: name, LayerID: id, Checked: true}},
		Layers: []types.MapLayer{{ID: id, Name: name}},
	}
}

func definitionFile(name string) types.LayerDefinitionFile {
	return types.LayerDefinitionFile{Path: "src/" + name, Name: name}
}
