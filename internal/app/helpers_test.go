package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"layerstack/internal/adapters"
	"layerstack/internal/ports"
	"layerstack/internal/types"
)

func qlrDocument(name string, layerID string) string {
	return fmt.Sprintf(`<!DOCTYPE qgis-layer-definition>
<qlr>
  <layer-tree-group name="" checked="Qt::Checked" expanded="1">
    <layer-tree-group name="%[1]s" checked="Qt::Checked" expanded="1">
      <layer-tree-layer id="%[2]s" name="%[1]s" checked="Qt::Checked" expanded="0" providerKey="postgres" source="dbname='gis' host=db user='reader' password='secret'"/>
    </layer-tree-group>
  </layer-tree-group>
  <maplayers>
    <maplayer type="vector">
      <id>%[2]s</id>
      <datasource>dbname='gis' host=db user='reader' password='secret' table="public"."%[1]s"</datasource>
      <layername>%[1]s</layername>
      <provider encoding="UTF-8">postgres</provider>
    </maplayer>
  </maplayers>
</qlr>
`, name, layerID)
}

func writeDefinition(t *testing.T, dir string, file string, layer string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(qlrDocument(layer, layer+"_id")), 0644))
}

func writeFile(t *testing.T, dir string, file string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}

// testService uses the real adapters with deterministic layer ids.
func testService() Service {
	service := NewService()
	counter := 0
	service.Projects = adapters.ProjectDocumentAdapter{NewID: func(name string) string {
		counter++
		return fmt.Sprintf("%s_regen%d", name, counter)
	}}
	return service
}

func topLevelNames(snapshot types.ProjectSnapshot) []string {
	names := []string{}
	for _, child := range snapshot.Root.Children {
		names = append(names, child.Name)
	}
	return names
}

func outcomeNames(outcomes []types.InsertionOutcome) []string {
	names := []string{}
	for _, outcome := range outcomes {
		names = append(names, outcome.File.Name)
	}
	return names
}

func fileNames(files []types.LayerDefinitionFile) []string {
	names := []string{}
	for _, file := range files {
		names = append(names, file.Name)
	}
	return names
}

func openSnapshot(t *testing.T, path string) types.ProjectSnapshot {
	t.Helper()
	store, err := adapters.NewProjectDocumentAdapter().Open(path)
	require.NoError(t, err)
	return store.Snapshot()
}

// recordingStore is a ProjectStorePort that records calls and can be told to
// fail individual operations.
type recordingStore struct {
	inserted   []string
	crs        string
	title      string
	savedTo    []string
	rejectName string
	saveErr    error
}

func (s *recordingStore) Insert(def types.LayerDefinition, _ types.InsertPosition) ([]string, error) {
	if def.File.Name == s.rejectName {
		return nil, fmt.Errorf("rejected %s", def.File.Name)
	}
	s.inserted = append(s.inserted, def.File.Name)
	var ids []string
	for _, layer := range def.Layers {
		ids = append(ids, layer.ID)
	}
	return ids, nil
}

func (s *recordingStore) SetCRS(authID string) error {
	s.crs = authID
	return nil
}

func (s *recordingStore) SetTitle(title string) {
	s.title = title
}

func (s *recordingStore) Save(path string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedTo = append(s.savedTo, path)
	return nil
}

func (s *recordingStore) Snapshot() types.ProjectSnapshot {
	return types.ProjectSnapshot{Root: types.NewRootNode()}
}

func (s *recordingStore) RewriteDatasources(func(string) string) int {
	return 0
}

type recordingOpener struct {
	store   *recordingStore
	openErr error
	creates int
	opens   int
}

func (o *recordingOpener) Create() ports.ProjectStorePort {
	o.creates++
	return o.store
}

func (o *recordingOpener) Open(string) (ports.ProjectStorePort, error) {
	o.opens++
	if o.openErr != nil {
		return nil, o.openErr
	}
	return o.store, nil
}
