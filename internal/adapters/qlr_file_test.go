package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerstack/internal/types"
)

const sampleDefinition = `<!DOCTYPE qgis-layer-definition>
<qlr>
  <layer-tree-group name="" checked="Qt::Checked" expanded="1">
    <customproperties/>
    <layer-tree-group name="Hydrography" checked="Qt::Unchecked" expanded="0" groupLayer="">
      <customproperties>
        <Option type="Map"/>
      </customproperties>
      <layer-tree-layer id="rivers_5b1c" name="Rivers" checked="Qt::Checked" expanded="1" providerKey="ogr" legend_exp="">
        <customproperties/>
      </layer-tree-layer>
      <layer-tree-layer id="lakes_77aa" name="Lakes" checked="Qt::Unchecked" expanded="0" providerKey="ogr"/>
    </layer-tree-group>
  </layer-tree-group>
  <maplayers>
    <maplayer type="vector" minScale="100000000" hasScaleBasedVisibilityFlag="0">
      <id>rivers_5b1c</id>
      <datasource>./data/rivers.gpkg|layername=rivers</datasource>
      <layername>Rivers</layername>
      <provider encoding="UTF-8">ogr</provider>
      <renderer-v2 type="singleSymbol"/>
    </maplayer>
    <maplayer type="vector">
      <id>lakes_77aa</id>
      <datasource>./data/lakes.gpkg|layername=lakes</datasource>
      <layername>Lakes</layername>
      <provider encoding="UTF-8">ogr</provider>
    </maplayer>
  </maplayers>
</qlr>
`

func TestQLRFileAdapterRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lag04_hydro.qlr")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0644))

	def, err := NewQLRFileAdapter().Read(path)
	require.NoError(t, err)
	require.Len(t, def.Nodes, 1)

	group := def.Nodes[0]
	assert.Equal(t, types.NodeKindGroup, group.Kind)
	assert.Equal(t, "Hydrography", group.Name)
	assert.False(t, group.Checked)
	assert.False(t, group.Expanded)
	assert.Equal(t, []types.Attribute{{Name: "groupLayer", Value: ""}}, group.Attributes)
	assert.Contains(t, string(group.Passthrough), "<customproperties>")

	require.Len(t, group.Children, 2)
	rivers := group.Children[0]
	assert.Equal(t, types.NodeKindLayer, rivers.Kind)
	assert.Equal(t, "rivers_5b1c", rivers.LayerID)
	assert.True(t, rivers.Checked)
	if diff := cmp.Diff([]string{"rivers_5b1c", "lakes_77aa"}, group.LayerIDs()); diff != "" {
		t.Fatalf("unexpected layer ids (-want +got):\n%s", diff)
	}

	require.Len(t, def.Layers, 2)
	layer := def.Layers[0]
	assert.Equal(t, "rivers_5b1c", layer.ID)
	assert.Equal(t, "Rivers", layer.Name)
	assert.Equal(t, "vector", layer.Type)
	assert.Equal(t, "ogr", layer.Provider)
	assert.Equal(t, "./data/rivers.gpkg|layername=rivers", layer.Datasource)
	assert.Contains(t, string(layer.XML), "renderer-v2")
}

func TestQLRFileAdapterReadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		wantCode errbuilder.ErrCode
		wantMsg  string
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "missing.qlr"),
			wantCode: errbuilder.CodeNotFound,
			wantMsg:  "failed to read layer definition missing.qlr",
		},
		{
			name:     "truncated xml",
			path:     write("truncated.qlr", "<qlr><layer-tree-group>"),
			wantCode: errbuilder.CodeInvalidArgument,
			wantMsg:  "failed to parse layer definition truncated.qlr",
		},
		{
			name:     "project instead of definition",
			path:     write("project.qlr", "<qgis><layer-tree-group/></qgis>"),
			wantCode: errbuilder.CodeInvalidArgument,
			wantMsg:  "project.qlr is not a layer definition: root element <qgis>",
		},
		{
			name:     "no tree",
			path:     write("treeless.qlr", "<qlr><maplayers/></qlr>"),
			wantCode: errbuilder.CodeInvalidArgument,
			wantMsg:  "treeless.qlr has no layer-tree-group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQLRFileAdapter().Read(tt.path)
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestQLRFileAdapterEmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.qlr")
	require.NoError(t, os.WriteFile(path, []byte(`<qlr><layer-tree-group name=""/><maplayers/></qlr>`), 0644))

	def, err := NewQLRFileAdapter().Read(path)
	require.NoError(t, err)
	assert.Empty(t, def.Nodes)
	assert.Empty(t, def.Layers)
}
