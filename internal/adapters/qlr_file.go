package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

// QLRFileAdapter reads QGIS layer definition (.qlr) files.
type QLRFileAdapter struct{}

func NewQLRFileAdapter() QLRFileAdapter {
	return QLRFileAdapter{}
}

func (a QLRFileAdapter) Read(path string) (types.LayerDefinition, error) {
	name := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return types.LayerDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to read layer definition %s", name)).
			WithCause(err)
	}
	root, err := parseXMLNode(content)
	if err != nil {
		return types.LayerDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse layer definition %s: %v", name, err)).
			WithCause(err)
	}
	return decodeDefinition(name, root)
}

func decodeDefinition(name string, root *xmlNode) (types.LayerDefinition, error) {
	if root.XMLName.Local != "qlr" {
		return types.LayerDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is not a layer definition: root element <%s>", name, root.XMLName.Local))
	}
	treeRoot := root.child("layer-tree-group")
	if treeRoot == nil {
		return types.LayerDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s has no layer-tree-group", name))
	}

	var def types.LayerDefinition
	for _, child := range treeRoot.Children {
		if !isTreeElement(child.XMLName.Local) {
			continue
		}
		node, err := treeFromXML(child)
		if err != nil {
			return types.LayerDefinition{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to decode layer tree of %s: %v", name, err)).
				WithCause(err)
		}
		def.Nodes = append(def.Nodes, node)
	}
	if maplayers := root.child("maplayers"); maplayers != nil {
		for _, child := range maplayers.Children {
			if child.XMLName.Local != "maplayer" {
				continue
			}
			layer, err := mapLayerFromXML(child)
			if err != nil {
				return types.LayerDefinition{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("failed to decode map layer in %s: %v", name, err)).
					WithCause(err)
			}
			def.Layers = append(def.Layers, layer)
		}
	}
	return def, nil
}

var _ ports.DefinitionReaderPort = QLRFileAdapter{}
