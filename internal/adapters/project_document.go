package adapters

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

// DocumentVersion is the QGIS version written into new project documents.
const DocumentVersion = "3.34.0-Prizren"

const projectDoctype = "<!DOCTYPE qgis PUBLIC 'http://mrcc.com/qgis.dtd' 'SYSTEM'>\n"

var nonWordPattern = regexp.MustCompile(`\W`)

// GenerateLayerID builds a layer id the way QGIS does: the layer name
// followed by a random uuid, with every non-word character replaced.
func GenerateLayerID(name string) string {
	return nonWordPattern.ReplaceAllString(name+"_"+uuid.NewString(), "_")
}

type ProjectDocumentAdapter struct {
	NewID func(name string) string
}

func NewProjectDocumentAdapter() ProjectDocumentAdapter {
	return ProjectDocumentAdapter{NewID: GenerateLayerID}
}

func (a ProjectDocumentAdapter) Create() ports.ProjectStorePort {
	return newProjectDocument(a.idGenerator())
}

func (a ProjectDocumentAdapter) Open(path string) (ports.ProjectStorePort, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to read project document %s", path)).
			WithCause(err)
	}
	root, err := parseXMLNode(content)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse project document %s: %v", path, err)).
			WithCause(err)
	}
	doc, err := decodeProjectDocument(root, a.idGenerator())
	if err != nil {
		return nil, err
	}
	warnIfNewerWriter(path, doc.version)
	return doc, nil
}

func (a ProjectDocumentAdapter) idGenerator() func(string) string {
	if a.NewID != nil {
		return a.NewID
	}
	return GenerateLayerID
}

// ProjectDocument is an in-memory QGIS project (.qgs). Elements it does not
// model are kept and written back unchanged.
type ProjectDocument struct {
	doc     *xmlNode
	root    *types.TreeNode
	layers  []types.MapLayer
	crs     string
	title   string
	version string
	newID   func(name string) string
}

func newProjectDocument(newID func(string) string) *ProjectDocument {
	return &ProjectDocument{
		doc:     newXMLNode("qgis", xmlAttr("projectname", ""), xmlAttr("version", DocumentVersion)),
		root:    types.NewRootNode(),
		version: DocumentVersion,
		newID:   newID,
	}
}

func decodeProjectDocument(root *xmlNode, newID func(string) string) (*ProjectDocument, error) {
	if root.XMLName.Local != "qgis" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("not a QGIS project document: root element <%s>", root.XMLName.Local))
	}
	doc := &ProjectDocument{doc: root, root: types.NewRootNode(), newID: newID}
	doc.version, _ = root.attr("version")
	doc.title = root.childText("title")
	if crs := root.child("projectCrs"); crs != nil {
		if srs := crs.child("spatialrefsys"); srs != nil {
			doc.crs = srs.childText("authid")
		}
	}
	if tree := root.child("layer-tree-group"); tree != nil {
		converted, err := treeFromXML(tree)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to decode project layer tree").
				WithCause(err)
		}
		doc.root = converted
	}
	if projectLayers := root.child("projectlayers"); projectLayers != nil {
		for _, child := range projectLayers.Children {
			if child.XMLName.Local != "maplayer" {
				continue
			}
			layer, err := mapLayerFromXML(child)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("failed to decode project layer").
					WithCause(err)
			}
			doc.layers = append(doc.layers, layer)
		}
	}
	return doc, nil
}

// warnIfNewerWriter logs when the document was written by a newer QGIS than
// the one this tool writes for.
func warnIfNewerWriter(path string, version string) {
	if version == "" {
		return
	}
	existing, err := pep440.Parse(releaseNumber(version))
	if err != nil {
		log.Debug().Str("project", path).Str("version", version).Msg("unparseable project version")
		return
	}
	ours, err := pep440.Parse(releaseNumber(DocumentVersion))
	if err != nil {
		return
	}
	if existing.Compare(ours) > 0 {
		log.Warn().
			Str("project", path).
			Str("version", version).
			Str("writer", DocumentVersion).
			Msg("project written by a newer QGIS version")
	}
}

// releaseNumber strips the release name from versions like "3.34.0-Prizren".
func releaseNumber(version string) string {
	if idx := strings.Index(version, "-"); idx >= 0 {
		return version[:idx]
	}
	return version
}

func (d *ProjectDocument) Insert(def types.LayerDefinition, at types.InsertPosition) ([]string, error) {
	if len(def.Nodes) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("definition has no layer tree nodes")
	}
	existing := d.layerIDs()
	declared := map[string]struct{}{}
	for _, layer := range def.Layers {
		if strings.TrimSpace(layer.ID) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("map layer %q has no id", layer.Name))
		}
		if _, dup := declared[layer.ID]; dup {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("layer id %s declared twice", layer.ID))
		}
		declared[layer.ID] = struct{}{}
	}
	for _, node := range def.Nodes {
		for _, id := range node.LayerIDs() {
			_, inDef := declared[id]
			_, inProject := existing[id]
			if !inDef && !inProject {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("layer tree references unknown layer %s", id))
			}
		}
	}

	renamed := map[string]string{}
	layers := make([]types.MapLayer, 0, len(def.Layers))
	ids := make([]string, 0, len(def.Layers))
	for _, layer := range def.Layers {
		if _, clash := existing[layer.ID]; clash {
			fresh := d.newID(layer.Name)
			renamed[layer.ID] = fresh
			layer.ID = fresh
		}
		layers = append(layers, layer)
		ids = append(ids, layer.ID)
	}
	nodes := make([]*types.TreeNode, 0, len(def.Nodes))
	for _, node := range def.Nodes {
		clone := node.Clone()
		clone.Walk(func(n *types.TreeNode, _ int) {
			if fresh, ok := renamed[n.LayerID]; ok && n.Kind == types.NodeKindLayer {
				n.LayerID = fresh
			}
		})
		nodes = append(nodes, clone)
	}

	switch at {
	case types.InsertBottom:
		d.root.Children = append(d.root.Children, nodes...)
	default:
		d.root.Children = append(nodes, d.root.Children...)
	}
	d.layers = append(d.layers, layers...)
	return ids, nil
}

func (d *ProjectDocument) layerIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(d.layers))
	for _, layer := range d.layers {
		ids[layer.ID] = struct{}{}
	}
	for _, id := range d.root.LayerIDs() {
		ids[id] = struct{}{}
	}
	return ids
}

func (d *ProjectDocument) SetCRS(authID string) error {
	if strings.TrimSpace(authID) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("coordinate reference system is empty")
	}
	d.crs = authID
	return nil
}

func (d *ProjectDocument) SetTitle(title string) {
	d.title = title
}

func (d *ProjectDocument) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	content, err := d.encode()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode project document").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to create project directory for %s", path)).
			WithCause(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write project document %s", path)).
			WithCause(err)
	}
	return nil
}

func (d *ProjectDocument) encode() ([]byte, error) {
	if d.title != "" {
		title := newXMLNode("title")
		title.Text = d.title
		d.doc.replaceChild(title)
	}
	if d.crs != "" {
		d.doc.replaceChild(projectCRSNode(d.crs))
	}
	tree, err := treeToXML(d.root)
	if err != nil {
		return nil, err
	}
	d.doc.replaceChild(tree)
	projectLayers := newXMLNode("projectlayers")
	for _, layer := range d.layers {
		node, err := mapLayerToXML(layer)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", layer.ID, err)
		}
		projectLayers.Children = append(projectLayers.Children, node)
	}
	d.doc.replaceChild(projectLayers)

	body, err := xml.MarshalIndent(d.doc, "", "  ")
	if err != nil {
		return nil, err
	}
	content := append([]byte(projectDoctype), body...)
	return append(content, '\n'), nil
}

func projectCRSNode(authID string) *xmlNode {
	authid := newXMLNode("authid")
	authid.Text = authID
	srs := newXMLNode("spatialrefsys", xmlAttr("nativeFormat", "Wkt"))
	srs.Children = append(srs.Children, authid)
	if authority, code, ok := strings.Cut(authID, ":"); ok && strings.EqualFold(authority, "EPSG") {
		srid := newXMLNode("srid")
		srid.Text = code
		srs.Children = append(srs.Children, srid)
	}
	crs := newXMLNode("projectCrs")
	crs.Children = append(crs.Children, srs)
	return crs
}

func (d *ProjectDocument) Snapshot() types.ProjectSnapshot {
	return types.ProjectSnapshot{
		Title:   d.title,
		CRS:     d.crs,
		Version: d.version,
		Root:    d.root.Clone(),
		Layers:  append([]types.MapLayer(nil), d.layers...),
	}
}

func (d *ProjectDocument) RewriteDatasources(fn func(string) string) int {
	changed := 0
	for i, layer := range d.layers {
		rewritten := fn(layer.Datasource)
		if rewritten != layer.Datasource {
			d.layers[i].Datasource = rewritten
			changed++
		}
	}
	// Layer tree nodes carry a copy of the datasource in their source attribute.
	d.root.Walk(func(node *types.TreeNode, _ int) {
		if node.Kind != types.NodeKindLayer {
			return
		}
		for i, attr := range node.Attributes {
			if attr.Name != "source" {
				continue
			}
			rewritten := fn(attr.Value)
			if rewritten != attr.Value {
				node.Attributes[i].Value = rewritten
				changed++
			}
		}
	})
	return changed
}

var (
	_ ports.ProjectStorePort  = (*ProjectDocument)(nil)
	_ ports.ProjectOpenerPort = ProjectDocumentAdapter{}
)
