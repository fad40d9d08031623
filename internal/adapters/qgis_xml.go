package adapters

import (
	"bytes"
	"encoding/xml"
	"strings"

	"layerstack/internal/types"
)

const (
	qgisChecked   = "Qt::Checked"
	qgisUnchecked = "Qt::Unchecked"
)

// xmlNode is a lossless-enough model of a QGIS XML element: attributes keep
// their order and unknown children are carried along untouched.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*xmlNode `xml:",any"`
}

func newXMLNode(name string, attrs ...xml.Attr) *xmlNode {
	return &xmlNode{XMLName: xml.Name{Local: name}, Attrs: attrs}
}

func xmlAttr(name string, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func parseXMLNode(data []byte) (*xmlNode, error) {
	var node xmlNode
	if err := xml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	node.normalize()
	return &node, nil
}

// normalize drops namespaces, which QGIS documents do not use, and the
// indentation whitespace collected between child elements.
func (n *xmlNode) normalize() {
	n.XMLName.Space = ""
	attrs := n.Attrs[:0]
	for _, attr := range n.Attrs {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		attr.Name.Space = ""
		attrs = append(attrs, attr)
	}
	n.Attrs = attrs
	if len(n.Children) > 0 {
		n.Text = strings.TrimSpace(n.Text)
	}
	for _, child := range n.Children {
		child.normalize()
	}
}

func (n *xmlNode) marshal() ([]byte, error) {
	return xml.Marshal(n)
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) setAttr(name string, value string) {
	for i, attr := range n.Attrs {
		if attr.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xmlAttr(name, value))
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, child := range n.Children {
		if child.XMLName.Local == name {
			return child
		}
	}
	return nil
}

func (n *xmlNode) childText(name string) string {
	if child := n.child(name); child != nil {
		return strings.TrimSpace(child.Text)
	}
	return ""
}

// replaceChild swaps the first child with the same name, or appends.
func (n *xmlNode) replaceChild(replacement *xmlNode) {
	for i, child := range n.Children {
		if child.XMLName.Local == replacement.XMLName.Local {
			n.Children[i] = replacement
			return
		}
	}
	n.Children = append(n.Children, replacement)
}

func (n *xmlNode) ensureChild(name string) *xmlNode {
	if child := n.child(name); child != nil {
		return child
	}
	child := newXMLNode(name)
	n.Children = append(n.Children, child)
	return child
}

func isTreeElement(name string) bool {
	return name == "layer-tree-group" || name == "layer-tree-layer"
}

// treeFromXML converts a layer-tree-group or layer-tree-layer element.
// Missing checked/expanded attributes default to true, as in QGIS.
func treeFromXML(n *xmlNode) (*types.TreeNode, error) {
	node := &types.TreeNode{Kind: types.NodeKindGroup, Checked: true, Expanded: true}
	if n.XMLName.Local == "layer-tree-layer" {
		node.Kind = types.NodeKindLayer
	}
	for _, attr := range n.Attrs {
		switch attr.Name.Local {
		case "name":
			node.Name = attr.Value
		case "id":
			if node.Kind == types.NodeKindLayer {
				node.LayerID = attr.Value
				continue
			}
			node.Attributes = append(node.Attributes, types.Attribute{Name: attr.Name.Local, Value: attr.Value})
		case "checked":
			node.Checked = attr.Value == qgisChecked
		case "expanded":
			node.Expanded = attr.Value == "1"
		default:
			node.Attributes = append(node.Attributes, types.Attribute{Name: attr.Name.Local, Value: attr.Value})
		}
	}
	var passthrough bytes.Buffer
	for _, child := range n.Children {
		if isTreeElement(child.XMLName.Local) {
			converted, err := treeFromXML(child)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, converted)
			continue
		}
		raw, err := child.marshal()
		if err != nil {
			return nil, err
		}
		passthrough.Write(raw)
	}
	if passthrough.Len() > 0 {
		node.Passthrough = passthrough.Bytes()
	}
	return node, nil
}

// treeToXML is the inverse of treeFromXML.
func treeToXML(node *types.TreeNode) (*xmlNode, error) {
	name := "layer-tree-group"
	if node.Kind == types.NodeKindLayer {
		name = "layer-tree-layer"
	}
	out := newXMLNode(name)
	if node.Kind == types.NodeKindLayer {
		out.Attrs = append(out.Attrs, xmlAttr("id", node.LayerID))
	}
	out.Attrs = append(out.Attrs, xmlAttr("name", node.Name))
	checked := qgisUnchecked
	if node.Checked {
		checked = qgisChecked
	}
	out.Attrs = append(out.Attrs, xmlAttr("checked", checked))
	expanded := "0"
	if node.Expanded {
		expanded = "1"
	}
	out.Attrs = append(out.Attrs, xmlAttr("expanded", expanded))
	for _, attr := range node.Attributes {
		out.Attrs = append(out.Attrs, xmlAttr(attr.Name, attr.Value))
	}
	if len(node.Passthrough) > 0 {
		extra, err := parseXMLFragment(node.Passthrough)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, extra...)
	}
	for _, child := range node.Children {
		converted, err := treeToXML(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, converted)
	}
	return out, nil
}

// parseXMLFragment parses a sequence of sibling elements.
func parseXMLFragment(data []byte) ([]*xmlNode, error) {
	wrapper, err := parseXMLNode(append(append([]byte("<fragment>"), data...), []byte("</fragment>")...))
	if err != nil {
		return nil, err
	}
	return wrapper.Children, nil
}

// mapLayerFromXML reads the fields reports need and keeps the element verbatim.
func mapLayerFromXML(n *xmlNode) (types.MapLayer, error) {
	raw, err := n.marshal()
	if err != nil {
		return types.MapLayer{}, err
	}
	layer := types.MapLayer{
		ID:         n.childText("id"),
		Name:       n.childText("layername"),
		Datasource: n.childText("datasource"),
		Provider:   n.childText("provider"),
		XML:        raw,
	}
	layer.Type, _ = n.attr("type")
	return layer, nil
}

func mapLayerToXML(layer types.MapLayer) (*xmlNode, error) {
	node, err := parseXMLNode(layer.XML)
	if err != nil {
		return nil, err
	}
	node.ensureChild("id").Text = layer.ID
	if child := node.child("datasource"); child != nil {
		child.Text = layer.Datasource
	}
	return node, nil
}
