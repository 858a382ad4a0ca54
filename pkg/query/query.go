// Package query runs XPath expressions over rendered CSDL documents.
//
// Elements in the default edm namespace are matched by plain names, so
// "//EntityType[@Name='Pet']/Key/PropertyRef" works without namespace bindings.
// Prefixed envelope elements are easiest to reach with local-name(), e.g.
// "//*[local-name()='DataServices']".
package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document is a parsed CSDL document.
type Document struct {
	root *xmlquery.Node
}

// Node is a matched node.
type Node struct {
	node *xmlquery.Node
}

// Parse parses a rendered document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing CSDL: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses a rendered document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// Compile checks an expression without running it.
func Compile(expr string) error {
	if _, err := xpath.Compile(expr); err != nil {
		return fmt.Errorf("invalid xpath: %w", err)
	}
	return nil
}

// All returns every node matching expr.
func (d *Document) All(expr string) ([]*Node, error) {
	if err := Compile(expr); err != nil {
		return nil, err
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// First returns the first node matching expr, or nil when nothing matches.
func (d *Document) First(expr string) (*Node, error) {
	if err := Compile(expr); err != nil {
		return nil, err
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Count returns how many nodes match expr.
func (d *Document) Count(expr string) (int, error) {
	nodes, err := d.All(expr)
	return len(nodes), err
}

// Name returns the local element name.
func (n *Node) Name() string {
	return n.node.Data
}

// Attr returns an attribute value by local name.
func (n *Node) Attr(name string) string {
	return n.node.SelectAttr(name)
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.node.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Text returns the text content of the node.
func (n *Node) Text() string {
	return strings.TrimSpace(n.node.InnerText())
}

// XML returns the node serialized with itself included.
func (n *Node) XML() string {
	return n.node.OutputXML(true)
}

// String renders a short description: attribute nodes print their value,
// elements print their name and attributes.
func (n *Node) String() string {
	if n.node.Type == xmlquery.AttributeNode || n.node.Type == xmlquery.TextNode {
		return n.node.InnerText()
	}
	var b strings.Builder
	b.WriteString(n.node.Data)
	for _, a := range n.node.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		fmt.Fprintf(&b, " %s=%q", a.Name.Local, a.Value)
	}
	return b.String()
}
