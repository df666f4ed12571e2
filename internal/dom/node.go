// Package dom describes page mutations declaratively and applies them to an
// HTML document.
package dom

import (
	"bytes"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is a small element tree. A node with an empty Tag is a text node.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
	Text     string            `json:"text,omitempty"`
}

// Attrs is shorthand for element attributes.
type Attrs map[string]string

// El builds an element node.
func El(tag string, attrs Attrs, children ...Node) Node {
	return Node{Tag: tag, Attrs: attrs, Children: children}
}

// Text builds a text node.
func Text(s string) Node {
	return Node{Text: s}
}

// IsText reports whether n is a text node.
func (n Node) IsText() bool {
	return n.Tag == ""
}

// Find returns the first descendant (or n itself) for which match is true.
func (n Node) Find(match func(Node) bool) (Node, bool) {
	if match(n) {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(match); ok {
			return found, true
		}
	}
	return Node{}, false
}

// HasClass reports whether the node's class attribute contains class.
func (n Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of n and its descendants.
func (n Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var buf bytes.Buffer
	for _, c := range n.Children {
		buf.WriteString(c.TextContent())
	}
	return buf.String()
}

// toHTML converts the tree into an html.Node. Attributes are written in
// sorted order so output is stable.
func (n Node) toHTML() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}
	for _, c := range n.Children {
		out.AppendChild(c.toHTML())
	}
	return out
}

// Render serialises the tree as HTML.
func Render(n Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n.toHTML()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
