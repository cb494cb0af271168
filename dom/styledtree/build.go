package styledtree

import (
	"errors"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/rcss"
	"github.com/npillmayer/rcss/tree"
	"golang.org/x/net/html"
)

// ErrNoElements is returned if an HTML document has no element nodes.
var ErrNoElements = errors.New("styledtree: document contains no elements")

// Build creates a styled tree for the element nodes of an HTML parse tree.
// If doc is a document node, its root element becomes the root of the
// styled tree.
func Build(doc *html.Node) (*StyNode, error) {
	for doc != nil && doc.Type != html.ElementNode {
		doc = firstElementChild(doc)
	}
	if doc == nil {
		return nil, ErrNoElements
	}
	root := NewNodeForHTMLNode(doc)
	addChildren(root, doc)
	return Node(root), nil
}

func firstElementChild(h *html.Node) *html.Node {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func addChildren(n *tree.Node[*StyNode], h *html.Node) {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		ch := NewNodeForHTMLNode(c)
		n.AddChild(ch)
		addChildren(ch, c)
	}
}

// Walk visits sn and all of its descendents in document order.
func (sn *StyNode) Walk(f func(*StyNode) bool) {
	sn.Node.Walk(func(n *tree.Node[*StyNode]) bool {
		return f(n.Payload)
	})
}

// Style attaches element definitions from sheet to root and its descendents.
// Definitions attached before are released. The stylesheet has to be built.
func Style(root *StyNode, sheet *rcss.StyleSheet) {
	count := 0
	root.Walk(func(sn *StyNode) bool {
		sn.SetDefinition(sheet.GetElementDefinition(sn))
		count++
		return true
	})
	tracer().Debugf("styled %d elements, %d definitions cached", count, sheet.CachedDefinitions())
}

// Unstyle releases the definitions of root and its descendents.
func Unstyle(root *StyNode) {
	root.Walk(func(sn *StyNode) bool {
		sn.SetDefinition(nil)
		return true
	})
}

// --- Properties ------------------------------------------------------------

// GetLocalProperty returns a property value, if it is set by the definition
// of a styled node. No inheritance is performed.
func GetLocalProperty(sn *StyNode, key string) style.Value {
	if sn == nil || sn.definition == nil {
		return style.NullStyle
	}
	return sn.definition.Value(key)
}

// GetProperty gets the computed value of a property. If the property is not
// set locally and the property is inherited, or if it has the value "inherit",
// the computed value of the parent of sn is returned. Otherwise, or for the
// root of the tree, the user-agent default for sn is returned.
func GetProperty(sn *StyNode, key string) style.Value {
	v := GetLocalProperty(sn, key)
	switch {
	case v.IsInitial():
		return style.UserAgentDefault(sn.TagName(), key)
	case !v.IsEmpty() && !v.IsInherit():
		return v
	case v.IsEmpty() && !style.IsCascading(key):
		return style.UserAgentDefault(sn.TagName(), key)
	}
	parent := Node(sn.Node.Parent())
	if parent == nil {
		return style.UserAgentDefault(sn.TagName(), key)
	}
	tracer().P("key", key).Debugf("styling: inheriting %s from %s", key, parent.TagName())
	return GetProperty(parent, key)
}
