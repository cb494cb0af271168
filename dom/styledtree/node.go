package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"

	"github.com/npillmayer/rcss/dom"
	"github.com/npillmayer/rcss/dom/style/rcss"
	"github.com/npillmayer/rcss/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	classes             []string
	pseudoClasses       map[string]bool
	definition          *rcss.ElementDefinition
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{htmlNode: h}
	sn.Payload = sn // Payload will always reference the node itself
	for _, a := range h.Attr {
		if a.Key == "class" {
			sn.classes = strings.Fields(a.Val)
		}
	}
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// TagName is part of interface dom.Element.
func (sn *StyNode) TagName() string {
	return strings.ToLower(sn.htmlNode.Data)
}

// ID is part of interface dom.Element.
func (sn *StyNode) ID() string {
	return sn.Attribute("id")
}

// Attribute returns the value of an HTML attribute, or "".
func (sn *StyNode) Attribute(key string) string {
	for _, a := range sn.htmlNode.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass is part of interface dom.Element.
func (sn *StyNode) HasClass(class string) bool {
	for _, c := range sn.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Classes is part of interface dom.Element.
func (sn *StyNode) Classes() []string {
	return sn.classes
}

// IsPseudoClassSet is part of interface dom.Element.
func (sn *StyNode) IsPseudoClassSet(pseudo string) bool {
	return sn.pseudoClasses[pseudo]
}

// SetPseudoClass sets or clears a dynamic pseudo-class. It returns true if
// the state of the node has changed.
func (sn *StyNode) SetPseudoClass(pseudo string, on bool) bool {
	if sn.pseudoClasses[pseudo] == on {
		return false
	}
	if on {
		if sn.pseudoClasses == nil {
			sn.pseudoClasses = make(map[string]bool)
		}
		sn.pseudoClasses[pseudo] = true
	} else {
		delete(sn.pseudoClasses, pseudo)
	}
	return true
}

// PseudoClasses returns the active pseudo-classes, sorted.
func (sn *StyNode) PseudoClasses() []string {
	pc := make([]string, 0, len(sn.pseudoClasses))
	for p := range sn.pseudoClasses {
		pc = append(pc, p)
	}
	sort.Strings(pc)
	return pc
}

// Parent is part of interface dom.Element.
func (sn *StyNode) Parent() dom.Element {
	return element(sn.Node.Parent())
}

// PreviousSibling is part of interface dom.Element.
func (sn *StyNode) PreviousSibling() dom.Element {
	return element(sn.Node.PrevSibling())
}

// NextSibling is part of interface dom.Element.
func (sn *StyNode) NextSibling() dom.Element {
	return element(sn.Node.NextSibling())
}

// element avoids wrapping a nil node into a non-nil interface.
func element(n *tree.Node[*StyNode]) dom.Element {
	if n == nil {
		return nil
	}
	return n.Payload
}

// Definition returns the element definition attached by Style, or nil.
func (sn *StyNode) Definition() *rcss.ElementDefinition {
	return sn.definition
}

// SetDefinition attaches an element definition, taking over the caller's
// reference. A previously attached definition is released.
func (sn *StyNode) SetDefinition(def *rcss.ElementDefinition) {
	if sn.definition != nil {
		sn.definition.Release()
	}
	sn.definition = def
}

var _ dom.Element = &StyNode{}
