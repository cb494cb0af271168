package rcss

import (
	"github.com/npillmayer/rcss/dom/style"
)

// NodeHandle addresses a StyleSheetNode within its stylesheet.
// Handles are stable for the lifetime of a stylesheet; a combined
// stylesheet keeps the handles of its receiver's nodes.
type NodeHandle int32

// The root node has handle 0 and no parent.
const (
	rootNode NodeHandle = 0
	noNode   NodeHandle = -1
)

// StyleSheetNode is a step of a selector chain in the rule tree of a
// stylesheet. Declarations of a rule are attached to the node at the end
// of the rule's selector chain.
type StyleSheetNode struct {
	parent     NodeHandle
	step       step
	weight     int // selector weight of the chain up to and including this node
	properties *style.PropertyDictionary
	children   map[string]NodeHandle // by step key
	order      []NodeHandle          // children in insertion order
}

// Properties returns the declarations attached to this node. Clients must
// not modify the dictionary.
func (n *StyleSheetNode) Properties() *style.PropertyDictionary {
	return n.properties
}

// Weight returns the selector weight of the node's chain.
func (n *StyleSheetNode) Weight() int {
	return n.weight
}

// Combinator returns the relation of this node to its parent step.
func (n *StyleSheetNode) Combinator() Combinator {
	return n.step.combinator
}

func (n *StyleSheetNode) String() string {
	return n.step.text()
}

// nodeTree is the arena of the nodes of a stylesheet.
type nodeTree struct {
	nodes []*StyleSheetNode
}

func newNodeTree() nodeTree {
	root := &StyleSheetNode{
		parent:     noNode,
		properties: style.NewPropertyDictionary(),
	}
	return nodeTree{nodes: []*StyleSheetNode{root}}
}

func (t *nodeTree) node(h NodeHandle) *StyleSheetNode {
	return t.nodes[h]
}

// child returns the child of parent for step s, creating it if necessary.
func (t *nodeTree) child(parent NodeHandle, s step) NodeHandle {
	p := t.nodes[parent]
	key := s.key()
	if h, ok := p.children[key]; ok {
		return h
	}
	h := NodeHandle(len(t.nodes))
	t.nodes = append(t.nodes, &StyleSheetNode{
		parent:     parent,
		step:       s,
		weight:     p.weight + s.weight(),
		properties: style.NewPropertyDictionary(),
	})
	if p.children == nil {
		p.children = make(map[string]NodeHandle)
	}
	p.children[key] = h
	p.order = append(p.order, h)
	return h
}

// insertChain adds a chain of steps below the root and returns the handle
// of the last step's node.
func (t *nodeTree) insertChain(steps []step) NodeHandle {
	h := rootNode
	for _, s := range steps {
		h = t.child(h, s)
	}
	return h
}

// chain returns the steps from the root to h.
func (t *nodeTree) chain(h NodeHandle) []step {
	var steps []step
	for ; h > rootNode; h = t.nodes[h].parent {
		steps = append(steps, t.nodes[h].step)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

// walk visits h and its descendents in pre-order.
func (t *nodeTree) walk(h NodeHandle, f func(NodeHandle, *StyleSheetNode)) {
	n := t.nodes[h]
	f(h, n)
	for _, ch := range n.order {
		t.walk(ch, f)
	}
}

// copy deep-copies the tree. Handles are preserved.
func (t *nodeTree) copy() nodeTree {
	c := nodeTree{nodes: make([]*StyleSheetNode, len(t.nodes))}
	for h, n := range t.nodes {
		cn := &StyleSheetNode{
			parent:     n.parent,
			step:       n.step,
			weight:     n.weight,
			properties: n.properties.Copy(),
			order:      append([]NodeHandle(nil), n.order...),
		}
		if n.children != nil {
			cn.children = make(map[string]NodeHandle, len(n.children))
			for k, v := range n.children {
				cn.children[k] = v
			}
		}
		c.nodes[h] = cn
	}
	return c
}

// merge adds the nodes of other to t. Declarations of other are shifted by
// orderOffset and cascaded into the declarations of corresponding nodes.
func (t *nodeTree) merge(other *nodeTree, orderOffset int) {
	var mergeAt func(into, from NodeHandle)
	mergeAt = func(into, from NodeHandle) {
		fn := other.nodes[from]
		t.nodes[into].properties.Merge(fn.properties, orderOffset)
		for _, ch := range fn.order {
			mergeAt(t.child(into, other.nodes[ch].step), ch)
		}
	}
	mergeAt(rootNode, rootNode)
}
