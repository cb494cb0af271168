package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"
)

/*
We manage a tree of mutable nodes. Each nodes carries a payload of type parameter T.
Nodes maintain a slice of children and know their position within their parent,
which makes sibling navigation cheap. Selector matching walks siblings a lot.
*/

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]         // parent node of this node
	children childrenSlice[T] // mutex-protected slice of children nodes
	Payload  T                // nodes may carry a payload of arbitrary type
	Rank     uint32           // position within the parent's children
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild appends a child node. The child is connected to this node as its
// parent and receives the next rank.
// It returns the parent node to allow for chaining.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	if ch != nil {
		node.children.append(ch, node)
	}
	return node
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	if node == nil {
		return nil
	}
	return node.parent
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node[T]) ChildCount() int {
	if node == nil {
		return 0
	}
	return node.children.length()
}

// Child returns the n-th child of a node.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	ch := node.children.child(n)
	return ch, ch != nil
}

// Children returns a copy of the slice of children.
func (node *Node[T]) Children() []*Node[T] {
	return node.children.asSlice()
}

// PrevSibling returns the sibling immediately before node, or nil.
func (node *Node[T]) PrevSibling() *Node[T] {
	if node == nil || node.parent == nil || node.Rank == 0 {
		return nil
	}
	ch, _ := node.parent.Child(int(node.Rank) - 1)
	return ch
}

// NextSibling returns the sibling immediately after node, or nil.
func (node *Node[T]) NextSibling() *Node[T] {
	if node == nil || node.parent == nil {
		return nil
	}
	ch, _ := node.parent.Child(int(node.Rank) + 1)
	return ch
}

// Walk visits node and all of its descendents in document order (pre-order).
// If f returns false, the children of the current node will not be visited.
func (node *Node[T]) Walk(f func(*Node[T]) bool) {
	if node == nil {
		return
	}
	if !f(node) {
		return
	}
	for _, ch := range node.Children() {
		ch.Walk(f)
	}
}

// --- Slices of concurrency-safe sets of children ----------------------

type childrenSlice[T comparable] struct {
	sync.RWMutex
	slice []*Node[T]
}

func (chs *childrenSlice[T]) length() int {
	chs.RLock()
	defer chs.RUnlock()
	return len(chs.slice)
}

func (chs *childrenSlice[T]) append(child *Node[T], parent *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	child.Rank = uint32(len(chs.slice))
	child.parent = parent
	chs.slice = append(chs.slice, child)
}

func (chs *childrenSlice[T]) child(n int) *Node[T] {
	chs.RLock()
	defer chs.RUnlock()
	if n < 0 || n >= len(chs.slice) {
		return nil
	}
	return chs.slice[n]
}

func (chs *childrenSlice[T]) asSlice() []*Node[T] {
	chs.RLock()
	defer chs.RUnlock()
	children := make([]*Node[T], len(chs.slice))
	copy(children, chs.slice)
	return children
}
