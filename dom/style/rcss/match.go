package rcss

import (
	"sort"

	"github.com/npillmayer/rcss/dom"
	"github.com/npillmayer/rcss/dom/style"
)

// GetElementDefinition returns the definition for element e: the cascaded
// properties of all rules matching e. If no rule matches, the definition is
// empty. It is never nil.
//
// A reference is added for the caller, who has to Release it when done.
// Elements matching the same set of rule nodes share a definition.
//
// The stylesheet must have been built with BuildNodeIndexAndOptimizeProperties,
// otherwise GetElementDefinition panics.
func (sheet *StyleSheet) GetElementDefinition(e dom.Element) *ElementDefinition {
	if !sheet.built {
		panic("rcss: element definition requested from a stylesheet which has not been built")
	}
	nodes := sheet.MatchingNodes(e)
	hash := hashNodes(nodes)
	if def, ok := sheet.cache.lookup(hash, nodes); ok {
		return def.AddRef()
	}
	props := style.NewPropertyDictionary()
	for _, h := range nodes {
		props.Merge(sheet.tree.node(h).properties, 0)
	}
	def := newElementDefinition(props, nodes)
	sheet.cache.insert(hash, nodes, def)
	tracer().Debugf("rcss: new definition for <%s> from %d nodes", e.TagName(), len(nodes))
	return def.AddRef()
}

// MatchingNodes returns the styled rule nodes whose selector chain matches e,
// ordered by selector weight (ascending) and handle.
func (sheet *StyleSheet) MatchingNodes(e dom.Element) []NodeHandle {
	var nodes []NodeHandle
	for _, h := range candidates(sheet.styledIndex, e) {
		if sheet.matchChain(h, e) {
			nodes = append(nodes, h)
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		wi, wj := sheet.tree.node(nodes[i]).weight, sheet.tree.node(nodes[j]).weight
		if wi != wj {
			return wi < wj
		}
		return nodes[i] < nodes[j]
	})
	return nodes
}

// matchChain checks the chain of rule nodes ending in h against e and its
// relatives. Descendant and sibling combinators backtrack.
func (sheet *StyleSheet) matchChain(h NodeHandle, e dom.Element) bool {
	n := sheet.tree.node(h)
	if !matchStep(&n.step, e) {
		return false
	}
	if n.parent == rootNode {
		return true
	}
	switch n.step.combinator {
	case Child:
		p := e.Parent()
		return p != nil && sheet.matchChain(n.parent, p)
	case Adjacent:
		s := e.PreviousSibling()
		return s != nil && sheet.matchChain(n.parent, s)
	case Sibling:
		for s := e.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			if sheet.matchChain(n.parent, s) {
				return true
			}
		}
	default:
		for a := e.Parent(); a != nil; a = a.Parent() {
			if sheet.matchChain(n.parent, a) {
				return true
			}
		}
	}
	return false
}

func matchStep(s *step, e dom.Element) bool {
	if !matchTokens(s, e) {
		return false
	}
	for _, p := range s.pseudos {
		if !e.IsPseudoClassSet(p) {
			return false
		}
	}
	for _, st := range s.structural {
		if !matchStructural(st, e) {
			return false
		}
	}
	return true
}

// matchTokens checks tag, id and classes of a step.
func matchTokens(s *step, e dom.Element) bool {
	if s.tag != "" && s.tag != e.TagName() {
		return false
	}
	if s.id != "" && s.id != e.ID() {
		return false
	}
	for _, c := range s.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

func matchStructural(st structural, e dom.Element) bool {
	switch st.name {
	case "first-child":
		return e.PreviousSibling() == nil
	case "last-child":
		return e.NextSibling() == nil
	case "only-child":
		return e.PreviousSibling() == nil && e.NextSibling() == nil
	case "first-of-type":
		return countSiblings(e, false, true) == 0
	case "last-of-type":
		return countSiblings(e, true, true) == 0
	case "only-of-type":
		return countSiblings(e, false, true) == 0 && countSiblings(e, true, true) == 0
	case "empty":
		return e.ChildCount() == 0
	case "root":
		return e.Parent() == nil
	case "nth-child":
		return nthMatches(st.a, st.b, countSiblings(e, false, false)+1)
	case "nth-last-child":
		return nthMatches(st.a, st.b, countSiblings(e, true, false)+1)
	case "nth-of-type":
		return nthMatches(st.a, st.b, countSiblings(e, false, true)+1)
	case "nth-last-of-type":
		return nthMatches(st.a, st.b, countSiblings(e, true, true)+1)
	}
	return false
}

// countSiblings counts the siblings before (or after, if forward is set) e,
// optionally only those with the same tag.
func countSiblings(e dom.Element, forward bool, ofType bool) int {
	next := dom.Element.PreviousSibling
	if forward {
		next = dom.Element.NextSibling
	}
	tag := e.TagName()
	n := 0
	for s := next(e); s != nil; s = next(s) {
		if !ofType || s.TagName() == tag {
			n++
		}
	}
	return n
}
