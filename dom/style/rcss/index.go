package rcss

import (
	"github.com/npillmayer/rcss/dom"
	"github.com/npillmayer/rcss/dom/style"
)

// NodeIndex maps selector tokens to rule nodes. Keys are a tag name or "*",
// "#id" and ".class". A node is listed under every token of the last step of
// its chain.
type NodeIndex map[string][]NodeHandle

// Lookup returns the nodes listed under key.
func (idx NodeIndex) Lookup(key string) []NodeHandle {
	return idx[key]
}

func (idx NodeIndex) add(key string, h NodeHandle) {
	idx[key] = append(idx[key], h)
}

func (s *step) indexKeys() []string {
	keys := make([]string, 0, 2+len(s.classes))
	if s.tag == "" {
		keys = append(keys, "*")
	} else {
		keys = append(keys, s.tag)
	}
	if s.id != "" {
		keys = append(keys, "#"+s.id)
	}
	for _, c := range s.classes {
		keys = append(keys, "."+c)
	}
	return keys
}

func elementKeys(e dom.Element) []string {
	classes := e.Classes()
	keys := make([]string, 0, 3+len(classes))
	keys = append(keys, e.TagName(), "*")
	if id := e.ID(); id != "" {
		keys = append(keys, "#"+id)
	}
	for _, c := range classes {
		keys = append(keys, "."+c)
	}
	return keys
}

// candidates collects the nodes of an index whose keys occur in the tokens
// of e, without duplicates.
func candidates(idx NodeIndex, e dom.Element) []NodeHandle {
	var hs []NodeHandle
	seen := make(map[NodeHandle]bool)
	for _, key := range elementKeys(e) {
		for _, h := range idx[key] {
			if !seen[h] {
				seen[h] = true
				hs = append(hs, h)
			}
		}
	}
	return hs
}

// BuildNodeIndexAndOptimizeProperties prepares a stylesheet for matching.
// It (re-)builds the node indices and instances the decorators and
// font-effects of all 'decorator' and 'font-effect' declarations, which are
// then available from Property.Instance.
//
// Calling it more than once is harmless: indices are rebuilt from scratch and
// declarations already instanced are left alone.
func (sheet *StyleSheet) BuildNodeIndexAndOptimizeProperties() {
	sheet.styledIndex = make(NodeIndex)
	sheet.completeIndex = make(NodeIndex)
	sheet.tree.walk(rootNode, func(h NodeHandle, n *StyleSheetNode) {
		if h == rootNode {
			return
		}
		styled := n.properties.Len() > 0
		for _, key := range n.step.indexKeys() {
			sheet.completeIndex.add(key, h)
			if styled {
				sheet.styledIndex.add(key, h)
			}
		}
		sheet.optimizeProperties(n.properties)
	})
	sheet.built = true
	tracer().Debugf("rcss: built index with %d keys for %d nodes", len(sheet.completeIndex), sheet.NodeCount())
}

func (sheet *StyleSheet) optimizeProperties(props *style.PropertyDictionary) {
	if p, ok := props.Get("decorator"); ok && p.Instance == nil {
		p.Instance = sheet.InstanceDecoratorsFromString(p.Value.String(), p.Source.File, p.Source.Line)
		props.Set("decorator", p)
	}
	if p, ok := props.Get("font-effect"); ok && p.Instance == nil {
		p.Instance = sheet.InstanceFontEffectsFromString(p.Value.String(), p.Source.File, p.Source.Line)
		props.Set("font-effect", p)
	}
}

// StyledIndex returns the index of nodes carrying declarations.
func (sheet *StyleSheet) StyledIndex() NodeIndex {
	return sheet.styledIndex
}

// CompleteIndex returns the index of all nodes.
func (sheet *StyleSheet) CompleteIndex() NodeIndex {
	return sheet.completeIndex
}

// HasPseudoClassRules tells if any rule depends on pseudo-class pseudo being
// set for element e, i.e. if a change of the pseudo-class may change the
// style of e or of its descendents and siblings.
func (sheet *StyleSheet) HasPseudoClassRules(e dom.Element, pseudo string) bool {
	for _, h := range candidates(sheet.completeIndex, e) {
		s := &sheet.tree.node(h).step
		if !hasString(s.pseudos, pseudo) {
			continue
		}
		if matchTokens(s, e) {
			return true
		}
	}
	return false
}

func hasString(l []string, s string) bool {
	for _, x := range l {
		if x == s {
			return true
		}
	}
	return false
}
