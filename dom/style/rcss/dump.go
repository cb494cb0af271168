package rcss

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the rule tree of a stylesheet, for debugging.
func (sheet *StyleSheet) Dump() string {
	root := treeprint.NewWithRoot(fmt.Sprintf("stylesheet [offset=%d]", sheet.specificityOffset))
	sheet.dumpChildren(root, rootNode)
	return root.String()
}

func (sheet *StyleSheet) dumpChildren(t treeprint.Tree, h NodeHandle) {
	for _, ch := range sheet.tree.node(h).order {
		n := sheet.tree.node(ch)
		label := n.step.text()
		if n.step.combinator != Descendant {
			label = n.step.combinator.String() + " " + label
		}
		label = fmt.Sprintf("%s  #%d w=%d", label, ch, n.weight)
		if n.properties.Len() > 0 {
			label += " " + n.properties.String()
		}
		if len(n.order) == 0 {
			t.AddNode(label)
			continue
		}
		sheet.dumpChildren(t.AddBranch(label), ch)
	}
}
