/*
Package styledtree is a straightforward default implementation of a styled
document tree.

# Overview

A styled tree mirrors the element nodes of an HTML parse tree. Every node
implements dom.Element and may therefore be matched against a stylesheet.
Style() attaches the element definition of a stylesheet to every node of
a (sub-)tree; GetProperty then resolves property values, respecting CSS
inheritance and falling back to user-agent defaults.

Nodes carry a set of dynamic pseudo-classes ("hover", "focus", …) which
clients set and clear. After a change, the affected sub-tree has to be
re-styled.

Text nodes, comments and the like are not part of a styled tree.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rcss.dom'.
func tracer() tracing.Trace {
	return tracing.Select("rcss.dom")
}
