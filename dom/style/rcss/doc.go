/*
Package rcss implements stylesheets: the cascade, selector matching and the
cache of compiled element definitions.

# Overview

A StyleSheet is loaded from CSS text (or from a pre-parsed cssom.StyleSheet).
Every selector of a rule is decomposed into a chain of steps, e.g.

	div.menu > p:first-child

becomes the steps "div.menu" and "p:first-child", connected by a child
combinator. Chains are inserted into a tree of StyleSheetNodes, with common
prefixes shared, and the rule's declarations are attached to the node at the
end of the chain.

Stylesheets are combined with CombineStyleSheet, where the argument sheet is
considered more specific than the receiver: it wins over rules of equal
selector weight. Before matching, BuildNodeIndexAndOptimizeProperties has to
be called on the final sheet. It builds an index from the tokens of the last
step of a chain (tag, id, classes) to the nodes, and pre-instances decorators
and font-effects.

GetElementDefinition matches an element against the sheet. All nodes whose
chain matches the element contribute to an ElementDefinition, the cascaded
set of properties for this element. Definitions are cached per set of
matching nodes, so that elements with identical matches share one
definition.

# Specificity

Declarations are ordered by a pair (selector weight, order). Selector weights
are

	tag                                  10 000
	class, pseudo-class, structural     100 000
	id                                1 000 000
	!important                      100 000 000

summed over all steps of a chain. The order is the position of the rule in its
sheet, shifted by the specificity offset of the sheets combined before it.

# Concurrency

A StyleSheet is not safe for concurrent use. Matching is a read-only
operation on the rule tree, but it populates the definition cache.
ElementDefinitions are reference counted with atomic counters and may be
held on to by other goroutines.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rcss

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rcss.style'.
func tracer() tracing.Trace {
	return tracing.Select("rcss.style")
}
