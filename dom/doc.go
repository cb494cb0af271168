/*
Package dom defines the view of a document tree the styling engine needs.

# Overview

Stylesheets are matched against elements of a document. The styling engine
does not own the document; it reads the structure of an element tree through
interface Element, which exposes the tokens a selector may test (tag name,
id, classes, pseudo-class state) and navigation to parents and siblings.

Package styledtree provides a default implementation on top of an HTML parse
tree. Clients with their own document model (e.g., a widget tree of an
interactive application) implement Element directly.

# Tree Implementation

Styling involves operations on different trees. We implement them on top of
a general purpose tree type (package tree). In Go we resort to composition,
including a generic tree node in every node (sub-)type.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom
