/*
Package tree implements a small general purpose tree type.

Styling of HTML/CSS involves operations on different trees. Concrete trees
(e.g., the styled tree of package dom/styledtree) embed a Node, instead of
sub-classing it, and use the Payload to reference themselves.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree
