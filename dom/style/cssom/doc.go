/*
Package cssom defines the interface between a CSS front-end and the cascade
engine.

# Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Here it is
reduced to what the cascade engine needs from a parser: an ordered list of
rules, each either a qualified rule (selectors with declarations) or an
at-rule ("@keyframes", "@decorator", "@spritesheet", …), together with
source positions for diagnostics.

Tokenizing and parsing CSS text is not done in this package. Concrete
implementations may be found in sub-packages (see douceuradapter). The
cascade engine itself lives in package rcss and consumes these interfaces
only. Having this interface imposes a (small) performance hit, which we
trade for modularity.

A good explanation of styling may be found in

	https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom
