/*
Package style holds the value types of CSS styling: raw property values,
declarations with their cascade specificity, and property dictionaries.

A PropertyDictionary is what a stylesheet attaches to every selector and
what an element definition is compiled into. Dictionaries know how to
cascade: a declaration only replaces another one for the same key if it
does not lose against it in specificity.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style
