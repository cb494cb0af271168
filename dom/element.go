package dom

// Element represents an element of a document tree, as seen by selector
// matching.
//
// Implementations must return an untyped nil for missing relatives (the
// parent of the root, the siblings at the ends of a child list), not a
// nil pointer wrapped into the interface.
type Element interface {
	TagName() string              // lower-case tag name, e.g. "div"
	ID() string                   // value of the id attribute, or ""
	HasClass(string) bool         // is the element member of a class?
	Classes() []string            // all classes of the element
	IsPseudoClassSet(string) bool // is a dynamic pseudo-class like "hover" active?
	Parent() Element              // parent element, nil for the root
	PreviousSibling() Element     // previous element sibling, or nil
	NextSibling() Element         // next element sibling, or nil
	ChildCount() int              // number of element children
}
