package rcss

import (
	"strings"

	"github.com/npillmayer/rcss/dom"
)

// elem is a minimal dom.Element for tests.
type elem struct {
	tag      string
	id       string
	classes  []string
	pseudo   map[string]bool
	parent   *elem
	children []*elem
}

// el creates an element from a tag and a token string like "#id.a.b:hover".
func el(tag string, tokens string, children ...*elem) *elem {
	e := &elem{tag: tag, pseudo: make(map[string]bool)}
	tokens = strings.NewReplacer("#", " #", ".", " .", ":", " :").Replace(tokens)
	for _, t := range strings.Fields(tokens) {
		switch t[0] {
		case '#':
			e.id = t[1:]
		case '.':
			e.classes = append(e.classes, t[1:])
		case ':':
			e.pseudo[t[1:]] = true
		}
	}
	for _, ch := range children {
		ch.parent = e
		e.children = append(e.children, ch)
	}
	return e
}

func (e *elem) TagName() string                { return e.tag }
func (e *elem) ID() string                     { return e.id }
func (e *elem) Classes() []string              { return e.classes }
func (e *elem) IsPseudoClassSet(p string) bool { return e.pseudo[p] }
func (e *elem) ChildCount() int                { return len(e.children) }

func (e *elem) HasClass(c string) bool {
	for _, x := range e.classes {
		if x == c {
			return true
		}
	}
	return false
}

func (e *elem) Parent() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *elem) sibling(delta int) dom.Element {
	if e.parent == nil {
		return nil
	}
	for i, ch := range e.parent.children {
		if ch == e {
			if j := i + delta; j >= 0 && j < len(e.parent.children) {
				return e.parent.children[j]
			}
			return nil
		}
	}
	return nil
}

func (e *elem) PreviousSibling() dom.Element { return e.sibling(-1) }
func (e *elem) NextSibling() dom.Element     { return e.sibling(+1) }

// child returns the n-th child, following a path of child indices.
func (e *elem) child(path ...int) *elem {
	for _, i := range path {
		e = e.children[i]
	}
	return e
}

var _ dom.Element = &elem{}
