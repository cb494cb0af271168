package rcss

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Combinator connects a selector step to the step on its left.
type Combinator uint8

// Combinators of CSS selectors
const (
	Descendant Combinator = iota // a b
	Child                        // a > b
	Adjacent                     // a + b
	Sibling                      // a ~ b
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case Adjacent:
		return "+"
	case Sibling:
		return "~"
	}
	return " "
}

// Weights of selector tokens. The selector weight of a chain is the sum over
// its steps.
const (
	TagWeight       = 10_000
	ClassWeight     = 100_000 // classes, pseudo-classes and structural pseudo-classes
	IDWeight        = 1_000_000
	ImportantWeight = 100_000_000
)

var errUnsupported = errors.New("unsupported selector")

// structural is a structural pseudo-class, e.g. ':first-child' or
// ':nth-of-type(2n+1)'. For the nth-variants, a and b are the coefficients
// of an+b.
type structural struct {
	name string
	a, b int
}

func (s structural) String() string {
	if !strings.HasPrefix(s.name, "nth-") {
		return ":" + s.name
	}
	var anb string
	switch {
	case s.a == 0:
		anb = strconv.Itoa(s.b)
	case s.b == 0:
		anb = fmt.Sprintf("%dn", s.a)
	case s.b > 0:
		anb = fmt.Sprintf("%dn+%d", s.a, s.b)
	default:
		anb = fmt.Sprintf("%dn%d", s.a, s.b)
	}
	return ":" + s.name + "(" + anb + ")"
}

// step is a compound selector, e.g. 'div#main.big:hover'.
type step struct {
	tag        string // "" for the universal selector
	id         string
	classes    []string // sorted
	pseudos    []string // dynamic pseudo-classes, sorted
	structural []structural
	combinator Combinator // relation to the step on the left
}

// text returns the canonical form of a step, independent of the order of
// its tokens in the source.
func (s *step) text() string {
	var b strings.Builder
	b.WriteString(s.tag)
	if s.id != "" {
		b.WriteString("#" + s.id)
	}
	for _, c := range s.classes {
		b.WriteString("." + c)
	}
	for _, p := range s.pseudos {
		b.WriteString(":" + p)
	}
	for _, st := range s.structural {
		b.WriteString(st.String())
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// key identifies a step among its siblings in the rule tree.
func (s *step) key() string {
	return s.combinator.String() + s.text()
}

func (s *step) weight() int {
	w := 0
	if s.tag != "" {
		w += TagWeight
	}
	if s.id != "" {
		w += IDWeight
	}
	return w + ClassWeight*(len(s.classes)+len(s.pseudos)+len(s.structural))
}

func (s *step) normalize() {
	s.classes = sortedSet(s.classes)
	s.pseudos = sortedSet(s.pseudos)
	sort.Slice(s.structural, func(i, j int) bool {
		return s.structural[i].String() < s.structural[j].String()
	})
}

func sortedSet(l []string) []string {
	if len(l) < 2 {
		return l
	}
	sort.Strings(l)
	j := 1
	for i := 1; i < len(l); i++ {
		if l[i] != l[j-1] {
			l[j] = l[i]
			j++
		}
	}
	return l[:j]
}

// chainText renders a chain of steps as selector text.
func chainText(steps []step) string {
	var b strings.Builder
	for i := range steps {
		if i > 0 {
			if steps[i].combinator == Descendant {
				b.WriteString(" ")
			} else {
				b.WriteString(" " + steps[i].combinator.String() + " ")
			}
		}
		b.WriteString(steps[i].text())
	}
	return b.String()
}

// --- Validation ------------------------------------------------------------

// Pseudo-classes (and legacy single-colon pseudo-elements) cascadia knows
// about. Everything else is a dynamic pseudo-class of the host application.
var cascadiaPseudos = map[string]bool{
	"first-child": true, "last-child": true, "only-child": true, "first-of-type": true,
	"last-of-type": true, "only-of-type": true, "empty": true, "root": true, "link": true,
	"enabled": true, "disabled": true, "checked": true, "visited": true, "hover": true,
	"active": true, "focus": true, "target": true, "input": true,
	"after": true, "before": true, "first-letter": true, "first-line": true,
}

// validateSelector checks the grammar of a selector with cascadia.
// Application specific pseudo-classes are masked as ':hover' first, which
// cascadia accepts.
func validateSelector(sel string) error {
	masked := maskPseudoClasses(sel)
	s, err := cascadia.ParseWithPseudoElement(masked)
	if err != nil {
		return fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	if pe := s.PseudoElement(); pe != "" {
		return fmt.Errorf("%w: pseudo-element %q in %q", errUnsupported, pe, sel)
	}
	return nil
}

func maskPseudoClasses(sel string) string {
	var b strings.Builder
	for i := 0; i < len(sel); {
		if sel[i] != ':' {
			b.WriteByte(sel[i])
			i++
			continue
		}
		if i+1 < len(sel) && sel[i+1] == ':' {
			b.WriteString("::")
			i += 2
			continue
		}
		j := i + 1
		for j < len(sel) && isIdentChar(sel[j]) {
			j++
		}
		name := strings.ToLower(sel[i+1 : j])
		if name == "" || cascadiaPseudos[name] || (j < len(sel) && sel[j] == '(') {
			b.WriteString(sel[i:j])
		} else {
			b.WriteString(":hover")
		}
		i = j
	}
	return b.String()
}

// --- Parsing ---------------------------------------------------------------

// parseSelector decomposes a (single, complex) selector into steps, left to
// right. Attribute selectors, negation and pseudo-elements are not supported.
func parseSelector(sel string) ([]step, error) {
	p := &selectorParser{s: strings.TrimSpace(sel)}
	if p.s == "" {
		return nil, errors.New("empty selector")
	}
	var steps []step
	comb := Descendant
	for {
		st, err := p.compound()
		if err != nil {
			return nil, err
		}
		st.combinator = comb
		st.normalize()
		steps = append(steps, st)
		if p.i >= len(p.s) {
			break
		}
		if comb, err = p.combinator(); err != nil {
			return nil, err
		}
	}
	steps[0].combinator = Descendant
	return steps, nil
}

type selectorParser struct {
	s string
	i int
}

func (p *selectorParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("selector %q, position %d: %s", p.s, p.i, fmt.Sprintf(format, args...))
}

func (p *selectorParser) skipSpace() bool {
	start := p.i
	for p.i < len(p.s) && isSpace(p.s[p.i]) {
		p.i++
	}
	return p.i > start
}

func (p *selectorParser) combinator() (Combinator, error) {
	ws := p.skipSpace()
	if p.i < len(p.s) {
		var c Combinator
		switch p.s[p.i] {
		case '>':
			c = Child
		case '+':
			c = Adjacent
		case '~':
			c = Sibling
		default:
			if !ws {
				return 0, p.errorf("unexpected %q", p.s[p.i])
			}
			return Descendant, nil
		}
		p.i++
		p.skipSpace()
		if p.i >= len(p.s) {
			return 0, p.errorf("dangling combinator %s", c)
		}
		return c, nil
	}
	return Descendant, nil
}

func (p *selectorParser) ident() string {
	start := p.i
	for p.i < len(p.s) && isIdentChar(p.s[p.i]) {
		p.i++
	}
	return p.s[start:p.i]
}

func (p *selectorParser) compound() (step, error) {
	var st step
	start := p.i
	if p.i < len(p.s) && p.s[p.i] == '*' {
		p.i++
	} else {
		st.tag = strings.ToLower(p.ident())
	}
	for p.i < len(p.s) {
		switch c := p.s[p.i]; c {
		case '#':
			p.i++
			id := p.ident()
			if id == "" || (st.id != "" && st.id != id) {
				return st, p.errorf("invalid id")
			}
			st.id = id
		case '.':
			p.i++
			class := p.ident()
			if class == "" {
				return st, p.errorf("missing class name")
			}
			st.classes = append(st.classes, class)
		case ':':
			if err := p.pseudoClass(&st); err != nil {
				return st, err
			}
		case '[':
			return st, fmt.Errorf("%w: attribute selector in %q", errUnsupported, p.s)
		case ' ', '\t', '\n', '\r', '\f', '>', '+', '~':
			if p.i == start {
				return st, p.errorf("missing selector before %q", c)
			}
			return st, nil
		default:
			return st, p.errorf("unexpected %q", c)
		}
	}
	if p.i == start {
		return st, p.errorf("missing selector")
	}
	return st, nil
}

func (p *selectorParser) pseudoClass(st *step) error {
	p.i++ // ':'
	if p.i < len(p.s) && p.s[p.i] == ':' {
		return fmt.Errorf("%w: pseudo-element in %q", errUnsupported, p.s)
	}
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("missing pseudo-class")
	}
	if p.i < len(p.s) && p.s[p.i] == '(' {
		end := strings.IndexByte(p.s[p.i:], ')')
		if end < 0 {
			return p.errorf("unterminated argument of :%s", name)
		}
		arg := p.s[p.i+1 : p.i+end]
		p.i += end + 1
		switch name {
		case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
			a, b, err := parseNth(arg)
			if err != nil {
				return p.errorf("%v", err)
			}
			st.structural = append(st.structural, structural{name: name, a: a, b: b})
			return nil
		}
		return fmt.Errorf("%w: :%s() in %q", errUnsupported, name, p.s)
	}
	switch name {
	case "first-child", "last-child", "only-child", "first-of-type", "last-of-type",
		"only-of-type", "empty", "root":
		st.structural = append(st.structural, structural{name: name})
	default:
		st.pseudos = append(st.pseudos, name)
	}
	return nil
}

// parseNth parses the an+b notation, including the keywords 'odd' and 'even'.
func parseNth(arg string) (a, b int, err error) {
	s := strings.ToLower(strings.Join(strings.Fields(arg), ""))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, errors.New("empty an+b")
	}
	n := strings.IndexByte(s, 'n')
	if n < 0 {
		b, err = strconv.Atoi(s)
		return 0, b, err
	}
	switch lead := s[:n]; lead {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		if a, err = strconv.Atoi(lead); err != nil {
			return 0, 0, fmt.Errorf("invalid an+b %q", arg)
		}
	}
	if rest := s[n+1:]; rest != "" {
		if rest[0] != '+' && rest[0] != '-' {
			return 0, 0, fmt.Errorf("invalid an+b %q", arg)
		}
		if b, err = strconv.Atoi(rest); err != nil {
			return 0, 0, fmt.Errorf("invalid an+b %q", arg)
		}
	}
	return a, b, nil
}

// nthMatches is true if position i (1-based) is a member of an+b, n ≥ 0.
func nthMatches(a, b, i int) bool {
	if a == 0 {
		return i == b
	}
	d := i - b
	return d%a == 0 && d/a >= 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
