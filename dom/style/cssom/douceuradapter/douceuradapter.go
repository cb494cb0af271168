/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet,
using the douceur CSS parser as the front-end.

Douceur does not report source positions. We re-scan the CSS text with
douceur's own tokenizer (gorilla/css) to recover the line numbers of rules
and declarations; these are used for diagnostics only.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'rcss.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("rcss.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
type CSSStyles struct {
	css    css.Stylesheet
	source string
	lines  []*ruleLines // parallel to css.Rules; may be shorter
}

// Parse parses CSS text into a stylesheet. source names the origin of the
// text and is reported with diagnostics.
func Parse(text string, source string) (*CSSStyles, error) {
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse stylesheet %s: %w", source, err)
	}
	sheet := Wrap(c)
	sheet.source = source
	sheet.lines = locate(text)
	if len(sheet.lines) != len(c.Rules) {
		tracer().Debugf("%s: located %d rules, parser found %d", source, len(sheet.lines), len(c.Rules))
	}
	return sheet, nil
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper. Source lines are unknown
// for wrapped stylesheets.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{css: *css}
	return sheet
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Source returns the origin of the stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Source() string {
	return sheet.source
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	othercss := other.(*CSSStyles)
	// line info has to stay parallel to the rules
	for len(sheet.lines) < len(sheet.css.Rules) {
		sheet.lines = append(sheet.lines, nil)
	}
	for i, r := range othercss.css.Rules { // append every rule from other
		sheet.css.Rules = append(sheet.css.Rules, r)
		sheet.lines = append(sheet.lines, othercss.lineInfo(i))
	}
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, len(sheet.css.Rules))
	for i, r := range sheet.css.Rules {
		rules[i] = Rule{rule: r, loc: sheet.lineInfo(i)}
	}
	return rules
}

func (sheet *CSSStyles) lineInfo(i int) *ruleLines {
	if i < len(sheet.lines) {
		return sheet.lines[i]
	}
	return nil
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule struct {
	rule *css.Rule
	loc  *ruleLines
}

// AtKeyword returns the name of an at-rule, without '@' and in lower case.
// For qualified rules it returns the empty string.
func (r Rule) AtKeyword() string {
	if r.rule.Kind != css.AtRule {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(r.rule.Name), "@")
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.rule.Prelude
}

// Selectors returns the comma-separated parts of the prelude.
func (r Rule) Selectors() []string {
	parts := r.rule.Selectors
	if r.rule.Kind == css.AtRule || len(parts) == 0 {
		parts = strings.Split(r.rule.Prelude, ",")
	}
	sels := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			sels = append(sels, s)
		}
	}
	return sels
}

// Properties returns the property keys of a rule in source order,
// e.g. "margin-top". Keys occuring more than once are reported once.
func (r Rule) Properties() []string {
	decl := r.rule.Declarations
	props := make([]string, 0, len(decl))
	seen := make(map[string]bool, len(decl))
	for _, d := range decl {
		key := strings.ToLower(strings.TrimSpace(d.Property))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		props = append(props, key)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px".
// If a key is declared more than once, the last declaration wins.
func (r Rule) Value(key string) style.Value {
	if d := r.declaration(key); d != nil {
		return style.Value(strings.TrimSpace(d.Value))
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.declaration(key); d != nil {
		return d.Important
	}
	return false
}

func (r Rule) declaration(key string) *css.Declaration {
	decl := r.rule.Declarations
	for i := len(decl) - 1; i >= 0; i-- {
		if strings.EqualFold(strings.TrimSpace(decl[i].Property), key) {
			return decl[i]
		}
	}
	return nil
}

// Nested returns the rules of a block at-rule, e.g. the keyframe blocks of
// "@keyframes".
func (r Rule) Nested() []cssom.Rule {
	nested := make([]cssom.Rule, len(r.rule.Rules))
	for i, n := range r.rule.Rules {
		var loc *ruleLines
		if r.loc != nil && i < len(r.loc.nested) {
			loc = r.loc.nested[i]
		}
		nested[i] = Rule{rule: n, loc: loc}
	}
	return nested
}

// Line returns the source line of the rule's prelude.
func (r Rule) Line() int {
	if r.loc == nil {
		return 0
	}
	return r.loc.line
}

// PropertyLine returns the source line of the (last) declaration for key.
func (r Rule) PropertyLine(key string) int {
	if r.loc == nil {
		return 0
	}
	if l, ok := r.loc.decls[key]; ok {
		return l
	}
	return r.loc.line
}

var _ cssom.Rule = Rule{}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets. Style elements which fail to parse are
// skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	css := extractStyles(head)
	css = append(css, extractStyles(body)...)
	return css
}

func extractStyles(h *html.Node) []*CSSStyles {
	if h == nil {
		return nil
	}
	var css []*CSSStyles
	n := 0
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom != atom.Style || ch.FirstChild == nil {
			continue
		}
		n++
		c, err := Parse(ch.FirstChild.Data, fmt.Sprintf("<%s><style>#%d", h.Data, n))
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		css = append(css, c)
	}
	return css
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
