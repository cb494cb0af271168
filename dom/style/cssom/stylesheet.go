package cssom

import "github.com/npillmayer/rcss/dom/style"

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple the front-end (tokenizing and parsing CSS text) from
// the cascade engine, we introduce an interface for parsed stylesheets.
// Clients for the styling engine may provide a concrete implementation of
// this interface (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet, in source order
	Source() string         // origin of the stylesheet, e.g. a file path
}

// Rule is the type stylesheets consists of. A rule is either a qualified
// rule (selectors plus declarations) or an at-rule. At-rules may carry
// declarations (e.g. "@decorator") or nested rules (e.g. "@keyframes").
//
// See interface StyleSheet.
type Rule interface {
	AtKeyword() string           // at-keyword without '@', empty for qualified rules
	Selector() string            // the prelude / selectors of the rule
	Selectors() []string         // comma-separated parts of the prelude
	Properties() []string        // property keys in source order, e.g. "margin-top"
	Value(string) style.Value    // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
	Nested() []Rule              // nested rules of block at-rules
	Line() int                   // source line of the rule, 0 if unknown
	PropertyLine(key string) int // source line of a declaration, 0 if unknown
}
