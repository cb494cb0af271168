package rcss

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/cssom"
	"github.com/npillmayer/rcss/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/rcss/dom/style/effects"
	"go.uber.org/zap"
)

// ErrNoStyleSheet is returned when loading from a nil source.
var ErrNoStyleSheet = errors.New("rcss: no stylesheet to load")

// StyleSheet is a set of rules, together with the named resources declared
// by at-rules (keyframes, decorators, spritesheets).
//
// A stylesheet is either loaded from CSS text or created by combining two
// stylesheets. It has to be built with BuildNodeIndexAndOptimizeProperties
// before elements can be matched against it.
type StyleSheet struct {
	tree              nodeTree
	specificityOffset int
	keyframes         map[string]*Keyframes
	decorators        map[string]*DecoratorSpecification
	spritesheets      []*Spritesheet
	styledIndex       NodeIndex // nodes with declarations
	completeIndex     NodeIndex // all nodes
	built             bool
	cache             *definitionCache
	log               *zap.Logger
	registry          *effects.Registry
}

// Option configures a stylesheet at creation time.
type Option func(*StyleSheet)

// WithLogger sets the logger for diagnostics about malformed input.
// Stylesheets log nothing by default.
func WithLogger(log *zap.Logger) Option {
	return func(sheet *StyleSheet) {
		if log != nil {
			sheet.log = log.Named("rcss")
		}
	}
}

// WithRegistry sets the registry for decorator and font-effect types.
// The default is a registry with the built-in types of package effects.
func WithRegistry(r *effects.Registry) Option {
	return func(sheet *StyleSheet) {
		if r != nil {
			sheet.registry = r
		}
	}
}

// NewStyleSheet creates an empty stylesheet.
func NewStyleSheet(opts ...Option) *StyleSheet {
	sheet := &StyleSheet{
		tree:       newNodeTree(),
		keyframes:  make(map[string]*Keyframes),
		decorators: make(map[string]*DecoratorSpecification),
		cache:      newDefinitionCache(),
		log:        zap.NewNop(),
	}
	for _, option := range opts {
		option(sheet)
	}
	if sheet.registry == nil {
		sheet.registry = effects.NewRegistry()
	}
	return sheet
}

// derive creates an empty stylesheet sharing the configuration of sheet.
func (sheet *StyleSheet) derive() *StyleSheet {
	return NewStyleSheet(func(s *StyleSheet) {
		s.log = sheet.log
		s.registry = sheet.registry
	})
}

// LoadStyleSheet reads CSS text from r and adds its rules to the stylesheet.
// sourceFile names the origin of the text for diagnostics.
// If the text cannot be parsed, an error is returned and nothing is loaded.
// Malformed rules within parseable text are skipped with a diagnostic.
func (sheet *StyleSheet) LoadStyleSheet(r io.Reader, sourceFile string) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("rcss: cannot read stylesheet %s: %w", sourceFile, err)
	}
	css, err := douceuradapter.Parse(string(text), sourceFile)
	if err != nil {
		return fmt.Errorf("rcss: %w", err)
	}
	return sheet.LoadCSSOM(css)
}

// LoadCSSOM adds the rules of a parsed stylesheet.
//
// Every qualified rule takes one position in the source order, whatever the
// number of its selectors. Loading invalidates a previous build and drops
// the cached element definitions, as declarations may cascade into nodes the
// cached definitions have been merged from. Definitions held by callers stay
// valid but keep their old properties.
func (sheet *StyleSheet) LoadCSSOM(css cssom.StyleSheet) error {
	if css == nil {
		return ErrNoStyleSheet
	}
	src := css.Source()
	tracer().Debugf("rcss: loading %d rules from %s", len(css.Rules()), src)
	for _, rule := range css.Rules() {
		switch kw := rule.AtKeyword(); kw {
		case "":
			sheet.loadRule(rule, src)
		case "keyframes":
			sheet.loadKeyframes(rule, src)
		case "decorator":
			sheet.loadDecorator(rule, src)
		case "spritesheet":
			sheet.loadSpritesheet(rule, src)
		default:
			tracer().Debugf("rcss: %s:%d: ignoring @%s", src, rule.Line(), kw)
		}
	}
	sheet.cache.clear()
	sheet.built = false
	return nil
}

func (sheet *StyleSheet) loadRule(rule cssom.Rule, src string) {
	order := sheet.specificityOffset
	sheet.specificityOffset++
	var decls []declaration
	for _, key := range rule.Properties() {
		decls = append(decls, sheet.declarations(rule, key, src)...)
	}
	for _, sel := range rule.Selectors() {
		if err := validateSelector(sel); err != nil {
			sheet.diagnose(src, rule.Line(), "skipping rule", sel, err)
			continue
		}
		steps, err := parseSelector(sel)
		if err != nil {
			sheet.diagnose(src, rule.Line(), "skipping rule", sel, err)
			continue
		}
		h := sheet.tree.insertChain(steps)
		n := sheet.tree.node(h)
		for _, d := range decls {
			p := d.prop
			p.Specificity = style.Specificity{Selector: n.weight, Order: order}
			if p.Important {
				p.Specificity.Selector += ImportantWeight
			}
			n.properties.Cascade(d.key, p)
		}
	}
}

type declaration struct {
	key  string
	prop style.Property
}

// declarations returns the declaration(s) of a rule for key, with
// shorthands expanded.
func (sheet *StyleSheet) declarations(rule cssom.Rule, key, src string) []declaration {
	value := rule.Value(key)
	p := style.Property{
		Value:     value,
		Important: rule.IsImportant(key),
		Source:    style.Source{File: src, Line: rule.PropertyLine(key)},
	}
	if !style.IsCompoundProperty(key) {
		return []declaration{{key: key, prop: p}}
	}
	kvs, err := style.SplitCompoundProperty(key, value)
	if err != nil {
		sheet.diagnose(src, p.Source.Line, "skipping declaration", key+": "+value.String(), err)
		return nil
	}
	decls := make([]declaration, len(kvs))
	for i, kv := range kvs {
		p.Value = kv.Value
		decls[i] = declaration{key: kv.Key, prop: p}
	}
	return decls
}

// diagnose reports malformed input.
func (sheet *StyleSheet) diagnose(file string, line int, msg string, value string, err error) {
	fields := []zap.Field{zap.String("file", file), zap.Int("line", line), zap.String("value", value)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sheet.log.Warn(msg, fields...)
}

// --- Queries ---------------------------------------------------------------

// SpecificityOffset returns the number of source positions taken by the
// rules of this stylesheet, including the rules of combined stylesheets.
func (sheet *StyleSheet) SpecificityOffset() int {
	return sheet.specificityOffset
}

// IsBuilt is true after BuildNodeIndexAndOptimizeProperties, until new
// rules are loaded.
func (sheet *StyleSheet) IsBuilt() bool {
	return sheet.built
}

// NodeCount returns the number of rule nodes, excluding the root.
func (sheet *StyleSheet) NodeCount() int {
	return len(sheet.tree.nodes) - 1
}

// Node returns the rule node for a handle, or nil.
func (sheet *StyleSheet) Node(h NodeHandle) *StyleSheetNode {
	if h < 0 || int(h) >= len(sheet.tree.nodes) {
		return nil
	}
	return sheet.tree.node(h)
}

// Selector returns the canonical selector text of the chain ending in h.
func (sheet *StyleSheet) Selector(h NodeHandle) string {
	return chainText(sheet.tree.chain(h))
}

// Selectors returns the canonical texts of all selector chains in the
// stylesheet, sorted. Every prefix of a chain is a chain of its own.
func (sheet *StyleSheet) Selectors() []string {
	var sels []string
	sheet.tree.walk(rootNode, func(h NodeHandle, _ *StyleSheetNode) {
		if h != rootNode {
			sels = append(sels, sheet.Selector(h))
		}
	})
	sort.Strings(sels)
	return sels
}

// CachedDefinitions returns the number of element definitions in the cache.
func (sheet *StyleSheet) CachedDefinitions() int {
	return sheet.cache.size
}

// Release drops the references the definition cache holds. Definitions
// handed out to clients stay valid until they are released.
func (sheet *StyleSheet) Release() {
	sheet.cache.clear()
}

func (sheet *StyleSheet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "StyleSheet{nodes=%d offset=%d", sheet.NodeCount(), sheet.specificityOffset)
	fmt.Fprintf(&b, " keyframes=%d decorators=%d spritesheets=%d}", len(sheet.keyframes),
		len(sheet.decorators), len(sheet.spritesheets))
	return b.String()
}
