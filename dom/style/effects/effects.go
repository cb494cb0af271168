/*
Package effects implements decorators and font-effects.

Decorators paint (part of) the background of an element, font-effects paint
behind or in front of glyphs. Both are referenced from stylesheets by type
name, e.g.

	decorator: gradient( vertical #ff000080 #00000000 ), my-named-decorator;
	font-effect: shadow( 2px 2px black );

Types are registered with a Registry, which maps type names to instancers.
Instancing happens once per declaration, after which decorators and
font-effects are immutable and shared by reference.

Painting is not done in this package; clients read the parameters of the
instanced objects.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package effects

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rcss.style'.
func tracer() tracing.Trace {
	return tracing.Select("rcss.style")
}

// Decorator is an instanced decorator.
type Decorator interface {
	Type() string
	String() string
}

// DecoratorList is the instanced value of a 'decorator' property.
type DecoratorList []Decorator

// Layer tells wether a font-effect is drawn behind or in front of the glyphs.
type Layer int8

// Layers for font-effects
const (
	Back Layer = iota
	Front
)

// FontEffect is an instanced font-effect.
type FontEffect interface {
	Type() string
	Layer() Layer
	String() string
}

// FontEffectList is the instanced value of a 'font-effect' property.
type FontEffectList []FontEffect

// Params are the properties a decorator or font-effect is instanced from.
type Params map[string]style.Value

// Context gives instancers access to the resources of a stylesheet.
type Context interface {
	// Sprite looks up a sprite by name, returning its rectangle and the
	// image source of its spritesheet.
	Sprite(name string) (image.Rectangle, string, bool)
}

// DecoratorInstancer creates decorators of one type.
type DecoratorInstancer interface {
	// Shorthand lists the property names which may be given positionally,
	// as in 'gradient( vertical red blue )'.
	Shorthand() []string
	InstanceDecorator(params Params, ctx Context) (Decorator, error)
}

// FontEffectInstancer creates font-effects of one type.
type FontEffectInstancer interface {
	Shorthand() []string
	InstanceFontEffect(params Params) (FontEffect, error)
}

// --- Registry --------------------------------------------------------------

// Registry maps type names to instancers.
// A registry is not safe for concurrent registration; it is expected to be
// set up before stylesheets are loaded.
type Registry struct {
	decorators  map[string]DecoratorInstancer
	fontEffects map[string]FontEffectInstancer
}

// NewRegistry creates a registry, pre-filled with the built-in types
// 'image', 'tiled-horizontal', 'tiled-vertical', 'gradient' (decorators) and
// 'shadow', 'outline', 'glow', 'blur' (font-effects).
func NewRegistry() *Registry {
	r := &Registry{
		decorators:  make(map[string]DecoratorInstancer),
		fontEffects: make(map[string]FontEffectInstancer),
	}
	r.RegisterDecorator("image", imageInstancer{})
	r.RegisterDecorator("tiled-horizontal", tiledInstancer{horizontal: true})
	r.RegisterDecorator("tiled-vertical", tiledInstancer{horizontal: false})
	r.RegisterDecorator("gradient", gradientInstancer{})
	r.RegisterFontEffect("shadow", shadowInstancer{})
	r.RegisterFontEffect("outline", outlineInstancer{})
	r.RegisterFontEffect("glow", glowInstancer{})
	r.RegisterFontEffect("blur", blurInstancer{})
	return r
}

// RegisterDecorator registers (or replaces) a decorator type.
func (r *Registry) RegisterDecorator(typ string, inst DecoratorInstancer) {
	tracer().Debugf("effects: registering decorator type %s", typ)
	r.decorators[strings.ToLower(typ)] = inst
}

// RegisterFontEffect registers (or replaces) a font-effect type.
func (r *Registry) RegisterFontEffect(typ string, inst FontEffectInstancer) {
	tracer().Debugf("effects: registering font-effect type %s", typ)
	r.fontEffects[strings.ToLower(typ)] = inst
}

// Decorator returns the instancer for a decorator type.
func (r *Registry) Decorator(typ string) (DecoratorInstancer, bool) {
	inst, ok := r.decorators[strings.ToLower(typ)]
	return inst, ok
}

// FontEffect returns the instancer for a font-effect type.
func (r *Registry) FontEffect(typ string) (FontEffectInstancer, bool) {
	inst, ok := r.fontEffects[strings.ToLower(typ)]
	return inst, ok
}

// DecoratorTypes lists the registered decorator types, sorted.
func (r *Registry) DecoratorTypes() []string {
	types := make([]string, 0, len(r.decorators))
	for t := range r.decorators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// --- Shorthand -------------------------------------------------------------

// ParseShorthand splits args at white space (outside of parentheses and
// quotes) and assigns the parts positionally to names, on top of base.
// base is not modified. Passing more values than names is an error.
func ParseShorthand(names []string, args string, base Params) (Params, error) {
	params := make(Params, len(names)+len(base))
	for k, v := range base {
		params[k] = v
	}
	values, err := splitArgs(args)
	if err != nil {
		return nil, err
	}
	if len(values) > len(names) {
		tracer().Debugf("effects: shorthand %v cannot take %q", names, args)
		return nil, fmt.Errorf("too many values: expected at most %d, have %d", len(names), len(values))
	}
	for i, v := range values {
		params[names[i]] = style.Value(v)
	}
	return params, nil
}

func splitArgs(args string) ([]string, error) {
	var values []string
	var quote rune
	depth, start := 0, -1
	for i, r := range args {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			continue
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' in %q", args)
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if start >= 0 {
				values = append(values, args[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if quote != 0 || depth != 0 {
		return nil, fmt.Errorf("unterminated value in %q", args)
	}
	if start >= 0 {
		values = append(values, args[start:])
	}
	return values, nil
}

// Unquote strips quotes and a url( … ) wrapper from a value.
func Unquote(v style.Value) string {
	s := strings.TrimSpace(string(v))
	if strings.HasPrefix(strings.ToLower(s), "url(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[4 : len(s)-1])
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}
