package rcss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/cssom"
	"github.com/npillmayer/rcss/dom/style/effects"
)

// DecoratorSpecification is a named decorator, declared with
//
//	@decorator header-bg : gradient {
//	    direction: vertical;
//	    start-color: #fff;
//	    stop-color: #ccc;
//	}
//
// The decorator is instanced on first use and then shared.
type DecoratorSpecification struct {
	Name       string
	Type       string
	Properties *style.PropertyDictionary
	Source     style.Source
	decorator  effects.Decorator
	failed     bool
}

func (spec *DecoratorSpecification) params() effects.Params {
	params := make(effects.Params, spec.Properties.Len())
	for _, k := range spec.Properties.Keys() {
		params[k] = spec.Properties.Value(k)
	}
	return params
}

// clone copies a specification, without its instance.
func (spec *DecoratorSpecification) clone() *DecoratorSpecification {
	return &DecoratorSpecification{
		Name:       spec.Name,
		Type:       spec.Type,
		Properties: spec.Properties,
		Source:     spec.Source,
	}
}

func (sheet *StyleSheet) loadDecorator(rule cssom.Rule, src string) {
	name, typ, found := strings.Cut(rule.Selector(), ":")
	name, typ = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(typ))
	if !found || name == "" || typ == "" {
		sheet.diagnose(src, rule.Line(), "skipping @decorator, expected 'name : type'", rule.Selector(), nil)
		return
	}
	if _, ok := sheet.registry.Decorator(typ); !ok {
		sheet.diagnose(src, rule.Line(), "skipping @decorator of unknown type", typ, nil)
		return
	}
	spec := &DecoratorSpecification{
		Name:       name,
		Type:       typ,
		Properties: style.NewPropertyDictionary(),
		Source:     style.Source{File: src, Line: rule.Line()},
	}
	for _, key := range rule.Properties() {
		spec.Properties.Set(key, style.Property{
			Value:  rule.Value(key),
			Source: style.Source{File: src, Line: rule.PropertyLine(key)},
		})
	}
	sheet.decorators[name] = spec
}

// GetDecorator returns the decorator of the given name, or nil. The
// decorator is instanced on first request and shared afterwards.
func (sheet *StyleSheet) GetDecorator(name string) effects.Decorator {
	spec, ok := sheet.decorators[name]
	if !ok {
		return nil
	}
	if spec.decorator == nil && !spec.failed {
		d, err := sheet.instanceDecorator(spec.Type, spec.params())
		if err != nil {
			spec.failed = true
			sheet.diagnose(spec.Source.File, spec.Source.Line, "cannot instance decorator", name, err)
			return nil
		}
		spec.decorator = d
	}
	return spec.decorator
}

// DecoratorSpecification returns the named decorator specification, or nil.
func (sheet *StyleSheet) DecoratorSpecification(name string) *DecoratorSpecification {
	return sheet.decorators[name]
}

func (sheet *StyleSheet) instanceDecorator(typ string, params effects.Params) (effects.Decorator, error) {
	inst, ok := sheet.registry.Decorator(typ)
	if !ok {
		return nil, fmt.Errorf("unknown decorator type %q", typ)
	}
	return inst.InstanceDecorator(params, sheet)
}

// InstanceDecoratorsFromString parses the value of a 'decorator' property
// and instances its decorators. Entries are separated by commas and are
// either the name of a @decorator or a decorator type with shorthand
// arguments:
//
//	decorator: header-bg, gradient( horizontal red blue );
//
// A @decorator name with arguments instances a new decorator, overriding the
// declared properties with the arguments.
// Malformed entries are logged and skipped. sourceFile and line are used
// for diagnostics only.
func (sheet *StyleSheet) InstanceDecoratorsFromString(value string, sourceFile string, line int) effects.DecoratorList {
	list := effects.DecoratorList{}
	for _, e := range splitEntries(value) {
		d, err := sheet.decoratorEntry(e)
		if err != nil {
			sheet.diagnose(sourceFile, line, "skipping decorator", e.text, err)
			continue
		}
		list = append(list, d)
	}
	return list
}

func (sheet *StyleSheet) decoratorEntry(e entry) (effects.Decorator, error) {
	if e.err != nil {
		return nil, e.err
	}
	name, args, hasArgs, err := parseEntry(e.text)
	if err != nil {
		return nil, err
	}
	if spec, ok := sheet.decorators[name]; ok {
		if !hasArgs {
			if d := sheet.GetDecorator(name); d != nil {
				return d, nil
			}
			return nil, fmt.Errorf("decorator %q failed to instance", name)
		}
		inst, ok := sheet.registry.Decorator(spec.Type)
		if !ok {
			return nil, fmt.Errorf("unknown decorator type %q", spec.Type)
		}
		params, err := effects.ParseShorthand(inst.Shorthand(), args, spec.params())
		if err != nil {
			return nil, err
		}
		return inst.InstanceDecorator(params, sheet)
	}
	inst, ok := sheet.registry.Decorator(name)
	if !ok {
		return nil, fmt.Errorf("unknown decorator %q", name)
	}
	params, err := effects.ParseShorthand(inst.Shorthand(), args, nil)
	if err != nil {
		return nil, err
	}
	return inst.InstanceDecorator(params, sheet)
}

// InstanceFontEffectsFromString parses the value of a 'font-effect' property
// and instances its font-effects, e.g.
//
//	font-effect: shadow( 2px 2px black ), outline( 1px white );
//
// Malformed entries are logged and skipped.
func (sheet *StyleSheet) InstanceFontEffectsFromString(value string, sourceFile string, line int) effects.FontEffectList {
	list := effects.FontEffectList{}
	for _, e := range splitEntries(value) {
		fx, err := sheet.fontEffectEntry(e)
		if err != nil {
			sheet.diagnose(sourceFile, line, "skipping font-effect", e.text, err)
			continue
		}
		list = append(list, fx)
	}
	return list
}

func (sheet *StyleSheet) fontEffectEntry(e entry) (effects.FontEffect, error) {
	if e.err != nil {
		return nil, e.err
	}
	name, args, _, err := parseEntry(e.text)
	if err != nil {
		return nil, err
	}
	inst, ok := sheet.registry.FontEffect(name)
	if !ok {
		return nil, fmt.Errorf("unknown font-effect %q", name)
	}
	params, err := effects.ParseShorthand(inst.Shorthand(), args, nil)
	if err != nil {
		return nil, err
	}
	return inst.InstanceFontEffect(params)
}

// --- Entry scanner ---------------------------------------------------------

type entry struct {
	text string
	err  error
}

var (
	errUnterminated = errors.New("missing ')'")
	errUnbalanced   = errors.New("unbalanced ')'")
)

// splitEntries splits a property value at top-level commas. An entry with
// unbalanced parentheses is reported as an error; scanning resumes after
// the first comma within its parentheses.
func splitEntries(value string) []entry {
	if v := strings.TrimSpace(value); v == "" || strings.EqualFold(v, "none") {
		return nil
	}
	var entries []entry
	for start := 0; start <= len(value); {
		depth, resume, unbalanced := 0, -1, false
		i := start
	scan:
		for ; i < len(value); i++ {
			switch value[i] {
			case '(':
				depth++
			case ')':
				if depth == 0 {
					unbalanced = true
				} else {
					depth--
				}
			case ',':
				if depth == 0 {
					break scan
				}
				if depth == 1 && resume < 0 {
					resume = i
				}
			}
		}
		switch {
		case depth > 0:
			if resume < 0 {
				entries = append(entries, entry{text: strings.TrimSpace(value[start:]), err: errUnterminated})
				return entries
			}
			entries = append(entries, entry{text: strings.TrimSpace(value[start:resume]), err: errUnterminated})
			start = resume + 1
			continue
		case unbalanced:
			entries = append(entries, entry{text: strings.TrimSpace(value[start:i]), err: errUnbalanced})
		default:
			if text := strings.TrimSpace(value[start:i]); text != "" {
				entries = append(entries, entry{text: text})
			}
		}
		start = i + 1
	}
	return entries
}

// parseEntry splits 'name' or 'name( args )'.
func parseEntry(text string) (name, args string, hasArgs bool, err error) {
	name = text
	if open := strings.IndexByte(text, '('); open >= 0 {
		if !strings.HasSuffix(text, ")") {
			return "", "", false, fmt.Errorf("unexpected text after ')' in %q", text)
		}
		name, args, hasArgs = text[:open], text[open+1:len(text)-1], true
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", false, fmt.Errorf("missing name in %q", text)
	}
	for i := 0; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return "", "", false, fmt.Errorf("invalid name %q", name)
		}
	}
	return name, args, hasArgs, nil
}
