package effects

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/npillmayer/rcss/css"
	"github.com/npillmayer/rcss/dom/style"
)

// GlyphEffect is the common representation of the built-in font-effects.
// Unused dimensions are zero.
type GlyphEffect struct {
	Kind    string
	Width   css.DimenT // outline width for outline/glow, blur radius for blur/glow
	Blur    css.DimenT
	OffsetX css.DimenT
	OffsetY css.DimenT
	Color   color.Color
}

// Type is part of interface FontEffect.
func (e *GlyphEffect) Type() string { return e.Kind }

// Layer is part of interface FontEffect. All built-in effects are painted
// behind the glyphs.
func (e *GlyphEffect) Layer() Layer { return Back }

func (e *GlyphEffect) String() string {
	return fmt.Sprintf("%s(w=%v blur=%v offset=%v,%v color=%s)", e.Kind, e.Width, e.Blur,
		e.OffsetX, e.OffsetY, style.ColorString(e.Color))
}

// Glyph effects are sized by fixed or font-relative lengths. There is no box
// for percentages to refer to.
var glyphLength = css.DimenCases[error]{
	Percent: errors.New("percentage not allowed for font-effects"),
	Auto:    errors.New("auto not allowed for font-effects"),
	Inherit: errors.New("inherit not allowed as an effect parameter"),
	Initial: errors.New("initial not allowed as an effect parameter"),
	Default: errors.New("missing length"),
}

// glyphInstancer instances a GlyphEffect from a list of parameter names.
// Missing parameters take their defaults.
type glyphInstancer struct {
	kind     string
	names    []string
	defaults Params
}

func (g glyphInstancer) Shorthand() []string {
	return g.names
}

func (g glyphInstancer) InstanceFontEffect(params Params) (FontEffect, error) {
	e := &GlyphEffect{Kind: g.kind}
	get := func(name string) style.Value {
		if v, ok := params[name]; ok && !v.IsEmpty() {
			return v
		}
		return g.defaults[name]
	}
	for _, name := range g.names {
		v := get(name)
		if name == "color" {
			c, ok := v.Color()
			if !ok {
				return nil, fmt.Errorf("%s: invalid color %q", g.kind, v)
			}
			e.Color = c
			continue
		}
		d, err := css.ParseDimen(v.String())
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", g.kind, name, err)
		}
		if err := css.Select(d, glyphLength); err != nil {
			return nil, fmt.Errorf("%s: %s %q: %w", g.kind, name, v, err)
		}
		switch name {
		case "width", "width-outline":
			e.Width = d
		case "width-blur":
			e.Blur = d
		case "offset-x":
			e.OffsetX = d
		case "offset-y":
			e.OffsetY = d
		}
	}
	tracer().Debugf("effects: instanced font-effect %s", e)
	return e, nil
}

type shadowInstancer struct{}

func (shadowInstancer) Shorthand() []string { return shadow.names }
func (shadowInstancer) InstanceFontEffect(params Params) (FontEffect, error) {
	return shadow.InstanceFontEffect(params)
}

var shadow = glyphInstancer{
	kind:     "shadow",
	names:    []string{"offset-x", "offset-y", "color"},
	defaults: Params{"offset-x": "0", "offset-y": "0", "color": "black"},
}

type outlineInstancer struct{}

func (outlineInstancer) Shorthand() []string { return outline.names }
func (outlineInstancer) InstanceFontEffect(params Params) (FontEffect, error) {
	return outline.InstanceFontEffect(params)
}

var outline = glyphInstancer{
	kind:     "outline",
	names:    []string{"width", "color"},
	defaults: Params{"width": "1px", "color": "black"},
}

type glowInstancer struct{}

func (glowInstancer) Shorthand() []string { return glow.names }
func (glowInstancer) InstanceFontEffect(params Params) (FontEffect, error) {
	return glow.InstanceFontEffect(params)
}

var glow = glyphInstancer{
	kind:     "glow",
	names:    []string{"width-outline", "width-blur", "offset-x", "offset-y", "color"},
	defaults: Params{"width-outline": "0", "width-blur": "1px", "offset-x": "0", "offset-y": "0", "color": "white"},
}

type blurInstancer struct{}

func (blurInstancer) Shorthand() []string { return blur.names }
func (blurInstancer) InstanceFontEffect(params Params) (FontEffect, error) {
	return blur.InstanceFontEffect(params)
}

var blur = glyphInstancer{
	kind:     "blur",
	names:    []string{"width", "color"},
	defaults: Params{"width": "1px", "color": "white"},
}
