package effects

import (
	"image"
	"testing"

	"github.com/npillmayer/rcss/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sprites map[string]image.Rectangle

func (s sprites) Sprite(name string) (image.Rectangle, string, bool) {
	r, ok := s[name]
	return r, "atlas.png", ok
}

func TestShorthand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	base := Params{"direction": "horizontal", "start-color": "red"}
	params, err := ParseShorthand([]string{"direction", "start-color", "stop-color"},
		"  vertical rgba(0, 0, 0, 0.5)  ", base)
	require.NoError(t, err)
	assert.Equal(t, "vertical", params["direction"].String())
	assert.Equal(t, "rgba(0, 0, 0, 0.5)", params["start-color"].String())
	assert.Equal(t, "horizontal", base["direction"].String(), "base must not be modified")
	_, err = ParseShorthand([]string{"a"}, "x y", nil)
	assert.Error(t, err)
	_, err = ParseShorthand([]string{"a"}, "rgb(1,2", nil)
	assert.Error(t, err)
	params, err = ParseShorthand([]string{"a", "b"}, `"my image.png" b`, nil)
	require.NoError(t, err)
	assert.Equal(t, `"my image.png"`, params["a"].String())
}

func TestRegistryBuiltins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	r := NewRegistry()
	assert.Equal(t, []string{"gradient", "image", "tiled-horizontal", "tiled-vertical"}, r.DecoratorTypes())
	for _, typ := range []string{"shadow", "outline", "glow", "blur"} {
		_, ok := r.FontEffect(typ)
		assert.True(t, ok, "font-effect %s", typ)
	}
	_, ok := r.Decorator("GRADIENT")
	assert.True(t, ok, "type names are case-insensitive")
	_, ok = r.Decorator("ninepatch")
	assert.False(t, ok)
}

func TestImageDecorator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	r := NewRegistry()
	inst, _ := r.Decorator("image")
	ctx := sprites{"icon": image.Rect(0, 0, 16, 16)}
	d, err := inst.InstanceDecorator(Params{"image-src": "icon"}, ctx)
	require.NoError(t, err)
	img := d.(*ImageDecorator)
	assert.Equal(t, "atlas.png", img.Image.Source)
	assert.Equal(t, 16, img.Image.Rect.Dx())
	d, err = inst.InstanceDecorator(Params{"image-src": `url("bg.png")`}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "bg.png", d.(*ImageDecorator).Image.Source)
	_, err = inst.InstanceDecorator(Params{}, ctx)
	assert.Error(t, err)
}

func TestTiledDecorator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	inst, _ := NewRegistry().Decorator("tiled-horizontal")
	params, err := ParseShorthand(inst.Shorthand(), "l.png c.png r.png", nil)
	require.NoError(t, err)
	d, err := inst.InstanceDecorator(params, nil)
	require.NoError(t, err)
	assert.Equal(t, "tiled-horizontal", d.Type())
	assert.Equal(t, "r.png", d.(*TiledDecorator).Tiles[2].Source)
	params, _ = ParseShorthand(inst.Shorthand(), "l.png c.png", nil)
	_, err = inst.InstanceDecorator(params, nil)
	assert.Error(t, err, "missing right image")
}

func TestGradientDecorator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	inst, _ := NewRegistry().Decorator("gradient")
	params, _ := ParseShorthand(inst.Shorthand(), "vertical #ff0000 blue", nil)
	d, err := inst.InstanceDecorator(params, nil)
	require.NoError(t, err)
	g := d.(*GradientDecorator)
	assert.True(t, g.Vertical)
	r, _, _, _ := g.Start.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	params, _ = ParseShorthand(inst.Shorthand(), "diagonal red blue", nil)
	_, err = inst.InstanceDecorator(params, nil)
	assert.Error(t, err)
	params, _ = ParseShorthand(inst.Shorthand(), "horizontal red nocolor", nil)
	_, err = inst.InstanceDecorator(params, nil)
	assert.Error(t, err)
}

func TestFontEffects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	r := NewRegistry()
	inst, _ := r.FontEffect("shadow")
	params, _ := ParseShorthand(inst.Shorthand(), "4px 2pt", nil)
	fx, err := inst.InstanceFontEffect(params)
	require.NoError(t, err)
	e := fx.(*GlyphEffect)
	du, ok := e.OffsetX.Absolute()
	require.True(t, ok)
	assert.Equal(t, 3*dimen.PT, du)
	du, ok = e.OffsetY.Absolute()
	require.True(t, ok)
	assert.Equal(t, 2*dimen.PT, du)
	assert.Equal(t, Back, e.Layer())
	_, _, _, a := e.Color.RGBA()
	assert.Equal(t, uint32(0xffff), a, "default color is opaque black")
	//
	inst, _ = r.FontEffect("glow")
	params, _ = ParseShorthand(inst.Shorthand(), "1px 0.5em", nil)
	fx, err = inst.InstanceFontEffect(params)
	require.NoError(t, err)
	blur := fx.(*GlyphEffect).Blur
	assert.Equal(t, css.KindFontRelative, blur.Kind())
	du, ok = blur.Resolve(12*dimen.PT, 10*dimen.PT)
	require.True(t, ok)
	assert.Equal(t, 6*dimen.PT, du, "0.5em of a 12pt font")
	//
	inst, _ = r.FontEffect("outline")
	params, _ = ParseShorthand(inst.Shorthand(), "wide", nil)
	_, err = inst.InstanceFontEffect(params)
	assert.Error(t, err)
}

func TestFontEffectLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	r := NewRegistry()
	for _, x := range []struct {
		typ, args string
		valid     bool
	}{
		{"outline", "2px white", true},
		{"outline", "0.1em", true},
		{"outline", "auto", false},
		{"outline", "inherit", false},
		{"shadow", "10% 1px", false},
		{"shadow", "1px 2rem red", true},
		{"glow", "1px 2px 3px 50%", false},
		{"blur", "3mm", true},
	} {
		inst, ok := r.FontEffect(x.typ)
		require.True(t, ok)
		params, err := ParseShorthand(inst.Shorthand(), x.args, nil)
		require.NoError(t, err)
		fx, err := inst.InstanceFontEffect(params)
		if x.valid {
			assert.NoError(t, err, "%s(%s)", x.typ, x.args)
			assert.NotNil(t, fx)
		} else {
			assert.Error(t, err, "%s(%s)", x.typ, x.args)
			assert.Nil(t, fx)
		}
	}
}
