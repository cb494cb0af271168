package rcss

import (
	"strings"
	"testing"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/effects"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func load(t *testing.T, css string, opts ...Option) *StyleSheet {
	t.Helper()
	sheet := NewStyleSheet(opts...)
	require.NoError(t, sheet.LoadStyleSheet(strings.NewReader(css), "test.rcss"))
	return sheet
}

func observed() (Option, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return WithLogger(zap.New(core)), logs
}

func TestClassBeatsTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, "p {color: red;} .big {color: blue;}")
	sheet.BuildNodeIndexAndOptimizeProperties()
	def := sheet.GetElementDefinition(el("p", ".big"))
	defer def.Release()
	assert.Equal(t, "blue", def.Value("color").String())
	p, _ := def.Property("color")
	assert.Equal(t, ClassWeight, p.Specificity.Selector)
	assert.Equal(t, 1, p.Specificity.Order)
	// reversed source order does not change the outcome
	sheet = load(t, ".big {color: blue;} p {color: red;}")
	sheet.BuildNodeIndexAndOptimizeProperties()
	assert.Equal(t, "blue", sheet.GetElementDefinition(el("p", ".big")).Value("color").String())
}

func TestSourceOrderAndImportant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, `
		p { color: red; width: 10px !important; }
		p { color: green; width: 20px; }
		#x { width: 30px; }
		div, p { margin: 1px 2px; }
	`)
	sheet.BuildNodeIndexAndOptimizeProperties()
	def := sheet.GetElementDefinition(el("p", "#x"))
	assert.Equal(t, "green", def.Value("color").String(), "later rule wins on equal weight")
	assert.Equal(t, "10px", def.Value("width").String(), "important beats id")
	assert.Equal(t, "2px", def.Value("margin-left").String(), "shorthand expanded")
	assert.Equal(t, 4, sheet.SpecificityOffset(), "one position per rule")
	p, _ := def.Property("color")
	assert.Equal(t, "test.rcss", p.Source.File)
	assert.Equal(t, 3, p.Source.Line)
}

func TestCombinators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, `
		section > div p { x: child-desc; }
		h1 + p { y: adjacent; }
		h1 ~ p { z: general; }
	`)
	sheet.BuildNodeIndexAndOptimizeProperties()
	// the closest div is not a child of section, an outer one is: needs backtracking
	doc := el("section", "",
		el("div", "",
			el("div", "",
				el("h1", ""),
				el("p", ""),
				el("span", ""),
				el("p", ""),
			),
		),
	)
	p1, p2 := doc.child(0, 0, 1), doc.child(0, 0, 3)
	d1 := sheet.GetElementDefinition(p1)
	assert.Equal(t, "child-desc", d1.Value("x").String())
	assert.Equal(t, "adjacent", d1.Value("y").String())
	assert.Equal(t, "general", d1.Value("z").String())
	d2 := sheet.GetElementDefinition(p2)
	assert.Equal(t, "child-desc", d2.Value("x").String())
	assert.True(t, d2.Value("y").IsEmpty(), "p2 is not adjacent to h1")
	assert.Equal(t, "general", d2.Value("z").String())
	lone := sheet.GetElementDefinition(el("div", "", el("p", "")).child(0))
	assert.True(t, lone.IsEmpty())
}

func TestStructuralPseudoClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, `
		li:first-child { a: first; }
		li:last-child { b: last; }
		li:nth-child(odd) { c: odd; }
		li:nth-last-child(2) { d: second-last; }
		b:first-of-type { e: first-b; }
		b:only-of-type { f: only-b; }
		li:empty { g: empty; }
		ul:only-child { h: only; }
		:root { i: root; }
	`)
	sheet.BuildNodeIndexAndOptimizeProperties()
	doc := el("div", "", el("ul", "",
		el("li", ""), el("li", "", el("b", "")), el("li", "", el("i", ""), el("b", ""), el("b", "")), el("li", ""),
	))
	ul := doc.child(0)
	v := func(e *elem, key string) string {
		return sheet.GetElementDefinition(e).Value(key).String()
	}
	assert.Equal(t, "first", v(ul.child(0), "a"))
	assert.Equal(t, "", v(ul.child(1), "a"))
	assert.Equal(t, "last", v(ul.child(3), "b"))
	assert.Equal(t, "odd", v(ul.child(2), "c"))
	assert.Equal(t, "", v(ul.child(1), "c"))
	assert.Equal(t, "second-last", v(ul.child(2), "d"))
	assert.Equal(t, "first-b", v(ul.child(2, 1), "e"), "first b, though not first child")
	assert.Equal(t, "", v(ul.child(2, 2), "e"))
	assert.Equal(t, "only-b", v(ul.child(1, 0), "f"))
	assert.Equal(t, "", v(ul.child(2, 1), "f"))
	assert.Equal(t, "empty", v(ul.child(0), "g"))
	assert.Equal(t, "", v(ul.child(1), "g"))
	assert.Equal(t, "only", v(ul, "h"))
	assert.Equal(t, "root", v(doc, "i"))
	assert.Equal(t, "", v(ul, "i"))
}

func TestDynamicPseudoClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, `
		button { color: grey; }
		button:hover { color: white; }
		button:hover:active { color: black; }
		div:selected span { color: red; }
	`)
	sheet.BuildNodeIndexAndOptimizeProperties()
	assert.Equal(t, "grey", sheet.GetElementDefinition(el("button", "")).Value("color").String())
	assert.Equal(t, "white", sheet.GetElementDefinition(el("button", ":hover")).Value("color").String())
	assert.Equal(t, "black", sheet.GetElementDefinition(el("button", ":active:hover")).Value("color").String())
	assert.True(t, sheet.HasPseudoClassRules(el("button", ""), "active"))
	assert.False(t, sheet.HasPseudoClassRules(el("button", ""), "focus"))
	assert.True(t, sheet.HasPseudoClassRules(el("div", ""), "selected"), "intermediate steps count")
	assert.False(t, sheet.HasPseudoClassRules(el("span", ""), "selected"))
	doc := el("div", ":selected", el("span", ""))
	assert.Equal(t, "red", sheet.GetElementDefinition(doc.child(0)).Value("color").String())
}

func TestDefinitionCacheIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, "p { color: red; } .big { color: blue; }")
	sheet.BuildNodeIndexAndOptimizeProperties()
	doc := el("div", "", el("p", ".big"), el("p", ".big#other"), el("p", ""))
	d1 := sheet.GetElementDefinition(doc.child(0))
	d2 := sheet.GetElementDefinition(doc.child(1))
	d3 := sheet.GetElementDefinition(doc.child(2))
	assert.Same(t, d1, d2, "identical node sets share a definition")
	assert.NotSame(t, d1, d3)
	assert.Equal(t, 3, d1.RefCount(), "cache plus two callers")
	assert.Equal(t, 2, sheet.CachedDefinitions())
	//
	empty := sheet.GetElementDefinition(el("span", ""))
	require.NotNil(t, empty)
	assert.True(t, empty.IsEmpty())
	assert.Same(t, empty, sheet.GetElementDefinition(el("em", "")), "empty node set is cached, too")
	//
	assert.False(t, d1.Release())
	sheet.Release()
	assert.Equal(t, "blue", d2.Value("color").String(), "caller references survive the cache")
	assert.True(t, d2.Release())
	assert.True(t, d2.IsEmpty(), "destroyed")
	assert.Panics(t, func() { d2.Release() })
}

func TestCacheCollisions(t *testing.T) {
	c := newDefinitionCache()
	a := newElementDefinition(style.NewPropertyDictionary(), []NodeHandle{1, 2})
	b := newElementDefinition(style.NewPropertyDictionary(), []NodeHandle{3})
	c.insert(42, a.Nodes(), a)
	c.insert(42, b.Nodes(), b)
	found, ok := c.lookup(42, []NodeHandle{3})
	require.True(t, ok)
	assert.Same(t, b, found)
	_, ok = c.lookup(42, []NodeHandle{1})
	assert.False(t, ok)
	assert.NotEqual(t, hashNodes([]NodeHandle{1, 2}), hashNodes([]NodeHandle{2, 1}))
	c.clear()
	assert.Equal(t, 0, a.RefCount())
}

func TestUnbuiltSheetPanics(t *testing.T) {
	sheet := load(t, "p { color: red; }")
	assert.Panics(t, func() { sheet.GetElementDefinition(el("p", "")) })
	sheet.BuildNodeIndexAndOptimizeProperties()
	assert.NotPanics(t, func() { sheet.GetElementDefinition(el("p", "")) })
	require.NoError(t, sheet.LoadStyleSheet(strings.NewReader("div {}"), "more.rcss"))
	assert.False(t, sheet.IsBuilt(), "loading invalidates the build")
}

func TestReloadInvalidatesDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, "p {color: red;}")
	sheet.BuildNodeIndexAndOptimizeProperties()
	first := sheet.GetElementDefinition(el("p", ""))
	assert.Equal(t, "red", first.Value("color").String())
	assert.Equal(t, 1, sheet.CachedDefinitions())
	//
	require.NoError(t, sheet.LoadStyleSheet(strings.NewReader("p {color: blue;}"), "more.rcss"))
	assert.Equal(t, 0, sheet.CachedDefinitions(), "loading drops cached definitions")
	assert.Equal(t, 1, first.RefCount(), "only the caller holds the old definition")
	sheet.BuildNodeIndexAndOptimizeProperties()
	second := sheet.GetElementDefinition(el("p", ""))
	assert.NotSame(t, first, second)
	assert.Equal(t, "blue", second.Value("color").String())
	assert.Equal(t, first.Nodes(), second.Nodes(), "same rule node, cascaded in place")
	assert.Equal(t, "red", first.Value("color").String(), "old definition keeps its properties")
	assert.True(t, first.Release())
	assert.False(t, second.Release())
}

func TestReleaseThenRestyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, "p {color: red;} .big {margin-top: 2px;}")
	sheet.BuildNodeIndexAndOptimizeProperties()
	d1 := sheet.GetElementDefinition(el("p", ".big"))
	assert.Equal(t, 2, d1.RefCount())
	sheet.Release()
	assert.Equal(t, 0, sheet.CachedDefinitions())
	assert.Equal(t, 1, d1.RefCount())
	//
	d2 := sheet.GetElementDefinition(el("p", ".big"))
	assert.NotSame(t, d1, d2, "a fresh definition is created")
	assert.Equal(t, 2, d2.RefCount(), "cache plus caller")
	assert.Equal(t, 1, sheet.CachedDefinitions())
	assert.Equal(t, d1.Nodes(), d2.Nodes())
	assert.Equal(t, "red", d1.Value("color").String(), "earlier definition stays valid")
	assert.Equal(t, "2px", d1.Value("margin-top").String())
	assert.Same(t, d2, sheet.GetElementDefinition(el("p", ".big")))
	assert.True(t, d1.Release())
	assert.True(t, d1.IsEmpty())
	assert.False(t, d2.IsEmpty())
}

func TestBuildIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	sheet := load(t, `
		div { decorator: gradient( vertical red blue ); }
		div p { }
		p.x { font-effect: shadow( 1px 1px ); }
	`)
	sheet.BuildNodeIndexAndOptimizeProperties()
	styled, complete := sheet.StyledIndex(), sheet.CompleteIndex()
	p, _ := sheet.Node(sheet.StyledIndex().Lookup("div")[0]).Properties().Get("decorator")
	list := p.Instance.(effects.DecoratorList)
	require.Len(t, list, 1)
	sheet.BuildNodeIndexAndOptimizeProperties()
	assert.Equal(t, styled, sheet.StyledIndex())
	assert.Equal(t, complete, sheet.CompleteIndex())
	p, _ = sheet.Node(sheet.StyledIndex().Lookup("div")[0]).Properties().Get("decorator")
	assert.Same(t, list[0], p.Instance.(effects.DecoratorList)[0], "not instanced twice")
	//
	assert.Len(t, styled.Lookup("p"), 1, "empty rule 'div p' is not styled")
	assert.Len(t, complete.Lookup("p"), 2)
	assert.Len(t, complete.Lookup(".x"), 1)
	def := sheet.GetElementDefinition(el("p", ".x"))
	require.Len(t, def.FontEffects(), 1)
	assert.Equal(t, "shadow", def.FontEffects()[0].Type())
}

func TestMalformedDecorators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	opt, logs := observed()
	sheet := NewStyleSheet(opt)
	list := sheet.InstanceDecoratorsFromString("invalid-decorator(x, gradient(vertical red blue)", "deco.rcss", 7)
	require.Len(t, list, 1, "well-formed entry after a malformed one")
	assert.Equal(t, "gradient", list[0].Type())
	list = sheet.InstanceDecoratorsFromString("gradient(horizontal red blue), invalid-decorator(x", "deco.rcss", 8)
	require.Len(t, list, 1)
	list = sheet.InstanceDecoratorsFromString("nonsense, image(a.png) junk, gradient(vertical red blue), image(b.png))", "deco.rcss", 9)
	assert.Len(t, list, 1, "only the gradient is well-formed")
	assert.Empty(t, sheet.InstanceDecoratorsFromString("none", "deco.rcss", 10))
	//
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 5)
	first := warnings[0].ContextMap()
	assert.Equal(t, "deco.rcss", first["file"])
	assert.Equal(t, int64(7), first["line"])
	assert.Equal(t, "invalid-decorator(x", first["value"])
	//
	fx := sheet.InstanceFontEffectsFromString("glow(1px 2px), sparkle(3px), outline(2px red)", "fx.rcss", 1)
	require.Len(t, fx, 2)
	assert.Equal(t, "outline", fx[1].Type())
	//
	fx = sheet.InstanceFontEffectsFromString("shadow(10% 1px), outline(auto), blur(0.2em)", "fx.rcss", 2)
	require.Len(t, fx, 1, "lengths relative to a box are rejected")
	assert.Equal(t, "blur", fx[0].Type())
	warnings = logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("skipping font-effect").All()
	require.Len(t, warnings, 3)
	assert.Equal(t, "shadow(10% 1px)", warnings[1].ContextMap()["value"])
	assert.Equal(t, int64(2), warnings[1].ContextMap()["line"])
}

func TestKeyframes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	opt, logs := observed()
	sheet := load(t, `
		@keyframes fade {
			to { opacity: 1; }
			from, 50% { opacity: 0; color: red; }
			150% { opacity: 3; }
		}
		@keyframes nothing { }
	`, opt)
	kf := sheet.GetKeyframes("fade")
	require.NotNil(t, kf)
	require.Len(t, kf.Blocks, 3)
	assert.Equal(t, 0.0, kf.Blocks[0].NormalizedTime)
	assert.Equal(t, 0.5, kf.Blocks[1].NormalizedTime)
	assert.Equal(t, 1.0, kf.Blocks[2].NormalizedTime)
	assert.Equal(t, "1", kf.Blocks[2].Properties.Value("opacity").String())
	assert.Equal(t, []string{"color", "opacity"}, kf.Properties)
	assert.Nil(t, sheet.GetKeyframes("nothing"))
	assert.Nil(t, sheet.GetKeyframes("missing"))
	assert.Equal(t, 1, logs.FilterMessage("skipping keyframe").Len())
}

func TestDecoratorsAndSprites(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	opt, logs := observed()
	sheet := load(t, `
		@spritesheet icons {
			src: url("icons.png");
			ok: 0px 0px 16px 16px;
			close: 16px 0px 16px 16px;
			broken: 1px 2px;
		}
		@spritesheet nosrc { x: 0 0 1 1; }
		@decorator header : gradient {
			direction: vertical;
			start-color: white;
			stop-color: #ccc;
		}
		@decorator check : image { image-src: ok; }
		@decorator weird : ninepatch { }
		h1 { decorator: header, check, header( horizontal ); }
	`, opt)
	sprite := sheet.GetSprite("close")
	require.NotNil(t, sprite)
	assert.Equal(t, 16, sprite.Rect.Min.X)
	assert.Equal(t, "icons.png", sprite.Sheet.Image)
	assert.Nil(t, sheet.GetSprite("broken"))
	assert.Nil(t, sheet.GetSprite("x"), "spritesheet without src is skipped")
	//
	d := sheet.GetDecorator("header")
	require.NotNil(t, d)
	assert.Same(t, d, sheet.GetDecorator("header"), "named decorators are shared")
	assert.True(t, d.(*effects.GradientDecorator).Vertical)
	assert.Nil(t, sheet.GetDecorator("weird"))
	img := sheet.GetDecorator("check").(*effects.ImageDecorator)
	assert.Equal(t, "icons.png", img.Image.Source)
	assert.Equal(t, 16, img.Image.Rect.Dx())
	//
	sheet.BuildNodeIndexAndOptimizeProperties()
	def := sheet.GetElementDefinition(el("h1", ""))
	list := def.Decorators()
	require.Len(t, list, 3)
	assert.Same(t, d, list[0])
	assert.NotSame(t, d, list[2], "inline arguments instance a new decorator")
	assert.False(t, list[2].(*effects.GradientDecorator).Vertical)
	assert.Equal(t, 3, logs.FilterLevelExact(zapcore.WarnLevel).Len(), "broken sprite, nosrc, weird")
}

func TestInvalidSelectorsAreSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.style")
	defer teardown()
	//
	opt, logs := observed()
	sheet := load(t, `
		p::before, a[href], p { color: red; }
		@media screen { p { color: blue; } }
		div { color: green; }
	`, opt)
	assert.Equal(t, []string{"div", "p"}, sheet.Selectors())
	assert.Equal(t, 2, logs.FilterMessage("skipping rule").Len())
	sheet.BuildNodeIndexAndOptimizeProperties()
	assert.Equal(t, "red", sheet.GetElementDefinition(el("p", "")).Value("color").String())
	assert.Equal(t, ErrNoStyleSheet, sheet.LoadCSSOM(nil))
}

func TestDump(t *testing.T) {
	sheet := load(t, "div > p { color: red; } div { margin: 0 }")
	s := sheet.Dump()
	t.Logf("stylesheet =\n%s", s)
	assert.Contains(t, s, "> p")
	assert.Contains(t, s, "color: red")
	assert.Contains(t, sheet.String(), "nodes=2")
}
