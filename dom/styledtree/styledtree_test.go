package styledtree

import (
	"strings"
	"testing"

	"github.com/npillmayer/rcss/dom/style/rcss"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var doc = `<html><head><title>t</title></head><body>
<div id="main" class="box wide">
  <p>first</p> text <p class="big">second</p>
  <span>third</span>
</div>
</body></html>`

func buildDoc(t *testing.T) *StyNode {
	h, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	root, err := Build(h)
	require.NoError(t, err)
	return root
}

func find(root *StyNode, tag string, n int) *StyNode {
	var found *StyNode
	root.Walk(func(sn *StyNode) bool {
		if found == nil && sn.TagName() == tag {
			if n == 0 {
				found = sn
			}
			n--
		}
		return found == nil
	})
	return found
}

func TestBuildElementsOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.dom")
	defer teardown()
	//
	root := buildDoc(t)
	assert.Equal(t, "html", root.TagName())
	assert.Nil(t, root.Parent(), "parent of root must be untyped nil")
	div := find(root, "div", 0)
	require.NotNil(t, div)
	assert.Equal(t, "main", div.ID())
	assert.True(t, div.HasClass("wide"))
	assert.Equal(t, 3, div.ChildCount(), "text nodes are not part of the styled tree")
	p1 := find(root, "p", 0)
	p2 := find(root, "p", 1)
	assert.Nil(t, p1.PreviousSibling())
	assert.Equal(t, p2, p1.NextSibling())
	assert.Equal(t, p1, p2.PreviousSibling())
	assert.Equal(t, div, p2.Parent())
	_, err := Build(&html.Node{Type: html.DocumentNode})
	assert.ErrorIs(t, err, ErrNoElements)
}

func TestPseudoClasses(t *testing.T) {
	root := buildDoc(t)
	div := find(root, "div", 0)
	assert.True(t, div.SetPseudoClass("hover", true))
	assert.False(t, div.SetPseudoClass("hover", true))
	assert.True(t, div.IsPseudoClassSet("hover"))
	assert.Equal(t, []string{"hover"}, div.PseudoClasses())
	assert.True(t, div.SetPseudoClass("hover", false))
	assert.False(t, div.IsPseudoClassSet("hover"))
}

func TestStyleAndInherit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.dom")
	defer teardown()
	//
	sheet := rcss.NewStyleSheet()
	err := sheet.LoadStyleSheet(strings.NewReader(`
		div { color: green; margin: 2px; }
		p { margin-top: inherit; }
		.big { color: blue; }
		div:hover > span { color: red; }
	`), "test.rcss")
	require.NoError(t, err)
	sheet.BuildNodeIndexAndOptimizeProperties()
	root := buildDoc(t)
	Style(root, sheet)
	p1, p2 := find(root, "p", 0), find(root, "p", 1)
	span := find(root, "span", 0)
	assert.Equal(t, "green", GetProperty(p1, "color").String(), "color is inherited")
	assert.Equal(t, "blue", GetProperty(p2, "color").String())
	assert.Equal(t, "2px", GetProperty(p1, "margin-top").String(), "explicit inherit")
	assert.Equal(t, "0", GetProperty(p1, "margin-left").String(), "margins are not inherited")
	assert.Equal(t, "block", GetProperty(p1, "display").String())
	assert.Equal(t, "green", GetProperty(span, "color").String())
	//
	div := find(root, "div", 0)
	require.True(t, sheet.HasPseudoClassRules(div, "hover"))
	div.SetPseudoClass("hover", true)
	Style(div, sheet)
	assert.Equal(t, "red", GetProperty(span, "color").String())
	//
	def := p1.Definition()
	def.AddRef()
	Unstyle(root)
	assert.Nil(t, p1.Definition())
	assert.Equal(t, 2, def.RefCount(), "cache and test hold a reference")
	def.Release()
	sheet.Release()
}

func TestInheritTakesParentValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rcss.dom")
	defer teardown()
	//
	sheet := rcss.NewStyleSheet()
	err := sheet.LoadStyleSheet(strings.NewReader(`
		html { margin-left: 5px; }
		span { margin-left: inherit; display: inherit; }
		div { color: initial; }
		body { color: red; }
		p { padding-top: inherit; }
	`), "test.rcss")
	require.NoError(t, err)
	sheet.BuildNodeIndexAndOptimizeProperties()
	root := buildDoc(t)
	Style(root, sheet)
	defer Unstyle(root)
	span, p := find(root, "span", 0), find(root, "p", 0)
	assert.Equal(t, "5px", GetProperty(find(root, "html", 0), "margin-left").String())
	assert.Equal(t, "0", GetProperty(span, "margin-left").String(),
		"inherit takes the parent's default, not a grandparent's value")
	assert.Equal(t, "block", GetProperty(span, "display").String(), "display of the div")
	assert.Equal(t, "default", GetProperty(p, "color").String(), "initial on the parent stops inheritance")
	assert.Equal(t, "red", GetProperty(find(root, "body", 0), "color").String())
	assert.Equal(t, "0", GetProperty(p, "padding-top").String())
}
