/*
Package domdbg implements helpers to debug a styled tree.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/styledtree"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
}

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGColor,
	style.PGDecor,
}

// propertyGroup is the set of properties of one group, as set by the
// element definition of a styled node.
type propertyGroup struct {
	ID         string
	Name       string
	Properties []style.KeyValue
}

// ToGraphViz outputs a diagram for a styled tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the tree, a Writer, and an optional list of style parameter groups.
// The diagram will include all properties of the nodes' element
// definitions belonging to one of the parameter groups.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//   - Margins
//   - Padding
//   - Border
//   - Color
//   - Decor
func ToGraphViz(root *styledtree.StyNode, w io.Writer, styleGroups []string) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"label": nodeLabel,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*styledtree.StyNode]string, 1024)
	if err = nodes(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a styled node and a testing.T, it will
// create a Graphiviz image of the tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(root *styledtree.StyNode, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "styled.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing styled tree digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(root, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing styled tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *styledtree.StyNode
	Name string
}

func nodes(sn *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string, gparams *graphParamsType) error {
	if err := domNode(sn, w, dict, gparams); err != nil {
		return err
	}
	for _, ch := range sn.Children() {
		child := styledtree.Node(ch)
		if err := nodes(child, w, dict, gparams); err != nil {
			return err
		}
		e := edge{node{sn, dict[sn]}, node{child, dict[child]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func domNode(sn *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string, gparams *graphParamsType) error {
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[sn] = name
	if err := gparams.NodeTmpl.Execute(w, &node{sn, name}); err != nil {
		return err
	}
	var prev *propertyGroup
	for _, pg := range groups(sn, name, gparams.StyleGroups) {
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		var err error
		if prev == nil {
			err = gparams.PgedgeTmpl.Execute(w, pgedge{name, pg})
		} else {
			err = gparams.PgpgTmpl.Execute(w, []*propertyGroup{prev, pg})
		}
		if err != nil {
			return err
		}
		prev = pg
	}
	return nil
}

// groups collects the locally defined properties of sn by group, in the
// order of names. Empty groups are left out.
func groups(sn *styledtree.StyNode, nodename string, names []string) []*propertyGroup {
	def := sn.Definition()
	if def == nil {
		return nil
	}
	byName := make(map[string]*propertyGroup, len(names))
	for _, n := range names {
		byName[n] = &propertyGroup{ID: nodename + "_" + n, Name: n}
	}
	props := def.Properties()
	for _, k := range props.Keys() {
		if pg := byName[style.GroupNameFromPropertyKey(k)]; pg != nil {
			pg.Properties = append(pg.Properties, style.KeyValue{Key: k, Value: props.Value(k)})
		}
	}
	var pgs []*propertyGroup
	for _, n := range names {
		if pg := byName[n]; len(pg.Properties) > 0 {
			pgs = append(pgs, pg)
		}
	}
	return pgs
}

type edge struct {
	N1, N2 node
}

type pgedge struct {
	Name      string
	PropGroup *propertyGroup
}

// nodeLabel renders a node like a simple selector, e.g. "div#main.box:hover".
func nodeLabel(sn *styledtree.StyNode) string {
	var b strings.Builder
	b.WriteString(sn.TagName())
	if id := sn.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range sn.Classes() {
		b.WriteString("." + c)
	}
	for _, p := range sn.PseudoClasses() {
		b.WriteString(":" + p)
	}
	return fmt.Sprintf("%q", b.String())
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.Definition }}
{{ .Name }}	[ label={{ label .N }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N }} shape=ellipse style=filled fillcolor=grey95 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ .ID }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ .PropGroup.ID }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ (index . 0).ID }} -> {{ (index . 1).ID }} [dir=none weight=1 style="dashed"] ;
`
