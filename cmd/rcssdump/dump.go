package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/rcss/dom/domdbg"
	"github.com/npillmayer/rcss/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/rcss/dom/style/rcss"
	"github.com/npillmayer/rcss/dom/styledtree"
	"github.com/xlab/treeprint"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

func run(cfg *config, log *zap.Logger, out io.Writer) error {
	var sheet *rcss.StyleSheet
	add := func(next *rcss.StyleSheet) {
		if sheet == nil {
			sheet = next
			return
		}
		sheet = sheet.CombineStyleSheet(next)
	}
	for _, name := range cfg.Sheets {
		next, err := loadSheet(name, log)
		if err != nil {
			return err
		}
		add(next)
	}
	var doc *html.Node
	if cfg.HTML != "" {
		f, err := os.Open(cfg.HTML)
		if err != nil {
			return err
		}
		doc, err = html.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("cannot parse %s: %w", cfg.HTML, err)
		}
		for _, css := range douceuradapter.ExtractStyleElements(doc) {
			next := rcss.NewStyleSheet(rcss.WithLogger(log))
			if err := next.LoadCSSOM(css); err != nil {
				return err
			}
			add(next)
		}
	}
	if sheet == nil {
		sheet = rcss.NewStyleSheet(rcss.WithLogger(log))
	}
	sheet.BuildNodeIndexAndOptimizeProperties()
	log.Info("stylesheet ready", zap.Int("nodes", sheet.NodeCount()),
		zap.Int("offset", sheet.SpecificityOffset()))
	if cfg.Format == "rules" || doc == nil {
		_, err := io.WriteString(out, sheet.Dump())
		return err
	}
	root, err := styledtree.Build(doc)
	if err != nil {
		return err
	}
	styledtree.Style(root, sheet)
	defer styledtree.Unstyle(root)
	log.Info("document styled", zap.Int("definitions", sheet.CachedDefinitions()))
	if cfg.Format == "dot" {
		return domdbg.ToGraphViz(root, out, cfg.Groups)
	}
	t := treeprint.NewWithRoot(cfg.HTML)
	printStyled(t, root)
	_, err = io.WriteString(out, t.String())
	return err
}

func loadSheet(name string, log *zap.Logger) (*rcss.StyleSheet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := rcss.NewStyleSheet(rcss.WithLogger(log))
	if err := sheet.LoadStyleSheet(f, name); err != nil {
		return nil, err
	}
	log.Debug("loaded stylesheet", zap.String("file", name), zap.Int("rules", sheet.SpecificityOffset()))
	return sheet, nil
}

// printStyled adds a styled node and its children to t. Every node shows the
// properties of its element definition.
func printStyled(t treeprint.Tree, sn *styledtree.StyNode) {
	label := elementLabel(sn)
	if def := sn.Definition(); def != nil && !def.IsEmpty() {
		label += " " + def.Properties().String()
	}
	children := sn.Children()
	if len(children) == 0 {
		t.AddNode(label)
		return
	}
	branch := t.AddBranch(label)
	for _, ch := range children {
		printStyled(branch, styledtree.Node(ch))
	}
}

func elementLabel(sn *styledtree.StyNode) string {
	var b strings.Builder
	b.WriteString(sn.TagName())
	if id := sn.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range sn.Classes() {
		b.WriteString("." + c)
	}
	return b.String()
}
