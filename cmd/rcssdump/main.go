/*
Command rcssdump loads stylesheets, combines them and applies them to an
HTML document. It prints the rule tree of the combined stylesheet, or the
element definitions of the styled document as a tree or as a GraphViz graph.

	rcssdump base.rcss theme.rcss --html page.html --format tree

Stylesheets are combined from left to right, later sheets taking
precedence. <style> elements of the document come last.

Configuration is read from rcssdump.yaml in the working directory (or the
file given with --config). Environment variables prefixed with RCSS_
override it, e.g. RCSS_LOG_LEVEL=debug.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
