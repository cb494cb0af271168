package douceuradapter

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// ruleLines holds the source lines of a rule, its declarations and its
// nested rules.
type ruleLines struct {
	line   int
	decls  map[string]int
	nested []*ruleLines
}

// locate scans CSS text and returns line information for the top-level
// rules, in source order. It mirrors the block structure the parser sees:
// a statement followed by '{' opens a rule, a statement ended by ';' or '}'
// within a block is a declaration, and a statement ended by ';' on top
// level is a block-less at-rule.
func locate(text string) []*ruleLines {
	var top []*ruleLines
	var stack []*ruleLines
	var start *stmt
	s := scanner.New(text)
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		switch tok.Type {
		case scanner.TokenS, scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC:
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				rl := &ruleLines{line: tok.Line, decls: make(map[string]int)}
				if start != nil {
					rl.line = start.line
				}
				if len(stack) == 0 {
					top = append(top, rl)
				} else {
					parent := stack[len(stack)-1]
					parent.nested = append(parent.nested, rl)
				}
				stack = append(stack, rl)
				start = nil
				continue
			case ";":
				if start != nil {
					if len(stack) == 0 {
						top = append(top, &ruleLines{line: start.line, decls: map[string]int{}})
					} else if start.ident != "" {
						stack[len(stack)-1].decls[start.ident] = start.line
					}
				}
				start = nil
				continue
			case "}":
				if len(stack) > 0 {
					if start != nil && start.ident != "" {
						stack[len(stack)-1].decls[start.ident] = start.line
					}
					stack = stack[:len(stack)-1]
				}
				start = nil
				continue
			}
		}
		if start == nil {
			start = &stmt{line: tok.Line}
			if tok.Type == scanner.TokenIdent {
				start.ident = strings.ToLower(tok.Value)
			}
		}
	}
	return top
}

type stmt struct {
	line  int
	ident string
}
