package atomcss

import (
	"fmt"
	"strings"

	"github.com/speedata/css/scanner"
)

// tokenstream is a list of CSS tokens
type tokenstream []*scanner.Token

// Node is one parsed entry of an inline style: either a Declaration
// or a NestedRule.
type Node interface {
	node()
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// NestedRule is a one-level nested block such as ":hover { ... }" or
// "@media (...) { ... }". Selector holds the fragment before the
// opening brace.
type NestedRule struct {
	Selector     string
	Declarations []Declaration
}

func (Declaration) node() {}
func (NestedRule) node()  {}

// IsCustomProperty reports whether the declaration name has the "--"
// custom property prefix.
func (d Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Property, "--")
}

// tokenizeInline scans an inline style string into tokens. Comments
// are dropped during scanning, which is all the comment handling the
// inline grammar gets.
func tokenizeInline(style string) tokenstream {
	var toks tokenstream
	s := scanner.New(style)
	for {
		tok := s.Next()
		if tok.Type == scanner.EOF || tok.Type == scanner.Error {
			break
		}
		switch tok.Type {
		case scanner.Comment, scanner.CDO, scanner.CDC:
			// ignore
		default:
			toks = append(toks, tok)
		}
	}
	return toks
}

// trimSpace removes whitespace tokens from both ends.
func trimSpace(toks tokenstream) tokenstream {
	for len(toks) > 0 && toks[0].Type == scanner.S {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == scanner.S {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// findClosingBrace returns the offset of the first closing brace.
// Nesting deeper than one level is not supported, so the first "}"
// terminates the block. Returns -1 if the block is unterminated.
func findClosingBrace(toks tokenstream) int {
	for i, t := range toks {
		if t.Type == scanner.Delim && t.Value == "}" {
			return i
		}
	}
	return -1
}

func findColon(toks tokenstream) int {
	for i, t := range toks {
		if t.Type == scanner.Delim && t.Value == ":" {
			return i
		}
	}
	return -1
}

// makeDeclaration turns one segment (the tokens between two ";") into
// a Declaration. Empty segments report ok=false and are skipped. A
// segment without a colon or with an empty side is malformed; it is
// repaired with an empty string and reported in warns.
func makeDeclaration(seg tokenstream) (d Declaration, warns []string, ok bool) {
	seg = trimSpace(seg)
	if len(seg) == 0 {
		return d, nil, false
	}
	ci := findColon(seg)
	if ci == -1 {
		d.Property = seg.String()
		warns = append(warns, fmt.Sprintf("malformed declaration %q: missing colon", d.Property))
		return d, warns, true
	}
	d.Property = trimSpace(seg[:ci]).String()
	d.Value = trimSpace(seg[ci+1:]).String()
	if d.Property == "" || d.Value == "" {
		warns = append(warns, fmt.Sprintf("malformed declaration %q: empty property or value", seg.String()))
	}
	return d, warns, true
}

// parseDeclarations splits a declaration-only token run on ";". Used
// for the contents of nested blocks, where further nesting is not
// allowed.
func parseDeclarations(toks tokenstream) ([]Declaration, []string) {
	var decls []Declaration
	var warns []string
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && !(toks[i].Type == scanner.Delim && toks[i].Value == ";") {
			continue
		}
		if d, w, ok := makeDeclaration(toks[start:i]); ok {
			decls = append(decls, d)
			warns = append(warns, w...)
		}
		start = i + 1
	}
	return decls, warns
}

// parseInline parses an inline style string into declarations and
// one-level nested rules, in source order. The trailing ";" is
// optional. Malformed declarations are repaired and reported in the
// returned warnings; an unterminated nested block is a hard error and
// nothing of the style string is usable.
func parseInline(style string) ([]Node, []string, error) {
	toks := tokenizeInline(style)
	var nodes []Node
	var warns []string
	start := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Type != scanner.Delim {
			continue
		}
		switch t.Value {
		case ";":
			if d, w, ok := makeDeclaration(toks[start:i]); ok {
				nodes = append(nodes, d)
				warns = append(warns, w...)
			}
			start = i + 1
		case "{":
			selector := trimSpace(toks[start:i]).String()
			end := findClosingBrace(toks[i+1:])
			if end == -1 {
				return nil, warns, fmt.Errorf("unterminated block after %q", selector)
			}
			decls, w := parseDeclarations(toks[i+1 : i+1+end])
			warns = append(warns, w...)
			nodes = append(nodes, NestedRule{Selector: selector, Declarations: decls})
			start = i + 1 + end + 1
			i = i + 1 + end
		}
	}
	if d, w, ok := makeDeclaration(toks[start:]); ok {
		nodes = append(nodes, d)
		warns = append(warns, w...)
	}
	return nodes, warns, nil
}
