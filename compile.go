package atomcss

import (
	"fmt"
	"strings"
)

// classPrefix starts every generated class name.
const classPrefix = "hw_"

// selectorPlaceholder stands in for the selector list inside a rule
// body until serialization. Scanned CSS text can never contain a NUL
// byte, so the marker cannot collide with user content. It must never
// survive into serialized output.
const selectorPlaceholder = "\x00selector\x00"

// Rule is one generated stylesheet rule. Body still contains the
// selector placeholder; Selector is the single selector this
// generation contributes.
type Rule struct {
	Body     string
	Selector string
}

// Compiled is the result of compiling one parsed inline style.
type Compiled struct {
	// Classes are the generated class names to apply to the node,
	// one per rule group.
	Classes []string
	// CustomProperties are the top-level custom property
	// declarations. They are not promoted to a class and stay inline
	// on the node.
	CustomProperties []Declaration
	// Rules are the generated rules to merge into the stylesheet,
	// one per class.
	Rules []Rule
}

// declarationList joins declarations as "prop: value; prop2: value2".
func declarationList(decls []Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// compileNodes classifies parsed nodes and synthesizes one atomic
// class per distinct rule group: one for the top-level declarations,
// one per pseudo-class rule and one per at-rule. Nested fragments
// that are neither ":..." nor "@..." are not supported and are
// dropped with a diagnostic.
func compileNodes(nodes []Node) (Compiled, []string) {
	var c Compiled
	var warns []string
	var simple []Declaration
	var pseudo, atrules []NestedRule
	for _, n := range nodes {
		switch n := n.(type) {
		case Declaration:
			simple = append(simple, n)
		case NestedRule:
			switch {
			case strings.HasPrefix(n.Selector, "@"):
				atrules = append(atrules, n)
			case strings.HasPrefix(n.Selector, ":"):
				pseudo = append(pseudo, n)
			default:
				warns = append(warns, fmt.Sprintf("unsupported nested selector %q dropped", n.Selector))
			}
		}
	}

	if len(simple) > 0 {
		var normal []Declaration
		for _, d := range simple {
			if d.IsCustomProperty() {
				c.CustomProperties = append(c.CustomProperties, d)
			} else {
				normal = append(normal, d)
			}
		}
		body := selectorPlaceholder + " { " + declarationList(normal) + " }"
		class := classPrefix + hash(body)
		c.Classes = append(c.Classes, class)
		c.Rules = append(c.Rules, Rule{Body: body, Selector: "." + class})
	}

	for _, r := range pseudo {
		body := selectorPlaceholder + " { " + declarationList(r.Declarations) + " }"
		// the fragment keys the hash so ":hover" and ":focus" with
		// identical declarations still get distinct classes
		class := classPrefix + hash(r.Selector+hash(body))
		c.Classes = append(c.Classes, class)
		c.Rules = append(c.Rules, Rule{Body: body, Selector: "." + class + r.Selector})
	}

	for _, r := range atrules {
		// the at-rule condition wraps the rule, so the selector stays
		// a bare class
		body := r.Selector + " { " + selectorPlaceholder + " { " + declarationList(r.Declarations) + " } }"
		class := classPrefix + hash(r.Selector+hash(body))
		c.Classes = append(c.Classes, class)
		c.Rules = append(c.Rules, Rule{Body: body, Selector: "." + class})
	}
	return c, warns
}

// Compile parses and compiles one inline style string. Warnings
// describe data-quality problems (malformed declarations, unsupported
// nested selectors) that did not stop the compile; the error is set
// only when the style string is structurally unusable.
func Compile(style string) (Compiled, []string, error) {
	nodes, warns, err := parseInline(style)
	if err != nil {
		return Compiled{}, warns, err
	}
	c, cwarns := compileNodes(nodes)
	return c, append(warns, cwarns...), nil
}
