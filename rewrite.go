package atomcss

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultStyleID is the id of the style element InjectStyles appends.
const DefaultStyleID = "atomcss"

// inlineStyled matches every element carrying an inline style.
var inlineStyled = cascadia.MustCompile("[style]")

// Rewriter turns inline styles on HTML nodes into atomic classes and
// collects the generated rules. Create one Rewriter (or at least one
// Stylesheet) per render pass; sharing one across concurrently
// rendered pages would bleed rules between responses.
type Rewriter struct {
	// Sheet accumulates the generated rules until Flush.
	Sheet *Stylesheet
	// Logger receives diagnostics for malformed input. Defaults to a
	// nop logger.
	Logger *zap.Logger
	// StyleID is the id attribute of the injected style element.
	StyleID string
}

// NewRewriter returns a Rewriter with a fresh stylesheet.
func NewRewriter() *Rewriter {
	return &Rewriter{
		Sheet:   NewStylesheet(),
		Logger:  zap.NewNop(),
		StyleID: DefaultStyleID,
	}
}

// RewriteNode compiles the node's style attribute, appends the
// generated class names to its class attribute, replaces the style
// attribute with the remaining custom properties (or removes it) and
// merges the generated rules into the stylesheet. A node without a
// style attribute is passed through untouched. A style string that
// cannot be parsed leaves the node unchanged and returns the error.
func (rw *Rewriter) RewriteNode(n *html.Node) error {
	idx := -1
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	style := n.Attr[idx].Val
	c, warns, err := Compile(style)
	for _, w := range warns {
		rw.Logger.Warn(w, zap.String("style", style))
	}
	if err != nil {
		return fmt.Errorf("inline style %q: %w", style, err)
	}
	if len(c.Classes) > 0 {
		appendClasses(n, c.Classes)
	}
	if len(c.CustomProperties) > 0 {
		n.Attr[idx].Val = declarationList(c.CustomProperties)
	} else {
		n.Attr = append(n.Attr[:idx], n.Attr[idx+1:]...)
	}
	rw.Sheet.MergeRules(c.Rules)
	return nil
}

// appendClasses adds classes to the node's class attribute, keeping
// any pre-existing classes.
func appendClasses(n *html.Node, classes []string) {
	joined := strings.Join(classes, " ")
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			if a.Val != "" {
				joined = a.Val + " " + joined
			}
			n.Attr[i].Val = joined
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: joined})
}

// ProcessDocument rewrites every element of the document that carries
// an inline style. Errors from single nodes are collected and do not
// stop the rest of the document from being processed.
func (rw *Rewriter) ProcessDocument(doc *goquery.Document) error {
	var errs error
	for _, n := range doc.FindMatcher(inlineStyled).Nodes {
		if err := rw.RewriteNode(n); err != nil {
			rw.Logger.Warn("skipping node", zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// ProcessHTMLChunk reads the HTML text, rewrites all inline styles
// and returns the DOM. The document is returned even when single
// nodes failed, together with the collected errors. The accumulated
// stylesheet is not flushed; call InjectStyles or Flush once the
// render pass is complete.
func (rw *Rewriter) ProcessHTMLChunk(htmltext string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmltext))
	if err != nil {
		return nil, err
	}
	return doc, rw.ProcessDocument(doc)
}

// Flush serializes the accumulated stylesheet and drains it so the
// next render pass starts empty.
func (rw *Rewriter) Flush() string {
	css := rw.Sheet.Serialize()
	rw.Sheet.Clear()
	return css
}

// InjectStyles flushes the stylesheet into a style element appended
// to the document head. Nothing is injected when no rules were
// collected, and a document without a head leaves the stylesheet
// undrained. Style is a raw-text element, so the CSS text is attached
// as a plain text node.
func (rw *Rewriter) InjectStyles(doc *goquery.Document) {
	// locate the head before flushing: a document we cannot inject
	// into must not drain the collected rules
	head := doc.Find("head")
	if head.Length() == 0 {
		rw.Logger.Warn("document has no head element, styles not injected")
		return
	}
	css := rw.Flush()
	if css == "" {
		return
	}
	styleID := rw.StyleID
	if styleID == "" {
		styleID = DefaultStyleID
	}
	styleNode := &html.Node{
		Type:     html.ElementNode,
		Data:     "style",
		DataAtom: atom.Style,
		Attr:     []html.Attribute{{Key: "id", Val: styleID}},
	}
	styleNode.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendNodes(styleNode)
}
