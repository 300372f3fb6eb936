package atomcss

import "strings"

// Stylesheet deduplicates generated rules for one render pass. Rule
// bodies are the map key: two nodes producing byte-identical bodies
// collapse into one entry whose selector list is the union, ordered
// by first appearance. Create one Stylesheet per render pass; it is
// not safe for concurrent use.
type Stylesheet struct {
	order   []string
	entries map[string]*ruleSelectors
}

type ruleSelectors struct {
	selectors []string
	seen      map[string]struct{}
}

// NewStylesheet returns an empty stylesheet for one render pass.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{entries: make(map[string]*ruleSelectors)}
}

// Merge adds selector to the entry for body, creating the entry if
// needed. Adding a selector twice is a no-op.
func (s *Stylesheet) Merge(body, selector string) {
	e := s.entries[body]
	if e == nil {
		e = &ruleSelectors{seen: make(map[string]struct{})}
		s.entries[body] = e
		s.order = append(s.order, body)
	}
	if _, dup := e.seen[selector]; dup {
		return
	}
	e.seen[selector] = struct{}{}
	e.selectors = append(e.selectors, selector)
}

// MergeRules merges every compiled rule.
func (s *Stylesheet) MergeRules(rules []Rule) {
	for _, r := range rules {
		s.Merge(r.Body, r.Selector)
	}
}

// Len returns the number of distinct rule bodies.
func (s *Stylesheet) Len() int {
	return len(s.order)
}

// Serialize renders the collected rules as CSS text, substituting the
// joined selector list for the placeholder in each body. Entries
// appear in first-seen order.
func (s *Stylesheet) Serialize() string {
	rules := make([]string, len(s.order))
	for i, body := range s.order {
		joined := strings.Join(s.entries[body].selectors, ", ")
		rules[i] = strings.Replace(body, selectorPlaceholder, joined, 1)
	}
	return strings.Join(rules, "\n")
}

// Clear drains the stylesheet. Call it exactly once per render pass,
// after Serialize, so no rule leaks into the next pass.
func (s *Stylesheet) Clear() {
	s.order = s.order[:0]
	s.entries = make(map[string]*ruleSelectors)
}
