// Package atomcss compiles inline CSS declarations on HTML nodes into
// atomic, content-addressed CSS classes and collects the generated
// rules into a single stylesheet emitted once per render pass.
//
// A node's style attribute is parsed into plain declarations, one
// level of pseudo-class rules (":hover { ... }") and one level of
// at-rules ("@media (...) { ... }"). Each distinct rule group becomes
// one class whose name is derived from the rule text, so identical
// styles on different nodes share a single CSS rule with a combined
// selector list. Custom properties ("--foo: bar") stay inline on the
// node.
package atomcss
