package atomcss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleDeclaration(t *testing.T) {
	for _, style := range []string{"color: red;", "color:red", "  color : red  "} {
		nodes, warns, err := parseInline(style)
		require.NoError(t, err, style)
		assert.Empty(t, warns, style)
		require.Len(t, nodes, 1, style)
		assert.Equal(t, Declaration{Property: "color", Value: "red"}, nodes[0])
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	nodes, warns, err := parseInline("margin: 0; padding: 1px 2px")
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 2)
	assert.Equal(t, Declaration{Property: "margin", Value: "0"}, nodes[0])
	assert.Equal(t, Declaration{Property: "padding", Value: "1px 2px"}, nodes[1])
}

func TestParseEmpty(t *testing.T) {
	for _, style := range []string{"", "   ", ";", " ; ; "} {
		nodes, warns, err := parseInline(style)
		require.NoError(t, err, style)
		assert.Empty(t, nodes, style)
		assert.Empty(t, warns, style)
	}
}

func TestParsePseudoClassRule(t *testing.T) {
	nodes, warns, err := parseInline("color: red; :hover { color: blue; }")
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 2)
	assert.Equal(t, Declaration{Property: "color", Value: "red"}, nodes[0])
	rule, ok := nodes[1].(NestedRule)
	require.True(t, ok, "want NestedRule, got %T", nodes[1])
	assert.Equal(t, ":hover", rule.Selector)
	assert.Equal(t, []Declaration{{Property: "color", Value: "blue"}}, rule.Declarations)
}

func TestParseAtRule(t *testing.T) {
	nodes, warns, err := parseInline("@media (max-width: 600px) { color: red; font-size: 2em }")
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 1)
	rule, ok := nodes[0].(NestedRule)
	require.True(t, ok)
	assert.Equal(t, "@media (max-width: 600px)", rule.Selector)
	assert.Equal(t, []Declaration{
		{Property: "color", Value: "red"},
		{Property: "font-size", Value: "2em"},
	}, rule.Declarations)
}

func TestParseRuleThenSibling(t *testing.T) {
	nodes, warns, err := parseInline(":hover { color: blue } color: red")
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 2)
	rule, ok := nodes[0].(NestedRule)
	require.True(t, ok)
	assert.Equal(t, ":hover", rule.Selector)
	assert.Equal(t, Declaration{Property: "color", Value: "red"}, nodes[1])
}

func TestParseCustomProperty(t *testing.T) {
	nodes, warns, err := parseInline("--x: 1; color: red")
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 2)
	decl, ok := nodes[0].(Declaration)
	require.True(t, ok)
	assert.Equal(t, "--x", decl.Property)
	assert.Equal(t, "1", decl.Value)
	assert.True(t, decl.IsCustomProperty())
	assert.False(t, nodes[1].(Declaration).IsCustomProperty())
}

func TestParseMalformedDeclaration(t *testing.T) {
	nodes, warns, err := parseInline("color red")
	require.NoError(t, err)
	require.Len(t, warns, 1)
	require.Len(t, nodes, 1)
	assert.Equal(t, Declaration{Property: "color red", Value: ""}, nodes[0])

	nodes, warns, err = parseInline("color:")
	require.NoError(t, err)
	require.Len(t, warns, 1)
	require.Len(t, nodes, 1)
	assert.Equal(t, Declaration{Property: "color", Value: ""}, nodes[0])
}

func TestParseUnterminatedBlock(t *testing.T) {
	_, _, err := parseInline(":hover { color: blue")
	require.Error(t, err)
}

func TestParseValueWithColonInsideURL(t *testing.T) {
	// the colon inside url(...) must not split the declaration, and
	// the wrapper the scanner strips must be restored in the value
	nodes, warns, err := parseInline(`background: url(https://example.com/a.png)`)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 1)
	decl := nodes[0].(Declaration)
	assert.Equal(t, "background", decl.Property)
	assert.Equal(t, "url(https://example.com/a.png)", decl.Value)
}

func TestParseQuotedStringValue(t *testing.T) {
	// quotes are stripped by the scanner and must come back, or the
	// colon inside the string would poison the rule body
	nodes, warns, err := parseInline(`content: "a: b"`)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, nodes, 1)
	assert.Equal(t, Declaration{Property: "content", Value: `"a: b"`}, nodes[0])
}

func TestParseOneLevelNestingOnly(t *testing.T) {
	// the first "}" closes the block; what follows is a sibling again
	nodes, _, err := parseInline(":hover { color: blue } :focus { color: green }")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, ":hover", nodes[0].(NestedRule).Selector)
	assert.Equal(t, ":focus", nodes[1].(NestedRule).Selector)
}
