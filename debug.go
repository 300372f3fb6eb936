package atomcss

import (
	"strings"

	"github.com/speedata/css/scanner"
)

// The scanner strips delimiting syntax from several token types, so a
// string token carries its text without quotes and a URI token its
// URL without the url() wrapper. Re-quoted strings always use double
// quotes, whatever the source used.
var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// String reassembles the token run as CSS source text, restoring the
// syntax the scanner stripped from the token values.
func (t tokenstream) String() string {
	var sb strings.Builder
	for _, tok := range t {
		switch tok.Type {
		case scanner.Hash:
			sb.WriteString("#")
			sb.WriteString(tok.Value)
		case scanner.AtKeyword:
			sb.WriteString("@")
			sb.WriteString(tok.Value)
		case scanner.String:
			sb.WriteString(`"`)
			sb.WriteString(cssStringEscaper.Replace(tok.Value))
			sb.WriteString(`"`)
		case scanner.URI:
			sb.WriteString("url(")
			sb.WriteString(tok.Value)
			sb.WriteString(")")
		case scanner.Local:
			sb.WriteString("local(")
			sb.WriteString(tok.Value)
			sb.WriteString(")")
		case scanner.Format:
			sb.WriteString("format(")
			sb.WriteString(tok.Value)
			sb.WriteString(")")
		case scanner.Tech:
			sb.WriteString("tech(")
			sb.WriteString(tok.Value)
			sb.WriteString(")")
		default:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String()
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}

func (r NestedRule) String() string {
	ret := []string{r.Selector + " {"}
	for _, d := range r.Declarations {
		ret = append(ret, "    "+d.String()+";")
	}
	ret = append(ret, "}")
	return strings.Join(ret, "\n")
}
