package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hidden elements never contribute text, nor does anything beneath them.
var hidden = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// VisibleText concatenates the text nodes below n in document order. Only
// descendants count, so a bare text node yields "".
func VisibleText(n *html.Node) string {
	var sb strings.Builder
	writeVisibleText(&sb, n)
	return sb.String()
}

func writeVisibleText(sb *strings.Builder, n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			sb.WriteString(child.Data)
		case html.ElementNode:
			if hidden[child.DataAtom] {
				continue
			}
			writeVisibleText(sb, child)
		case html.DocumentNode:
			writeVisibleText(sb, child)
		}
	}
}
