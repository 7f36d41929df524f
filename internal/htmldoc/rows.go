package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rows returns the trimmed text of every td cell of every tbody row of table.
// Header rows live in thead or use th cells and are left out.
func Rows(table *html.Node) [][]string {
	var rows [][]string

	for _, body := range children(table, atom.Tbody) {
		for _, tr := range children(body, atom.Tr) {
			cells := []string{}
			for _, td := range children(tr, atom.Td) {
				cells = append(cells, strings.TrimSpace(VisibleText(td)))
			}
			rows = append(rows, cells)
		}
	}

	return rows
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}
