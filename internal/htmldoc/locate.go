package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ricardonunez-io/apigen/internal/errors"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

const (
	DefaultTableClass = "table"
	DefaultHeadingTag = "h4"
)

// Locator finds documentation tables: table elements carrying TableClass in
// their class list, each named by the nearest preceding HeadingTag sibling.
type Locator struct {
	TableClass string
	HeadingTag string
}

func DefaultLocator() Locator {
	return Locator{
		TableClass: DefaultTableClass,
		HeadingTag: DefaultHeadingTag,
	}
}

func Parse(markup string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(err, errors.KindStructural, "failed to parse markup")
	}
	return doc, nil
}

// Extract parses markup and locates every documentation table in it.
func Extract(markup string, loc Locator) ([]schema.Table, error) {
	doc, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	return loc.Locate(doc)
}

// Locate returns one schema.Table per documentation table, in document order.
func (l Locator) Locate(doc *html.Node) ([]schema.Table, error) {
	var tables []schema.Table

	for i, node := range l.findTables(doc) {
		description, heading, err := l.describe(node)
		if err != nil {
			return nil, errors.Attr(err, "table", i)
		}

		name := strings.TrimSpace(VisibleText(heading))
		if name == "" {
			err := errors.New(errors.KindStructural, "table heading has no text")
			return nil, errors.Attr(err, "table", i)
		}

		tables = append(tables, schema.Table{
			Name:        name,
			Description: description,
			Rows:        Rows(node),
		})
	}

	return tables, nil
}

func (l Locator) findTables(root *html.Node) []*html.Node {
	var found []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table && hasClass(n, l.TableClass) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return found
}

// describe walks backwards over the table's siblings, prepending their visible
// text, until it reaches the heading. Running out of siblings first means the
// page is not shaped the way we expect.
func (l Locator) describe(table *html.Node) (string, *html.Node, error) {
	var parts []string

	for n := table.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode && n.Data == l.HeadingTag {
			return strings.Join(parts, ""), n, nil
		}
		parts = append([]string{VisibleText(n)}, parts...)
	}

	return "", nil, errors.Errorf(errors.KindStructural, "no <%s> heading precedes table", l.HeadingTag)
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
