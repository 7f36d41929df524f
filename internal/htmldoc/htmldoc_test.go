package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Bot API</title><style>.table { color: red }</style></head>
<body>
<div id="dev_page_content">
<h3><a class="anchor" name="getting-updates" href="#getting-updates"><i class="anchor-icon"></i></a>Getting updates</h3>
<p>We support two ways of receiving updates.</p>
<h4><a class="anchor" name="update" href="#update"><i class="anchor-icon"></i></a>Update</h4>
<p>This object represents an incoming update.</p>
<p>At most <em>one</em> of the optional parameters can be present in any given update.</p>
<table class="table">
<thead>
<tr><th>Field</th><th>Type</th><th>Description</th></tr>
</thead>
<tbody>
<tr><td>update_id</td><td>Integer</td><td>The update's unique identifier.</td></tr>
<tr><td>message</td><td><a href="#message">Message</a></td><td><em>Optional</em>. New incoming message of any kind</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="sendmediagroup" href="#sendmediagroup"><i class="anchor-icon"></i></a>sendMediaGroup</h4>
<p>Use this method to send a group of photos.<script>track("x")</script> On success, an array is returned.</p>
<table class="table">
<thead>
<tr><th>Parameter</th><th>Type</th><th>Required</th><th>Description</th></tr>
</thead>
<tbody>
<tr><td>chat_id</td><td>Integer or String</td><td>Yes</td><td>Unique identifier for the target chat</td></tr>
<tr><td>disable_notification</td><td>Boolean</td><td>Optional</td><td>Sends messages silently.</td></tr>
</tbody>
</table>
<table class="other"><tr><td>ignored</td></tr></table>
</div>
</body>
</html>`

func TestVisibleText_SkipsHiddenSubtrees(t *testing.T) {
	doc, err := Parse(`<div>a<script>var x = 1;</script>b<style>p{}</style><noscript>n</noscript><span>c<b>d</b></span>e</div>`)
	require.NoError(t, err)

	assert.Equal(t, "abcde", VisibleText(doc))
}

func TestVisibleText_TextNodeHasNoDescendants(t *testing.T) {
	n := &html.Node{Type: html.TextNode, Data: "loose"}
	assert.Equal(t, "", VisibleText(n))
}

func TestExtract_Tables(t *testing.T) {
	tables, err := Extract(page, DefaultLocator())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	update := tables[0]
	assert.Equal(t, "Update", update.Name)
	assert.Equal(t,
		"This object represents an incoming update.At most one of the optional parameters can be present in any given update.",
		update.Description)
	assert.Equal(t, [][]string{
		{"update_id", "Integer", "The update's unique identifier."},
		{"message", "Message", "Optional. New incoming message of any kind"},
	}, update.Rows)

	method := tables[1]
	assert.Equal(t, "sendMediaGroup", method.Name)
	assert.Equal(t, "Use this method to send a group of photos. On success, an array is returned.", method.Description)
	require.Len(t, method.Rows, 2)
	assert.Equal(t, []string{"chat_id", "Integer or String", "Yes", "Unique identifier for the target chat"}, method.Rows[0])
}

func TestExtract_MissingHeading(t *testing.T) {
	markup := `<html><body><div><p>orphan</p><table class="table"><tr><td>a</td><td>b</td><td>c</td></tr></table></div></body></html>`

	tables, err := Extract(markup, DefaultLocator())
	require.Error(t, err)
	assert.Nil(t, tables)
	assert.Equal(t, errors.KindStructural, errors.GetKind(err))
	assert.Equal(t, 0, errors.GetAttributes(err)["table"])
	assert.True(t, strings.Contains(err.Error(), "<h4>"))
}

func TestExtract_HeadingOutsideParentIsNotReached(t *testing.T) {
	markup := `<html><body><h4>Name</h4><div><table class="table"><tr><td>a</td><td>b</td><td>c</td></tr></table></div></body></html>`

	_, err := Extract(markup, DefaultLocator())
	require.Error(t, err)
	assert.Equal(t, errors.KindStructural, errors.GetKind(err))
}

func TestExtract_EmptyHeading(t *testing.T) {
	markup := `<html><body>
<h4>Chat</h4><table class="table"><tbody><tr><td>id</td><td>Integer</td><td>Id</td></tr></tbody></table>
<h4> <a class="anchor" href="#x"></a> </h4><p>x</p>
<table class="table"><tbody><tr><td>id</td><td>Integer</td><td>Id</td></tr></tbody></table>
</body></html>`

	tables, err := Extract(markup, DefaultLocator())
	require.Error(t, err)
	assert.Nil(t, tables)
	assert.Equal(t, errors.KindStructural, errors.GetKind(err))
	assert.Equal(t, 1, errors.GetAttributes(err)["table"])
}

func TestRows_TrimsPrettyPrintedCells(t *testing.T) {
	doc, err := Parse(`<table class="table"><tbody><tr>
<td>
  photo
</td>
<td>
  Integer
</td>
<td>
  <em>Optional</em>. Photo id
</td>
</tr></tbody></table>`)
	require.NoError(t, err)

	tables := DefaultLocator().findTables(doc)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"photo", "Integer", "Optional. Photo id"}}, Rows(tables[0]))
}

func TestExtract_CustomLocator(t *testing.T) {
	markup := `<html><body>
<h2>Thing</h2><p>About</p>
<table class="doc wide"><tbody><tr><td>a</td><td>Integer</td><td>x</td></tr></tbody></table>
</body></html>`

	tables, err := Extract(markup, Locator{TableClass: "doc", HeadingTag: "h2"})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Thing", tables[0].Name)
	assert.Equal(t, "About", tables[0].Description)
}

func TestExtract_NoTables(t *testing.T) {
	tables, err := Extract(`<html><body><p>nothing here</p></body></html>`, DefaultLocator())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestRows_ImplicitTbody(t *testing.T) {
	doc, err := Parse(`<table class="table"><tr><td>a</td><td> b </td></tr><tr><td>c</td><td></td></tr></table>`)
	require.NoError(t, err)

	tables := DefaultLocator().findTables(doc)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", ""}}, Rows(tables[0]))
}

func TestRows_EmptyTable(t *testing.T) {
	doc, err := Parse(`<table class="table"><thead><tr><th>h</th></tr></thead></table>`)
	require.NoError(t, err)

	tables := DefaultLocator().findTables(doc)
	require.Len(t, tables, 1)
	assert.Empty(t, Rows(tables[0]))
}
