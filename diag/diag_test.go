package diag

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/highlighter"
)

func buildRegistry(t *testing.T) *highlighter.Registry {
	t.Helper()
	doc, err := dom.ParseHTML(`<html><body><p>the cat sat on the mat</p></body></html>`)
	require.NoError(t, err)

	root := doc.DocumentElement()
	var container *dom.Node
	for n := root.AsNode(); n != nil; n = n.NextInDocumentOrder(root.AsNode()) {
		if n.NodeType() == dom.ElementNode && (*dom.Element)(n).TagName() == "body" {
			container = n
			break
		}
	}
	require.NotNil(t, container)

	reg, err := highlighter.New(highlighter.Options{
		Container:    container,
		MaxHighlight: 5,
		Logger:       log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)

	reg.Add("the", []interface{}{"the"}, true, nil)
	reg.Apply()
	return reg
}

func TestDump_DescribesRegistryState(t *testing.T) {
	reg := buildRegistry(t)
	doc := Dump(reg)

	root := doc.Root()
	require.NotNil(t, root)
	require.Equal(t, "registry", root.Tag)
	require.Equal(t, "1", root.SelectAttrValue("queries", ""))
	require.Equal(t, "2", root.SelectAttrValue("total", ""))

	queries := root.SelectElements("query")
	require.Len(t, queries, 1)
	require.Equal(t, "the", queries[0].SelectAttrValue("name", ""))
	require.Equal(t, "2", queries[0].SelectAttrValue("length", ""))
}

func TestWriteTo_ProducesWellFormedXML(t *testing.T) {
	reg := buildRegistry(t)

	var buf bytes.Buffer
	err := WriteTo(&buf, reg)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `<registry`)
	require.Contains(t, buf.String(), `name="the"`)
}
