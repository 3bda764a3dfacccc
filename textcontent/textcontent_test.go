package textcontent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hlight/htmlhighlighter/dom"
)

func mustParse(t *testing.T, htmlContent string) *dom.Node {
	t.Helper()
	doc, err := dom.ParseHTML(htmlContent)
	require.NoError(t, err)
	body := doc.DocumentElement()
	for n := body.AsNode(); n != nil; n = n.NextInDocumentOrder(body.AsNode()) {
		if n.NodeType() == dom.ElementNode && (*dom.Element)(n).TagName() == "body" {
			return n
		}
	}
	t.Fatal("no body element found")
	return nil
}

func TestBuild_FlatProjection(t *testing.T) {
	container := mustParse(t, `<html><body><p>Hello <b>World</b></p><p>!</p></body></html>`)
	tc := Build(container)

	require.Equal(t, "Hello World!", tc.Text())
	require.NoError(t, tc.Assert())
	require.Equal(t, 3, tc.Len())
}

func TestBuild_SkipsEmptyTextNodes(t *testing.T) {
	container := mustParse(t, `<html><body><p></p><p>content</p></body></html>`)
	// The parser creates no text node for <p></p>; add an empty one by hand.
	container.FirstChild().AppendChild(container.OwnerDocument().CreateTextNode(""))
	tc := Build(container)

	require.Equal(t, "content", tc.Text())
	require.Equal(t, 1, tc.Len())
}

func TestFind(t *testing.T) {
	container := mustParse(t, `<html><body><p>abc</p><p>def</p></body></html>`)
	tc := Build(container)

	first := tc.At(0).Node
	second := tc.At(1).Node

	require.Equal(t, 0, tc.Find(first))
	require.Equal(t, 1, tc.Find(second))
	require.Equal(t, -1, tc.Find(container))
}

func TestMarkerIndexForOffset(t *testing.T) {
	container := mustParse(t, `<html><body><p>abc</p><p>defgh</p></body></html>`)
	tc := Build(container)

	// "abc" occupies [0,3), "defgh" occupies [3,8).
	require.Equal(t, 0, tc.MarkerIndexForOffset(0))
	require.Equal(t, 0, tc.MarkerIndexForOffset(2))
	require.Equal(t, 1, tc.MarkerIndexForOffset(3))
	require.Equal(t, 1, tc.MarkerIndexForOffset(7))
}

func TestAssert_DetectsOutOfOrderMarkers(t *testing.T) {
	container := mustParse(t, `<html><body><p>abc</p></body></html>`)
	tc := Build(container)
	tc.markers = append(tc.markers, Marker{Node: tc.markers[0].Node, Offset: 0})

	err := tc.Assert()
	require.Error(t, err)
}
