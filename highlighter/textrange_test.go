package highlighter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/textcontent"
)

func parseBody(t *testing.T, htmlContent string) *dom.Node {
	t.Helper()
	doc, err := dom.ParseHTML(htmlContent)
	require.NoError(t, err)
	root := doc.DocumentElement()
	for n := root.AsNode(); n != nil; n = n.NextInDocumentOrder(root.AsNode()) {
		if n.NodeType() == dom.ElementNode && (*dom.Element)(n).TagName() == "body" {
			return n
		}
	}
	t.Fatal("no body element found")
	return nil
}

func TestRange_LengthAndText(t *testing.T) {
	container := parseBody(t, `<body><p>Hello World</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 0}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 4}

	r, err := NewRange(tc, start, end)
	require.NoError(t, err)
	require.Equal(t, 5, r.Length())
	require.Equal(t, "Hello", r.Text())
}

func TestNewRange_RejectsBackwardsRange(t *testing.T) {
	container := parseBody(t, `<body><p>Hello</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 4}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 0}

	_, err := NewRange(tc, start, end)
	require.Error(t, err)
}

func TestRange_ComputeAndResolveXPath(t *testing.T) {
	container := parseBody(t, `<body><p>Hello World</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 6}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 10}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)
	require.Equal(t, "World", r.Text())

	startDesc, endDesc, err := r.ComputeXPath("highlight")
	require.NoError(t, err)

	resolved, err := ResolveRange(tc, startDesc, endDesc, "highlight")
	require.NoError(t, err)
	require.Equal(t, "World", resolved.Text())
}

func TestRange_EnclosingNodes(t *testing.T) {
	container := parseBody(t, `<body><p>one</p><p>two</p><p>three</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 0}
	end := PositionDescriptor{Marker: tc.At(2), Offset: 0}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)

	nodes := r.EnclosingNodes()
	require.Equal(t, 3, nodes.Length())
	require.Equal(t, tc.At(0).Node, nodes.Item(0))
	require.Equal(t, tc.At(2).Node, nodes.Item(2))
}

func TestRunRelativeOffset_AcrossSplitTextNodes(t *testing.T) {
	container := parseBody(t, `<body><p>before</p></body>`)
	var p *dom.Node
	for n := container.FirstChild(); n != nil; n = n.NextInDocumentOrder(container) {
		if n.NodeType() == dom.ElementNode {
			p = n
			break
		}
	}
	text := p.FirstChild()
	tail := (*dom.Text)(text).SplitText(3)

	require.Equal(t, 0, runRelativeOffset(text, 0))
	require.Equal(t, 3, runRelativeOffset(tail.AsNode(), 0))
}
