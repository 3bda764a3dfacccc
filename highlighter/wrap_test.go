package highlighter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/textcontent"
)

func TestHighlight_WrapsExactSpan(t *testing.T) {
	container := parseBody(t, `<body><p>Hello World</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 6}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 10}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)

	wrappers, err := Highlight(r, WrapOptions{ID: 0, HighlightClass: "highlight"})
	require.NoError(t, err)
	require.Len(t, wrappers, 1)

	wrapper := wrappers[0]
	require.Equal(t, "span", (*dom.Element)(wrapper).TagName())
	require.Equal(t, "World", wrapper.TextContent())
	require.True(t, (*dom.Element)(wrapper).ClassList().Contains("highlight"))
	require.Equal(t, "0", (*dom.Element)(wrapper).GetAttribute("data-hh-id"))
}

func TestHighlight_SingleCharacterRange(t *testing.T) {
	container := parseBody(t, `<body><p>Hello World</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 0}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 0}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)
	require.Equal(t, 1, r.Length())

	wrappers, err := Highlight(r, WrapOptions{ID: 1, HighlightClass: "highlight"})
	require.NoError(t, err)
	require.Len(t, wrappers, 1)
	require.Equal(t, "H", wrappers[0].TextContent())
}

func TestHighlightAndUnhighlight_RoundTrip(t *testing.T) {
	container := parseBody(t, `<body><p>& the world cried foul</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 2}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 4}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)
	require.Equal(t, "the", r.Text())

	_, err = Highlight(r, WrapOptions{ID: 7, HighlightClass: "highlight"})
	require.NoError(t, err)
	require.Equal(t, "& the world cried foul", container.TextContent())

	Unhighlight(container, 7)
	require.Equal(t, "& the world cried foul", container.TextContent())

	// After unhighlighting and normalizing, the paragraph is back to a
	// single text node.
	p := container.FirstChild()
	require.Equal(t, p.FirstChild(), p.LastChild())
}

func TestHighlight_SpansMultipleTextNodes(t *testing.T) {
	container := parseBody(t, `<body><p>Hello <b>brave</b> World</p></body>`)
	tc := textcontent.Build(container)

	// "Hello brave World" -> highlight "o brave W", which starts inside the
	// first text node, crosses "brave" inside <b>, and ends inside the last
	// text node: one wrapper per crossed text node.
	require.Equal(t, "Hello brave World", tc.Text())

	start := PositionDescriptor{Marker: tc.At(0), Offset: 4}
	end := PositionDescriptor{Marker: tc.At(2), Offset: 1}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)
	require.Equal(t, "o brave W", r.Text())

	wrappers, err := Highlight(r, WrapOptions{ID: 3, HighlightClass: "highlight"})
	require.NoError(t, err)
	require.Len(t, wrappers, 3)
	require.Equal(t, "brave", wrappers[1].TextContent())
}

func TestToggleDisabled(t *testing.T) {
	container := parseBody(t, `<body><p>Hello World</p></body>`)
	tc := textcontent.Build(container)

	start := PositionDescriptor{Marker: tc.At(0), Offset: 0}
	end := PositionDescriptor{Marker: tc.At(0), Offset: 4}
	r, err := NewRange(tc, start, end)
	require.NoError(t, err)

	wrappers, err := Highlight(r, WrapOptions{ID: 2, HighlightClass: "highlight"})
	require.NoError(t, err)

	ToggleDisabled(container, 2, "disabled", true)
	require.True(t, (*dom.Element)(wrappers[0]).ClassList().Contains("disabled"))

	ToggleDisabled(container, 2, "disabled", false)
	require.False(t, (*dom.Element)(wrappers[0]).ClassList().Contains("disabled"))
}
