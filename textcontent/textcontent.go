// Package textcontent builds and owns the flat text projection of a
// container subtree: the concatenation of every text node's raw data, in
// document order, with a sorted marker list giving O(log n) offset lookup.
package textcontent

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/dom"
)

// Marker pins a text node on the flat projection: offset is the cumulative
// character count of every text node preceding it in document order.
type Marker struct {
	Node   *dom.Node
	Offset int
}

// TextContent is the flat, text-only projection of a container's subtree.
// It is built once (or on Refresh) and is immutable in between — callers
// that split or otherwise mutate text nodes under the container must call
// Refresh before trusting offsets computed against the new tree shape.
type TextContent struct {
	container *dom.Node
	markers   []Marker
	text      string
	index     map[*dom.Node]int
}

// Build walks container's subtree in document order, recording a Marker
// for every non-empty text node. Whitespace is preserved verbatim; the
// projection is exactly the concatenation of each text node's raw data.
func Build(container *dom.Node) *TextContent {
	tc := &TextContent{
		container: container,
		index:     make(map[*dom.Node]int),
	}

	var buf []byte
	offset := 0

	for n := container.FirstChild(); n != nil; n = n.NextInDocumentOrder(container) {
		if n.NodeType() != dom.TextNode {
			continue
		}
		data := n.NodeValue()
		if data == "" {
			continue
		}
		tc.index[n] = len(tc.markers)
		tc.markers = append(tc.markers, Marker{Node: n, Offset: offset})
		buf = append(buf, data...)
		offset += len(data)
	}

	tc.text = string(buf)
	return tc
}

// Container returns the subtree root this projection was built over.
func (tc *TextContent) Container() *dom.Node { return tc.container }

// Len returns the number of markers (text nodes) in the projection.
func (tc *TextContent) Len() int { return len(tc.markers) }

// At returns the marker at index i.
func (tc *TextContent) At(i int) Marker { return tc.markers[i] }

// Find returns the marker index whose node is identical (reference
// equality) to node, or -1 if node carries no marker (e.g. it is empty,
// outside the container, or not a text node).
func (tc *TextContent) Find(node *dom.Node) int {
	if i, ok := tc.index[node]; ok {
		return i
	}
	return -1
}

// Text returns the full flat string, for substring/regex matching.
func (tc *TextContent) Text() string { return tc.text }

// MarkerIndexForOffset returns the index of the marker whose run contains
// absolute offset off — the largest marker index m such that
// markers[m].Offset <= off. Used by Finder to turn an absolute match
// position back into a (node, intra-node offset) pair.
func (tc *TextContent) MarkerIndexForOffset(off int) int {
	return sort.Search(len(tc.markers), func(i int) bool {
		return tc.markers[i].Offset > off
	}) - 1
}

// Assert is a debug invariant check: markers strictly increasing by
// offset, and the flat text's length matches the last marker's extent.
func (tc *TextContent) Assert() error {
	for i := 1; i < len(tc.markers); i++ {
		if tc.markers[i].Offset <= tc.markers[i-1].Offset {
			return xerrors.Errorf("textcontent: marker %d offset %d does not exceed marker %d offset %d",
				i, tc.markers[i].Offset, i-1, tc.markers[i-1].Offset)
		}
	}
	if len(tc.markers) == 0 {
		if tc.text != "" {
			return xerrors.Errorf("textcontent: empty marker list but text length %d", len(tc.text))
		}
		return nil
	}
	last := tc.markers[len(tc.markers)-1]
	want := last.Offset + len(last.Node.NodeValue())
	if len(tc.text) != want {
		return xerrors.Errorf("textcontent: text length %d, expected %d from last marker", len(tc.text), want)
	}
	return nil
}
