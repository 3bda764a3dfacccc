// Package highlighter implements the text-offset/XPath range engine: Range,
// the Finder family, RangeHighlighter/RangeUnhighlighter, Cursor, and the
// HtmlHighlighter registry that ties them together.
package highlighter

import (
	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/textcontent"
	"github.com/hlight/htmlhighlighter/xpath"
)

// PositionDescriptor locates a point within a single text node: marker
// pins the node on the flat projection, Offset is 0-based within
// marker.Node's data.
type PositionDescriptor struct {
	Marker textcontent.Marker
	Offset int
}

// Absolute returns the position's character index in the concatenated raw
// text of the container.
func (p PositionDescriptor) Absolute() int { return p.Marker.Offset + p.Offset }

// descriptorRel builds a position descriptor relative to a marker, clamping
// relOffset into the marker's node.
func descriptorRel(m textcontent.Marker, relOffset int) PositionDescriptor {
	length := len(m.Node.NodeValue())
	if relOffset < 0 {
		relOffset = 0
	}
	if length > 0 && relOffset >= length {
		relOffset = length - 1
	}
	return PositionDescriptor{Marker: m, Offset: relOffset}
}

// XPathDescriptor locates a point relative to a container via the engine's
// XPath dialect; it is the xpath package's Descriptor under the name this
// module's callers expect.
type XPathDescriptor = xpath.Descriptor

// Range is a pair of position descriptors over a TextContent.
type Range struct {
	Content *textcontent.TextContent
	Start   PositionDescriptor
	End     PositionDescriptor
}

// NewRange validates absolute(start) <= absolute(end) and returns a Range.
func NewRange(content *textcontent.TextContent, start, end PositionDescriptor) (*Range, error) {
	if start.Absolute() > end.Absolute() {
		return nil, xerrors.Errorf("highlighter: range start %d is after end %d", start.Absolute(), end.Absolute())
	}
	return &Range{Content: content, Start: start, End: end}, nil
}

// Length is the inclusive character count of the range.
func (r *Range) Length() int { return r.End.Absolute() - r.Start.Absolute() + 1 }

// Text is the slice of the flat projection the range covers.
func (r *Range) Text() string {
	return r.Content.Text()[r.Start.Absolute() : r.End.Absolute()+1]
}

// ComputeXPath produces the XPath descriptors for the range's start and
// end, relative to the content's container. The intra-node offset in each
// descriptor is measured from the beginning of the logical text run the
// position's node belongs to.
func (r *Range) ComputeXPath(highlightClass string) (start, end XPathDescriptor, err error) {
	container := r.Content.Container()

	startRunOffset := runRelativeOffset(r.Start.Marker.Node, r.Start.Offset)
	start, err = xpath.Of(container, r.Start.Marker.Node, startRunOffset, highlightClass)
	if err != nil {
		return XPathDescriptor{}, XPathDescriptor{}, xerrors.Errorf("highlighter: compute start xpath: %w", err)
	}

	endRunOffset := runRelativeOffset(r.End.Marker.Node, r.End.Offset)
	end, err = xpath.Of(container, r.End.Marker.Node, endRunOffset, highlightClass)
	if err != nil {
		return XPathDescriptor{}, XPathDescriptor{}, xerrors.Errorf("highlighter: compute end xpath: %w", err)
	}

	return start, end, nil
}

// ResolveRange inverts ComputeXPath: it resolves start and end descriptors
// against content's container and returns the Range they describe.
func ResolveRange(content *textcontent.TextContent, start, end XPathDescriptor, highlightClass string) (*Range, error) {
	startPos, err := resolvePosition(content, start, highlightClass)
	if err != nil {
		return nil, xerrors.Errorf("highlighter: resolve start: %w", err)
	}
	endPos, err := resolvePosition(content, end, highlightClass)
	if err != nil {
		return nil, xerrors.Errorf("highlighter: resolve end: %w", err)
	}
	return NewRange(content, startPos, endPos)
}

func resolvePosition(content *textcontent.TextContent, desc XPathDescriptor, highlightClass string) (PositionDescriptor, error) {
	runStart, runOffset, err := xpath.Resolve(content.Container(), desc, highlightClass)
	if err != nil {
		return PositionDescriptor{}, err
	}
	node, offset := advanceIntoRun(runStart, runOffset)
	idx := content.Find(node)
	if idx < 0 {
		return PositionDescriptor{}, dom.ErrNotFound("highlighter: resolved node has no marker in this TextContent")
	}
	return PositionDescriptor{Marker: content.At(idx), Offset: offset}, nil
}

// EnclosingNodes returns the DOM text nodes from start to end inclusive, in
// document order, using the content's marker list (already document
// ordered by construction). The result is a static snapshot: later DOM
// mutations (e.g. a subsequent Highlight call's SplitText) never change it.
func (r *Range) EnclosingNodes() *dom.NodeList {
	startIdx := r.Content.Find(r.Start.Marker.Node)
	endIdx := r.Content.Find(r.End.Marker.Node)
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return dom.NewStaticNodeList(nil)
	}
	nodes := make([]*dom.Node, 0, endIdx-startIdx+1)
	for i := startIdx; i <= endIdx; i++ {
		nodes = append(nodes, r.Content.At(i).Node)
	}
	return dom.NewStaticNodeList(nodes)
}

// runRelativeOffset converts a raw intra-node offset into an offset
// relative to the start of node's logical text run, by adding the lengths
// of every preceding text-node sibling in the same run.
func runRelativeOffset(node *dom.Node, offset int) int {
	total := offset
	for prev := node.PreviousSibling(); prev != nil && prev.NodeType() == dom.TextNode; prev = prev.PreviousSibling() {
		total += len(prev.NodeValue())
	}
	return total
}

// advanceIntoRun walks forward from the first node of a logical text run,
// consuming offset, until it lands on the raw node and local offset that
// position actually falls in.
func advanceIntoRun(node *dom.Node, offset int) (*dom.Node, int) {
	for {
		length := len(node.NodeValue())
		next := node.NextSibling()
		if offset < length || next == nil || next.NodeType() != dom.TextNode {
			break
		}
		offset -= length
		node = next
	}
	return node, offset
}
