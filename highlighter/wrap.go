package highlighter

import (
	"strconv"

	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/dom"
)

// hhIDAttr is the attribute RangeHighlighter stamps on every wrapper
// element and RangeUnhighlighter searches by. An attribute, not a class,
// carries the numeric id so it survives class-list churn (enable/disable
// toggling, per-query class additions) without the Unhighlighter losing
// track of which wrapper belongs to which highlight.
const hhIDAttr = "data-hh-id"

// WrapOptions configures the element RangeHighlighter wraps each crossed
// text node in.
type WrapOptions struct {
	Tag            string // wrapper element name, default "span"
	ID             int    // highlight id, stamped as the hhIDAttr attribute
	HighlightClass string // base class shared by every wrapper
	GroupClass     string // rotating "highlight-id_<n>" class
	QueryClass     string // optional per-query class; "" to omit
	DisabledClass  string // class toggled when the owning query set is disabled
	Disabled       bool
}

// Highlight wraps the DOM text spanned by r with one or more elements
// sharing opts.ID, splitting the start/end text nodes as needed so the
// wrapped span exactly matches the range. Returns the wrapper elements
// created, in document order.
func Highlight(r *Range, opts WrapOptions) ([]*dom.Node, error) {
	container := r.Content.Container()

	// Earlier highlights may have split a marker's node; the rest of its
	// original data then lies in the text nodes that follow it in document order.
	seek := func(n *dom.Node, off int) (*dom.Node, int) {
		for next := n; off >= len(n.NodeValue()) && next != nil; {
			if next = next.NextInDocumentOrder(container); next != nil && next.NodeType() == dom.TextNode {
				off, n = off-len(n.NodeValue()), next
			}
		}
		return n, off
	}
	startNode, startOffset := seek(r.Start.Marker.Node, r.Start.Offset)
	endNode, endOffset := seek(r.End.Marker.Node, r.End.Offset)
	sameNode := startNode == endNode

	if startOffset > 0 {
		tail := (*dom.Text)(startNode).SplitText(startOffset)
		if tail == nil {
			return nil, xerrors.Errorf("highlighter: highlight: failed to split start node at %d", startOffset)
		}
		startNode = tail.AsNode()
		if sameNode {
			endOffset -= startOffset
			endNode = startNode
		}
	}

	endData := endNode.NodeValue()
	if endOffset+1 < len(endData) {
		if (*dom.Text)(endNode).SplitText(endOffset+1) == nil {
			return nil, xerrors.Errorf("highlighter: highlight: failed to split end node at %d", endOffset+1)
		}
	}

	var toWrap []*dom.Node
	for n := startNode; n != nil; n = n.NextInDocumentOrder(container) {
		if n.NodeType() == dom.TextNode {
			toWrap = append(toWrap, n)
		}
		if n == endNode {
			break
		}
	}
	if len(toWrap) == 0 {
		return nil, xerrors.Errorf("highlighter: highlight: range crosses no text nodes")
	}

	wrappers := make([]*dom.Node, 0, len(toWrap))
	for _, n := range toWrap {
		wrappers = append(wrappers, wrapTextNode(n, opts))
	}
	return wrappers, nil
}

func wrapTextNode(n *dom.Node, opts WrapOptions) *dom.Node {
	tag := opts.Tag
	if tag == "" {
		tag = "span"
	}

	doc := n.OwnerDocument()
	wrapper := doc.CreateElement(tag)
	wrapper.ClassList().Add(opts.HighlightClass)
	if opts.GroupClass != "" {
		wrapper.ClassList().Add(opts.GroupClass)
	}
	if opts.QueryClass != "" {
		wrapper.ClassList().Add(opts.QueryClass)
	}
	if opts.Disabled && opts.DisabledClass != "" {
		wrapper.ClassList().Add(opts.DisabledClass)
	}
	wrapper.SetAttribute(hhIDAttr, strconv.Itoa(opts.ID))

	parent := n.ParentNode()
	parent.ReplaceChild(wrapper.AsNode(), n)
	wrapper.AsNode().AppendChild(n)
	return wrapper.AsNode()
}

// Unhighlight finds every element under container carrying hhIDAttr == id,
// replaces each with a plain text node holding its concatenated text
// content, and normalizes the parent so split siblings re-merge. A no-op
// if no element carries that id.
func Unhighlight(container *dom.Node, id int) {
	val := strconv.Itoa(id)

	var wrappers []*dom.Node
	for n := container.FirstChild(); n != nil; n = n.NextInDocumentOrder(container) {
		if n.NodeType() != dom.ElementNode {
			continue
		}
		if (*dom.Element)(n).GetAttribute(hhIDAttr) == val {
			wrappers = append(wrappers, n)
		}
	}

	for _, w := range wrappers {
		parent := w.ParentNode()
		if parent == nil {
			continue
		}
		text := w.TextContent()
		replacement := w.OwnerDocument().CreateTextNode(text)
		parent.ReplaceChild(replacement, w)
		parent.Normalize()
	}
}

// ToggleDisabled toggles opts' disabled class on every wrapper element
// under container carrying hhIDAttr == id. Used by Registry.Enable/Disable.
func ToggleDisabled(container *dom.Node, id int, disabledClass string, disabled bool) {
	val := strconv.Itoa(id)
	for n := container.FirstChild(); n != nil; n = n.NextInDocumentOrder(container) {
		if n.NodeType() != dom.ElementNode {
			continue
		}
		el := (*dom.Element)(n)
		if el.GetAttribute(hhIDAttr) != val {
			continue
		}
		el.ClassList().Toggle(disabledClass, disabled)
	}
}
