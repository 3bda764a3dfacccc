package dom

// Text represents a text node in the DOM.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node { return (*Node)(t) }

// NodeType returns TextNode (3).
func (t *Text) NodeType() NodeType { return TextNode }

// NodeName returns "#text".
func (t *Text) NodeName() string { return "#text" }

// Data returns the text content.
func (t *Text) Data() string { return t.AsNode().NodeValue() }

// SetData sets the text content.
func (t *Text) SetData(data string) { t.AsNode().SetNodeValue(data) }

// Length returns the length of the text content, in bytes. The flat
// projection and every offset in this module is defined over raw byte
// positions of node.Data() — the host environment's native string unit,
// the same way a browser's offsets are defined over UTF-16 code units.
func (t *Text) Length() int { return len(t.Data()) }

// SplitText splits this text node at offset, inserting the tail as a new
// sibling text node immediately after this one and returning it. This is
// the primitive RangeHighlighter uses to carve out the exact span of a
// highlight without disturbing text outside of it.
func (t *Text) SplitText(offset int) *Text {
	data := t.Data()
	if offset < 0 || offset > len(data) {
		return nil
	}

	newNode := t.AsNode().ownerDoc.CreateTextNode(data[offset:])
	newText := (*Text)(newNode)

	t.SetData(data[:offset])

	if parent := t.AsNode().parentNode; parent != nil {
		parent.InsertBefore(newNode, t.AsNode().nextSibling)
	}

	return newText
}

// Remove detaches this text node from its parent.
func (t *Text) Remove() {
	if parent := t.AsNode().parentNode; parent != nil {
		parent.RemoveChild(t.AsNode())
	}
}
