// Package dom provides the small slice of the DOM Living Standard
// (https://dom.spec.whatwg.org/) that a text-offset/XPath highlighting
// engine needs to walk and mutate a parsed HTML document: a Node tree
// with sibling/child pointers, Element/Text specializations, attributes,
// and class lists. It intentionally does not model layout geometry, CSS
// cascade/style, shadow DOM, or XML namespaces — none of those concerns
// are reachable from a text-offset engine.
package dom

// Node represents a node in the DOM tree. It is the base type from which
// Document, Element, and Text are derived via Go's named-type-conversion
// trick (see Element/Text in this package): the underlying memory layout
// is shared, and AsNode()/​(*Element)(node) convert between views.
type Node struct {
	nodeType  NodeType
	nodeName  string
	nodeValue *string // nil for Element and Document
	ownerDoc  *Document

	parentNode  *Node
	childNodes  *NodeList
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	elementData  *elementData
	textData     *string
	documentData *documentData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	attributes *NamedNodeMap
	classList  *DOMTokenList
}

// documentData holds data specific to Document nodes.
type documentData struct {
	documentElement *Node
	url             string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	n := &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
	n.childNodes = newNodeList(n)
	return n
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType { return n.nodeType }

// NodeName returns the name of the node ("#text" for text nodes, the
// lowercase tag name for elements, "#document" for the document).
func (n *Node) NodeName() string { return n.nodeName }

// NodeValue returns the value of the node. For text nodes this is the
// character data; for all other node types this is empty.
func (n *Node) NodeValue() string {
	if n.nodeValue != nil {
		return *n.nodeValue
	}
	return ""
}

// SetNodeValue sets the value of the node. Only has an effect on text
// nodes; a no-op for every other node type, per spec.
func (n *Node) SetNodeValue(value string) {
	if n.nodeType == TextNode {
		n.nodeValue = &value
		if n.textData != nil {
			*n.textData = value
		}
	}
}

// OwnerDocument returns the Document that owns this node, or nil for a
// Document node itself.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil at the root.
func (n *Node) ParentNode() *Node { return n.parentNode }

// ParentElement returns the parent Element, or nil if the parent is not
// an element (or there is no parent).
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// ChildNodes returns a live NodeList of child nodes.
func (n *Node) ChildNodes() *NodeList { return n.childNodes }

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// PreviousSibling returns the previous sibling, or nil.
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// HasChildNodes reports whether this node has any children.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// TextContent returns the concatenation of the text content of this node
// and all its descendants, in document order.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode:
		return ""
	case TextNode:
		return n.NodeValue()
	default:
		var out []byte
		n.collectTextContent(&out)
		return string(out)
	}
}

func (n *Node) collectTextContent(out *[]byte) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			*out = append(*out, child.NodeValue()...)
		case ElementNode:
			child.collectTextContent(out)
		}
	}
}

// AppendChild adds a node to the end of the list of children of this
// node. Ignores the DOM hierarchy error case (a detached-tree library has
// no foreign document to guard against); InsertBefore, which it calls,
// performs no hierarchy validation either.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts newChild before refChild. If refChild is nil, the
// node is appended to the end. Returns newChild.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild == nil {
		return nil
	}
	if newChild == refChild {
		return newChild
	}

	if newChild.parentNode != nil {
		newChild.parentNode.RemoveChild(newChild)
	}
	newChild.parentNode = n
	if n.ownerDoc != nil {
		newChild.ownerDoc = n.ownerDoc
	} else if n.nodeType == DocumentNode {
		newChild.ownerDoc = (*Document)(n)
	}

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.prevSibling = refChild.prevSibling
		newChild.nextSibling = refChild
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}

	return newChild
}

// RemoveChild removes child from this node's children. Returns the
// removed node, or nil if child is not actually a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	if child == nil || child.parentNode != n {
		return nil
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
	return child
}

// ReplaceChild replaces oldChild with newChild, preserving oldChild's
// position. Returns oldChild, or nil if oldChild is not a child of n.
func (n *Node) ReplaceChild(newChild, oldChild *Node) *Node {
	if oldChild == nil || oldChild.parentNode != n {
		return nil
	}
	ref := oldChild.nextSibling
	n.RemoveChild(oldChild)
	n.InsertBefore(newChild, ref)
	return oldChild
}

// Normalize merges adjacent text nodes and removes empty text nodes,
// recursively. This is what RangeUnhighlighter.Undo calls after removing
// a wrapper element, so that split siblings re-merge into the text run
// XPath indexing expects.
func (n *Node) Normalize() {
	var toRemove []*Node

	for child := n.firstChild; child != nil; {
		next := child.nextSibling

		switch child.nodeType {
		case TextNode:
			if child.NodeValue() == "" {
				toRemove = append(toRemove, child)
			} else {
				for next != nil && next.nodeType == TextNode {
					child.SetNodeValue(child.NodeValue() + next.NodeValue())
					toRemove = append(toRemove, next)
					next = next.nextSibling
				}
			}
		case ElementNode:
			child.Normalize()
		}

		child = next
	}

	for _, node := range toRemove {
		n.RemoveChild(node)
	}
}

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// NextInDocumentOrder returns the next node in document (pre-order)
// traversal, bounded by root: traversal never ascends past root. Returns
// nil once the walk would leave root's subtree. This is the primitive
// TextContent.Build and the highlighter's Highlight/Unhighlight walk the
// tree with.
func (n *Node) NextInDocumentOrder(root *Node) *Node {
	if n.firstChild != nil {
		return n.firstChild
	}
	cur := n
	for cur != nil && cur != root {
		if cur.nextSibling != nil {
			return cur.nextSibling
		}
		cur = cur.parentNode
	}
	return nil
}
