package dom

import "strings"

// Element represents an element in the DOM tree.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node { return (*Node)(e) }

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType { return ElementNode }

// NodeName returns the tag name.
func (e *Element) NodeName() string { return e.TagName() }

// TagName returns the tag name, lowercased (this package only serves
// HTML documents, where tag names are case-insensitive and conventionally
// lowercase; unlike the teacher's browser-DOM, there is no XHTML/SVG
// namespace distinction to preserve here).
func (e *Element) TagName() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.tagName
	}
	return strings.ToLower(e.AsNode().nodeName)
}

// LocalName is an alias for TagName in this HTML-only subset.
func (e *Element) LocalName() string { return e.TagName() }

// Id returns the id attribute value.
func (e *Element) Id() string { return e.GetAttribute("id") }

// SetId sets the id attribute value.
func (e *Element) SetId(id string) { e.SetAttribute("id", id) }

// ClassName returns the class attribute value.
func (e *Element) ClassName() string { return e.GetAttribute("class") }

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) { e.SetAttribute("class", className) }

// ClassList returns a DOMTokenList view of the class attribute.
func (e *Element) ClassList() *DOMTokenList {
	if e.AsNode().elementData == nil {
		e.AsNode().elementData = &elementData{}
	}
	if e.AsNode().elementData.classList == nil {
		e.AsNode().elementData.classList = newDOMTokenList(e, "class")
	}
	return e.AsNode().elementData.classList
}

// Attributes returns the NamedNodeMap of attributes.
func (e *Element) Attributes() *NamedNodeMap {
	if e.AsNode().elementData == nil {
		e.AsNode().elementData = &elementData{}
	}
	if e.AsNode().elementData.attributes == nil {
		e.AsNode().elementData.attributes = newNamedNodeMap(e)
	}
	return e.AsNode().elementData.attributes
}

// GetAttribute returns the value of the named attribute, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	return e.Attributes().GetValue(strings.ToLower(name))
}

// SetAttribute sets the named attribute's value.
func (e *Element) SetAttribute(name, value string) {
	e.Attributes().SetValue(strings.ToLower(name), value)
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().Has(strings.ToLower(name))
}

// RemoveAttribute removes the named attribute, if present.
func (e *Element) RemoveAttribute(name string) {
	e.Attributes().RemoveNamedItem(strings.ToLower(name))
}

// Children returns an HTMLCollection of this element's child elements.
func (e *Element) Children() *HTMLCollection {
	return newHTMLCollection(e.AsNode(), func(el *Element) bool {
		return el.AsNode().parentNode == e.AsNode()
	})
}

// FirstElementChild returns the first child element, or nil.
func (e *Element) FirstElementChild() *Element {
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// NextElementSibling returns the next sibling element, or nil.
func (e *Element) NextElementSibling() *Element {
	for sibling := e.AsNode().nextSibling; sibling != nil; sibling = sibling.nextSibling {
		if sibling.nodeType == ElementNode {
			return (*Element)(sibling)
		}
	}
	return nil
}

// CloneNode creates a shallow (or, if deep, recursive) copy of the
// element, including its attributes but not its class-list/attribute-map
// caches (which are rebuilt lazily).
func (e *Element) CloneNode(deep bool) *Element {
	clone := e.AsNode().ownerDoc.CreateElement(e.TagName())
	for i := 0; i < e.Attributes().Length(); i++ {
		attr := e.Attributes().Item(i)
		clone.SetAttribute(attr.name, attr.value)
	}
	if deep {
		for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
			switch child.nodeType {
			case ElementNode:
				clone.AsNode().AppendChild((*Element)(child).CloneNode(true).AsNode())
			case TextNode:
				clone.AsNode().AppendChild(clone.AsNode().ownerDoc.CreateTextNode(child.NodeValue()))
			}
		}
	}
	return clone
}
