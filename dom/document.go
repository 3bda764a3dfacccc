package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node { return (*Node)(d) }

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType { return DocumentNode }

// NodeName returns "#document".
func (d *Document) NodeName() string { return "#document" }

// URL returns the document's URL, or "about:blank" if unset.
func (d *Document) URL() string {
	if d.AsNode().documentData.url == "" {
		return "about:blank"
	}
	return d.AsNode().documentData.url
}

// SetURL sets the document's URL.
func (d *Document) SetURL(url string) { d.AsNode().documentData.url = url }

// DocumentElement returns the document's root element (e.g. <html>), or
// nil if none has been appended yet.
func (d *Document) DocumentElement() *Element {
	if de := d.AsNode().documentData.documentElement; de != nil {
		return (*Element)(de)
	}
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// CreateElement creates a new, detached element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	tagName = strings.ToLower(tagName)
	node := newNode(ElementNode, tagName, d)
	node.elementData = &elementData{
		localName: tagName,
		tagName:   tagName,
	}
	node.elementData.attributes = newNamedNodeMap((*Element)(node))
	return (*Element)(node)
}

// CreateTextNode creates a new, detached text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	node.nodeValue = &data
	return node
}

// ParseHTML parses htmlContent with golang.org/x/net/html and converts
// the resulting parse tree into this package's DOM.
func ParseHTML(htmlContent string) (*Document, error) {
	doc := NewDocument()

	netDoc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	convertHTMLTree(netDoc, doc.AsNode(), doc)
	doc.AsNode().documentData.documentElement = findDocumentElement(doc.AsNode())

	return doc, nil
}

func findDocumentElement(doc *Node) *Node {
	for c := doc.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return c
		}
	}
	return nil
}

// convertHTMLTree converts an x/net/html parse tree into this package's
// DOM tree, in document order. Doctype and comment nodes are dropped —
// TextContent's flat projection only ever walks element and text nodes,
// so carrying them forward would be dead weight.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)

		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				el.SetAttribute(attr.Key, attr.Val)
			}
			node = el.AsNode()

		case html.DocumentNode:
			convertHTMLTree(c, parent, doc)
			continue

		default:
			continue
		}

		parent.AppendChild(node)
		if c.Type == html.ElementNode {
			convertHTMLTree(c, node, doc)
		}
	}
}
