package dom

// Attr represents an attribute of an Element.
type Attr struct {
	ownerElement *Element
	localName    string
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{
		localName: name,
		name:      name,
		value:     value,
	}
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType { return AttributeNode }

// NodeName returns the attribute name.
func (a *Attr) NodeName() string { return a.name }

// NodeValue returns the attribute value.
func (a *Attr) NodeValue() string { return a.value }

// SetNodeValue sets the attribute value.
func (a *Attr) SetNodeValue(value string) { a.value = value }

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element { return a.ownerElement }

// OwnerDocument returns the Document that owns this attribute, via its
// owner element, or nil if unattached.
func (a *Attr) OwnerDocument() *Document {
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().OwnerDocument()
	}
	return nil
}

// LocalName returns the local name of the attribute.
func (a *Attr) LocalName() string { return a.localName }

// Name returns the attribute name.
func (a *Attr) Name() string { return a.name }

// Value returns the attribute value.
func (a *Attr) Value() string { return a.value }

// SetValue sets the attribute value.
func (a *Attr) SetValue(value string) { a.value = value }
