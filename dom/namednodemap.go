package dom

// NamedNodeMap represents a collection of Attr objects. It is used for the
// Element.attributes property.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

// newNamedNodeMap creates a new NamedNodeMap for the given element.
func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{
		ownerElement: element,
		attrs:        make([]*Attr, 0),
	}
}

// Length returns the number of attributes in the map.
func (nm *NamedNodeMap) Length() int {
	return len(nm.attrs)
}

// Item returns the attribute at the given index, or nil if out of bounds.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute with the given name, or nil if not found.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range nm.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// setAttr adds or replaces an attribute, identified by name.
func (nm *NamedNodeMap) setAttr(attr *Attr) *Attr {
	if attr == nil {
		return nil
	}

	attr.ownerElement = nm.ownerElement

	for i, existing := range nm.attrs {
		if existing.name == attr.name {
			nm.attrs[i] = attr
			existing.ownerElement = nil
			return existing
		}
	}

	nm.attrs = append(nm.attrs, attr)
	return nil
}

// RemoveNamedItem removes the attribute with the given name.
// Returns the removed attribute.
func (nm *NamedNodeMap) RemoveNamedItem(name string) *Attr {
	for i, attr := range nm.attrs {
		if attr.name == name {
			nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
			attr.ownerElement = nil
			return attr
		}
	}
	return nil
}

// GetValue returns the value of the attribute with the given name, or empty string.
func (nm *NamedNodeMap) GetValue(name string) string {
	if attr := nm.GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// SetValue sets the value of the attribute with the given name.
// If the attribute doesn't exist, it is created.
func (nm *NamedNodeMap) SetValue(name, value string) {
	if attr := nm.GetNamedItem(name); attr != nil {
		attr.value = value
	} else {
		nm.setAttr(NewAttr(name, value))
	}
}

// Has returns true if an attribute with the given name exists.
func (nm *NamedNodeMap) Has(name string) bool {
	return nm.GetNamedItem(name) != nil
}

// Names returns a slice of all attribute names.
func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, attr := range nm.attrs {
		names[i] = attr.name
	}
	return names
}

// OwnerElement returns the element that owns this NamedNodeMap.
func (nm *NamedNodeMap) OwnerElement() *Element {
	return nm.ownerElement
}

// Clone creates a deep copy of this NamedNodeMap.
func (nm *NamedNodeMap) Clone(newOwner *Element) *NamedNodeMap {
	clone := newNamedNodeMap(newOwner)
	for _, attr := range nm.attrs {
		clone.attrs = append(clone.attrs, &Attr{
			ownerElement: newOwner,
			localName:    attr.localName,
			name:         attr.name,
			value:        attr.value,
		})
	}
	return clone
}
