package dom

import "strings"

// DOMTokenList represents the de-duplicated, order-preserving set of
// space-separated tokens backing Element.ClassList, and the small subset
// of its operations this engine's wrap/unwrap/toggle machinery actually
// drives: Contains for xpath's sibling-skip scan, Add for wrapping a new
// highlight, Toggle for enabling/disabling one.
type DOMTokenList struct {
	element  *Element
	attrName string // the attribute this token list is backed by, e.g. "class"
}

// newDOMTokenList creates a new DOMTokenList for the given element and attribute.
func newDOMTokenList(element *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{
		element:  element,
		attrName: attrName,
	}
}

// tokens returns the current list of tokens (deduplicated, preserving order).
func (dtl *DOMTokenList) tokens() []string {
	if dtl.element == nil {
		return nil
	}
	value := dtl.element.GetAttribute(dtl.attrName)
	if value == "" {
		return nil
	}
	allTokens := strings.Fields(value)
	seen := make(map[string]bool)
	result := make([]string, 0, len(allTokens))
	for _, token := range allTokens {
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}
	return result
}

// setTokens writes tokens back to the attribute, removing it entirely
// when the list becomes empty.
func (dtl *DOMTokenList) setTokens(tokens []string) {
	if dtl.element == nil {
		return
	}
	if len(tokens) == 0 {
		dtl.element.RemoveAttribute(dtl.attrName)
	} else {
		dtl.element.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
	}
}

// Contains reports whether token is in the list.
func (dtl *DOMTokenList) Contains(token string) bool {
	for _, t := range dtl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add adds one or more tokens to the list, ignoring ones already present.
func (dtl *DOMTokenList) Add(tokens ...string) {
	current := dtl.tokens()
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		found := false
		for _, t := range current {
			if t == token {
				found = true
				break
			}
		}
		if !found {
			current = append(current, token)
		}
	}
	dtl.setTokens(current)
}

// remove drops one or more tokens from the list.
func (dtl *DOMTokenList) remove(tokens ...string) {
	toRemove := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		toRemove[strings.TrimSpace(token)] = true
	}

	var result []string
	for _, t := range dtl.tokens() {
		if !toRemove[t] {
			result = append(result, t)
		}
	}
	dtl.setTokens(result)
}

// Toggle toggles the presence of a token. If force is provided, it forces
// add (true) or remove (false) instead of toggling. Returns true if the
// token is present after the operation.
func (dtl *DOMTokenList) Toggle(token string, force ...bool) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	contains := dtl.Contains(token)

	if len(force) > 0 {
		if force[0] {
			if !contains {
				dtl.Add(token)
			}
			return true
		}
		if contains {
			dtl.remove(token)
		}
		return false
	}

	if contains {
		dtl.remove(token)
		return false
	}
	dtl.Add(token)
	return true
}
