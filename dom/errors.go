package dom

import "fmt"

// DOMError represents a DOM exception with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// ErrNotFound creates a NotFoundError, returned when an XPath expression or
// query resolves to no node.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: "NotFoundError", Message: message}
}

// ErrIndexSize creates an IndexSizeError, for a text offset that falls
// outside the bounds of the node or TextContent it's applied against. No
// function in this module returns one.
func ErrIndexSize(message string) *DOMError {
	return &DOMError{Name: "IndexSizeError", Message: message}
}

// ErrSyntax creates a SyntaxError, returned when an XPath descriptor or
// query expression fails to parse.
func ErrSyntax(message string) *DOMError {
	return &DOMError{Name: "SyntaxError", Message: message}
}

// ErrInvalidState creates an InvalidStateError, for an operation attempted
// against a highlighter or cursor that isn't in a state that supports it.
// No function in this module returns one.
func ErrInvalidState(message string) *DOMError {
	return &DOMError{Name: "InvalidStateError", Message: message}
}
