package dom

import "testing"

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.NodeName())
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DIV")

	if el == nil {
		t.Fatal("CreateElement returned nil")
	}
	if el.TagName() != "div" {
		t.Errorf("Expected tagName 'div', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}
	if el.NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.NodeType())
	}
}

func TestDocument_CreateTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("Hello, World!")

	if text == nil {
		t.Fatal("CreateTextNode returned nil")
	}
	if text.NodeType() != TextNode {
		t.Errorf("Expected TextNode, got %v", text.NodeType())
	}
	if text.NodeValue() != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got '%s'", text.NodeValue())
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetAttribute("id", "main")
	el.SetAttribute("class", "container")
	el.SetAttribute("data-value", "123")

	if el.GetAttribute("id") != "main" {
		t.Errorf("Expected id='main', got '%s'", el.GetAttribute("id"))
	}
	if !el.HasAttribute("class") {
		t.Error("Expected class attribute to be present")
	}
	el.RemoveAttribute("class")
	if el.HasAttribute("class") {
		t.Error("Expected class attribute to be removed")
	}
}

func TestElement_ClassList(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("span")

	el.ClassList().Add("highlight", "highlight-id_0")
	if !el.ClassList().Contains("highlight") {
		t.Error("Expected classList to contain 'highlight'")
	}
	if el.ClassName() != "highlight highlight-id_0" {
		t.Errorf("Unexpected className: %q", el.ClassName())
	}

	el.ClassList().Toggle("disabled", true)
	if !el.ClassList().Contains("disabled") {
		t.Error("Expected classList to contain 'disabled' after forced toggle")
	}
	el.ClassList().Toggle("disabled", false)
	if el.ClassList().Contains("disabled") {
		t.Error("Expected classList to drop 'disabled' after forced toggle off")
	}
}

func TestNode_AppendAndRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")

	parent.AsNode().AppendChild(child.AsNode())
	if child.AsNode().ParentNode() != parent.AsNode() {
		t.Error("child's parent should be parent")
	}
	if parent.AsNode().FirstChild() != child.AsNode() {
		t.Error("parent's first child should be child")
	}

	parent.AsNode().RemoveChild(child.AsNode())
	if child.AsNode().ParentNode() != nil {
		t.Error("child's parent should be nil after removal")
	}
	if parent.AsNode().HasChildNodes() {
		t.Error("parent should have no children after removal")
	}
}

func TestNode_NextInDocumentOrder(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	a := doc.CreateElement("p")
	b := doc.CreateTextNode("hello")
	c := doc.CreateElement("p")

	root.AsNode().AppendChild(a.AsNode())
	a.AsNode().AppendChild(b)
	root.AsNode().AppendChild(c.AsNode())

	var order []*Node
	for n := root.AsNode(); n != nil; n = n.NextInDocumentOrder(root.AsNode()) {
		order = append(order, n)
	}

	want := []*Node{root.AsNode(), a.AsNode(), b, c.AsNode()}
	if len(order) != len(want) {
		t.Fatalf("expected %d nodes in document order, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i].NodeName(), order[i].NodeName())
		}
	}
}

func TestText_SplitText(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	text := doc.CreateTextNode("Hello World")
	div.AsNode().AppendChild(text)

	tail := (*Text)(text).SplitText(5)
	if tail == nil {
		t.Fatal("SplitText returned nil")
	}
	if text.NodeValue() != "Hello" {
		t.Errorf("expected head 'Hello', got %q", text.NodeValue())
	}
	if tail.Data() != " World" {
		t.Errorf("expected tail ' World', got %q", tail.Data())
	}
	if tail.AsNode().ParentNode() != div.AsNode() {
		t.Error("tail should be inserted under the same parent")
	}
	if text.NextSibling() != tail.AsNode() {
		t.Error("tail should immediately follow the original node")
	}
}

func TestNode_Normalize(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	a := doc.CreateTextNode("foo")
	b := doc.CreateTextNode("bar")
	empty := doc.CreateTextNode("")
	div.AsNode().AppendChild(a)
	div.AsNode().AppendChild(b)
	div.AsNode().AppendChild(empty)

	div.AsNode().Normalize()

	if div.AsNode().FirstChild() != div.AsNode().LastChild() {
		t.Fatal("expected a single merged text node after Normalize")
	}
	if div.AsNode().TextContent() != "foobar" {
		t.Errorf("expected merged text 'foobar', got %q", div.AsNode().TextContent())
	}
}

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(`<html><body><p id="intro">Hello <b>World</b></p></body></html>`)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil {
		t.Fatal("DocumentElement returned nil")
	}
	if root.TagName() != "html" {
		t.Errorf("expected root tag 'html', got %q", root.TagName())
	}

	var p *Element
	for n := root.AsNode(); n != nil; n = n.NextInDocumentOrder(root.AsNode()) {
		if n.NodeType() == ElementNode && (*Element)(n).Id() == "intro" {
			p = (*Element)(n)
			break
		}
	}
	if p == nil {
		t.Fatal("expected to find #intro element")
	}
	if p.AsNode().TextContent() != "Hello World" {
		t.Errorf("expected text content 'Hello World', got %q", p.AsNode().TextContent())
	}
}
