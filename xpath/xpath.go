// Package xpath computes the XPath of a text node relative to a container
// element, and resolves such an XPath back to a node, per the engine's
// XPath dialect: "/tag[n]/…/text()[k]", where sibling-element indexing
// skips descendants carrying a caller-supplied highlight class, and
// text-node indexing merges adjacent DOM text-node runs into one logical
// text() segment.
package xpath

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/dom"
)

// Descriptor locates a point relative to a container: xpath is of the form
// "/tag[n]/.../text()[k]", offset is measured from the beginning of the
// logical text run the final segment names.
type Descriptor struct {
	XPath  string
	Offset int
}

// Of computes the XPath descriptor for position nodeOffset within a text
// node, relative to container. nodeOffset is interpreted as an offset from
// the start of node's logical text run (callers with a raw intra-node
// offset must add the lengths of any preceding siblings in the run first —
// see highlighter.Range.ComputeXPath).
func Of(container, node *dom.Node, nodeOffset int, highlightClass string) (Descriptor, error) {
	if node.NodeType() != dom.TextNode {
		return Descriptor{}, xerrors.Errorf("xpath.Of: node is not a text node (%s)", node.NodeType())
	}

	var segments []string

	k := textRunIndex(node, highlightClass)
	if k == 0 {
		segments = append(segments, "text()")
	} else {
		segments = append(segments, fmt.Sprintf("text()[%d]", k+1))
	}

	for cur := node.ParentNode(); cur != nil && cur != container; cur = cur.ParentNode() {
		if cur.NodeType() != dom.ElementNode {
			return Descriptor{}, xerrors.Errorf("xpath.Of: ancestor is not an element (%s)", cur.NodeType())
		}
		el := (*dom.Element)(cur)
		n := elementSiblingIndex(cur, highlightClass)
		segments = append(segments, fmt.Sprintf("%s[%d]", el.TagName(), n))
	}

	reverse(segments)
	return Descriptor{XPath: "/" + strings.Join(segments, "/"), Offset: nodeOffset}, nil
}

// Resolve inverts Of: it walks desc.XPath from container down to the
// element owning the terminal text run, then returns the first raw text
// node of that logical run together with desc.Offset (still run-relative —
// callers that need a specific raw node within a split run must walk
// forward, consuming node lengths, the way highlighter.ResolveRange does).
func Resolve(container *dom.Node, desc Descriptor, highlightClass string) (*dom.Node, int, error) {
	segments := strings.Split(strings.Trim(desc.XPath, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil, 0, xerrors.Errorf("xpath.Resolve: empty xpath")
	}

	cur := container
	for i, seg := range segments {
		last := i == len(segments)-1
		if strings.HasPrefix(seg, "text()") {
			if !last {
				return nil, 0, xerrors.Errorf("xpath.Resolve: text() segment %q is not terminal", seg)
			}
			k, err := textSegmentIndex(seg)
			if err != nil {
				return nil, 0, err
			}
			node := nthTextRunStart(cur, k)
			if node == nil {
				return nil, 0, dom.ErrNotFound(fmt.Sprintf("xpath.Resolve: no text() run %d under %q", k, desc.XPath))
			}
			return node, desc.Offset, nil
		}

		tag, n, err := parseElementSegment(seg)
		if err != nil {
			return nil, 0, err
		}
		next := nthElementChild(cur, tag, n, highlightClass)
		if next == nil {
			return nil, 0, dom.ErrNotFound(fmt.Sprintf("xpath.Resolve: no element %q under segment %d of %q", seg, i, desc.XPath))
		}
		cur = next
	}

	return nil, 0, dom.ErrSyntax(fmt.Sprintf("xpath.Resolve: %q has no terminal text() segment", desc.XPath))
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// textRunIndex returns the 0-based index of the maximal run of adjacent
// text-node siblings that node belongs to, among node's parent's children.
func textRunIndex(node *dom.Node, highlightClass string) int {
	parent := node.ParentNode()
	if parent == nil {
		return 0
	}

	run := -1
	inRun := false
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() == dom.TextNode {
			if !inRun {
				run++
				inRun = true
			}
			if c == node {
				return run
			}
		} else {
			inRun = false
		}
	}
	return run
}

// elementSiblingIndex returns the 1-based position of el among its
// parent's children sharing its tag name, skipping siblings whose class
// list carries highlightClass.
func elementSiblingIndex(el *dom.Node, highlightClass string) int {
	parent := el.ParentNode()
	if parent == nil {
		return 1
	}
	tag := (*dom.Element)(el).TagName()

	n := 0
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() != dom.ElementNode {
			continue
		}
		ce := (*dom.Element)(c)
		if ce.TagName() != tag {
			continue
		}
		if highlightClass != "" && ce.ClassList().Contains(highlightClass) {
			continue
		}
		n++
		if c == el {
			return n
		}
	}
	return n
}

// nthTextRunStart returns the first raw text node of the k-th (0-based)
// maximal run of adjacent text-node children of parent.
func nthTextRunStart(parent *dom.Node, k int) *dom.Node {
	run := -1
	inRun := false
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() == dom.TextNode {
			if !inRun {
				run++
				inRun = true
				if run == k {
					return c
				}
			}
		} else {
			inRun = false
		}
	}
	return nil
}

// nthElementChild returns the n-th (1-based) child element of parent
// sharing tag, skipping children whose class list carries highlightClass.
func nthElementChild(parent *dom.Node, tag string, n int, highlightClass string) *dom.Node {
	count := 0
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() != dom.ElementNode {
			continue
		}
		ce := (*dom.Element)(c)
		if ce.TagName() != tag {
			continue
		}
		if highlightClass != "" && ce.ClassList().Contains(highlightClass) {
			continue
		}
		count++
		if count == n {
			return c
		}
	}
	return nil
}

// parseElementSegment parses a "tag[n]" segment. A bare "tag" with no
// bracket is accepted too and defaults n to 1, matching
// nthElementChild's 1-based semantics: the dialect omits the index when
// the tag is its parent's only same-tag child (e.g. spec's own
// "/p[3]/a/text()[1]").
func parseElementSegment(seg string) (tag string, n int, err error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		if seg == "" {
			return "", 0, dom.ErrSyntax(fmt.Sprintf("xpath: malformed segment %q", seg))
		}
		return seg, 1, nil
	}
	if !strings.HasSuffix(seg, "]") {
		return "", 0, dom.ErrSyntax(fmt.Sprintf("xpath: malformed segment %q", seg))
	}
	tag = seg[:open]
	n, err = strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil {
		return "", 0, dom.ErrSyntax(fmt.Sprintf("xpath: malformed index in segment %q", seg))
	}
	return tag, n, nil
}

// textSegmentIndex parses "text()" -> 0 and "text()[k]" -> k-1 (0-based
// run index), per the engine's "emit [k+1] when k > 0" convention.
func textSegmentIndex(seg string) (int, error) {
	if seg == "text()" {
		return 0, nil
	}
	open := strings.IndexByte(seg, '[')
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return 0, dom.ErrSyntax(fmt.Sprintf("xpath: malformed text() segment %q", seg))
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil {
		return 0, dom.ErrSyntax(fmt.Sprintf("xpath: malformed index in segment %q", seg))
	}
	return n - 1, nil
}
