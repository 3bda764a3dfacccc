package highlighter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/textcontent"
)

// Finder yields a lazy sequence of Ranges matching a subject over a
// TextContent. Next returns the next Range, or false once exhausted. Err
// reports the last non-fatal error encountered (finder construction
// failures are returned from the New*/Dispatch constructors instead).
type Finder interface {
	Next() (*Range, bool)
	Err() error
}

// XPathRangeSubject is the subject type XpathFinder resolves: a caller-
// supplied pair of XPath descriptors naming a single range.
type XPathRangeSubject struct {
	Start XPathDescriptor
	End   XPathDescriptor
}

// DispatchFinder classifies subject and constructs the matching Finder:
// string or *regexp.Regexp -> TextFinder, XPathRangeSubject -> XpathFinder.
// Any other type is rejected — per spec.md's documented "fragile default",
// this dispatch is intentionally not extensible to arbitrary subjects.
func DispatchFinder(content *textcontent.TextContent, subject interface{}, highlightClass string) (Finder, error) {
	switch s := subject.(type) {
	case string, *regexp.Regexp:
		return NewTextFinder(content, s)
	case XPathRangeSubject:
		return NewXpathFinder(content, s.Start, s.End, highlightClass), nil
	default:
		return nil, xerrors.Errorf("highlighter: dispatch: unsupported subject type %T", subject)
	}
}

// TextFinder matches a literal string (case-insensitively, Unicode-aware)
// or a regular expression over the flat text projection, non-overlapping,
// left to right.
type TextFinder struct {
	content *textcontent.TextContent

	// literal mode
	folded       string
	foldedOrigin []int // folded byte offset -> original byte offset, len(folded)+1 entries
	needle       string

	// regexp mode
	re *regexp.Regexp

	pos int
}

// NewTextFinder constructs a TextFinder over content for subject, which
// must be a string or a *regexp.Regexp.
func NewTextFinder(content *textcontent.TextContent, subject interface{}) (*TextFinder, error) {
	tf := &TextFinder{content: content}

	switch s := subject.(type) {
	case string:
		if s == "" {
			return nil, xerrors.Errorf("highlighter: TextFinder: empty literal subject")
		}
		tf.folded, tf.foldedOrigin = foldWithMapping(content.Text())
		tf.needle, _ = foldWithMapping(s)
	case *regexp.Regexp:
		tf.re = s
	default:
		return nil, xerrors.Errorf("highlighter: TextFinder: unsupported subject type %T", subject)
	}

	return tf, nil
}

// Next returns the next non-overlapping match as a Range, or false once
// the subject is exhausted.
func (f *TextFinder) Next() (*Range, bool) {
	if f.re != nil {
		return f.nextRegexp()
	}
	return f.nextLiteral()
}

// Err always returns nil: TextFinder has no failure mode beyond exhaustion.
func (f *TextFinder) Err() error { return nil }

func (f *TextFinder) nextLiteral() (*Range, bool) {
	if f.pos > len(f.folded) {
		return nil, false
	}
	idx := strings.Index(f.folded[f.pos:], f.needle)
	if idx < 0 {
		return nil, false
	}
	foldedStart := f.pos + idx
	foldedEnd := foldedStart + len(f.needle)
	f.pos = foldedEnd

	start := f.foldedOrigin[foldedStart]
	end := f.foldedOrigin[foldedEnd]
	if end <= start {
		return f.nextLiteral()
	}
	return f.rangeFromAbsolute(start, end-1)
}

func (f *TextFinder) nextRegexp() (*Range, bool) {
	if f.pos > len(f.content.Text()) {
		return nil, false
	}
	loc := f.re.FindStringIndex(f.content.Text()[f.pos:])
	if loc == nil {
		return nil, false
	}
	start := f.pos + loc[0]
	end := f.pos + loc[1]
	if loc[0] == loc[1] {
		f.pos = end + 1
	} else {
		f.pos = end
	}
	if end <= start {
		return f.nextRegexp()
	}
	return f.rangeFromAbsolute(start, end-1)
}

func (f *TextFinder) rangeFromAbsolute(startAbs, endAbs int) (*Range, bool) {
	startIdx := f.content.MarkerIndexForOffset(startAbs)
	endIdx := f.content.MarkerIndexForOffset(endAbs)
	if startIdx < 0 || endIdx < 0 {
		return nil, false
	}
	startMarker := f.content.At(startIdx)
	endMarker := f.content.At(endIdx)
	start := PositionDescriptor{Marker: startMarker, Offset: startAbs - startMarker.Offset}
	end := PositionDescriptor{Marker: endMarker, Offset: endAbs - endMarker.Offset}
	r, err := NewRange(f.content, start, end)
	if err != nil {
		return nil, false
	}
	return r, true
}

// foldWithMapping case-folds s rune by rune (so Unicode folds that change
// byte length, e.g. ß -> ss, stay correctly mapped) and returns the folded
// string alongside a slice mapping each folded byte offset back to the
// original byte offset it came from. The final entry is the sentinel
// len(s), so a match ending at len(folded) maps cleanly to len(s).
var foldCaser = cases.Fold(cases.Compact)

func foldWithMapping(s string) (folded string, origin []int) {
	var b strings.Builder
	origin = make([]int, 0, len(s)+1)

	for i, r := range s {
		out := foldCaser.String(string(r))
		if out == "" {
			out = string(r)
		}
		for range len(out) {
			origin = append(origin, i)
		}
		b.WriteString(out)
	}
	origin = append(origin, len(s))
	return b.String(), origin
}

// XpathFinder yields exactly one Range resolved from a caller-supplied
// start/end XPath descriptor pair, then false on every subsequent call —
// a two-state {pending, done} machine, so a second call is idempotent
// rather than re-resolving.
type XpathFinder struct {
	content        *textcontent.TextContent
	start, end     XPathDescriptor
	highlightClass string
	done           bool
	err            error
}

// NewXpathFinder constructs an XpathFinder for the given descriptor pair.
func NewXpathFinder(content *textcontent.TextContent, start, end XPathDescriptor, highlightClass string) *XpathFinder {
	return &XpathFinder{content: content, start: start, end: end, highlightClass: highlightClass}
}

// Next resolves the range on its first call and returns it; every call
// after that returns (nil, false) without re-resolving.
func (f *XpathFinder) Next() (*Range, bool) {
	if f.done {
		return nil, false
	}
	f.done = true

	r, err := ResolveRange(f.content, f.start, f.end, f.highlightClass)
	if err != nil {
		f.err = err
		return nil, false
	}
	return r, true
}

// Err reports the resolution failure, if Next's single resolution failed.
func (f *XpathFinder) Err() error { return f.err }
