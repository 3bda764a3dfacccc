package highlighter

import (
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/textcontent"
)

// Logger receives diagnostic messages for failures the registry's
// transaction queue swallows rather than raises (per spec.md §7, batched
// operations are best-effort; one failure does not roll back the others).
// *log.Logger satisfies this directly.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Options configures a Registry at construction.
type Options struct {
	Container *dom.Node // root element to search and mutate; required

	MaxHighlight        int           // upper bound on the rotating id_highlight class index
	UseQueryAsClass     bool          // add a per-query "highlight-<name>" class to wrappers
	Normalise           bool          // normalise the container and rebuild TextContent after Remove
	ToggleEntitiesDelay time.Duration // UI-only; carried through for embedders, unused by the core

	HighlightClass string // base wrapper class, default "highlight"
	DisabledClass  string // class toggled on disable/enable, default "disabled"
	Tag            string // wrapper element name, default "span"

	Logger Logger // default log.Default()
}

// QuerySet is a named bundle of queries sharing a visual group and a
// contiguous highlight id range.
type QuerySet struct {
	Name        string
	Enabled     bool
	IDHighlight int
	ID          int // first highlight id owned by this set
	Length      int // current highlight count; ids [ID, ID+Length) are live
	Reserve     *int
}

// HighlightMarker pins one highlight in the registry's globally sorted
// marker list.
type HighlightMarker struct {
	Query  *QuerySet
	Index  int // ordinal within Query
	Offset int // absolute character offset
}

// Stats summarizes registry-wide counts.
type Stats struct {
	Queries   int
	Total     int
	Highlight int
}

// HostSelection is the host environment's live text selection — the
// out-of-scope collaborator spec.md §1 names. Registry.GetSelectedRange
// reads it but never constructs or owns it.
type HostSelection interface {
	AnchorNode() *dom.Node
	AnchorOffset() int
	FocusNode() *dom.Node
	FocusOffset() int
	String() string // the selection's rendered text, for cross-node length
}

// Registry is the HtmlHighlighter: it owns the query-set table, the
// globally sorted marker list, the TextContent projection, and the
// Cursor. Public mutating operations enqueue deferred actions; Apply
// drains the queue, logging per-action failures without rolling back
// earlier ones.
type Registry struct {
	opts      Options
	container *dom.Node
	content   *textcontent.TextContent

	sets    map[string]*QuerySet
	markers []HighlightMarker // globally sorted by Offset, ties in insertion order
	stats   Stats
	nextID  int

	queue []func() error

	cursor   *Cursor
	iterable *QueryFilter

	hostSelection HostSelection
}

// New constructs a Registry bound to opts.Container, building its initial
// TextContent immediately.
func New(opts Options) (*Registry, error) {
	if opts.Container == nil {
		return nil, xerrors.Errorf("highlighter: Options.Container is required")
	}
	if opts.MaxHighlight < 1 {
		opts.MaxHighlight = 1
	}
	if opts.HighlightClass == "" {
		opts.HighlightClass = "highlight"
	}
	if opts.DisabledClass == "" {
		opts.DisabledClass = "disabled"
	}
	if opts.Tag == "" {
		opts.Tag = "span"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Registry{
		opts:      opts,
		container: opts.Container,
		content:   textcontent.Build(opts.Container),
		sets:      make(map[string]*QuerySet),
		cursor:    NewCursor(),
		iterable:  AllQueries(),
	}, nil
}

// Stats returns a snapshot of the registry's global statistics.
func (r *Registry) Stats() Stats { return r.stats }

// Empty reports whether the registry holds no query sets.
func (r *Registry) Empty() bool { return len(r.sets) == 0 }

// QuerySets returns the registry's current query sets, keyed by name. The
// returned map is the registry's own live table — callers (e.g. package
// diag) must treat it as read-only.
func (r *Registry) QuerySets() map[string]*QuerySet { return r.sets }

// LastIdOf returns the last highlight id owned by name.
func (r *Registry) LastIdOf(name string) (int, error) {
	q, ok := r.sets[name]
	if !ok {
		return 0, xerrors.Errorf("highlighter: LastIdOf: query set %q does not exist", name)
	}
	return q.ID + q.Length - 1, nil
}

// SetHostSelection installs the host environment's live selection, read by
// GetSelectedRange.
func (r *Registry) SetHostSelection(sel HostSelection) { r.hostSelection = sel }

// ClearSelectedRange discards the installed host selection.
func (r *Registry) ClearSelectedRange() { r.hostSelection = nil }

// Refresh rebuilds TextContent from the current state of the container.
// Required after any DOM mutation the registry didn't itself perform.
func (r *Registry) Refresh() {
	r.content = textcontent.Build(r.container)
}

// SetIterableQueries installs the filter Cursor uses to decide which query
// sets' markers it iterates over (nil resets to "all").
func (r *Registry) SetIterableQueries(filter *QueryFilter) {
	if filter == nil {
		filter = AllQueries()
	}
	r.iterable = filter
	r.recomputeCursor()
}

// Next advances the cursor over the enabled, iterable highlight sequence.
func (r *Registry) Next() (HighlightMarker, bool) { return r.cursor.Next() }

// Prev retreats the cursor over the enabled, iterable highlight sequence.
func (r *Registry) Prev() (HighlightMarker, bool) { return r.cursor.Prev() }

// Add enqueues a deferred add of a new query set. queries are finder
// subjects (string, *regexp.Regexp, or XPathRangeSubject); reserve, if
// non-nil, caps the number of hits this set will accept and reserves that
// much id-space for a later Append.
func (r *Registry) Add(name string, queries []interface{}, enabled bool, reserve *int) {
	r.queue = append(r.queue, func() error { return r.doAdd(name, queries, enabled, reserve) })
}

// Append enqueues a deferred append of additional hits to an existing set.
func (r *Registry) Append(name string, queries []interface{}, enabled bool) {
	r.queue = append(r.queue, func() error { return r.doAppend(name, queries, enabled) })
}

// Remove enqueues a deferred removal of a query set.
func (r *Registry) Remove(name string) {
	r.queue = append(r.queue, func() error { return r.doRemove(name) })
}

// Enable enqueues a deferred enable of a query set.
func (r *Registry) Enable(name string) {
	r.queue = append(r.queue, func() error { return r.setEnabled(name, true) })
}

// Disable enqueues a deferred disable of a query set.
func (r *Registry) Disable(name string) {
	r.queue = append(r.queue, func() error { return r.setEnabled(name, false) })
}

// Clear enqueues a deferred removal of every query set. If reset, nextID
// and the rotating highlight-group counter are zeroed too.
func (r *Registry) Clear(reset bool) {
	r.queue = append(r.queue, func() error { return r.doClear(reset) })
}

// Apply drains the transaction queue in enqueue order, logging and
// skipping any action that fails rather than rolling back prior ones.
func (r *Registry) Apply() {
	actions := r.queue
	r.queue = nil
	for _, action := range actions {
		if err := action(); err != nil {
			r.opts.Logger.Printf("highlighter: transaction failed: %v", err)
		}
	}
	r.recomputeCursor()
}

type queryHits struct {
	ranges []*Range
	err    error
}

// collectHits runs a Finder per query concurrently — each Finder only
// reads the frozen TextContent snapshot, no DOM mutation happens yet — so
// the read side of Add/Append can fan out while the commit side stays
// sequential in query order.
func (r *Registry) collectHits(queries []interface{}) []queryHits {
	results := make([]queryHits, len(queries))

	var g errgroup.Group
	for i, subject := range queries {
		i, subject := i, subject
		g.Go(func() error {
			finder, err := DispatchFinder(r.content, subject, r.opts.HighlightClass)
			if err != nil {
				results[i].err = err
				return nil
			}
			for {
				rng, ok := finder.Next()
				if !ok {
					results[i].err = finder.Err()
					return nil
				}
				results[i].ranges = append(results[i].ranges, rng)
			}
		})
	}
	_ = g.Wait() // each Go func always returns nil; per-query errors travel via results[i].err

	return results
}

func (r *Registry) doAdd(name string, queries []interface{}, enabled bool, reserve *int) error {
	if _, exists := r.sets[name]; exists {
		if err := r.doRemove(name); err != nil {
			return xerrors.Errorf("highlighter: add %q: removing existing set: %w", name, err)
		}
	}

	q := &QuerySet{
		Name:        name,
		Enabled:     enabled,
		IDHighlight: r.stats.Highlight,
		ID:          r.nextID,
	}

	hits := r.collectHits(queries)

	count := 0
	reserveExceeded := false
	for _, h := range hits {
		if h.err != nil {
			r.opts.Logger.Printf("highlighter: add %q: finder error: %v", name, h.err)
		}
		if reserveExceeded {
			continue
		}
		for _, rng := range h.ranges {
			if reserve != nil && count >= *reserve {
				r.opts.Logger.Printf("highlighter: add %q: reserve %d exceeded, dropping hit", name, *reserve)
				reserveExceeded = true
				break
			}
			if !r.commitHit(q, rng, count, enabled, name) {
				continue
			}
			count++
		}
	}

	q.Length = count
	if reserve != nil && *reserve > count {
		r.nextID += *reserve
		q.Reserve = reserve
	} else {
		r.nextID += count
	}
	r.stats.Highlight = (r.stats.Highlight + 1) % r.opts.MaxHighlight
	r.stats.Queries++
	r.sets[name] = q
	return nil
}

func (r *Registry) doAppend(name string, queries []interface{}, enabled bool) error {
	q, ok := r.sets[name]
	if !ok {
		return xerrors.Errorf("highlighter: append: query set %q does not exist", name)
	}

	hits := r.collectHits(queries)

	reserveExceeded := false
	for _, h := range hits {
		if h.err != nil {
			r.opts.Logger.Printf("highlighter: append %q: finder error: %v", name, h.err)
		}
		if reserveExceeded {
			continue
		}
		for _, rng := range h.ranges {
			if q.Reserve != nil && q.Length >= *q.Reserve {
				r.opts.Logger.Printf("highlighter: append %q: reserve %d exceeded, dropping hit", name, *q.Reserve)
				reserveExceeded = true
				break
			}
			if !r.commitHit(q, rng, q.Length, enabled, name) {
				continue
			}
			q.Length++
		}
	}

	return nil
}

// commitHit wraps rng as the next highlight for q and, on success, inserts
// its marker into the global list. Returns false (and logs) on wrap
// failure, leaving q's length/markers untouched.
func (r *Registry) commitHit(q *QuerySet, rng *Range, index int, enabled bool, actionName string) bool {
	id := q.ID + index
	_, err := Highlight(rng, WrapOptions{
		Tag:            r.opts.Tag,
		ID:             id,
		HighlightClass: r.opts.HighlightClass,
		GroupClass:     fmt.Sprintf("highlight-id_%d", q.IDHighlight),
		QueryClass:     r.queryClass(q.Name),
		DisabledClass:  r.opts.DisabledClass,
		Disabled:       !enabled,
	})
	if err != nil {
		r.opts.Logger.Printf("highlighter: %s %q: wrap failed: %v", actionName, q.Name, err)
		return false
	}

	abs := rng.Start.Absolute()
	r.insertMarker(HighlightMarker{Query: q, Index: index, Offset: abs})
	if enabled {
		r.stats.Total++
	}
	return true
}

func (r *Registry) queryClass(name string) string {
	if !r.opts.UseQueryAsClass {
		return ""
	}
	return "highlight-" + name
}

// insertMarker inserts m into the globally sorted marker list via binary
// search: first index whose offset exceeds m.Offset, so ties land after
// every existing marker at the same offset.
func (r *Registry) insertMarker(m HighlightMarker) {
	i := sort.Search(len(r.markers), func(j int) bool {
		return r.markers[j].Offset > m.Offset
	})
	r.markers = append(r.markers, HighlightMarker{})
	copy(r.markers[i+1:], r.markers[i:])
	r.markers[i] = m
}

func (r *Registry) doRemove(name string) error {
	q, ok := r.sets[name]
	if !ok {
		return xerrors.Errorf("highlighter: remove: query set %q does not exist", name)
	}

	for id := q.ID; id < q.ID+q.Length; id++ {
		Unhighlight(r.container, id)
	}

	kept := r.markers[:0]
	for _, m := range r.markers {
		if m.Query != q {
			kept = append(kept, m)
		}
	}
	r.markers = kept

	r.stats.Queries--
	if q.Enabled {
		r.stats.Total -= q.Length
	}
	delete(r.sets, name)

	if r.opts.Normalise {
		r.container.Normalize()
		r.Refresh()
	}
	return nil
}

func (r *Registry) setEnabled(name string, enabled bool) error {
	q, ok := r.sets[name]
	if !ok {
		return xerrors.Errorf("highlighter: set %q does not exist", name)
	}
	if q.Enabled == enabled {
		return nil
	}

	for id := q.ID; id < q.ID+q.Length; id++ {
		ToggleDisabled(r.container, id, r.opts.DisabledClass, !enabled)
	}
	if enabled {
		r.stats.Total += q.Length
	} else {
		r.stats.Total -= q.Length
	}
	q.Enabled = enabled
	return nil
}

func (r *Registry) doClear(reset bool) error {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	for _, name := range names {
		if err := r.doRemove(name); err != nil {
			return err
		}
	}
	if !r.Empty() {
		return xerrors.Errorf("highlighter: clear: registry not empty after removing all sets")
	}
	if reset {
		r.nextID = 0
		r.stats.Highlight = 0
	}
	return nil
}

// recomputeCursor rebuilds the Cursor's view from the global marker list,
// keeping only enabled sets that pass the iterable-queries filter. The
// global list is already offset-sorted with ties in insertion order, so a
// simple filter preserves the ordering Cursor needs.
func (r *Registry) recomputeCursor() {
	var filtered []HighlightMarker
	for _, m := range r.markers {
		if !m.Query.Enabled {
			continue
		}
		ok, err := r.iterable.Includes(m.Query)
		if err != nil {
			r.opts.Logger.Printf("highlighter: iterable-queries predicate error: %v", err)
			continue
		}
		if !ok {
			continue
		}
		filtered = append(filtered, m)
	}
	r.cursor.Clear(filtered)
}

// GetSelectedRange converts the installed host selection into a Range, or
// returns (nil, nil) if there is no usable selection (absent, or anchor/
// focus is not a text node — not an error per spec.md §7).
func (r *Registry) GetSelectedRange() (*Range, error) {
	sel := r.hostSelection
	if sel == nil {
		return nil, nil
	}

	anchor, focus := sel.AnchorNode(), sel.FocusNode()
	if anchor == nil || focus == nil || anchor.NodeType() != dom.TextNode || focus.NodeType() != dom.TextNode {
		return nil, nil
	}

	anchorIdx := r.content.Find(anchor)
	focusIdx := r.content.Find(focus)
	if anchorIdx < 0 || focusIdx < 0 {
		return nil, xerrors.Errorf("highlighter: GetSelectedRange: selection references a node outside the container")
	}

	anchorAbs := r.content.At(anchorIdx).Offset + sel.AnchorOffset()
	focusAbs := r.content.At(focusIdx).Offset + sel.FocusOffset()

	var length int
	if anchor == focus {
		length = sel.FocusOffset() - sel.AnchorOffset()
		if length < 0 {
			length = -length
		}
	} else {
		length = len(sel.String())
	}
	if length == 0 {
		return nil, xerrors.Errorf("highlighter: GetSelectedRange: zero-length selection is not representable")
	}

	startAbs := anchorAbs
	if focusAbs < startAbs {
		startAbs = focusAbs
	}
	endAbs := startAbs + length - 1

	return NewRange(r.content, r.positionForAbsolute(startAbs), r.positionForAbsolute(endAbs))
}

func (r *Registry) positionForAbsolute(abs int) PositionDescriptor {
	idx := r.content.MarkerIndexForOffset(abs)
	m := r.content.At(idx)
	return descriptorRel(m, abs-m.Offset)
}
