package highlighter

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/xerrors"
)

// Cursor is a logical pointer over the sorted, enabled-highlight sequence:
// index -1 when empty, total the count of markers currently in view.
type Cursor struct {
	markers []HighlightMarker
	index   int
	total   int
}

// NewCursor returns an empty Cursor.
func NewCursor() *Cursor {
	return &Cursor{index: -1}
}

// Clear resets the cursor over a freshly computed marker sequence (already
// ordered by offset, ties broken by insertion order), setting index to -1.
func (c *Cursor) Clear(markers []HighlightMarker) {
	c.markers = markers
	c.total = len(markers)
	c.index = -1
}

// Index returns the current position, or -1 if empty or unset.
func (c *Cursor) Index() int { return c.index }

// Total returns the number of markers currently in view.
func (c *Cursor) Total() int { return c.total }

// Set moves the cursor to index i modulo total. reverse only affects which
// direction an out-of-range i is treated as having rolled over from; Go's
// floored modulo below produces the same landing index either way, so the
// parameter is accepted (matching the documented surface) but doesn't
// change the result.
func (c *Cursor) Set(i int, reverse bool) (HighlightMarker, bool) {
	_ = reverse
	if c.total == 0 {
		c.index = -1
		return HighlightMarker{}, false
	}
	c.index = ((i % c.total) + c.total) % c.total
	return c.markers[c.index], true
}

// Next advances the cursor, rolling forward to 0 past the last marker.
func (c *Cursor) Next() (HighlightMarker, bool) {
	if c.total == 0 {
		return HighlightMarker{}, false
	}
	return c.Set(c.index+1, false)
}

// Prev retreats the cursor, rolling backward to total-1 before the first marker.
func (c *Cursor) Prev() (HighlightMarker, bool) {
	if c.total == 0 {
		return HighlightMarker{}, false
	}
	if c.index < 0 {
		return c.Set(c.total-1, true)
	}
	return c.Set(c.index-1, true)
}

// QueryFilter decides which query sets contribute markers to the Cursor:
// every set, a name whitelist, or an expr-lang boolean predicate evaluated
// per query set.
type QueryFilter struct {
	mode      string
	whitelist map[string]bool
	program   *vm.Program
}

// AllQueries returns a filter that includes every query set.
func AllQueries() *QueryFilter { return &QueryFilter{mode: "all"} }

// WhitelistQueries returns a filter that includes only the named sets.
func WhitelistQueries(names []string) *QueryFilter {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &QueryFilter{mode: "whitelist", whitelist: set}
}

// queryEnv is the environment an iterable-queries predicate evaluates
// against, one query set at a time.
type queryEnv struct {
	Name    string
	Enabled bool
	Length  int
}

// PredicateQueries compiles src (an expr-lang boolean expression over
// Name/Enabled/Length) once; Includes evaluates it per query set. Lets a
// caller ask the cursor to iterate, e.g., "Enabled && Length > 1".
func PredicateQueries(src string) (*QueryFilter, error) {
	program, err := expr.Compile(src, expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return nil, xerrors.Errorf("highlighter: compile iterable-queries predicate: %w", err)
	}
	return &QueryFilter{mode: "predicate", program: program}, nil
}

// Includes reports whether q's markers should be visible to the cursor.
func (f *QueryFilter) Includes(q *QuerySet) (bool, error) {
	switch f.mode {
	case "all":
		return true, nil
	case "whitelist":
		return f.whitelist[q.Name], nil
	case "predicate":
		out, err := expr.Run(f.program, queryEnv{Name: q.Name, Enabled: q.Enabled, Length: q.Length})
		if err != nil {
			return false, xerrors.Errorf("highlighter: run iterable-queries predicate: %w", err)
		}
		b, ok := out.(bool)
		if !ok {
			return false, xerrors.Errorf("highlighter: iterable-queries predicate returned non-bool %T", out)
		}
		return b, nil
	default:
		return false, nil
	}
}
