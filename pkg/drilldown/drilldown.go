// Package drilldown pages a flat record set one hierarchy level at a time.
// Rows expose an identifier and a parent identifier; the table filters by a
// current parent, classifies rows as expandable or leaf against the full
// dataset, and keeps paging, sorting and column visibility as independent
// pieces of state.
package drilldown

import (
	"fmt"
	"sort"
)

// Caret is appended to the linker cell of rows that can be drilled into.
const Caret = " ▸"

// Column describes one rendered column. Groups nest via Columns; a group's
// own Cell is unused.
type Column[T any] struct {
	Name    string
	Cell    func(T) string
	Hidden  bool
	Columns []Column[T]
}

// Config wires a Table to its dataset accessors.
type Config[T any] struct {
	Columns          []Column[T]
	Identifier       func(T) string
	ParentIdentifier func(T) string
	// RootParentID is the parent value of top-level rows.
	RootParentID string
	// LinkerColumn names the one column whose cells grow a caret when the
	// row has children.
	LinkerColumn string
	PageSize     int
	// ResetSortOnDrill clears any active sort when the parent filter
	// changes. Paging never touches sort or visibility either way.
	ResetSortOnDrill bool
}

type sortState[T any] struct {
	column string
	less   func(a, b T) bool
}

// Table holds the per-instance view state for one drill-down rendering.
type Table[T any] struct {
	cfg  Config[T]
	data []T

	// identifiers that appear as someone's parent, over the whole dataset
	parentIDs map[string]bool

	currentParent string
	page          int
	pageSize      int
	hidden        map[string]bool
	sorting       *sortState[T]
}

func New[T any](cfg Config[T], data []T) (*Table[T], error) {
	if cfg.Identifier == nil || cfg.ParentIdentifier == nil {
		return nil, fmt.Errorf("identifier and parent identifier accessors are required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	t := &Table[T]{
		cfg:           cfg,
		data:          data,
		currentParent: cfg.RootParentID,
		pageSize:      cfg.PageSize,
		hidden:        map[string]bool{},
	}
	for _, c := range cfg.Columns {
		collectHidden(c, t.hidden)
	}
	t.reindex()
	return t, nil
}

func collectHidden[T any](c Column[T], hidden map[string]bool) {
	if c.Hidden {
		hidden[c.Name] = true
	}
	for _, child := range c.Columns {
		collectHidden(child, hidden)
	}
}

// Reload replaces the backing dataset, recomputing parentage. View state is
// kept except the page, which snaps back to 0.
func (t *Table[T]) Reload(data []T) {
	t.data = data
	t.page = 0
	t.reindex()
}

func (t *Table[T]) reindex() {
	t.parentIDs = make(map[string]bool, len(t.data))
	for _, row := range t.data {
		t.parentIDs[t.cfg.ParentIdentifier(row)] = true
	}
}

// HasChildren reports whether any row in the full dataset names this row as
// its parent. The check deliberately ignores the current filter and page.
func (t *Table[T]) HasChildren(row T) bool {
	return t.parentIDs[t.cfg.Identifier(row)]
}

// Drill makes the given row the current parent and snaps to page 0. Drilling
// a leaf is a no-op. Sort and column visibility survive unless configured
// otherwise.
func (t *Table[T]) Drill(row T) bool {
	if !t.HasChildren(row) {
		return false
	}
	t.currentParent = t.cfg.Identifier(row)
	t.page = 0
	if t.cfg.ResetSortOnDrill {
		t.sorting = nil
	}
	return true
}

// DrillTo filters by an explicit parent identifier without requiring the row
// itself, for callers that carry the id across requests.
func (t *Table[T]) DrillTo(parentID string) {
	t.currentParent = parentID
	t.page = 0
	if t.cfg.ResetSortOnDrill {
		t.sorting = nil
	}
}

func (t *Table[T]) CurrentParent() string { return t.currentParent }

func (t *Table[T]) filtered() []T {
	var out []T
	for _, row := range t.data {
		if t.cfg.ParentIdentifier(row) == t.currentParent {
			out = append(out, row)
		}
	}
	if t.sorting != nil {
		sort.SliceStable(out, func(i, j int) bool { return t.sorting.less(out[i], out[j]) })
	}
	return out
}

// Rows returns the current page of the current hierarchy level.
func (t *Table[T]) Rows() []T {
	rows := t.filtered()
	start := t.page * t.pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + t.pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Total counts the rows at the current level, across all pages.
func (t *Table[T]) Total() int { return len(t.filtered()) }

func (t *Table[T]) Page() int { return t.page }

// SetPage moves to a page without disturbing sort or visibility.
func (t *Table[T]) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	t.page = page
}

// SetPageSize changes the page size and keeps all other state, including the
// current page index.
func (t *Table[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	t.pageSize = size
}

func (t *Table[T]) PageSize() int { return t.pageSize }

// SortBy installs a stable sort for the current and subsequent renders.
func (t *Table[T]) SortBy(column string, less func(a, b T) bool) {
	t.sorting = &sortState[T]{column: column, less: less}
}

// SortColumn reports the active sort column, empty when unsorted.
func (t *Table[T]) SortColumn() string {
	if t.sorting == nil {
		return ""
	}
	return t.sorting.column
}

func (t *Table[T]) ClearSort() { t.sorting = nil }

func (t *Table[T]) SetColumnVisible(name string, visible bool) {
	if visible {
		delete(t.hidden, name)
	} else {
		t.hidden[name] = true
	}
}

func (t *Table[T]) ColumnVisible(name string) bool { return !t.hidden[name] }

// Columns returns the configured columns with the linker column's cell
// renderer wrapped to append a caret on expandable rows. The configured
// column slice is never mutated; wrapping copies each column on the way
// down, recursing through nested groups.
func (t *Table[T]) Columns() []Column[T] {
	return t.wrapColumns(t.cfg.Columns)
}

func (t *Table[T]) wrapColumns(cols []Column[T]) []Column[T] {
	out := make([]Column[T], len(cols))
	for i, c := range cols {
		wrapped := c
		wrapped.Hidden = t.hidden[c.Name]
		if c.Name == t.cfg.LinkerColumn && c.Cell != nil {
			base := c.Cell
			wrapped.Cell = func(row T) string {
				v := base(row)
				if t.HasChildren(row) {
					return v + Caret
				}
				return v
			}
		}
		if len(c.Columns) > 0 {
			wrapped.Columns = t.wrapColumns(c.Columns)
		}
		out[i] = wrapped
	}
	return out
}
