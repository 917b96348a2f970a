package table

import (
	"iter"
	"slices"
	"strings"
)

// Cell is one rendered column of a row.
type Cell struct {
	Column  string
	Text    string
	Actions []Action
}

// RenderedRow is one record projected through a Model.
type RenderedRow struct {
	ID    string
	Cells []Cell
}

// Texts returns the cell texts in column order.
func (r RenderedRow) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// Actions returns every action offered by the row's action cells.
func (r RenderedRow) Actions() []Action {
	var out []Action
	for _, c := range r.Cells {
		out = append(out, c.Actions...)
	}
	return out
}

// Table is the result of rendering. Rows are produced lazily each time
// Rows is ranged over, so a Table can be iterated any number of times.
type Table[R Row] struct {
	Header []string
	model  Model[R]
	rows   []R
}

// Render projects rows through model. It keeps references to both and
// performs no work until the rows are iterated.
func Render[R Row](model Model[R], rows []R) Table[R] {
	return Table[R]{Header: model.Headers(), model: model, rows: rows}
}

// Len is the number of body rows.
func (t Table[R]) Len() int {
	return len(t.rows)
}

// Empty reports the zero-record case; callers show an empty-state message
// instead of a header-only grid.
func (t Table[R]) Empty() bool {
	return len(t.rows) == 0
}

// Rows yields one rendered row per record, in input order.
func (t Table[R]) Rows() iter.Seq[RenderedRow] {
	return func(yield func(RenderedRow) bool) {
		for _, row := range t.rows {
			if !yield(t.renderRow(row)) {
				return
			}
		}
	}
}

// Collect materializes all rows.
func (t Table[R]) Collect() []RenderedRow {
	return slices.Collect(t.Rows())
}

// Find renders the row whose id matches.
func (t Table[R]) Find(id string) (RenderedRow, bool) {
	for row := range t.Rows() {
		if row.ID == id {
			return row, true
		}
	}
	return RenderedRow{}, false
}

func (t Table[R]) renderRow(row R) RenderedRow {
	cells := make([]Cell, len(t.model))
	for i, col := range t.model {
		cells[i] = col.render(row)
	}
	return RenderedRow{ID: row.RowID(), Cells: cells}
}

func actionLabels(actions []Action) string {
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Disabled {
			continue
		}
		label := a.Label
		if a.Key != "" {
			label = "[" + a.Key + "] " + label
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " ")
}
