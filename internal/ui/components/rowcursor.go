package components

import "slices"

// RowCursor tracks the selected row of a table by record id and the page
// of rows that is on screen. The zero value has no rows and a page of one.
type RowCursor struct {
	ids      []string
	pos      int
	offset   int
	pageSize int
}

// NewRowCursor creates a cursor showing pageSize rows at a time.
func NewRowCursor(pageSize int) *RowCursor {
	c := &RowCursor{}
	c.SetPageSize(pageSize)
	return c
}

// SetRows replaces the row ids. The selection stays on the same id when it
// is still listed; otherwise it moves to the first row.
func (c *RowCursor) SetRows(ids []string) {
	selected, ok := c.SelectedID()
	c.ids = slices.Clone(ids)
	c.pos = 0
	if ok {
		if i := slices.Index(c.ids, selected); i >= 0 {
			c.pos = i
		}
	}
	c.offset = 0
	c.follow()
}

// SetPageSize changes how many rows are visible, keeping the selection on screen.
func (c *RowCursor) SetPageSize(n int) {
	c.pageSize = max(n, 1)
	c.follow()
}

// PageSize reports the number of visible rows.
func (c *RowCursor) PageSize() int {
	return max(c.pageSize, 1)
}

// Len reports the number of rows.
func (c *RowCursor) Len() int {
	return len(c.ids)
}

// Down selects the next row, scrolling when it leaves the page.
func (c *RowCursor) Down() {
	if c.pos < len(c.ids)-1 {
		c.pos++
		c.follow()
	}
}

// Up selects the previous row, scrolling when it leaves the page.
func (c *RowCursor) Up() {
	if c.pos > 0 {
		c.pos--
		c.follow()
	}
}

// Index is the position of the selected row.
func (c *RowCursor) Index() int {
	return c.pos
}

// SelectedID returns the id of the selected row.
func (c *RowCursor) SelectedID() (string, bool) {
	if c.pos < 0 || c.pos >= len(c.ids) {
		return "", false
	}
	return c.ids[c.pos], true
}

// Window returns the half-open range [first, last) of visible row positions.
func (c *RowCursor) Window() (first, last int) {
	return c.offset, min(c.offset+c.PageSize(), len(c.ids))
}

// follow scrolls the page the least amount that keeps pos visible.
func (c *RowCursor) follow() {
	size := c.PageSize()
	switch {
	case c.pos < c.offset:
		c.offset = c.pos
	case c.pos >= c.offset+size:
		c.offset = c.pos - size + 1
	}
	c.offset = max(c.offset, 0)
}
