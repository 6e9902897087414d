package catalog

import "github.com/couchcryptid/parks-data-service/internal/domain"

// PageSize is how many parks each page of results reveals.
const PageSize = 10

// Cursor tracks how much of a result set is visible. The visible count only
// grows, one page per More call, and never exceeds the result length.
type Cursor struct {
	pageSize int
	total    int
	visible  int
}

// NewCursor starts a cursor over total results showing the first page.
// A non-positive pageSize uses PageSize.
func NewCursor(total, pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	total = max(total, 0)
	return &Cursor{
		pageSize: pageSize,
		total:    total,
		visible:  min(pageSize, total),
	}
}

// More reveals the next page and returns the new visible count.
func (c *Cursor) More() int {
	c.visible = min(c.visible+c.pageSize, c.total)
	return c.visible
}

// Visible returns how many results are currently revealed.
func (c *Cursor) Visible() int { return c.visible }

// Total returns the length of the underlying result set.
func (c *Cursor) Total() int { return c.total }

// HasMore reports whether More would reveal anything.
func (c *Cursor) HasMore() bool { return c.visible < c.total }

// Window returns a deep copy of the visible prefix of items.
func (c *Cursor) Window(items []domain.Park) []domain.Park {
	out := make([]domain.Park, min(c.visible, len(items)))
	for i := range out {
		out[i] = items[i].Clone()
	}
	return out
}
