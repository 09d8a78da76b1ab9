package pagination

// Navigator tracks the current page of a listing. Requests for pages outside
// [1, Total] are ignored.
type Navigator struct {
	current int
	total   int
}

// NewNavigator starts at page 1 of total.
func NewNavigator(total int) *Navigator {
	return &Navigator{current: 1, total: CapTotal(max(total, 0))}
}

// Current returns the current page.
func (n *Navigator) Current() int {
	return n.current
}

// Total returns the number of pages.
func (n *Navigator) Total() int {
	return n.total
}

// SetTotal updates the page count, capped at MaxPages. The current page is
// kept unless it no longer exists.
func (n *Navigator) SetTotal(total int) {
	n.total = CapTotal(max(total, 0))
	if n.current > n.total && n.total > 0 {
		n.current = n.total
	}
}

// GoTo moves to page and reports whether it moved.
func (n *Navigator) GoTo(page int) bool {
	if page < 1 || page > n.total || page == n.current {
		return false
	}
	n.current = page
	return true
}

// Next moves forward one page.
func (n *Navigator) Next() bool {
	return n.GoTo(n.current + 1)
}

// Prev moves back one page.
func (n *Navigator) Prev() bool {
	return n.GoTo(n.current - 1)
}

// Controls returns the pagination bar for the current position.
func (n *Navigator) Controls() Controls {
	return NewControls(n.current, n.total, DefaultWindow)
}
