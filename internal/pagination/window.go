// Package pagination computes which page numbers are exposed as
// navigation controls.
package pagination

// DefaultWindow is the number of page buttons shown around the current page.
const DefaultWindow = 5

// MaxPages is the deepest page the catalog will serve.
const MaxPages = 500

// CapTotal limits a remote page count to MaxPages.
func CapTotal(total int) int {
	if total > MaxPages {
		return MaxPages
	}
	return total
}

// VisiblePages returns a contiguous run of page numbers, at most windowSize
// long, centered on current and clamped to [1, total]. It returns nil when
// there is nothing to paginate.
func VisiblePages(current, total, windowSize int) []int {
	if total <= 1 {
		return nil
	}
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}

	start := max(1, current-windowSize/2)
	end := min(total, start+windowSize-1)
	if end-start+1 < windowSize {
		start = max(1, end-windowSize+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Controls describes a full pagination bar.
type Controls struct {
	Pages       []int
	Current     int
	Total       int
	First       bool // jump-to-page-1 button before the window
	LeadingGap  bool // ellipsis between page 1 and the window
	Last        bool // jump-to-last button after the window
	TrailingGap bool // ellipsis between the window and the last page
	HasPrev     bool
	HasNext     bool
}

// Visible reports whether the bar is shown at all.
func (c Controls) Visible() bool {
	return c.Total > 1
}

// NewControls builds the pagination bar for current out of total pages.
// Jump buttons are suppressed when their page is already in the window.
func NewControls(current, total, windowSize int) Controls {
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}

	c := Controls{Current: current, Total: total}
	if total <= 1 {
		return c
	}

	c.Pages = VisiblePages(current, total, windowSize)
	first, last := c.Pages[0], c.Pages[len(c.Pages)-1]

	c.First = current > windowSize-2 && first > 1
	c.LeadingGap = c.First && current > windowSize-1 && first > 2
	c.Last = current < total-windowSize+3 && last < total
	c.TrailingGap = c.Last && current < total-windowSize+2 && last < total-1
	c.HasPrev = current > 1
	c.HasNext = current < total
	return c
}
