package view

// pager window width: up to 5 contiguous page numbers centered on the
// current page.
const windowSize = 5

// PageItem is one slot of a pager widget: either a page number or an
// ellipsis gap.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// PageWindow returns up to windowSize contiguous page numbers centered
// on current and clamped to [1, totalPages]. When the window touches
// either end it is extended the other way so it always has
// min(windowSize, totalPages) entries.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}

	size := windowSize
	if totalPages < size {
		size = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	window := make([]int, size)
	for i := range window {
		window[i] = start + i
	}
	return window
}

// PageItems returns the full pager row: the window plus the first and
// last page, with ellipsis gaps where the window does not already
// reach them. A single page renders no pager at all.
func PageItems(current, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}

	window := PageWindow(current, totalPages)
	items := make([]PageItem, 0, len(window)+4)

	if window[0] > 1 {
		items = append(items, PageItem{Page: 1})
		if window[0] > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}

	for _, page := range window {
		items = append(items, PageItem{Page: page})
	}

	last := window[len(window)-1]
	if last < totalPages {
		if last < totalPages-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: totalPages})
	}

	return items
}
