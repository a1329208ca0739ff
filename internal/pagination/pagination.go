package pagination

import "strings"

// Pages returns how many pages a list of totalItems needs at the given page
// size. There is no artificial cap: the page count always reflects the real
// total.
func Pages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Clamp pins a requested page number into [1, totalPages] so asking for a page
// past the end renders the last page instead of faulting. Empty lists clamp
// to page 1.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Bounds returns the [lo, hi) slice indexes of the requested page within a
// list of totalItems.
func Bounds(page, pageSize, totalItems int) (int, int) {
	page = Clamp(page, Pages(totalItems, pageSize))
	lo := (page - 1) * pageSize
	if lo > totalItems {
		lo = totalItems
	}
	if lo < 0 {
		lo = 0
	}
	hi := lo + pageSize
	if hi > totalItems {
		hi = totalItems
	}
	return lo, hi
}

// Window returns the strip of page numbers the pager renders around the
// current page: at most width entries, shifted to stay within [1, totalPages].
func Window(current, totalPages, width int) []int {
	if totalPages < 1 || width < 1 {
		return nil
	}
	if width > totalPages {
		width = totalPages
	}
	current = Clamp(current, totalPages)

	start := current - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > totalPages {
		start = totalPages - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Matches reports whether the search term occurs in any of the fields,
// case-insensitively. An empty term matches everything, so a cleared search
// box shows the full list again.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
