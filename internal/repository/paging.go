package repository

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// normalizePage clamps pagination parameters to sane bounds
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// pageCount returns the number of pages needed for total items
func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
