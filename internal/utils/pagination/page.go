package pagination

// Window is a resolved page request: 1-based Page, bounded Limit and the
// row Offset they imply.
type Window struct {
	Page   int
	Limit  int
	Offset int
}

// Clamp resolves a page/limit pair. Non-positive values fall back to page 1
// and defaultLimit; limits above maxLimit are cut to maxLimit.
func Clamp(page int, limit int, defaultLimit int, maxLimit int) Window {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Window{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages returns how many pages of size limit hold total rows.
func TotalPages(total int, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
