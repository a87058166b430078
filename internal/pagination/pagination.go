package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination describes one page of a list result. Both product list paths return it.
type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

// New computes PageCount as ceil(total / limit). Page and limit must already be normalized.
func New(page, limit, total int) Pagination {
	pageCount := 0
	if limit > 0 {
		pageCount = (total + limit - 1) / limit
	}
	return Pagination{
		Page:      page,
		Limit:     limit,
		Total:     total,
		PageCount: pageCount,
	}
}

// Normalize replaces non-positive values with the defaults.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
