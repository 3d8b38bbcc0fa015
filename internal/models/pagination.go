package models

// Pagination is the envelope attached to every paginated listing
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	HasMore     bool `json:"hasMore"`
}

// NewPagination computes the envelope for a page of `returned` items out of
// `total`, fetched with the given page number and page size.
func NewPagination(page, limit, returned, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	skip := (page - 1) * limit
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasMore:     skip+returned < total,
	}
}
