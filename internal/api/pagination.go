package api

// Pagination is the metadata block returned with every listing.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Count      int   `json:"count"`
	TotalCount int64 `json:"totalCount"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination computes the metadata for one page. Limit is guaranteed
// to be at least 1 by validation.
func NewPagination(page, limit, count int, totalCount int64) Pagination {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current:    page,
		Total:      totalPages,
		Count:      count,
		TotalCount: totalCount,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
