package types

// SortOrder is the direction of a column sort.
type SortOrder string

const (
	SortAscend  SortOrder = "ascend"
	SortDescend SortOrder = "descend"
)

// SearchMode selects how the search text is matched.
type SearchMode string

const (
	// SearchContains is a case-insensitive substring match.
	SearchContains SearchMode = "contains"
	// SearchFuzzy matches the characters of the query in order.
	SearchFuzzy SearchMode = "fuzzy"
)

// ListQuery narrows, orders and pages a listing.
type ListQuery struct {
	Search   string     `json:"q"`
	Mode     SearchMode `json:"mode"`
	SortBy   string     `json:"sort"`
	Order    SortOrder  `json:"order"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// ListResult is one page of owners plus the size of the filtered set.
type ListResult struct {
	Owners   []Owner `json:"records"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// Offset is the zero-based index of the first record on the page.
func (r ListResult) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}
