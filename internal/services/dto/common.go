package dto

// PaginatedResponse is the standard list envelope.
type PaginatedResponse struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

func NewPaginatedResponse(items interface{}, total int64, page, perPage int) *PaginatedResponse {
	return &PaginatedResponse{Items: items, Total: total, Page: page, PerPage: perPage}
}
