package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Count   int  `json:"count"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// NewPagination builds API pagination metadata for the given page number.
func NewPagination(page int, info PageInfo) *Pagination {
	return &Pagination{
		Page:    page,
		Pages:   info.Pages,
		Count:   info.Count,
		HasPrev: info.HasPrev(),
		HasNext: info.HasNext(),
	}
}
