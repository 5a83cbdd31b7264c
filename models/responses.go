package models

// DataResponse is the standard envelope for endpoints returning a single
// record.
type DataResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// ListResponse is the standard envelope for paginated collection endpoints.
type ListResponse[T any] struct {
	Data []T `json:"data"`

	// Total is the number of records matching the query before pagination.
	Total int64 `json:"total"`

	// Page is the 1-based page number derived from offset and limit.
	Page int64 `json:"page"`

	// Size is the page size the client requested.
	Size int64 `json:"size"`

	// Pages is the total number of pages available.
	Pages int64 `json:"pages"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
