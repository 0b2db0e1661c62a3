package models

import "time"

// Item is a catalog entry as persisted by the item store.
// Price keeps the raw decoded JSON value; it may be missing or malformed.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Price    any    `json:"price,omitempty"`
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// SearchInfo echoes the search query and the number of matches before paging.
type SearchInfo struct {
	Query        string `json:"query"`
	ResultsCount int    `json:"resultsCount"`
}

// ListResponse is the body of GET /api/items.
type ListResponse struct {
	Data       []Item     `json:"data"`
	Pagination Pagination `json:"pagination"`
	Search     SearchInfo `json:"search"`
}

// ListQuery holds the listing parameters.
type ListQuery struct {
	Page      int
	Limit     int
	Query     string
	SortBy    string
	SortOrder string
}

// FieldError is a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the body returned for rejected payloads.
type ValidationErrorResponse struct {
	Error     string       `json:"error"`
	Message   string       `json:"message"`
	Details   []FieldError `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
}
