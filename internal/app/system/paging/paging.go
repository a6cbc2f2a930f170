// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the number of rows shown in paged lists when the client
// does not ask for a specific page size.
const DefaultLimit = 10

// MaxLimit caps the page size a client can request.
const MaxLimit = 100

// Params holds the parsed page/limit pair for offset pagination.
type Params struct {
	Page  int
	Limit int
}

// Parse extracts the "page" and "limit" query parameters. Missing or
// invalid values fall back to page 1 and DefaultLimit; limit is clamped
// to MaxLimit.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of documents to skip for Mongo Find().SetSkip().
func (p Params) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

// Limit64 returns the page size as int64 for Mongo Find().SetLimit().
func (p Params) Limit64() int64 { return int64(p.Limit) }

// Meta describes one page of a list response.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewMeta computes the page metadata for a total row count.
func NewMeta(p Params, total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages < 1 {
		pages = 1
	}
	return Meta{
		CurrentPage: p.Page,
		TotalPages:  pages,
		Total:       total,
		HasNextPage: p.Page < pages,
		HasPrevPage: p.Page > 1,
	}
}
