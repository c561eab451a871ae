package model

import (
	"github.com/enverbisevac/restmodel/types"
	"github.com/enverbisevac/restmodel/validator"
)

var (
	// DefaultPageSize specifies the default page size
	DefaultPageSize = 100
	// MaxPageSize specifies the maximum page size
	MaxPageSize = 1000
)

// PageParams are the query parameters of a paginated request.
// Pass them as the params of httputil.Client.Get.
type PageParams struct {
	Page    int `query:"page,omitempty"`
	PerPage int `query:"per_page,omitempty"`
}

// NewPageParams creates page parameters.
// The page parameter is 1-based and refers to the current page index/number.
// The perPage parameter refers to the number of items on each page; values
// outside (0, MaxPageSize] are clamped.
func NewPageParams(page, perPage int) PageParams {
	switch {
	case validator.Between(perPage, 1, MaxPageSize):
	case perPage <= 0:
		perPage = DefaultPageSize
	default:
		perPage = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return PageParams{
		Page:    page,
		PerPage: perPage,
	}
}

// Page is a paginated list of items as returned by list endpoints.
// PageCount and TotalCount are optional; absent, null or negative counters
// mean the server does not know them.
type Page[T any] struct {
	Page       int                 `json:"page" required:"true" minimum:"1"`
	PerPage    int                 `json:"per_page" required:"true" minimum:"1"`
	PageCount  types.Optional[int] `json:"page_count,omitzero"`
	TotalCount types.Optional[int] `json:"total_count,omitzero"`
	Items      []T                 `json:"items" required:"true"`
}

// Validate checks the page counters against each other.
func (p Page[T]) Validate() error {
	v := validator.Validator{}
	v.CheckField(validator.Between(len(p.Items), 0, p.PerPage), "items",
		"got %d items for a page of %d", len(p.Items), p.PerPage)

	pages, pagesOK := count(p.PageCount)
	total, totalOK := count(p.TotalCount)
	if pagesOK && totalOK {
		v.CheckField(pages == pageCount(total, p.PerPage), "page_count",
			"%d pages do not hold %d items of %d per page", pages, total, p.PerPage)
	}
	return v.Err("invalid page")
}

// HasNext reports whether another page follows. The page count decides when
// known, then the total count; otherwise a full page is assumed to have a
// successor.
func (p Page[T]) HasNext() bool {
	if pages, ok := count(p.PageCount); ok {
		return p.Page < pages
	}
	if total, ok := count(p.TotalCount); ok {
		return p.Page*p.PerPage < total
	}
	return p.PerPage > 0 && len(p.Items) == p.PerPage
}

// NextParams returns the parameters of the following page.
func (p Page[T]) NextParams() PageParams {
	return NewPageParams(p.Page+1, p.PerPage)
}

func count(o types.Optional[int]) (int, bool) {
	n, ok := o.Value()
	return n, ok && n >= 0
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
