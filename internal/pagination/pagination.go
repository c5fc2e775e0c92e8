// Package pagination turns a countable, sliceable collection into a page of
// serialized items plus navigation links.
package pagination

import (
	"context"
	"fmt"
)

// DefaultPerPage is used when the client does not request a page size.
const DefaultPerPage = 10

// MaxPerPage caps the page size regardless of what the client asks for.
const MaxPerPage = 100

// Params are the client-supplied page coordinates, prior to clamping.
type Params struct {
	Page    int
	PerPage int
}

// clamp normalizes the parameters: page >= 1 and 1 <= per_page <= cap.
func (p Params) clamp(cap int) Params {
	if cap < 1 || cap > MaxPerPage {
		cap = MaxPerPage
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > cap {
		p.PerPage = cap
	}
	return p
}

// Meta describes where the returned page sits inside the whole collection.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Links carry canonical URLs for this page and its neighbours. Next and Prev
// are null at the edges of the collection.
type Links struct {
	Self string  `json:"self"`
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// Page is the wire representation of one page of a collection.
type Page[R any] struct {
	Items []R   `json:"items"`
	Meta  Meta  `json:"_meta"`
	Links Links `json:"_links"`
}

// Source is the capability set a collection must offer to be paginated:
// a total count and an ordered slice.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, limit, offset int) ([]T, error)
}

type funcSource[T any] struct {
	count func(ctx context.Context) (int, error)
	slice func(ctx context.Context, limit, offset int) ([]T, error)
}

func (s funcSource[T]) Count(ctx context.Context) (int, error) {
	return s.count(ctx)
}

func (s funcSource[T]) Slice(ctx context.Context, limit, offset int) ([]T, error) {
	return s.slice(ctx, limit, offset)
}

// NewSource adapts a pair of functions into a Source.
func NewSource[T any](
	count func(ctx context.Context) (int, error),
	slice func(ctx context.Context, limit, offset int) ([]T, error),
) Source[T] {
	return funcSource[T]{count: count, slice: slice}
}

// Paginate fetches one page of src, serializing each item with serialize.
// cap bounds per_page for this endpoint. A page past the end of the
// collection yields empty items, not an error.
func Paginate[T, R any](ctx context.Context, src Source[T], params Params, cap int, endpoint string, serialize func(T) R) (Page[R], error) {
	p := params.clamp(cap)

	total, err := src.Count(ctx)
	if err != nil {
		return Page[R]{}, fmt.Errorf("count collection: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PerPage - 1) / p.PerPage
	}

	var items []T
	if total > 0 && p.Page <= totalPages {
		items, err = src.Slice(ctx, p.PerPage, (p.Page-1)*p.PerPage)
		if err != nil {
			return Page[R]{}, fmt.Errorf("slice collection: %w", err)
		}
	}

	serialized := make([]R, len(items))
	for i := range items {
		serialized[i] = serialize(items[i])
	}

	page := Page[R]{
		Items: serialized,
		Meta: Meta{
			Page:       p.Page,
			PerPage:    p.PerPage,
			TotalPages: totalPages,
			TotalItems: total,
		},
		Links: Links{
			Self: pageURL(endpoint, p.Page, p.PerPage),
		},
	}
	if p.Page < totalPages {
		next := pageURL(endpoint, p.Page+1, p.PerPage)
		page.Links.Next = &next
	}
	if p.Page > 1 && total > 0 {
		prev := pageURL(endpoint, p.Page-1, p.PerPage)
		page.Links.Prev = &prev
	}
	return page, nil
}

func pageURL(endpoint string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", endpoint, page, perPage)
}
