package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = errors.New("page_size must be a positive integer")
)

// SearchParams holds the ordering and windowing shared by every search.
type SearchParams struct {
	OrderBy    string
	Descending bool
	Page       int
	PageSize   int
}

// Paginated reports whether both page and page_size were supplied. A lone
// page or page_size leaves the result set unpaginated.
func (p SearchParams) Paginated() bool {
	return p.Page > 0 && p.PageSize > 0
}

func (p SearchParams) Offset() int {
	if !p.Paginated() {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// GetSearchParams extracts order_by, order_direction, page and page_size.
func GetSearchParams(c *gin.Context) (SearchParams, error) {
	params := SearchParams{
		OrderBy: strings.TrimSpace(c.Query("order_by")),
	}

	// Anything other than desc sorts ascending.
	params.Descending = strings.EqualFold(strings.TrimSpace(c.Query("order_direction")), "desc")

	if raw, ok := c.GetQuery("page"); ok && raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return SearchParams{}, ErrInvalidPage
		}
		params.Page = page
	}

	if raw, ok := c.GetQuery("page_size"); ok && raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return SearchParams{}, ErrInvalidPageSize
		}
		params.PageSize = size
	}

	return params, nil
}
