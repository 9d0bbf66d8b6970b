package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 20
	maxPerPage     = 1000
)

// Pagination carries the page/per_page query parameters of a list request.
type Pagination struct {
	Page    int
	PerPage int
}

// ParsePagination reads pagination query parameters, falling back to page 1
// and 20 items per page. per_page is capped at 1000.
func ParsePagination(c *gin.Context) Pagination {
	p := Pagination{Page: 1, PerPage: defaultPerPage}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v >= 1 {
		p.PerPage = v
		if p.PerPage > maxPerPage {
			p.PerPage = maxPerPage
		}
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) Limit() int {
	return p.PerPage
}

// SetHeaders writes the pagination response headers for a list of total
// items.
func (p Pagination) SetHeaders(c *gin.Context, total int64) {
	totalPages := (total + int64(p.PerPage) - 1) / int64(p.PerPage)
	c.Header("X-Total", strconv.FormatInt(total, 10))
	c.Header("X-Total-Pages", strconv.FormatInt(totalPages, 10))
	c.Header("X-Per-Page", strconv.Itoa(p.PerPage))
	c.Header("X-Page", strconv.Itoa(p.Page))
}
