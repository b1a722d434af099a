// Package pagination implements the page-window contract shared by every
// list endpoint: 1-based pages, a clamped limit, and ceil-division totals.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	// MaxLimit caps the page size server-side so a single request cannot
	// force a full-table scan through an oversized limit.
	MaxLimit = 100
)

// Params is a parsed, sanitized page window.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit query parameters, applying defaults and the
// server-side clamp. Malformed or non-positive values fall back to defaults.
func Parse(c *gin.Context) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			p.Page = page
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 1 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}

// Offset returns the row offset of the window under the entity's canonical
// order.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(totalCount/limit). A page beyond this yields an
// empty row set with totals intact; clamping is the caller's concern.
func (p Params) TotalPages(totalCount int64) int64 {
	return (totalCount + int64(p.Limit) - 1) / int64(p.Limit)
}
