// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePagination reads zero-based page and size query parameters,
// clamping anything absent or out of range to sane values.
func ParsePagination(r *http.Request) (page, size int) {
	page = 0
	size = DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page = v
		}
	}

	if raw := r.URL.Query().Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}
