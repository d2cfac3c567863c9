// Package paging turns page/limit query parameters into skip/limit values
// for Mongo Find calls.
package paging

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// Parse reads page and limit strings. Missing, non-numeric or non-positive
// values fall back to page 1 and DefaultLimit; limit is capped at MaxLimit
// and page is capped so Skip cannot overflow.
func Parse(page, limit string) Page {
	p := Page{Number: 1, Limit: DefaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if maxSkipPages := math.MaxInt64 / int64(p.Limit); int64(p.Number-1) > maxSkipPages {
		p.Number = int(maxSkipPages)
	}
	return p
}

// Skip is the number of documents before this page.
// It saturates at math.MaxInt64 and is never negative.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	n, l := int64(p.Number-1), int64(p.Limit)
	if n > math.MaxInt64/l {
		return math.MaxInt64
	}
	return n * l
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
