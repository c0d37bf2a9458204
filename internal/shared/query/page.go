package query

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page number and a page size.
type Page struct {
	Number int
	Limit  int
}

// DefaultPagination is page 1 of 10.
func DefaultPagination() Page {
	return Page{Number: DefaultPage, Limit: DefaultLimit}
}

// ParsePage reads the page and limit query values. Both must parse as
// positive integers for either to apply; otherwise the defaults are used.
// Absent values also fall back to their defaults individually.
// Malformed input never produces an error.
func ParsePage(rawPage, rawLimit string) Page {
	p := DefaultPagination()

	number, numberOK := parsePositive(rawPage, DefaultPage)
	limit, limitOK := parsePositive(rawLimit, DefaultLimit)
	if !numberOK || !limitOK {
		return p
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}
	p.Number = number
	p.Limit = limit
	return p
}

func parsePositive(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Skip is the number of rows before this page: (page-1)*limit.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}
