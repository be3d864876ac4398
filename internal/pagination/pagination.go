// Package pagination normalizes raw listing query parameters into a
// canonical page/limit/skip/sort tuple.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// Options carries the raw, possibly empty or malformed query values.
type Options struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
}

type Params struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Skip      int    `json:"skip"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// Normalize never fails: absent, non-numeric, zero and negative page/limit
// all fall back to the defaults, so Page and Limit are always >= 1 and
// Skip is always >= 0. SortBy/SortOrder pass through unvalidated; callers
// that build SQL from them are expected to whitelist.
func Normalize(o Options) Params {
	page := positiveIntOr(o.Page, DefaultPage)
	limit := positiveIntOr(o.Limit, DefaultLimit)

	sortBy := o.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	sortOrder := o.SortOrder
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}

	return Params{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

func positiveIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
