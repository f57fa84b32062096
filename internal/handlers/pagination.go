package handlers

import (
	"errors"
	"strconv"
)

var errInvalidPagination = errors.New("page and limit must be positive integers")

type pageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// parsePaginationParams returns ok=false when neither page nor limit was
// given, in which case callers return the full list.
func parsePaginationParams(pageStr, limitStr string) (page, limit int, ok bool, err error) {
	if pageStr == "" && limitStr == "" {
		return 0, 0, false, nil
	}

	page, limit = 1, 20
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, false, errInvalidPagination
		}
		page = p
	}
	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, false, errInvalidPagination
		}
		limit = l
	}
	return page, limit, true, nil
}

// paginate returns the requested page of items. Pages past the end are
// empty; page and limit are compared before multiplying so huge values
// cannot overflow.
func paginate[T any](items []T, page, limit int) []T {
	pages := len(items) / limit
	if len(items)%limit != 0 {
		pages++
	}
	if page > pages {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
