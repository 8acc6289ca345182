package util

import (
	"strings"
	"time"
)

// Page limits for list endpoints.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// NormalizePage clamps a requested page and page size into the supported range.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return page, perPage
}

// TotalPages returns how many pages of perPage items hold total items.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}

	return int((total + int64(perPage) - 1) / int64(perPage))
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first instant of t's calendar month in t's location.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()

	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthAbbreviation returns the uppercase three-letter English month name, e.g. "JAN".
func MonthAbbreviation(m time.Month) string {
	return strings.ToUpper(m.String()[:3])
}
