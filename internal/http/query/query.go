// Package query parses the query-string parameters shared by the handlers.
package query

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

const (
	InvalidMonthMessage = "Invalid month value. Must be between 1 and 12."
	InvalidPageMessage  = "Invalid page or perPage value. Must be positive integers."
)

// Month returns the required month parameter. Missing, non-numeric and
// out-of-range values all yield transaction.ErrInvalidMonth.
func Month(r *http.Request) (int, error) {
	m, err := OptionalMonth(r)
	if err != nil {
		return 0, err
	}

	if m == nil {
		return 0, transaction.ErrInvalidMonth
	}

	return *m, nil
}

// OptionalMonth returns nil when the month parameter is absent or empty.
func OptionalMonth(r *http.Request) (*int, error) {
	s := strings.TrimSpace(r.URL.Query().Get("month"))
	if s == "" {
		return nil, nil
	}

	m, err := strconv.Atoi(s)
	if err != nil {
		return nil, transaction.ErrInvalidMonth
	}

	if err := transaction.ValidateMonth(m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Int returns def when the parameter is absent or empty. A non-numeric value
// yields transaction.ErrInvalidPage.
func Int(r *http.Request, name string, def int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, transaction.ErrInvalidPage
	}

	return n, nil
}
