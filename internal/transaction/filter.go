package transaction

import (
	"math"
	"strconv"
	"strings"
)

// PriceTolerance is the band around a numeric search term within which a price still matches.
const PriceTolerance = 0.01

// Filter selects transactions. The zero value matches everything.
type Filter struct {
	Search string
	Month  int // 0 means any month
}

// SearchNumber returns the search term as a number, if it is one.
func (f Filter) SearchNumber() (float64, bool) {
	if f.Search == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(f.Search, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}

	return n, true
}

// Matches reports whether tx satisfies the filter. Stores that cannot push the
// predicate down to the database evaluate it with this method.
func (f Filter) Matches(tx *Transaction) bool {
	if f.Month != 0 && tx.SaleMonth() != f.Month {
		return false
	}

	if f.Search == "" {
		return true
	}

	term := strings.ToLower(f.Search)

	if strings.Contains(strings.ToLower(tx.Title), term) {
		return true
	}

	if strings.Contains(strings.ToLower(tx.Description), term) {
		return true
	}

	return f.matchesPrice(tx.Price)
}

// matchesPrice keeps the three comparisons separate: the textual form, the exact
// number and the tolerance band each catch a different representation mismatch.
func (f Filter) matchesPrice(price *float64) bool {
	if price == nil {
		return false
	}

	if FormatPrice(*price) == f.Search {
		return true
	}

	n, ok := f.SearchNumber()
	if !ok {
		return false
	}

	if *price == n {
		return true
	}

	return *price >= n-PriceTolerance && *price <= n+PriceTolerance
}

// FormatPrice renders a price the way it is compared against search terms:
// the shortest decimal that round-trips, without exponent (150, 99.99).
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
