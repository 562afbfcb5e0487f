package transaction

import (
	"errors"
	"time"
)

var (
	ErrInvalidMonth = errors.New("invalid month value. Must be between 1 and 12")
	ErrInvalidPage  = errors.New("invalid page or perPage value. Must be positive integers")
)

// Transaction is a single product sale record ingested from the seed source.
// Records are write-once: they are inserted by the seed loader and only read afterwards.
type Transaction struct {
	ID          int64
	Title       string
	Price       *float64 // nil when the source omitted it
	Description string
	Category    string
	Image       string
	Sold        bool
	DateOfSale  time.Time
}

// SaleMonth is the calendar month (1-12) of DateOfSale in UTC.
func (t *Transaction) SaleMonth() int {
	return int(t.DateOfSale.UTC().Month())
}

// Page is one page of a filtered transaction listing.
type Page struct {
	Transactions []*Transaction
	CurrentPage  int
	PerPage      int
	TotalRecords int
	TotalPages   int
}

// Totals is the sold/not sold summary of a month.
type Totals struct {
	SaleAmount   float64
	SoldItems    int
	NotSoldItems int
}

// Statistics is Totals tagged with the month it was computed for.
type Statistics struct {
	Month int
	Totals
}

// CategoryCount is the number of transactions of a category in a month.
type CategoryCount struct {
	Category string
	Count    int
}

// Combined bundles the statistics and category tally of a month.
type Combined struct {
	Statistics *Statistics
	Categories []CategoryCount
}
