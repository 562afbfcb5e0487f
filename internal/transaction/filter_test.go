package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

func priced(p float64) *transaction.Transaction {
	return &transaction.Transaction{
		Title:       "Mens Casual Slim Fit",
		Description: "The color could be slightly different",
		Price:       &p,
		DateOfSale:  time.Date(2022, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestFilter_Matches_Price(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		search string
		want   bool
	}{
		{name: "StringEquality", price: 15.99, search: "15.99", want: true},
		{name: "StringEqualityWholeNumber", price: 100, search: "100", want: true},
		{name: "NumericEquality", price: 100, search: "100.0", want: true},
		{name: "NumericEqualityPadded", price: 329.85, search: "0329.850", want: true},
		{name: "ToleranceBelow", price: 100, search: "99.995", want: true},
		{name: "ToleranceAbove", price: 100, search: "100.004", want: true},
		{name: "ToleranceAroundFraction", price: 99.999, search: "100", want: true},
		{name: "OutsideTolerance", price: 99.98, search: "100", want: false},
		{name: "FarAway", price: 150, search: "100", want: false},
		{name: "NotANumber", price: 100, search: "abc", want: false},
		{name: "NaNIsNotUsable", price: 100, search: "NaN", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := transaction.Filter{Search: tt.search}
			assert.Equal(t, tt.want, f.Matches(priced(tt.price)))
		})
	}
}

func TestFilter_Matches_MissingPrice(t *testing.T) {
	tx := &transaction.Transaction{Title: "Backpack", DateOfSale: time.Now()}

	assert.False(t, transaction.Filter{Search: "100"}.Matches(tx))
	assert.True(t, transaction.Filter{Search: "pack"}.Matches(tx))
}

func TestFilter_Matches_Text(t *testing.T) {
	tx := priced(10)

	assert.True(t, transaction.Filter{Search: "slim"}.Matches(tx), "title, case-insensitive")
	assert.True(t, transaction.Filter{Search: "COLOR"}.Matches(tx), "description, case-insensitive")
	assert.False(t, transaction.Filter{Search: "s.im"}.Matches(tx), "search is literal, not a pattern")
	assert.True(t, transaction.Filter{}.Matches(tx), "empty filter")
}

func TestFilter_Matches_Month(t *testing.T) {
	tx := priced(10)

	assert.True(t, transaction.Filter{Month: 3}.Matches(tx))
	assert.False(t, transaction.Filter{Month: 4}.Matches(tx))
	assert.True(t, transaction.Filter{Month: 3, Search: "slim"}.Matches(tx))
	assert.False(t, transaction.Filter{Month: 3, Search: "jacket"}.Matches(tx), "month and search are ANDed")
}

func TestFilter_Matches_MonthIsUTC(t *testing.T) {
	// 2021-12-01T02:00 at +05:30 is still November in UTC.
	loc := time.FixedZone("IST", 5*3600+1800)
	tx := &transaction.Transaction{DateOfSale: time.Date(2021, 12, 1, 2, 0, 0, 0, loc)}

	assert.True(t, transaction.Filter{Month: 11}.Matches(tx))
	assert.False(t, transaction.Filter{Month: 12}.Matches(tx))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "150", transaction.FormatPrice(150))
	assert.Equal(t, "99.99", transaction.FormatPrice(99.99))
	assert.Equal(t, "0.5", transaction.FormatPrice(0.5))
	assert.Equal(t, "1234567.25", transaction.FormatPrice(1234567.25))
}
