package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

var errMissingID = errors.New("missing id")

// item is one element of the upstream JSON array.
type item struct {
	ID          *int64          `json:"id"`
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Sold        bool            `json:"sold"`
	DateOfSale  string          `json:"dateOfSale"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func (it *item) toTransaction(now time.Time) (*transaction.Transaction, error) {
	if it.ID == nil {
		return nil, errMissingID
	}

	price, err := parsePrice(it.Price)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", *it.ID, err)
	}

	date, err := parseDate(it.DateOfSale, now)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", *it.ID, err)
	}

	return &transaction.Transaction{
		ID:          *it.ID,
		Title:       it.Title,
		Price:       price,
		Description: it.Description,
		Category:    it.Category,
		Image:       it.Image,
		Sold:        it.Sold,
		DateOfSale:  date,
	}, nil
}

// parsePrice accepts a JSON number, a numeric string, or null/absent.
func parsePrice(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid price %s", raw)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("invalid price %q", s)
	}

	return &n, nil
}

// parseDate returns now for an empty value. Values without a zone are taken as UTC.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.UTC(), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid dateOfSale %q", s)
}
