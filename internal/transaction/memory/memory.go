// Package memory is an in-process transaction store. It keeps records in
// insertion order and evaluates filters with transaction.Filter.Matches.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

type Store struct {
	mu    sync.RWMutex
	items []*transaction.Transaction
	ids   map[int64]struct{}
}

func New() *Store {
	return &Store{ids: make(map[int64]struct{})}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]

	return ok, nil
}

func (s *Store) Insert(_ context.Context, tx *transaction.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[tx.ID]; ok {
		return false, nil
	}

	s.ids[tx.ID] = struct{}{}
	s.items = append(s.items, clone(tx))

	return true, nil
}

func (s *Store) Count(_ context.Context, filter transaction.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0

	for _, tx := range s.items {
		if filter.Matches(tx) {
			n++
		}
	}

	return n, nil
}

func (s *Store) List(_ context.Context, filter transaction.Filter, offset, limit int) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*transaction.Transaction

	skipped := 0

	for _, tx := range s.items {
		if len(out) == limit {
			break
		}

		if !filter.Matches(tx) {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		out = append(out, clone(tx))
	}

	return out, nil
}

func (s *Store) Totals(_ context.Context, month int) (transaction.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		totals transaction.Totals
		amount decimal.Decimal
	)

	for _, tx := range s.items {
		if tx.SaleMonth() != month {
			continue
		}

		if !tx.Sold {
			totals.NotSoldItems++
			continue
		}

		totals.SoldItems++

		if tx.Price != nil {
			amount = amount.Add(decimal.NewFromFloat(*tx.Price))
		}
	}

	totals.SaleAmount = amount.InexactFloat64()

	return totals, nil
}

func (s *Store) Prices(_ context.Context, month int) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prices []float64

	for _, tx := range s.items {
		if tx.SaleMonth() == month && tx.Price != nil {
			prices = append(prices, *tx.Price)
		}
	}

	return prices, nil
}

func (s *Store) CategoryCounts(_ context.Context, month int) ([]transaction.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)

	for _, tx := range s.items {
		if tx.SaleMonth() == month {
			counts[tx.Category]++
		}
	}

	out := make([]transaction.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, transaction.CategoryCount{Category: category, Count: n})
	}

	slices.SortFunc(out, func(a, b transaction.CategoryCount) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return out, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func clone(tx *transaction.Transaction) *transaction.Transaction {
	c := *tx
	if tx.Price != nil {
		c.Price = new(*tx.Price)
	}

	return &c
}
