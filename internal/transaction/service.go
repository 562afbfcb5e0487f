package transaction

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	// Insert stores tx unless a record with the same ID exists. It reports whether a row was written.
	Insert(ctx context.Context, tx *Transaction) (bool, error)

	Count(ctx context.Context, filter Filter) (int, error)
	// List returns matching transactions in insertion order.
	List(ctx context.Context, filter Filter, offset, limit int) ([]*Transaction, error)

	Totals(ctx context.Context, month int) (Totals, error)
	// Prices returns the non-null prices of the month.
	Prices(ctx context.Context, month int) ([]float64, error)
	CategoryCounts(ctx context.Context, month int) ([]CategoryCount, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SearchParams struct {
	Search  string
	Month   *int
	Page    int
	PerPage int
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}

	return nil
}

func (s *Service) Search(ctx context.Context, params SearchParams) (*Page, error) {
	filter := Filter{Search: params.Search}

	if params.Month != nil {
		if err := ValidateMonth(*params.Month); err != nil {
			return nil, err
		}

		filter.Month = *params.Month
	}

	if params.Page < 1 || params.PerPage < 1 || params.Page-1 > math.MaxInt/params.PerPage {
		return nil, fmt.Errorf("%w: page=%d perPage=%d", ErrInvalidPage, params.Page, params.PerPage)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}

	txs, err := s.repo.List(ctx, filter, (params.Page-1)*params.PerPage, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &Page{
		Transactions: txs,
		CurrentPage:  params.Page,
		PerPage:      params.PerPage,
		TotalRecords: total,
		TotalPages:   (total + params.PerPage - 1) / params.PerPage,
	}, nil
}

func (s *Service) Statistics(ctx context.Context, month int) (*Statistics, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	totals, err := s.repo.Totals(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("computing totals: %w", err)
	}

	totals.SaleAmount = decimal.NewFromFloat(totals.SaleAmount).Round(2).InexactFloat64()

	return &Statistics{Month: month, Totals: totals}, nil
}

func (s *Service) BarChart(ctx context.Context, month int) ([]PriceBucket, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	prices, err := s.repo.Prices(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("loading prices: %w", err)
	}

	return Histogram(prices), nil
}

func (s *Service) PieChart(ctx context.Context, month int) ([]CategoryCount, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	counts, err := s.repo.CategoryCounts(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}

	return counts, nil
}

// Combined returns the statistics and the category tally of a month, computed concurrently.
func (s *Service) Combined(ctx context.Context, month int) (*Combined, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	var result Combined

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Statistics(gctx, month)
		result.Statistics = stats

		return err
	})

	g.Go(func() error {
		counts, err := s.PieChart(gctx, month)
		result.Categories = counts

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &result, nil
}
