package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

// Dialect selects the placeholder style of the target database.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func New(db *sql.DB, dialect Dialect) *Store {
	var ph sq.PlaceholderFormat = sq.Dollar
	if dialect == SQLite {
		ph = sq.Question
	}

	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(ph),
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var transactionColumns = []string{
	"id", "title", "price", "description", "category", "image", "sold", "date_of_sale",
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx    transaction.Transaction
		price sql.NullFloat64
	)

	if err := s.Scan(
		&tx.ID, &tx.Title, &price, &tx.Description, &tx.Category, &tx.Image, &tx.Sold, &tx.DateOfSale,
	); err != nil {
		return nil, err
	}

	if price.Valid {
		tx.Price = &price.Float64
	}

	return &tx, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := s.sb.Select("1").From("transactions").Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("building exists query: %w", err)
	}

	var one int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("checking transaction %d: %w", id, err)
	}

	return true, nil
}

// Insert relies on the unique id constraint, so concurrent seed runs never duplicate a record.
func (s *Store) Insert(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	var (
		price     sql.NullFloat64
		priceText sql.NullString
	)

	if tx.Price != nil {
		price = sql.NullFloat64{Float64: *tx.Price, Valid: true}
		priceText = sql.NullString{String: transaction.FormatPrice(*tx.Price), Valid: true}
	}

	query, args, err := s.sb.Insert("transactions").
		Columns(
			"id", "title", "title_lc", "price", "price_text", "description", "description_lc",
			"category", "image", "sold", "date_of_sale", "sale_month",
		).
		Values(
			tx.ID, tx.Title, strings.ToLower(tx.Title), price, priceText, tx.Description, strings.ToLower(tx.Description),
			tx.Category, tx.Image, tx.Sold, tx.DateOfSale.UTC(), tx.SaleMonth(),
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("inserting transaction %d: %w", tx.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n > 0, nil
}

func (s *Store) Count(ctx context.Context, filter transaction.Filter) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("transactions").Where(predicate(filter)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return n, nil
}

func (s *Store) List(ctx context.Context, filter transaction.Filter, offset, limit int) ([]*transaction.Transaction, error) {
	query, args, err := s.sb.Select(transactionColumns...).
		From("transactions").
		Where(predicate(filter)).
		OrderBy("seq ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) Totals(ctx context.Context, month int) (transaction.Totals, error) {
	query, args, err := s.sb.Select(
		"COALESCE(SUM(CASE WHEN sold THEN price ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN sold THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN sold THEN 0 ELSE 1 END), 0)",
	).
		From("transactions").
		Where(sq.Eq{"sale_month": month}).
		ToSql()
	if err != nil {
		return transaction.Totals{}, fmt.Errorf("building totals query: %w", err)
	}

	var t transaction.Totals
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&t.SaleAmount, &t.SoldItems, &t.NotSoldItems); err != nil {
		return transaction.Totals{}, fmt.Errorf("computing totals: %w", err)
	}

	return t, nil
}

func (s *Store) Prices(ctx context.Context, month int) ([]float64, error) {
	query, args, err := s.sb.Select("price").
		From("transactions").
		Where(sq.Eq{"sale_month": month}).
		Where(sq.NotEq{"price": nil}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building prices query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading prices: %w", err)
	}
	defer rows.Close()

	var prices []float64

	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}

		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prices: %w", err)
	}

	return prices, nil
}

func (s *Store) CategoryCounts(ctx context.Context, month int) ([]transaction.CategoryCount, error) {
	query, args, err := s.sb.Select("category", "COUNT(*)").
		From("transactions").
		Where(sq.Eq{"sale_month": month}).
		GroupBy("category").
		OrderBy("category ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := []transaction.CategoryCount{}

	for rows.Next() {
		var c transaction.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	return counts, nil
}

// predicate renders filter as SQL. It mirrors transaction.Filter.Matches; the
// three price comparisons stay separate OR branches. Text is matched against the
// *_lc columns, folded with strings.ToLower at insert time; sqlite's LOWER folds
// ASCII only.
func predicate(filter transaction.Filter) sq.And {
	where := sq.And{}

	if filter.Month != 0 {
		where = append(where, sq.Eq{"sale_month": filter.Month})
	}

	if filter.Search == "" {
		return where
	}

	pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"

	price := sq.Or{sq.Eq{"price_text": filter.Search}}
	if n, ok := filter.SearchNumber(); ok {
		price = append(price,
			sq.Eq{"price": n},
			sq.And{
				sq.GtOrEq{"price": n - transaction.PriceTolerance},
				sq.LtOrEq{"price": n + transaction.PriceTolerance},
			},
		)
	}

	return append(where, sq.Or{
		sq.Expr(`title_lc LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`description_lc LIKE ? ESCAPE '\'`, pattern),
		sq.And{sq.NotEq{"price": nil}, price},
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
