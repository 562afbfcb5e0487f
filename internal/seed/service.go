package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/salesboard/internal/encoding"
	"github.com/MrJamesThe3rd/salesboard/internal/logging"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

var (
	ErrFetch = errors.New("fetching seed data")
	ErrStore = errors.New("storing seed data")
)

// Store is the subset of the record store the loader writes to.
type Store interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, tx *transaction.Transaction) (bool, error)
}

// Notifier is told about every successful run.
type Notifier interface {
	SeedCompleted(ctx context.Context, result *Result) error
}

type Result struct {
	RunID      uuid.UUID
	Fetched    int
	Inserted   int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service loads the upstream dataset into the store. Existing ids are skipped, so runs can be repeated.
type Service struct {
	store     Store
	client    *http.Client
	sourceURL string
	notifier  Notifier
	now       func() time.Time
	log       *slog.Logger
	group     singleflight.Group
}

func NewService(store Store, sourceURL string, timeout time.Duration, opts ...Option) *Service {
	s := &Service{
		store:     store,
		client:    &http.Client{Timeout: timeout},
		sourceURL: sourceURL,
		now:       time.Now,
		log:       logging.For("seed"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run fetches the dataset and inserts every record whose id is not yet stored.
// Concurrent calls share a single run, which is detached from the callers'
// cancellation: a caller whose ctx ends gets ctx.Err() while the run carries on
// for the others. On failure the partial result is returned with the error;
// records inserted before the failure stay in the store.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	ch := s.group.DoChan("seed", func() (any, error) {
		return s.run(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Shared {
			s.log.DebugContext(ctx, "shared seed run result")
		}

		res, _ := r.Val.(*Result)

		return res, r.Err
	}
}

func (s *Service) run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:     uuid.New(),
		StartedAt: s.now(),
	}

	log := s.log.With("run_id", res.RunID)
	log.InfoContext(ctx, "seed run started", "source", s.sourceURL)

	items, err := s.fetch(ctx)
	if err != nil {
		res.FinishedAt = s.now()
		log.ErrorContext(ctx, "seed fetch failed", "error", err)

		return res, err
	}

	res.Fetched = len(items)
	now := s.now()

	for i := range items {
		tx, err := items[i].toTransaction(now)
		if err != nil {
			res.FinishedAt = s.now()
			return res, fmt.Errorf("%w: decoding item %d: %w", ErrFetch, i, err)
		}

		exists, err := s.store.Exists(ctx, tx.ID)
		if err != nil {
			res.FinishedAt = s.now()
			return res, fmt.Errorf("%w: checking transaction %d: %w", ErrStore, tx.ID, err)
		}

		if exists {
			res.Skipped++
			continue
		}

		inserted, err := s.store.Insert(ctx, tx)
		if err != nil {
			res.FinishedAt = s.now()
			return res, fmt.Errorf("%w: inserting transaction %d: %w", ErrStore, tx.ID, err)
		}

		// Another writer stored the id between the check and the insert.
		if !inserted {
			res.Skipped++
			continue
		}

		res.Inserted++
	}

	res.FinishedAt = s.now()

	log.InfoContext(ctx, "seed run finished",
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"skipped", res.Skipped,
		"duration", res.FinishedAt.Sub(res.StartedAt))

	if s.notifier != nil {
		if err := s.notifier.SeedCompleted(ctx, res); err != nil {
			log.WarnContext(ctx, "failed to publish seed completion", "error", err)
		}
	}

	return res, nil
}

// fetch returns the raw upstream items; they are decoded one at a time by run.
func (s *Service) fetch(ctx context.Context) ([]item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetch, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFetch, resp.StatusCode)
	}

	body, err := encoding.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}

	var items []item
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %w", ErrFetch, err)
	}

	return items, nil
}
