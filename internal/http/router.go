package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/salesboard/internal/http/seed"
	"github.com/MrJamesThe3rd/salesboard/internal/http/stats"
	"github.com/MrJamesThe3rd/salesboard/internal/http/transaction"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(
	allowedOrigins []string,
	store Pinger,
	seedH *seed.Handler,
	transactionsH *transaction.Handler,
	statsH *stats.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/seed", seedH.Routes)
	router.Route("/transactions", transactionsH.Routes)
	statsH.Routes(router)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "store ping failed", "op", "healthz", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return router
}
