package seed

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesboard/internal/seed"
)

type Runner interface {
	Run(ctx context.Context) (*seed.Result, error)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.run)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	res, err := h.runner.Run(r.Context())
	if err != nil {
		attrs := []any{"op", "seed", "error", err}
		if res != nil {
			attrs = append(attrs, "run_id", res.RunID, "inserted", res.Inserted)
		}

		slog.ErrorContext(r.Context(), "failed to seed database", attrs...)
		http.Error(w, "Error initializing database", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := io.WriteString(w, "Database initialized with seed data"); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
