// Package stats serves the per-month aggregate views.
package stats

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesboard/internal/http/query"
	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the handlers at the root of r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/statistics", h.statistics)
	r.Get("/bar-chart", h.barChart)
	r.Get("/pie-chart", h.pieChart)
	r.Get("/combined-data", h.combined)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(r.Context(), month)
	if err != nil {
		fail(w, r, err, "statistics", "Server error occurred while fetching statistics")
		return
	}

	writeJSON(w, toStatisticsResponse(stats))
}

func (h *Handler) barChart(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	buckets, err := h.svc.BarChart(r.Context(), month)
	if err != nil {
		fail(w, r, err, "bar-chart", "Server error occurred while fetching bar chart data")
		return
	}

	writeJSON(w, toBarChartResponse(buckets))
}

func (h *Handler) pieChart(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	counts, err := h.svc.PieChart(r.Context(), month)
	if err != nil {
		fail(w, r, err, "pie-chart", "Server error occurred while fetching pie chart data")
		return
	}

	writeJSON(w, toPieChartResponse(counts))
}

func (h *Handler) combined(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	combined, err := h.svc.Combined(r.Context(), month)
	if err != nil {
		fail(w, r, err, "combined-data", "Server error occurred while fetching combined data")
		return
	}

	writeJSON(w, toCombinedResponse(combined))
}

func monthParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	month, err := query.Month(r)
	if err != nil {
		http.Error(w, query.InvalidMonthMessage, http.StatusBadRequest)
		return 0, false
	}

	return month, true
}

func fail(w http.ResponseWriter, r *http.Request, err error, op, msg string) {
	if errors.Is(err, transaction.ErrInvalidMonth) {
		http.Error(w, query.InvalidMonthMessage, http.StatusBadRequest)
		return
	}

	slog.ErrorContext(r.Context(), "failed to compute "+op, "op", op, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
