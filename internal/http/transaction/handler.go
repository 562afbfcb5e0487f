package transaction

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

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	month, err := query.OptionalMonth(r)
	if err != nil {
		http.Error(w, query.InvalidMonthMessage, http.StatusBadRequest)
		return
	}

	page, err := query.Int(r, "page", transaction.DefaultPage)
	if err != nil {
		http.Error(w, query.InvalidPageMessage, http.StatusBadRequest)
		return
	}

	perPage, err := query.Int(r, "perPage", transaction.DefaultPerPage)
	if err != nil {
		http.Error(w, query.InvalidPageMessage, http.StatusBadRequest)
		return
	}

	result, err := h.svc.Search(r.Context(), transaction.SearchParams{
		Search:  r.URL.Query().Get("search"),
		Month:   month,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvalidMonth):
			http.Error(w, query.InvalidMonthMessage, http.StatusBadRequest)
		case errors.Is(err, transaction.ErrInvalidPage):
			http.Error(w, query.InvalidPageMessage, http.StatusBadRequest)
		default:
			slog.ErrorContext(r.Context(), "failed to search transactions", "op", "transactions", "error", err)
			http.Error(w, "Server error occurred while fetching transactions", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPageResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
