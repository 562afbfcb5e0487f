package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

type transactionResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       *float64  `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Sold        bool      `json:"sold"`
	DateOfSale  time.Time `json:"dateOfSale"`
}

type pageResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	CurrentPage  int                   `json:"currentPage"`
	PerPage      int                   `json:"perPage"`
	TotalRecords int                   `json:"totalRecords"`
	TotalPages   int                   `json:"totalPages"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Title:       tx.Title,
		Price:       tx.Price,
		Description: tx.Description,
		Category:    tx.Category,
		Image:       tx.Image,
		Sold:        tx.Sold,
		DateOfSale:  tx.DateOfSale,
	}
}

// toResponseList never returns nil so that an empty page encodes as [].
func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toPageResponse(p *transaction.Page) pageResponse {
	return pageResponse{
		Transactions: toResponseList(p.Transactions),
		CurrentPage:  p.CurrentPage,
		PerPage:      p.PerPage,
		TotalRecords: p.TotalRecords,
		TotalPages:   p.TotalPages,
	}
}
