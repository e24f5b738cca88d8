package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/request"
)

type ListEntriesRequest struct {
	request.ListParams
	HolderID   int64  `form:"holder_id" binding:"omitempty,min=1"`
	ResourceID int64  `form:"resource_id" binding:"omitempty,min=1"`
	Kind       string `form:"kind" binding:"omitempty,oneof=allocate release charge payment"`
}

type EntryResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	HolderID   int64           `json:"holder_id"`
	ResourceID int64           `json:"resource_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewResponse(e *journal.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Kind:       string(e.Kind),
		HolderID:   e.HolderID,
		ResourceID: e.ResourceID,
		Quantity:   e.Quantity,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}
