package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/request"
)

// ListHoldersRequest defines query parameters for listing holders.
type ListHoldersRequest struct {
	request.ListParams
	ResourceID int64 `form:"resource_id" binding:"omitempty,min=1"`
}

type AllocationResponse struct {
	ResourceID int64 `json:"resource_id"`
	Quantity   int   `json:"quantity"`
	Duration   int   `json:"duration"`
}

type HolderResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Contact    string              `json:"contact"`
	Allocation *AllocationResponse `json:"allocation"`
	Balance    decimal.Decimal     `json:"balance"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func NewResponse(h *holder.Holder) HolderResponse {
	resp := HolderResponse{
		ID:        h.ID,
		Name:      h.Name,
		Contact:   h.Contact,
		Balance:   h.Balance,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
	if h.Allocation != nil {
		resp.Allocation = &AllocationResponse{
			ResourceID: h.Allocation.ResourceID,
			Quantity:   h.Allocation.Quantity,
			Duration:   h.Allocation.Duration,
		}
	}
	return resp
}

// AllocateRequest binds a new holder to a resource. Quantity and duration are
// checked by the ledger so that the error wording stays the same across callers.
type AllocateRequest struct {
	Name       string `json:"name" binding:"required"`
	Contact    string `json:"contact"`
	ResourceID int64  `json:"resource_id" binding:"required,min=1"`
	Quantity   int    `json:"quantity"`
	Duration   int    `json:"duration"`
}

type PaymentRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}
