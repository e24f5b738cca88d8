package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/ledger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/request"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

// ListResourcesRequest defines query parameters for listing resources.
type ListResourcesRequest struct {
	request.ListParams
	Kind  string `form:"kind"`
	Model string `form:"model" binding:"omitempty,oneof=exclusive pooled"`
}

type ResourceResponse struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Model       string          `json:"model"`
	Occupied    bool            `json:"occupied"`
	Stock       int             `json:"stock"`
	Outstanding int             `json:"outstanding"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Kind:        r.Kind,
		UnitPrice:   r.UnitPrice,
		Model:       string(r.Model),
		Occupied:    r.Occupied,
		Stock:       r.Stock,
		Outstanding: r.Outstanding,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ResourceTag is a brief representation of a resource.
type ResourceTag struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
}

type CreateRequest struct {
	Kind      string           `json:"kind" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
	Model     string           `json:"model" binding:"required,oneof=exclusive pooled"`
	Capacity  int              `json:"capacity"`
}

type UpdateRequest struct {
	Kind      *string          `json:"kind" binding:"omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"omitempty"`
}

type SetStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

type QuoteRequest struct {
	Quantity int `form:"quantity"`
	Duration int `form:"duration"`
}

type QuoteResponse struct {
	Resource          ResourceTag     `json:"resource"`
	Quantity          int             `json:"quantity"`
	Duration          int             `json:"duration"`
	Total             decimal.Decimal `json:"total"`
	ChargedOnAllocate bool            `json:"charged_on_allocate"`
}

func NewQuoteResponse(q *ledger.Quote, r *resource.Resource) QuoteResponse {
	return QuoteResponse{
		Resource:          ResourceTag{ID: r.ID, Kind: r.Kind},
		Quantity:          q.Quantity,
		Duration:          q.Duration,
		Total:             q.Total,
		ChargedOnAllocate: q.ChargedOnAllocate,
	}
}
