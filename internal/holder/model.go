package holder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("holder not found")
	ErrEmptyName      = apperror.Validation("name cannot be empty")
	ErrNegativeAmount = apperror.Validation("amount cannot be negative")
)

// Allocation binds a holder to a quantity of one resource for a number of periods.
type Allocation struct {
	ResourceID int64
	Quantity   int
	Duration   int
}

// Holder is a tenant or renter. Balance is a running account: payments are
// added to it and charges are taken off it, so a negative balance is money
// still owed and a positive one is credit.
type Holder struct {
	ID         int64
	Name       string
	Contact    string
	Allocation *Allocation // nil for payment-only holders
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (h *Holder) clone() *Holder {
	out := *h
	if h.Allocation != nil {
		a := *h.Allocation
		out.Allocation = &a
	}
	return &out
}

// Filter defines parameters for listing holders.
type Filter struct {
	ResourceID int64
	Page       int
	PageSize   int
}
