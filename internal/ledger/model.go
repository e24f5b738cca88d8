package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

var (
	ErrInvalidQuantity = apperror.Validation("quantity must be at least 1")
	ErrInvalidDuration = apperror.Validation("duration must be at least 1")
)

type AllocateRequest struct {
	Name       string
	Contact    string
	ResourceID int64
	Quantity   int
	Duration   int
}

func (r AllocateRequest) validate() error {
	if r.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if r.Duration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// Quote is the price of an allocation before it is made.
type Quote struct {
	ResourceID int64
	Quantity   int
	Duration   int
	// Total is unit price x quantity x duration.
	Total decimal.Decimal
	// ChargedOnAllocate is false for exclusive resources: tenants start at a
	// zero balance and settle through payments.
	ChargedOnAllocate bool
}

func priceOf(res *resource.Resource, quantity, duration int) decimal.Decimal {
	return res.UnitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(int64(duration)))
}

// chargeFor is what Allocate books against the holder right away.
func chargeFor(res *resource.Resource, quantity, duration int) decimal.Decimal {
	if res.Model != resource.Pooled {
		return decimal.Zero
	}
	return priceOf(res, quantity, duration)
}
