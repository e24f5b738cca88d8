package resource

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("resource not found")
	ErrEmptyKind         = apperror.Validation("kind cannot be empty")
	ErrNegativePrice     = apperror.Validation("unit price cannot be negative")
	ErrNegativeCapacity  = apperror.Validation("capacity cannot be negative")
	ErrInvalidModel      = apperror.Validation("capacity model must be exclusive or pooled")
	ErrExclusiveCapacity = apperror.Validation("exclusive resources hold a single unit")
	ErrInvalidQuantity   = apperror.Validation("quantity must be at least 1")
	ErrExclusiveQuantity = apperror.Validation("exclusive resources are allocated one unit at a time")
	ErrAlreadyOccupied   = apperror.Conflict("resource already occupied")
	ErrInsufficientStock = apperror.Conflict("insufficient stock")
	ErrInUse             = apperror.Conflict("resource has active allocations")
	ErrNotPooled         = apperror.Conflict("stock can only be set on pooled resources")
	ErrStockTooLarge     = apperror.Validation("stock plus outstanding units exceeds the supported maximum")
	ErrStockOverflow     = apperror.Conflict("returned units would overflow stock")
)

// CapacityModel decides how a resource is shared between holders.
type CapacityModel string

const (
	// Exclusive resources (rooms) are held by one holder at a time.
	Exclusive CapacityModel = "exclusive"
	// Pooled resources (equipment) carry an integer stock that holders draw from.
	Pooled CapacityModel = "pooled"
)

func (m CapacityModel) Valid() bool {
	return m == Exclusive || m == Pooled
}

// Resource represents an allocatable unit (e.g., Room 101, a stock of bicycles).
type Resource struct {
	ID        int64
	Kind      string
	UnitPrice decimal.Decimal
	Model     CapacityModel

	// Occupied is only meaningful for Exclusive resources.
	Occupied bool
	// Stock is what is left to hand out; Outstanding is what holders currently have.
	// Both stay zero for Exclusive resources.
	Stock       int
	Outstanding int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allocated reports whether any holder currently references the resource.
func (r *Resource) Allocated() bool {
	if r.Model == Exclusive {
		return r.Occupied
	}
	return r.Outstanding > 0
}

// Filter defines parameters for listing resources.
type Filter struct {
	Kind     string
	Model    CapacityModel
	Page     int
	PageSize int
}
