package journal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateEntry = errors.New("journal entry already recorded")
	ErrSchemaMissing  = errors.New("journal table does not exist")
)

type Kind string

const (
	KindAllocate Kind = "allocate"
	KindRelease  Kind = "release"
	KindCharge   Kind = "charge"
	KindPayment  Kind = "payment"
)

// Entry is one line of the ledger's audit trail.
type Entry struct {
	ID         string
	Kind       Kind
	HolderID   int64
	ResourceID int64
	Quantity   int
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// MaxPage is the highest page number a listing will look at.
const MaxPage = 1_000_000

type Filter struct {
	HolderID   int64
	ResourceID int64
	Kind       Kind
	Page       int
	PageSize   int
}
