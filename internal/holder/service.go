package holder

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/idgen"
)

type CreateRequest struct {
	Name       string
	Contact    string
	Allocation *Allocation
}

// Service defines business logic related to holders.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Holder, error)
	GetByID(ctx context.Context, id int64) (*Holder, error)
	List(ctx context.Context, filter Filter) ([]*Holder, int, error)
	// Remove deletes the holder and returns it so callers can give its
	// allocation back.
	Remove(ctx context.Context, id int64) (*Holder, error)
	AddCharge(ctx context.Context, id int64, amount decimal.Decimal) (*Holder, error)
	AddPayment(ctx context.Context, id int64, amount decimal.Decimal) (*Holder, error)
}

type service struct {
	repo  Repository
	ids   *idgen.Allocator
	clock clock.Clock
}

// NewService creates a new holder Service.
func NewService(repo Repository, ids *idgen.Allocator, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		ids:   ids,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Holder, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	now := s.clock.Now()
	h := &Holder{
		ID:        s.ids.Next(idgen.CategoryHolder),
		Name:      name,
		Contact:   strings.TrimSpace(req.Contact),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Allocation != nil {
		a := *req.Allocation
		h.Allocation = &a
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Holder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Holder, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Remove(ctx context.Context, id int64) (*Holder, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddCharge(ctx context.Context, id int64, amount decimal.Decimal) (*Holder, error) {
	return s.adjust(ctx, id, amount, amount.Neg())
}

func (s *service) AddPayment(ctx context.Context, id int64, amount decimal.Decimal) (*Holder, error) {
	return s.adjust(ctx, id, amount, amount)
}

// adjust validates amount and then moves the balance by delta.
func (s *service) adjust(ctx context.Context, id int64, amount, delta decimal.Decimal) (*Holder, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	return s.repo.Modify(ctx, id, func(h *Holder) error {
		h.Balance = h.Balance.Add(delta)
		h.UpdatedAt = s.clock.Now()
		return nil
	})
}
