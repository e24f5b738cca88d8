package resource

import (
	"context"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/idgen"
)

type CreateRequest struct {
	Kind      string
	UnitPrice decimal.Decimal
	Model     CapacityModel
	// Capacity is the initial stock for Pooled resources. Exclusive
	// resources accept 0 or 1 and always start unoccupied.
	Capacity int
}

type UpdateRequest struct {
	Kind      *string
	UnitPrice *decimal.Decimal
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id int64) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Resource, error)
	Delete(ctx context.Context, id int64) error

	// TryReserve is the only path that takes capacity away from a resource.
	TryReserve(ctx context.Context, id int64, quantity int) (*Resource, error)
	// Release gives capacity taken by TryReserve back.
	Release(ctx context.Context, id int64, quantity int) (*Resource, error)
	// SetStock overwrites the available stock of a pooled resource.
	SetStock(ctx context.Context, id int64, stock int) (*Resource, error)
}

type service struct {
	repo  Repository
	ids   *idgen.Allocator
	clock clock.Clock
}

func NewService(repo Repository, ids *idgen.Allocator, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		ids:   ids,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if req.UnitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if req.Capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if !req.Model.Valid() {
		return nil, ErrInvalidModel
	}
	if req.Model == Exclusive && req.Capacity > 1 {
		return nil, ErrExclusiveCapacity
	}

	now := s.clock.Now()
	res := &Resource{
		ID:        s.ids.Next(idgen.CategoryResource),
		Kind:      kind,
		UnitPrice: req.UnitPrice,
		Model:     req.Model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Model == Pooled {
		res.Stock = req.Capacity
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Resource, error) {
	var kind string
	if req.Kind != nil {
		kind = strings.TrimSpace(*req.Kind)
		if kind == "" {
			return nil, ErrEmptyKind
		}
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	return s.repo.Modify(ctx, id, func(res *Resource) error {
		if req.Kind != nil {
			res.Kind = kind
		}
		if req.UnitPrice != nil {
			res.UnitPrice = *req.UnitPrice
		}
		res.UpdatedAt = s.clock.Now()
		return nil
	})
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id, func(res *Resource) error {
		if res.Allocated() {
			return ErrInUse
		}
		return nil
	})
}

func (s *service) TryReserve(ctx context.Context, id int64, quantity int) (*Resource, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.Modify(ctx, id, func(res *Resource) error {
		switch res.Model {
		case Exclusive:
			if quantity != 1 {
				return ErrExclusiveQuantity
			}
			if res.Occupied {
				return ErrAlreadyOccupied
			}
			res.Occupied = true
		case Pooled:
			if res.Stock < quantity {
				return ErrInsufficientStock
			}
			res.Stock -= quantity
			res.Outstanding += quantity
		}
		res.UpdatedAt = s.clock.Now()
		return nil
	})
}

func (s *service) Release(ctx context.Context, id int64, quantity int) (*Resource, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.Modify(ctx, id, func(res *Resource) error {
		switch res.Model {
		case Exclusive:
			res.Occupied = false
		case Pooled:
			// Stock has no upper bound other than int itself.
			if res.Stock > math.MaxInt-quantity {
				return ErrStockOverflow
			}
			res.Stock += quantity
			res.Outstanding -= quantity
			if res.Outstanding < 0 {
				res.Outstanding = 0
			}
		}
		res.UpdatedAt = s.clock.Now()
		return nil
	})
}

func (s *service) SetStock(ctx context.Context, id int64, stock int) (*Resource, error) {
	if stock < 0 {
		return nil, ErrNegativeCapacity
	}

	return s.repo.Modify(ctx, id, func(res *Resource) error {
		if res.Model != Pooled {
			return ErrNotPooled
		}
		// Outstanding units must still fit when they come back.
		if stock > math.MaxInt-res.Outstanding {
			return ErrStockTooLarge
		}
		res.Stock = stock
		res.UpdatedAt = s.clock.Now()
		return nil
	})
}
