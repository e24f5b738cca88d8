package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/keylock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

// Service executes allocation operations against the catalog and the holder
// registry. A failed operation leaves both exactly as they were.
type Service interface {
	Allocate(ctx context.Context, req AllocateRequest) (*holder.Holder, error)
	Release(ctx context.Context, holderID int64) (*holder.Holder, error)
	RecordPayment(ctx context.Context, holderID int64, amount decimal.Decimal) (*holder.Holder, error)
	DeleteResource(ctx context.Context, resourceID int64) error
	Quote(ctx context.Context, resourceID int64, quantity, duration int) (*Quote, error)
}

type service struct {
	resources resource.Service
	holders   holder.Service
	journal   *journal.Recorder
	logger    *zap.Logger

	// locks serializes every operation touching the same resource id.
	locks *keylock.Locker[int64]
}

type Option func(*service)

// WithJournal records every committed operation.
func WithJournal(rec *journal.Recorder) Option {
	return func(s *service) {
		s.journal = rec
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(resources resource.Service, holders holder.Service, opts ...Option) Service {
	s := &service{
		resources: resources,
		holders:   holders,
		logger:    zap.NewNop(),
		locks:     keylock.New[int64](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Allocate(ctx context.Context, req AllocateRequest) (*holder.Holder, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.ResourceID)
	defer unlock()

	// 1. Reserve capacity. Errors go back to the caller untouched.
	res, err := s.resources.TryReserve(ctx, req.ResourceID, req.Quantity)
	if err != nil {
		return nil, err
	}

	// 2. Register the holder.
	h, err := s.holders.Create(ctx, holder.CreateRequest{
		Name:    req.Name,
		Contact: req.Contact,
		Allocation: &holder.Allocation{
			ResourceID: req.ResourceID,
			Quantity:   req.Quantity,
			Duration:   req.Duration,
		},
	})
	if err != nil {
		s.undoReserve(ctx, req.ResourceID, req.Quantity)
		return nil, err
	}

	// 3. Pooled rentals are charged up front.
	charge := chargeFor(res, req.Quantity, req.Duration)
	if charge.IsPositive() {
		charged, err := s.holders.AddCharge(ctx, h.ID, charge)
		if err != nil {
			if _, rmErr := s.holders.Remove(ctx, h.ID); rmErr != nil {
				s.logger.Error("rollback: failed to remove holder", zap.Int64("holder_id", h.ID), zap.Error(rmErr))
			}
			s.undoReserve(ctx, req.ResourceID, req.Quantity)
			return nil, err
		}
		h = charged
	}

	s.logger.Info("allocated",
		zap.Int64("holder_id", h.ID),
		zap.Int64("resource_id", req.ResourceID),
		zap.Int("quantity", req.Quantity),
		zap.Int("duration", req.Duration),
		zap.String("charge", charge.String()))

	s.journal.Record(ctx, journal.Entry{
		Kind:       journal.KindAllocate,
		HolderID:   h.ID,
		ResourceID: req.ResourceID,
		Quantity:   req.Quantity,
	})
	if charge.IsPositive() {
		s.journal.Record(ctx, journal.Entry{
			Kind:       journal.KindCharge,
			HolderID:   h.ID,
			ResourceID: req.ResourceID,
			Quantity:   req.Quantity,
			Amount:     charge,
		})
	}

	return h, nil
}

func (s *service) Release(ctx context.Context, holderID int64) (*holder.Holder, error) {
	h, err := s.holders.GetByID(ctx, holderID)
	if err != nil {
		return nil, err
	}

	// Payment-only holders have nothing to hand back.
	if h.Allocation == nil {
		return s.holders.Remove(ctx, holderID)
	}

	alloc := *h.Allocation
	unlock := s.locks.Lock(alloc.ResourceID)
	defer unlock()

	// Every release of this resource holds the lock, so if the holder is
	// still here now nobody else can hand its allocation back.
	if _, err := s.holders.GetByID(ctx, holderID); err != nil {
		return nil, err
	}

	// Give the capacity back first: if that fails nothing has changed yet.
	if _, err := s.resources.Release(ctx, alloc.ResourceID, alloc.Quantity); err != nil {
		return nil, fmt.Errorf("release resource %d: %w", alloc.ResourceID, err)
	}

	removed, err := s.holders.Remove(ctx, holderID)
	if err != nil {
		if _, rerr := s.resources.TryReserve(ctx, alloc.ResourceID, alloc.Quantity); rerr != nil {
			s.logger.Error("rollback: failed to re-reserve resource",
				zap.Int64("resource_id", alloc.ResourceID), zap.Error(rerr))
		}
		return nil, err
	}

	s.logger.Info("released",
		zap.Int64("holder_id", holderID),
		zap.Int64("resource_id", alloc.ResourceID),
		zap.Int("quantity", alloc.Quantity))

	s.journal.Record(ctx, journal.Entry{
		Kind:       journal.KindRelease,
		HolderID:   holderID,
		ResourceID: alloc.ResourceID,
		Quantity:   alloc.Quantity,
	})

	return removed, nil
}

func (s *service) RecordPayment(ctx context.Context, holderID int64, amount decimal.Decimal) (*holder.Holder, error) {
	h, err := s.holders.AddPayment(ctx, holderID, amount)
	if err != nil {
		return nil, err
	}

	entry := journal.Entry{
		Kind:     journal.KindPayment,
		HolderID: h.ID,
		Amount:   amount,
	}
	if h.Allocation != nil {
		entry.ResourceID = h.Allocation.ResourceID
	}
	s.journal.Record(ctx, entry)

	return h, nil
}

func (s *service) DeleteResource(ctx context.Context, resourceID int64) error {
	unlock := s.locks.Lock(resourceID)
	defer unlock()

	if err := s.resources.Delete(ctx, resourceID); err != nil {
		return err
	}
	s.logger.Info("resource deleted", zap.Int64("resource_id", resourceID))
	return nil
}

func (s *service) Quote(ctx context.Context, resourceID int64, quantity, duration int) (*Quote, error) {
	req := AllocateRequest{ResourceID: resourceID, Quantity: quantity, Duration: duration}
	if err := req.validate(); err != nil {
		return nil, err
	}

	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	return &Quote{
		ResourceID:        resourceID,
		Quantity:          quantity,
		Duration:          duration,
		Total:             priceOf(res, quantity, duration),
		ChargedOnAllocate: res.Model == resource.Pooled,
	}, nil
}

func (s *service) undoReserve(ctx context.Context, resourceID int64, quantity int) {
	if _, err := s.resources.Release(ctx, resourceID, quantity); err != nil {
		s.logger.Error("rollback: failed to release reservation",
			zap.Int64("resource_id", resourceID), zap.Int("quantity", quantity), zap.Error(err))
	}
}
