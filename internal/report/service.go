package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

// Summary is a point-in-time view of occupancy and money.
type Summary struct {
	GeneratedAt time.Time

	ExclusiveTotal    int
	ExclusiveOccupied int
	PooledTotal       int
	PooledStock       int
	PooledOutstanding int

	Holders int
	// Owed is the sum of negative balances as a positive amount; Credit is
	// the sum of positive balances.
	Owed   decimal.Decimal
	Credit decimal.Decimal
}

type Service interface {
	Snapshot(ctx context.Context) (*Summary, error)
}

type service struct {
	resources resource.Service
	holders   holder.Service
	clock     clock.Clock
}

func NewService(resources resource.Service, holders holder.Service, clk clock.Clock) Service {
	return &service{
		resources: resources,
		holders:   holders,
		clock:     clk,
	}
}

func (s *service) Snapshot(ctx context.Context) (*Summary, error) {
	resources, _, err := s.resources.List(ctx, resource.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	holders, _, err := s.holders.List(ctx, holder.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list holders: %w", err)
	}

	sum := &Summary{
		GeneratedAt: s.clock.Now(),
		Holders:     len(holders),
		Owed:        decimal.Zero,
		Credit:      decimal.Zero,
	}

	for _, r := range resources {
		switch r.Model {
		case resource.Exclusive:
			sum.ExclusiveTotal++
			if r.Occupied {
				sum.ExclusiveOccupied++
			}
		case resource.Pooled:
			sum.PooledTotal++
			sum.PooledStock += r.Stock
			sum.PooledOutstanding += r.Outstanding
		}
	}

	for _, h := range holders {
		switch {
		case h.Balance.IsNegative():
			sum.Owed = sum.Owed.Add(h.Balance.Neg())
		case h.Balance.IsPositive():
			sum.Credit = sum.Credit.Add(h.Balance)
		}
	}

	return sum, nil
}
