package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/idgen"
	"github.com/nekogravitycat/rental-ledger-backend/internal/ledger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func seeded(t *testing.T) Service {
	t.Helper()
	ctx := context.Background()
	clk := clock.NewFixed(testNow)
	ids := idgen.NewAllocator()
	resources := resource.NewService(resource.NewMemoryRepository(), ids, clk)
	holders := holder.NewService(holder.NewMemoryRepository(), ids, clk)
	l := ledger.NewService(resources, holders)

	for _, req := range []resource.CreateRequest{
		{Kind: "Single", UnitPrice: decimal.NewFromInt(100), Model: resource.Exclusive},
		{Kind: "Double", UnitPrice: decimal.NewFromInt(150), Model: resource.Exclusive},
		{Kind: "Bicycle", UnitPrice: decimal.NewFromInt(15), Model: resource.Pooled, Capacity: 5},
	} {
		_, err := resources.Create(ctx, req)
		require.NoError(t, err)
	}

	alice, err := l.Allocate(ctx, ledger.AllocateRequest{Name: "Alice", ResourceID: 1, Quantity: 1, Duration: 1})
	require.NoError(t, err)
	_, err = l.RecordPayment(ctx, alice.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	_, err = l.Allocate(ctx, ledger.AllocateRequest{Name: "Carl", ResourceID: 3, Quantity: 3, Duration: 2})
	require.NoError(t, err)

	return NewService(resources, holders, clk)
}

func TestSnapshot(t *testing.T) {
	sum, err := seeded(t).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testNow, sum.GeneratedAt)
	assert.Equal(t, 2, sum.ExclusiveTotal)
	assert.Equal(t, 1, sum.ExclusiveOccupied)
	assert.Equal(t, 1, sum.PooledTotal)
	assert.Equal(t, 2, sum.PooledStock)
	assert.Equal(t, 3, sum.PooledOutstanding)
	assert.Equal(t, 2, sum.Holders)
	assert.True(t, decimal.NewFromInt(90).Equal(sum.Owed))
	assert.True(t, decimal.NewFromInt(40).Equal(sum.Credit))
}

type brokenService struct{}

func (brokenService) Snapshot(context.Context) (*Summary, error) { return nil, errors.New("boom") }

func TestSchedulerRunLogsSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := NewScheduler(seeded(t), "@hourly", zap.New(core))
	require.NoError(t, err)

	s.Run()

	entries := logs.FilterMessage("occupancy report").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["exclusive_occupied"])
	assert.Equal(t, "90.00", fields["owed"])
}

func TestSchedulerRunLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s, err := NewScheduler(brokenService{}, "*/5 * * * *", zap.New(core))
	require.NoError(t, err)

	s.Run()
	assert.Equal(t, 1, logs.FilterMessage("failed to build occupancy report").Len())
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewScheduler(brokenService{}, "@daily", nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(brokenService{}, "every tuesday", nil)
	assert.Error(t, err)
}
