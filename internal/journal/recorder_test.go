package journal

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nekogravitycat/rental-ledger-backend/internal/clock"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type failingRepo struct{ Repository }

func (failingRepo) Append(context.Context, *Entry) error { return errors.New("db down") }

func TestRecorderStampsAndAppends(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryRepository(), clock.NewFixed(testNow), nil)

	rec.Record(ctx, Entry{Kind: KindAllocate, HolderID: 1, ResourceID: 2, Quantity: 3})
	rec.Record(ctx, Entry{Kind: KindCharge, HolderID: 1, ResourceID: 2, Amount: decimal.NewFromInt(90)})
	rec.Record(ctx, Entry{Kind: KindPayment, HolderID: 4, Amount: decimal.NewFromInt(10)})

	entries, total, err := rec.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	assert.Equal(t, KindPayment, entries[0].Kind, "newest first")
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, testNow, e.CreatedAt)
	}

	byHolder, total, err := rec.List(ctx, Filter{HolderID: 1, Kind: KindCharge})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.True(t, decimal.NewFromInt(90).Equal(byHolder[0].Amount))

	paged, total, err := rec.List(ctx, Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, paged, 1)
	assert.Equal(t, KindAllocate, paged[0].Kind)
}

func TestRecorderSwallowsStoreErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := NewRecorder(failingRepo{}, clock.NewFixed(testNow), zap.New(core))

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), Entry{Kind: KindRelease, HolderID: 9})
	})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to append journal entry", logs.All()[0].Message)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() { rec.Record(context.Background(), Entry{}) })
}

func TestMemoryRepositoryRejectsDuplicateID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &Entry{ID: "a"}))
	assert.ErrorIs(t, repo.Append(ctx, &Entry{ID: "a"}), ErrDuplicateEntry)
}

func TestListHugePage(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryRepository(), clock.NewFixed(testNow), nil)
	rec.Record(ctx, Entry{Kind: KindPayment, HolderID: 1, Amount: decimal.NewFromInt(5)})

	entries, total, err := rec.List(ctx, Filter{Page: math.MaxInt / 2, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, entries)

	page, pageSize := Filter{Page: math.MaxInt, PageSize: 100}.pagination()
	assert.Equal(t, MaxPage, page)
	assert.Equal(t, 100, pageSize)
}
