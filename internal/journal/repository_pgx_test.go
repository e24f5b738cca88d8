package journal

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database only when TEST_DB_DSN is set.
func TestPgxRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, "TRUNCATE TABLE public.ledger_entries")
	require.NoError(t, err)

	repo := NewPgxRepository(pool)

	e := &Entry{
		ID:         uuid.NewString(),
		Kind:       KindCharge,
		HolderID:   1,
		ResourceID: 2,
		Quantity:   3,
		Amount:     decimal.RequireFromString("90.25"),
		CreatedAt:  testNow,
	}
	require.NoError(t, repo.Append(ctx, e))
	assert.ErrorIs(t, repo.Append(ctx, e), ErrDuplicateEntry)

	entries, total, err := repo.List(ctx, Filter{HolderID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.True(t, e.Amount.Equal(entries[0].Amount))
	assert.True(t, testNow.Equal(entries[0].CreatedAt))

	_, total, err = repo.List(ctx, Filter{Kind: KindPayment})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
