package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

func TestSeedDemo(t *testing.T) {
	c := NewContainer(Config{})
	ctx := context.Background()

	created, err := SeedDemo(ctx, c.Resources)
	require.NoError(t, err)
	require.Len(t, created, 4)

	list, total, err := c.Resources.List(ctx, resource.Filter{Kind: "bicycle (giant)"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, resource.Pooled, list[0].Model)
	assert.Equal(t, 5, list[0].Stock)
	assert.True(t, decimal.NewFromInt(15).Equal(list[0].UnitPrice))

	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(4), created[3].ID)
}
