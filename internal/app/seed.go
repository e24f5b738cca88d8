package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/resource"
)

type seedItem struct {
	kind  string
	price int64
	stock int
}

// demoEquipment is the starter stock of the rental shop.
var demoEquipment = []seedItem{
	{kind: "Bicycle (Giant)", price: 15, stock: 5},
	{kind: "Skateboard (Element)", price: 10, stock: 10},
	{kind: "Tennis Racket (Wilson)", price: 5, stock: 20},
	{kind: "Dumbbell Set (Nike)", price: 8, stock: 15},
}

// SeedDemo adds the demo equipment to the catalog and returns what was created.
func SeedDemo(ctx context.Context, resources resource.Service) ([]*resource.Resource, error) {
	created := make([]*resource.Resource, 0, len(demoEquipment))
	for _, item := range demoEquipment {
		r, err := resources.Create(ctx, resource.CreateRequest{
			Kind:      item.kind,
			UnitPrice: decimal.NewFromInt(item.price),
			Model:     resource.Pooled,
			Capacity:  item.stock,
		})
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", item.kind, err)
		}
		created = append(created, r)
	}
	return created, nil
}
