package seed

import (
	"context"
	"errors"
	"fmt"

	"sevaconnect/internal/store"
	"sevaconnect/internal/utils"
	"sevaconnect/pkg/types"
)

// One item per NGO sits below the low stock threshold so the low stock
// endpoint and alerts have data to show.
var demoInventory = []types.InventoryItem{
	{
		ID:           "invAa1Bb2Cc3Dd4Ee5Ff6Gg7Hh8Ii9Jj",
		NGOID:        "orgAw2Xf7Jq9Kt1Lm4Np6Rs8Uv0Yb3Dc",
		ItemName:     "Blankets",
		Category:     "bedding",
		Quantity:     120,
		CurrentStock: 84,
		Urgency:      types.UrgencyMedium,
	},
	{
		ID:           "invBb2Cc3Dd4Ee5Ff6Gg7Hh8Ii9Jj0Kk",
		NGOID:        "orgAw2Xf7Jq9Kt1Lm4Np6Rs8Uv0Yb3Dc",
		ItemName:     "Toiletry kits",
		Category:     "hygiene",
		Quantity:     60,
		CurrentStock: 3,
		Urgency:      types.UrgencyHigh,
		Description:  utils.StringPtr("Soap, toothpaste, toothbrush, sanitary pads"),
	},
	{
		ID:           "invCc3Dd4Ee5Ff6Gg7Hh8Ii9Jj0Kk1Ll",
		NGOID:        "orgBx3Yg8Kr0Lu2Mn5Oq7St9Vw1Zc4Ed",
		ItemName:     "Rice (25kg bags)",
		Category:     "food",
		Quantity:     40,
		CurrentStock: 18,
		Urgency:      types.UrgencyHigh,
	},
	{
		ID:           "invDd4Ee5Ff6Gg7Hh8Ii9Jj0Kk1Ll2Mm",
		NGOID:        "orgBx3Yg8Kr0Lu2Mn5Oq7St9Vw1Zc4Ed",
		ItemName:     "Cooking oil (5L)",
		Category:     "food",
		Quantity:     30,
		CurrentStock: 2,
		Urgency:      types.UrgencyMedium,
	},
	{
		ID:           "invEe5Ff6Gg7Hh8Ii9Jj0Kk1Ll2Mm3Nn",
		NGOID:        "orgCy4Zh9Ls1Mv3No6Pr8Tu0Wx2Ad5Fe",
		ItemName:     "Notebooks",
		Category:     "stationery",
		Quantity:     500,
		CurrentStock: 4,
		Urgency:      types.UrgencyLow,
		TargetQuantity: utils.IntPtr(500),
	},
}

func SeedDemoInventory(ctx context.Context, inventoryRepo *store.InventoryRepository) error {
	created := 0
	for _, demo := range demoInventory {
		_, err := inventoryRepo.Item(ctx, demo.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrInventoryNotFound) {
			return fmt.Errorf("failed to look up demo inventory item %s: %w", demo.ItemName, err)
		}

		item := demo
		if err := inventoryRepo.Create(ctx, &item); err != nil {
			return fmt.Errorf("failed to create demo inventory item %s: %w", demo.ItemName, err)
		}
		created++
	}

	fmt.Printf("Demo inventory seeded: %d created, %d already present\n", created, len(demoInventory)-created)
	return nil
}
