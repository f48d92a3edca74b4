package main

import (
	"context"
	"fmt"

	"sevaconnect/internal/db"
	"sevaconnect/internal/seed"
	"sevaconnect/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo donors, NGOs and inventory",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		userRepo := store.NewUserRepository(pool)
		ngoRepo := store.NewNGORepository(pool)
		inventoryRepo := store.NewInventoryRepository(pool)

		if err := seed.SeedDemoUsers(ctx, userRepo); err != nil {
			return fmt.Errorf("failed to seed demo users: %w", err)
		}

		if err := seed.SeedDemoNGOs(ctx, ngoRepo); err != nil {
			return fmt.Errorf("failed to seed demo ngos: %w", err)
		}

		if err := seed.SeedDemoInventory(ctx, inventoryRepo); err != nil {
			return fmt.Errorf("failed to seed demo inventory: %w", err)
		}

		pp.Println(map[string]string{
			"demo password": seed.DemoPassword,
			"donor login":   "priya.sharma@example.com",
			"ngo login":     "contact@asharfoundation.example.org",
		})

		return nil
	},
}
