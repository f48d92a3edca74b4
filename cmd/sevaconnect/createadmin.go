package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sevaconnect/internal/auth"
	"sevaconnect/internal/db"
	"sevaconnect/internal/store"
	"sevaconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var createAdminCommand = &cli.Command{
	Name:  "create-admin",
	Usage: "Create an admin account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Usage:    "Admin email address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "Admin password",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Display name",
			Value: "Administrator",
		},
	},
	Action: createAdmin,
}

func createAdmin(c *cli.Context) error {
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

	userRepo := store.NewUserRepository(pool)

	email := strings.ToLower(strings.TrimSpace(c.String("email")))

	existing, err := userRepo.UserByEmail(ctx, email)
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		if existing.Role == types.UserRoleAdmin {
			logrus.WithField("email", email).Info("admin already exists")
			return nil
		}
		return fmt.Errorf("email %s is taken by a non-admin account", email)
	}

	hash, err := auth.HashPassword(c.String("password"))
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &types.User{
		Email:        email,
		PasswordHash: hash,
		Name:         c.String("name"),
		Role:         types.UserRoleAdmin,
		IsVerified:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logrus.WithFields(logrus.Fields{"email": email, "id": admin.ID}).Info("admin created")

	return nil
}
