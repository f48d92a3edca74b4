package seed

import (
	"context"
	"errors"
	"fmt"

	"sevaconnect/internal/auth"
	"sevaconnect/internal/store"
	"sevaconnect/internal/utils"
	"sevaconnect/pkg/types"
)

// DemoPassword is the shared plaintext password for every seeded account.
const DemoPassword = "sevaconnect"

type demoUser struct {
	ID    string
	Email string
	Name  string
	Phone string
	Role  types.UserRole
}

// Fixed IDs keep reruns idempotent and let the NGO seed reference owners.
// To generate new IDs: `go run ./cmd/sevaconnect nanoid`
var demoUsers = []demoUser{
	{ID: "dnr1hT4Wv0qkXfLbJ9sPzR2mYcE6uAo3", Email: "priya.sharma@example.com", Name: "Priya Sharma", Phone: "+91 98200 11001", Role: types.UserRoleDonor},
	{ID: "dnr2Kc8Rn5wmZgQdV1tXyL7jBfH0iUe4", Email: "arjun.mehta@example.com", Name: "Arjun Mehta", Phone: "+91 98200 11002", Role: types.UserRoleDonor},
	{ID: "dnr3Px6Lm2bvNhWcS4rZqT9kCdG8oYa5", Email: "sneha.patil@example.com", Name: "Sneha Patil", Phone: "+91 98200 11003", Role: types.UserRoleDonor},
	{ID: "ngo1Qw7Jt3cxMfVbR5sYzK8lDhN2pIe6", Email: "contact@asharfoundation.example.org", Name: "Ashar Foundation", Phone: "+91 22 2650 1001", Role: types.UserRoleNGO},
	{ID: "ngo2Rt9Ks4dyLgWcT6uXvJ1mEfP3qOa7", Email: "hello@southbites.example.org", Name: "South Bites Trust", Phone: "+91 80 4150 1002", Role: types.UserRoleNGO},
	{ID: "ngo3Sv1Lu5ezMhXdU7wYwK2nFgQ4rPb8", Email: "team@pathshala.example.org", Name: "Pathshala Initiative", Phone: "+91 11 2630 1003", Role: types.UserRoleNGO},
}

// SeedDemoUsers inserts the demo accounts, skipping any email that already
// exists so reruns leave real data alone.
func SeedDemoUsers(ctx context.Context, userRepo *store.UserRepository) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	created := 0
	for _, demo := range demoUsers {
		_, err := userRepo.UserByEmail(ctx, demo.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrUserNotFound) {
			return fmt.Errorf("failed to look up demo user %s: %w", demo.Email, err)
		}

		user := &types.User{
			ID:           demo.ID,
			Email:        demo.Email,
			PasswordHash: hash,
			Name:         demo.Name,
			Phone:        utils.StringPtr(demo.Phone),
			Role:         demo.Role,
			IsVerified:   true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create demo user %s: %w", demo.Email, err)
		}
		created++
	}

	fmt.Printf("Demo users seeded: %d created, %d already present\n", created, len(demoUsers)-created)
	return nil
}
