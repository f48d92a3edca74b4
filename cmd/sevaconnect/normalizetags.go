package main

import (
	"context"
	"fmt"
	"strings"

	"sevaconnect/internal/db"
	"sevaconnect/internal/store"
	"sevaconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var normalizeTagsCommand = &cli.Command{
	Name:  "normalize-tags",
	Usage: "Rebuild every NGO's tags from its category, needs and location",
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

		ngoRepo := store.NewNGORepository(pool)

		ngos, err := ngoRepo.AllNGOs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list ngos: %w", err)
		}

		updated := 0
		for _, ngo := range ngos {
			tags := buildTags(ngo)
			if err := ngoRepo.UpdateTags(ctx, ngo.ID, tags); err != nil {
				return fmt.Errorf("failed to update tags for %s: %w", ngo.ID, err)
			}
			updated++
		}

		logrus.WithField("updated", updated).Info("tags rebuilt")

		return nil
	},
}

// buildTags derives searchable tags from an NGO's category, needs, city and
// state: lowercased, spaces replaced with hyphens, duplicates dropped.
func buildTags(ngo *types.NGO) []string {
	raw := make([]string, 0, len(ngo.Needs)+3)
	raw = append(raw, ngo.Category)
	raw = append(raw, ngo.Needs...)
	raw = append(raw, ngo.City, ngo.State)

	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		tag := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "-")
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}
