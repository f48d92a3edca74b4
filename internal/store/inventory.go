package store

import (
	"context"
	"fmt"
	"time"

	"sevaconnect/internal/utils"
	"sevaconnect/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inventoryTableName = "sevaconnect.inventory_items"

var inventoryColumns = utils.StructTagValues(types.InventoryItem{})

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) Item(ctx context.Context, itemID string) (*types.InventoryItem, error) {
	query, args, err := psql().
		Select(inventoryColumns...).
		From(inventoryTableName).
		Where(sq.Eq{"id": itemID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate inventory item query: %w", err)
	}

	var item types.InventoryItem
	err = pgxscan.Get(ctx, r.pool, &item, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory item: %w", err)
	}

	return &item, nil
}

// ItemsByNGO lists an NGO's inventory, most urgent first, newest within the
// same urgency.
func (r *InventoryRepository) ItemsByNGO(ctx context.Context, ngoID string) ([]*types.InventoryItem, error) {
	query, args, err := psql().
		Select(inventoryColumns...).
		From(inventoryTableName).
		Where(sq.Eq{"ngo_id": ngoID}).
		OrderBy("CASE urgency WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate inventory-by-ngo query: %w", err)
	}

	items := make([]*types.InventoryItem, 0)
	if err := pgxscan.Select(ctx, r.pool, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngo inventory: %w", err)
	}

	return items, nil
}

// LowStockItems returns the NGO's items with current_stock below the fixed
// threshold, lowest stock first.
func (r *InventoryRepository) LowStockItems(ctx context.Context, ngoID string) ([]*types.InventoryItem, error) {
	query, args, err := psql().
		Select(inventoryColumns...).
		From(inventoryTableName).
		Where(sq.Eq{"ngo_id": ngoID}).
		Where(sq.Lt{"current_stock": types.LowStockThreshold}).
		OrderBy("current_stock ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate low stock query: %w", err)
	}

	items := make([]*types.InventoryItem, 0)
	if err := pgxscan.Select(ctx, r.pool, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch low stock items: %w", err)
	}

	return items, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *types.InventoryItem) error {
	now := time.Now()
	if item.ID == "" {
		item.ID = utils.NanoID()
	}
	if item.Urgency == "" {
		item.Urgency = types.UrgencyMedium
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	query, args, err := psql().
		Insert(inventoryTableName).
		SetMap(utils.StructToMap(item)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create inventory item query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, itemID string, item *types.InventoryItem) error {
	item.ID = itemID
	item.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(inventoryTableName).
		SetMap(utils.StructToMap(item)).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update inventory item query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrInventoryNotFound
	}

	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, itemID string) error {
	query, args, err := psql().
		Delete(inventoryTableName).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete inventory item query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrInventoryNotFound
	}

	return nil
}
