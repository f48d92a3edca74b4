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

const alertTableName = "sevaconnect.alerts"

var alertColumns = utils.StructTagValues(types.Alert{})

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) AlertsByNGO(ctx context.Context, ngoID string) ([]*types.Alert, error) {
	query, args, err := psql().
		Select(alertColumns...).
		From(alertTableName).
		Where(sq.Eq{"ngo_id": ngoID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate alerts-by-ngo query: %w", err)
	}

	alerts := make([]*types.Alert, 0)
	if err := pgxscan.Select(ctx, r.pool, &alerts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngo alerts: %w", err)
	}

	return alerts, nil
}

func (r *AlertRepository) UnreadCount(ctx context.Context, ngoID string) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(alertTableName).
		Where(sq.Eq{"ngo_id": ngoID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate unread count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}

	return count, nil
}

func (r *AlertRepository) Create(ctx context.Context, alert *types.Alert) error {
	now := time.Now()
	if alert.ID == "" {
		alert.ID = utils.NanoID()
	}
	if alert.Priority == "" {
		alert.Priority = types.AlertPriorityMedium
	}
	alert.CreatedAt = now
	alert.UpdatedAt = now

	query, args, err := psql().
		Insert(alertTableName).
		SetMap(utils.StructToMap(alert)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create alert query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// MarkRead flips one alert to read. There is no way back to unread.
func (r *AlertRepository) MarkRead(ctx context.Context, alertID string) (*types.Alert, error) {
	query, args, err := psql().
		Update(alertTableName).
		Set("is_read", true).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": alertID}).
		Suffix("RETURNING " + joinColumns(alertColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mark read query: %w", err)
	}

	var alert types.Alert
	err = pgxscan.Get(ctx, r.pool, &alert, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to mark alert read: %w", err)
	}

	return &alert, nil
}

// MarkAllRead flips every unread alert owned by the NGO. Other NGOs' alerts
// are untouched.
func (r *AlertRepository) MarkAllRead(ctx context.Context, ngoID string) error {
	query, args, err := psql().
		Update(alertTableName).
		Set("is_read", true).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"ngo_id": ngoID, "is_read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate mark all read query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark ngo alerts read: %w", err)
	}

	return nil
}

func (r *AlertRepository) Delete(ctx context.Context, alertID string) error {
	query, args, err := psql().
		Delete(alertTableName).
		Where(sq.Eq{"id": alertID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete alert query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrAlertNotFound
	}

	return nil
}
