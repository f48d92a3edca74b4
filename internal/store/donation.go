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

const donationTableName = "sevaconnect.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Donation(ctx context.Context, donationID string) (*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, r.pool, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) DonationsByDonor(ctx context.Context, donorID string) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations-by-donor query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donor donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) DonationsByNGO(ctx context.Context, ngoID string) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"ngo_id": ngoID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations-by-ngo query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngo donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) RecentDonations(ctx context.Context, limit uint64) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recent donations query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch recent donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) Create(ctx context.Context, donation *types.Donation) error {
	now := time.Now()
	if donation.ID == "" {
		donation.ID = utils.NanoID()
	}
	if donation.Status == "" {
		donation.Status = types.DonationStatusPending
	}
	if donation.Type == "" {
		donation.Type = types.DonationTypeGoods
	}
	if donation.DonationDate.IsZero() {
		donation.DonationDate = now
	}
	donation.CreatedAt = now
	donation.UpdatedAt = now

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

func (r *DonationRepository) SetStatus(ctx context.Context, donationID string, status types.DonationStatus) (*types.Donation, error) {
	query, args, err := psql().
		Update(donationTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": donationID}).
		Suffix("RETURNING " + joinColumns(donationColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate set donation status query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, r.pool, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to set donation status: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(donationTableName).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count donations query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}

	return count, nil
}
