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

const ngoTableName = "sevaconnect.ngos"

var ngoColumns = utils.StructTagValues(types.NGO{})

type NGORepository struct {
	pool *pgxpool.Pool
}

func NewNGORepository(pool *pgxpool.Pool) *NGORepository {
	return &NGORepository{pool: pool}
}

func (r *NGORepository) NGO(ctx context.Context, ngoID string) (*types.NGO, error) {
	query, args, err := psql().
		Select(ngoColumns...).
		From(ngoTableName).
		Where(sq.Eq{"id": ngoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ngo query: %w", err)
	}

	var ngo types.NGO
	err = pgxscan.Get(ctx, r.pool, &ngo, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNGONotFound
		}
		return nil, fmt.Errorf("failed to fetch ngo: %w", err)
	}

	return &ngo, nil
}

func (r *NGORepository) NGOByUserID(ctx context.Context, userID string) (*types.NGO, error) {
	query, args, err := psql().
		Select(ngoColumns...).
		From(ngoTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ngo-by-user query: %w", err)
	}

	var ngo types.NGO
	err = pgxscan.Get(ctx, r.pool, &ngo, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNGONotFound
		}
		return nil, fmt.Errorf("failed to fetch ngo by user: %w", err)
	}

	return &ngo, nil
}

// VerifiedNGOs returns verified NGOs, optionally narrowed by exact category
// and case-insensitive city/state substrings. Empty filter values are ignored.
func (r *NGORepository) VerifiedNGOs(ctx context.Context, category, city, state string) ([]*types.NGO, error) {
	builder := psql().
		Select(ngoColumns...).
		From(ngoTableName).
		Where(sq.Eq{"verification_status": types.VerificationStatusVerified})

	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	if city != "" {
		builder = builder.Where(sq.ILike{"city": "%" + city + "%"})
	}
	if state != "" {
		builder = builder.Where(sq.ILike{"state": "%" + state + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verified ngos query: %w", err)
	}

	ngos := make([]*types.NGO, 0)
	if err := pgxscan.Select(ctx, r.pool, &ngos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch verified ngos: %w", err)
	}

	return ngos, nil
}

func (r *NGORepository) NGOsByStatus(ctx context.Context, status types.VerificationStatus) ([]*types.NGO, error) {
	query, args, err := psql().
		Select(ngoColumns...).
		From(ngoTableName).
		Where(sq.Eq{"verification_status": status}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ngos-by-status query: %w", err)
	}

	ngos := make([]*types.NGO, 0)
	if err := pgxscan.Select(ctx, r.pool, &ngos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngos by status: %w", err)
	}

	return ngos, nil
}

func (r *NGORepository) AllNGOs(ctx context.Context) ([]*types.NGO, error) {
	query, args, err := psql().
		Select(ngoColumns...).
		From(ngoTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all ngos query: %w", err)
	}

	ngos := make([]*types.NGO, 0)
	if err := pgxscan.Select(ctx, r.pool, &ngos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngos: %w", err)
	}

	return ngos, nil
}

func (r *NGORepository) Create(ctx context.Context, ngo *types.NGO) error {
	now := time.Now()
	if ngo.ID == "" {
		ngo.ID = utils.NanoID()
	}
	if ngo.VerificationStatus == "" {
		ngo.VerificationStatus = types.VerificationStatusPending
	}
	ngo.CreatedAt = now
	ngo.UpdatedAt = now

	query, args, err := psql().
		Insert(ngoTableName).
		SetMap(utils.StructToMap(ngo)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create ngo query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create ngo: %w", err)
	}

	return nil
}

func (r *NGORepository) Update(ctx context.Context, ngoID string, ngo *types.NGO) error {
	ngo.ID = ngoID
	ngo.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(ngoTableName).
		SetMap(utils.StructToMap(ngo)).
		Where(sq.Eq{"id": ngoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update ngo query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update ngo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNGONotFound
	}

	return nil
}

// AddNeed appends one need to the NGO's list and returns the updated list.
func (r *NGORepository) AddNeed(ctx context.Context, ngoID, need string) ([]string, error) {
	query, args, err := psql().
		Update(ngoTableName).
		Set("needs", sq.Expr("array_append(needs, ?)", need)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ngoID}).
		Suffix("RETURNING needs").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate add need query: %w", err)
	}

	var needs []string
	err = pgxscan.Get(ctx, r.pool, &needs, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNGONotFound
		}
		return nil, fmt.Errorf("failed to add ngo need: %w", err)
	}

	return needs, nil
}

func (r *NGORepository) SetVerificationStatus(ctx context.Context, ngoID string, status types.VerificationStatus, reason *string) (*types.NGO, error) {
	query, args, err := psql().
		Update(ngoTableName).
		Set("verification_status", status).
		Set("rejection_reason", reason).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ngoID}).
		Suffix("RETURNING " + joinColumns(ngoColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate set verification status query: %w", err)
	}

	var ngo types.NGO
	err = pgxscan.Get(ctx, r.pool, &ngo, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNGONotFound
		}
		return nil, fmt.Errorf("failed to set ngo verification status: %w", err)
	}

	return &ngo, nil
}

// UpdateTags replaces the NGO's tag list, used by the normalize-tags command.
func (r *NGORepository) UpdateTags(ctx context.Context, ngoID string, tags []string) error {
	query, args, err := psql().
		Update(ngoTableName).
		Set("tags", tags).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ngoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update tags query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update ngo tags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNGONotFound
	}

	return nil
}

func (r *NGORepository) CountByStatus(ctx context.Context, status types.VerificationStatus) (int, error) {
	builder := psql().Select("count(*)").From(ngoTableName)
	if status != "" {
		builder = builder.Where(sq.Eq{"verification_status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count ngos query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count ngos: %w", err)
	}

	return count, nil
}
