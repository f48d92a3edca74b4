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

const volunteerTableName = "sevaconnect.volunteer_applications"

var volunteerColumns = utils.StructTagValues(types.VolunteerApplication{})

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

func (r *VolunteerRepository) Application(ctx context.Context, applicationID string) (*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		Where(sq.Eq{"id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var application types.VolunteerApplication
	err = pgxscan.Get(ctx, r.pool, &application, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &application, nil
}

func (r *VolunteerRepository) ApplicationsByDonor(ctx context.Context, donorID string) ([]*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("application_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications-by-donor query: %w", err)
	}

	applications := make([]*types.VolunteerApplication, 0)
	if err := pgxscan.Select(ctx, r.pool, &applications, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donor applications: %w", err)
	}

	return applications, nil
}

func (r *VolunteerRepository) ApplicationsByNGO(ctx context.Context, ngoID string) ([]*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		Where(sq.Eq{"ngo_id": ngoID}).
		OrderBy("application_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications-by-ngo query: %w", err)
	}

	applications := make([]*types.VolunteerApplication, 0)
	if err := pgxscan.Select(ctx, r.pool, &applications, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch ngo applications: %w", err)
	}

	return applications, nil
}

// Create inserts the application. The unique (donor_id, ngo_id) index turns a
// concurrent duplicate apply into ErrAlreadyApplied; there is no
// check-then-act window.
func (r *VolunteerRepository) Create(ctx context.Context, application *types.VolunteerApplication) error {
	now := time.Now()
	if application.ID == "" {
		application.ID = utils.NanoID()
	}
	if application.Status == "" {
		application.Status = types.ApplicationStatusPending
	}
	if application.ApplicationDate.IsZero() {
		application.ApplicationDate = now
	}
	application.CreatedAt = now
	application.UpdatedAt = now

	query, args, err := psql().
		Insert(volunteerTableName).
		SetMap(utils.StructToMap(application)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create application query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "volunteer_applications_donor_ngo_key") {
			return types.ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *VolunteerRepository) SetStatus(ctx context.Context, applicationID string, status types.ApplicationStatus) (*types.VolunteerApplication, error) {
	query, args, err := psql().
		Update(volunteerTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": applicationID}).
		Suffix("RETURNING " + joinColumns(volunteerColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate set application status query: %w", err)
	}

	var application types.VolunteerApplication
	err = pgxscan.Get(ctx, r.pool, &application, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to set application status: %w", err)
	}

	return &application, nil
}
