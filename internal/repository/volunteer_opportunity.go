package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
)

const opportunityCols = `id, title, description, required_skills, image_url, application_count, status, created_at, updated_at`

const applicationSelect = `SELECT a.id, a.user_id, a.opportunity_id, o.title, u.full_name, u.phone_number,
	a.status, a.applied_at, a.updated_at
	FROM volunteer_applications a
	JOIN volunteer_opportunities o ON o.id = a.opportunity_id
	JOIN users u ON u.id = a.user_id`

type VolunteerOpportunityRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerOpportunityRepository(pool *pgxpool.Pool) *VolunteerOpportunityRepository {
	return &VolunteerOpportunityRepository{pool: pool}
}

func scanOpportunity(s interface{ Scan(dest ...any) error }, o *model.VolunteerOpportunity) error {
	return s.Scan(&o.ID, &o.Title, &o.Description, &o.RequiredSkills, &o.ImageURL, &o.ApplicationCount,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
}

func scanApplication(s interface{ Scan(dest ...any) error }, a *model.VolunteerApplication) error {
	return s.Scan(&a.ID, &a.UserID, &a.OpportunityID, &a.OpportunityTitle, &a.ApplicantName, &a.ApplicantPhone,
		&a.Status, &a.AppliedAt, &a.UpdatedAt)
}

func (r *VolunteerOpportunityRepository) Create(ctx context.Context, o *model.VolunteerOpportunity) error {
	defer logger.DeferLogDuration("opportunity.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO volunteer_opportunities (`+opportunityCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.Title, o.Description, o.RequiredSkills, o.ImageURL, o.ApplicationCount, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("opportunityRepo.Create: %w", err)
	}
	return nil
}

// Update rewrites the editable fields; the application count is left to Apply.
func (r *VolunteerOpportunityRepository) Update(ctx context.Context, o *model.VolunteerOpportunity) error {
	defer logger.DeferLogDuration("opportunity.Update", time.Now())()
	err := r.pool.QueryRow(ctx,
		`UPDATE volunteer_opportunities SET title = $2, description = $3, required_skills = $4, image_url = $5,
		 status = $6, updated_at = $7 WHERE id = $1 RETURNING application_count, created_at`,
		o.ID, o.Title, o.Description, o.RequiredSkills, o.ImageURL, o.Status, o.UpdatedAt,
	).Scan(&o.ApplicationCount, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("opportunityRepo.Update: %w", err)
	}
	return nil
}

func (r *VolunteerOpportunityRepository) Delete(ctx context.Context, id string) error {
	defer logger.DeferLogDuration("opportunity.Delete", time.Now())()
	tag, err := r.pool.Exec(ctx, `DELETE FROM volunteer_opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("opportunityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VolunteerOpportunityRepository) GetByID(ctx context.Context, id string) (*model.VolunteerOpportunity, error) {
	defer logger.DeferLogDuration("opportunity.GetByID", time.Now())()
	o := &model.VolunteerOpportunity{}
	err := scanOpportunity(r.pool.QueryRow(ctx, `SELECT `+opportunityCols+` FROM volunteer_opportunities WHERE id = $1`, id), o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opportunityRepo.GetByID: %w", err)
	}
	return o, nil
}

// ListOpen returns OPEN opportunities, newest first.
func (r *VolunteerOpportunityRepository) ListOpen(ctx context.Context) ([]model.VolunteerOpportunity, error) {
	defer logger.DeferLogDuration("opportunity.ListOpen", time.Now())()
	return r.list(ctx, "opportunityRepo.ListOpen",
		`SELECT `+opportunityCols+` FROM volunteer_opportunities WHERE status = 'OPEN' ORDER BY created_at DESC`)
}

func (r *VolunteerOpportunityRepository) ListAll(ctx context.Context) ([]model.VolunteerOpportunity, error) {
	defer logger.DeferLogDuration("opportunity.ListAll", time.Now())()
	return r.list(ctx, "opportunityRepo.ListAll",
		`SELECT `+opportunityCols+` FROM volunteer_opportunities ORDER BY created_at DESC`)
}

// Apply inserts the application and bumps the opportunity's count in one transaction.
// A second application by the same user is ErrDuplicate.
func (r *VolunteerOpportunityRepository) Apply(ctx context.Context, a *model.VolunteerApplication) error {
	defer logger.DeferLogDuration("opportunity.Apply", time.Now())()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("opportunityRepo.Apply begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	_, err = tx.Exec(ctx,
		`INSERT INTO volunteer_applications (id, user_id, opportunity_id, status, applied_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.OpportunityID, a.Status, a.AppliedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicate
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("opportunityRepo.Apply: %w", err)
	}
	tag, err := tx.Exec(ctx,
		`UPDATE volunteer_opportunities SET application_count = application_count + 1 WHERE id = $1`, a.OpportunityID)
	if err != nil {
		return fmt.Errorf("opportunityRepo.Apply count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("opportunityRepo.Apply commit: %w", err)
	}
	return nil
}

func (r *VolunteerOpportunityRepository) ListApplications(ctx context.Context, opportunityID string) ([]model.VolunteerApplication, error) {
	defer logger.DeferLogDuration("opportunity.ListApplications", time.Now())()
	return r.applications(ctx, "opportunityRepo.ListApplications",
		applicationSelect+` WHERE a.opportunity_id = $1 ORDER BY a.applied_at DESC`, opportunityID)
}

func (r *VolunteerOpportunityRepository) ListApplicationsByUser(ctx context.Context, userID string) ([]model.VolunteerApplication, error) {
	defer logger.DeferLogDuration("opportunity.ListApplicationsByUser", time.Now())()
	return r.applications(ctx, "opportunityRepo.ListApplicationsByUser",
		applicationSelect+` WHERE a.user_id = $1 ORDER BY a.applied_at DESC`, userID)
}

func (r *VolunteerOpportunityRepository) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.VolunteerApplication, error) {
	defer logger.DeferLogDuration("opportunity.UpdateApplicationStatus", time.Now())()
	tag, err := r.pool.Exec(ctx,
		`UPDATE volunteer_applications SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return nil, fmt.Errorf("opportunityRepo.UpdateApplicationStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	a := &model.VolunteerApplication{}
	if err := scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opportunityRepo.UpdateApplicationStatus read: %w", err)
	}
	return a, nil
}

func (r *VolunteerOpportunityRepository) list(ctx context.Context, op, sql string, args ...any) ([]model.VolunteerOpportunity, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.VolunteerOpportunity, 0)
	for rows.Next() {
		var o model.VolunteerOpportunity
		if err := scanOpportunity(rows, &o); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

func (r *VolunteerOpportunityRepository) applications(ctx context.Context, op, sql string, args ...any) ([]model.VolunteerApplication, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.VolunteerApplication, 0)
	for rows.Next() {
		var a model.VolunteerApplication
		if err := scanApplication(rows, &a); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
