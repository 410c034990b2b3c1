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

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate")

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

// Create inserts the volunteer row and flips the user's volunteer flag in one transaction.
func (r *VolunteerRepository) Create(ctx context.Context, v *model.Volunteer) error {
	defer logger.DeferLogDuration("volunteer.Create", time.Now())()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("volunteerRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	_, err = tx.Exec(ctx,
		`INSERT INTO volunteers (id, user_id, name, phone_number, email, hobbies_or_talents, past_experience, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.UserID, v.Name, v.PhoneNumber, v.Email, v.HobbiesOrTalents, v.PastExperience, v.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("volunteerRepo.Create: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET is_volunteer = TRUE WHERE id = $1`, v.UserID); err != nil {
		return fmt.Errorf("volunteerRepo.Create flag: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("volunteerRepo.Create commit: %w", err)
	}
	return nil
}

func (r *VolunteerRepository) GetByUserID(ctx context.Context, userID string) (*model.Volunteer, error) {
	defer logger.DeferLogDuration("volunteer.GetByUserID", time.Now())()
	v := &model.Volunteer{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, phone_number, email, hobbies_or_talents, past_experience, created_at
		 FROM volunteers WHERE user_id = $1`, userID,
	).Scan(&v.ID, &v.UserID, &v.Name, &v.PhoneNumber, &v.Email, &v.HobbiesOrTalents, &v.PastExperience, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("volunteerRepo.GetByUserID: %w", err)
	}
	return v, nil
}
