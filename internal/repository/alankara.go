package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
)

type AlankaraRepository struct {
	pool *pgxpool.Pool
}

func NewAlankaraRepository(pool *pgxpool.Pool) *AlankaraRepository {
	return &AlankaraRepository{pool: pool}
}

func (r *AlankaraRepository) Create(ctx context.Context, a *model.DailyAlankara) error {
	defer logger.DeferLogDuration("alankara.Create", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO daily_alankara (image_url, uploaded_at) VALUES ($1, $2) RETURNING id`,
		a.ImageURL, a.UploadedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("alankaraRepo.Create: %w", err)
	}
	return nil
}

// LatestSince returns the newest record uploaded at or after since.
func (r *AlankaraRepository) LatestSince(ctx context.Context, since time.Time) (*model.DailyAlankara, error) {
	defer logger.DeferLogDuration("alankara.LatestSince", time.Now())()
	a := &model.DailyAlankara{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, image_url, uploaded_at FROM daily_alankara WHERE uploaded_at >= $1
		 ORDER BY uploaded_at DESC, id DESC LIMIT 1`, since,
	).Scan(&a.ID, &a.ImageURL, &a.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("alankaraRepo.LatestSince: %w", err)
	}
	return a, nil
}

func (r *AlankaraRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.DailyAlankara, error) {
	defer logger.DeferLogDuration("alankara.ListOlderThan", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT id, image_url, uploaded_at FROM daily_alankara WHERE uploaded_at < $1 ORDER BY id`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("alankaraRepo.ListOlderThan: %w", err)
	}
	defer rows.Close()
	out := make([]model.DailyAlankara, 0)
	for rows.Next() {
		var a model.DailyAlankara
		if err := rows.Scan(&a.ID, &a.ImageURL, &a.UploadedAt); err != nil {
			return nil, fmt.Errorf("alankaraRepo.ListOlderThan scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("alankaraRepo.ListOlderThan rows: %w", err)
	}
	return out, nil
}

func (r *AlankaraRepository) Delete(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("alankara.Delete", time.Now())()
	if _, err := r.pool.Exec(ctx, `DELETE FROM daily_alankara WHERE id = $1`, id); err != nil {
		return fmt.Errorf("alankaraRepo.Delete: %w", err)
	}
	return nil
}
