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

const sevaCols = `id, title_english, title_kannada, amount, description, image_url, category, is_active`

type SevaRepository struct {
	pool *pgxpool.Pool
}

func NewSevaRepository(pool *pgxpool.Pool) *SevaRepository {
	return &SevaRepository{pool: pool}
}

func scanSeva(s interface{ Scan(dest ...any) error }, v *model.Seva) error {
	return s.Scan(&v.ID, &v.TitleEnglish, &v.TitleKannada, &v.Amount, &v.Description, &v.ImageURL, &v.Category, &v.IsActive)
}

func (r *SevaRepository) Create(ctx context.Context, v *model.Seva) error {
	defer logger.DeferLogDuration("seva.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sevas (`+sevaCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.TitleEnglish, v.TitleKannada, v.Amount, v.Description, v.ImageURL, v.Category, v.IsActive,
	)
	if err != nil {
		return fmt.Errorf("sevaRepo.Create: %w", err)
	}
	return nil
}

func (r *SevaRepository) GetByID(ctx context.Context, id string) (*model.Seva, error) {
	defer logger.DeferLogDuration("seva.GetByID", time.Now())()
	v := &model.Seva{}
	if err := scanSeva(r.pool.QueryRow(ctx, `SELECT `+sevaCols+` FROM sevas WHERE id = $1`, id), v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sevaRepo.GetByID: %w", err)
	}
	return v, nil
}

// ListActive returns active sevas; an empty category means all categories.
func (r *SevaRepository) ListActive(ctx context.Context, category model.SevaCategory) ([]model.Seva, error) {
	defer logger.DeferLogDuration("seva.ListActive", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT `+sevaCols+` FROM sevas
		 WHERE is_active AND ($1::text = '' OR category = $1::text)
		 ORDER BY title_english`, string(category))
	if err != nil {
		return nil, fmt.Errorf("sevaRepo.ListActive: %w", err)
	}
	defer rows.Close()
	out := make([]model.Seva, 0)
	for rows.Next() {
		var v model.Seva
		if err := scanSeva(rows, &v); err != nil {
			return nil, fmt.Errorf("sevaRepo.ListActive scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sevaRepo.ListActive rows: %w", err)
	}
	return out, nil
}

// Delete hides a seva from the catalog. Rows stay because bookings reference them.
func (r *SevaRepository) Delete(ctx context.Context, id string) error {
	defer logger.DeferLogDuration("seva.Delete", time.Now())()
	tag, err := r.pool.Exec(ctx, `UPDATE sevas SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sevaRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
