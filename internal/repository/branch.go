package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
)

const branchCols = `id, name, address, city, state, pincode, phone, map_link, latitude, longitude`

type BranchRepository struct {
	pool *pgxpool.Pool
}

func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

func scanBranch(s interface{ Scan(dest ...any) error }, b *model.Branch) error {
	return s.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.State, &b.Pincode, &b.Phone, &b.MapLink, &b.Latitude, &b.Longitude)
}

func (r *BranchRepository) Create(ctx context.Context, b *model.Branch) error {
	defer logger.DeferLogDuration("branch.Create", time.Now())()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO branches (`+branchCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.Name, b.Address, b.City, b.State, b.Pincode, b.Phone, b.MapLink, b.Latitude, b.Longitude,
	)
	if err != nil {
		return fmt.Errorf("branchRepo.Create: %w", err)
	}
	return nil
}

func (r *BranchRepository) Update(ctx context.Context, b *model.Branch) error {
	defer logger.DeferLogDuration("branch.Update", time.Now())()
	tag, err := r.pool.Exec(ctx,
		`UPDATE branches SET name = $2, address = $3, city = $4, state = $5, pincode = $6, phone = $7,
		 map_link = $8, latitude = $9, longitude = $10 WHERE id = $1`,
		b.ID, b.Name, b.Address, b.City, b.State, b.Pincode, b.Phone, b.MapLink, b.Latitude, b.Longitude,
	)
	if err != nil {
		return fmt.Errorf("branchRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id string) error {
	defer logger.DeferLogDuration("branch.Delete", time.Now())()
	tag, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("branchRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	defer logger.DeferLogDuration("branch.List", time.Now())()
	return r.query(ctx, "branchRepo.List", `SELECT `+branchCols+` FROM branches ORDER BY name`)
}

func (r *BranchRepository) Search(ctx context.Context, query string, limit int) ([]model.Branch, error) {
	defer logger.DeferLogDuration("branch.Search", time.Now())()
	return r.query(ctx, "branchRepo.Search",
		`SELECT `+branchCols+` FROM branches WHERE name ILIKE $1 OR city ILIKE $1 OR state ILIKE $1
		 ORDER BY name LIMIT $2`, likePattern(query), limit)
}

func (r *BranchRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Branch, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.Branch, 0)
	for rows.Next() {
		var b model.Branch
		if err := scanBranch(rows, &b); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
