package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
)

const guruCols = `id, name, name_kannada, order_index, ashrama_guru, ashrama_shishya, photo_url, period,
	poorvashrama_name, aaradhane, peetarohana, key_works, description, vrindavana_location, vrindavana_map_link,
	vrindavana_lat, vrindavana_long, is_bhootarajaru, start_year, end_year, short_highlight,
	ashrama_guru_id, ashrama_shishya_id`

type GuruRepository struct {
	pool *pgxpool.Pool
}

func NewGuruRepository(pool *pgxpool.Pool) *GuruRepository {
	return &GuruRepository{pool: pool}
}

func scanGuru(s interface{ Scan(dest ...any) error }, g *model.Guru) error {
	return s.Scan(&g.ID, &g.Name, &g.NameKannada, &g.OrderIndex, &g.AshramaGuru, &g.AshramaShishya, &g.PhotoURL,
		&g.Period, &g.PoorvashramaName, &g.Aaradhane, &g.Peetarohana, &g.KeyWorks, &g.Description,
		&g.VrindavanaLocation, &g.VrindavanaMapLink, &g.VrindavanaLat, &g.VrindavanaLong, &g.IsBhootarajaru,
		&g.StartYear, &g.EndYear, &g.ShortHighlight, &g.AshramaGuruID, &g.AshramaShishyaID)
}

func (r *GuruRepository) Create(ctx context.Context, g *model.Guru) error {
	defer logger.DeferLogDuration("guru.Create", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO guru_parampara (name, name_kannada, order_index, ashrama_guru, ashrama_shishya, photo_url,
		 period, poorvashrama_name, aaradhane, peetarohana, key_works, description, vrindavana_location,
		 vrindavana_map_link, vrindavana_lat, vrindavana_long, is_bhootarajaru, start_year, end_year,
		 short_highlight, ashrama_guru_id, ashrama_shishya_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		 RETURNING id`,
		g.Name, g.NameKannada, g.OrderIndex, g.AshramaGuru, g.AshramaShishya, g.PhotoURL, g.Period,
		g.PoorvashramaName, g.Aaradhane, g.Peetarohana, g.KeyWorks, g.Description, g.VrindavanaLocation,
		g.VrindavanaMapLink, g.VrindavanaLat, g.VrindavanaLong, g.IsBhootarajaru, g.StartYear, g.EndYear,
		g.ShortHighlight, g.AshramaGuruID, g.AshramaShishyaID,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("guruRepo.Create: %w", err)
	}
	return nil
}

func (r *GuruRepository) Update(ctx context.Context, g *model.Guru) error {
	defer logger.DeferLogDuration("guru.Update", time.Now())()
	tag, err := r.pool.Exec(ctx,
		`UPDATE guru_parampara SET name = $2, name_kannada = $3, order_index = $4, ashrama_guru = $5,
		 ashrama_shishya = $6, photo_url = $7, period = $8, poorvashrama_name = $9, aaradhane = $10,
		 peetarohana = $11, key_works = $12, description = $13, vrindavana_location = $14,
		 vrindavana_map_link = $15, vrindavana_lat = $16, vrindavana_long = $17, is_bhootarajaru = $18,
		 start_year = $19, end_year = $20, short_highlight = $21, ashrama_guru_id = $22, ashrama_shishya_id = $23
		 WHERE id = $1`,
		g.ID, g.Name, g.NameKannada, g.OrderIndex, g.AshramaGuru, g.AshramaShishya, g.PhotoURL, g.Period,
		g.PoorvashramaName, g.Aaradhane, g.Peetarohana, g.KeyWorks, g.Description, g.VrindavanaLocation,
		g.VrindavanaMapLink, g.VrindavanaLat, g.VrindavanaLong, g.IsBhootarajaru, g.StartYear, g.EndYear,
		g.ShortHighlight, g.AshramaGuruID, g.AshramaShishyaID,
	)
	if err != nil {
		return fmt.Errorf("guruRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuruRepository) Delete(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("guru.Delete", time.Now())()
	tag, err := r.pool.Exec(ctx, `DELETE FROM guru_parampara WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("guruRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuruRepository) List(ctx context.Context) ([]model.Guru, error) {
	defer logger.DeferLogDuration("guru.List", time.Now())()
	return r.query(ctx, "guruRepo.List", `SELECT `+guruCols+` FROM guru_parampara ORDER BY order_index, id`)
}

func (r *GuruRepository) Search(ctx context.Context, query string, limit int) ([]model.Guru, error) {
	defer logger.DeferLogDuration("guru.Search", time.Now())()
	return r.query(ctx, "guruRepo.Search",
		`SELECT `+guruCols+` FROM guru_parampara WHERE name ILIKE $1 OR description ILIKE $1
		 ORDER BY order_index, id LIMIT $2`, likePattern(query), limit)
}

func (r *GuruRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Guru, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.Guru, 0)
	for rows.Next() {
		var g model.Guru
		if err := scanGuru(rows, &g); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
