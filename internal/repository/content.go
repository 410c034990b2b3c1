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

// ContentRepository covers the small editorial tables: flash updates, timings and the gallery.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) CreateFlash(ctx context.Context, f *model.FlashUpdate) error {
	defer logger.DeferLogDuration("content.CreateFlash", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO flash_updates (message, link, is_active, expiry_date) VALUES ($1, $2, $3, $4) RETURNING id`,
		f.Message, f.Link, f.IsActive, f.ExpiryDate,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("contentRepo.CreateFlash: %w", err)
	}
	return nil
}

// ListActiveFlash returns active updates expiring strictly after today.
func (r *ContentRepository) ListActiveFlash(ctx context.Context, today model.Date) ([]model.FlashUpdate, error) {
	defer logger.DeferLogDuration("content.ListActiveFlash", time.Now())()
	rows, err := r.pool.Query(ctx,
		`SELECT id, message, link, is_active, expiry_date FROM flash_updates
		 WHERE is_active AND expiry_date > $1 ORDER BY id DESC`, today)
	if err != nil {
		return nil, fmt.Errorf("contentRepo.ListActiveFlash: %w", err)
	}
	defer rows.Close()
	out := make([]model.FlashUpdate, 0)
	for rows.Next() {
		var f model.FlashUpdate
		if err := rows.Scan(&f.ID, &f.Message, &f.Link, &f.IsActive, &f.ExpiryDate); err != nil {
			return nil, fmt.Errorf("contentRepo.ListActiveFlash scan: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contentRepo.ListActiveFlash rows: %w", err)
	}
	return out, nil
}

func (r *ContentRepository) UpdateFlash(ctx context.Context, f *model.FlashUpdate) error {
	defer logger.DeferLogDuration("content.UpdateFlash", time.Now())()
	return r.execOne(ctx, "contentRepo.UpdateFlash",
		`UPDATE flash_updates SET message = $2, link = $3, is_active = $4, expiry_date = $5 WHERE id = $1`,
		f.ID, f.Message, f.Link, f.IsActive, f.ExpiryDate)
}

func (r *ContentRepository) DeleteFlash(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("content.DeleteFlash", time.Now())()
	return r.execOne(ctx, "contentRepo.DeleteFlash", `DELETE FROM flash_updates WHERE id = $1`, id)
}

func (r *ContentRepository) CreateTiming(ctx context.Context, t *model.Timing) error {
	defer logger.DeferLogDuration("content.CreateTiming", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO timings (location, darshan_time, prasada_time, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		t.Location, t.DarshanTime, t.PrasadaTime, t.IsActive,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("contentRepo.CreateTiming: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateTiming(ctx context.Context, t *model.Timing) error {
	defer logger.DeferLogDuration("content.UpdateTiming", time.Now())()
	return r.execOne(ctx, "contentRepo.UpdateTiming",
		`UPDATE timings SET location = $2, darshan_time = $3, prasada_time = $4, is_active = $5 WHERE id = $1`,
		t.ID, t.Location, t.DarshanTime, t.PrasadaTime, t.IsActive)
}

func (r *ContentRepository) ListActiveTimings(ctx context.Context) ([]model.Timing, error) {
	defer logger.DeferLogDuration("content.ListActiveTimings", time.Now())()
	return r.timings(ctx, "contentRepo.ListActiveTimings", "WHERE is_active")
}

// ListAllTimings includes inactive rows for the admin screen.
func (r *ContentRepository) ListAllTimings(ctx context.Context) ([]model.Timing, error) {
	defer logger.DeferLogDuration("content.ListAllTimings", time.Now())()
	return r.timings(ctx, "contentRepo.ListAllTimings", "")
}

func (r *ContentRepository) timings(ctx context.Context, op, where string) ([]model.Timing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, location, darshan_time, prasada_time, is_active FROM timings `+where+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	out := make([]model.Timing, 0)
	for rows.Next() {
		var t model.Timing
		if err := rows.Scan(&t.ID, &t.Location, &t.DarshanTime, &t.PrasadaTime, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

func (r *ContentRepository) CreateAlbum(ctx context.Context, a *model.Album) error {
	defer logger.DeferLogDuration("content.CreateAlbum", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO albums (title, description, cover_image) VALUES ($1, $2, $3) RETURNING id`,
		a.Title, a.Description, a.CoverImage,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("contentRepo.CreateAlbum: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateAlbum(ctx context.Context, a *model.Album) error {
	defer logger.DeferLogDuration("content.UpdateAlbum", time.Now())()
	return r.execOne(ctx, "contentRepo.UpdateAlbum",
		`UPDATE albums SET title = $2, description = $3, cover_image = $4 WHERE id = $1`,
		a.ID, a.Title, a.Description, a.CoverImage)
}

// DeleteAlbum removes the album; its media rows go with it through the foreign key cascade.
func (r *ContentRepository) DeleteAlbum(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("content.DeleteAlbum", time.Now())()
	return r.execOne(ctx, "contentRepo.DeleteAlbum", `DELETE FROM albums WHERE id = $1`, id)
}

func (r *ContentRepository) GetAlbum(ctx context.Context, id int64) (*model.Album, error) {
	defer logger.DeferLogDuration("content.GetAlbum", time.Now())()
	a := &model.Album{}
	err := r.pool.QueryRow(ctx, `SELECT id, title, description, cover_image FROM albums WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.CoverImage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("contentRepo.GetAlbum: %w", err)
	}
	return a, nil
}

func (r *ContentRepository) ListAlbums(ctx context.Context) ([]model.Album, error) {
	defer logger.DeferLogDuration("content.ListAlbums", time.Now())()
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, cover_image FROM albums ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("contentRepo.ListAlbums: %w", err)
	}
	defer rows.Close()
	out := make([]model.Album, 0)
	for rows.Next() {
		var a model.Album
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.CoverImage); err != nil {
			return nil, fmt.Errorf("contentRepo.ListAlbums scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contentRepo.ListAlbums rows: %w", err)
	}
	return out, nil
}

func (r *ContentRepository) AddMedia(ctx context.Context, m *model.MediaItem) error {
	defer logger.DeferLogDuration("content.AddMedia", time.Now())()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO media_items (album_id, type, url) VALUES ($1, $2, $3) RETURNING id`,
		m.AlbumID, m.Type, m.URL,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("contentRepo.AddMedia: %w", err)
	}
	return nil
}

func (r *ContentRepository) ListMedia(ctx context.Context, albumID int64) ([]model.MediaItem, error) {
	defer logger.DeferLogDuration("content.ListMedia", time.Now())()
	rows, err := r.pool.Query(ctx, `SELECT id, album_id, type, url FROM media_items WHERE album_id = $1 ORDER BY id`, albumID)
	if err != nil {
		return nil, fmt.Errorf("contentRepo.ListMedia: %w", err)
	}
	defer rows.Close()
	out := make([]model.MediaItem, 0)
	for rows.Next() {
		var m model.MediaItem
		if err := rows.Scan(&m.ID, &m.AlbumID, &m.Type, &m.URL); err != nil {
			return nil, fmt.Errorf("contentRepo.ListMedia scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contentRepo.ListMedia rows: %w", err)
	}
	return out, nil
}

func (r *ContentRepository) DeleteMedia(ctx context.Context, id int64) error {
	defer logger.DeferLogDuration("content.DeleteMedia", time.Now())()
	return r.execOne(ctx, "contentRepo.DeleteMedia", `DELETE FROM media_items WHERE id = $1`, id)
}

// execOne runs a statement that must touch a row; touching none is ErrNotFound.
func (r *ContentRepository) execOne(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
